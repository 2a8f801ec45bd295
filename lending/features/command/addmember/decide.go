package addmember

import (
	"github.com/AntonStoeckl/library-lending-go/catalog"
	"github.com/AntonStoeckl/library-lending-go/lending/core"
)

// Decide accepts every new member. The name may be empty.
// The only rejection is "id is already taken".
func Decide(view catalog.View, command Command) core.DecisionResult[catalog.Member] {
	if _, found := view.Member(command.MemberID); found {
		return core.RejectedDecision[catalog.Member](core.ReasonDuplicateID)
	}

	member := catalog.BuildMember(command.MemberID, command.Name)

	return core.AcceptedDecision(member, catalog.PutNewMember(member))
}

// BuildFilter creates the filter for the new member.
func BuildFilter(memberID catalog.MemberID) catalog.Filter {
	return catalog.BuildFilter().Members(memberID).Finalize()
}
