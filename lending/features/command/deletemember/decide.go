package deletemember

import (
	"github.com/AntonStoeckl/library-lending-go/catalog"
	"github.com/AntonStoeckl/library-lending-go/lending/core"
)

// Decide implements the deletion guard for members.
//
// Business Rules:
//
//	GIVEN: A member with MemberID
//	WHEN: DeleteMember command is received
//	THEN: The member is removed
//	REJECTED: "member not found" if the member does not exist
//	REJECTED: "member has books issued" if any book is issued to the member
func Decide(view catalog.View, command Command) core.DecisionResult[catalog.Member] {
	member, found := view.Member(command.MemberID)
	if !found {
		return core.RejectedDecision[catalog.Member](core.ReasonMemberNotFound)
	}

	if len(view.BooksIssuedTo(member.ID)) > 0 {
		return core.RejectedDecision[catalog.Member](core.ReasonMemberHasLoans)
	}

	return core.AcceptedDecision(member, catalog.DeleteMember(member.ID))
}

// BuildFilter creates the filter for the member and every book currently issued to them.
func BuildFilter(memberID catalog.MemberID) catalog.Filter {
	return catalog.BuildFilter().Members(memberID).BooksIssuedTo(memberID).Finalize()
}
