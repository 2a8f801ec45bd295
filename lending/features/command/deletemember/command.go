package deletemember

import (
	"github.com/AntonStoeckl/library-lending-go/catalog"
)

const (
	commandType = "DeleteMember"
)

// Command represents the intent to remove a member.
type Command struct {
	MemberID catalog.MemberID
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(memberID catalog.MemberID) Command {
	return Command{MemberID: memberID}
}
