package addmember

import (
	"github.com/AntonStoeckl/library-lending-go/catalog"
)

const (
	commandType = "AddMember"
)

// Command represents the intent to register a member.
type Command struct {
	MemberID catalog.MemberID
	Name     string
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(memberID catalog.MemberID, name string) Command {
	return Command{
		MemberID: memberID,
		Name:     name,
	}
}
