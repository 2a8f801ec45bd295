package catalog

// Member is a copy of a registered library member.
// Books held by a member are not stored here, they are derived from Book.IssuedToMemberID.
type Member struct {
	ID   MemberID
	Name string
}

// BuildMember creates a Member.
func BuildMember(id MemberID, name string) Member {
	return Member{
		ID:   id,
		Name: name,
	}
}
