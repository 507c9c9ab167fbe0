package domain

// Role is an access level. Higher levels include all lower ones.
type Role int

const (
	RoleStudent     Role = 1
	RoleContributor Role = 4
	RoleManager     Role = 8
	RoleAdmin       Role = 10
)

// Actor identifies the caller of an operation. The zero value is the
// anonymous caller; every authorization gate must handle both cases
// explicitly instead of relying on implicit nil checks.
type Actor struct {
	UserID   string
	Nickname string
	Level    Role
}

// Anonymous returns the unauthenticated actor
func Anonymous() Actor {
	return Actor{}
}

// IsAnonymous reports whether the actor carries no identity
func (a Actor) IsAnonymous() bool {
	return a.UserID == ""
}

// AtLeast reports whether the actor is authenticated with the given
// role level or higher
func (a Actor) AtLeast(role Role) bool {
	return !a.IsAnonymous() && a.Level >= role
}
