package entity

type UserRole string

const (
	RoleUser      UserRole = "user"
	RoleModerator UserRole = "moderator"
	RoleAdmin     UserRole = "admin"
)

// ValidRole reports whether s names a known role
func ValidRole(s string) bool {
	switch UserRole(s) {
	case RoleUser, RoleModerator, RoleAdmin:
		return true
	}
	return false
}

// CanModerate reports whether the role may modify other users' content
func (r UserRole) CanModerate() bool {
	return r == RoleModerator || r == RoleAdmin
}

type User struct {
	Base
	Username         string   `db:"username"`
	Email            string   `db:"email"`
	FirstName        string   `db:"first_name"`
	LastName         string   `db:"last_name"`
	Bio              *string  `db:"bio"`
	Role             UserRole `db:"role"`
	ConfirmationHash string   `db:"confirmation_hash"`
}
