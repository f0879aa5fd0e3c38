package models

// Role is the fixed role tag of a principal
type Role string

const (
	RoleStudent    Role = "student"
	RoleInstructor Role = "instructor"
	RoleAdmin      Role = "admin"
)

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleInstructor, RoleAdmin:
		return true
	}
	return false
}

// Principal is an authenticated caller. It is implemented by *Student,
// *Instructor and *Admin; the concrete type is the role tag.
type Principal interface {
	PrincipalID() int64
	Role() Role
}

// IsStudent returns the student behind p, if p is one
func IsStudent(p Principal) (*Student, bool) {
	s, ok := p.(*Student)
	return s, ok
}

// IsInstructor returns the instructor behind p, if p is one
func IsInstructor(p Principal) (*Instructor, bool) {
	i, ok := p.(*Instructor)
	return i, ok
}

// IsAdmin reports whether p is an administrator
func IsAdmin(p Principal) bool {
	_, ok := p.(*Admin)
	return ok
}

// Credentials is the login view of a principal row
type Credentials struct {
	ID           int64
	Role         Role
	Email        string
	PasswordHash string
}
