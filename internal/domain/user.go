package domain

// Role represents the role of an authenticated user
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// User current authenticated user
type User struct {
	UID  string
	Role Role
}

// IsAdmin returns true if the user has the admin role
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// CanAccessAppointment returns true if the user may read or modify the appointment
func (u *User) CanAccessAppointment(a *Appointment) bool {
	if u == nil || a == nil {
		return false
	}
	return u.IsAdmin() || a.IsOwnedBy(u.UID)
}

// CanManageEvents returns true if the user may create, update or delete events
func (u *User) CanManageEvents() bool {
	return u.IsAdmin()
}
