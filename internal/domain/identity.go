package domain

// Identity is the authenticated actor performing an operation. It is
// populated once per request from the session and passed explicitly into
// every service call.
type Identity struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// IdentityFromUser builds an Identity from a stored user record.
func IdentityFromUser(u *User) Identity {
	return Identity{
		UserID:   u.ID,
		Username: u.Username,
		Role:     u.Role,
	}
}

// IsZero reports whether the identity is empty (no one is logged in).
func (i Identity) IsZero() bool {
	return i.UserID == 0
}

// IsAdmin reports whether the identity carried the admin role when the
// session was established. Admin-gated operations must not rely on this
// alone; they re-read the role from storage.
func (i Identity) IsAdmin() bool {
	return i.Role.IsAdmin()
}
