package domain

// Identity is the authenticated caller derived from a verified bearer token.
// It is self-contained: authorization decisions that only need the ID, email,
// or role never touch the user store.
type Identity struct {
	UserID string   `json:"userID"`
	Email  string   `json:"email,omitempty"`
	Role   UserRole `json:"role"`
}

// IsAdmin reports whether the identity carries the admin role.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
