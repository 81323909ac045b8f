package domain

// Roles recognized by the backend.
const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

// Session is the client's in-memory and persisted representation of the
// currently authenticated user. It is valid only while the access token's
// expiry lies in the future.
type Session struct {
	UserID       string `json:"id,omitempty"`
	Name         string `json:"name,omitempty"`
	Email        string `json:"email,omitempty"`
	Role         string `json:"role,omitempty"`
	Token        string `json:"token,omitempty"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

// IsAdmin reports whether the session belongs to a back-office user.
func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}
