package types

// LoginRequest represents the login request payload
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// User represents the logged-in operator
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role,omitempty"`
}

// LoginResponse is the envelope returned by the login endpoint
type LoginResponse struct {
	Envelope
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at,omitempty"`
	User      *User  `json:"user,omitempty"`
}

// Credentials is the bearer credential handed to an API client for its lifetime
type Credentials struct {
	Token string
}

// Valid reports whether a token is present
func (c Credentials) Valid() bool {
	return c.Token != ""
}

// Authorization returns the Authorization header value
func (c Credentials) Authorization() string {
	return "Bearer " + c.Token
}
