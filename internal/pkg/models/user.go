package models

// UserClaims is the decoded payload of a session credential: a verified
// phone identity plus the validity window embedded at issuance.
type UserClaims struct {
	PhoneNumber string `json:"phoneNumber"`
	Verified    bool   `json:"verified"`
	IssuedAt    int64  `json:"issuedAt,omitempty"`
	ExpiresAt   int64  `json:"expiresAt,omitempty"`
}

// AuthResponse is returned after a successful code check
type AuthResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expiresAt"`
}
