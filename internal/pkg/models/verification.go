package models

// VerificationAttempt is the flat projection of a provider verification
// response. Only allow-listed fields cross the gateway boundary; the
// provider's own response objects never leave it.
type VerificationAttempt struct {
	Status      string `json:"status"`
	To          string `json:"to"`
	Sid         string `json:"sid,omitempty"`
	Channel     string `json:"channel,omitempty"`
	Valid       bool   `json:"valid"`
	DateCreated string `json:"dateCreated,omitempty"`
	DateUpdated string `json:"dateUpdated,omitempty"`
}

// Approved reports whether the provider accepted the submitted code
func (v *VerificationAttempt) Approved() bool {
	return v.Status == VerificationStatusApproved
}

// Verification status values as reported by the provider
const (
	VerificationStatusPending  = "pending"
	VerificationStatusApproved = "approved"
	VerificationStatusCanceled = "canceled"
)

// Verification channels
const (
	VerificationChannelSMS  = "sms"
	VerificationChannelCall = "call"
)
