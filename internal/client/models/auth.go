package models

import "encoding/json"

// MinPasswordLength is the client-side registration gate.
const MinPasswordLength = 8

// RegisterForm is what the user typed into the registration prompt.
type RegisterForm struct {
	Email           string
	Password        string
	ConfirmPassword string
	FullName        string
	ReferralCode    string
}

// Request builds the wire payload. ConfirmPassword never leaves the client.
func (f RegisterForm) Request() RegisterRequest {
	return RegisterRequest{
		Email:        f.Email,
		Password:     f.Password,
		FullName:     f.FullName,
		ReferralCode: f.ReferralCode,
	}
}

// RegisterRequest is the body of POST /auth/register. Empty optional
// fields are omitted from the payload rather than sent as "".
type RegisterRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	FullName     string `json:"full_name,omitempty"`
	ReferralCode string `json:"referral_code,omitempty"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResult is the decoded register/login response.
type AuthResult struct {
	Token string
	User  *User
}

// UnmarshalJSON accepts both a top-level access_token and the nested
// {"tokens": {"access_token": ...}} form. A missing token leaves Token
// empty; whether that is acceptable is the caller's decision.
func (r *AuthResult) UnmarshalJSON(data []byte) error {
	var wire struct {
		AccessToken string `json:"access_token"`
		Tokens      *struct {
			AccessToken string `json:"access_token"`
		} `json:"tokens"`
		User *User `json:"user"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	r.Token = wire.AccessToken
	if r.Token == "" && wire.Tokens != nil {
		r.Token = wire.Tokens.AccessToken
	}
	r.User = wire.User
	return nil
}
