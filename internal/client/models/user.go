package models

import (
	"encoding/json"
	"fmt"
)

// User is the profile returned by the API. Email is the only field the
// client relies on; every attribute the server sends, known or not, is kept
// in Attributes and written back out by MarshalJSON.
type User struct {
	ID         string
	Email      string
	FullName   string
	Attributes map[string]json.RawMessage
}

// DisplayName returns the full name when set, otherwise the email.
func (u *User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Email
}

// Attribute decodes the raw attribute name into dst. It reports false when
// the attribute is absent.
func (u *User) Attribute(name string, dst any) (bool, error) {
	raw, ok := u.Attributes[name]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return true, fmt.Errorf("decode user attribute %q: %w", name, err)
	}
	return true, nil
}

func (u *User) UnmarshalJSON(data []byte) error {
	var attrs map[string]json.RawMessage
	if err := json.Unmarshal(data, &attrs); err != nil {
		return err
	}
	if attrs == nil {
		return fmt.Errorf("user: expected a JSON object")
	}

	var known struct {
		ID       json.RawMessage `json:"id"`
		Email    string          `json:"email"`
		FullName *string         `json:"full_name"`
	}
	if err := json.Unmarshal(data, &known); err != nil {
		return err
	}

	*u = User{Email: known.Email, Attributes: attrs}
	if known.FullName != nil {
		u.FullName = *known.FullName
	}
	u.ID = idString(known.ID)
	return nil
}

func (u User) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(u.Attributes)+3)
	for k, v := range u.Attributes {
		out[k] = v
	}
	out["email"] = u.Email
	if u.ID != "" {
		if _, ok := u.Attributes["id"]; !ok {
			out["id"] = u.ID
		}
	}
	if u.FullName != "" {
		out["full_name"] = u.FullName
	}
	return json.Marshal(out)
}

// idString accepts both string and numeric identifiers.
func idString(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
