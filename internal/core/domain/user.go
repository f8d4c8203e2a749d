package domain

import (
	"bytes"
	"encoding/json"
	"strings"
)

// UserType is the role claim carried by the token and mirrored on the user record.
type UserType string

const (
	UserTypeAdmin    UserType = "admin"
	UserTypeEmployee UserType = "employee"
	UserTypeCustomer UserType = "customer"
	UserTypeOther    UserType = "other"
)

// UserID accepts either a JSON number or a JSON string from the remote API and is
// always written back as a string.
type UserID string

func (id *UserID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = UserID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = UserID(n.String())
	return nil
}

// User models the authenticated account as the remote API describes it.
type User struct {
	ID        UserID   `json:"id"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Email     string   `json:"email"`
	UserType  UserType `json:"userType"`
}

// DisplayName is the name shown in the dashboard greeting.
func (u User) DisplayName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Email
	}
	return name
}
