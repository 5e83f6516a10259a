package model

import (
	"encoding/json"
	"unicode"
)

// User represents a registered investor. Users are created outside the
// console and are read-only here.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`

	// Extra carries any other stored fields through unchanged.
	Extra Extra `json:"-"`
}

var userFields = []string{"id", "name", "email"}

// MarshalJSON encodes the user together with its passthrough fields.
func (u User) MarshalJSON() ([]byte, error) {
	type plain User
	return mergeExtra(plain(u), u.Extra)
}

// UnmarshalJSON decodes a stored user, keeping unknown fields in Extra.
func (u *User) UnmarshalJSON(data []byte) error {
	type plain User
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	extra, err := splitExtra(data, userFields)
	if err != nil {
		return err
	}
	p.Extra = extra
	*u = User(p)
	return nil
}

// Initial returns the upper-cased first letter of the user's name, or "U"
// when the name is empty.
func (u User) Initial() string {
	for _, r := range u.Name {
		return string(unicode.ToUpper(r))
	}
	return "U"
}
