package validation

import (
	"github.com/ndewijer/Investment-Admin-Console/internal/api/request"
)

// ValidateLogin checks that a login request carries a password.
func ValidateLogin(req request.LoginRequest) error {
	if req.Password == "" {
		return &Error{Fields: map[string]string{"password": "password is required"}}
	}
	return nil
}
