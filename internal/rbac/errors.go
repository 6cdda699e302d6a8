package rbac

import (
	"errors"
	"fmt"
)

// ErrIdentifierNotFound is returned when a login identifier resolves to no
// account. Handlers surface it as a generic "user not found or invalid
// identifier" message so callers cannot enumerate accounts.
var ErrIdentifierNotFound = errors.New("user not found or invalid identifier")

// MissingEmailError marks a matched member or club record without an email
// on file. Distinct from not-found so an admin can repair the record.
type MissingEmailError struct {
	Identifier string
}

func (e *MissingEmailError) Error() string {
	return fmt.Sprintf("account matched for %q but has no email on file", e.Identifier)
}

// AccessDeniedError is returned when a recognized principal attempts an
// operation on a module it holds no permission for. Fatal to the request,
// never retried, always audited.
type AccessDeniedError struct {
	Email  string
	Role   Role
	Module Module
}

func (e *AccessDeniedError) Error() string {
	return fmt.Sprintf("access denied: role %q (%s) has no permission on module %q", e.Role, e.Email, e.Module)
}
