package domain

import (
	"fmt"
	"regexp"
)

// nameRegex matches account names: up to 12 characters of a-z, 1-5 and '.', not ending with '.'
var nameRegex = regexp.MustCompile(`^[a-z1-5.]{0,11}[a-z1-5]$`)

// Name is an account name
type Name string

// Valid checks if the name is a well-formed account name
func (n Name) Valid() bool {
	return nameRegex.MatchString(string(n))
}

// IsEmpty reports whether the name is unset
func (n Name) IsEmpty() bool {
	return n == ""
}

// String returns the string representation of the name
func (n Name) String() string {
	return string(n)
}

// ParseName parses and validates an account name
func ParseName(s string) (Name, error) {
	n := Name(s)
	if !n.Valid() {
		return "", fmt.Errorf("%w: invalid account name %q", ErrValidation, s)
	}
	return n, nil
}

// Signers is the set of accounts that authorized an action
type Signers []Name

// Has reports whether account is among the signers
func (s Signers) Has(account Name) bool {
	for _, signer := range s {
		if signer == account {
			return true
		}
	}
	return false
}

// RequireAuth fails with ErrMissingAuthority unless account signed
func RequireAuth(signers Signers, account Name) error {
	if !signers.Has(account) {
		return fmt.Errorf("%w %s", ErrMissingAuthority, account)
	}
	return nil
}
