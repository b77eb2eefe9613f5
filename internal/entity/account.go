package entity

import (
	"strings"

	"github.com/gofrs/uuid/v5"
)

type AccessLevel string

const (
	AccessAdmin   AccessLevel = "ADMIN"
	AccessSupport AccessLevel = "SUPPORT"
)

func (l AccessLevel) IsValid() bool {
	return l == AccessAdmin || l == AccessSupport
}

// Account is a login credential plus access level. The password is stored
// bcrypt-hashed; the JSON key stays "password" for backup compatibility with
// snapshots written by older versions.
type Account struct {
	ID           uuid.UUID   `json:"id"`
	Username     string      `json:"username"`
	PasswordHash string      `json:"password"`
	AccessLevel  AccessLevel `json:"accessLevel"`
}

// MatchesUsername compares usernames case-insensitively.
func (a *Account) MatchesUsername(username string) bool {
	return strings.EqualFold(a.Username, username)
}
