package domain

import (
	"errors"
	"strings"
	"time"
)

// Known account roles. Stored and transported upper-case, matching the
// values minted into tokens and the x-role trust header.
const (
	RoleAdmin   = "ADMIN"
	RoleCliente = "CLIENTE"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidRole = errors.New("invalid role")
var ErrAlreadyLinked = errors.New("user already linked to a client account")
var ErrInvalidToken = errors.New("invalid token")

// ParseRole normalises a caller-supplied role to its canonical form.
func ParseRole(s string) (string, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleCliente:
		return RoleCliente, nil
	default:
		return "", ErrInvalidRole
	}
}

// User models an account in the credential store.
//
// ClientID is the identifier of the externally provisioned client record.
// It is nil until the provisioning call succeeds, which may happen after
// tokens naming this user have already been minted.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	ClientID     *int64    `json:"client_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Linked reports whether the external client record has been provisioned.
func (u *User) Linked() bool {
	return u.ClientID != nil
}

// LinkClient transitions the account from unlinked to linked. Linking is a
// one-shot transition; a second link attempt is a programming error surfaced
// as ErrAlreadyLinked rather than a silent overwrite.
func (u *User) LinkClient(clientID int64) error {
	if u.ClientID != nil {
		return ErrAlreadyLinked
	}
	u.ClientID = &clientID
	return nil
}
