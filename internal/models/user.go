package models

import "time"

// UserCredentialRecord is the singleton user bucket. It is stored
// encrypted under the derived key and only ever read back to verify a
// login: a successful decrypt plus a username match means the supplied
// credentials are the ones the account was created with.
type UserCredentialRecord struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"passwordHash"`
	CreatedAt    time.Time `json:"createdAt"`
}
