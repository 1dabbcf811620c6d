package store

import (
	"errors"
	"time"

	"github.com/terraincognita07/fema/internal/models"
	"github.com/terraincognita07/fema/internal/security"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

// VerifyCredentials checks a login against the stored encrypted
// credential record. The record decrypting at all means the derived
// key was right; the embedded username and bcrypt hash are verified on
// top of that. A missing record reports ErrInvalidCredentials too, so
// the caller can decide whether to register instead.
func VerifyCredentials(backend KeyValue, key []byte, username string, password string) (models.UserCredentialRecord, error) {
	cipher, err := security.NewBucketCipher(key)
	if err != nil {
		return models.UserCredentialRecord{}, err
	}

	values, err := backend.Get([]string{models.BucketUser})
	if err != nil {
		return models.UserCredentialRecord{}, err
	}
	sealed, ok := values[models.BucketUser]
	if !ok || sealed == "" {
		return models.UserCredentialRecord{}, ErrInvalidCredentials
	}

	record := models.UserCredentialRecord{}
	recordStore := NewStore(backend, cipher)
	if err := recordStore.LoadData(models.BucketUser, &record); err != nil {
		return models.UserCredentialRecord{}, err
	}
	if record.Username != username {
		return models.UserCredentialRecord{}, ErrInvalidCredentials
	}
	if record.PasswordHash != "" {
		if bcrypt.CompareHashAndPassword([]byte(record.PasswordHash), []byte(password)) != nil {
			return models.UserCredentialRecord{}, ErrInvalidCredentials
		}
	}
	return record, nil
}

// HasCredentials reports whether any credential record is persisted,
// without attempting to decrypt it.
func HasCredentials(backend KeyValue) (bool, error) {
	values, err := backend.Get([]string{models.BucketUser})
	if err != nil {
		return false, err
	}
	sealed, ok := values[models.BucketUser]
	return ok && sealed != "", nil
}

// CreateCredentials writes a fresh encrypted credential record for a
// first-time account.
func CreateCredentials(backend KeyValue, key []byte, username string, password string) (models.UserCredentialRecord, error) {
	cipher, err := security.NewBucketCipher(key)
	if err != nil {
		return models.UserCredentialRecord{}, err
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.UserCredentialRecord{}, err
	}

	record := models.UserCredentialRecord{
		Username:     username,
		PasswordHash: string(passwordHash),
		CreatedAt:    time.Now().UTC(),
	}
	recordStore := NewStore(backend, cipher)
	if err := recordStore.SaveData(models.BucketUser, record); err != nil {
		return models.UserCredentialRecord{}, err
	}
	return record, nil
}
