package store

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/terraincognita07/fema/internal/security"
)

// Store persists one named bucket at a time: canonical JSON, sealed
// with the session key, written through the key-value backend.
type Store struct {
	backend KeyValue
	cipher  *security.BucketCipher
}

func NewStore(backend KeyValue, cipher *security.BucketCipher) *Store {
	return &Store{backend: backend, cipher: cipher}
}

// SaveData serializes and encrypts value, then persists it under
// bucket. The whole bucket is rewritten on every call; there is no
// incremental persistence.
func (store *Store) SaveData(bucket string, value any) error {
	plaintext, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal bucket %s: %w", bucket, err)
	}

	sealed, err := store.cipher.Seal(bucket, plaintext)
	if err != nil {
		return fmt.Errorf("seal bucket %s: %w", bucket, err)
	}

	if err := store.backend.Set(map[string]string{bucket: sealed}); err != nil {
		return fmt.Errorf("persist bucket %s: %w", bucket, err)
	}
	return nil
}

// LoadData decrypts bucket into target. An absent bucket or one that
// fails to decrypt leaves target at its empty default and reports no
// error: availability over error visibility, so a wrong key looks like
// a fresh account instead of crashing the session. The failure is
// still logged for diagnosis.
func (store *Store) LoadData(bucket string, target any) error {
	values, err := store.backend.Get([]string{bucket})
	if err != nil {
		return fmt.Errorf("read bucket %s: %w", bucket, err)
	}

	sealed, ok := values[bucket]
	if !ok || sealed == "" {
		return nil
	}

	plaintext, err := store.cipher.Open(bucket, sealed)
	if err != nil {
		log.Printf("bucket %s failed to decrypt, treating as empty", bucket)
		return nil
	}

	if err := json.Unmarshal(plaintext, target); err != nil {
		log.Printf("bucket %s holds malformed data, treating as empty", bucket)
		return nil
	}
	return nil
}

// ClearAll erases every bucket. Irreversible.
func (store *Store) ClearAll() error {
	if err := store.backend.Clear(); err != nil {
		return fmt.Errorf("clear buckets: %w", err)
	}
	return nil
}
