package security

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	blobVersion       = "v1"
	blobPurposePrefix = "fema.bucket."
)

// ErrInvalidCiphertext covers every way a stored blob can fail to
// open: wrong key, truncation, corruption, or a bucket-name mismatch.
// Callers treat them all the same, so no distinction is surfaced.
var ErrInvalidCiphertext = errors.New("invalid ciphertext")

// BucketCipher seals and opens per-bucket blobs with AES-256-GCM under
// a derived key. The bucket name is bound into the additional data, so
// a blob copied between buckets will not decrypt.
type BucketCipher struct {
	aead cipher.AEAD
}

func NewBucketCipher(key []byte) (*BucketCipher, error) {
	if len(key) == 0 {
		return nil, errors.New("bucket cipher key is required")
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("init bucket cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("init bucket aead: %w", err)
	}
	return &BucketCipher{aead: aead}, nil
}

func (bucketCipher *BucketCipher) Seal(bucket string, plaintext []byte) (string, error) {
	trimmedBucket := strings.TrimSpace(bucket)
	if trimmedBucket == "" {
		return "", errors.New("bucket name is required")
	}
	if bucketCipher == nil || bucketCipher.aead == nil {
		return "", errors.New("bucket cipher is not initialized")
	}

	nonce := make([]byte, bucketCipher.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generate bucket nonce: %w", err)
	}

	aad := []byte(blobPurposePrefix + trimmedBucket)
	ciphertext := bucketCipher.aead.Seal(nil, nonce, plaintext, aad)
	payload := make([]byte, 0, len(nonce)+len(ciphertext))
	payload = append(payload, nonce...)
	payload = append(payload, ciphertext...)

	return blobVersion + "." + base64.RawStdEncoding.EncodeToString(payload), nil
}

func (bucketCipher *BucketCipher) Open(bucket string, rawValue string) ([]byte, error) {
	trimmedBucket := strings.TrimSpace(bucket)
	if trimmedBucket == "" {
		return nil, errors.New("bucket name is required")
	}
	if bucketCipher == nil || bucketCipher.aead == nil {
		return nil, errors.New("bucket cipher is not initialized")
	}

	rawValue = strings.TrimSpace(rawValue)
	if rawValue == "" {
		return nil, ErrInvalidCiphertext
	}

	version, encodedPayload, found := strings.Cut(rawValue, ".")
	if !found || version != blobVersion || encodedPayload == "" {
		return nil, ErrInvalidCiphertext
	}

	payload, err := base64.RawStdEncoding.DecodeString(encodedPayload)
	if err != nil {
		return nil, ErrInvalidCiphertext
	}

	nonceSize := bucketCipher.aead.NonceSize()
	if len(payload) <= nonceSize {
		return nil, ErrInvalidCiphertext
	}

	nonce := payload[:nonceSize]
	ciphertext := payload[nonceSize:]
	aad := []byte(blobPurposePrefix + trimmedBucket)
	plaintext, err := bucketCipher.aead.Open(nil, nonce, ciphertext, aad)
	if err != nil {
		return nil, ErrInvalidCiphertext
	}
	return plaintext, nil
}
