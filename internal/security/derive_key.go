package security

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// keySalt is the fixed application salt. It is not a secret: with a
// single shared salt the derived key's strength rests entirely on the
// password, which is the documented trade-off of this scheme.
const keySalt = "fema-v1-salt-7e2b3c"

// DeriveKey turns credentials into the symmetric bucket key via two
// rounds of salted hashing: h1 = SHA-256(salt|username|password),
// key = SHA-256(salt|hex(h1)). The username is folded to its
// canonical trimmed lower-case form first, so the same account name
// always reaches the same key. Deterministic across processes; no
// per-user salt is stored anywhere.
func DeriveKey(username string, password string) []byte {
	normalized := strings.ToLower(strings.TrimSpace(username))

	first := sha256.Sum256([]byte(keySalt + "|" + normalized + "|" + password))
	firstHex := hex.EncodeToString(first[:])

	final := sha256.Sum256([]byte(keySalt + "|" + firstHex))
	return final[:]
}
