package password

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

// Hashes are encoded as "pbkdf2:sha256:<iterations>$<salt-hex>$<key-hex>" so
// the parameters travel with the record and can be raised without breaking
// verification of older hashes.
const (
	saltLength = 16
	iterations = 600_000
	keyLength  = 32
)

// Hash derives a salted one-way hash of the raw password. Each call draws a
// fresh random salt, so equal passwords never share a hash.
func Hash(raw string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	key := pbkdf2.Key([]byte(raw), salt, iterations, keyLength, sha256.New)
	return fmt.Sprintf("pbkdf2:sha256:%d$%s$%s",
		iterations, hex.EncodeToString(salt), hex.EncodeToString(key)), nil
}

// Verify reports whether raw matches the encoded hash. The comparison is
// constant-time with respect to the stored key.
func Verify(encoded, raw string) bool {
	method, salt, key, ok := decode(encoded)
	if !ok {
		return false
	}
	iters, err := strconv.Atoi(strings.TrimPrefix(method, "pbkdf2:sha256:"))
	if err != nil || iters < 1 {
		return false
	}
	derived := pbkdf2.Key([]byte(raw), salt, iters, len(key), sha256.New)
	return subtle.ConstantTimeCompare(derived, key) == 1
}

func decode(encoded string) (method string, salt, key []byte, ok bool) {
	parts := strings.SplitN(encoded, "$", 3)
	if len(parts) != 3 || !strings.HasPrefix(parts[0], "pbkdf2:sha256:") {
		return "", nil, nil, false
	}
	salt, err := hex.DecodeString(parts[1])
	if err != nil || len(salt) < 8 {
		return "", nil, nil, false
	}
	key, err = hex.DecodeString(parts[2])
	if err != nil || len(key) == 0 {
		return "", nil, nil, false
	}
	return parts[0], salt, key, true
}
