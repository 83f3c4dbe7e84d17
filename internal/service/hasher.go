package service

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher hashes plaintext passwords into self-describing digests and
// checks plaintext candidates against them.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Check(password, digest string) bool
}

// Argon2Params are the argon2id cost parameters embedded in every digest.
type Argon2Params struct {
	MemoryKiB   uint32
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// DefaultArgon2Params returns m=64MiB, t=3, p=4 with a 16-byte salt and a
// 32-byte key.
func DefaultArgon2Params() Argon2Params {
	return Argon2Params{
		MemoryKiB:   64 * 1024,
		Iterations:  3,
		Parallelism: 4,
		SaltLength:  16,
		KeyLength:   32,
	}
}

// Argon2Hasher produces argon2id digests in the PHC string format:
//
//	$argon2id$v=19$m=65536,t=3,p=4$<salt>$<key>
//
// Salt and key are unpadded standard base64. Digests produced by bcrypt are
// still accepted by Check so older accounts keep working.
type Argon2Hasher struct {
	params Argon2Params
}

// NewArgon2Hasher creates an Argon2Hasher. Zero salt or key lengths fall back
// to the defaults.
func NewArgon2Hasher(params Argon2Params) *Argon2Hasher {
	def := DefaultArgon2Params()
	if params.SaltLength == 0 {
		params.SaltLength = def.SaltLength
	}
	if params.KeyLength == 0 {
		params.KeyLength = def.KeyLength
	}
	return &Argon2Hasher{params: params}
}

// Hash derives a digest for password using a fresh random salt.
func (h *Argon2Hasher) Hash(password string) (string, error) {
	salt := make([]byte, h.params.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(password), salt, h.params.Iterations, h.params.MemoryKiB, h.params.Parallelism, h.params.KeyLength)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, h.params.MemoryKiB, h.params.Iterations, h.params.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Check reports whether password matches digest. Unknown or malformed
// digests never match.
func (h *Argon2Hasher) Check(password, digest string) bool {
	if isBcryptDigest(digest) {
		return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
	}

	d, ok := decodeArgon2Digest(digest)
	if !ok {
		return false
	}

	candidate := argon2.IDKey([]byte(password), d.salt, d.params.Iterations, d.params.MemoryKiB, d.params.Parallelism, uint32(len(d.key)))
	return subtle.ConstantTimeCompare(candidate, d.key) == 1
}

// NeedsRehash reports whether digest was produced by another scheme or with
// parameters other than the hasher's current ones.
func (h *Argon2Hasher) NeedsRehash(digest string) bool {
	d, ok := decodeArgon2Digest(digest)
	if !ok {
		return true
	}
	return d.params.MemoryKiB != h.params.MemoryKiB ||
		d.params.Iterations != h.params.Iterations ||
		d.params.Parallelism != h.params.Parallelism ||
		uint32(len(d.key)) != h.params.KeyLength
}

type argon2Digest struct {
	params Argon2Params
	salt   []byte
	key    []byte
}

func decodeArgon2Digest(digest string) (argon2Digest, bool) {
	parts := strings.Split(digest, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return argon2Digest{}, false
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return argon2Digest{}, false
	}

	var d argon2Digest
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &d.params.MemoryKiB, &d.params.Iterations, &d.params.Parallelism); err != nil {
		return argon2Digest{}, false
	}
	if d.params.MemoryKiB == 0 || d.params.Iterations == 0 || d.params.Parallelism == 0 {
		return argon2Digest{}, false
	}

	var err error
	if d.salt, err = base64.RawStdEncoding.DecodeString(parts[4]); err != nil || len(d.salt) == 0 {
		return argon2Digest{}, false
	}
	if d.key, err = base64.RawStdEncoding.DecodeString(parts[5]); err != nil || len(d.key) == 0 {
		return argon2Digest{}, false
	}
	d.params.SaltLength = uint32(len(d.salt))
	d.params.KeyLength = uint32(len(d.key))
	return d, true
}

func isBcryptDigest(digest string) bool {
	return strings.HasPrefix(digest, "$2a$") || strings.HasPrefix(digest, "$2b$") || strings.HasPrefix(digest, "$2y$")
}
