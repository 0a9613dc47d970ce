package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/crypto/argon2"
)

const (
	minMemoryKB    uint32 = 8 * 1024
	minTimeCost    uint32 = 1
	minParallelism uint8  = 1
	minSaltLength  uint32 = 16
	minKeyLength   uint32 = 16
	algorithmID           = "argon2id"
)

// ErrMalformedHash is returned by [Hasher.Verify] when the stored hash
// cannot be decoded. Hashes produced by this package always decode, so
// hitting this error indicates a corrupted record, not a bad password.
var ErrMalformedHash = errors.New("malformed credential hash")

// Config fixes the Argon2id cost parameters for a [Hasher]. Parameters
// are validated once at construction and never change afterwards.
type Config struct {
	Memory      uint32 // in KB
	Time        uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// Hasher derives and verifies credential hashes. It is stateless apart
// from its cost configuration and safe for concurrent use.
type Hasher struct {
	config Config
}

type decodedHash struct {
	memory      uint32
	time        uint32
	parallelism uint8
	salt        []byte
	digest      []byte
}

// NewHasher validates cfg against conservative floors and returns a Hasher.
func NewHasher(cfg Config) (*Hasher, error) {
	if cfg.Memory < minMemoryKB {
		return nil, errors.New("password memory must be >= 8192 KB")
	}
	if cfg.Time < minTimeCost {
		return nil, errors.New("password time must be >= 1")
	}
	if cfg.Parallelism < minParallelism {
		return nil, errors.New("password parallelism must be >= 1")
	}
	if cfg.SaltLength < minSaltLength {
		return nil, errors.New("password salt length must be >= 16")
	}
	if cfg.KeyLength < minKeyLength {
		return nil, errors.New("password key length must be >= 16")
	}
	return &Hasher{config: cfg}, nil
}

// Hash derives a salted Argon2id hash of plaintext and encodes it in PHC
// string format. The salt is freshly drawn per call, so two hashes of the
// same plaintext never match. Length policy is the caller's concern; only
// the empty password is rejected here.
func (h *Hasher) Hash(plaintext string) (string, error) {
	if plaintext == "" {
		return "", errors.New("empty password")
	}

	salt := make([]byte, h.config.SaltLength)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", err
	}

	digest := argon2.IDKey(
		[]byte(plaintext),
		salt,
		h.config.Time,
		h.config.Memory,
		h.config.Parallelism,
		h.config.KeyLength,
	)

	return fmt.Sprintf(
		"$%s$v=%d$m=%d,t=%d,p=%d$%s$%s",
		algorithmID,
		argon2.Version,
		h.config.Memory,
		h.config.Time,
		h.config.Parallelism,
		base64.StdEncoding.EncodeToString(salt),
		base64.StdEncoding.EncodeToString(digest),
	), nil
}

// Verify recomputes the digest of plaintext under the parameters embedded
// in encodedHash and compares in constant time. A mismatch returns
// (false, nil); only an undecodable hash returns an error.
func (h *Hasher) Verify(plaintext, encodedHash string) (bool, error) {
	dec, err := decodeHash(encodedHash)
	if err != nil {
		return false, err
	}

	computed := argon2.IDKey(
		[]byte(plaintext),
		dec.salt,
		dec.time,
		dec.memory,
		dec.parallelism,
		uint32(len(dec.digest)),
	)

	return subtle.ConstantTimeCompare(computed, dec.digest) == 1, nil
}

func decodeHash(encodedHash string) (*decodedHash, error) {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 || parts[0] != "" {
		return nil, ErrMalformedHash
	}
	if parts[1] != algorithmID {
		return nil, fmt.Errorf("%w: unsupported algorithm", ErrMalformedHash)
	}

	version, ok := strings.CutPrefix(parts[2], "v=")
	if !ok {
		return nil, fmt.Errorf("%w: missing version", ErrMalformedHash)
	}
	v, err := strconv.Atoi(version)
	if err != nil || v != argon2.Version {
		return nil, fmt.Errorf("%w: unsupported argon2 version", ErrMalformedHash)
	}

	dec := &decodedHash{}
	if err := decodeParams(parts[3], dec); err != nil {
		return nil, err
	}

	dec.salt, err = base64.StdEncoding.DecodeString(parts[4])
	if err != nil || len(dec.salt) < int(minSaltLength) {
		return nil, fmt.Errorf("%w: bad salt", ErrMalformedHash)
	}

	dec.digest, err = base64.StdEncoding.DecodeString(parts[5])
	if err != nil || len(dec.digest) == 0 {
		return nil, fmt.Errorf("%w: bad digest", ErrMalformedHash)
	}

	return dec, nil
}

func decodeParams(part string, dec *decodedHash) error {
	pairs := strings.Split(part, ",")
	if len(pairs) != 3 {
		return fmt.Errorf("%w: bad parameter block", ErrMalformedHash)
	}

	var haveMemory, haveTime, haveParallelism bool
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found {
			return fmt.Errorf("%w: bad parameter entry", ErrMalformedHash)
		}
		switch key {
		case "m":
			v, err := strconv.ParseUint(value, 10, 32)
			if err != nil || v < uint64(minMemoryKB) {
				return fmt.Errorf("%w: bad memory parameter", ErrMalformedHash)
			}
			dec.memory = uint32(v)
			haveMemory = true
		case "t":
			v, err := strconv.ParseUint(value, 10, 32)
			if err != nil || v < uint64(minTimeCost) {
				return fmt.Errorf("%w: bad time parameter", ErrMalformedHash)
			}
			dec.time = uint32(v)
			haveTime = true
		case "p":
			v, err := strconv.ParseUint(value, 10, 8)
			if err != nil || v < uint64(minParallelism) {
				return fmt.Errorf("%w: bad parallelism parameter", ErrMalformedHash)
			}
			dec.parallelism = uint8(v)
			haveParallelism = true
		default:
			return fmt.Errorf("%w: unknown parameter", ErrMalformedHash)
		}
	}

	if !haveMemory || !haveTime || !haveParallelism {
		return fmt.Errorf("%w: missing parameters", ErrMalformedHash)
	}
	return nil
}
