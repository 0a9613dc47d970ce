package goIdentity

import (
	"errors"
	"time"

	"github.com/MrEthical07/goIdentity/role"
)

// Config assembles all engine tuning in one immutable value. Construct it
// once, hand it to [Builder.WithConfig], and treat it as read-only
// afterwards.
type Config struct {
	Token     TokenConfig
	Password  PasswordConfig
	Directory DirectoryConfig
	Metrics   MetricsConfig
}

/*
====================================
TOKEN CONFIG
====================================
*/

// TokenConfig carries the process-wide signing material and the fixed
// token TTL. The key is loaded once at process start and injected here;
// there is no rotation — rotating would invalidate every outstanding
// token.
type TokenConfig struct {
	TTL           time.Duration
	SigningMethod string // "ed25519" (default), "hs256" optional
	PrivateKey    []byte
	PublicKey     []byte
	Issuer        string
	Leeway        time.Duration
}

/*
====================================
PASSWORD CONFIG
====================================
*/

// PasswordConfig fixes the Argon2id cost parameters.
type PasswordConfig struct {
	Memory      uint32 // in KB
	Time        uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

/*
====================================
DIRECTORY CONFIG
====================================
*/

// DirectoryConfig tunes registration behavior.
type DirectoryConfig struct {
	DefaultRole       role.Role
	MinPasswordLength int
}

// MetricsConfig enables the in-process counters.
type MetricsConfig struct {
	Enabled bool
}

func defaultConfig() Config {
	return Config{
		Token: TokenConfig{
			TTL:           24 * time.Hour,
			SigningMethod: "ed25519",
		},
		Password: PasswordConfig{
			Memory:      64 * 1024,
			Time:        3,
			Parallelism: 2,
			SaltLength:  16,
			KeyLength:   32,
		},
		Directory: DirectoryConfig{
			DefaultRole:       role.Viewer,
			MinPasswordLength: 6,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

// DefaultConfig returns the engine defaults: 24h token TTL, Ed25519
// signing, conservative Argon2id costs, viewer as the registration role.
func DefaultConfig() Config {
	return defaultConfig()
}

// Validate checks config invariants that the Builder relies on.
func (c Config) Validate() error {
	if c.Token.TTL <= 0 {
		return errors.New("token TTL must be positive")
	}
	switch c.Token.SigningMethod {
	case "ed25519", "hs256":
	default:
		return errors.New("unsupported token signing method")
	}
	if c.Directory.MinPasswordLength < 1 {
		return errors.New("minimum password length must be >= 1")
	}
	if !c.Directory.DefaultRole.Valid() {
		return errors.New("directory default role is not a member of the role set")
	}
	return nil
}

func cloneConfig(cfg Config) Config {
	out := cfg
	out.Token.PrivateKey = cloneBytes(cfg.Token.PrivateKey)
	out.Token.PublicKey = cloneBytes(cfg.Token.PublicKey)
	return out
}

func cloneBytes(in []byte) []byte {
	if in == nil {
		return nil
	}
	out := make([]byte, len(in))
	copy(out, in)
	return out
}
