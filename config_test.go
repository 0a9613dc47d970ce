package goIdentity

import (
	"context"
	"testing"
	"time"

	"github.com/MrEthical07/goIdentity/role"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Token.TTL != 24*time.Hour {
		t.Fatalf("TTL = %v, want 24h", cfg.Token.TTL)
	}
	if cfg.Token.SigningMethod != "ed25519" {
		t.Fatalf("signing method = %q, want ed25519", cfg.Token.SigningMethod)
	}
	if cfg.Directory.DefaultRole != role.Viewer {
		t.Fatalf("default role = %v, want viewer", cfg.Directory.DefaultRole)
	}
	if cfg.Directory.MinPasswordLength != 6 {
		t.Fatalf("min password length = %d, want 6", cfg.Directory.MinPasswordLength)
	}
	if !cfg.Metrics.Enabled {
		t.Fatal("metrics should default enabled")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config must validate: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		wantOK bool
	}{
		{"defaults", func(c *Config) {}, true},
		{"zero TTL", func(c *Config) { c.Token.TTL = 0 }, false},
		{"negative TTL", func(c *Config) { c.Token.TTL = -time.Hour }, false},
		{"unknown signing method", func(c *Config) { c.Token.SigningMethod = "rs256" }, false},
		{"hs256 accepted", func(c *Config) { c.Token.SigningMethod = "hs256" }, true},
		{"zero min password length", func(c *Config) { c.Directory.MinPasswordLength = 0 }, false},
		{"invalid default role", func(c *Config) { c.Directory.DefaultRole = role.Role(99) }, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantOK && err != nil {
				t.Fatalf("Validate: %v", err)
			}
			if !tc.wantOK && err == nil {
				t.Fatal("Validate accepted invalid config")
			}
		})
	}
}

func TestWithConfigCopiesKeyMaterial(t *testing.T) {
	cfg := testConfig(t)
	original := append([]byte(nil), cfg.Token.PrivateKey...)

	b := New().WithConfig(cfg).WithStore(newMockStore())

	// Mutating the caller's slice after WithConfig must not reach the
	// builder's copy.
	for i := range cfg.Token.PrivateKey {
		cfg.Token.PrivateKey[i] = 0
	}

	engine, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	res := mustRegister(t, engine, "alice@example.com")
	if _, err := engine.Authenticate(context.Background(), res.Token); err != nil {
		t.Fatalf("token signed with clobbered key: %v", err)
	}
	copy(cfg.Token.PrivateKey, original)
}

func TestBuilderSingleUse(t *testing.T) {
	b := New().WithConfig(testConfig(t)).WithStore(newMockStore())

	if _, err := b.Build(); err != nil {
		t.Fatalf("first Build: %v", err)
	}
	if _, err := b.Build(); err == nil {
		t.Fatal("second Build should fail")
	}
}

func TestBuilderRequiresStore(t *testing.T) {
	if _, err := New().WithConfig(testConfig(t)).Build(); err == nil {
		t.Fatal("Build without store should fail")
	}
}
