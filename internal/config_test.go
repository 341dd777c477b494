package internal

import (
	"strings"
	"testing"
)

func TestAuthConfig_DisabledMode(t *testing.T) {
	cfg := AuthConfig{Mode: "disabled", Token: ""}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("disabled mode should pass: %v", err)
	}
	if cfg.AuthEnabled() {
		t.Error("disabled mode should not be enabled")
	}
}

func TestAuthConfig_EmptyModeDefaultsDisabled(t *testing.T) {
	cfg := AuthConfig{Mode: "", Token: ""}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("empty mode should default to disabled: %v", err)
	}
	if cfg.Mode != AuthModeDisabled {
		t.Errorf("mode = %q, want %q", cfg.Mode, AuthModeDisabled)
	}
}

func TestAuthConfig_TokenModeValid(t *testing.T) {
	cfg := AuthConfig{Mode: "token", Token: "mysecret"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("token mode with token should pass: %v", err)
	}
	if !cfg.AuthEnabled() {
		t.Error("token mode should be enabled")
	}
}

func TestAuthConfig_TokenModeEmptyToken(t *testing.T) {
	cfg := AuthConfig{Mode: "token", Token: ""}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("token mode with empty token should fail")
	}
	if !strings.Contains(err.Error(), "token is empty") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestAuthConfig_InvalidMode(t *testing.T) {
	cfg := AuthConfig{Mode: "magic", Token: "x"}
	if cfg.Validate() == nil {
		t.Fatal("invalid mode should fail validation")
	}
}

func TestProducerConfig_DisabledWithoutKey(t *testing.T) {
	cfg := ProducerConfig{}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("empty producer config should pass: %v", err)
	}
	if cfg.Enabled() {
		t.Error("producer without api key should be disabled")
	}
}

func TestProducerConfig_KeyRequiresModel(t *testing.T) {
	cfg := ProducerConfig{APIKey: "sk-test"}
	if cfg.Validate() == nil {
		t.Fatal("api key without model should fail")
	}
	cfg.Model = "gpt-4o-mini"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("api key with model should pass: %v", err)
	}
	if !cfg.Enabled() {
		t.Error("producer with api key should be enabled")
	}
}

func TestStoreConfig_RequiresPath(t *testing.T) {
	cfg := StoreConfig{}
	if cfg.Validate() == nil {
		t.Fatal("empty store path should fail")
	}
}

func TestFullConfig_AuthValidationCalled(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Auth.Mode = "token"
	cfg.Auth.Token = ""
	if cfg.Validate() == nil {
		t.Fatal("full config validate should catch auth error")
	}
}

func TestHTTPConfig_Address(t *testing.T) {
	cfg := HTTPConfig{Port: 9090}
	if got := cfg.Address(); got != ":9090" {
		t.Errorf("address = %q", got)
	}
}
