package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, "http://localhost:8081", cfg.API.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.API.Timeout)
	assert.Equal(t, 0, cfg.API.MaxRetries)
	assert.Equal(t, "memory", cfg.Store.Provider)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://api.edunity.example")
	t.Setenv("API_TIMEOUT", "5s")
	t.Setenv("API_MAX_RETRIES", "2")
	t.Setenv("EDUNITY_USER_ID", "u1")

	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, "https://api.edunity.example", cfg.API.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, 2, cfg.API.MaxRetries)
	assert.Equal(t, "u1", cfg.Auth.UserID)
}

func TestAPIConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     APIConfig
		wantErr bool
	}{
		{"valid", APIConfig{BaseURL: "http://localhost:8081", Timeout: time.Second}, false},
		{"missing base url", APIConfig{Timeout: time.Second}, true},
		{"relative base url", APIConfig{BaseURL: "localhost:8081", Timeout: time.Second}, true},
		{"zero timeout", APIConfig{BaseURL: "http://x", Timeout: 0}, true},
		{"negative retries", APIConfig{BaseURL: "http://x", Timeout: time.Second, MaxRetries: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestStoreConfigValidate(t *testing.T) {
	valid := StoreConfig{Provider: "memory", TTL: time.Minute, MaxKeys: 10}
	assert.NoError(t, valid.Validate())

	redisNoURL := StoreConfig{Provider: "redis", TTL: time.Minute, MaxKeys: 10}
	assert.Error(t, redisNoURL.Validate())

	unknown := StoreConfig{Provider: "memcached", TTL: time.Minute, MaxKeys: 10}
	assert.Error(t, unknown.Validate())
}
