package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"GO_ENV", "DATABASE_URL", "PORT", "CONTEXT_TIMEOUT", "JWT_SECRET", "CORS_ALLOWED_ORIGINS",
		"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB", "REDIS_CHANNEL",
		"EMAIL_PROVIDER", "EMAIL_FROM_ADDRESS", "EMAIL_FROM_NAME",
		"AWS_REGION", "AWS_ACCESS_KEY_ID", "AWS_SECRET_ACCESS_KEY", "SES_INSECURE_SKIP_VERIFY",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 5*time.Second, cfg.ContextTimeout)
	assert.Contains(t, cfg.DBUrl, "conferencecfp")
	assert.NotEmpty(t, cfg.JWTSecret)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Equal(t, "cfp.notifications", cfg.Redis.Channel)
	assert.Equal(t, "noop", cfg.Email.Provider)
	assert.Nil(t, cfg.CORSAllowedOrigins)
}

func TestLoad_FromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("CONTEXT_TIMEOUT", "750ms")
	t.Setenv("JWT_SECRET", "mithril")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://cfp.example.org, https://admin.example.org ,")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("EMAIL_PROVIDER", "ses")
	t.Setenv("AWS_REGION", "eu-west-1")
	t.Setenv("SES_INSECURE_SKIP_VERIFY", "true")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 750*time.Millisecond, cfg.ContextTimeout)
	assert.Equal(t, "mithril", cfg.JWTSecret)
	assert.Equal(t, []string{"https://cfp.example.org", "https://admin.example.org"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, "ses", cfg.Email.Provider)
	assert.Equal(t, "eu-west-1", cfg.Email.AWSRegion)
	assert.True(t, cfg.Email.SESInsecureSkipVerify)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"bad timeout", "CONTEXT_TIMEOUT", "soon"},
		{"negative timeout", "CONTEXT_TIMEOUT", "-1s"},
		{"bad redis db", "REDIS_DB", "zero"},
		{"bad skip verify", "SES_INSECURE_SKIP_VERIFY", "maybe"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.val)

			_, err := Load()

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}

func TestLoad_ProductionRequiresSecret(t *testing.T) {
	clearEnv(t)
	t.Setenv("GO_ENV", "production")

	_, err := Load()

	require.ErrorContains(t, err, "JWT_SECRET")
}
