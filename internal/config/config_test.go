package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		yaml      string
		envVars   map[string]string
		wantErr   string
		checkFunc func(t *testing.T, cfg *Config)
	}{
		{
			name: "valid minimal config",
			yaml: `
api:
  base_url: http://localhost:8089/
oauth:
  client_id: id
  client_secret: secret
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "http://localhost:8089", cfg.API.BaseURL)
				assert.Equal(t, "id", cfg.OAuth.ClientID)
				assert.Equal(t, "secret", cfg.OAuth.ClientSecret)
			},
		},
		{
			name: "defaults applied for optional fields",
			yaml: `
api:
  base_url: http://localhost:8089
oauth:
  token: abc
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "seek", cfg.API.Vendor)
				assert.Equal(t, 30*time.Second, cfg.API.Timeout)
				assert.Equal(t, "http://localhost:8089/oauth2/token", cfg.OAuth.TokenURL)
				assert.InDelta(t, 5.0, cfg.RateLimit.PerSecond, 0.001)
				assert.Equal(t, 10, cfg.RateLimit.Burst)
				assert.Equal(t, int64(0), cfg.RateLimit.DailyLimit)
				assert.Equal(t, "bbolt", cfg.Journal.Backend)
				assert.Equal(t, "adpost-journal.db", cfg.Journal.Path)
				assert.Equal(t, 5432, cfg.Journal.Postgres.Port)
				assert.Equal(t, "disable", cfg.Journal.Postgres.SSLMode)
				assert.Equal(t, 5*time.Minute, cfg.Sync.Interval)
				assert.Equal(t, "adpost", cfg.Telemetry.ServiceName)
				assert.Equal(t, "info", cfg.Logging.Level)
				assert.Equal(t, "text", cfg.Logging.Format)
			},
		},
		{
			name: "env var substitution",
			yaml: `
api:
  base_url: http://localhost:8089
oauth:
  client_id: id
  client_secret: "${TEST_ADPOST_SECRET}"
`,
			envVars: map[string]string{
				"TEST_ADPOST_SECRET": "secret123",
			},
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "secret123", cfg.OAuth.ClientSecret)
			},
		},
		{
			name: "missing required api.base_url",
			yaml: `
oauth:
  token: abc
`,
			wantErr: "api.base_url is required",
		},
		{
			name: "relative api.base_url",
			yaml: `
api:
  base_url: /advertisement
oauth:
  token: abc
`,
			wantErr: `api.base_url must be an absolute URL (got "/advertisement")`,
		},
		{
			name: "missing client credentials",
			yaml: `
api:
  base_url: http://localhost:8089
`,
			wantErr: "oauth.client_id is required when oauth.token is not set",
		},
		{
			name: "missing client secret",
			yaml: `
api:
  base_url: http://localhost:8089
oauth:
  client_id: id
`,
			wantErr: "oauth.client_secret is required when oauth.token is not set",
		},
		{
			name: "negative rate limit",
			yaml: `
api:
  base_url: http://localhost:8089
oauth:
  token: abc
rate_limit:
  daily_limit: -1
`,
			wantErr: "rate_limit values must not be negative",
		},
		{
			name: "invalid journal backend",
			yaml: `
api:
  base_url: http://localhost:8089
oauth:
  token: abc
journal:
  backend: sqlite
`,
			wantErr: `journal.backend must be one of: bbolt, postgres, none (got "sqlite")`,
		},
		{
			name: "postgres journal missing connection",
			yaml: `
api:
  base_url: http://localhost:8089
oauth:
  token: abc
journal:
  backend: postgres
`,
			wantErr: "journal.dsn or journal.postgres.host is required when backend is postgres",
		},
		{
			name: "sync interval too short",
			yaml: `
api:
  base_url: http://localhost:8089
oauth:
  token: abc
sync:
  interval: 100ms
`,
			wantErr: "sync.interval must be at least 1s",
		},
		{
			name: "discord enabled without webhook",
			yaml: `
api:
  base_url: http://localhost:8089
oauth:
  token: abc
notifications:
  discord:
    enabled: true
`,
			wantErr: "notifications.discord.webhook_url is required when discord is enabled",
		},
		{
			name:    "invalid YAML",
			yaml:    `{{{not valid yaml`,
			wantErr: "parsing config YAML",
		},
		{
			name: "full config with overrides",
			yaml: `
api:
  base_url: https://adposting.example.com
  vendor: acme
  user_agent: agency-sync/2
  timeout: 10s
  log_bodies: true
oauth:
  token_url: https://auth.example.com/oauth/token
  client_id: my-client
  client_secret: my-secret
  scopes: [adposting, advertisements]
rate_limit:
  per_second: 2
  burst: 4
  daily_limit: 1000
journal:
  backend: postgres
  postgres:
    host: db.example.com
    port: 5433
    name: adpost
    user: admin
    password: pass
    sslmode: require
sync:
  interval: 30m
  limit: 50
  stagger: 2s
notifications:
  discord:
    enabled: true
    webhook_url: https://discord.com/api/webhooks/123
telemetry:
  otlp_endpoint: otel-collector:4317
  insecure: true
  service_name: adpost-prod
logging:
  level: debug
  format: json
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "acme", cfg.API.Vendor)
				assert.Equal(t, "agency-sync/2", cfg.API.UserAgent)
				assert.Equal(t, 10*time.Second, cfg.API.Timeout)
				assert.True(t, cfg.API.LogBodies)
				assert.Equal(t, "https://auth.example.com/oauth/token", cfg.OAuth.TokenURL)
				assert.Equal(t, []string{"adposting", "advertisements"}, cfg.OAuth.Scopes)
				assert.InDelta(t, 2.0, cfg.RateLimit.PerSecond, 0.001)
				assert.Equal(t, int64(1000), cfg.RateLimit.DailyLimit)
				assert.Equal(t, "postgres", cfg.Journal.Backend)
				assert.Equal(t,
					"host=db.example.com port=5433 dbname=adpost user=admin password=pass sslmode=require",
					cfg.Journal.ConnString(),
				)
				assert.Equal(t, 30*time.Minute, cfg.Sync.Interval)
				assert.Equal(t, 50, cfg.Sync.Limit)
				assert.Equal(t, 2*time.Second, cfg.Sync.Stagger)
				assert.True(t, cfg.Notifications.Discord.Enabled)
				assert.Equal(t, "otel-collector:4317", cfg.Telemetry.OTLPEndpoint)
				assert.True(t, cfg.Telemetry.Insecure)
				assert.Equal(t, "adpost-prod", cfg.Telemetry.ServiceName)
				assert.Equal(t, "debug", cfg.Logging.Level)
				assert.Equal(t, "json", cfg.Logging.Format)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Only parallelize tests that don't modify env vars.
			if len(tt.envVars) == 0 {
				t.Parallel()
			}

			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			dir := t.TempDir()
			path := filepath.Join(dir, "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0o644))

			cfg, err := Load(path)

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, cfg)

			if tt.checkFunc != nil {
				tt.checkFunc(t, cfg)
			}
		})
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	t.Parallel()

	_, err := Load("/nonexistent/path/config.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

func TestLoad_JoinsErrors(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("journal:\n  backend: nope\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api.base_url is required")
	assert.Contains(t, err.Error(), "oauth.client_id is required")
	assert.Contains(t, err.Error(), "journal.backend must be one of")
}

func TestFinalize(t *testing.T) {
	t.Parallel()

	cfg := &Config{
		API:   APIConfig{BaseURL: "http://localhost:8089"},
		OAuth: OAuthConfig{Token: "abc"},
	}
	require.NoError(t, cfg.Finalize())
	assert.Equal(t, "seek", cfg.API.Vendor)
	assert.Equal(t, "bbolt", cfg.Journal.Backend)
}

func TestJournalConfig_ConnString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  JournalConfig
		want string
	}{
		{
			name: "explicit DSN wins",
			cfg: JournalConfig{
				DSN:      "postgres://u:p@db/adpost",
				Postgres: DatabaseConfig{Host: "ignored"},
			},
			want: "postgres://u:p@db/adpost",
		},
		{
			name: "built from postgres block",
			cfg: JournalConfig{
				Postgres: DatabaseConfig{
					Host:     "localhost",
					Port:     5432,
					Name:     "adpost",
					User:     "testuser",
					Password: "testpass",
					SSLMode:  "disable",
				},
			},
			want: "host=localhost port=5432 dbname=adpost user=testuser password=testpass sslmode=disable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.cfg.ConnString())
		})
	}
}
