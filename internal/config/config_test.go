package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Instance:    "mycompany.domo.com",
		AccessToken: "token",
		Account: AccountConfig{
			Name:           "snowflake-prod",
			DisplayName:    "Snowflake Production",
			PrivateKeyFile: "/path/to/rsa_key.p8",
		},
		Warehouse: WarehouseConfig{
			Name:       "WH_PROD",
			Activities: []string{"query"},
		},
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "missing instance",
			mutate:  func(c *Config) { c.Instance = "" },
			wantErr: "instance",
		},
		{
			name:    "missing token",
			mutate:  func(c *Config) { c.AccessToken = "" },
			wantErr: "access_token",
		},
		{
			name:    "missing key file",
			mutate:  func(c *Config) { c.Account.PrivateKeyFile = "" },
			wantErr: "account.private_key_file",
		},
		{
			name: "existing account makes account fields optional",
			mutate: func(c *Config) {
				c.ExistingAccountID = "acct-9"
				c.Account = AccountConfig{}
			},
		},
		{
			name:    "invalid activity",
			mutate:  func(c *Config) { c.Warehouse.Activities = []string{"transform"} },
			wantErr: "transform",
		},
		{
			name: "no warehouse skips activity validation",
			mutate: func(c *Config) {
				c.Warehouse.Name = ""
				c.Warehouse.Activities = []string{"transform"}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)

			var cfgErr *ConfigError
			assert.True(t, errors.As(err, &cfgErr))
		})
	}
}

func TestConfig_Validate_CollectsAllMissingFields(t *testing.T) {
	cfg := &Config{}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "instance")
	assert.Contains(t, err.Error(), "access_token")
	assert.Contains(t, err.Error(), "account.name")
	assert.Contains(t, err.Error(), "account.private_key_file")
}

func TestConfig_IntegrationFriendlyName(t *testing.T) {
	cfg := validConfig()

	cfg.Integration.FriendlyName = "Explicit Name"
	assert.Equal(t, "Explicit Name", cfg.IntegrationFriendlyName())

	cfg.Integration.FriendlyName = ""
	assert.Equal(t, "Snowflake Production", cfg.IntegrationFriendlyName())
}

func TestLoad_FromFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "provisioner.yaml")

	content := `instance: mycompany.domo.com
account:
  name: snowflake-prod
  display_name: Snowflake Production
  snowflake_account: xy12345
  username: DOMO_SVC
  role: DOMO_ROLE
  private_key_file: /path/to/rsa_key.p8
integration:
  description: prod warehouse
warehouse:
  name: WH_PROD
  activities:
    - query
    - dataflow
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("access_token", "env-token")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "mycompany.domo.com", cfg.Instance)
	assert.Equal(t, "env-token", cfg.AccessToken)
	assert.Equal(t, "snowflake-prod", cfg.Account.Name)
	assert.Equal(t, "/path/to/rsa_key.p8", cfg.Account.PrivateKeyFile)
	assert.Equal(t, "WH_PROD", cfg.Warehouse.Name)
	assert.Equal(t, []string{"query", "dataflow"}, cfg.Warehouse.Activities)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)

	// Friendly name falls back to the display name
	assert.Equal(t, "Snowflake Production", cfg.IntegrationFriendlyName())
}

func TestLoad_MissingToken(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "provisioner.yaml")

	content := `instance: mycompany.domo.com
account:
  name: snowflake-prod
  private_key_file: /path/to/rsa_key.p8
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("access_token", "")
	t.Setenv("ACCESS_TOKEN", "")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access_token")
}
