// Package config loads and validates the static provisioner configuration.
// The result is built once at startup and passed explicitly; nothing mutates
// it afterwards.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// ConfigError reports missing or invalid static configuration
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string {
	return "config: " + e.Msg
}

// AccountConfig holds the Snowflake account settings
type AccountConfig struct {
	Name             string `mapstructure:"name"`
	DisplayName      string `mapstructure:"display_name"`
	SnowflakeAccount string `mapstructure:"snowflake_account"`
	Username         string `mapstructure:"username"`
	Role             string `mapstructure:"role"`
	PrivateKeyFile   string `mapstructure:"private_key_file"`
	Passphrase       string `mapstructure:"passphrase"`
}

// IntegrationConfig holds the BYOS integration settings
type IntegrationConfig struct {
	FriendlyName string `mapstructure:"friendly_name"`
	Description  string `mapstructure:"description"`
}

// WarehouseConfig holds the warehouse assignment settings. An empty Name
// skips the assignment step entirely.
type WarehouseConfig struct {
	Name       string   `mapstructure:"name"`
	Activities []string `mapstructure:"activities"`
}

// Config holds all provisioner configuration
type Config struct {
	Instance    string        `mapstructure:"instance"`
	AccessToken string        `mapstructure:"access_token"`
	HTTPTimeout time.Duration `mapstructure:"http_timeout"`

	// ExistingAccountID skips account creation and feeds the integration
	// step directly when set.
	ExistingAccountID string `mapstructure:"existing_account_id"`

	Account     AccountConfig     `mapstructure:"account"`
	Integration IntegrationConfig `mapstructure:"integration"`
	Warehouse   WarehouseConfig   `mapstructure:"warehouse"`
}

// Load loads configuration from the config file and environment variables
func Load(configFile string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// The token binds to the lowercase `access_token` env var for
	// compatibility with existing .env files.
	envMappings := map[string][]string{
		"instance":            {"DOMO_INSTANCE"},
		"access_token":        {"access_token", "ACCESS_TOKEN"},
		"existing_account_id": {"DOMO_EXISTING_ACCOUNT_ID"},
	}

	for configKey, envVars := range envMappings {
		if err := v.BindEnv(append([]string{configKey}, envVars...)...); err != nil {
			log.Warn().Err(err).Msgf("Failed to bind environment variables for %s", configKey)
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("provisioner")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("$HOME/.domo-provisioner")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		log.Debug().Msg("Config file not found, using environment variables and defaults")
	} else {
		log.Info().Msgf("Using config file: %s", v.ConfigFileUsed())
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http_timeout", 30*time.Second)
	v.SetDefault("warehouse.activities", []string{string(ActivityQuery), string(ActivityIndex), string(ActivityDataflow)})
}

// Validate checks the required fields and the activity values, collecting
// every problem into a single error
func (c *Config) Validate() error {
	var missing []string

	if c.Instance == "" {
		missing = append(missing, "instance")
	}

	if c.AccessToken == "" {
		missing = append(missing, "access_token")
	}

	if c.ExistingAccountID == "" {
		if c.Account.Name == "" {
			missing = append(missing, "account.name")
		}
		if c.Account.PrivateKeyFile == "" {
			missing = append(missing, "account.private_key_file")
		}
	}

	if len(missing) > 0 {
		return &ConfigError{Msg: "missing required configuration: " + strings.Join(missing, ", ")}
	}

	if c.Warehouse.Name != "" {
		if err := ValidateActivities(c.Warehouse.Activities); err != nil {
			return err
		}
	}

	return nil
}

// IntegrationFriendlyName returns the configured friendly name, falling back
// to the account display name
func (c *Config) IntegrationFriendlyName() string {
	if c.Integration.FriendlyName != "" {
		return c.Integration.FriendlyName
	}
	return c.Account.DisplayName
}
