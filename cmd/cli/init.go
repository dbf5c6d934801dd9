package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type sampleAccount struct {
	Name             string `yaml:"name"`
	DisplayName      string `yaml:"display_name"`
	SnowflakeAccount string `yaml:"snowflake_account"`
	Username         string `yaml:"username"`
	Role             string `yaml:"role"`
	PrivateKeyFile   string `yaml:"private_key_file"`
	Passphrase       string `yaml:"passphrase"`
}

type sampleIntegration struct {
	FriendlyName string `yaml:"friendly_name"`
	Description  string `yaml:"description"`
}

type sampleWarehouse struct {
	Name       string   `yaml:"name"`
	Activities []string `yaml:"activities"`
}

type sampleConfig struct {
	Instance          string            `yaml:"instance"`
	ExistingAccountID string            `yaml:"existing_account_id"`
	Account           sampleAccount     `yaml:"account"`
	Integration       sampleIntegration `yaml:"integration"`
	Warehouse         sampleWarehouse   `yaml:"warehouse"`
}

// NewInitCommand builds the init command
func NewInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter provisioner.yaml",
		Long: `Write a starter provisioner.yaml in the current directory. The access
token is not part of the file; it is read from the access_token environment
variable.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit("provisioner.yaml")
		},
	}

	return cmd
}

func runInit(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists, refusing to overwrite", path)
	}

	sample := sampleConfig{
		Instance: "mycompany.domo.com",
		Account: sampleAccount{
			Name:             "snowflake-prod",
			DisplayName:      "Snowflake Production",
			SnowflakeAccount: "xy12345.us-east-1",
			Username:         "DOMO_SVC",
			Role:             "DOMO_ROLE",
			PrivateKeyFile:   "/path/to/rsa_key.p8",
		},
		Integration: sampleIntegration{
			FriendlyName: "Snowflake Production",
			Description:  "BYOS integration for the production warehouse",
		},
		Warehouse: sampleWarehouse{
			Name:       "WH_PROD",
			Activities: []string{"query", "index", "dataflow"},
		},
	}

	data, err := yaml.Marshal(sample)
	if err != nil {
		return fmt.Errorf("failed to render sample config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	fmt.Printf("Wrote %s\n", path)
	return nil
}
