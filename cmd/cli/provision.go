package cli

import (
	"fmt"

	"github.com/rs/xid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/domo-community/byos-provisioner/internal/config"
	"github.com/domo-community/byos-provisioner/internal/provisioner"
	"github.com/domo-community/byos-provisioner/pkg/clients/domo"
)

// NewProvisionCommand builds the provision command
func NewProvisionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "provision",
		Short: "Create the account, BYOS integration and warehouse assignment",
		Long: `Run the provisioning pipeline: create the Snowflake Cloud Amplifier
account, create a BYOS integration referencing it, then assign the configured
warehouse to the integration. Steps run in order and the first failure aborts
the rest; already-created resources are left in place.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			configFile, _ := cmd.Flags().GetString("config")
			return runProvision(cmd, configFile)
		},
	}

	return cmd
}

func runProvision(cmd *cobra.Command, configFile string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}

	runID := xid.New().String()

	client := domo.NewClient(
		domo.WithInstance(cfg.Instance),
		domo.WithToken(cfg.AccessToken),
		domo.WithTimeout(cfg.HTTPTimeout),
		domo.WithRequestID(runID),
	)

	log.Info().
		Str("run_id", runID).
		Str("instance", cfg.Instance).
		Msg("Starting provisioning run")

	p := provisioner.NewProvisioner(provisioner.ProvisionerDependencies{
		Client: client,
		Config: cfg,
		RunID:  runID,
	})

	result, err := p.Run(cmd.Context())
	if err != nil {
		if result != nil && (result.AccountID != "" || result.IntegrationID != "") {
			log.Warn().
				Str("run_id", runID).
				Str("account_id", result.AccountID).
				Str("integration_id", result.IntegrationID).
				Msg("Run failed after creating resources; they remain on the instance")
		}
		return err
	}

	fmt.Printf("Account ID:     %s\n", result.AccountID)
	fmt.Printf("Integration ID: %s\n", result.IntegrationID)
	if result.WarehouseAssigned {
		fmt.Printf("Warehouse:      %s\n", cfg.Warehouse.Name)
	} else {
		fmt.Println("Warehouse:      (not assigned)")
	}

	return nil
}
