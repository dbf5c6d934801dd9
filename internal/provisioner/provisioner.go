// Package provisioner runs the three-step BYOS provisioning pipeline:
// create the Snowflake account, create the BYOS integration referencing it,
// then assign a warehouse with its activity set to the integration.
package provisioner

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/domo-community/byos-provisioner/internal/config"
	"github.com/domo-community/byos-provisioner/pkg/clients/domo"
)

// ProvisionerDependencies holds the dependencies for the provisioner
type ProvisionerDependencies struct {
	Client domo.ClientInterface
	Config *config.Config
	RunID  string
}

// Provisioner drives the provisioning pipeline. Steps run strictly in order;
// the first failure aborts the rest. Nothing already created is rolled back.
type Provisioner struct {
	client domo.ClientInterface
	cfg    *config.Config
	runID  string
}

// Result reports what a run created
type Result struct {
	AccountID         string
	AccountCreated    bool
	IntegrationID     string
	WarehouseAssigned bool
}

// NewProvisioner creates a new provisioner
func NewProvisioner(deps ProvisionerDependencies) *Provisioner {
	return &Provisioner{
		client: deps.Client,
		cfg:    deps.Config,
		runID:  deps.RunID,
	}
}

// Run executes the pipeline and returns what was created. On error the
// returned result still reports the identifiers produced before the failure.
func (p *Provisioner) Run(ctx context.Context) (*Result, error) {
	result := &Result{}

	if p.cfg.ExistingAccountID != "" {
		log.Info().
			Str("run_id", p.runID).
			Str("account_id", p.cfg.ExistingAccountID).
			Msg("Using existing account, skipping account creation")
		result.AccountID = p.cfg.ExistingAccountID
	} else {
		accountID, err := p.createAccount(ctx)
		if err != nil {
			return result, err
		}
		result.AccountID = accountID
		result.AccountCreated = true
	}

	integrationID, err := p.createIntegration(ctx, result.AccountID)
	if err != nil {
		return result, err
	}
	result.IntegrationID = integrationID

	assigned, err := p.assignWarehouse(ctx, integrationID)
	if err != nil {
		return result, err
	}
	result.WarehouseAssigned = assigned

	return result, nil
}

func (p *Provisioner) createAccount(ctx context.Context) (string, error) {
	privateKey, err := os.ReadFile(p.cfg.Account.PrivateKeyFile)
	if err != nil {
		return "", &FileAccessError{Path: p.cfg.Account.PrivateKeyFile, Err: err}
	}

	req := &domo.CreateAccountRequest{
		Name:             p.cfg.Account.Name,
		DisplayName:      p.cfg.Account.DisplayName,
		DataProviderType: domo.DataProviderTypeSnowflakeKeyPair,
		Configurations: domo.AccountConfigurations{
			Account:    p.cfg.Account.SnowflakeAccount,
			Username:   p.cfg.Account.Username,
			PrivateKey: string(privateKey),
			PassPhrase: p.cfg.Account.Passphrase,
			Role:       p.cfg.Account.Role,
		},
	}

	log.Info().
		Str("run_id", p.runID).
		Str("instance", p.cfg.Instance).
		Str("display_name", p.cfg.Account.DisplayName).
		Msg("Creating Snowflake account")
	log.Debug().Str("run_id", p.runID).Interface("payload", req.Redacted()).Msg("Account request payload")

	account, err := p.client.CreateAccount(ctx, req)
	if err != nil {
		return "", err
	}

	if account.ID == "" {
		return "", fmt.Errorf("account created but response carried no id")
	}

	log.Info().
		Str("run_id", p.runID).
		Str("account_id", string(account.ID)).
		Msg("Account created")

	return string(account.ID), nil
}

func (p *Provisioner) createIntegration(ctx context.Context, accountID string) (string, error) {
	if accountID == "" {
		return "", fmt.Errorf("account ID is required to create an integration")
	}

	friendlyName := p.cfg.IntegrationFriendlyName()
	req := domo.NewCreateIntegrationRequest(accountID, friendlyName, p.cfg.Integration.Description)

	log.Info().
		Str("run_id", p.runID).
		Str("friendly_name", friendlyName).
		Str("account_id", accountID).
		Msg("Creating BYOS integration")

	integration, err := p.client.CreateIntegration(ctx, req)
	if err != nil {
		return "", err
	}

	if integration.ID == "" {
		return "", fmt.Errorf("integration created but response carried no id")
	}

	log.Info().
		Str("run_id", p.runID).
		Str("integration_id", string(integration.ID)).
		Msg("BYOS integration created")

	return string(integration.ID), nil
}

// assignWarehouse assigns the configured warehouse to the integration.
// Returns false without error when no warehouse is configured.
func (p *Provisioner) assignWarehouse(ctx context.Context, integrationID string) (bool, error) {
	if p.cfg.Warehouse.Name == "" {
		log.Info().
			Str("run_id", p.runID).
			Msg("No warehouse configured, skipping warehouse assignment")
		return false, nil
	}

	// Validated before any network call so a bad activity never creates
	// remote state.
	if err := config.ValidateActivities(p.cfg.Warehouse.Activities); err != nil {
		return false, err
	}

	warehouses, err := p.client.GetWarehouses(ctx, integrationID)
	if err != nil {
		return false, err
	}

	warehouse, ok := matchWarehouse(warehouses, p.cfg.Warehouse.Name)
	if !ok {
		return false, &config.ConfigError{
			Msg: fmt.Sprintf("warehouse %q not found for integration (available: %s)",
				p.cfg.Warehouse.Name, availableNames(warehouses)),
		}
	}

	warehouse.Activities = p.cfg.Warehouse.Activities

	log.Info().
		Str("run_id", p.runID).
		Str("warehouse", warehouse.Warehouse).
		Strs("activities", warehouse.Activities).
		Str("integration_id", integrationID).
		Msg("Assigning warehouse to integration")

	if err := p.client.AssignWarehouses(ctx, integrationID, []domo.Warehouse{warehouse}); err != nil {
		return false, err
	}

	log.Info().
		Str("run_id", p.runID).
		Str("warehouse", warehouse.Warehouse).
		Msg("Warehouse assigned")

	return true, nil
}

func matchWarehouse(warehouses []domo.Warehouse, name string) (domo.Warehouse, bool) {
	for _, wh := range warehouses {
		if wh.Warehouse == name {
			return wh, true
		}
	}
	return domo.Warehouse{}, false
}

func availableNames(warehouses []domo.Warehouse) string {
	if len(warehouses) == 0 {
		return "none"
	}

	names := make([]string, 0, len(warehouses))
	for _, wh := range warehouses {
		names = append(names, wh.Warehouse)
	}
	return strings.Join(names, ", ")
}
