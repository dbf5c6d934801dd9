// Package domo provides a client for the Domo APIs used to provision Cloud
// Amplifier (BYOS) integrations: account creation, BYOS integration creation
// and warehouse assignment.
package domo

import "encoding/json"

// ID accepts both string and numeric identifiers; the Domo API mixes the two
// across endpoints.
type ID string

// UnmarshalJSON implements json.Unmarshaler
func (id *ID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}

	*id = ID(n.String())
	return nil
}

// DataProviderTypeSnowflakeKeyPair is the provider type for Snowflake
// accounts authenticated with a key pair.
const DataProviderTypeSnowflakeKeyPair = "snowflakekeypairauthentication"

// EngineSnowflake is the BYOS engine identifier for Snowflake
const EngineSnowflake = "SNOWFLAKE"

// AccountConfigurations holds the Snowflake connection fields for an account.
// PrivateKey carries the key file contents verbatim.
type AccountConfigurations struct {
	Account    string `json:"account"`
	Username   string `json:"username"`
	PrivateKey string `json:"privateKey"`
	PassPhrase string `json:"passPhrase"`
	Role       string `json:"role"`
}

// CreateAccountRequest represents the request to create a Cloud Amplifier account
type CreateAccountRequest struct {
	Name             string                `json:"name"`
	DisplayName      string                `json:"displayName"`
	DataProviderType string                `json:"dataProviderType"`
	Configurations   AccountConfigurations `json:"configurations"`
}

// Redacted returns a copy of the request safe for logging, with the private
// key contents replaced by a placeholder.
func (r *CreateAccountRequest) Redacted() *CreateAccountRequest {
	redacted := *r
	if redacted.Configurations.PrivateKey != "" {
		redacted.Configurations.PrivateKey = "[REDACTED]"
	}
	if redacted.Configurations.PassPhrase != "" {
		redacted.Configurations.PassPhrase = "[REDACTED]"
	}
	return &redacted
}

// Account represents a created Cloud Amplifier account
type Account struct {
	ID          ID     `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
}

// IntegrationProperty is a single configuration property of a BYOS integration
type IntegrationProperty struct {
	Key        string `json:"key"`
	ConfigType string `json:"configType"`
	Value      string `json:"value"`
}

// CreateIntegrationRequest represents the request to create a BYOS integration
type CreateIntegrationRequest struct {
	Engine     string                         `json:"engine"`
	Properties map[string]IntegrationProperty `json:"properties"`
}

// NewCreateIntegrationRequest builds a Snowflake BYOS integration request
// referencing an existing account
func NewCreateIntegrationRequest(accountID, friendlyName, description string) *CreateIntegrationRequest {
	return &CreateIntegrationRequest{
		Engine: EngineSnowflake,
		Properties: map[string]IntegrationProperty{
			"friendlyName":      configProperty("friendlyName", friendlyName),
			"description":       configProperty("description", description),
			"serviceAccountId":  configProperty("serviceAccountId", accountID),
			"AUTH_METHOD":       configProperty("AUTH_METHOD", "KEY_PAIR"),
			"ADMIN_AUTH_METHOD": configProperty("ADMIN_AUTH_METHOD", "KEY_PAIR"),
		},
	}
}

func configProperty(key, value string) IntegrationProperty {
	return IntegrationProperty{
		Key:        key,
		ConfigType: "CONFIG",
		Value:      value,
	}
}

// Integration represents a created BYOS integration
type Integration struct {
	ID     ID     `json:"id"`
	Engine string `json:"engine"`
}

// Warehouse represents a warehouse available to a BYOS integration. The
// assignment endpoint expects the row from the listing echoed back with the
// desired activities set.
type Warehouse struct {
	DeviceName                string   `json:"deviceName"`
	Warehouse                 string   `json:"warehouse"`
	Device                    string   `json:"device"`
	InstanceSize              string   `json:"instanceSize"`
	WarehouseSizeFriendlyName string   `json:"warehouseSizeFriendlyName"`
	Activities                []string `json:"activities,omitempty"`
}
