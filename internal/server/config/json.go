package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dkurganov/guestgate/internal/flagx"
	"github.com/dkurganov/guestgate/internal/timex"
)

// JsonConfig is the DTO for reading JSON configuration files. It uses
// timex.Duration for interval fields, which parses both string values such
// as "12h" and integer nanoseconds. After unmarshalling, non-empty fields
// are copied into the runtime Config.
type JsonConfig struct {
	EndpointAddrHTTP           string         `json:"endpoint_addr_http"`
	DatabaseDSN                string         `json:"database_dsn"`
	SecretKey                  string         `json:"secret_key"`
	SessionKey                 string         `json:"session_key"`
	AdminUsername              string         `json:"admin_username"`
	AdminPassword              string         `json:"admin_password"`
	AdminPasswordHash          string         `json:"admin_password_hash"`
	AdminTokenValidityDuration timex.Duration `json:"admin_token_validity_duration"`
}

// parseJson loads configuration values from the JSON file named by the
// -c/-config flags into the provided Config. When no file is named, nothing
// happens. An unreadable or invalid file panics: the operator asked for a
// config file and did not get it.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.EndpointAddrHTTP != "" {
		config.EndpointAddrHTTP = c.EndpointAddrHTTP
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.SessionKey != "" {
		config.SessionKey = c.SessionKey
	}
	if c.AdminUsername != "" {
		config.AdminUsername = c.AdminUsername
	}
	if c.AdminPassword != "" {
		config.AdminPassword = c.AdminPassword
	}
	if c.AdminPasswordHash != "" {
		config.AdminPasswordHash = c.AdminPasswordHash
	}
	if c.AdminTokenValidityDuration.Duration != 0 {
		config.AdminTokenValidityDuration = time.Duration(c.AdminTokenValidityDuration.Duration)
	}
}
