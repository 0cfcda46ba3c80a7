package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/filemeta/internal/flagx"
	"github.com/dmitrijs2005/filemeta/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Timeout may
// be written as "10s" or as integer nanoseconds.
type JsonConfig struct {
	ServerEndpointAddr string         `json:"server_endpoint_addr"`
	Timeout            timex.Duration `json:"timeout"`
	TokenSubject       string         `json:"token_subject"`
}

// parseJson overlays Config with values loaded from the JSON file given via
// -c or -config. Empty fields in the file leave the current value alone.
// Panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerEndpointAddr != "" {
		cfg.ServerEndpointAddr = jc.ServerEndpointAddr
	}
	if jc.Timeout.Duration != 0 {
		cfg.Timeout = jc.Timeout.Duration
	}
	if jc.TokenSubject != "" {
		cfg.TokenSubject = jc.TokenSubject
	}
}
