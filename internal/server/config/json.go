package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/filemeta/internal/flagx"
	"github.com/dmitrijs2005/filemeta/internal/timex"
)

// JsonConfig is the JSON form of Config. Durations accept "30s" or
// integer nanoseconds. Absent fields leave the current value untouched.
type JsonConfig struct {
	EndpointAddrGRPC  string          `json:"endpoint_addr_grpc"`
	DatabaseDSN       string          `json:"database_dsn"`
	SecretKey         string          `json:"secret_key"`
	DefaultQuotaLimit uint64          `json:"default_quota_limit"`
	LogFormat         string          `json:"log_format"`
	RedisAddr         string          `json:"redis_addr"`
	CacheTTL          *timex.Duration `json:"cache_ttl"`
	AMQPURL           string          `json:"amqp_url"`
	AMQPExchange      string          `json:"amqp_exchange"`
	S3RootUser        string          `json:"s3_root_user"`
	S3RootPassword    string          `json:"s3_root_password"`
	S3Region          string          `json:"s3_region"`
	S3BaseEndpoint    string          `json:"s3_base_endpoint"`
}

func setIfNotEmpty(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// parseJson loads the file given via -c/-config into config. Without the
// flag nothing happens. An unreadable or malformed file panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
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

	setIfNotEmpty(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setIfNotEmpty(&config.DatabaseDSN, c.DatabaseDSN)
	setIfNotEmpty(&config.SecretKey, c.SecretKey)
	if c.DefaultQuotaLimit != 0 {
		config.DefaultQuotaLimit = c.DefaultQuotaLimit
	}
	setIfNotEmpty(&config.LogFormat, c.LogFormat)
	setIfNotEmpty(&config.RedisAddr, c.RedisAddr)
	if c.CacheTTL != nil {
		config.CacheTTL = c.CacheTTL.Duration
	}
	setIfNotEmpty(&config.AMQPURL, c.AMQPURL)
	setIfNotEmpty(&config.AMQPExchange, c.AMQPExchange)
	setIfNotEmpty(&config.S3RootUser, c.S3RootUser)
	setIfNotEmpty(&config.S3RootPassword, c.S3RootPassword)
	setIfNotEmpty(&config.S3Region, c.S3Region)
	setIfNotEmpty(&config.S3BaseEndpoint, c.S3BaseEndpoint)
}
