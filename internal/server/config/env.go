package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/dmitrijs2005/filemeta/internal/flagx"
	"github.com/joho/godotenv"
)

// Environment variables read by parseEnv.
const (
	envGRPCAddr          = "FILEMETA_GRPC_ADDR"
	envDatabaseDSN       = "FILEMETA_DATABASE_DSN"
	envSecretKey         = "FILEMETA_SECRET_KEY"
	envDefaultQuotaLimit = "FILEMETA_DEFAULT_QUOTA_LIMIT"
	envLogFormat         = "FILEMETA_LOG_FORMAT"
	envRedisAddr         = "FILEMETA_REDIS_ADDR"
	envCacheTTL          = "FILEMETA_CACHE_TTL"
	envAMQPURL           = "FILEMETA_AMQP_URL"
	envAMQPExchange      = "FILEMETA_AMQP_EXCHANGE"
	envS3RootUser        = "FILEMETA_S3_ROOT_USER"
	envS3RootPassword    = "FILEMETA_S3_ROOT_PASSWORD"
	envS3Region          = "FILEMETA_S3_REGION"
	envS3BaseEndpoint    = "FILEMETA_S3_BASE_ENDPOINT"
)

const defaultEnvFile = ".env"

// parseEnv loads a dotenv file (the -env flag, or ./.env when present) into
// the process environment and then copies set FILEMETA_* variables into
// config. Variables already present in the environment win over the file.
func parseEnv(config *Config) error {
	path := flagx.EnvFileFlag()
	explicit := path != ""
	if !explicit {
		path = defaultEnvFile
	}
	if err := godotenv.Load(path); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}

	strs := map[string]*string{
		envGRPCAddr:       &config.EndpointAddrGRPC,
		envDatabaseDSN:    &config.DatabaseDSN,
		envSecretKey:      &config.SecretKey,
		envLogFormat:      &config.LogFormat,
		envRedisAddr:      &config.RedisAddr,
		envAMQPURL:        &config.AMQPURL,
		envAMQPExchange:   &config.AMQPExchange,
		envS3RootUser:     &config.S3RootUser,
		envS3RootPassword: &config.S3RootPassword,
		envS3Region:       &config.S3Region,
		envS3BaseEndpoint: &config.S3BaseEndpoint,
	}
	for name, dst := range strs {
		if v, ok := os.LookupEnv(name); ok {
			*dst = v
		}
	}

	if v, ok := os.LookupEnv(envDefaultQuotaLimit); ok {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return err
		}
		config.DefaultQuotaLimit = n
	}
	if v, ok := os.LookupEnv(envCacheTTL); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return err
		}
		config.CacheTTL = d
	}
	return nil
}
