package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/filemeta/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   gRPC bind address (e.g., ":50051")
//	-d string   PostgreSQL DSN
//	-s string   service token secret
//	-q uint     default quota limit, bytes
//	-l string   log format: json, text or zap
//	-r string   Redis address (host:port)
//	-t int      cache TTL, seconds
//	-m string   AMQP URL
//	-x string   AMQP exchange
//	-u string   S3 root user
//	-p string   S3 root password
//	-g string   S3 region
//	-e string   S3 base endpoint (e.g., "http://127.0.0.1:9000/")
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-q", "-l", "-r", "-t", "-m", "-x", "-u", "-p", "-g", "-e"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.Uint64Var(&config.DefaultQuotaLimit, "q", config.DefaultQuotaLimit, "default quota limit (bytes)")
	fs.StringVar(&config.LogFormat, "l", config.LogFormat, "log format (json, text, zap)")
	fs.StringVar(&config.RedisAddr, "r", config.RedisAddr, "redis address")

	cacheTTL := fs.Int("t", int(config.CacheTTL.Seconds()), "cache ttl (in seconds)")

	fs.StringVar(&config.AMQPURL, "m", config.AMQPURL, "AMQP URL")
	fs.StringVar(&config.AMQPExchange, "x", config.AMQPExchange, "AMQP exchange")
	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 root region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.CacheTTL = time.Duration(*cacheTTL) * time.Second
}
