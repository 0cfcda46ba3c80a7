package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/filemeta/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   address and port of the filemeta server
//	-t int      call timeout in seconds
//	-u string   service token subject
//
// os.Args is filtered with flagx.FilterArgs so subcommand arguments are left
// alone.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-t", "-u"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port to access server")
	timeout := fs.Int("t", int(cfg.Timeout.Seconds()), "call timeout (in seconds)")
	fs.StringVar(&cfg.TokenSubject, "u", cfg.TokenSubject, "service token subject")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.Timeout = time.Duration(*timeout) * time.Second
}
