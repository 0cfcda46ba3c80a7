package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/filemeta/internal/client/client"
	"github.com/dmitrijs2005/filemeta/internal/client/config"
	"github.com/dmitrijs2005/filemeta/internal/flagx"
	"github.com/dmitrijs2005/filemeta/internal/server/auth"
)

// tokenValidity is the lifetime of tokens minted by filemetactl.
const tokenValidity = 15 * time.Minute

var (
	ErrUsage    = errors.New("usage")
	ErrNoSecret = errors.New("service secret is required")
)

var globalFlags = []string{"-a", "-t", "-u", "-c", "-config", "--config"}

const usageMessage = `usage: filemetactl [-a addr] [-t seconds] [-u subject] [-c config.json] <command> [args]

commands:
  key                          generate an upload key
  quota <owner>                show an owner's quota
  ls <owner> [folder] [-d]     list a folder, the owner's root by default
  stat <id> [--deleted]        show a file node
  cancel-upload <uploadID>     cancel a pending upload
  token [subject]              print a service token`

type App struct {
	config *config.Config
	out    io.Writer
	errOut io.Writer
	table  bool
	dial   func(addr string, tokens *client.TokenSource) (client.Client, error)
}

func NewApp(c *config.Config) *App {
	return &App{
		config: c,
		out:    os.Stdout,
		errOut: os.Stderr,
		table:  isTerminal(int(os.Stdout.Fd())),
		dial: func(addr string, tokens *client.TokenSource) (client.Client, error) {
			return client.NewGRPCClient(addr, tokens)
		},
	}
}

// Run executes the command named by args, which may still contain global
// flags.
func (a *App) Run(ctx context.Context, args []string) error {
	args = flagx.RemoveArgs(args, globalFlags)
	if len(args) == 0 {
		fmt.Fprintln(a.errOut, usageMessage)
		return ErrUsage
	}

	cmd, rest := args[0], args[1:]

	if cmd == "help" {
		fmt.Fprintln(a.out, usageMessage)
		return nil
	}
	if cmd == "token" {
		return a.token(rest)
	}

	c, err := a.connect()
	if err != nil {
		return err
	}
	defer c.Close()

	ctx, cancel := context.WithTimeout(ctx, a.config.Timeout)
	defer cancel()

	switch cmd {
	case "key":
		return a.key(ctx, c)
	case "quota":
		return a.quota(ctx, c, rest)
	case "ls":
		return a.list(ctx, c, rest)
	case "stat":
		return a.stat(ctx, c, rest)
	case "cancel-upload":
		return a.cancelUpload(ctx, c, rest)
	default:
		fmt.Fprintf(a.errOut, "unknown command %q\n%s\n", cmd, usageMessage)
		return ErrUsage
	}
}

func (a *App) connect() (client.Client, error) {
	secret, err := lookupSecret(a.errOut)
	if err != nil {
		return nil, err
	}

	var tokens *client.TokenSource
	if len(secret) > 0 {
		tokens = client.NewTokenSource(a.config.TokenSubject, secret, tokenValidity)
	}

	return a.dial(a.config.ServerEndpointAddr, tokens)
}

func (a *App) token(args []string) error {
	subject := a.config.TokenSubject
	if len(args) > 0 {
		subject = args[0]
	}

	secret, err := lookupSecret(a.errOut)
	if err != nil {
		return err
	}
	if len(secret) == 0 {
		return ErrNoSecret
	}

	token, err := auth.GenerateToken(subject, secret, tokenValidity)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, token)
	return nil
}
