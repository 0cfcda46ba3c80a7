package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/filemeta/internal/client/client"
)

func (a *App) key(ctx context.Context, c client.Client) error {
	key, err := c.GenerateKey(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, key)
	return nil
}

func (a *App) quota(ctx context.Context, c client.Client, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: quota <owner>", ErrUsage)
	}

	q, err := c.GetOwnerQuota(ctx, args[0])
	if err != nil {
		return err
	}
	return a.printQuota(q)
}

func (a *App) list(ctx context.Context, c client.Client, args []string) error {
	var positional []string
	foldersOnly := false
	for _, arg := range args {
		if arg == "-d" {
			foldersOnly = true
			continue
		}
		positional = append(positional, arg)
	}
	if len(positional) < 1 || len(positional) > 2 {
		return fmt.Errorf("%w: ls <owner> [folder] [-d]", ErrUsage)
	}

	var folder string
	if len(positional) == 2 {
		folder = positional[1]
	}

	files, err := c.ListFolder(ctx, positional[0], folder, foldersOnly)
	if err != nil {
		return err
	}
	return a.printFiles(files)
}

func (a *App) stat(ctx context.Context, c client.Client, args []string) error {
	var id string
	includeDeleted := false
	for _, arg := range args {
		if arg == "--deleted" {
			includeDeleted = true
			continue
		}
		id = arg
	}
	if id == "" {
		return fmt.Errorf("%w: stat <id> [--deleted]", ErrUsage)
	}

	f, err := c.Stat(ctx, id, includeDeleted)
	if err != nil {
		return err
	}
	return a.printFile(f)
}

func (a *App) cancelUpload(ctx context.Context, c client.Client, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: cancel-upload <uploadID>", ErrUsage)
	}
	if err := c.CancelUpload(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintf(a.errOut, "upload %s cancelled\n", args[0])
	return nil
}
