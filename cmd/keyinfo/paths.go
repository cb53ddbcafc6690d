package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/keyinfo/internal/loader"
	"github.com/samcharles93/keyinfo/internal/locate"
)

const envTerm = "TERM"

var errNoTerminal = errors.New("no terminal name given and $TERM is not set")

// newResolver is a small seam for tests.
var newResolver = func(dirs []string) *locate.Resolver {
	return locate.New(dirs)
}

// terminalName returns name, falling back to $TERM.
func terminalName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = strings.TrimSpace(os.Getenv(envTerm))
	}
	if name == "" {
		return "", errNoTerminal
	}
	return name, nil
}

// resolveEntry returns the file to load: the --file value when given,
// otherwise the resolved entry for name.
func resolveEntry(name, file string, r *locate.Resolver) (string, error) {
	file = strings.TrimSpace(file)
	if file != "" {
		return filepath.Clean(file), nil
	}
	name, err := terminalName(name)
	if err != nil {
		return "", err
	}
	return r.Resolve(name)
}

func entryPath(cmd *cli.Command) (string, error) {
	applyEntryConfig(cmd, appConfig)
	path, err := resolveEntry(cmd.Args().First(), entryFile, newResolver(terminfoDirs))
	if err != nil {
		return "", cli.Exit(fmt.Sprintf("error: %v", err), 1)
	}
	return path, nil
}

// loadEntry resolves and loads the entry a command was pointed at.
func loadEntry(ctx context.Context, cmd *cli.Command) (*loader.Result, error) {
	path, err := entryPath(cmd)
	if err != nil {
		return nil, err
	}
	res, err := loader.LoadFile(ctx, path, loader.Options{ArenaLimit: int(arenaLimit)})
	if err != nil {
		return nil, cli.Exit(fmt.Sprintf("error: %v", err), 1)
	}
	return res, nil
}
