package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/keyinfo/internal/loader"
)

func dumpCmd() *cli.Command {
	return &cli.Command{
		Name:      "dump",
		Usage:     "Load an entry and print its sections and key tables",
		ArgsUsage: "[TERM]",
		Flags:     entryFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			res, err := loadEntry(ctx, cmd)
			if err != nil {
				return err
			}
			return loader.WriteDump(stdout(cmd), res)
		},
	}
}
