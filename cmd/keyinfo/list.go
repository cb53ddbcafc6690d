package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/keyinfo/internal/logger"
)

func listCmd() *cli.Command {
	var showDirs bool

	return &cli.Command{
		Name:      "list",
		Aliases:   []string{"ls"},
		Usage:     "List terminfo entries on the search path",
		ArgsUsage: "[PREFIX]",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:        "terminfo-dir",
				Aliases:     []string{"dir"},
				Usage:       "extra directory to search after $TERMINFO_DIRS",
				Destination: &terminfoDirs,
			},
			&cli.BoolFlag{Name: "dirs", Usage: "print the search path instead", Destination: &showDirs},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx)
			applyEntryConfig(cmd, appConfig)
			r := newResolver(terminfoDirs)
			w := stdout(cmd)

			if showDirs {
				for _, d := range r.SearchDirs() {
					fmt.Fprintln(w, d)
				}
				return nil
			}

			names, err := r.List(cmd.Args().First())
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			if len(names) == 0 {
				log.Info("no entries found", "prefix", cmd.Args().First())
				return nil
			}
			for _, n := range names {
				fmt.Fprintln(w, n)
			}
			return nil
		},
	}
}
