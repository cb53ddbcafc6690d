package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/keyinfo/internal/crosscheck"
	"github.com/samcharles93/keyinfo/internal/loader"
	"github.com/samcharles93/keyinfo/internal/locate"
	"github.com/samcharles93/keyinfo/internal/logger"
)

func verifyCmd() *cli.Command {
	var (
		against     string
		againstDirs []string
		againstFile string
		withTcell   bool
		strict      bool
		quiet       bool
	)

	return &cli.Command{
		Name:      "verify",
		Usage:     "Compare an entry's key strings with another compiled entry",
		ArgsUsage: "[TERM]",
		Flags: append(entryFlags(),
			&cli.StringFlag{
				Name:        "against",
				Usage:       "reference terminal name (defaults to TERM or the entry's primary name)",
				Destination: &against,
			},
			&cli.StringSliceFlag{
				Name:        "against-dir",
				Usage:       "directory holding the reference entry (default: the system terminfo directories)",
				Destination: &againstDirs,
			},
			&cli.StringFlag{
				Name:        "against-file",
				Usage:       "compiled terminfo file to use as the reference",
				Destination: &againstFile,
			},
			&cli.BoolFlag{Name: "tcell", Usage: "also print tcell's keypad and mouse profile", Destination: &withTcell},
			&cli.BoolFlag{Name: "strict", Usage: "exit non-zero when anything differs", Destination: &strict},
			&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "only print differences", Destination: &quiet},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx)

			res, err := loadEntry(ctx, cmd)
			if err != nil {
				return err
			}
			name := strings.TrimSpace(against)
			if name == "" {
				name = strings.TrimSpace(cmd.Args().First())
			}
			if name == "" && len(res.Names) > 0 {
				name = res.Names[0]
			}
			if name == "" {
				return cli.Exit("error: --against is required for an unnamed entry", 1)
			}

			opts := loader.Options{ArenaLimit: int(arenaLimit)}
			var ref crosscheck.Reference
			if f := strings.TrimSpace(againstFile); f != "" {
				other, err := loader.LoadFile(ctx, f, opts)
				if err != nil {
					return cli.Exit(fmt.Sprintf("error: reference: %v", err), 1)
				}
				ref = crosscheck.FromResult(other)
			} else {
				dirs := againstDirs
				if len(dirs) == 0 {
					dirs = locate.SystemDirs
				}
				src := crosscheck.Entries(ctx, &locate.Resolver{System: dirs}, opts, res.Path)
				if ref, err = src(name); err != nil {
					return cli.Exit(fmt.Sprintf("error: reference: %v", err), 1)
				}
			}
			rep := crosscheck.Compare(name, res, ref)

			w := stdout(cmd)
			if withTcell {
				p, err := crosscheck.Tcell(name)
				switch {
				case errors.Is(err, crosscheck.ErrUnknownTerminal):
					fmt.Fprintf(w, "tcell: %s unknown\n", name)
				case err != nil:
					log.Warn("tcell lookup failed", "terminal", name, "error", err)
				default:
					fmt.Fprintf(w, "tcell: %s\n", p)
				}
			}
			for _, f := range rep.Findings {
				if quiet && f.Status == crosscheck.StatusMatch && (f.Reference == nil || f.Resolves) {
					continue
				}
				fmt.Fprintln(w, f.String())
			}
			fmt.Fprintf(w, "%s: %d match, %d mismatch, %d missing locally, %d missing in reference\n",
				rep.Terminal,
				rep.Count(crosscheck.StatusMatch),
				rep.Count(crosscheck.StatusMismatch),
				rep.Count(crosscheck.StatusMissingLocal),
				rep.Count(crosscheck.StatusMissingReference),
			)
			if !rep.Clean() {
				log.Warn("entry differs from reference", "terminal", name)
				if strict {
					return cli.Exit("verify: differences found", 1)
				}
			}
			return nil
		},
	}
}
