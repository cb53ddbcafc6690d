package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/keyinfo/internal/loader"
	"github.com/samcharles93/keyinfo/internal/rawbuf"
	"github.com/samcharles93/keyinfo/pkg/terminfo"
)

func inspectCmd() *cli.Command {
	var showAll bool

	return &cli.Command{
		Name:      "inspect",
		Usage:     "Print headers, layout and raw capability strings without building tables",
		ArgsUsage: "[TERM]",
		Flags: append(entryFlags(),
			&cli.BoolFlag{Name: "all", Usage: "list every legacy string, not just key capabilities", Destination: &showAll},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path, err := entryPath(cmd)
			if err != nil {
				return err
			}
			f, err := terminfo.Open(path)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: open terminfo: %v", err), 1)
			}
			defer func() { _ = f.Close() }()

			w := stdout(cmd)
			h, l := f.Header, f.Layout
			fmt.Fprintf(w, "File:    %s\n", path)
			fmt.Fprintf(w, "Names:   %s\n", strings.Join(f.Names(), " | "))
			fmt.Fprintf(w, "Magic:   %06o (%d-byte numbers)\n", uint16(h.Magic), l.NumberWidth)
			fmt.Fprintf(w, "Size:    %d bytes\n\n", len(f.Data))

			fmt.Fprintln(w, "Legacy sections:")
			fmt.Fprintf(w, "  %-12s %6s %6s\n", "SECTION", "OFFSET", "COUNT")
			fmt.Fprintf(w, "  %-12s %6d %6d\n", "names", l.Names, h.NamesSize)
			fmt.Fprintf(w, "  %-12s %6d %6d\n", "booleans", l.Booleans, h.BooleansCount)
			fmt.Fprintf(w, "  %-12s %6d %6d\n", "numbers", l.Numbers, h.NumbersCount)
			fmt.Fprintf(w, "  %-12s %6d %6d\n", "index", l.IndexTable, h.StringTableEntries)
			fmt.Fprintf(w, "  %-12s %6d %6d\n", "string data", l.StringData, h.StringTableSize)
			fmt.Fprintf(w, "  %-12s %6d\n\n", "end", l.End)

			names := make(map[int]string, len(loader.LegacyCapabilities))
			for _, c := range loader.LegacyCapabilities {
				names[c.Ordinal] = c.Name
			}
			fmt.Fprintln(w, "Legacy strings:")
			for ord := range int(h.StringTableEntries) {
				name, known := names[ord]
				if !known && !showAll {
					continue
				}
				v, err := f.LegacyString(ord)
				switch {
				case errors.Is(err, terminfo.ErrAbsent):
					continue
				case err != nil:
					fmt.Fprintf(w, "  %4d %-6s error: %v\n", ord, name, err)
					continue
				}
				fmt.Fprintf(w, "  %4d %-6s %s\n", ord, name, rawbuf.Armor(v))
			}

			if f.Extended == nil {
				fmt.Fprintln(w, "\nNo extended section.")
				return nil
			}
			e, el := f.Extended, f.ExtendedLayout
			fmt.Fprintln(w, "\nExtended section:")
			fmt.Fprintf(w, "  header at %d, %d booleans, %d numbers, %d strings\n", el.Header, e.BooleansCount, e.NumbersCount, e.StringsCount)
			fmt.Fprintf(w, "  %d table entries, %d bytes of string data at %d\n", e.StringTableEntries, e.StringTableSize, el.StringData)

			caps, truncated, err := f.ExtendedCapabilities()
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: extended strings: %v", err), 1)
			}
			for _, c := range caps {
				fmt.Fprintf(w, "  %-8s %s\n", c.Name, rawbuf.Armor(c.Value))
			}
			if truncated {
				fmt.Fprintln(w, "  (extended names truncated)")
			}
			return nil
		},
	}
}
