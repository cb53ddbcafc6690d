package main

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/keyinfo/internal/loader"
	"github.com/samcharles93/keyinfo/internal/rawbuf"
	"github.com/samcharles93/keyinfo/pkg/keys"
)

func lookupCmd() *cli.Command {
	var (
		seqFlag string
		hexFlag string
		keyFlag string
	)

	return &cli.Command{
		Name:      "lookup",
		Usage:     "Decode an input sequence, or list where a key is bound",
		ArgsUsage: "[TERM]",
		Flags: append(entryFlags(),
			&cli.StringFlag{
				Name:        "seq",
				Aliases:     []string{"s"},
				Usage:       `sequence in armored form, e.g. '\e[1;5A'`,
				Destination: &seqFlag,
			},
			&cli.StringFlag{
				Name:        "hex",
				Usage:       "sequence as hex bytes, e.g. 1b5b41",
				Destination: &hexFlag,
			},
			&cli.StringFlag{
				Name:        "key",
				Aliases:     []string{"k"},
				Usage:       "list the bindings of a key name instead, e.g. up or f5",
				Destination: &keyFlag,
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if name := strings.TrimSpace(keyFlag); name != "" {
				if seqFlag != "" || hexFlag != "" {
					return cli.Exit("error: --key cannot be combined with --seq or --hex", 1)
				}
				key, ok := keys.ByName(name)
				if !ok {
					return cli.Exit(fmt.Sprintf("error: unknown key %q", name), 1)
				}
				res, err := loadEntry(ctx, cmd)
				if err != nil {
					return err
				}
				return printBindings(cmd, res, key)
			}

			seq, err := parseSequence(seqFlag, hexFlag)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			res, err := loadEntry(ctx, cmd)
			if err != nil {
				return err
			}

			m, ok := res.Table.Lookup(seq)
			if !ok {
				return cli.Exit(fmt.Sprintf("no match for %s", rawbuf.Armor(seq)), 1)
			}
			w := stdout(cmd)
			if m.Mod != 0 {
				fmt.Fprintf(w, "%s: key %s (%d) mod %s (%d)\n", rawbuf.Armor(seq), m.Key.Name(), m.Key, m.Mod, m.Mod)
			} else {
				fmt.Fprintf(w, "%s: key %s (%d)\n", rawbuf.Armor(seq), m.Key.Name(), m.Key)
			}
			return nil
		},
	}
}

func printBindings(cmd *cli.Command, res *loader.Result, key keys.KeyID) error {
	slots, recs := res.Table.Bindings(key)
	if len(slots) == 0 && len(recs) == 0 {
		if key.IsASCII() {
			fmt.Fprintf(stdout(cmd), "%s: unbound, the byte %s stands for itself\n", key, rawbuf.Armor([]byte{byte(key)}))
			return nil
		}
		return cli.Exit(fmt.Sprintf("no binding for key %s", key), 1)
	}

	w := stdout(cmd)
	for _, s := range slots {
		fmt.Fprintf(w, "%s: direct[%d] %s\n", key, s.Code, rawbuf.Armor([]byte{s.Code}))
	}
	for _, r := range recs {
		if r.Mod != 0 {
			fmt.Fprintf(w, "%s: record@%d %s mod %s\n", key, r.Ref, rawbuf.Armor(r.Bytes), r.Mod)
		} else {
			fmt.Fprintf(w, "%s: record@%d %s\n", key, r.Ref, rawbuf.Armor(r.Bytes))
		}
	}
	return nil
}

func parseSequence(armored, hexStr string) ([]byte, error) {
	hexStr = strings.TrimSpace(hexStr)
	switch {
	case armored != "" && hexStr != "":
		return nil, errors.New("--seq and --hex are mutually exclusive")
	case hexStr != "":
		seq, err := hex.DecodeString(strings.ReplaceAll(hexStr, " ", ""))
		if err != nil {
			return nil, fmt.Errorf("--hex: %w", err)
		}
		if len(seq) == 0 {
			return nil, errors.New("--hex: empty sequence")
		}
		return seq, nil
	case armored != "":
		seq, err := rawbuf.Unarmor(armored)
		if err != nil {
			return nil, fmt.Errorf("--seq: %w", err)
		}
		return seq, nil
	default:
		return nil, errors.New("one of --seq or --hex is required")
	}
}
