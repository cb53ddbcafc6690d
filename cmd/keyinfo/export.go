package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/samcharles93/keyinfo/internal/loader"
	"github.com/samcharles93/keyinfo/internal/logger"
)

func exportCmd() *cli.Command {
	var (
		format string
		output string
	)

	return &cli.Command{
		Name:      "export",
		Usage:     "Write the loaded tables as JSON or YAML",
		ArgsUsage: "[TERM]",
		Flags: append(entryFlags(),
			&cli.StringFlag{
				Name:        "format",
				Usage:       "output format (json, yaml)",
				Value:       "json",
				Destination: &format,
			},
			&cli.StringFlag{
				Name:        "output",
				Aliases:     []string{"o"},
				Usage:       "write to this file instead of stdout",
				Destination: &output,
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			res, err := loadEntry(ctx, cmd)
			if err != nil {
				return err
			}
			data, err := encodeDocument(loader.NewDocument(res), format)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}

			output = strings.TrimSpace(output)
			if output == "" {
				_, err = io.Copy(stdout(cmd), bytes.NewReader(data))
				return err
			}
			if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return cli.Exit(fmt.Sprintf("error: write export: %v", err), 1)
			}
			logger.FromContext(ctx).Info("export written", "path", output, "format", format)
			return nil
		},
	}
}

func encodeDocument(doc loader.Document, format string) ([]byte, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case "yaml", "yml":
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unknown export format %q (want json or yaml)", format)
	}
}
