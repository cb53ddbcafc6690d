package main

import "github.com/urfave/cli/v3"

var (
	entryFile    string
	terminfoDirs []string
	arenaLimit   int64
	logLevel     string
	logFormat    string
	debug        bool
	configFile   string
)

// entryFlags select the terminfo entry a command works on.
func entryFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "file",
			Aliases:     []string{"f"},
			Usage:       "path to a compiled terminfo entry (skips name lookup)",
			Destination: &entryFile,
		},
		&cli.StringSliceFlag{
			Name:        "terminfo-dir",
			Aliases:     []string{"dir"},
			Usage:       "extra directory to search after $TERMINFO_DIRS",
			Destination: &terminfoDirs,
		},
		&cli.Int64Flag{
			Name:        "arena-limit",
			Usage:       "maximum record store size in bytes (0 = default)",
			Destination: &arenaLimit,
		},
	}
}

func loggingFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error)",
			Value:       "info",
			Destination: &logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "log format (auto, pretty, json, text)",
			Value:       "auto",
			Destination: &logFormat,
		},
		&cli.BoolFlag{
			Name:        "debug",
			Usage:       "enable debug logging (shorthand for --log-level=debug)",
			Destination: &debug,
		},
		&cli.StringFlag{
			Name:        "config",
			Usage:       "config file (.yaml or .toml)",
			Sources:     cli.EnvVars(envKeyinfoConfig),
			Destination: &configFile,
		},
	}
}
