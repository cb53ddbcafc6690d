package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"
	"github.com/urfave/cli/v3"

	"github.com/samcharles93/keyinfo/internal/loader"
	"github.com/samcharles93/keyinfo/internal/logger"
	"github.com/samcharles93/keyinfo/internal/server"
)

func serveCmd() *cli.Command {
	var (
		addr        string
		readTimeout time.Duration
		rateLimit   float64
		rateBurst   int64
		watch       bool
	)

	return &cli.Command{
		Name:  "serve",
		Usage: "Serve key tables over HTTP",
		Flags: []cli.Flag{
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
			&cli.StringFlag{
				Name:        "addr",
				Usage:       "listen address",
				Value:       "127.0.0.1:8080",
				Destination: &addr,
			},
			&cli.DurationFlag{
				Name:        "read-timeout",
				Usage:       "read timeout",
				Value:       30 * time.Second,
				Destination: &readTimeout,
			},
			&cli.FloatFlag{
				Name:        "rate-limit",
				Usage:       "requests per second allowed on /v1 (0 disables)",
				Value:       50,
				Destination: &rateLimit,
			},
			&cli.Int64Flag{
				Name:        "rate-burst",
				Usage:       "burst size for --rate-limit (0 = rate)",
				Destination: &rateBurst,
			},
			&cli.BoolFlag{
				Name:        "watch",
				Usage:       "evict cached entries when their file changes",
				Value:       true,
				Destination: &watch,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx)
			applyServeConfig(cmd, appConfig, &addr, &rateLimit, &rateBurst, &watch)

			srv, err := server.New(server.Config{
				Resolver:  newResolver(terminfoDirs),
				Options:   loader.Options{ArenaLimit: int(arenaLimit)},
				Logger:    log,
				RateLimit: rateLimit,
				Burst:     int(rateBurst),
				Watch:     watch,
			})
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: start server: %v", err), 1)
			}
			defer func() { _ = srv.Close() }()

			e := echo.New()
			e.Use(middleware.RequestLogger())
			e.Use(middleware.Recover())
			srv.Register(e)
			log.Info("starting server", "address", addr, "rate_limit", rateLimit, "watch", watch)
			sc := echo.StartConfig{
				Address: addr,
				BeforeServeFunc: func(s *http.Server) error {
					s.ReadHeaderTimeout = readTimeout
					return nil
				},
			}
			return sc.Start(ctx, e)
		},
	}
}
