package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/damrufest/judgeboard/conf"
	"github.com/damrufest/judgeboard/devserver"
)

func main() {
	//nolint:errcheck
	godotenv.Load()

	app := &cli.App{
		Name:  "devserver",
		Usage: "in-memory judging backend for local dashboard development",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "conf", Value: "judgeboard.toml", Usage: "configuration file path"},
			&cli.StringFlag{Name: "listen", Usage: "listen address (overrides configuration)"},
			&cli.BoolFlag{Name: "no-seed", Usage: "start without the demo accounts"},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	cfg, err := conf.Load(c.String("conf"))
	if err != nil {
		return err
	}
	addr := cfg.Server.ListenAddr
	if c.String("listen") != "" {
		addr = c.String("listen")
	}
	jwtKey := cfg.Server.JwtKey
	if jwtKey == "" {
		slog.Error("JWT_KEY is not set")
		os.Exit(1)
	}

	store := devserver.NewStore()
	if !c.Bool("no-seed") {
		if err := devserver.Seed(store, devserver.DefaultSeedAccounts); err != nil {
			return err
		}
		for _, acc := range devserver.DefaultSeedAccounts {
			slog.Info("seeded account", "email", acc.Email, "role", acc.Role)
		}
	}

	srv := devserver.New(store, devserver.Options{
		JwtKey:         []byte(jwtKey),
		AllowedOrigins: cfg.Server.AllowedOrigins,
	})

	log.Printf("Starting dev server on %s", addr)
	err = srv.Start(addr)
	log.Printf("Server stopped with error: %v", err)
	return err
}
