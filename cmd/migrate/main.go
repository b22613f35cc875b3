package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/url"
	"os"

	"barbershop-booking/internal/pkg/config"

	"ariga.io/atlas-go-sdk/atlasexec"
	"github.com/kelseyhightower/envconfig"
)

func main() {
	dir := flag.String("dir", "file://migrations", "migration directory URL")
	dryRun := flag.Bool("dry-run", false, "print pending migrations without applying them")
	flag.Parse()

	// only the DB settings are needed, so the server's required variables are not enforced here
	var dbCfg config.DBConfig
	if err := envconfig.Process("", &dbCfg); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := verifyChecksum(*dir); err != nil {
		slog.Error("migration directory check failed", "error", err)
		os.Exit(1)
	}

	client, err := atlasexec.NewClient(".", "atlas")
	if err != nil {
		slog.Error("failed to initialize atlas client", "error", err)
		os.Exit(1)
	}

	res, err := client.MigrateApply(context.Background(), &atlasexec.MigrateApplyParams{
		URL:    databaseURL(dbCfg),
		DirURL: *dir,
		DryRun: *dryRun,
	})
	if err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	slog.Info("migrations applied",
		"applied", len(res.Applied),
		"current", res.Current,
		"target", res.Target,
		"dry_run", *dryRun,
	)
}

func databaseURL(cfg config.DBConfig) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Path:     cfg.DBName,
		RawQuery: "sslmode=" + cfg.SSLMode,
	}
	return u.String()
}
