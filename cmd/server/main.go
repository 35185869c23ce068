package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/tuannm99/tinysql/internal"
	"github.com/tuannm99/tinysql/internal/engine"
	"github.com/tuannm99/tinysql/server/sqlwire"
)

func main() {
	cfgPath := flag.String("config", "", "YAML config file")
	addr := flag.String("addr", "", "listen address, overrides server.addr")
	flag.Parse()

	cfg, err := internal.LoadConfig(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	slog.SetDefault(cfg.NewLogger())

	db := engine.NewDatabase()
	defer func() { _ = db.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := sqlwire.NewServer(sqlwire.ServerConfig{Addr: cfg.Server.Addr}, db)
	if err := srv.Run(ctx); err != nil {
		slog.Error("server: stopped", "err", err)
		os.Exit(1)
	}
	slog.Info("server: shut down")
}
