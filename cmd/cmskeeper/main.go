package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/avasilyev/cmskeeper/internal/buildinfo"
	"github.com/avasilyev/cmskeeper/internal/client/cli"
	"github.com/avasilyev/cmskeeper/internal/client/config"
	"github.com/avasilyev/cmskeeper/internal/logging"

	_ "modernc.org/sqlite"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()

	zl := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(logging.ParseLevel(cfg.LogLevel)).
		With().Timestamp().Logger()
	logger := logging.NewZerologLogger(zl)

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)
}
