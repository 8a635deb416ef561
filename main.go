package main

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	v1 "github.com/moneta-app/backend/internal/controllers/v1"
	"github.com/moneta-app/backend/internal/ledger"
	"github.com/moneta-app/backend/internal/monthctx"
	"github.com/moneta-app/backend/internal/remote"
	"github.com/moneta-app/backend/internal/router"
	"github.com/moneta-app/backend/internal/session"
	"github.com/moneta-app/backend/internal/syncer"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// gin uses debug as the default mode, we use release for
	// security reasons
	ginMode, ok := os.LookupEnv("GIN_MODE")
	if !ok {
		gin.SetMode("release")
	} else {
		gin.SetMode(ginMode)
	}

	// Log format can be explicitly set.
	// If it is not set, it defaults to human readable for development
	// and JSON for release
	logFormat, ok := os.LookupEnv("LOG_FORMAT")
	output := io.Writer(os.Stdout)
	if (!ok && gin.IsDebugging()) || (ok && logFormat == "human") {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()

	apiURL, ok := os.LookupEnv("API_URL")
	if !ok {
		log.Fatal().Msg("environment variable API_URL must be set")
	}

	// Create data directory
	dataDir, ok := os.LookupEnv("DATA_DIR")
	if !ok {
		dataDir = filepath.Join(".", "data")
	}
	err := os.MkdirAll(dataDir, os.ModePerm)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	store, err := session.Connect(filepath.Join(dataDir, "session.db"))
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	months, err := monthctx.New(store, time.Now())
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	client := remote.New(apiURL, func() string {
		return os.Getenv("API_TOKEN")
	})

	coordinator := syncer.New(client, ledger.New(), months)
	defer coordinator.Flush()

	// The first load is best effort: the server also starts when the
	// costs API is down and serves the empty state until a month load
	// succeeds.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := coordinator.LoadForMonth(ctx, months.Selected()); err != nil {
		log.Warn().Err(err).Msg("could not load the selected month on startup")
	}
	cancel()

	r, teardown, err := router.Config()
	defer teardown()
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	router.AttachRoutes(r.Group("/"), &v1.Server{
		Coordinator: coordinator,
		Months:      months,
	})

	if err := r.Run(); err != nil {
		log.Fatal().Msg(err.Error())
	}
}
