package main

import (
	"context"
	"net/http"
	"time"

	nested "github.com/antonfisher/nested-logrus-formatter"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	appConfig "vibelist/config"
	"vibelist/curator"
	"vibelist/handlers"
	"vibelist/llm"
	appSentry "vibelist/sentry"
	"vibelist/spotify"
	"vibelist/wikipedia"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Warnf("Error loading .env file: %v", err)
	}
	cfg := appConfig.NewConfig()
	setupLogging(cfg.Options)

	if err := run(context.Background(), cfg); err != nil {
		appSentry.ReportError(err)
		log.Fatal(err)
	}
}

func setupLogging(opts appConfig.Options) {
	log.SetFormatter(&nested.Formatter{
		HideKeys:    true,
		FieldsOrder: []string{"component", "request_id"},
	})
	level, err := log.ParseLevel(opts.LogLevel)
	if err != nil {
		log.Warnf("Unknown LOG_LEVEL %q, using info", opts.LogLevel)
		level = log.InfoLevel
	}
	log.SetLevel(level)
}

func run(ctx context.Context, cfg *appConfig.ConfigStruct) error {
	if err := appSentry.Init(cfg.Sentry); err != nil {
		log.Errorf("Error initialising Sentry: %v", err)
	}

	completer, err := llm.New(ctx, cfg)
	if err != nil {
		return err
	}

	var opts []curator.Option
	sp, err := spotify.NewClient(ctx, cfg.Spotify)
	if err != nil {
		log.Warnf("Spotify lookups unavailable, falling back to search links: %v", err)
	} else if sp != nil {
		opts = append(opts, curator.WithResolver(sp))
	}
	if cfg.Wikipedia.Enabled {
		timeout := time.Duration(cfg.Wikipedia.TimeoutSeconds) * time.Second
		opts = append(opts, curator.WithThumbnails(wikipedia.New(timeout)))
	}

	if cfg.Options.GinMode != "" {
		gin.SetMode(cfg.Options.GinMode)
	}
	router := gin.New()
	router.Use(
		handlers.Recovery(),
		appSentry.GetSentryGin(),
		handlers.RequestID(),
		handlers.Logger(),
	)
	handlers.NewManager(curator.New(completer, opts...)).Register(router)

	log.WithFields(log.Fields{
		"provider": cfg.LLM.Provider,
		"port":     cfg.Options.Port,
	}).Info("Starting playlist server")
	return http.ListenAndServe(":"+cfg.Options.Port, router)
}
