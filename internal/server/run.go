package server

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mohammad-safakhou/technote/config"
	"github.com/mohammad-safakhou/technote/internal/editor"
	"github.com/mohammad-safakhou/technote/internal/engagement"
	"github.com/mohammad-safakhou/technote/internal/kv"
	"github.com/mohammad-safakhou/technote/internal/refresh"
	"github.com/mohammad-safakhou/technote/internal/render"
	"github.com/mohammad-safakhou/technote/internal/search"
	"github.com/mohammad-safakhou/technote/internal/store"
	"github.com/mohammad-safakhou/technote/internal/telemetry"
)

// Version is reported on the telemetry resource.
var Version = "dev"

// Run wires every component from cfg and serves until ctx is cancelled.
func Run(ctx context.Context, cfg *config.Config) error {
	logger := log.New(log.Writer(), "[SERVER] ", log.LstdFlags)

	tele, err := telemetry.Setup(ctx, cfg.Telemetry, telemetry.Options{ServiceName: "technote", ServiceVersion: Version})
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = tele.Shutdown(shutdownCtx)
	}()

	local, closer, err := kv.Open(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	defer closer.Close()

	articles := store.New(store.SourceFromConfig(cfg.Articles), store.Options{
		Fallback:     cfg.Articles.Fallback,
		IncludeLocal: cfg.Articles.IncludeLocal,
		Local:        local,
	})
	index := search.New()
	defer index.Close()
	articles.Subscribe(index.OnSnapshot)

	refresher := refresh.New(articles, cfg.Articles.RefreshInterval)
	if err := refresher.RefreshNow(ctx); err != nil {
		logger.Printf("initial load: %v", err)
	}
	if err := refresher.Start(ctx); err != nil {
		return err
	}
	defer refresher.Stop()

	loc := cfg.Site.Location()
	opts := render.Options{Location: loc, BaseURL: cfg.Site.BaseURL, ListURL: "/tabs/latest"}
	if sched, err := refresh.ParsePublicationSchedule(cfg.Site.PublishCron, loc); err != nil {
		logger.Printf("publication schedule disabled: %v", err)
	} else {
		opts.NextPublication = sched.Next
	}

	drafts := editor.NewDrafts(local)
	workspace := editor.NewWorkspace()
	autosaver := editor.NewAutosaver(workspace, drafts, cfg.Editor.AutosaveInterval)
	if err := autosaver.Start(); err != nil {
		return err
	}
	defer autosaver.Stop()

	publisher := editor.NewPublisher(local, drafts)
	publisher.Snapshot = articles.Snapshot

	serveCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	metrics := tele.Handler()
	if addr := cfg.Telemetry.MetricsAddr(); addr != "" {
		me := NewMetricsEcho(metrics)
		go func() {
			if err := Serve(serveCtx, me, addr); err != nil {
				logger.Printf("metrics listener: %v", err)
				cancel()
			}
		}()
		metrics = nil
	}

	e := NewEcho(Deps{
		Articles:   articles,
		Renderer:   render.New(opts),
		Negotiator: render.NewNegotiator(cfg.Site.SupportedLocales, cfg.Site.DefaultLocale),
		Search:     index,
		Workspace:  workspace,
		Drafts:     drafts,
		Publisher:  publisher,
		Toggles:    engagement.NewToggles(local),
		Comments:   engagement.NewComments(local),
		Metrics:    metrics,
		PageSize:   cfg.Articles.PageSize,
		Debug:      cfg.General.Debug,

		AllowedOrigins: cfg.Server.AllowedOrigins,
	})
	return Serve(serveCtx, e, cfg.Server.Address)
}
