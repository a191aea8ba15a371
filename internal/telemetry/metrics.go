package telemetry

import (
	"context"
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelmetric "go.opentelemetry.io/otel/metric"
)

var (
	metricsOnce       sync.Once
	refreshTotal      otelmetric.Int64Counter
	snapshotArticles  otelmetric.Int64Histogram
	draftsSaved       otelmetric.Int64Counter
	articlesPublished otelmetric.Int64Counter
	engagementToggles otelmetric.Int64Counter
)

func initMetrics() {
	meter := otel.Meter("technote")
	var err error
	refreshTotal, err = meter.Int64Counter(
		"article_refresh_total",
		otelmetric.WithDescription("Article snapshot loads by outcome"),
	)
	if err != nil {
		log.Printf("telemetry metrics init: article_refresh_total: %v", err)
	}
	snapshotArticles, err = meter.Int64Histogram(
		"article_snapshot_size",
		otelmetric.WithDescription("Number of articles in each loaded snapshot"),
	)
	if err != nil {
		log.Printf("telemetry metrics init: article_snapshot_size: %v", err)
	}
	draftsSaved, err = meter.Int64Counter(
		"editor_drafts_saved_total",
		otelmetric.WithDescription("Drafts persisted by the editor, manual or autosave"),
	)
	if err != nil {
		log.Printf("telemetry metrics init: editor_drafts_saved_total: %v", err)
	}
	articlesPublished, err = meter.Int64Counter(
		"editor_articles_published_total",
		otelmetric.WithDescription("Articles published to the local store"),
	)
	if err != nil {
		log.Printf("telemetry metrics init: editor_articles_published_total: %v", err)
	}
	engagementToggles, err = meter.Int64Counter(
		"engagement_toggles_total",
		otelmetric.WithDescription("Like/bookmark/follow toggles by kind and resulting state"),
	)
	if err != nil {
		log.Printf("telemetry metrics init: engagement_toggles_total: %v", err)
	}
}

func contextOrBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}

// RecordRefresh counts one snapshot load. outcome is "ok" or "fallback".
func RecordRefresh(ctx context.Context, outcome string, size int) {
	metricsOnce.Do(initMetrics)
	attrs := otelmetric.WithAttributes(attribute.String("outcome", outcome))
	if refreshTotal != nil {
		refreshTotal.Add(contextOrBackground(ctx), 1, attrs)
	}
	if snapshotArticles != nil {
		snapshotArticles.Record(contextOrBackground(ctx), int64(size), attrs)
	}
}

// RecordDraftSaved counts a persisted draft. trigger is "manual" or "autosave".
func RecordDraftSaved(ctx context.Context, trigger string) {
	metricsOnce.Do(initMetrics)
	if draftsSaved != nil {
		draftsSaved.Add(contextOrBackground(ctx), 1, otelmetric.WithAttributes(attribute.String("trigger", trigger)))
	}
}

// RecordPublished counts an article written to the local store.
func RecordPublished(ctx context.Context, category string) {
	metricsOnce.Do(initMetrics)
	if articlesPublished != nil {
		articlesPublished.Add(contextOrBackground(ctx), 1, otelmetric.WithAttributes(attribute.String("category", category)))
	}
}

// RecordToggle counts an engagement toggle.
func RecordToggle(ctx context.Context, kind string, state bool) {
	metricsOnce.Do(initMetrics)
	if engagementToggles != nil {
		engagementToggles.Add(contextOrBackground(ctx), 1, otelmetric.WithAttributes(
			attribute.String("kind", kind),
			attribute.Bool("state", state),
		))
	}
}
