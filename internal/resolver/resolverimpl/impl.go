package resolverimpl

import (
	"context"
	"time"

	"github.com/orgball2608/douyin-parser/internal/domain"
	"github.com/orgball2608/douyin-parser/internal/fetcher"
	"github.com/orgball2608/douyin-parser/internal/metrics"
	"github.com/orgball2608/douyin-parser/internal/repositories/resolution"
	"github.com/orgball2608/douyin-parser/internal/resolver"
	"github.com/orgball2608/douyin-parser/pkg/config"
	"github.com/orgball2608/douyin-parser/pkg/errors"
	"github.com/orgball2608/douyin-parser/pkg/logger"
	"go.uber.org/fx"
)

const historyWriteTimeout = 5 * time.Second

type Opts struct {
	fx.In

	Fetcher fetcher.Client
	History resolution.Repository
	Metrics *metrics.Metrics
	Logger  logger.Logger
	Config  *config.Config
}

type ResolverImpl struct {
	Fetcher  fetcher.Client
	History  resolution.Repository
	Metrics  *metrics.Metrics
	Logger   logger.Logger
	Location *time.Location
}

func New(opts Opts) *ResolverImpl {
	return &ResolverImpl{
		Fetcher:  opts.Fetcher,
		History:  opts.History,
		Metrics:  opts.Metrics,
		Logger:   opts.Logger.WithComponent("Resolver"),
		Location: opts.Config.Location(),
	}
}

var _ resolver.Client = (*ResolverImpl)(nil)

// Resolve fetches the share page and assembles a fresh record. Failures are never
// retried here; a failed call returns no partial record.
func (r *ResolverImpl) Resolve(ctx context.Context, shareURL string) (domain.MediaRecord, error) {
	start := time.Now()

	record, err := r.resolve(ctx, shareURL)

	code := errorCode(err)
	r.Metrics.ObserveResolution(record, code, time.Since(start))
	r.saveHistory(ctx, shareURL, record, code)

	if err != nil {
		r.Logger.Warn("Resolution failed", "url", shareURL, "error", err)
		return domain.MediaRecord{}, err
	}

	r.Logger.Info("Resolved share link",
		"url", shareURL,
		"kind", record.Kind,
		"images", len(record.ImageURLs),
		"elapsed", time.Since(start).Round(time.Millisecond).String(),
	)
	return record, nil
}

func (r *ResolverImpl) resolve(ctx context.Context, shareURL string) (domain.MediaRecord, error) {
	if err := resolver.ValidateShareURL(shareURL); err != nil {
		return domain.MediaRecord{}, err
	}

	body, err := r.Fetcher.Fetch(ctx, shareURL)
	if err != nil {
		return domain.MediaRecord{}, err
	}

	record, err := Parse(body, r.Location)
	if err != nil {
		return domain.MediaRecord{}, errors.WrapWithCode(err, errors.CodeResolution, "resolve "+shareURL)
	}

	if record.Kind == domain.KindImage && len(record.ImageURLs) == 0 {
		r.Logger.Warn("No video marker and no gallery images, returning empty image post", "url", shareURL)
	}
	return record, nil
}

// saveHistory appends an audit entry. It is never read back as a cache and a
// write failure does not affect the caller.
func (r *ResolverImpl) saveHistory(ctx context.Context, shareURL string, record domain.MediaRecord, code string) {
	entry := domain.Resolution{
		ShareURL:  shareURL,
		Kind:      record.Kind,
		ErrorCode: code,
	}
	if record.ID != nil {
		entry.ContentID = *record.ID
	}
	switch record.Kind {
	case domain.KindVideo:
		entry.MediaCount = 1
	case domain.KindImage:
		entry.MediaCount = len(record.ImageURLs)
	}

	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), historyWriteTimeout)
	defer cancel()

	if err := r.History.Create(writeCtx, entry); err != nil {
		r.Logger.Error("Failed to save resolution history", "url", shareURL, "error", err)
	}
}

// errorCode is empty on success and never empty on failure.
func errorCode(err error) string {
	if err == nil {
		return ""
	}
	if code := errors.GetCode(err); code != "" {
		return code
	}
	return "unknown"
}
