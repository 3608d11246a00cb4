package metrics

import (
	"time"

	"github.com/orgball2608/douyin-parser/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "douyin_parser"

type Metrics struct {
	ResolutionsTotal   *prometheus.CounterVec
	ResolutionDuration *prometheus.HistogramVec
	GalleryImages      prometheus.Histogram
	RateLimitedTotal   prometheus.Counter
}

// NewRegistry returns a registry with the Go and process collectors installed.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

func New(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		ResolutionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "resolutions_total",
				Help:      "Total number of share link resolutions",
			},
			[]string{"kind", "outcome"},
		),
		ResolutionDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "resolution_duration_seconds",
				Help:      "Time spent fetching and parsing a share page",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"outcome"},
		),
		GalleryImages: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "gallery_images",
				Help:      "Number of images returned for image posts",
				Buckets:   []float64{0, 1, 2, 4, 6, 9, 12, 18, 35},
			},
		),
		RateLimitedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rate_limited_total",
				Help:      "Requests rejected by the API rate limiter",
			},
		),
	}

	reg.MustRegister(m.ResolutionsTotal, m.ResolutionDuration, m.GalleryImages, m.RateLimitedTotal)
	return m
}

// ObserveResolution records one resolve call. An empty code means success.
func (m *Metrics) ObserveResolution(record domain.MediaRecord, code string, elapsed time.Duration) {
	if m == nil {
		return
	}

	outcome := "ok"
	kind := string(record.Kind)
	if code != "" {
		outcome = code
		kind = "none"
	}

	m.ResolutionsTotal.WithLabelValues(kind, outcome).Inc()
	m.ResolutionDuration.WithLabelValues(outcome).Observe(elapsed.Seconds())

	if code == "" && record.Kind == domain.KindImage {
		m.GalleryImages.Observe(float64(len(record.ImageURLs)))
	}
}

func (m *Metrics) ObserveRateLimited() {
	if m == nil {
		return
	}
	m.RateLimitedTotal.Inc()
}
