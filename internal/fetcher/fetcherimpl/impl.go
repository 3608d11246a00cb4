package fetcherimpl

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/orgball2608/douyin-parser/internal/fetcher"
	"github.com/orgball2608/douyin-parser/pkg/config"
	"github.com/orgball2608/douyin-parser/pkg/errors"
	"github.com/orgball2608/douyin-parser/pkg/logger"
	"go.uber.org/fx"
)

const (
	// DefaultUserAgent is a mobile Safari identity. The desktop page is a different,
	// script-rendered document without the embedded JSON.
	DefaultUserAgent = "Mozilla/5.0 (iPhone; CPU iPhone OS 16_6 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/16.6 Mobile/15E148 Safari/604.1"

	DefaultTimeout = 30 * time.Second

	maxBodySize = 10 << 20
)

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
}

type FetcherImpl struct {
	client    *http.Client
	userAgent string
	logger    logger.Logger
}

func New(opts Opts) (*FetcherImpl, error) {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	// Only the configured proxy is honoured, never HTTP_PROXY from the environment.
	transport.Proxy = nil

	if raw := opts.Config.Resolver.Proxy; raw != "" {
		proxyURL, err := parseProxy(raw)
		if err != nil {
			return nil, err
		}
		transport.Proxy = http.ProxyURL(proxyURL)
	}

	timeout := opts.Config.Resolver.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	userAgent := opts.Config.Resolver.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	return &FetcherImpl{
		client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		userAgent: userAgent,
		logger:    opts.Logger.WithComponent("Fetcher"),
	}, nil
}

var _ fetcher.Client = (*FetcherImpl)(nil)

// Fetch returns the page body. A non-2xx status is logged but not treated as a
// failure since the site sometimes serves usable pages with odd status codes.
func (f *FetcherImpl) Fetch(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", errors.NewInvalidInput(fmt.Sprintf("build request for %q: %v", rawURL, err))
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		f.logger.Warn("Request failed", "url", rawURL, "error", err)
		return "", errors.NewNetwork(rawURL, err)
	}
	defer safeClose(resp.Body, f.logger)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		f.logger.Warn("Unexpected status, extracting anyway", "url", rawURL, "status", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", errors.NewNetwork(rawURL, err)
	}

	f.logger.Debug("Fetched page", "url", rawURL, "final_url", resp.Request.URL.String(), "bytes", len(body))
	return string(body), nil
}

func parseProxy(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid proxy url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid proxy url %q: scheme and host are required", raw)
	}
	return u, nil
}

func safeClose(closer io.ReadCloser, log logger.Logger) {
	if err := closer.Close(); err != nil {
		log.Error("Error closing response body", "error", err)
	}
}
