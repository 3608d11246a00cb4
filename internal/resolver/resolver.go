package resolver

import (
	"context"
	"net/url"
	"regexp"
	"strings"

	"github.com/orgball2608/douyin-parser/internal/domain"
	"github.com/orgball2608/douyin-parser/pkg/errors"
)

//go:generate go run go.uber.org/mock/mockgen -source=resolver.go -destination=mocks/mock.go

// Client turns a share link into a MediaRecord. Every call is a fresh resolution.
type Client interface {
	Resolve(ctx context.Context, shareURL string) (domain.MediaRecord, error)
}

var shareURLPattern = regexp.MustCompile(`https?://[^\s"'<>]+`)

// ExtractShareURL pulls the first http(s) link out of pasted share text, which
// usually wraps the link in a caption and app promotion.
func ExtractShareURL(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", errors.NewInvalidInput("share text is empty")
	}
	link := shareURLPattern.FindString(text)
	if link == "" {
		return "", errors.NewInvalidInput("no link found in share text")
	}
	return link, ValidateShareURL(link)
}

// ValidateShareURL checks that the link is an absolute http(s) URL.
func ValidateShareURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return errors.NewInvalidInput("malformed share url: " + err.Error())
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.NewInvalidInput("share url must use http or https")
	}
	if u.Host == "" {
		return errors.NewInvalidInput("share url has no host")
	}
	return nil
}
