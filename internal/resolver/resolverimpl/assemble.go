package resolverimpl

import (
	"errors"
	"time"

	"github.com/orgball2608/douyin-parser/internal/domain"
)

// ErrStatisticsNotFound means the body is not a recognized content page: a
// deleted post, a login wall or an unexpected redirect target.
var ErrStatisticsNotFound = errors.New("statistics block not found")

// Parse builds a MediaRecord from a raw page body. Each field is extracted on its
// own, so a missing field never blocks the others. Only a missing statistics
// block fails the whole parse.
func Parse(body string, loc *time.Location) (domain.MediaRecord, error) {
	if loc == nil {
		loc = time.Local
	}

	var record domain.MediaRecord

	kind, videoURL := classify(body)

	if !extractStatistics(body, &record) {
		return domain.MediaRecord{}, ErrStatisticsNotFound
	}
	extractAuthor(body, &record)
	extractDescription(body, &record)
	extractCreatedAt(body, loc, &record)

	record.Kind = kind
	switch kind {
	case domain.KindVideo:
		record.VideoURL = videoURL
	case domain.KindImage:
		record.ImageURLs = reconcileGallery(body)
	}

	return record, nil
}
