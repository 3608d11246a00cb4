package resolverimpl

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/orgball2608/douyin-parser/internal/domain"
)

// CreatedAtLayout renders create_time as YYYY-MM-DD HH:MM:SS.
const CreatedAtLayout = "2006-01-02 15:04:05"

// jsonString matches the body of a JSON string literal, escapes included.
const jsonString = `((?:[^"\\]|\\.)*)`

var (
	statisticsPattern  = regexp.MustCompile(`"statistics":\{(.*?)\},`)
	contentIDPattern   = regexp.MustCompile(`"aweme_id":"([^"]+)"`)
	authorPattern      = regexp.MustCompile(`"nickname":"` + jsonString + `","signature":"` + jsonString + `"`)
	descriptionPattern = regexp.MustCompile(`"desc":"` + jsonString + `"`)
	createTimePattern  = regexp.MustCompile(`"create_time":(\d+)`)
)

// counterRule binds a key inside the statistics block to a record field.
type counterRule struct {
	key     string
	pattern *regexp.Regexp
	set     func(r *domain.MediaRecord, v int64)
}

func newCounterRule(key string, set func(r *domain.MediaRecord, v int64)) counterRule {
	return counterRule{
		key:     key,
		pattern: regexp.MustCompile(`"` + key + `":([^,}]+)`),
		set:     set,
	}
}

var counterRules = []counterRule{
	newCounterRule("comment_count", func(r *domain.MediaRecord, v int64) { r.CommentCount = &v }),
	newCounterRule("digg_count", func(r *domain.MediaRecord, v int64) { r.LikeCount = &v }),
	newCounterRule("share_count", func(r *domain.MediaRecord, v int64) { r.ShareCount = &v }),
	newCounterRule("collect_count", func(r *domain.MediaRecord, v int64) { r.CollectCount = &v }),
}

// extractStatistics fills the content id and counters from the first statistics
// block. Counters are only searched inside the block. It reports false when the
// block is missing.
func extractStatistics(body string, r *domain.MediaRecord) bool {
	m := statisticsPattern.FindStringSubmatch(body)
	if m == nil {
		return false
	}
	block := m[1]

	if id := contentIDPattern.FindStringSubmatch(block); id != nil {
		r.ID = stringPtr(id[1])
	}

	for _, rule := range counterRules {
		cm := rule.pattern.FindStringSubmatch(block)
		if cm == nil {
			continue
		}
		// A malformed counter is dropped, the rest of the record still resolves.
		v, err := strconv.ParseUint(strings.TrimSpace(cm[1]), 10, 63)
		if err != nil {
			continue
		}
		rule.set(r, int64(v))
	}
	return true
}

// extractAuthor sets name and bio together or not at all.
func extractAuthor(body string, r *domain.MediaRecord) {
	m := authorPattern.FindStringSubmatch(body)
	if m == nil {
		return
	}
	r.AuthorName = stringPtr(m[1])
	r.AuthorBio = stringPtr(m[2])
}

func extractDescription(body string, r *domain.MediaRecord) {
	if m := descriptionPattern.FindStringSubmatch(body); m != nil {
		r.Description = stringPtr(m[1])
	}
}

func extractCreatedAt(body string, loc *time.Location, r *domain.MediaRecord) {
	m := createTimePattern.FindStringSubmatch(body)
	if m == nil {
		return
	}
	sec, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return
	}
	r.CreatedAt = stringPtr(time.Unix(sec, 0).In(loc).Format(CreatedAtLayout))
}

func stringPtr(s string) *string {
	return &s
}
