package resolverimpl

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/orgball2608/douyin-parser/internal/domain"
)

// escapeSlashes mimics the page's unicode-escaped slashes.
func escapeSlashes(s string) string {
	return strings.ReplaceAll(s, "/", "\\"+"u002F")
}

const videoBody = `<html><script id="RENDER_DATA">{"aweme_id":"7300000000000000001","desc":"hello world","create_time":1700000000,` +
	`"video":{"play_addr":{"uri":"abc123","url_list":["https://v3-web.douyinvod.com/x"]}},` +
	`"author":{"nickname":"Alice","signature":"bio text"},` +
	`"statistics":{"aweme_id":"7300000000000000001","comment_count":5,"digg_count":12,"share_count":3,"collect_count":7},"status":{}}</script></html>`

func TestParse_Video(t *testing.T) {
	record, err := Parse(videoBody, time.UTC)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if record.Kind != domain.KindVideo {
		t.Errorf("Kind = %q, want video", record.Kind)
	}
	wantURL := fmt.Sprintf(VideoURLTemplate, "abc123")
	if record.VideoURL != wantURL {
		t.Errorf("VideoURL = %q, want %q", record.VideoURL, wantURL)
	}
	if !strings.Contains(record.VideoURL, "video_id=abc123") {
		t.Errorf("VideoURL = %q, want video_id=abc123", record.VideoURL)
	}
	if record.ImageURLs != nil {
		t.Errorf("ImageURLs = %v, want nil for video post", record.ImageURLs)
	}

	assertString(t, "ID", record.ID, "7300000000000000001")
	assertInt(t, "CommentCount", record.CommentCount, 5)
	assertInt(t, "LikeCount", record.LikeCount, 12)
	assertInt(t, "ShareCount", record.ShareCount, 3)
	assertInt(t, "CollectCount", record.CollectCount, 7)
	assertString(t, "AuthorName", record.AuthorName, "Alice")
	assertString(t, "AuthorBio", record.AuthorBio, "bio text")
	assertString(t, "Description", record.Description, "hello world")
	assertString(t, "CreatedAt", record.CreatedAt, "2023-11-14 22:13:20")
}

func TestParse_CreatedAtUsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*60*60)
	record, err := Parse(videoBody, loc)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	assertString(t, "CreatedAt", record.CreatedAt, "2023-11-15 06:13:20")
}

func TestParse_VideoIgnoresGalleryFragments(t *testing.T) {
	body := `"video":{"play_addr":{"uri":"v0200"}},` +
		`{"uri":"imgA","url_list":["https://p3-sign.douyinpic.com/imgA.jpeg"]}` +
		`"statistics":{"comment_count":1},`

	record, err := Parse(body, time.UTC)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if record.Kind != domain.KindVideo || record.ImageURLs != nil {
		t.Errorf("got kind %q images %v, want video with no images", record.Kind, record.ImageURLs)
	}
}

func TestParse_MissingStatistics(t *testing.T) {
	bodies := map[string]string{
		"empty":      "",
		"login wall": `<html><title>登录</title>{"desc":"x","nickname":"a","signature":"b"}</html>`,
		"video only": `"video":{"play_addr":{"uri":"abc123"}}`,
		"unclosed":   `"statistics":{"comment_count":1}`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			record, err := Parse(body, time.UTC)
			if !errors.Is(err, ErrStatisticsNotFound) {
				t.Fatalf("Parse() error = %v, want ErrStatisticsNotFound", err)
			}
			if !reflect.DeepEqual(record, domain.MediaRecord{}) {
				t.Errorf("Parse() record = %+v, want zero record", record)
			}
		})
	}
}

func TestParse_OptionalFieldsAbsent(t *testing.T) {
	record, err := Parse(`"statistics":{"comment_count":1},`, time.UTC)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if record.Kind != domain.KindImage {
		t.Errorf("Kind = %q, want image fallback", record.Kind)
	}
	if len(record.ImageURLs) != 0 {
		t.Errorf("ImageURLs = %v, want empty", record.ImageURLs)
	}
	if record.ID != nil || record.AuthorName != nil || record.AuthorBio != nil ||
		record.Description != nil || record.CreatedAt != nil {
		t.Errorf("optional fields should be absent, got %+v", record)
	}
	if record.LikeCount != nil || record.ShareCount != nil || record.CollectCount != nil {
		t.Errorf("missing counters should be absent, got %+v", record)
	}
	assertInt(t, "CommentCount", record.CommentCount, 1)
}

func TestParse_CountersScopedToStatistics(t *testing.T) {
	body := `{"comment_count":999,"digg_count":999},"statistics":{"digg_count":4},{"share_count":999}`

	record, err := Parse(body, time.UTC)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if record.CommentCount != nil {
		t.Errorf("CommentCount = %d, want absent", *record.CommentCount)
	}
	if record.ShareCount != nil {
		t.Errorf("ShareCount = %d, want absent", *record.ShareCount)
	}
	assertInt(t, "LikeCount", record.LikeCount, 4)
}

func TestParse_MalformedCounterIsAbsent(t *testing.T) {
	body := `"statistics":{"aweme_id":"42","comment_count":"abc","digg_count":9,"share_count":-3},`

	record, err := Parse(body, time.UTC)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if record.CommentCount != nil {
		t.Errorf("CommentCount = %d, want absent", *record.CommentCount)
	}
	if record.ShareCount != nil {
		t.Errorf("ShareCount = %d, want absent for negative value", *record.ShareCount)
	}
	assertInt(t, "LikeCount", record.LikeCount, 9)
	assertString(t, "ID", record.ID, "42")
}

func TestParse_AuthorPairIsAtomic(t *testing.T) {
	body := `"nickname":"Alice","unique_id":"a1","signature":"bio",` + `"statistics":{"digg_count":1},`

	record, err := Parse(body, time.UTC)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if record.AuthorName != nil || record.AuthorBio != nil {
		t.Errorf("author = (%v, %v), want both absent when not adjacent", record.AuthorName, record.AuthorBio)
	}
}

func TestParse_DescriptionKeepsEscapes(t *testing.T) {
	body := `"desc":"say \"hi\" #tag","statistics":{"digg_count":1},`

	record, err := Parse(body, time.UTC)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	assertString(t, "Description", record.Description, `say \"hi\" #tag`)
}

func TestParse_FirstOccurrenceWins(t *testing.T) {
	body := `"desc":"first","create_time":1700000000,"desc":"second","create_time":1,"statistics":{"digg_count":1},`

	record, err := Parse(body, time.UTC)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	assertString(t, "Description", record.Description, "first")
	assertString(t, "CreatedAt", record.CreatedAt, "2023-11-14 22:13:20")
}

func TestParse_ImageGalleryDedup(t *testing.T) {
	body := `{"images":[` +
		`{"uri":"imgA","url_list":["https://p3-sign.douyinpic.com/tos-cn-i/imgA~noop.jpeg?x-expires=1"]},` +
		`{"uri":"imgA","url_list":["https://p9-sign.douyinpic.com/tos-cn-i/imgA~tplv.webp"]},` +
		`{"uri":"imgB","url_list":["https://p6-sign.douyinpic.com/obj/imgB.jpeg"]}` +
		`]},"statistics":{"digg_count":1},`

	record, err := Parse(body, time.UTC)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if record.Kind != domain.KindImage {
		t.Fatalf("Kind = %q, want image", record.Kind)
	}
	want := []string{"https://p3-sign.douyinpic.com/tos-cn-i/imgA~noop.jpeg?x-expires=1"}
	if !reflect.DeepEqual(record.ImageURLs, want) {
		t.Errorf("ImageURLs = %v, want %v", record.ImageURLs, want)
	}
	if record.VideoURL != "" {
		t.Errorf("VideoURL = %q, want empty for image post", record.VideoURL)
	}
}

func TestParse_ImageGalleryEscapedSlashes(t *testing.T) {
	gallery := `{"uri":"img1","url_list":["https://p3-sign.douyinpic.com/tos-cn-i/img1.jpeg"]},` +
		`{"uri":"img2","url_list":["https://p26-sign.douyinpic.com/tos-cn-i/img2.jpeg"]},` +
		`{"uri":"img3","url_list":["https://p3-sign.douyinpic.com/obj/img3.jpeg"]}`
	body := escapeSlashes(gallery) + `,"statistics":{"digg_count":1},`

	record, err := Parse(body, time.UTC)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	want := []string{
		"https://p3-sign.douyinpic.com/tos-cn-i/img1.jpeg",
		"https://p26-sign.douyinpic.com/tos-cn-i/img2.jpeg",
	}
	if !reflect.DeepEqual(record.ImageURLs, want) {
		t.Errorf("ImageURLs = %v, want %v", record.ImageURLs, want)
	}
	for _, u := range record.ImageURLs {
		if strings.Contains(u, "/obj/") {
			t.Errorf("ImageURLs contains object storage url %q", u)
		}
	}
}

func TestParse_ImageGalleryIsStable(t *testing.T) {
	body := `{"uri":"b1","url_list":["https://p3-sign.douyinpic.com/b1.jpeg"]},` +
		`{"uri":"a1","url_list":["https://p3-sign.douyinpic.com/a1.jpeg"]},` +
		`"uri":"b1","url_list":[],` +
		`"statistics":{"digg_count":1},`

	first, err := Parse(body, time.UTC)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := Parse(body, time.UTC)
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		if !reflect.DeepEqual(first.ImageURLs, again.ImageURLs) {
			t.Fatalf("run %d: ImageURLs = %v, want %v", i, again.ImageURLs, first.ImageURLs)
		}
	}
	want := []string{"https://p3-sign.douyinpic.com/b1.jpeg", "https://p3-sign.douyinpic.com/a1.jpeg"}
	if !reflect.DeepEqual(first.ImageURLs, want) {
		t.Errorf("ImageURLs = %v, want %v", first.ImageURLs, want)
	}
}

func assertString(t *testing.T, field string, got *string, want string) {
	t.Helper()
	if got == nil {
		t.Errorf("%s = nil, want %q", field, want)
		return
	}
	if *got != want {
		t.Errorf("%s = %q, want %q", field, *got, want)
	}
}

func assertInt(t *testing.T, field string, got *int64, want int64) {
	t.Helper()
	if got == nil {
		t.Errorf("%s = nil, want %d", field, want)
		return
	}
	if *got != want {
		t.Errorf("%s = %d, want %d", field, *got, want)
	}
}
