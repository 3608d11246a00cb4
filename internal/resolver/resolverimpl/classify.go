package resolverimpl

import (
	"fmt"
	"net/url"
	"regexp"

	"github.com/orgball2608/douyin-parser/internal/domain"
)

// VideoURLTemplate is the playback endpoint. The page only exposes the opaque
// play_addr uri, never a direct link.
const VideoURLTemplate = "https://aweme.snssdk.com/aweme/v1/play/?video_id=%s&ratio=1080p&line=0"

var videoMarkerPattern = regexp.MustCompile(`"video":\{"play_addr":\{"uri":"([^"]+)"`)

// classify decides the post shape. Anything without a video marker is treated as
// an image post, even when the gallery later turns out empty.
func classify(body string) (domain.Kind, string) {
	m := videoMarkerPattern.FindStringSubmatch(body)
	if m == nil {
		return domain.KindImage, ""
	}
	return domain.KindVideo, fmt.Sprintf(VideoURLTemplate, url.QueryEscape(m[1]))
}
