package resolverimpl

import (
	"regexp"
	"strings"
)

const (
	escapedSlash = `\u002F`
	objectPath   = "/obj/"
)

var (
	candidatePattern  = regexp.MustCompile(`\{"uri":"([^"]+)","url_list":\["(https://p\d{1,2}-sign\.douyinpic\.com/[^"]*)"`)
	identifierPattern = regexp.MustCompile(`"uri":"([^"]+)","url_list":`)
)

type candidate struct {
	uri string
	url string
}

// reconcileGallery correlates image identifiers with signed delivery URLs. Each
// image shows up as several fragments across the page, so identifiers are
// deduplicated and mapped to one candidate each. Internal object-storage URLs
// never make it into the result.
func reconcileGallery(body string) []string {
	normalized := strings.ReplaceAll(body, escapedSlash, "/")

	var candidates []candidate
	for _, m := range candidatePattern.FindAllStringSubmatch(normalized, -1) {
		candidates = append(candidates, candidate{uri: m[1], url: m[2]})
	}

	identifiers := uniqueIdentifiers(normalized)

	urls := make([]string, 0, len(identifiers))
	seen := make(map[string]struct{}, len(identifiers))
	for _, id := range identifiers {
		u, ok := matchCandidate(id, candidates)
		if !ok || strings.Contains(u, objectPath) {
			continue
		}
		if _, dup := seen[u]; dup {
			continue
		}
		seen[u] = struct{}{}
		urls = append(urls, u)
	}
	return urls
}

// uniqueIdentifiers returns every url_list owner id once, in order of first appearance.
func uniqueIdentifiers(body string) []string {
	matches := identifierPattern.FindAllStringSubmatch(body, -1)
	ids := make([]string, 0, len(matches))
	seen := make(map[string]struct{}, len(matches))
	for _, m := range matches {
		if _, ok := seen[m[1]]; ok {
			continue
		}
		seen[m[1]] = struct{}{}
		ids = append(ids, m[1])
	}
	return ids
}

// matchCandidate prefers a fragment keyed by the identifier itself and falls back
// to the first URL that embeds the identifier.
func matchCandidate(id string, candidates []candidate) (string, bool) {
	for _, c := range candidates {
		if c.uri == id {
			return c.url, true
		}
	}
	for _, c := range candidates {
		if strings.Contains(c.url, id) {
			return c.url, true
		}
	}
	return "", false
}
