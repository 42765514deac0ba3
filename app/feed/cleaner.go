package feed

import (
	"errors"
	"net/url"
	"strings"
)

// prefixMarker marks denylist entries that match any key starting with them.
const prefixMarker = "_"

var trackingParams = []string{
	"utm_", "gclid", "fbclid", "mc_cid", "mc_eid", "ad", "adParam", "audio_id",
	"awCollectionId", "awEpisodeId", "aw_0_", "aw", "campaign", "source", "medium",
}

type paramRule struct {
	name   string
	prefix bool
}

func (r paramRule) matches(key string) bool {
	if r.prefix {
		return strings.HasPrefix(key, r.name)
	}
	return key == r.name
}

type Cleaner struct {
	rules []paramRule
}

func NewCleaner() *Cleaner {
	return newCleaner(trackingParams)
}

func newCleaner(denylist []string) *Cleaner {
	rules := make([]paramRule, 0, len(denylist))
	for _, entry := range denylist {
		rules = append(rules, paramRule{
			name:   strings.ToLower(entry),
			prefix: strings.HasSuffix(entry, prefixMarker),
		})
	}
	return &Cleaner{rules: rules}
}

// Run drops tracking parameters and the fragment from href. Everything else,
// including the kept query segments, is written back verbatim and in its
// original order. An href that fails to parse is returned unchanged.
func (c *Cleaner) Run(href string) string {
	if !parseable(href) {
		return href
	}

	rest, _, _ := strings.Cut(href, "#")
	base, query, _ := strings.Cut(rest, "?")

	kept := make([]string, 0)
	for _, segment := range strings.Split(query, "&") {
		if segment == "" {
			continue
		}
		key, _, _ := strings.Cut(segment, "=")
		if c.isTracking(key) {
			continue
		}
		kept = append(kept, segment)
	}

	if len(kept) == 0 {
		return base
	}
	return base + "?" + strings.Join(kept, "&")
}

// parseable reports whether href is structurally a URL. Bad percent escapes
// are tolerated since the path is never decoded.
func parseable(href string) bool {
	_, err := url.Parse(href)
	if err == nil {
		return true
	}
	var escapeErr url.EscapeError
	return errors.As(err, &escapeErr)
}

func (c *Cleaner) isTracking(key string) bool {
	key = strings.ToLower(key)
	for _, rule := range c.rules {
		if rule.matches(key) {
			return true
		}
	}
	return false
}
