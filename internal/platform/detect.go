package platform

import (
	"net/url"
	"strings"
)

// domainPatterns maps vendor domains to platform ids. Checked in order so
// detection stays deterministic; domain hits beat HTML signatures.
var domainPatterns = []struct {
	id       string
	patterns []string
}{
	{"sidearm", []string{"sidearmsports.com", "sidearmstats.com"}},
	{"presto", []string{"prestosports.com", "presto-stats.com"}},
	{"genius", []string{"geniussports.com"}},
	{"statbroadcast", []string{"statbroadcast.com"}},
	{"ncaa", []string{"ncaa.com", "ncaa.org"}},
	{"stretch", []string{"stretchinternet.com"}},
	{"wmt", []string{"wmt.digital"}},
	{"revel", []string{"revelxp.com"}},
}

// htmlSignatures maps vendor marker strings found in page source to platform
// ids. More reliable than domains for white-labeled school sites.
var htmlSignatures = []struct {
	id      string
	markers []string
}{
	{"sidearm", []string{"sidearm sports", "sidearmstats"}},
	{"presto", []string{"prestosports", "presto stats"}},
	{"genius", []string{"genius sports"}},
	{"wmt", []string{"wmt digital"}},
	{"stretch", []string{"stretch internet"}},
	{"statbroadcast", []string{"statbroadcast"}},
}

// Detect resolves a platform id from a domain (or full URL) and, when that is
// inconclusive, the page HTML. Total function: always returns a platform id,
// falling back to "generic".
func Detect(rawURL, html string) string {
	domain := rawURL
	path := ""
	if u, err := url.Parse(rawURL); err == nil && u.Host != "" {
		domain = u.Host
		path = strings.ToLower(u.Path)
	}
	domain = strings.ToLower(domain)

	for _, dp := range domainPatterns {
		for _, pattern := range dp.patterns {
			if strings.Contains(domain, pattern) {
				return dp.id
			}
		}
	}

	if html != "" {
		lower := strings.ToLower(html)
		for _, sig := range htmlSignatures {
			for _, marker := range sig.markers {
				if strings.Contains(lower, marker) {
					return sig.id
				}
			}
		}
	}

	if strings.Contains(path, "/sidearmstats/") {
		return "sidearm"
	}
	if strings.Contains(path, "/stats/") && strings.Contains(domain, "ncaa") {
		return "ncaa"
	}

	return "generic"
}
