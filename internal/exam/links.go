package exam

import (
	"fmt"
	"strings"
)

// DefaultBaseURL is the root of the document archive.
const DefaultBaseURL = "https://dari.oktatas.hu/kir/erettsegi/okev_doc"

// URLTemplate documents the shape of every download link.
const URLTemplate = DefaultBaseURL + "/{pathSegment}/{fileName}"

type pathRule struct {
	matches func(year Year, month Month) bool
	apply   func(segment string) string
}

// pathRules is ordered; the first match wins.
var pathRules = []pathRule{
	{
		matches: func(y Year, m Month) bool { return m == October && y == 2005 },
		apply:   func(string) string { return "2005_osz" },
	},
	{
		matches: func(y Year, m Month) bool { return m == February && y == 2006 },
		apply:   func(string) string { return "2006_1" },
	},
	{
		matches: func(y Year, m Month) bool { return m == October && y > 2006 },
		apply:   func(segment string) string { return segment + "/oktober" },
	},
}

// PathSegment returns the directory of a session inside the archive.
func PathSegment(year Year, month Month) string {
	segment := fmt.Sprintf("erettsegi_%d", year)
	for _, rule := range pathRules {
		if rule.matches(year, month) {
			return rule.apply(segment)
		}
	}
	return segment
}

// BuildLinks returns the download URL of each file name, in order.
func BuildLinks(year Year, month Month, fileNames []string) []string {
	return BuildLinksWithBase(DefaultBaseURL, year, month, fileNames)
}

// BuildLinksWithBase is BuildLinks against a different archive root, such
// as a mirror.
func BuildLinksWithBase(baseURL string, year Year, month Month, fileNames []string) []string {
	base := strings.TrimRight(baseURL, "/")
	segment := PathSegment(year, month)

	links := make([]string, len(fileNames))
	for i, name := range fileNames {
		links[i] = base + "/" + segment + "/" + name
	}
	return links
}

// Target is a single document to fetch.
type Target struct {
	Kind     Kind
	URL      string
	FileName string
}

// IsArchive reports whether the target is a zip archive to be extracted.
func (t Target) IsArchive() bool {
	return strings.HasSuffix(strings.ToLower(t.FileName), ".zip")
}

// Plan resolves the four targets of a request against baseURL.
func Plan(baseURL string, req Request) []Target {
	names := BuildFileNames(req.Year, req.Month, req.Level)
	links := BuildLinksWithBase(baseURL, req.Year, req.Month, names[:])

	targets := make([]Target, len(names))
	for i := range names {
		targets[i] = Target{
			Kind:     Kind(i),
			URL:      links[i],
			FileName: names[i],
		}
	}
	return targets
}
