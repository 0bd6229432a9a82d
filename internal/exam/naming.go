package exam

import (
	"fmt"
	"strings"
)

// Kind identifies one of the four documents published for a session.
type Kind int

const (
	KindInfo           Kind = iota // exam paper
	KindInfoSource                 // source files for the exam paper
	KindSolution                   // marking guide
	KindSolutionSource             // source files of the solutions
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindInfo:
		return "info"
	case KindInfoSource:
		return "info-source"
	case KindSolution:
		return "solution"
	case KindSolutionSource:
		return "solution-source"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// TemplateSet is one generation of the portal's file naming scheme.
//
// Patterns are indexed by Kind and support two placeholders:
//   - {level} - the level letter ("k" or "e")
//   - {date}  - two digit year followed by the season word, e.g. "12okt"
type TemplateSet struct {
	Version  int
	Patterns [4]string
}

var (
	templatesV0 = TemplateSet{Version: 0, Patterns: [4]string{
		"{level}_info_fl.pdf", "{level}_infoforras_fl.zip",
		"{level}_info_ut.pdf", "{level}_infomegoldas_ut.zip",
	}}
	templatesV1 = TemplateSet{Version: 1, Patterns: [4]string{
		"{level}_info_{date}_fl.pdf", "{level}_infoforras_{date}_fl.zip",
		"{level}_info_{date}_ut.pdf", "{level}_infomegoldas_{date}_ut.zip",
	}}
	templatesV2 = TemplateSet{Version: 2, Patterns: [4]string{
		"{level}_info_{date}_fl.pdf", "{level}_infofor_{date}_fl.zip",
		"{level}_info_{date}_ut.pdf", "{level}_infomeg_{date}_ut.zip",
	}}
	templatesV3 = TemplateSet{Version: 3, Patterns: [4]string{
		"{level}_inf_{date}_fl.pdf", "{level}_inffor_{date}_fl.zip",
		"{level}_inf_{date}_ut.pdf", "{level}_infmeg_{date}_ut.zip",
	}}
)

type templateRule struct {
	matches func(year Year, month Month) bool
	set     TemplateSet
}

// templateRules is ordered; the first match wins. New portal schemes are
// added here.
var templateRules = []templateRule{
	{
		matches: func(y Year, m Month) bool { return y == 2005 && m == May },
		set:     templatesV0,
	},
	{
		matches: func(y Year, _ Month) bool { return y < 2009 },
		set:     templatesV1,
	},
	{
		matches: func(y Year, m Month) bool { return sessionKey(y, m) < sessionKey(2011, October) },
		set:     templatesV2,
	},
	{
		matches: func(Year, Month) bool { return true },
		set:     templatesV3,
	},
}

func sessionKey(y Year, m Month) int {
	return int(y)*100 + int(m)
}

// ResolveTemplates returns the naming scheme in effect for a session.
func ResolveTemplates(year Year, month Month) TemplateSet {
	for _, rule := range templateRules {
		if rule.matches(year, month) {
			return rule.set
		}
	}
	return templatesV3
}

// DatePart returns the date token used in file names, e.g. "12okt".
func DatePart(year Year, month Month) string {
	return fmt.Sprintf("%02d%s", int(year)%100, month.SeasonWord())
}

// BuildFileNames returns the four document names of a session, ordered by
// Kind: info pdf, info source zip, solution pdf, solution source zip.
func BuildFileNames(year Year, month Month, level Level) [4]string {
	set := ResolveTemplates(year, month)
	date := DatePart(year, month)

	var names [4]string
	for i, pattern := range set.Patterns {
		name := strings.ReplaceAll(pattern, "{level}", string(level))
		name = strings.ReplaceAll(name, "{date}", date)
		names[i] = name
	}
	return names
}
