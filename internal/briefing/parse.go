package briefing

import (
	"regexp"
	"strings"

	"github.com/newecon/cleanbrief/internal/store"
)

var (
	titleRe   = regexp.MustCompile(`(?m)^\*\*Briefing Title:\*\*\s*(.+)$`)
	summaryRe = sectionRe("Executive Summary")
	keyDevRe  = sectionRe("Key Developments")
	implRe    = sectionRe("Strategic Implications for New Economy Canada")
	reactRe   = sectionRe("Suggested Reactions")
	bulletRe  = regexp.MustCompile(`(?m)^-\s+(.+)$`)
)

// sectionRe captures everything between a bold section header and the next
// line opening with a bold header (or end of text). Bold text inside bullet
// lines does not terminate a section.
func sectionRe(header string) *regexp.Regexp {
	return regexp.MustCompile(`(?s)\*\*` + regexp.QuoteMeta(header) + `:\*\*\s*(.*?)(?:\n\*\*|\z)`)
}

// Parse extracts the structured briefing sections from a model reply.
// Sections the model omitted stay empty; the title falls back to a dated
// default.
func Parse(text, date string, relatedURLs []string) store.Briefing {
	b := store.Briefing{
		BriefingDate:       date,
		Title:              "AI Morning Briefing - " + date,
		RelatedArticleURLs: relatedURLs,
	}

	if m := titleRe.FindStringSubmatch(text); m != nil {
		b.Title = strings.TrimSpace(m[1])
	}
	if m := summaryRe.FindStringSubmatch(text); m != nil {
		b.SummaryText = strings.TrimSpace(m[1])
	}
	if m := keyDevRe.FindStringSubmatch(text); m != nil {
		for _, bullet := range bulletRe.FindAllStringSubmatch(m[1], -1) {
			b.KeyDevelopments = append(b.KeyDevelopments, strings.TrimSpace(bullet[1]))
		}
	}
	if m := implRe.FindStringSubmatch(text); m != nil {
		b.StrategicImplications = strings.TrimSpace(m[1])
	}
	if m := reactRe.FindStringSubmatch(text); m != nil {
		b.SuggestedReactions = strings.TrimSpace(m[1])
	}
	return b
}
