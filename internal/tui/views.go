package tui

import (
	"fmt"
	"strings"
)

func (a *App) View() string {
	width := a.width
	if width < 20 {
		width = 80
	}
	height := a.height - 3
	if height < 5 {
		height = 20
	}

	var body string
	switch a.mode {
	case modeBriefing:
		body = a.briefingView(width)
	default:
		body = a.listView(width, height)
	}

	return body + "\n" + a.statusBar(width)
}

func (a *App) listView(width, height int) string {
	switch {
	case a.loadingArticles:
		return messageStyle.Render(a.spinner.View() + " Loading articles...")
	case a.articlesErr != nil:
		return failureStyle.Render("Failed to load articles. Please try again later.")
	case len(a.cards) == 0:
		return messageStyle.Render("No articles available yet.")
	}

	// Each item renders as 3 lines plus a separator line
	itemHeight := 4
	visible := height / itemHeight
	if visible < 1 {
		visible = 1
	}

	start := 0
	if a.cursor >= visible {
		start = a.cursor - visible + 1
	}
	end := start + visible
	if end > len(a.cards) {
		end = len(a.cards)
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		b.WriteString(a.renderItem(i, width))
		if i < end-1 {
			b.WriteString("\n\n")
		}
	}
	return b.String()
}

func (a *App) renderItem(i, width int) string {
	card := a.cards[i]

	var title string
	if i == a.cursor {
		title = itemSelectedStyle.Render("> " + truncateStr(card.Title, width-4))
	} else {
		title = itemTitleStyle.Render("  " + truncateStr(card.Title, width-4))
	}

	meta := "  " + itemSourceStyle.Render(card.Source) + itemTimeStyle.Render(" · "+card.DateLabel)

	lines := []string{title, meta}
	if len(card.Keywords) > 0 {
		lines = append(lines, "  "+tagStyle.Render(strings.Join(card.Keywords, " · ")))
	}
	return strings.Join(lines, "\n")
}

func (a *App) briefingView(width int) string {
	switch {
	case a.loadingBriefing:
		return messageStyle.Render(a.spinner.View() + " Loading briefing...")
	case a.briefingErr != nil:
		return failureStyle.Render("Failed to load the daily briefing. Please try again later.")
	case !a.briefingFound:
		return messageStyle.Render(fmt.Sprintf("No briefing available for %s yet.", a.date))
	}

	v := a.briefing
	var lines []string
	lines = append(lines, briefingTitleStyle.Render(v.Title), "")

	if v.Summary != "" {
		lines = append(lines, wrap(v.Summary, width-4), "")
	}
	if len(v.KeyDevelopments) > 0 {
		lines = append(lines, sectionStyle.Render("Key Developments"))
		for _, d := range v.KeyDevelopments {
			lines = append(lines, wrap("  • "+d, width-4))
		}
		lines = append(lines, "")
	}
	if v.StrategicImplications != "" {
		lines = append(lines, sectionStyle.Render("Strategic Implications"))
		lines = append(lines, wrap(v.StrategicImplications, width-4), "")
	}
	if v.SuggestedReactions != "" {
		lines = append(lines, sectionStyle.Render("Suggested Reactions"))
		lines = append(lines, wrap(v.SuggestedReactions, width-4), "")
	}
	if len(v.RelatedURLs) > 0 {
		lines = append(lines, sectionStyle.Render("Related Articles"))
		for _, u := range v.RelatedURLs {
			lines = append(lines, itemTimeStyle.Render("  "+truncateStr(u, width-4)))
		}
	}

	return strings.Join(lines, "\n")
}

func (a *App) statusBar(width int) string {
	left := fmt.Sprintf(" %d articles · %s ", len(a.cards), a.order.Label())
	hints := "s sort · b briefing · r reload · enter open · q quit "

	pad := width - len(left) - len(hints)
	if pad < 1 {
		pad = 1
	}
	return statusBarStyle.Width(width).Render(left + strings.Repeat(" ", pad) + hints)
}

func truncateStr(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}

// wrap breaks s into lines no longer than width, preserving words.
func wrap(s string, width int) string {
	if width < 10 {
		width = 10
	}
	words := strings.Fields(s)
	if len(words) == 0 {
		return s
	}

	var b strings.Builder
	lineLen := 0
	for i, w := range words {
		runes := len([]rune(w))
		if i > 0 {
			if lineLen+1+runes > width {
				b.WriteString("\n")
				lineLen = 0
			} else {
				b.WriteString(" ")
				lineLen++
			}
		}
		b.WriteString(w)
		lineLen += runes
	}
	return b.String()
}
