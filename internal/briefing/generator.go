package briefing

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/newecon/cleanbrief/internal/store"
)

const persona = `You are a senior political analyst for 'New Economy Canada'. ` +
	`Your raison d'etre is to ramp up awareness of and support for solutions ` +
	`and good things happening in the clean economy. ` +
	`You communicate the urgency for Canada to act now to remain relevant in the global economy. ` +
	`You are trying to accelerate the clean energy transition and make Canada a leader in this transition. ` +
	`You always look for concrete policy actions, investment trends, and potential challenges or 'greenwashing'.`

const taskInstruction = `Based on the following news articles, generate a 'Morning Briefing' for today. ` +
	`Your output should be structured to help 'New Economy Canada' monitor, observe, and react to news, ` +
	`and understand the narrative being shaped. ` +
	"Prioritize quality and focus. Here's the structure I need:\n\n" +
	"**Briefing Title:** AI Morning Briefing - [Today's Date]\n\n" +
	"**Executive Summary:** A concise overview of the most critical developments (2-3 sentences).\n\n" +
	"**Key Developments:**\n" +
	"- [Bullet point 1: Major news item]\n" +
	"- [Bullet point 2: Key policy shift]\n" +
	"- [Bullet point 3: Industry trends or notable investments]\n" +
	"- ... (up to 5 bullet points)\n\n" +
	"**Strategic Implications for New Economy Canada:** (Analyze potential impacts, what to watch for, narrative shaping elements)\n" +
	"- [Implication 1]\n" +
	"- [Implication 2]\n\n" +
	"**Suggested Reactions:** (Based on the news, recommend positive or concerned tones)\n" +
	"- **Positive:** [If supportive public policy, funding, etc., suggest an action/stance]\n" +
	"- **Concerned:** [If harmful public policy, 'greenwashing', etc., suggest an action/stance]\n\n" +
	"**Relevant Article URLs:**\n" +
	"- [Link 1: Brief description]\n" +
	"- [Link 2: Brief description]\n" +
	"- ...\n\n" +
	"Here are the articles for your analysis (focus on titles and descriptions):\n\n"

// Generator produces one daily briefing from a set of articles via Gemini.
type Generator struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGenerator(ctx context.Context, apiKey, model string) (*Generator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key not set")
	}
	if model == "" {
		model = "gemini-1.5-pro"
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	return &Generator{client: client, model: client.GenerativeModel(model)}, nil
}

func (g *Generator) Close() error {
	return g.client.Close()
}

// Generate analyzes the articles and returns the parsed briefing for the
// given ISO date. The raw model reply is kept alongside the parsed fields.
func (g *Generator) Generate(ctx context.Context, date string, articles []store.Article) (*store.Briefing, error) {
	if len(articles) == 0 {
		return nil, fmt.Errorf("no articles to analyze")
	}

	var digest strings.Builder
	var relatedURLs []string
	for i, a := range articles {
		fmt.Fprintf(&digest, "--- Article %d ---\n", i+1)
		fmt.Fprintf(&digest, "Title: %s\nDescription: %s\nURL: %s\n\n", a.Title, a.Description, a.URL)
		relatedURLs = append(relatedURLs, a.URL)
	}

	prompt := persona + "\n\n" + taskInstruction + digest.String()

	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("generating briefing: %w", err)
	}

	text := responseText(resp)
	if text == "" {
		return nil, fmt.Errorf("empty briefing response")
	}

	b := Parse(text, date, relatedURLs)
	b.RawAIResponse = text
	return &b, nil
}

func responseText(resp *genai.GenerateContentResponse) string {
	var b strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if t, ok := part.(genai.Text); ok {
				b.WriteString(string(t))
			}
		}
	}
	return b.String()
}
