// Package report turns the classification into the HTML summary email body:
// it assembles the statistics payload, prompts the insight generator and
// appends the link to the detailed sheet.
package report

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/E-FEDOTOVA/callsync/internal/aggregate"
	"github.com/E-FEDOTOVA/callsync/internal/openai"
)

const systemPrompt = "Generate a visually appealing and well-structured HTML daily summary email for team leaders based on the provided SDR performance statistics."

const userPrompt = `
Please generate a **professionally formatted** SDR performance summary that is **ready to be copied and pasted into an email**. Ensure the following:

- Use **HTML formatting and styles** to improve readability.
- Add a 2 rem gutter to the sides of the content.
- Capitalize section titles and separate them with **line breaks**.
- **Icons (🔥, ⚠, ⏳) to highlight key points**.
- Format performance numbers in a **clean and readable manner**.
- Maintain a **structured, left-aligned, styled tables** for clarity.
- Include **key action items for team leaders** at the end.
- Do NOT use the word "Team," this is a company-wide report.
- Keep the content under 3000 words.

Here is the SDR performance data:
`

// Generator narrates classification statistics through the chat API.
type Generator struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float64
	logger      zerolog.Logger
}

func NewGenerator(client *openai.Client, model string, maxTokens int, temperature float64, logger zerolog.Logger) *Generator {
	return &Generator{
		client:      client,
		model:       model,
		maxTokens:   maxTokens,
		temperature: temperature,
		logger:      logger.With().Str("component", "report").Logger(),
	}
}

// Narrate produces the HTML summary for one day's classification. Failure
// propagates; there is no retry.
func (g *Generator) Narrate(ctx context.Context, c *aggregate.Classification) (string, error) {
	payload, err := json.MarshalIndent(BuildStats(c), "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize statistics: %w", err)
	}

	resp, err := g.client.CreateChatCompletion(ctx, &openai.ChatRequest{
		Model:       g.model,
		MaxTokens:   g.maxTokens,
		Temperature: &g.temperature,
		Messages: []openai.Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt + string(payload)},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate narrative: %w", err)
	}

	g.logger.Info().
		Int("prompt_tokens", resp.Usage.PromptTokens).
		Int("completion_tokens", resp.Usage.CompletionTokens).
		Msg("narrative generated")
	return resp.FirstContent(), nil
}

// AppendReportLink adds the detailed-report link unless the narrative
// already contains it.
func AppendReportLink(narrative, sheetURL string) string {
	link := fmt.Sprintf(`<p>Want to see more detail? <a href="%s" target="_blank">Go to the detailed report</a>.</p>`, sheetURL)
	if strings.Contains(narrative, link) {
		return narrative
	}
	return narrative + "<hr>" + link
}
