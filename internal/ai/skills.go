package ai

import (
	"fmt"
	"strings"
)

const summarizeSystemPromptTmpl = `You are an encyclopedia editor. Summarize the following Wikipedia article text in plain English prose of roughly %d to %d words. Keep names, dates, and numbers exactly as written. Do not add facts that are not in the text. Do NOT include any prefix like "Summary:"; start directly with the first sentence.`

// SummarizePrompt builds the system and user prompts for summarizing
// article text within the given budget.
func SummarizePrompt(text string, budget Budget) (systemPrompt string, userPrompt string) {
	systemPrompt = fmt.Sprintf(summarizeSystemPromptTmpl, budget.Min, budget.Max)

	var b strings.Builder
	b.WriteString("Article Text:\n")
	b.WriteString(text)

	userPrompt = b.String()
	return systemPrompt, userPrompt
}

// maxOutputTokens converts a word budget into a completion token limit with
// headroom for multi-token words.
func maxOutputTokens(budget Budget) int {
	return max(budget.Max*2, 256)
}

// cleanSummary trims whitespace and a leading "Summary:" label that chat
// models sometimes emit despite the instructions.
func cleanSummary(s string) string {
	s = strings.TrimSpace(s)
	for _, prefix := range []string{"Summary:", "**Summary:**", "# Summary"} {
		if after, found := strings.CutPrefix(s, prefix); found {
			s = strings.TrimSpace(after)
		}
	}
	return s
}
