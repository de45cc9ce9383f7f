// Package markdown cleans up Markdown returned by a model.
package markdown

import "strings"

const (
	fence         = "```"
	bareFence     = "```\n"
	markdownFence = "```markdown\n"
)

// Clean removes one code fence wrapped around text: a leading "```markdown\n",
// "```\n" or bare "```", and a trailing "\n```" or bare "```". It strips at
// most one opener and one closer, so nested fences are only partially removed.
func Clean(text string) string {
	if strings.HasPrefix(text, markdownFence) {
		text = text[len(markdownFence):]
	} else if strings.HasPrefix(text, bareFence) {
		text = text[len(bareFence):]
	} else if strings.HasPrefix(text, fence) {
		text = text[len(fence):]
	}
	if strings.HasSuffix(text, "\n"+fence) {
		text = text[:len(text)-len(fence)-1]
	} else if strings.HasSuffix(text, fence) {
		text = text[:len(text)-len(fence)]
	}
	return text
}
