package categorize

import (
	"encoding/json"
	"fmt"
	"strings"

	"daylog/internal/apperr"
	"daylog/internal/journal"
)

// BuildPrompt asks the service to split noteText into the known categories
// and answer with a single JSON object.
func BuildPrompt(noteText string) string {
	codes := make([]string, 0, len(journal.Categories()))
	for _, c := range journal.Categories() {
		codes = append(codes, string(c))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Analyze the following daily note and classify its content into these categories: %s\n\n", strings.Join(codes, ", "))
	b.WriteString("Return only the categories that appear in the note. For each category, write a concise summary of the matching content.\n\n")
	b.WriteString("Respond with valid JSON only, with no additional text and no code fences, in this format:\n")
	b.WriteString(`{"categories":[{"category":"workout","content":"summary here"}]}`)
	b.WriteString("\n\nDaily Note:\n")
	b.WriteString(noteText)
	return b.String()
}

// ExtractJSON strips surrounding whitespace and a Markdown code fence,
// with or without a language tag, from a model reply.
func ExtractJSON(text string) string {
	cleaned := strings.TrimSpace(text)

	if rest, ok := strings.CutPrefix(cleaned, "```"); ok {
		cleaned = rest
		if tag, body, found := strings.Cut(rest, "\n"); found && isFenceTag(tag) {
			cleaned = body
		}
	}
	cleaned = strings.TrimSuffix(cleaned, "```")

	return strings.TrimSpace(cleaned)
}

// isFenceTag reports whether s is a bare info string such as "json" or
// "javascript" after an opening fence.
func isFenceTag(s string) bool {
	s = strings.TrimSpace(s)
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '_' || r == '+' || r == '-':
		default:
			return false
		}
	}
	return true
}

// Pair is one category/content pair as returned by the service. Category
// is unvalidated.
type Pair struct {
	Category string `json:"category"`
	Content  string `json:"content"`
}

type parseResult struct {
	Categories *[]Pair `json:"categories"`
}

// ParseResponse extracts and decodes the pairs from a raw reply. A reply
// without a "categories" array is invalid.
func ParseResponse(raw string) ([]Pair, error) {
	var result parseResult
	if err := json.Unmarshal([]byte(ExtractJSON(raw)), &result); err != nil {
		return nil, fmt.Errorf("%w: %w", apperr.ErrCategorizationResponseInvalid, err)
	}
	if result.Categories == nil {
		return nil, fmt.Errorf("%w: missing categories", apperr.ErrCategorizationResponseInvalid)
	}
	return *result.Categories, nil
}
