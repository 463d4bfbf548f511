// Package aspect assigns topical categories to text records by matching a
// user-configured keyword vocabulary against the record text.
package aspect

import "strings"

// CatchAll is assigned when no configured keyword matches a record.
const CatchAll = "general"

// NormalizeVocabulary parses a comma-separated keyword list into a clean
// vocabulary: entries are trimmed, empties dropped, and duplicates removed
// case-insensitively while preserving first-seen order.
func NormalizeVocabulary(input string) []string {
	var vocab []string
	seen := make(map[string]struct{})

	for _, raw := range strings.Split(input, ",") {
		keyword := strings.TrimSpace(raw)
		if keyword == "" {
			continue
		}
		folded := strings.ToLower(keyword)
		if _, ok := seen[folded]; ok {
			continue
		}
		seen[folded] = struct{}{}
		vocab = append(vocab, keyword)
	}

	return vocab
}

// Tag returns the aspects whose keyword occurs in text, matched as a
// case-insensitive substring. Matching is deliberately substring-based, not
// word-boundary-based: "pay" matches "payment". When nothing matches, or the
// vocabulary is empty, the result is the catch-all aspect. The result is
// never empty and follows vocabulary order.
func Tag(text string, vocabulary []string) []string {
	var found []string
	folded := strings.ToLower(text)

	for _, keyword := range vocabulary {
		if keyword == "" {
			continue
		}
		if strings.Contains(folded, strings.ToLower(keyword)) {
			found = append(found, keyword)
		}
	}

	if len(found) == 0 {
		return []string{CatchAll}
	}
	return found
}
