package subtitle

import (
	"regexp"
	"strings"
)

var htmlTagRegex = regexp.MustCompile(`</?[a-zA-Z][^<>]*>|<\d[\d:.]*>`)

// stripOverrideTags drops every {...} group, tracking brace depth so that
// nested or empty groups disappear too. An unclosed brace hides the rest of
// the line.
func stripOverrideTags(text string) string {
	if !strings.ContainsRune(text, '{') {
		return text
	}

	var sb strings.Builder
	sb.Grow(len(text))
	depth := 0
	for _, r := range text {
		switch r {
		case '{':
			depth++
		case '}':
			if depth > 0 {
				depth--
			}
		default:
			if depth == 0 {
				sb.WriteRune(r)
			}
		}
	}
	return sb.String()
}

// stripHTMLTags removes <i>, <font ...>, <v Speaker> and inline timestamp
// tags as used by SRT and VTT.
func stripHTMLTags(text string) string {
	if !strings.ContainsRune(text, '<') {
		return text
	}
	return htmlTagRegex.ReplaceAllString(text, "")
}

// joinLines trims each line and drops the ones left empty.
func joinLines(lines []string) string {
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}
