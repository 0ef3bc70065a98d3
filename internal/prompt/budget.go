package prompt

import "strings"

// Trim enforces maxChars on formatted text, counted in runes. Within
// budget the text passes through unchanged. Over budget, trailing
// sections (blank-line separated) are dropped first, keeping the leading
// section; if that section alone still exceeds the budget it is
// hard-truncated to maxChars. The selector already limits entry counts,
// so this is a backstop rather than the normal path.
func Trim(text string, maxChars int) string {
	if maxChars <= 0 {
		return ""
	}
	if len([]rune(text)) <= maxChars {
		return text
	}

	sections := strings.Split(text, "\n\n")
	for len(sections) > 1 {
		sections = sections[:len(sections)-1]
		candidate := strings.Join(sections, "\n\n")
		if len([]rune(candidate)) <= maxChars {
			return candidate
		}
	}

	runes := []rune(sections[0])
	if len(runes) <= maxChars {
		return sections[0]
	}
	return string(runes[:maxChars])
}
