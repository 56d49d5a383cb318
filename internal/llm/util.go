package llm

import "strings"

// CleanJSONBlock removes markdown code block wrappers and any conversational text
// around the first JSON object or array in a response.
func CleanJSONBlock(text string) string {
	text = stripFence(strings.TrimSpace(text))

	start := strings.IndexAny(text, "{[")
	if start < 0 {
		return text
	}
	closer := byte('}')
	if text[start] == '[' {
		closer = ']'
	}
	found := extractBalanced(text[start:], text[start], closer)
	if found == "" {
		return text
	}
	return found
}

// CleanCodeFence removes a markdown code block wrapper (```markdown ... ```) from a
// text response. Responses without a fence are only trimmed.
func CleanCodeFence(text string) string {
	return stripFence(strings.TrimSpace(text))
}

func stripFence(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	// Skip potential language identifier on first line
	if idx := strings.Index(text, "\n"); idx >= 0 {
		firstLine := text[:idx]
		if len(firstLine) < 20 && !strings.Contains(firstLine, " ") && !strings.ContainsAny(firstLine, "{[") {
			text = text[idx+1:]
		}
	}
	if idx := strings.LastIndex(text, "```"); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}

// extractBalanced returns the prefix of text from its opening delimiter to the
// matching close, ignoring delimiters inside JSON strings
func extractBalanced(text string, open, close byte) string {
	if text == "" || text[0] != open {
		return ""
	}
	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return text[:i+1]
			}
		}
	}
	return ""
}
