package rendering

import "strings"

// Inline converts the inline markers inside one line (or block-internal text) into
// nodes. Precedence at any position is bold, italic, code, image, link; bold is
// always tried before italic so "**" is never read as two italics. A run of three
// closing asterisks closes the inner italic first, which makes "***x***" bold
// around italic.
//
// Unmatched or malformed markers stay literal text. Text containing no markers
// comes back as a single NodeText holding the input unchanged.
func Inline(text string) []Node {
	if text == "" {
		return nil
	}
	return parseInline(text)
}

func parseInline(s string) []Node {
	var nodes []Node
	var plain strings.Builder

	emit := func() {
		if plain.Len() > 0 {
			nodes = append(nodes, Node{Kind: NodeText, Text: plain.String()})
			plain.Reset()
		}
	}

	for i := 0; i < len(s); {
		node, width, ok, skip := matchInline(s[i:])
		if ok {
			emit()
			nodes = append(nodes, node)
			i += width
			continue
		}
		// An unmatched opener is copied whole so "**" never degrades into "*" + italic.
		plain.WriteString(s[i : i+skip])
		i += skip
	}
	emit()

	return nodes
}

// matchInline tries every inline construct at the start of s. When nothing matches,
// skip is the number of bytes to copy literally.
func matchInline(s string) (node Node, width int, ok bool, skip int) {
	switch {
	case strings.HasPrefix(s, "**"):
		node, width, ok = matchBold(s)
		return node, width, ok, 2
	case s[0] == '*':
		node, width, ok = matchItalic(s)
	case s[0] == '`':
		node, width, ok = matchCode(s)
	case strings.HasPrefix(s, "!["):
		node, width, ok = matchImage(s)
		if !ok {
			return node, width, ok, 2
		}
	case s[0] == '[':
		node, width, ok = matchLink(s)
	}
	return node, width, ok, 1
}

func matchBold(s string) (Node, int, bool) {
	end := strings.Index(s[2:], "**")
	if end < 0 {
		return Node{}, 0, false
	}
	j := 2 + end
	for j+2 < len(s) && s[j+2] == '*' {
		j++
	}
	inner := s[2:j]
	if strings.TrimSpace(inner) == "" {
		return Node{}, 0, false
	}
	return Node{Kind: NodeBold, Children: parseInline(inner)}, j + 2, true
}

// matchItalic finds the closing "*" for an opener at s[0], stepping over nested
// "**" pairs. The content may not start or end with a space, so arithmetic such
// as "5 * 3 * 2" stays literal.
func matchItalic(s string) (Node, int, bool) {
	j := 1
	for j < len(s) {
		if s[j] != '*' {
			j++
			continue
		}
		if j+1 < len(s) && s[j+1] == '*' {
			j += 2
			continue
		}
		break
	}
	if j >= len(s) {
		return Node{}, 0, false
	}
	inner := s[1:j]
	if inner == "" || inner[0] == ' ' || inner[len(inner)-1] == ' ' {
		return Node{}, 0, false
	}
	return Node{Kind: NodeItalic, Children: parseInline(inner)}, j + 1, true
}

func matchCode(s string) (Node, int, bool) {
	end := strings.IndexByte(s[1:], '`')
	if end <= 0 {
		return Node{}, 0, false
	}
	return Node{Kind: NodeCode, Text: s[1 : 1+end]}, end + 2, true
}

func matchImage(s string) (Node, int, bool) {
	alt, url, width, ok := matchBracketTarget(s[1:], true)
	if !ok {
		return Node{}, 0, false
	}
	return Node{Kind: NodeImage, Alt: alt, URL: url}, width + 1, true
}

func matchLink(s string) (Node, int, bool) {
	text, url, width, ok := matchBracketTarget(s, false)
	if !ok {
		return Node{}, 0, false
	}
	return Node{Kind: NodeLink, URL: url, Children: parseInline(text)}, width, true
}

// matchBracketTarget matches "[label](target)" at the start of s
func matchBracketTarget(s string, allowEmptyLabel bool) (label, target string, width int, ok bool) {
	closeLabel := strings.IndexByte(s, ']')
	if closeLabel < 0 || closeLabel+1 >= len(s) || s[closeLabel+1] != '(' {
		return "", "", 0, false
	}
	label = s[1:closeLabel]
	if label == "" && !allowEmptyLabel {
		return "", "", 0, false
	}
	rest := s[closeLabel+2:]
	closeTarget := strings.IndexByte(rest, ')')
	if closeTarget < 0 {
		return "", "", 0, false
	}
	target = strings.TrimSpace(rest[:closeTarget])
	if target == "" {
		return "", "", 0, false
	}
	return label, target, closeLabel + 2 + closeTarget + 1, true
}
