package javasrc

import (
	"strings"
	"unicode"
)

var declarationModifiers = map[string]bool{
	"public":     true,
	"protected":  true,
	"private":    true,
	"abstract":   true,
	"static":     true,
	"strictfp":   true,
	"sealed":     true,
	"non-sealed": true,
}

// ExtractInterfaceAnnotations returns the annotations written directly above the
// first `interface <name>` declaration, in source order. Modifiers between the
// annotations and the keyword are skipped; anything else ends the scan.
func ExtractInterfaceAnnotations(content, name string) []string {
	loc := interfaceDeclPattern(name).FindStringIndex(content)
	if loc == nil {
		return []string{}
	}

	var reversed []string
	pos := loc[0]
	for {
		pos = skipSpaceBackward(content, pos)
		if pos == 0 {
			break
		}

		end := pos
		if content[pos-1] == ')' {
			open := matchingParen(content, pos-1)
			if open < 0 {
				break
			}
			pos = skipSpaceBackward(content, open)
		}

		start := identifierStart(content, pos)
		if start == pos {
			break
		}
		word := content[start:pos]

		if start > 0 && content[start-1] == '@' {
			reversed = append(reversed, strings.TrimSpace(content[start-1:end]))
			pos = start - 1
			continue
		}
		if end != pos {
			// parenthesised group not owned by an annotation
			break
		}
		if word == "sealed" && start >= 4 && content[start-4:start] == "non-" {
			start -= 4
			word = "non-sealed"
		}
		if !declarationModifiers[word] {
			break
		}
		pos = start
	}

	annotations := make([]string, 0, len(reversed))
	for i := len(reversed) - 1; i >= 0; i-- {
		annotations = append(annotations, reversed[i])
	}
	return annotations
}

func skipSpaceBackward(s string, pos int) int {
	for pos > 0 && unicode.IsSpace(rune(s[pos-1])) {
		pos--
	}
	return pos
}

// identifierStart walks back over a possibly dotted identifier ending at pos.
func identifierStart(s string, pos int) int {
	start := pos
	for start > 0 {
		c := s[start-1]
		if c == '_' || c == '$' || c == '.' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' {
			start--
			continue
		}
		break
	}
	return start
}

// matchingParen returns the index of the '(' matching the ')' at close, or -1.
// Parentheses inside string literals are not special-cased.
func matchingParen(s string, close int) int {
	depth := 0
	for i := close; i >= 0; i-- {
		switch s[i] {
		case ')':
			depth++
		case '(':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
