package sqlconsole

import (
	"fmt"
	"strings"
)

// readKeywords son las sentencias que la consola acepta como primera palabra.
var readKeywords = map[string]struct{}{
	"SELECT":  {},
	"WITH":    {},
	"EXPLAIN": {},
	"VALUES":  {},
}

// statementVerbs: palabras que pueden ser el verbo principal detrás de WITH o EXPLAIN.
var statementVerbs = map[string]bool{
	"SELECT":  false,
	"VALUES":  false,
	"TABLE":   false,
	"INSERT":  true,
	"UPDATE":  true,
	"DELETE":  true,
	"REPLACE": true,
	"MERGE":   true,
}

// Normalize quita comentarios y el ; final, y valida que sea una única
// sentencia de lectura. Devuelve la query lista para ejecutar.
func Normalize(query string) (string, error) {
	stripped, semicolons := stripComments(query)
	stripped = strings.TrimSpace(stripped)

	// Un único ; al final se tolera.
	if semicolons > 0 {
		if semicolons > 1 || !strings.HasSuffix(stripped, ";") {
			return "", ErrMultipleStatements
		}
		stripped = strings.TrimSpace(strings.TrimSuffix(stripped, ";"))
	}

	if stripped == "" {
		return "", ErrEmptyQuery
	}

	kw := firstKeyword(stripped)
	if _, ok := readKeywords[kw]; !ok {
		return "", fmt.Errorf("%w: %s statements are not allowed", ErrReadOnly, kw)
	}

	// WITH ... DELETE, EXPLAIN ANALYZE UPDATE ...
	if verb := mainVerb(stripped); statementVerbs[verb] {
		return "", fmt.Errorf("%w: %s statements are not allowed", ErrReadOnly, verb)
	}

	return stripped, nil
}

// stripComments elimina comentarios -- y /* */ fuera de literales y cuenta
// los ; que quedan fuera de literales.
func stripComments(q string) (string, int) {
	var sb strings.Builder
	sb.Grow(len(q))

	semicolons := 0
	for i := 0; i < len(q); i++ {
		if end := quotedEnd(q, i); end >= 0 {
			sb.WriteString(q[i : end+1])
			i = end
			continue
		}

		c := q[i]
		switch {
		case c == '-' && i+1 < len(q) && q[i+1] == '-':
			for i < len(q) && q[i] != '\n' {
				i++
			}
			sb.WriteByte(' ')

		case c == '/' && i+1 < len(q) && q[i+1] == '*':
			end := strings.Index(q[i+2:], "*/")
			if end < 0 {
				i = len(q)
			} else {
				i = i + 2 + end + 1
			}
			sb.WriteByte(' ')

		case c == ';':
			semicolons++
			sb.WriteByte(c)

		default:
			sb.WriteByte(c)
		}
	}
	return sb.String(), semicolons
}

// quotedEnd devuelve el índice donde cierra el literal que abre en q[i]
// ('...', "...", `...`, $$...$$ o $tag$...$tag$), o -1 si q[i] no abre uno.
// Un literal sin cerrar se extiende hasta el final.
func quotedEnd(q string, i int) int {
	switch c := q[i]; c {
	case '\'', '"', '`':
		for j := i + 1; j < len(q); j++ {
			if q[j] != c {
				continue
			}
			// '' escapa la comilla.
			if j+1 < len(q) && q[j+1] == c {
				j++
				continue
			}
			return j
		}
		return len(q) - 1

	case '$':
		tag, ok := dollarTag(q[i:])
		if !ok {
			return -1
		}
		end := strings.Index(q[i+len(tag):], tag)
		if end < 0 {
			return len(q) - 1
		}
		return i + len(tag) + end + len(tag) - 1
	}
	return -1
}

// dollarTag reconoce la apertura $$ o $tag$ de Postgres. $1 (placeholder) no es tag.
func dollarTag(s string) (string, bool) {
	for j := 1; j < len(s); j++ {
		c := s[j]
		if c == '$' {
			return s[:j+1], true
		}
		letter := c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
		if !letter && !(j > 1 && c >= '0' && c <= '9') {
			return "", false
		}
	}
	return "", false
}

func firstKeyword(q string) string {
	q = strings.TrimLeft(q, "( \t\r\n")
	end := strings.IndexFunc(q, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z')
	})
	if end < 0 {
		end = len(q)
	}
	return strings.ToUpper(q[:end])
}

// mainVerb devuelve la primera palabra de statementVerbs fuera de paréntesis y
// literales: el verbo que realmente ejecuta un WITH o un EXPLAIN.
func mainVerb(q string) string {
	depth := 0
	for i := 0; i < len(q); i++ {
		if end := quotedEnd(q, i); end >= 0 {
			i = end
			continue
		}

		c := q[i]
		switch {
		case c == '(':
			depth++
		case c == ')':
			if depth > 0 {
				depth--
			}
		case isWordByte(c):
			j := i
			for j < len(q) && isWordByte(q[j]) {
				j++
			}
			if depth == 0 {
				w := strings.ToUpper(q[i:j])
				if _, ok := statementVerbs[w]; ok {
					return w
				}
			}
			i = j - 1
		}
	}
	return ""
}

func isWordByte(c byte) bool {
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}
