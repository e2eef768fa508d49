package markdown

import (
	"sort"
	"strings"
	"unicode"

	"mdrun/internal/document"
)

// Pandoc-style attribute syntax: {.class #id key=val key="quoted val"}.
// Used both in fence info strings and as a suffix after inline code spans.

// parseInfo interprets a fenced code block info string. Plain words are
// classes (the common case being a single language name); a brace group adds
// classes and attributes. A malformed brace group is ignored.
func parseInfo(info string) ([]string, document.Attributes) {
	info = strings.TrimSpace(info)
	if info == "" {
		return nil, nil
	}
	i := strings.IndexByte(info, '{')
	if i < 0 {
		return strings.Fields(info), nil
	}
	classes := strings.Fields(info[:i])
	end := strings.IndexByte(info[i:], '}')
	if end < 0 {
		return classes, nil
	}
	more, attrs, ok := parseAttrList(info[i+1 : i+end])
	if !ok {
		return classes, nil
	}
	return append(classes, more...), attrs
}

// parseAttrSuffix interprets a brace group at the start of s, as written
// immediately after an inline code span. rest is whatever follows the closing
// brace.
func parseAttrSuffix(s string) (classes []string, attrs document.Attributes, rest string, ok bool) {
	if !strings.HasPrefix(s, "{") {
		return nil, nil, "", false
	}
	end := strings.IndexByte(s, '}')
	if end < 0 {
		return nil, nil, "", false
	}
	classes, attrs, ok = parseAttrList(s[1:end])
	if !ok {
		return nil, nil, "", false
	}
	return classes, attrs, s[end+1:], true
}

func parseAttrList(inner string) ([]string, document.Attributes, bool) {
	var classes []string
	var attrs document.Attributes
	for _, tok := range splitTokens(inner) {
		switch {
		case strings.HasPrefix(tok, "."):
			if len(tok) == 1 {
				return nil, nil, false
			}
			classes = append(classes, tok[1:])
		case strings.HasPrefix(tok, "#"):
			if len(tok) == 1 {
				return nil, nil, false
			}
			if attrs == nil {
				attrs = document.Attributes{}
			}
			attrs["id"] = tok[1:]
		case strings.Contains(tok, "="):
			k, v, _ := strings.Cut(tok, "=")
			if k == "" {
				return nil, nil, false
			}
			if attrs == nil {
				attrs = document.Attributes{}
			}
			attrs[k] = v
		default:
			classes = append(classes, tok)
		}
	}
	return classes, attrs, true
}

// splitTokens splits on whitespace outside double quotes; quotes themselves
// are dropped.
func splitTokens(s string) []string {
	var toks []string
	var cur strings.Builder
	inQuote := false
	flush := func() {
		if cur.Len() > 0 {
			toks = append(toks, cur.String())
			cur.Reset()
		}
	}
	for _, r := range s {
		switch {
		case r == '"':
			inQuote = !inQuote
		case !inQuote && unicode.IsSpace(r):
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return toks
}

// attrString renders classes and attributes back to the brace form, or to a
// bare language word when that loses nothing. Attribute keys are emitted in
// sorted order so output is stable.
func attrString(classes []string, attrs document.Attributes) string {
	if len(classes) == 0 && len(attrs) == 0 {
		return ""
	}
	if len(classes) == 1 && len(attrs) == 0 {
		return classes[0]
	}
	var parts []string
	if id, ok := attrs["id"]; ok {
		parts = append(parts, "#"+id)
	}
	for _, c := range classes {
		parts = append(parts, "."+c)
	}
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		if k != "id" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		v := attrs[k]
		if v == "" || strings.ContainsAny(v, " \t") {
			v = `"` + v + `"`
		}
		parts = append(parts, k+"="+v)
	}
	return "{" + strings.Join(parts, " ") + "}"
}
