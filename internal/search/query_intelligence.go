package search

import (
	"strings"
	"unicode"
)

const maxVariants = 10

type QueryContext struct {
	Original   string
	Normalized string
	Variants   []string
}

// NormalizeQuery lower-cases the input, drops punctuation and collapses
// whitespace. '+', '#' and inner '.' survive so c++, c# and node.js stay intact.
func NormalizeQuery(input string) string {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return ""
	}

	b := strings.Builder{}
	b.Grow(len(input))
	for _, r := range input {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r) || r == '+' || r == '#' || r == '.':
			b.WriteRune(r)
		case unicode.IsSpace(r) || r == ',' || r == '/' || r == '|':
			b.WriteByte(' ')
		}
	}

	words := strings.Fields(b.String())
	out := words[:0]
	for _, w := range words {
		w = strings.Trim(w, ".")
		if w == "" {
			continue
		}
		out = append(out, w)
	}
	return strings.Join(out, " ")
}

// ExpandQuery returns the normalized query followed by synonym variants,
// capped at maxVariants.
func ExpandQuery(normalized string) []string {
	normalized = strings.TrimSpace(normalized)
	if normalized == "" {
		return []string{}
	}

	out := make([]string, 0, maxVariants)
	seen := make(map[string]struct{}, maxVariants)
	add := func(s string) {
		s = strings.TrimSpace(s)
		if s == "" {
			return
		}
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	withRest := func(head string, rest []string) string {
		if len(rest) == 0 {
			return head
		}
		return head + " " + strings.Join(rest, " ")
	}

	add(normalized)
	for _, syn := range GetSynonyms(normalized) {
		add(syn)
	}

	words := strings.Fields(normalized)

	// Leading one- or two-word phrase with synonyms, rest of the query kept.
	for n := 1; n <= 2 && n <= len(words); n++ {
		head := strings.Join(words[:n], " ")
		for _, syn := range GetSynonyms(head) {
			add(withRest(syn, words[n:]))
		}
	}

	// A compact leading token may be the spaced form of a key, e.g. fullstack.
	if key, ok := spacedKey(words[0]); ok {
		add(withRest(key, words[1:]))
		for _, syn := range GetSynonyms(key) {
			add(withRest(syn, words[1:]))
		}
	}

	if len(out) > maxVariants {
		out = out[:maxVariants]
	}
	return out
}

func spacedKey(token string) (string, bool) {
	for _, k := range synonymKeys() {
		if !strings.Contains(k, " ") {
			continue
		}
		if strings.ReplaceAll(k, " ", "") == token {
			return k, true
		}
	}
	return "", false
}

func ProcessQuery(input string) QueryContext {
	ctx := QueryContext{Original: input}
	ctx.Normalized = NormalizeQuery(input)
	if ctx.Normalized == "" {
		ctx.Variants = []string{}
		return ctx
	}
	ctx.Variants = ExpandQuery(ctx.Normalized)
	return ctx
}

// FallbackFirstWord returns the first word of a normalized query, used to
// widen a search that matched too little.
func FallbackFirstWord(normalized string) string {
	words := strings.Fields(normalized)
	if len(words) == 0 {
		return ""
	}
	return words[0]
}
