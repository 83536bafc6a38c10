// Package textkit provides the deterministic text normalization and keyword
// extraction rule shared by every analytics routine.
// Pipeline order
// 1 UTF-8 repair drop invalid bytes
// 2 Unicode NFKD decomposition (so combining marks become strippable)
// 3 Case folding
// 4 Remove zero-width and combining marks
// 5 Width fold fullwidth to ASCII
// 6 Collapse whitespace to single spaces and trim
package textkit

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// pool of fresh transformer chains
var chainPool = sync.Pool{
	New: func() any {
		// order matters and mirrors the documented pipeline
		return transform.Chain(
			norm.NFKD,
			cases.Fold(),                       // unicode case folding
			runes.Remove(runes.In(unicode.Mn)), // strip combining marks
			runes.Remove(runes.In(unicode.Cf)), // strip format chars ZWJ ZWNJ FEFF etc
			width.Fold,                         // map fullwidth forms to ASCII
		)
	},
}

// Normalize returns the normalized form of s following the pipeline above
func Normalize(s string) string {
	if s == "" {
		return ""
	}

	s = strings.ToValidUTF8(s, "")

	tr := chainPool.Get().(transform.Transformer)
	ns, _, _ := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)

	return collapseSpaces(ns)
}

// collapseSpaces converts whitespace runs to a single ASCII space and trims
func collapseSpaces(s string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	inWS := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			inWS = true
			continue
		}
		if inWS && b.Len() > 0 {
			b.WriteByte(' ')
		}
		inWS = false
		b.WriteRune(r)
	}
	return b.String()
}

// stopWords covers english plus the spanish the shop's tickets mix in.
// Short function words only; domain terms always survive
var stopWords = map[string]struct{}{
	// english
	"the": {}, "and": {}, "for": {}, "with": {}, "not": {}, "but": {},
	"has": {}, "have": {}, "does": {}, "doesnt": {}, "dont": {}, "wont": {},
	"when": {}, "after": {}, "very": {}, "this": {}, "that": {}, "its": {},
	"was": {}, "will": {}, "can": {}, "cant": {}, "all": {}, "any": {},
	// spanish
	"los": {}, "las": {}, "del": {}, "por": {}, "para": {}, "con": {},
	"una": {}, "uno": {}, "que": {}, "esta": {}, "este": {}, "muy": {},
	"pero": {}, "tiene": {}, "hace": {}, "desde": {}, "cuando": {},
}

// isWord reports whether r is a word character for token boundaries.
// Letters and numbers only; hyphen and punctuation split tokens
func isWord(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r)
}

// Keywords normalizes s and returns its distinct keywords in first-seen
// order. Tokens shorter than three runes and stop words are dropped.
// Deterministic: equal inputs always yield equal output
func Keywords(s string) []string {
	ns := Normalize(s)
	if ns == "" {
		return nil
	}

	var out []string
	seen := map[string]struct{}{}
	var tok strings.Builder

	flush := func() {
		if tok.Len() == 0 {
			return
		}
		w := tok.String()
		tok.Reset()
		if len([]rune(w)) < 3 {
			return
		}
		if _, stop := stopWords[w]; stop {
			return
		}
		if _, dup := seen[w]; dup {
			return
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}

	for _, r := range ns {
		if isWord(r) {
			tok.WriteRune(r)
			continue
		}
		flush()
	}
	flush()
	return out
}
