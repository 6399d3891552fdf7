package reference

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/itamarh/voicedca/internal/models"
)

// Resolver maps free-form recognized text to a trading symbol using the
// reference table. Matching is substring containment over normalized text,
// scanning entries in load order; the first entry whose name, display name
// or symbol appears in the text wins. Containment can false-positive on
// short reference names embedded in unrelated speech; table order is the
// only disambiguation.
type Resolver struct {
	entries []resolverEntry
}

type resolverEntry struct {
	models.SecurityEntry
	nameNorm    string
	displayNorm string
	symbolNorm  string
}

// NewResolver builds a resolver over the given entries, precomputing the
// normalized match keys once.
func NewResolver(entries []models.SecurityEntry) *Resolver {
	rs := make([]resolverEntry, 0, len(entries))
	for _, e := range entries {
		if e.Symbol == "" {
			continue
		}
		rs = append(rs, resolverEntry{
			SecurityEntry: e,
			nameNorm:      Normalize(e.Name),
			displayNorm:   Normalize(e.DisplayName),
			symbolNorm:    Normalize(e.Symbol),
		})
	}
	return &Resolver{entries: rs}
}

// Resolve returns the symbol and narration label for the first entry
// matching the recognized text, or ok=false when the text is empty or
// nothing matches.
func (r *Resolver) Resolve(recognizedText string) (symbol, displayName string, ok bool) {
	text := Normalize(recognizedText)
	if text == "" {
		return "", "", false
	}
	for _, e := range r.entries {
		if e.nameNorm != "" && strings.Contains(text, e.nameNorm) {
			return e.Symbol, e.Label(), true
		}
		if e.displayNorm != "" && strings.Contains(text, e.displayNorm) {
			return e.Symbol, e.Label(), true
		}
		if strings.Contains(text, e.symbolNorm) {
			return e.Symbol, e.Label(), true
		}
	}
	return "", "", false
}

// Normalize canonicalizes text for matching: Unicode NFC, trimmed and
// case-folded. Recognized speech arrives from the transcriber in whatever
// composition the vendor emits, so both sides normalize the same way.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(norm.NFC.String(s)))
}
