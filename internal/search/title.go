package search

import (
	"regexp"
	"strings"
)

var reTitleJunk = regexp.MustCompile(`[^\p{L}\p{N}_\s/-]`)

// synonymSeq is a synonym entry pre-split into tokens.
type synonymSeq struct {
	from []string
	to   []string
}

var synonymSeqs = func() []synonymSeq {
	out := make([]synonymSeq, len(titleSynonyms))
	for i, syn := range titleSynonyms {
		out[i] = synonymSeq{from: strings.Fields(syn.From), to: strings.Fields(syn.To)}
	}
	return out
}()

// NormalizeTitle canonicalizes a title query: lowercase, punctuation
// collapsed to single spaces, then one left-to-right pass of token-wise
// synonym substitution. Matching whole tokens keeps "pm" from firing
// inside "rpm" and keeps replacement text from being rewritten again.
// Best-effort on exotic input; never fails.
func NormalizeTitle(q string) string {
	if q == "" {
		return ""
	}
	s := strings.ToLower(q)
	s = reTitleJunk.ReplaceAllString(s, " ")
	tokens := strings.Fields(s)

	var out []string
	for i := 0; i < len(tokens); {
		seq, ok := matchSynonym(tokens[i:])
		if !ok {
			out = append(out, tokens[i])
			i++
			continue
		}
		out = append(out, seq.to...)
		i += len(seq.from)
	}
	return strings.Join(out, " ")
}

// matchSynonym tries the table entries in declaration order against the
// leading tokens.
func matchSynonym(tokens []string) (synonymSeq, bool) {
	for _, seq := range synonymSeqs {
		if len(seq.from) > len(tokens) {
			continue
		}
		hit := true
		for j, tok := range seq.from {
			if tokens[j] != tok {
				hit = false
				break
			}
		}
		if hit {
			return seq, true
		}
	}
	return synonymSeq{}, false
}

// TitleFlags are the special tokens that widen matching downstream.
type TitleFlags struct {
	Remote    bool
	Developer bool
}

// Flags inspects the tokens of a normalized title.
func Flags(norm string) TitleFlags {
	var f TitleFlags
	for _, tok := range strings.Fields(norm) {
		if tok == "remote" {
			f.Remote = true
		}
		if developerTokens[tok] {
			f.Developer = true
		}
	}
	return f
}

// CoreTitle returns the normalized title with the remote/developer-family
// tokens removed. An empty result means the title side contributes only
// its widening clauses.
func CoreTitle(norm string) string {
	var kept []string
	for _, tok := range strings.Fields(norm) {
		if tok == "remote" || developerTokens[tok] {
			continue
		}
		kept = append(kept, tok)
	}
	return strings.Join(kept, " ")
}
