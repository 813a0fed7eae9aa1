package search

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

type KeywordKind int

const (
	KindLiteral KeywordKind = iota
	KindAnyOf
)

// Keyword is either a single literal term or an alternation of terms. The textual
// "(a,b)" form only exists at the edges (admin input, storage, search urls).
type Keyword struct {
	kind  KeywordKind
	terms []string
}

func Literal(term string) Keyword {
	return Keyword{kind: KindLiteral, terms: []string{cleanTerm(term)}}
}

// AnyOf builds an alternation. A single term collapses to a literal.
func AnyOf(terms ...string) Keyword {
	cleaned := make([]string, 0, len(terms))
	for _, t := range terms {
		cleaned = append(cleaned, cleanTerm(t))
	}
	if len(cleaned) == 1 {
		return Keyword{kind: KindLiteral, terms: cleaned}
	}
	return Keyword{kind: KindAnyOf, terms: cleaned}
}

// ParseKeyword reads the textual form: "charizard" or "(1st edition,shadowless)".
func ParseKeyword(raw string) (Keyword, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Keyword{}, fmt.Errorf("empty keyword")
	}

	if !strings.HasPrefix(s, "(") {
		if strings.ContainsAny(s, "()") {
			return Keyword{}, fmt.Errorf("keyword %q has unbalanced parentheses", raw)
		}
		if len(tokenize(s)) == 0 {
			return Keyword{}, fmt.Errorf("keyword %q has no searchable characters", raw)
		}
		return Literal(s), nil
	}

	if !strings.HasSuffix(s, ")") || strings.Count(s, "(") != 1 || strings.Count(s, ")") != 1 {
		return Keyword{}, fmt.Errorf("keyword group %q is malformed", raw)
	}

	members := strings.Split(s[1:len(s)-1], ",")
	terms := make([]string, 0, len(members))
	for _, m := range members {
		m = strings.TrimSpace(m)
		if m == "" || len(tokenize(m)) == 0 {
			return Keyword{}, fmt.Errorf("keyword group %q has an empty member", raw)
		}
		terms = append(terms, m)
	}
	return AnyOf(terms...), nil
}

func ParseKeywords(raw []string) ([]Keyword, error) {
	keywords := make([]Keyword, 0, len(raw))
	for _, r := range raw {
		k, err := ParseKeyword(r)
		if err != nil {
			return nil, err
		}
		keywords = append(keywords, k)
	}
	return keywords, nil
}

func (k Keyword) Kind() KeywordKind {
	return k.kind
}

func (k Keyword) Terms() []string {
	out := make([]string, len(k.terms))
	copy(out, k.terms)
	return out
}

func (k Keyword) IsZero() bool {
	return len(k.terms) == 0
}

// String returns the storable textual form.
func (k Keyword) String() string {
	if k.kind == KindAnyOf {
		return "(" + strings.Join(k.terms, ",") + ")"
	}
	if len(k.terms) == 0 {
		return ""
	}
	return k.terms[0]
}

// Key is the comparison identity: accent and case folded, punctuation insensitive, and
// order-insensitive inside a group.
func (k Keyword) Key() string {
	keys := make([]string, 0, len(k.terms))
	for _, t := range k.terms {
		keys = append(keys, strings.Join(tokenize(t), " "))
	}
	if k.kind != KindAnyOf {
		return strings.Join(keys, "")
	}
	sort.Strings(keys)
	return "(" + strings.Join(keys, ",") + ")"
}

func KeywordStrings(keywords []Keyword) []string {
	out := make([]string, 0, len(keywords))
	for _, k := range keywords {
		out = append(out, k.String())
	}
	return out
}

// SameKeywordSet reports order-independent equality by Key.
func SameKeywordSet(a, b []Keyword) bool {
	ka, kb := keySet(a), keySet(b)
	if len(ka) != len(kb) {
		return false
	}
	for k := range ka {
		if _, ok := kb[k]; !ok {
			return false
		}
	}
	return true
}

func keySet(keywords []Keyword) map[string]struct{} {
	set := make(map[string]struct{}, len(keywords))
	for _, k := range keywords {
		set[k.Key()] = struct{}{}
	}
	return set
}

// NormalizeKeywords dedupes both lists by Key and drops excludes that are also includes.
func NormalizeKeywords(include, exclude []Keyword) ([]Keyword, []Keyword) {
	seen := make(map[string]struct{}, len(include))
	inc := make([]Keyword, 0, len(include))
	for _, k := range include {
		key := k.Key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		inc = append(inc, k)
	}

	exc := make([]Keyword, 0, len(exclude))
	for _, k := range exclude {
		key := k.Key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		exc = append(exc, k)
	}
	return inc, exc
}

func cleanTerm(term string) string {
	return strings.Join(strings.Fields(strings.ToLower(term)), " ")
}

// fold lower-cases with Unicode case folding and strips combining marks, so that
// "Pokémon" and "POKEMON" compare equal.
func fold(s string) string {
	stripped, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), s)
	if err != nil {
		stripped = s
	}
	return cases.Fold().String(stripped)
}

// tokenize splits folded text on every rune that is not a letter or a digit.
func tokenize(s string) []string {
	return strings.FieldsFunc(fold(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
