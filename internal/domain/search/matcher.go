package search

import (
	"fmt"
	"sort"
	"strings"

	lru "github.com/hashicorp/golang-lru"
	"github.com/sahilm/fuzzy"
)

const minHintLength = 3

type compiledKeyword struct {
	keyword      Keyword
	alternatives [][]string
}

// Matcher is a pre-tokenized keyword set. It is immutable and safe for concurrent use.
type Matcher struct {
	include []compiledKeyword
	exclude []compiledKeyword
}

func Compile(include, exclude []Keyword) *Matcher {
	return &Matcher{
		include: compileAll(include),
		exclude: compileAll(exclude),
	}
}

func compileAll(keywords []Keyword) []compiledKeyword {
	out := make([]compiledKeyword, 0, len(keywords))
	for _, k := range keywords {
		ck := compiledKeyword{keyword: k}
		for _, term := range k.terms {
			ck.alternatives = append(ck.alternatives, tokenize(term))
		}
		out = append(out, ck)
	}
	return out
}

// Match reports whether the listing title satisfies the criteria keywords. The reasons
// describe every failing keyword and are for diagnostics only.
func Match(c *Criteria, title string) (bool, []string) {
	return Compile(c.Include, c.Exclude).Match(title)
}

func (m *Matcher) Match(title string) (bool, []string) {
	tokens := tokenize(title)
	matched := true
	var reasons []string

	for _, ck := range m.include {
		if _, ok := ck.find(tokens); ok {
			continue
		}
		matched = false
		reasons = append(reasons, missingReason(ck, tokens))
	}

	for _, ck := range m.exclude {
		hit, ok := ck.find(tokens)
		if !ok {
			continue
		}
		matched = false
		if ck.keyword.kind == KindAnyOf {
			reasons = append(reasons, fmt.Sprintf("excluded keyword %q present (matched %q)", ck.keyword.String(), hit))
		} else {
			reasons = append(reasons, fmt.Sprintf("excluded keyword %q present", ck.keyword.String()))
		}
	}

	return matched, reasons
}

// find returns the first alternative that occurs in the title.
func (ck compiledKeyword) find(tokens []string) (string, bool) {
	for i, alt := range ck.alternatives {
		if containsSequence(tokens, alt) {
			return ck.keyword.terms[i], true
		}
	}
	return "", false
}

func containsSequence(haystack, needle []string) bool {
	if len(needle) == 0 || len(needle) > len(haystack) {
		return false
	}
outer:
	for i := 0; i+len(needle) <= len(haystack); i++ {
		for j := range needle {
			if haystack[i+j] != needle[j] {
				continue outer
			}
		}
		return true
	}
	return false
}

func missingReason(ck compiledKeyword, tokens []string) string {
	var reason string
	if ck.keyword.kind == KindAnyOf {
		reason = fmt.Sprintf("none of %s found", ck.keyword.String())
	} else {
		reason = fmt.Sprintf("missing keyword %q", ck.keyword.String())
	}

	if len(ck.alternatives) == 1 {
		if hint := closestToken(strings.Join(ck.alternatives[0], ""), tokens); hint != "" {
			reason = fmt.Sprintf("%s (closest: %q)", reason, hint)
		}
	}
	return reason
}

// closestToken picks the title token that best fuzzy-matches the missing term, which
// usually surfaces typos such as "charzard".
func closestToken(term string, tokens []string) string {
	if len(term) < minHintLength {
		return ""
	}

	unique := make([]string, 0, len(tokens))
	seen := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		if len(t) < minHintLength || len(t)*2 < len(term) {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		unique = append(unique, t)
	}
	sort.Strings(unique)

	best, bestScore := "", 0
	for _, t := range unique {
		matches := fuzzy.Find(t, []string{term})
		if len(matches) == 0 {
			continue
		}
		if best == "" || matches[0].Score > bestScore {
			best, bestScore = t, matches[0].Score
		}
	}
	return best
}

// MatcherCache keeps compiled matchers by criteria id. Criteria keywords never change
// after creation, so entries never go stale.
type MatcherCache struct {
	cache *lru.Cache
}

func NewMatcherCache(size int) (*MatcherCache, error) {
	cache, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("failed to create matcher cache: %w", err)
	}
	return &MatcherCache{cache: cache}, nil
}

func (mc *MatcherCache) For(c *Criteria) *Matcher {
	if mc == nil || c.ID == "" {
		return Compile(c.Include, c.Exclude)
	}
	if cached, ok := mc.cache.Get(c.ID); ok {
		if m, ok := cached.(*Matcher); ok {
			return m
		}
	}
	m := Compile(c.Include, c.Exclude)
	mc.cache.Add(c.ID, m)
	return m
}

func (mc *MatcherCache) Len() int {
	if mc == nil {
		return 0
	}
	return mc.cache.Len()
}
