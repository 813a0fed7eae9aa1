package search

import (
	"net/url"
	"strings"
	"time"
)

// Criteria is one versioned keyword search bound to a card. Keyword changes create a new
// Criteria; old ones are deactivated, never deleted.
type Criteria struct {
	ID             string
	CardID         string
	Include        []Keyword
	Exclude        []Keyword
	Active         bool
	SearchURL      string
	LastReconciled time.Time
	BackfillTime   *time.Time
	CreatedAt      time.Time
}

// Params is the plain-text keyword snapshot stored alongside price selections.
type Params struct {
	Include []string
	Exclude []string
}

func (c *Criteria) Params() Params {
	return Params{
		Include: KeywordStrings(c.Include),
		Exclude: KeywordStrings(c.Exclude),
	}
}

// HasKeywords compares against already normalized keyword lists.
func (c *Criteria) HasKeywords(include, exclude []Keyword) bool {
	return SameKeywordSet(c.Include, include) && SameKeywordSet(c.Exclude, exclude)
}

// Equal compares two snapshots order-independently. Entries that do not parse are compared
// by their lower-cased text.
func (p Params) Equal(o Params) bool {
	return sameRawSet(p.Include, o.Include) && sameRawSet(p.Exclude, o.Exclude)
}

func sameRawSet(a, b []string) bool {
	ka, kb := rawKeySet(a), rawKeySet(b)
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

func rawKeySet(raw []string) map[string]struct{} {
	set := make(map[string]struct{}, len(raw))
	for _, r := range raw {
		if k, err := ParseKeyword(r); err == nil {
			set[k.Key()] = struct{}{}
			continue
		}
		set["raw:"+strings.ToLower(strings.TrimSpace(r))] = struct{}{}
	}
	return set
}

// BuildSearchURL renders the keyword set in marketplace query syntax: groups stay as
// "(a,b)" and excludes get a leading "-".
func BuildSearchURL(base string, include, exclude []Keyword) string {
	parts := make([]string, 0, len(include)+len(exclude))
	for _, k := range include {
		parts = append(parts, k.String())
	}
	for _, k := range exclude {
		parts = append(parts, "-"+k.String())
	}
	query := strings.Join(parts, " ")

	u, err := url.Parse(base)
	if err != nil || base == "" {
		return base + "?_nkw=" + url.QueryEscape(query)
	}
	values := u.Query()
	values.Set("_nkw", query)
	u.RawQuery = values.Encode()
	return u.String()
}
