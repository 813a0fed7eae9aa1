package search

import (
	"reflect"
	"strings"
	"testing"
)

func TestParseKeyword(t *testing.T) {
	tests := []struct {
		raw      string
		wantKind KeywordKind
		want     []string
		wantErr  bool
	}{
		{raw: "Charizard", wantKind: KindLiteral, want: []string{"charizard"}},
		{raw: "  Base   Set ", wantKind: KindLiteral, want: []string{"base set"}},
		{raw: "(1st Edition, Shadowless)", wantKind: KindAnyOf, want: []string{"1st edition", "shadowless"}},
		{raw: "(holo)", wantKind: KindLiteral, want: []string{"holo"}},
		{raw: "", wantErr: true},
		{raw: "(a,b", wantErr: true},
		{raw: "a)b", wantErr: true},
		{raw: "((a,b))", wantErr: true},
		{raw: "(a, ,b)", wantErr: true},
		{raw: "()", wantErr: true},
		{raw: "---", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseKeyword(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseKeyword(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got.Kind() != tt.wantKind {
				t.Errorf("Kind() = %v, want %v", got.Kind(), tt.wantKind)
			}
			if !reflect.DeepEqual(got.Terms(), tt.want) {
				t.Errorf("Terms() = %v, want %v", got.Terms(), tt.want)
			}
		})
	}
}

func TestKeyword_RoundTrip(t *testing.T) {
	for _, raw := range []string{"charizard", "(1st edition,shadowless)", "4/102"} {
		k, err := ParseKeyword(raw)
		if err != nil {
			t.Fatal(err)
		}
		again, err := ParseKeyword(k.String())
		if err != nil {
			t.Fatal(err)
		}
		if k.Key() != again.Key() {
			t.Errorf("round trip changed key: %q -> %q", k.Key(), again.Key())
		}
	}
}

func TestKeyword_Key(t *testing.T) {
	a, _ := ParseKeyword("(Shadowless, 1st Edition)")
	b, _ := ParseKeyword("(1st edition,shadowless)")
	if a.Key() != b.Key() {
		t.Errorf("group keys differ: %q vs %q", a.Key(), b.Key())
	}
	c, _ := ParseKeyword("Pokémon")
	d, _ := ParseKeyword("POKEMON")
	if c.Key() != d.Key() {
		t.Errorf("accent folded keys differ: %q vs %q", c.Key(), d.Key())
	}
}

func TestNormalizeKeywords(t *testing.T) {
	inc, _ := ParseKeywords([]string{"Charizard", "holo", "CHARIZARD"})
	exc, _ := ParseKeywords([]string{"Holo", "psa", "(bgs,cgc)", "(CGC,BGS)"})

	gotInc, gotExc := NormalizeKeywords(inc, exc)
	if got := KeywordStrings(gotInc); !reflect.DeepEqual(got, []string{"charizard", "holo"}) {
		t.Errorf("include = %v", got)
	}
	if got := KeywordStrings(gotExc); !reflect.DeepEqual(got, []string{"psa", "(bgs,cgc)"}) {
		t.Errorf("exclude = %v", got)
	}

	includeKeys := keySet(gotInc)
	for _, k := range gotExc {
		if _, clash := includeKeys[k.Key()]; clash {
			t.Errorf("exclude %q also included", k.String())
		}
	}
}

func TestParams_Equal(t *testing.T) {
	a := Params{Include: []string{"charizard", "(holo,reverse)"}, Exclude: []string{"psa"}}
	b := Params{Include: []string{"(Reverse, Holo)", "Charizard"}, Exclude: []string{"PSA"}}
	if !a.Equal(b) {
		t.Error("expected snapshots to be equal")
	}
	c := Params{Include: []string{"charizard"}, Exclude: []string{"psa"}}
	if a.Equal(c) {
		t.Error("expected snapshots to differ")
	}
}

func TestBuildSearchURL(t *testing.T) {
	inc, _ := ParseKeywords([]string{"charizard", "(1st edition,shadowless)"})
	exc, _ := ParseKeywords([]string{"psa"})

	got := BuildSearchURL("https://www.ebay.co.uk/sch/i.html?LH_Sold=1", inc, exc)
	if !strings.HasPrefix(got, "https://www.ebay.co.uk/sch/i.html?") {
		t.Errorf("unexpected base in %q", got)
	}
	if !strings.Contains(got, "LH_Sold=1") {
		t.Errorf("existing query lost in %q", got)
	}
	if !strings.Contains(got, "_nkw=charizard+%281st+edition%2Cshadowless%29+-psa") {
		t.Errorf("unexpected keyword query in %q", got)
	}
}
