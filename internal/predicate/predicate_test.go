package predicate

import "testing"

func TestGlobMatchesStarAndQuestionMark(t *testing.T) {
	p, err := Glob("report-?.*.csv")
	if err != nil {
		t.Fatalf("Glob: %v", err)
	}
	cases := map[string]bool{
		"report-1.jan.csv": true,
		"REPORT-9.Q4.CSV":  true,
		"report-10.q4.csv": false, // ? matches exactly one character
		"report-1.csv":     false,
	}
	for name, want := range cases {
		if got := p.Match(name); got != want {
			t.Errorf("Match(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestGlobEscapesRegexMetacharacters(t *testing.T) {
	p, err := Glob("a.b(c)*")
	if err != nil {
		t.Fatalf("Glob: %v", err)
	}
	if !p.Match("a.b(c)anything") {
		t.Error("expected literal dot/parens to match literally, with * as wildcard")
	}
	if p.Match("axbxcxd") {
		t.Error("literal metacharacters must not behave as regex syntax")
	}
}

func TestRegexIsCaseInsensitiveAndUnanchored(t *testing.T) {
	p, err := Regex(`^invoice-\d+`)
	if err != nil {
		t.Fatalf("Regex: %v", err)
	}
	if !p.Match("INVOICE-42-final.pdf") {
		t.Error("expected case-insensitive, prefix match")
	}
	if p.Match("old-invoice-42.pdf") {
		t.Error("user-anchored ^ should still anchor to start of name")
	}
}

func TestRegexInvalidPatternErrors(t *testing.T) {
	if _, err := Regex("("); err == nil {
		t.Fatal("expected error for unbalanced group")
	}
}

func TestFuzzyMatchWithinDistance(t *testing.T) {
	p := Fuzzy("readme", 1)
	if !p.Match("readme") {
		t.Error("exact match should satisfy distance<=1")
	}
	if !p.Match("Readme") {
		t.Error("case-insensitive exact match should satisfy distance<=1")
	}
	if !p.Match("readmes") {
		t.Error("expected one-insertion distance to be within 1")
	}
}

func TestFuzzyRejectsBeyondDistance(t *testing.T) {
	p := Fuzzy("readme", 1)
	if p.Match("completely-different-name") {
		t.Error("expected distant name to be rejected")
	}
}

func TestLevenshteinIdentity(t *testing.T) {
	for _, s := range []string{"", "a", "readme.txt", "日本語"} {
		if d := Levenshtein(s, s); d != 0 {
			t.Errorf("Levenshtein(%q, %q) = %d, want 0", s, s, d)
		}
	}
}

func TestLevenshteinSymmetry(t *testing.T) {
	pairs := [][2]string{
		{"kitten", "sitting"},
		{"", "abc"},
		{"flaw", "lawn"},
		{"file.txt", "files.txt"},
	}
	for _, p := range pairs {
		a, b := Levenshtein(p[0], p[1]), Levenshtein(p[1], p[0])
		if a != b {
			t.Errorf("Levenshtein(%q,%q)=%d != Levenshtein(%q,%q)=%d", p[0], p[1], a, p[1], p[0], b)
		}
	}
}

func TestLevenshteinKnownValues(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"kitten", "sitting", 3},
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"flaw", "lawn", 2},
	}
	for _, c := range cases {
		if got := Levenshtein(c.a, c.b); got != c.want {
			t.Errorf("Levenshtein(%q, %q) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

func TestLevenshteinTriangleInequality(t *testing.T) {
	a, b, c := "readme.txt", "readme.md", "README.MD"
	dab := Levenshtein(a, b)
	dbc := Levenshtein(b, c)
	dac := Levenshtein(a, c)
	if dac > dab+dbc {
		t.Errorf("triangle inequality violated: d(a,c)=%d > d(a,b)=%d + d(b,c)=%d", dac, dab, dbc)
	}
}

func TestLevenshteinBoundedByLongerLength(t *testing.T) {
	a, b := "short", "a-much-longer-name.txt"
	d := Levenshtein(a, b)
	longer := len(b)
	if d > longer {
		t.Errorf("Levenshtein(%q,%q) = %d, want <= %d", a, b, d, longer)
	}
}
