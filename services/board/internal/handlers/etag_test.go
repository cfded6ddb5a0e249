package handlers

import "testing"

func TestEtagOf_Stable(t *testing.T) {
	a, err := etagOf([]int{1, 2, 3})
	if err != nil {
		t.Fatalf("etag: %v", err)
	}
	b, _ := etagOf([]int{1, 2, 3})
	c, _ := etagOf([]int{1, 3, 2})
	if a != b {
		t.Fatalf("expected stable tag, got %s and %s", a, b)
	}
	if a == c {
		t.Fatal("expected order to change the tag")
	}
	if len(a) != 18 || a[0] != '"' || a[17] != '"' {
		t.Fatalf("expected quoted 16-hex tag, got %s", a)
	}
}

func TestEtagMatches(t *testing.T) {
	tag := `"00000000000000ab"`
	cases := map[string]bool{
		"":                  false,
		"*":                 true,
		tag:                 true,
		`W/` + tag:          true,
		`"other", ` + tag:   true,
		`"other"`:           false,
		`"00000000000000ab`: false,
	}
	for header, want := range cases {
		if got := etagMatches(header, tag); got != want {
			t.Fatalf("etagMatches(%q) = %v, want %v", header, got, want)
		}
	}
}
