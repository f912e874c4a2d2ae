package notation

import "testing"

func TestNormalize(t *testing.T) {
	input := "ｅ２－Ｄ４"
	if _, _, err := ParseFullMove(input, "-"); err == nil {
		t.Fatalf("ParseFullMove(%q) succeeded without normalization", input)
	}

	m, rest, err := ParseFullMove(Normalize(input), "-")
	if err != nil {
		t.Fatalf("ParseFullMove(Normalize(%q)) returned error: %v", input, err)
	}
	if m.String() != "e2-d4" || rest != "" {
		t.Errorf("ParseFullMove(Normalize(%q)) = %v, %q", input, m, rest)
	}

	if got := Normalize("e2-e4"); got != "e2-e4" {
		t.Errorf("Normalize changed ASCII input: %q", got)
	}
}
