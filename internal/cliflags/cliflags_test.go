package cliflags

import "testing"

func TestLaterRepeatOverwritesEarlier(t *testing.T) {
	s := Parse([]string{"-text", "a", "-text", "b"})
	if got := s.String("text", ""); got != "b" {
		t.Fatalf("text = %q, want %q", got, "b")
	}
}

func TestBareBooleanFlag(t *testing.T) {
	s := Parse([]string{"-exact"})
	if !s.Bool("exact") {
		t.Fatal("expected exact to be set")
	}
	if v, ok := s.StringOK("exact"); !ok || v != "" {
		t.Fatalf("StringOK(exact) = %q, %v", v, ok)
	}
}

func TestAbsentFlagFallsBackToDefault(t *testing.T) {
	s := Parse([]string{"-text", "dir"})
	if got := s.String("index", "index.json"); got != "index.json" {
		t.Fatalf("index = %q, want default", got)
	}
}

func TestIntParsesAndDefaults(t *testing.T) {
	s := Parse([]string{"-max", "3"})
	n, err := s.Int("max", 1)
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Fatalf("max = %d, want 3", n)
	}

	def, err := s.Int("threads", 5)
	if err != nil {
		t.Fatal(err)
	}
	if def != 5 {
		t.Fatalf("threads = %d, want default 5", def)
	}
}

func TestValueThatLooksLikeAFlagTokenStartsANewFlag(t *testing.T) {
	// "-max" immediately followed by "-threads" with no value in between:
	// -max has no value, so it becomes a bare boolean; -threads takes "2".
	s := Parse([]string{"-max", "-threads", "2"})
	if !s.Bool("max") {
		t.Fatal("expected max to be recorded as a bare flag")
	}
	n, err := s.Int("threads", 5)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Fatalf("threads = %d, want 2", n)
	}
}

func TestNonFlagLeadingTokenIsIgnored(t *testing.T) {
	s := Parse([]string{"stray", "-exact"})
	if !s.Bool("exact") {
		t.Fatal("expected exact to be set")
	}
}
