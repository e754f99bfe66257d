package compose

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"
)

var noon = time.Date(2026, 4, 5, 12, 0, 0, 0, time.UTC)

func TestComposeTopicSubstitution(t *testing.T) {
	t.Parallel()
	c := Composer{Topic: "X"}
	if got := c.Compose("Idea {topic}", noon); got != "Idea X" {
		t.Fatalf("Compose = %q, want %q", got, "Idea X")
	}
}

func TestComposeLeavesPlaceholderWithoutTopic(t *testing.T) {
	t.Parallel()
	c := Composer{}
	if got := c.Compose("Idea {topic}", noon); got != "Idea {topic}" {
		t.Fatalf("Compose = %q", got)
	}
}

func TestComposeDateSuffix(t *testing.T) {
	t.Parallel()
	c := Composer{AddDate: true}
	got := c.Compose("Hello", noon)
	if got != "Hello\n\n2026-04-05" {
		t.Fatalf("Compose = %q", got)
	}
}

func TestComposeDateUsesLocation(t *testing.T) {
	t.Parallel()
	riga, err := time.LoadLocation("Europe/Riga")
	if err != nil {
		t.Fatalf("LoadLocation: %v", err)
	}
	// 23:30 UTC on the 5th is already the 6th in Riga.
	late := time.Date(2026, 4, 5, 23, 30, 0, 0, time.UTC)
	c := Composer{AddDate: true, Location: riga}
	got := c.Compose("Hello", late)
	if !strings.HasSuffix(got, "2026-04-06") {
		t.Fatalf("Compose = %q, want local date 2026-04-06", got)
	}
}

func TestComposeHashtag(t *testing.T) {
	t.Parallel()
	c := Composer{Hashtag: "golang"}
	if got := c.Compose("Hello", noon); got != "Hello #golang" {
		t.Fatalf("Compose = %q", got)
	}
}

func TestComposeFullAssembly(t *testing.T) {
	t.Parallel()
	c := Composer{Topic: "Go", AddDate: true, Hashtag: "daily"}
	got := c.Compose("Ship {topic} today", noon)
	want := "Ship Go today\n\n2026-04-05 #daily"
	if got != want {
		t.Fatalf("Compose = %q, want %q", got, want)
	}
}

func TestComposeTrimsWhitespace(t *testing.T) {
	t.Parallel()
	c := Composer{}
	if got := c.Compose("  padded  ", noon); got != "padded" {
		t.Fatalf("Compose = %q", got)
	}
}

func TestTrimNoOpUnderLimit(t *testing.T) {
	t.Parallel()
	for _, s := range []string{"", "short", strings.Repeat("a", 280)} {
		if got := Trim(s, 280); got != s {
			t.Fatalf("Trim(%q) = %q, want unchanged", s, got)
		}
	}
}

func TestTrimCutsAtLastSpace(t *testing.T) {
	t.Parallel()
	got := Trim("a b c d e", 5)
	if got != "a b…" {
		t.Fatalf("Trim = %q, want %q", got, "a b…")
	}
	if n := utf8.RuneCountInString(got); n > 5 {
		t.Fatalf("result %d runes, limit 5", n)
	}
}

func TestTrimWithoutSpaces(t *testing.T) {
	t.Parallel()
	got := Trim(strings.Repeat("x", 300), 280)
	if n := utf8.RuneCountInString(got); n != 280 {
		t.Fatalf("result %d runes, want 280", n)
	}
	if !strings.HasSuffix(got, "…") {
		t.Fatalf("result %q does not end in ellipsis", got)
	}
}

func TestTrimRuneAware(t *testing.T) {
	t.Parallel()
	// Multibyte input must not be cut mid-rune.
	s := strings.Repeat("ж", 300)
	got := Trim(s, 280)
	if !utf8.ValidString(got) {
		t.Fatal("result is not valid UTF-8")
	}
	if n := utf8.RuneCountInString(got); n > 280 {
		t.Fatalf("result %d runes, limit 280", n)
	}
}

func TestTrimNeverExceedsLimit(t *testing.T) {
	t.Parallel()
	inputs := []string{
		"one two three four five six seven eight",
		strings.Repeat("word ", 100),
		strings.Repeat("я", 50),
	}
	for _, s := range inputs {
		for _, limit := range []int{5, 10, 20} {
			got := Trim(s, limit)
			if n := utf8.RuneCountInString(got); n > limit {
				t.Fatalf("Trim(%q, %d) = %q (%d runes)", s, limit, got, n)
			}
		}
	}
}
