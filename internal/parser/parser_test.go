package parser

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/doeshing/nlsh/internal/domain"
)

func TestParseObjectArrayEmbeddedInNoise(t *testing.T) {
	raw := `Sure! [{"command":"ls -la"},{"command":"pwd"}] Hope that helps!`

	got, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	want := domain.CandidateList{{Command: "ls -la"}, {Command: "pwd"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseStringArray(t *testing.T) {
	got, err := Parse(`["df -h", "du -sh /var"]`)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	want := domain.CandidateList{{Command: "df -h"}, {Command: "du -sh /var"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseFallbackOnProse(t *testing.T) {
	got, err := Parse("  remove all temp files \n")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	want := domain.CandidateList{{Command: "remove all temp files"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseEmptyArrayIsHardFailure(t *testing.T) {
	for _, raw := range []string{"[]", "here you go: [] done"} {
		_, err := Parse(raw)
		var pf *domain.ParseFailure
		if !errors.As(err, &pf) {
			t.Fatalf("Parse(%q) error = %v, want ParseFailure", raw, err)
		}
		if pf.Raw != raw {
			t.Fatalf("ParseFailure.Raw = %q, want %q", pf.Raw, raw)
		}
	}
}

func TestParseBlankResponseIsHardFailure(t *testing.T) {
	_, err := Parse("   \n\t ")
	var pf *domain.ParseFailure
	if !errors.As(err, &pf) {
		t.Fatalf("Parse() error = %v, want ParseFailure", err)
	}
}

func TestParseUsesWidestArraySpan(t *testing.T) {
	// Two array-looking substrings: the span must run from the first '['
	// to the last ']', not stop at the shortest match.
	raw := `["echo one"] and also ["echo two"]`

	got, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	// The widest span is not valid JSON, so the whole trimmed response
	// becomes the single literal candidate.
	want := domain.CandidateList{{Command: raw}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseObjectMissingCommandIsDropped(t *testing.T) {
	raw := `[{"command":"uptime"},{"explanation":"shows load"},{"command":"free -m"}]`

	got, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	want := domain.CandidateList{{Command: "uptime"}, {Command: "free -m"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseAllObjectsMissingCommandIsHardFailure(t *testing.T) {
	_, err := Parse(`[{"cmd":"ls"},{"explanation":"nope"}]`)
	var pf *domain.ParseFailure
	if !errors.As(err, &pf) {
		t.Fatalf("Parse() error = %v, want ParseFailure", err)
	}
}

func TestParseKeepsDuplicatesAndOrder(t *testing.T) {
	got, err := Parse(`["pwd","ls","pwd"]`)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	want := domain.CandidateList{{Command: "pwd"}, {Command: "ls"}, {Command: "pwd"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseNestedArrayInsideObjectValue(t *testing.T) {
	raw := `[{"command":"echo [1,2]"}]`

	got, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	want := domain.CandidateList{{Command: "echo [1,2]"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseMarkdownFencedArray(t *testing.T) {
	raw := "```json\n[{\"command\":\"ls\"}]\n```"

	got, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	want := domain.CandidateList{{Command: "ls"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Parse() mismatch (-want +got):\n%s", diff)
	}
}
