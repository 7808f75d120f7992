package service

import (
	"strings"
	"testing"
)

func TestRandomCodeShape(t *testing.T) {
	for i := 0; i < 100; i++ {
		code, err := randomCode()
		if err != nil {
			t.Fatalf("randomCode() error = %v", err)
		}
		if len(code) != codeLength {
			t.Fatalf("len(%q) = %d, want %d", code, len(code), codeLength)
		}
		for _, r := range code {
			if !strings.ContainsRune(codeAlphabet, r) {
				t.Fatalf("code %q contains %q outside the alphabet", code, r)
			}
		}
		// Stored codes are already canonical, so normalization is a no-op.
		if NormalizeCode(code) != code {
			t.Fatalf("NormalizeCode(%q) altered a generated code", code)
		}
	}
}

func TestRandomCodeAvoidsAmbiguousGlyphs(t *testing.T) {
	for _, forbidden := range "0O1I" {
		if strings.ContainsRune(codeAlphabet, forbidden) {
			t.Errorf("alphabet contains ambiguous glyph %q", forbidden)
		}
	}
}

func TestRandomCodeVariety(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code, err := randomCode()
		if err != nil {
			t.Fatalf("randomCode() error = %v", err)
		}
		if seen[code] {
			t.Fatalf("duplicate code %q in 50 draws", code)
		}
		seen[code] = true
	}
}
