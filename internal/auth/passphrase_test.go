package auth

import (
	"strings"
	"testing"
)

func TestGeneratePassphrase_FourDashDelimitedWords(t *testing.T) {
	p, err := GeneratePassphrase()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	parts := strings.Split(p, passphraseDelimiter)
	if len(parts) != passphraseWords {
		t.Fatalf("expected %d words, got %d in %q", passphraseWords, len(parts), p)
	}
	for _, word := range parts {
		if word == "" {
			t.Errorf("passphrase %q contains an empty word", p)
		}
	}
}

func TestGeneratePassphrase_VariesAcrossCalls(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		p, err := GeneratePassphrase()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		seen[p] = true
	}
	if len(seen) < 2 {
		t.Errorf("expected variation across repeated passphrase generation, got only %d distinct values in 20 draws", len(seen))
	}
}
