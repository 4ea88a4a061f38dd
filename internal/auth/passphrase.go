// Package auth is the audit's authentication surface: bearer-token
// role checks (kept in internal/api) and the audit board passphrase
// generator.
package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"sync"
)

// wordlistWords is the process-wide passphrase word source, loaded
// once at startup. It stays small and fixed rather than reading an
// external wordfile, since no wordlist ships in the retrieved pack.
var wordlistWords = defaultWordlist()

var loadOnce sync.Once

// LoadWordlist (re)initializes the process-wide word list from a
// caller-supplied slice. Call once at startup if an operator wants a
// longer/different list than the built-in default; safe to skip.
func LoadWordlist(words []string) {
	loadOnce.Do(func() {
		if len(words) > 0 {
			wordlistWords = words
		}
	})
}

const passphraseWords = 4
const passphraseDelimiter = "-"

// GeneratePassphrase produces a 4-word dash-delimited audit board
// passphrase, drawn from the process-wide word list using
// crypto/rand — never math/rand, since this value gates physical
// ballot access.
func GeneratePassphrase() (string, error) {
	words := make([]string, passphraseWords)
	for i := range words {
		w, err := randomWord()
		if err != nil {
			return "", err
		}
		words[i] = w
	}
	return strings.Join(words, passphraseDelimiter), nil
}

func randomWord() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(wordlistWords))))
	if err != nil {
		return "", fmt.Errorf("generating passphrase word: %w", err)
	}
	return wordlistWords[n.Int64()], nil
}

// defaultWordlist is a small fixed word set. Real deployments should
// call LoadWordlist with a proper diceware-style list at startup.
func defaultWordlist() []string {
	return []string{
		"anchor", "basket", "candle", "desert", "ember", "forest", "glacier",
		"harbor", "island", "jasper", "kernel", "lantern", "meadow", "nectar",
		"oasis", "pebble", "quartz", "ribbon", "summit", "thicket", "umbrella",
		"valley", "willow", "xenon", "yonder", "zephyr", "amber", "birch",
		"canyon", "drift", "echo", "feather", "granite", "hazel", "indigo",
		"juniper", "knoll", "ledge", "marble", "nimbus",
	}
}
