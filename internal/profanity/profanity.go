// internal/profanity/profanity.go
//
// Denylist masking for chirp bodies.
//
// Responsibilities:
//   - Load the denylist from CHIRPY_PROFANITY_FILE, or fall back to the
//     embedded default (assets/profane.txt).
//   - Mask whole words case-insensitively; substrings are left alone
//     ("kerfufflexyz" is not masked).
//
// Words are split on single spaces and re-joined with single spaces, so
// the caller's spacing survives unchanged.

package profanity

import (
	"bufio"
	"errors"
	"os"
	"strings"

	"github.com/robalobadob/chirpy/assets"
)

// Mask replaces every denylisted word.
const Mask = "****"

// Filter is an immutable denylist.
type Filter struct {
	words map[string]struct{}
}

// New builds a Filter from words; entries are trimmed and lowercased.
func New(words []string) *Filter {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		w = strings.TrimSpace(strings.ToLower(w))
		if w != "" {
			set[w] = struct{}{}
		}
	}
	return &Filter{words: set}
}

// Load reads the denylist from path, or the embedded default if path is
// empty. An empty resulting list is an error.
func Load(path string) (*Filter, error) {
	var (
		list []string
		err  error
	)
	if path != "" {
		list, err = readWordFile(path)
	} else {
		list, err = assets.ProfaneWords()
	}
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, errors.New("profanity: denylist is empty")
	}
	return New(list), nil
}

// readWordFile loads one word per line, skipping blanks and # comments.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		w := strings.TrimSpace(strings.ToLower(sc.Text()))
		if w == "" || strings.HasPrefix(w, "#") {
			continue
		}
		out = append(out, w)
	}
	return out, sc.Err()
}

// Contains reports whether w is denylisted.
func (f *Filter) Contains(w string) bool {
	_, ok := f.words[strings.ToLower(w)]
	return ok
}

// Clean returns s with every denylisted word replaced by Mask.
func (f *Filter) Clean(s string) string {
	parts := strings.Split(s, " ")
	for i, p := range parts {
		if f.Contains(p) {
			parts[i] = Mask
		}
	}
	return strings.Join(parts, " ")
}

// Len returns the number of denylisted words.
func (f *Filter) Len() int { return len(f.words) }
