package assets

import (
	"bufio"
	"embed"
	"io/fs"
	"strings"
)

//go:embed profane.txt app
var FS embed.FS

func readLines(name string) ([]string, error) {
	f, err := FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, strings.ToLower(s))
	}
	return out, sc.Err()
}

// ProfaneWords returns the embedded default denylist.
func ProfaneWords() ([]string, error) {
	return readLines("profane.txt")
}

// App returns the static landing page tree rooted at app/.
func App() (fs.FS, error) {
	return fs.Sub(FS, "app")
}
