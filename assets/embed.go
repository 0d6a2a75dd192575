package assets

import (
	"bufio"
	"embed"
	"io"
	"strings"
)

//go:embed start.txt en.txt
var FS embed.FS

// ReadLines reads one word per line, trimming and lowercasing each line
// and skipping blanks and # comments.
func ReadLines(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, strings.ToLower(s))
	}
	return out, sc.Err()
}

func readLines(name string) ([]string, error) {
	f, err := FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadLines(f)
}

// RootWords returns the embedded pool of root words.
func RootWords() ([]string, error) {
	return readLines("start.txt")
}

// Dictionary returns the embedded dictionary for lang, or nil when there is
// no embedded list for it.
func Dictionary(lang string) ([]string, error) {
	if lang != "en" {
		return nil, nil
	}
	return readLines("en.txt")
}
