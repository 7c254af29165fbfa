package assets

import (
	"bufio"
	"embed"
	"strings"
)

//go:embed cards.txt
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
		out = append(out, s)
	}
	return out, sc.Err()
}

// CardLines returns the embedded catalog's non-comment lines in file order.
func CardLines() ([]string, error) {
	return readLines("cards.txt")
}
