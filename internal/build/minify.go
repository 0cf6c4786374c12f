package build

import (
	"regexp"
	"strings"
)

var htmlComment = regexp.MustCompile(`<!--.*?-->`)

// minifyHTML applies a light whitespace pass. HTML comments are dropped,
// trailing whitespace is stripped, and runs of blank lines collapse to one.
func minifyHTML(in string) string {
	in = htmlComment.ReplaceAllString(in, "")

	lines := strings.Split(in, "\n")
	out := make([]string, 0, len(lines))
	blank := false
	for _, line := range lines {
		line = strings.TrimRight(line, " \t")
		if line == "" {
			if blank {
				continue
			}
			blank = true
		} else {
			blank = false
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
