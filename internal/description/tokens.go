package description

import (
	"regexp"
	"strings"
)

// CommitToken is the global placeholder for the short commit hash of the
// repository the release is cut from.
const CommitToken = "__RELEASE_COMMIT__"

var (
	changelogTokenPattern = regexp.MustCompile(`__[A-Z0-9_]+_CHANGELOG_TEXT__`)
	versionTokenPattern   = regexp.MustCompile(`__[A-Z0-9_]+_VERSION__`)
)

// Tokens lists the changelog placeholder tokens present in doc, unique,
// in order of first appearance.
func Tokens(doc string) []string {
	return uniqueMatches(changelogTokenPattern, doc)
}

// VersionTokens lists the version placeholder tokens present in doc,
// unique, in order of first appearance.
func VersionTokens(doc string) []string {
	return uniqueMatches(versionTokenPattern, doc)
}

// HasToken reports whether doc contains token at least once.
func HasToken(doc, token string) bool {
	return strings.Contains(doc, token)
}

func uniqueMatches(re *regexp.Regexp, doc string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, m := range re.FindAllString(doc, -1) {
		if !seen[m] {
			seen[m] = true
			out = append(out, m)
		}
	}
	return out
}
