package validate

import (
	"strings"

	"github.com/gobwas/glob"
)

// AcceptRule is one parsed item from the accept attribute. Items starting
// with a dot match by lowercase extension; everything else matches by MIME
// type, with "type/*" wildcards matching the media-type prefix.
type AcceptRule struct {
	raw string
	ext string    // set for extension rules, lowercase with dot
	g   glob.Glob // set for MIME rules
}

// ParseAccept splits a comma-delimited accept list into rules. Empty items
// and unparsable patterns are skipped.
func ParseAccept(accept string) []AcceptRule {
	var rules []AcceptRule
	for _, item := range strings.Split(accept, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if strings.HasPrefix(item, ".") {
			rules = append(rules, AcceptRule{raw: item, ext: strings.ToLower(item)})
			continue
		}
		g, err := glob.Compile(strings.ToLower(item), '/')
		if err != nil {
			continue
		}
		rules = append(rules, AcceptRule{raw: item, g: g})
	}
	return rules
}

// Matches reports whether a file with the given lowercase extension and
// MIME type satisfies the rule.
func (r AcceptRule) Matches(ext, mimeType string) bool {
	if r.ext != "" {
		return ext == r.ext
	}
	return r.g.Match(strings.ToLower(mimeType))
}

// AnyMatch reports whether at least one rule accepts the file. An empty
// rule set accepts everything.
func AnyMatch(rules []AcceptRule, ext, mimeType string) bool {
	if len(rules) == 0 {
		return true
	}
	for _, r := range rules {
		if r.Matches(ext, mimeType) {
			return true
		}
	}
	return false
}
