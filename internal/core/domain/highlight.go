package domain

import (
	"regexp"
	"strings"
)

// Ellipsis is appended when content is truncated for display.
const Ellipsis = "..."

// truncateSpaceRatio is how far back a space may be from the cut point
// and still be preferred over a mid-word cut.
const truncateSpaceRatio = 0.7

// Segment is a piece of content produced by Highlight. Concatenating
// the Text of all segments reproduces the original content exactly.
type Segment struct {
	Text  string
	Match bool
}

// Tokenize splits a free-text query on whitespace, discards empty
// tokens and lowercases the rest.
func Tokenize(query string) []string {
	fields := strings.Fields(query)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		tokens = append(tokens, strings.ToLower(f))
	}
	return tokens
}

// Highlight splits content into segments, marking those that equal one
// of the query tokens case-insensitively. Tokens are regex-escaped
// before matching, so queries like "c++" or "a.b*c" are matched
// literally. A segment is marked only on an exact token match; partial
// matches inside a larger segment stay unmarked.
func Highlight(content, query string) []Segment {
	tokens := Tokenize(query)
	if content == "" || len(tokens) == 0 {
		return []Segment{{Text: content}}
	}

	escaped := make([]string, len(tokens))
	for i, t := range tokens {
		escaped[i] = regexp.QuoteMeta(t)
	}
	re, err := regexp.Compile("(?i)(" + strings.Join(escaped, "|") + ")")
	if err != nil {
		return []Segment{{Text: content}}
	}

	var segments []Segment
	last := 0
	for _, loc := range re.FindAllStringIndex(content, -1) {
		if loc[0] > last {
			segments = append(segments, Segment{Text: content[last:loc[0]]})
		}
		match := content[loc[0]:loc[1]]
		segments = append(segments, Segment{Text: match, Match: isToken(match, tokens)})
		last = loc[1]
	}
	if last < len(content) {
		segments = append(segments, Segment{Text: content[last:]})
	}
	if len(segments) == 0 {
		return []Segment{{Text: content}}
	}
	return segments
}

func isToken(s string, tokens []string) bool {
	for _, t := range tokens {
		if strings.EqualFold(s, t) {
			return true
		}
	}
	return false
}

// Truncate cuts content to at most maxLen runes, ellipsis included.
// The cut prefers the nearest preceding space when that space falls at
// or beyond 70% of the maximum; otherwise it cuts mid-word. Content
// already within the limit is returned unchanged, which makes the
// operation idempotent. A maxLen at or below the ellipsis width leaves
// no room for any content, so such values disable truncation and
// return the content unchanged.
func Truncate(content string, maxLen int) string {
	if maxLen <= len(Ellipsis) {
		return content
	}
	runes := []rune(content)
	if len(runes) <= maxLen {
		return content
	}

	hard := maxLen - len(Ellipsis)
	cut := hard
	for i := hard; i > 0; i-- {
		if runes[i-1] == ' ' {
			if float64(i-1) >= truncateSpaceRatio*float64(maxLen) {
				cut = i - 1
			}
			break
		}
	}
	return strings.TrimRight(string(runes[:cut]), " ") + Ellipsis
}
