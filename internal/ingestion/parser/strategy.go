package parser

import (
	"html"
	"regexp"
	"strings"
)

// FragmentStrategy extracts a subject and title from one "subject: title" fragment of rendered markup.
// Strategies are pure and are tried in rank order; the first match wins.
type FragmentStrategy struct {
	Name  string
	Parse func(fragmentHTML string) (subject, title string, ok bool)
}

var (
	strictLabelRe = regexp.MustCompile(`(?is)<(?:b|strong)(?:\s[^>]*)?>(.*?):\s*</(?:b|strong)>(.*)`)
	colonSplitRe  = regexp.MustCompile(`(?s)^(.*?):(.*)`)
	tagRe         = regexp.MustCompile(`(?s)<[^>]*>?`)
	breakRe       = regexp.MustCompile(`(?i)<br\s*/?>`)
	blockEndRe    = regexp.MustCompile(`(?i)</(?:div|p|li|tr)>`)
	portalDateRe  = regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{4}`)
)

// StrictLabel matches an emphasised subject label followed by a colon: "<b>Math:</b> ex. 1-5".
var StrictLabel = FragmentStrategy{
	Name: "strict_label",
	Parse: func(fragment string) (string, string, bool) {
		m := strictLabelRe.FindStringSubmatch(fragment)
		if m == nil {
			return "", "", false
		}
		subject := PlainText(m[1])
		if subject == "" {
			return "", "", false
		}
		return subject, PlainText(m[2]), true
	},
}

// ColonSplit splits the fragment's plain text at the first colon.
var ColonSplit = FragmentStrategy{
	Name: "colon_split",
	Parse: func(fragment string) (string, string, bool) {
		m := colonSplitRe.FindStringSubmatch(PlainText(fragment))
		if m == nil {
			return "", "", false
		}
		return strings.TrimSpace(m[1]), strings.TrimSpace(m[2]), true
	},
}

// DefaultStrategies is the ranked strategy list used by ParseTable.
var DefaultStrategies = []FragmentStrategy{StrictLabel, ColonSplit}

// ParseFragment runs strategies in order and returns the first match.
func ParseFragment(fragment string, strategies []FragmentStrategy) (subject, title string, ok bool) {
	if PlainText(fragment) == "" {
		return "", "", false
	}
	for _, s := range strategies {
		if subject, title, ok = s.Parse(fragment); ok {
			return subject, title, true
		}
	}
	return "", "", false
}

// SplitFragments splits a cell's inner HTML on line breaks.
func SplitFragments(cellHTML string) []string {
	return breakRe.Split(cellHTML, -1)
}

// PlainText strips tags, decodes entities and trims whitespace (including non-breaking spaces).
func PlainText(fragment string) string {
	s := strings.ReplaceAll(fragment, "&nbsp;", " ")
	s = tagRe.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	s = strings.ReplaceAll(s, "\u00a0", " ")
	return strings.TrimSpace(s)
}

// FirstLine returns the first non-empty rendered line of a cell.
// A portal date found on that line is preferred over the surrounding text.
func FirstLine(cellHTML string) string {
	s := breakRe.ReplaceAllString(cellHTML, "\n")
	s = blockEndRe.ReplaceAllString(s, "\n")
	for _, line := range strings.Split(s, "\n") {
		line = PlainText(line)
		if line == "" {
			continue
		}
		if d := portalDateRe.FindString(line); d != "" {
			return d
		}
		return line
	}
	return ""
}
