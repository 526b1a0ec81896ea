// Package merge combines the rules of an existing .gitignore document with
// the rules of a template without duplicating rules already present.
//
// Rules are compared syntactically: two lines are the same rule when their
// whitespace-trimmed text is equal. No glob equivalence, trailing-slash or
// negation handling is attempted.
package merge

import (
	"strings"
	"time"
	"unicode"
)

// DateLayout is the date format used in the header of an appended block.
const DateLayout = "2006-01-02"

// byteOrderMark is written by some editors at the start of a file and is
// ignored by git.
const byteOrderMark = '\ufeff'

// TrimRule strips surrounding whitespace and byte order marks from line.
func TrimRule(line string) string {
	return strings.TrimFunc(line, func(r rune) bool {
		return unicode.IsSpace(r) || r == byteOrderMark
	})
}

// IsRule reports whether line is a rule: non-empty after trimming and not a
// comment.
func IsRule(line string) bool {
	trimmed := TrimRule(line)
	return trimmed != "" && !strings.HasPrefix(trimmed, "#")
}

// Rules returns the set of trimmed rules in text.
func Rules(text string) map[string]struct{} {
	rules := make(map[string]struct{})
	for _, line := range strings.Split(text, "\n") {
		if !IsRule(line) {
			continue
		}
		rules[TrimRule(line)] = struct{}{}
	}
	return rules
}

// NewRules returns the template lines whose trimmed rule is not already in
// existing, in template order. The lines are returned untrimmed apart from a
// leading byte order mark.
func NewRules(existing, templateText string) []string {
	known := Rules(existing)

	var added []string
	for _, line := range strings.Split(templateText, "\n") {
		if !IsRule(line) {
			continue
		}
		if _, ok := known[TrimRule(line)]; ok {
			continue
		}
		added = append(added, strings.TrimPrefix(line, string(byteOrderMark)))
	}
	return added
}

// Header renders the comment line placed above an appended block.
func Header(templateName string, now time.Time) string {
	return "# " + templateName + " (Added: " + now.UTC().Format(DateLayout) + ")"
}

// Merge appends the rules of templateText missing from existing under a
// header naming the template and today's date. When nothing is new, existing
// is returned unchanged.
func Merge(existing, templateText, templateName string) string {
	return MergeAt(existing, templateText, templateName, time.Now())
}

// MergeAt is Merge with an explicit clock.
func MergeAt(existing, templateText, templateName string, now time.Time) string {
	added := NewRules(existing, templateText)
	if len(added) == 0 {
		return existing
	}

	var b strings.Builder
	b.WriteString(strings.TrimSpace(existing))
	b.WriteString("\n\n")
	b.WriteString(Header(templateName, now))
	b.WriteString("\n")
	b.WriteString(strings.Join(added, "\n"))
	b.WriteString("\n")
	return b.String()
}
