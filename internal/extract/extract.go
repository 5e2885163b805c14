// Package extract pulls the flagged word out of a spell-checker diagnostic message.
//
// The upstream checker reports misspellings as "Unknown word (<word>)". Everything
// that depends on that phrasing lives here.
package extract

import "regexp"

// unknownWordPattern mirrors a Unicode-aware \w: letters, combining marks,
// decimal digits and connector punctuation such as '_'.
var unknownWordPattern = regexp.MustCompile(`Unknown word \((?P<word>[\p{L}\p{M}\p{Nd}\p{Pc}]+)\)`)

var wordGroup = unknownWordPattern.SubexpIndex("word")

// Word returns the word reported by an "Unknown word (...)" message.
// The first match anywhere in message wins; ok is false when nothing matches.
func Word(message string) (word string, ok bool) {
	m := unknownWordPattern.FindStringSubmatch(message)
	if m == nil {
		return "", false
	}
	return m[wordGroup], true
}
