// Package action turns spell-checker diagnostics into "Add to Dictionary" commands.
package action

import (
	"fmt"

	"spellesp/internal/extract"
)

// IgnoreSpellingCommand is the command identifier executed when the user accepts a word.
const IgnoreSpellingCommand = "spellesp.ignore_spelling"

// Command is an LSP Command: the editor shows Title and later sends
// Command and Arguments back through workspace/executeCommand.
type Command struct {
	Title     string   `json:"title"`
	Command   string   `json:"command"`
	Arguments []string `json:"arguments"`
}

// Diagnostic is the part of a reported issue the provider looks at.
type Diagnostic struct {
	Message string
}

// Build returns the command that adds word to the dictionary.
func Build(word string) Command {
	return Command{
		Title:     fmt.Sprintf("Add \"%s\" to Dictionary", word),
		Command:   IgnoreSpellingCommand,
		Arguments: []string{word},
	}
}

// Provide returns one command per diagnostic whose message names an unknown word,
// in diagnostic order. The result is never nil.
func Provide(diags []Diagnostic) []Command {
	out := make([]Command, 0, len(diags))
	for _, d := range diags {
		word, ok := extract.Word(d.Message)
		if !ok {
			continue
		}
		out = append(out, Build(word))
	}
	return out
}
