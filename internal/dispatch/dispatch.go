// Package dispatch executes workspace commands offered by the code action provider.
package dispatch

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"spellesp/internal/action"
)

// Applier merges a word into a persisted word list.
type Applier interface {
	ApplyWord(word string) (added bool, err error)
	Path() string
}

// Recorder is told about every successfully applied word.
type Recorder interface {
	RecordWord(word, path string, added bool) error
}

// Outcome reports what an invocation did. Handled is false for commands the
// dispatcher does not own.
type Outcome struct {
	Handled bool
	Word    string
	Path    string
	Added   bool
}

// Dispatcher routes command invocations to the word list.
type Dispatcher struct {
	store    Applier
	recorder Recorder
	logger   *zap.Logger
}

// Option customizes a Dispatcher.
type Option func(*Dispatcher)

// WithRecorder records applied words; recorder failures are logged only.
func WithRecorder(r Recorder) Option {
	return func(d *Dispatcher) { d.recorder = r }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}

// New returns a dispatcher applying words to store.
func New(store Applier, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		store:  store,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Commands lists the command identifiers handled by Dispatch.
func (d *Dispatcher) Commands() []string {
	return []string{action.IgnoreSpellingCommand}
}

// Dispatch executes command with args. Unknown commands are ignored.
func (d *Dispatcher) Dispatch(command string, args []json.RawMessage) (Outcome, error) {
	if command != action.IgnoreSpellingCommand {
		d.logger.Debug("ignoring command", zap.String("command", command))
		return Outcome{}, nil
	}
	word, err := wordArgument(args)
	if err != nil {
		return Outcome{}, &Error{
			Kind:    KindMissingArgument,
			Command: command,
			Detail:  err.Error(),
		}
	}
	added, err := d.store.ApplyWord(word)
	if err != nil {
		return Outcome{}, &Error{
			Kind:    KindStoreFailed,
			Command: command,
			Detail:  err.Error(),
			Err:     err,
		}
	}
	path := d.store.Path()
	d.logger.Debug("word applied",
		zap.String("word", word),
		zap.String("path", path),
		zap.Bool("added", added))
	if d.recorder != nil {
		if err := d.recorder.RecordWord(word, path, added); err != nil {
			d.logger.Warn("failed to record word", zap.String("word", word), zap.Error(err))
		}
	}
	return Outcome{Handled: true, Word: word, Path: path, Added: added}, nil
}

func wordArgument(args []json.RawMessage) (string, error) {
	if len(args) == 0 {
		return "", fmt.Errorf("no arguments")
	}
	var word string
	if err := json.Unmarshal(args[0], &word); err != nil {
		return "", fmt.Errorf("first argument %s is not a string", truncate(string(args[0]), 40))
	}
	if word == "" {
		return "", fmt.Errorf("first argument is an empty string")
	}
	return word, nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}
