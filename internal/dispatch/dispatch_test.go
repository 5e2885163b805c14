package dispatch

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spellesp/internal/action"
	"spellesp/internal/journal"
	"spellesp/internal/wordlist"
)

type fakeStore struct {
	words []string
	err   error
}

func (f *fakeStore) ApplyWord(word string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	f.words = append(f.words, word)
	return true, nil
}

func (f *fakeStore) Path() string { return "/fake/.cspell.json" }

type failingRecorder struct{ calls int }

func (r *failingRecorder) RecordWord(string, string, bool) error {
	r.calls++
	return errors.New("disk full")
}

func rawArgs(t *testing.T, values ...any) []json.RawMessage {
	t.Helper()
	out := make([]json.RawMessage, 0, len(values))
	for _, v := range values {
		b, err := json.Marshal(v)
		require.NoError(t, err)
		out = append(out, b)
	}
	return out
}

func TestDispatchIgnoresUnknownCommand(t *testing.T) {
	store := &fakeStore{}
	outcome, err := New(store).Dispatch("other.command", rawArgs(t, "teh"))
	require.NoError(t, err)
	assert.False(t, outcome.Handled)
	assert.Empty(t, store.words)
}

func TestDispatchMissingArgument(t *testing.T) {
	cases := map[string][]json.RawMessage{
		"no arguments": nil,
		"number":       rawArgs(t, 42),
		"object":       rawArgs(t, map[string]string{"word": "teh"}),
		"empty string": rawArgs(t, ""),
		"null":         {json.RawMessage("null")},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			store := &fakeStore{}
			_, err := New(store).Dispatch(action.IgnoreSpellingCommand, args)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMissingArgument))

			var dispatchErr *Error
			require.True(t, errors.As(err, &dispatchErr))
			assert.Equal(t, KindMissingArgument, dispatchErr.Kind)
			assert.Empty(t, store.words)
		})
	}
}

func TestDispatchWrapsStoreError(t *testing.T) {
	storeErr := &wordlist.Error{Kind: wordlist.KindMalformed, Path: "/x", Detail: "bad"}
	_, err := New(&fakeStore{err: storeErr}).Dispatch(action.IgnoreSpellingCommand, rawArgs(t, "teh"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrStoreFailed))
	assert.True(t, errors.Is(err, wordlist.ErrMalformed))

	var got *wordlist.Error
	require.True(t, errors.As(err, &got))
	assert.Same(t, storeErr, got)
}

func TestDispatchUsesFirstArgumentOnly(t *testing.T) {
	store := &fakeStore{}
	outcome, err := New(store).Dispatch(action.IgnoreSpellingCommand, rawArgs(t, "teh", 7, "extra"))
	require.NoError(t, err)
	assert.True(t, outcome.Handled)
	assert.Equal(t, "teh", outcome.Word)
	assert.Equal(t, []string{"teh"}, store.words)
}

func TestDispatchRecorderFailureIsNotFatal(t *testing.T) {
	rec := &failingRecorder{}
	outcome, err := New(&fakeStore{}, WithRecorder(rec)).Dispatch(action.IgnoreSpellingCommand, rawArgs(t, "teh"))
	require.NoError(t, err)
	assert.True(t, outcome.Added)
	assert.Equal(t, 1, rec.calls)
}

func TestCommands(t *testing.T) {
	assert.Equal(t, []string{"spellesp.ignore_spelling"}, New(&fakeStore{}).Commands())
}

func TestEndToEndUnknownWord(t *testing.T) {
	dir := t.TempDir()
	store := wordlist.New(dir)
	j := journal.New(filepath.Join(t.TempDir(), "journal.mp"), journal.WithSource("test"))
	d := New(store, WithRecorder(j))

	actions := action.Provide([]action.Diagnostic{{Message: "Unknown word (teh)"}})
	require.Len(t, actions, 1)
	cmd := actions[0]
	assert.Equal(t, `Add "teh" to Dictionary`, cmd.Title)
	assert.Equal(t, "spellesp.ignore_spelling", cmd.Command)
	assert.Equal(t, []string{"teh"}, cmd.Arguments)

	// the editor hands the command back verbatim
	payload, err := json.Marshal(cmd)
	require.NoError(t, err)
	var invocation struct {
		Command   string            `json:"command"`
		Arguments []json.RawMessage `json:"arguments"`
	}
	require.NoError(t, json.Unmarshal(payload, &invocation))

	outcome, err := d.Dispatch(invocation.Command, invocation.Arguments)
	require.NoError(t, err)
	assert.True(t, outcome.Added)
	first, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.JSONEq(t, `{"words":["teh"]}`, string(first))

	outcome, err = d.Dispatch(invocation.Command, invocation.Arguments)
	require.NoError(t, err)
	assert.False(t, outcome.Added)
	second, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))

	entries, err := j.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "test", entries[0].Source)
	assert.Equal(t, store.Path(), entries[0].Path)
}
