// Package journal keeps a bounded history of accepted words on disk.
package journal

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"
)

// bump when the on-disk layout changes; older files are discarded
const schemaVersion uint16 = 1

// DefaultLimit bounds the number of retained entries.
const DefaultLimit = 500

const fileName = "journal.mp"

// Entry records one accepted word.
type Entry struct {
	ID     string    `msgpack:"id"`
	Word   string    `msgpack:"word"`
	Path   string    `msgpack:"path"`
	Source string    `msgpack:"source"`
	Added  bool      `msgpack:"added"`
	At     time.Time `msgpack:"at"`
}

type payload struct {
	Schema  uint16  `msgpack:"schema"`
	Entries []Entry `msgpack:"entries"`
}

// Journal is safe for concurrent use within one process.
type Journal struct {
	mu     sync.Mutex
	path   string
	limit  int
	source string
	now    func() time.Time
}

// Option customizes a Journal.
type Option func(*Journal)

// WithLimit sets the number of retained entries; values <= 0 keep the default.
func WithLimit(n int) Option {
	return func(j *Journal) {
		if n > 0 {
			j.limit = n
		}
	}
}

// WithSource tags recorded entries with the component that accepted the word.
func WithSource(source string) Option {
	return func(j *Journal) { j.source = source }
}

// New returns a journal stored at path.
func New(path string, opts ...Option) *Journal {
	j := &Journal{
		path:  path,
		limit: DefaultLimit,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// DefaultPath returns the journal location under the user's state directory.
func DefaultPath(app string) (string, error) {
	base := os.Getenv("XDG_STATE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(base, app, fileName), nil
}

// Path returns the journal file location.
func (j *Journal) Path() string { return j.path }

// RecordWord appends an entry for word accepted into the word list at path.
func (j *Journal) RecordWord(word, path string, added bool) error {
	return j.Record(Entry{Word: word, Path: path, Added: added})
}

// Record appends e, filling ID, Source and At when unset. The oldest entries are
// dropped beyond the limit. An unreadable journal is replaced.
func (j *Journal) Record(e Entry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Source == "" {
		e.Source = j.source
	}
	if e.At.IsZero() {
		e.At = j.now().UTC()
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	entries, err := j.read()
	if err != nil {
		entries = nil
	}
	entries = append(entries, e)
	if over := len(entries) - j.limit; over > 0 {
		entries = entries[over:]
	}
	return j.write(entries)
}

// Entries returns the recorded entries, oldest first. A missing journal is empty.
func (j *Journal) Entries() ([]Entry, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.read()
}

func (j *Journal) read() ([]Entry, error) {
	f, err := os.Open(j.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var p payload
	if err := msgpack.NewDecoder(f).Decode(&p); err != nil {
		return nil, fmt.Errorf("journal %s: %w", j.path, err)
	}
	if p.Schema != schemaVersion {
		return nil, nil
	}
	return p.Entries, nil
}

func (j *Journal) write(entries []Entry) error {
	dir := filepath.Dir(j.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if err := msgpack.NewEncoder(f).Encode(payload{Schema: schemaVersion, Entries: entries}); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, j.path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}
