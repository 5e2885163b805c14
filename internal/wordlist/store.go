// Package wordlist maintains the accepted-words document (.cspell.json) of a project.
package wordlist

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// DefaultFileName is the word-list document looked up in the base directory.
const DefaultFileName = ".cspell.json"

const (
	wordsField = "words"
	// appends to the end of the words array
	wordsAppendPath = "words.-1"

	defaultPerm os.FileMode = 0o644
)

// Store reads and updates one word-list document. It holds no state between calls
// besides the document location.
type Store struct {
	dir  string
	file string
}

// Option customizes a Store.
type Option func(*Store)

// WithFileName overrides the document name relative to the base directory.
func WithFileName(name string) Option {
	return func(s *Store) {
		if name != "" {
			s.file = name
		}
	}
}

// New returns a store for the document inside dir.
func New(dir string, opts ...Option) *Store {
	s := &Store{dir: dir, file: DefaultFileName}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the location of the document.
func (s *Store) Path() string {
	if filepath.IsAbs(s.file) {
		return s.file
	}
	return filepath.Join(s.dir, s.file)
}

// ApplyWord appends word to the document's "words" array unless an identical entry
// already exists. Other fields and their order are preserved. added reports whether
// the document changed; an unchanged document is not rewritten.
func (s *Store) ApplyWord(word string) (added bool, err error) {
	path := resolveLink(s.Path())
	doc, perm, unreadable := load(path)
	if err := validate(path, doc); err != nil {
		return false, err
	}
	updated, added, err := insert(doc, word)
	if err != nil {
		return false, newError(KindEncodeFailed, path, err, "insert %q: %v", word, err)
	}
	if !added {
		return false, nil
	}
	if unreadable {
		// an existing document is only replaced when its own permissions allow writing
		if err := checkWritable(path); err != nil {
			return false, newError(KindIOFailed, path, err, "%v", err)
		}
	}
	if err := writeAtomic(path, pretty.Pretty(updated), perm); err != nil {
		return false, newError(KindIOFailed, path, err, "%v", err)
	}
	return true, nil
}

// Words returns the string entries of the "words" array in document order.
// A missing or unreadable document yields an empty list.
func (s *Store) Words() ([]string, error) {
	path := resolveLink(s.Path())
	doc, _, _ := load(path)
	if err := validate(path, doc); err != nil {
		return nil, err
	}
	out := make([]string, 0)
	gjson.GetBytes(doc, wordsField).ForEach(func(_, value gjson.Result) bool {
		if value.Type == gjson.String {
			out = append(out, value.Str)
		}
		return true
	})
	return out, nil
}

// load reads the document, falling back to an empty object when the file is
// absent or unreadable. unreadable is set when the file exists but could not be read.
func load(path string) (doc []byte, perm os.FileMode, unreadable bool) {
	perm = defaultPerm
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return []byte("{}"), perm, !errors.Is(err, fs.ErrNotExist)
	}
	return data, perm, false
}

func checkWritable(path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return err
	}
	return f.Close()
}

// resolveLink follows a symlinked document so the rename replaces its target
// rather than the link. A dangling link resolves to the file it names.
func resolveLink(path string) string {
	info, err := os.Lstat(path)
	if err != nil || info.Mode()&os.ModeSymlink == 0 {
		return path
	}
	if target, err := filepath.EvalSymlinks(path); err == nil {
		return target
	}
	target, err := os.Readlink(path)
	if err != nil {
		return path
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(path), target)
	}
	return target
}

func validate(path string, doc []byte) error {
	var raw json.RawMessage
	if err := json.Unmarshal(doc, &raw); err != nil {
		return newError(KindMalformed, path, err, "%v", err)
	}
	root := gjson.ParseBytes(doc)
	if !root.IsObject() {
		return newError(KindMalformed, path, nil, "document root is %s, want object", describe(root))
	}
	if words := root.Get(wordsField); words.Exists() && !words.IsArray() {
		return newError(KindMalformed, path, nil, "%q is %s, want array", wordsField, describe(words))
	}
	return nil
}

func describe(r gjson.Result) string {
	switch {
	case r.IsObject():
		return "an object"
	case r.IsArray():
		return "an array"
	default:
		return strings.ToLower(r.Type.String())
	}
}

func insert(doc []byte, word string) ([]byte, bool, error) {
	if word == "" {
		return nil, false, errors.New("empty word")
	}
	words := gjson.GetBytes(doc, wordsField)
	if !words.Exists() {
		out, err := sjson.SetBytes(doc, wordsField, []string{word})
		return out, err == nil, err
	}
	present := false
	words.ForEach(func(_, value gjson.Result) bool {
		if value.Type == gjson.String && value.Str == word {
			present = true
			return false
		}
		return true
	})
	if present {
		return doc, false, nil
	}
	out, err := sjson.SetBytes(doc, wordsAppendPath, word)
	return out, err == nil, err
}

// writeAtomic replaces path with data through a temporary file in the same directory.
func writeAtomic(path string, data []byte, perm os.FileMode) (err error) {
	f, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmp)
		}
	}()
	if _, err = f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	if err = f.Sync(); err != nil {
		_ = f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmp, perm); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
