package feeder

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/vk/compilekit/internal/fsutil"
)

// UnknownName is the feeder name used when none is given.
const UnknownName = "<UNKNOWN>"

// ErrCodeNotFound is returned when a feeder has no code unit of the
// requested name or index.
var ErrCodeNotFound = errors.New("code not found")

// LoadError reports a code unit whose source could not be read.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("error reading the source file %q: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Feeder is an ordered list of named source units.
type Feeder interface {
	// Name is a display name. It is not used to address the feeder.
	Name() string
	// Base is the path or collection the units are found in.
	Base() string
	CodeCount() int
	// CodeName returns "" for an index out of range.
	CodeName(index int) string
	Code(index int) (*Code, error)
	CodeByName(name string) (*Code, error)
}

// Watchable is implemented by feeders backed by the file system. Paths lists
// what to watch for changes.
type Watchable interface {
	Paths() []string
}

// memory is a feeder over source text already in memory.
type memory struct {
	base  string
	name  string
	codes []*Code
	index map[string]int
}

func newMemory(base, name string, codes []*Code) *memory {
	m := &memory{base: base, name: name, codes: codes, index: make(map[string]int, len(codes))}
	for i, c := range codes {
		m.index[c.Name()] = i
	}
	return m
}

// FromString returns a feeder holding a single unit called codeName.
func FromString(feederName, codeName, source string) Feeder {
	if feederName == "" {
		feederName = UnknownName
	}
	return newMemory("", feederName, []*Code{NewCode(codeName, source)})
}

// FromStrings returns a feeder with one unit per map entry. Units are
// ordered by name.
func FromStrings(base, feederName string, sources map[string]string) Feeder {
	names := make([]string, 0, len(sources))
	for name := range sources {
		names = append(names, name)
	}
	sort.Strings(names)

	codes := make([]*Code, len(names))
	for i, name := range names {
		codes[i] = NewCode(name, sources[name])
	}
	return newMemory(base, feederName, codes)
}

func (m *memory) Name() string   { return m.name }
func (m *memory) Base() string   { return m.base }
func (m *memory) CodeCount() int { return len(m.codes) }

func (m *memory) CodeName(index int) string {
	if index < 0 || index >= len(m.codes) {
		return ""
	}
	return m.codes[index].Name()
}

func (m *memory) Code(index int) (*Code, error) {
	if index < 0 || index >= len(m.codes) {
		return nil, fmt.Errorf("index %d in %s: %w", index, m.name, ErrCodeNotFound)
	}
	return m.codes[index], nil
}

func (m *memory) CodeByName(name string) (*Code, error) {
	i, ok := m.index[name]
	if !ok {
		return nil, fmt.Errorf("%q in %s: %w", name, m.name, ErrCodeNotFound)
	}
	return m.codes[i], nil
}

// files is a feeder over files in one directory, loaded on first access.
type files struct {
	name  string
	dir   string
	names []string
	index map[string]int
	cache []*Code
}

func newFiles(name, dir string, names []string) *files {
	f := &files{name: name, dir: dir, names: names, index: make(map[string]int, len(names)), cache: make([]*Code, len(names))}
	for i, n := range names {
		f.index[n] = i
	}
	return f
}

// FromFile returns a feeder with one unit read lazily from path. The unit is
// named after the file.
func FromFile(path string) Feeder {
	return newFiles(path, filepath.Dir(path), []string{filepath.Base(path)})
}

// FromFolder returns a feeder with one unit per regular file in dir whose
// name ends with suffix. Subdirectories are not searched. Listing happens
// now; reading happens on first access to each unit.
func FromFolder(dir, suffix string) (Feeder, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid folder %q: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("invalid folder %q: not a directory", dir)
	}
	names, err := fsutil.FindFilesBySuffix(dir, suffix, false)
	if err != nil {
		return nil, fmt.Errorf("listing folder %q: %w", dir, err)
	}
	return newFiles(dir, dir, names), nil
}

func (f *files) Name() string   { return f.name }
func (f *files) Base() string   { return f.dir }
func (f *files) CodeCount() int { return len(f.names) }

func (f *files) CodeName(index int) string {
	if index < 0 || index >= len(f.names) {
		return ""
	}
	return f.names[index]
}

func (f *files) Code(index int) (*Code, error) {
	if index < 0 || index >= len(f.names) {
		return nil, fmt.Errorf("index %d in %s: %w", index, f.name, ErrCodeNotFound)
	}
	if c := f.cache[index]; c != nil {
		return c, nil
	}
	path := filepath.Join(f.dir, f.names[index])
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	c := NewCode(f.names[index], string(src))
	f.cache[index] = c
	return c, nil
}

func (f *files) CodeByName(name string) (*Code, error) {
	i, ok := f.index[name]
	if !ok {
		return nil, fmt.Errorf("%q in %s: %w", name, f.name, ErrCodeNotFound)
	}
	return f.Code(i)
}

// Paths returns the directory and every unit file.
func (f *files) Paths() []string {
	paths := []string{f.dir}
	for _, n := range f.names {
		paths = append(paths, filepath.Join(f.dir, n))
	}
	return paths
}

// Describe lists a feeder's name, unit count and unit names.
func Describe(f Feeder) string {
	s := fmt.Sprintf("feeder %s (%d) {\n", f.Name(), f.CodeCount())
	for i := 0; i < f.CodeCount(); i++ {
		s += "\t" + f.CodeName(i) + "\n"
	}
	return s + "}"
}
