package feeder

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCode_Position(t *testing.T) {
	c := NewCode("main", "ab\ncd\n\nxyz")

	testCases := []struct {
		name   string
		offset int
		line   int
		column int
	}{
		{"start", 0, 1, 1},
		{"middle of first line", 1, 1, 2},
		{"newline belongs to its line", 2, 1, 3},
		{"second line", 3, 2, 1},
		{"empty line", 6, 3, 1},
		{"last line", 9, 4, 3},
		{"end of source", 10, 4, 4},
		{"negative is clamped", -5, 1, 1},
		{"past end is clamped", 100, 4, 4},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			line, column := c.PositionOf(tc.offset)
			assert.Equal(t, tc.line, line, "line")
			assert.Equal(t, tc.column, column, "column")
		})
	}
}

func TestCode_ColumnCountsGraphemes(t *testing.T) {
	// e followed by a combining acute accent is two runes but one column.
	src := "e\u0301x"
	c := NewCode("u", src)
	assert.Equal(t, 2, c.ColumnOf(len("e\u0301")))
	assert.Equal(t, 3, c.ColumnOf(len(src)))
}

func TestCode_Range(t *testing.T) {
	c := NewCode("u", "a\nbc")
	r := c.Range("u.src", 2, 4)
	assert.Equal(t, "u.src", r.Filename)
	assert.Equal(t, 2, r.Start.Line)
	assert.Equal(t, 1, r.Start.Column)
	assert.Equal(t, 2, r.Start.Byte)
	assert.Equal(t, 3, r.End.Column)

	r = c.Range("u.src", 3, 1)
	assert.Equal(t, r.Start, r.End, "inverted ranges collapse")
}

func TestFromString(t *testing.T) {
	f := FromString("", "main", "x = 1")
	assert.Equal(t, UnknownName, f.Name())
	require.Equal(t, 1, f.CodeCount())
	assert.Equal(t, "main", f.CodeName(0))
	assert.Empty(t, f.CodeName(1))

	c, err := f.CodeByName("main")
	require.NoError(t, err)
	assert.Equal(t, "x = 1", c.Source())

	_, err = f.CodeByName("other")
	assert.ErrorIs(t, err, ErrCodeNotFound)
	_, err = f.Code(1)
	assert.ErrorIs(t, err, ErrCodeNotFound)
}

func TestFromStrings_SortedByName(t *testing.T) {
	f := FromStrings("mem", "units", map[string]string{"y": "yy", "x": "x", "a": ""})
	assert.Equal(t, "mem", f.Base())
	require.Equal(t, 3, f.CodeCount())
	assert.Equal(t, []string{"a", "x", "y"}, []string{f.CodeName(0), f.CodeName(1), f.CodeName(2)})

	c, err := f.Code(2)
	require.NoError(t, err)
	assert.Equal(t, "yy", c.Source())
}

func TestFromFile_LoadsLazily(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.src")

	// The feeder can be built before the file exists.
	f := FromFile(path)
	assert.Equal(t, "main.src", f.CodeName(0))

	_, err := f.Code(0)
	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, path, loadErr.Path)
	assert.ErrorIs(t, err, os.ErrNotExist)

	require.NoError(t, os.WriteFile(path, []byte("v1"), 0o644))
	c, err := f.CodeByName("main.src")
	require.NoError(t, err)
	assert.Equal(t, "v1", c.Source())

	// Once loaded, the unit is cached.
	require.NoError(t, os.WriteFile(path, []byte("v2"), 0o644))
	c, err = f.Code(0)
	require.NoError(t, err)
	assert.Equal(t, "v1", c.Source())
}

func TestFromFolder(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.src"), []byte("bb"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.src"), []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "skip.txt"), []byte("-"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.src"), 0o755))

	f, err := FromFolder(dir, ".src")
	require.NoError(t, err)
	require.Equal(t, 2, f.CodeCount())
	assert.Equal(t, "a.src", f.CodeName(0))
	assert.Equal(t, "b.src", f.CodeName(1))

	c, err := f.CodeByName("b.src")
	require.NoError(t, err)
	assert.Equal(t, "bb", c.Source())

	w, ok := f.(Watchable)
	require.True(t, ok)
	assert.Contains(t, w.Paths(), dir)

	t.Run("not a directory", func(t *testing.T) {
		_, err := FromFolder(filepath.Join(dir, "a.src"), ".src")
		assert.Error(t, err)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := FromFolder(filepath.Join(dir, "nope"), ".src")
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestDescribe(t *testing.T) {
	f := FromStrings("", "units", map[string]string{"x": "", "y": ""})
	assert.Equal(t, "feeder units (2) {\n\tx\n\ty\n}", Describe(f))
}
