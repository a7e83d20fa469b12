package session

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/compilekit/internal/diag"
	"github.com/vk/compilekit/internal/feeder"
	"github.com/vk/compilekit/internal/ref"
)

func twoFeeders() []feeder.Feeder {
	return []feeder.Feeder{
		feeder.FromStrings("src", "first", map[string]string{"x": "xx", "y": "yyy"}),
		feeder.FromString("second", "z", "z\nzz"),
	}
}

func TestNew_SeedsWellKnownData(t *testing.T) {
	feeders := twoFeeders()
	s := New(feeders...)

	require.Equal(t, 2, s.FeederCount())
	assert.Equal(t, 2, s.CodeCount(0))
	assert.Equal(t, 1, s.CodeCount(1))
	assert.False(t, s.HasError())

	f, ok := s.Feeder(1)
	require.True(t, ok)
	assert.Same(t, feeders[1], f)

	src, ok := s.Source(ref.Code(0, "y"))
	require.True(t, ok)
	assert.Equal(t, "yyy", src)

	code, ok := s.Code(ref.Code(1, "z"))
	require.True(t, ok)
	assert.Equal(t, "z", code.Name())

	assert.True(t, s.Contains(ref.OnFeeder(ref.Feeder(0), DataFeeder)))
	assert.True(t, s.Contains(ref.OnCode(ref.Code(0, "x"), DataCode)))
	assert.NotEqual(t, New().ID(), s.ID())
}

func TestNew_LoadFailureIsFatal(t *testing.T) {
	missing := feeder.FromFile(filepath.Join(t.TempDir(), "missing.src"))
	s := New(missing)

	require.True(t, s.HasFatalError())
	m, ok := s.At(0)
	require.True(t, ok)
	var loadErr *feeder.LoadError
	assert.ErrorAs(t, m.Cause, &loadErr)
	assert.False(t, s.Contains(ref.OnCode(ref.Code(0, "missing.src"), DataSource)))
}

func TestNew_NilFeeder(t *testing.T) {
	s := New(nil, feeder.FromString("f", "a", ""))
	assert.Equal(t, 2, s.FeederCount())
	assert.Zero(t, s.CodeCount(0))
	_, ok := s.Feeder(0)
	assert.False(t, ok)
}

func TestCursor_Feeders(t *testing.T) {
	s := New(twoFeeders()...)

	var visited []int
	for ok := s.StartFeeder(); ok; ok = s.NextFeeder() {
		f, ok := s.CurrentFeeder()
		require.True(t, ok)
		visited = append(visited, f.Index)
		_, inCode := s.CurrentCode()
		assert.False(t, inCode)
	}
	assert.Equal(t, []int{0, 1}, visited)

	_, ok := s.CurrentFeeder()
	assert.False(t, ok, "cursor is cleared when exhausted")
	assert.False(t, s.NextFeeder())
}

func TestCursor_Codes(t *testing.T) {
	s := New(
		feeder.FromStrings("", "a", map[string]string{"x": "", "y": ""}),
		feeder.FromStrings("", "empty", nil),
		feeder.FromString("c", "z", ""),
	)

	var visited []ref.CodeRef
	for ok := s.StartCode(); ok; ok = s.NextCode() {
		c, ok := s.CurrentCode()
		require.True(t, ok)
		f, ok := s.CurrentFeeder()
		require.True(t, ok)
		assert.Equal(t, c.Feeder, f, "current feeder follows the code")
		visited = append(visited, c)
	}
	assert.Equal(t, []ref.CodeRef{ref.Code(0, "x"), ref.Code(0, "y"), ref.Code(2, "z")}, visited)
}

func TestCursor_Empty(t *testing.T) {
	s := New()
	assert.False(t, s.StartFeeder())
	assert.False(t, s.StartCode())

	s = New(feeder.FromStrings("", "empty", nil))
	assert.True(t, s.StartFeeder())
	assert.False(t, s.StartCode())
}

func TestCursor_Seek(t *testing.T) {
	s := New(
		feeder.FromStrings("", "a", map[string]string{"x": "", "y": ""}),
		feeder.FromStrings("", "empty", nil),
	)

	require.True(t, s.SeekCode(0, 1))
	c, ok := s.CurrentCode()
	require.True(t, ok)
	assert.Equal(t, ref.Code(0, "y"), c)

	require.True(t, s.SeekFeeder(1))
	f, ok := s.CurrentFeeder()
	require.True(t, ok)
	assert.Equal(t, 1, f.Index)
	_, ok = s.CurrentCode()
	assert.False(t, ok, "seeking a feeder clears the code")

	assert.False(t, s.SeekCode(1, 0))
	_, ok = s.CurrentFeeder()
	assert.False(t, ok, "a failed seek leaves the cursor unset")
	assert.False(t, s.SeekFeeder(2))
	assert.False(t, s.SeekFeeder(-1))
}

func TestStoppedAt(t *testing.T) {
	s := New()
	_, ok := s.StoppedAt()
	assert.False(t, ok)

	s.Stop(3)
	i, ok := s.StoppedAt()
	assert.True(t, ok)
	assert.Equal(t, 3, i)

	_, ok = s.Linked().StoppedAt()
	assert.False(t, ok, "a linked session has its own run state")
}

func TestReportAt(t *testing.T) {
	s := New(feeder.FromString("f", "u", "ab\ncd"))

	m := s.ReportAt(diag.KindWarning, "no cursor", nil, 3)
	assert.Nil(t, m.Origin)

	require.True(t, s.StartCode())
	m = s.ReportAt(diag.KindError, "here", nil, 4)
	require.NotNil(t, m.Origin)
	assert.Equal(t, ref.Code(0, "u"), m.Origin.Code)
	assert.Equal(t, 2, m.Origin.Line)
	assert.Equal(t, 2, m.Origin.Column)
	assert.Equal(t, 1, s.ErrorCount())
}

func TestLinked_SharesData(t *testing.T) {
	s := New(twoFeeders()...)
	l := s.Linked()

	_, err := l.SetCodeData(ref.Code(0, "x"), "len", 2)
	require.NoError(t, err)
	v, ok := s.GetCodeData(ref.Code(0, "x"), "len")
	require.True(t, ok)
	assert.Equal(t, 2, v)

	l.Fatal("only in the linked log", nil)
	assert.False(t, s.HasFatalError(), "logs are not shared")
}

func TestDerived_IsIndependent(t *testing.T) {
	s := New(twoFeeders()...)
	s.SetArbitrary("opt", 1)
	d := s.Derived()

	assert.Equal(t, s.FeederCount(), d.FeederCount())
	src, ok := d.Source(ref.Code(1, "z"))
	require.True(t, ok, "derived sessions are seeded")
	assert.Equal(t, "z\nzz", src)
	assert.False(t, d.Contains(ref.Global("opt")))

	_, err := d.SetCodeData(ref.Code(0, "x"), DataSource, "changed")
	require.NoError(t, err)
	src, _ = s.Source(ref.Code(0, "x"))
	assert.Equal(t, "xx", src)
}

func TestFilename(t *testing.T) {
	s := New(twoFeeders()...)
	assert.Equal(t, filepath.Join("src", "x"), s.Filename(ref.Code(0, "x")))
	assert.Equal(t, "z", s.Filename(ref.Code(1, "z")))
}

func TestWriteDiagnostics(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.src"), []byte("let x = ;\n"), 0o644))
	f, err := feeder.FromFolder(dir, ".src")
	require.NoError(t, err)

	s := New(f)
	require.True(t, s.StartCode())
	s.ReportAt(diag.KindError, "unexpected token", nil, 8)
	s.Rewind()

	var buf bytes.Buffer
	require.NoError(t, s.WriteDiagnostics(&buf, 0, false))
	out := buf.String()
	assert.Contains(t, out, "unexpected token")
	assert.Contains(t, out, "main.src line 1")
	assert.Contains(t, out, "let x = ;")
}
