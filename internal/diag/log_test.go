package diag

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/hashicorp/hcl/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/compilekit/internal/ref"
)

// fixedPositioner maps every offset to (1, offset+1).
type fixedPositioner struct{}

func (fixedPositioner) PositionOf(offset int) (int, int) { return 1, offset + 1 }

type mapLocator map[ref.CodeRef]Positioner

func (m mapLocator) Locate(c ref.CodeRef) (Positioner, bool) {
	p, ok := m[c]
	return p, ok
}

func TestLog_FatalThenWarning(t *testing.T) {
	l := NewLog(nil)
	l.Fatal("boom", nil)
	l.Warning("careful", nil)

	assert.True(t, l.HasFatalError())
	assert.True(t, l.HasError())
	require.Equal(t, 2, l.Len())

	kinds := []Kind{}
	for _, m := range l.Messages() {
		kinds = append(kinds, m.Kind)
	}
	assert.Equal(t, []Kind{KindFatal, KindWarning}, kinds)
}

func TestLog_Counters(t *testing.T) {
	testCases := []struct {
		name       string
		report     func(l *Log)
		wantErrors int
		wantFatals int
	}{
		{"empty", func(l *Log) {}, 0, 0},
		{"info and warning do not count", func(l *Log) { l.Info("a"); l.Warning("b", nil) }, 0, 0},
		{"error", func(l *Log) { l.Error("a", nil) }, 1, 0},
		{"fatal counts twice", func(l *Log) { l.Fatal("a", nil) }, 1, 1},
		{"mixed", func(l *Log) { l.Error("a", nil); l.Fatal("b", nil); l.Error("c", nil) }, 3, 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var l Log
			tc.report(&l)
			assert.Equal(t, tc.wantErrors, l.ErrorCount())
			assert.Equal(t, tc.wantFatals, l.FatalCount())
			assert.Equal(t, tc.wantErrors != 0, l.HasError())
			assert.Equal(t, tc.wantFatals != 0, l.HasFatalError())
		})
	}
}

func TestLog_ReportResolvesOriginEagerly(t *testing.T) {
	x := ref.Code(0, "x")
	loc := mapLocator{x: fixedPositioner{}}
	l := NewLog(loc)

	m := l.Report(KindError, "bad token", nil, &x, 4)
	require.NotNil(t, m.Origin)
	want := Origin{Code: x, Offset: 4, Line: 1, Column: 5}
	if diff := cmp.Diff(want, *m.Origin); diff != "" {
		t.Errorf("origin mismatch (-want +got):\n%s", diff)
	}

	// Later changes to the locator do not affect recorded messages.
	delete(loc, x)
	got, ok := l.At(0)
	require.True(t, ok)
	assert.Equal(t, 5, got.Origin.Column)
}

func TestLog_UnlocatableOriginIsStillRecorded(t *testing.T) {
	l := NewLog(mapLocator{})
	y := ref.Code(0, "y")

	m := l.Report(KindWarning, "odd", nil, &y, 3)
	require.NotNil(t, m.Origin)
	assert.False(t, m.Origin.Resolved())
	assert.Equal(t, 3, m.Origin.Offset)
	assert.Equal(t, 1, l.Len())
}

func TestLog_At(t *testing.T) {
	l := NewLog(nil)
	l.Info("only")
	_, ok := l.At(1)
	assert.False(t, ok)
	_, ok = l.At(-1)
	assert.False(t, ok)
	m, ok := l.At(0)
	require.True(t, ok)
	assert.Equal(t, "only", m.Text)
}

func TestLog_MessagesIsACopy(t *testing.T) {
	l := NewLog(nil)
	l.Info("a")
	msgs := l.Messages()
	msgs[0].Text = "changed"
	m, _ := l.At(0)
	assert.Equal(t, "a", m.Text)
}

func TestLog_String(t *testing.T) {
	l := NewLog(nil)
	assert.Equal(t, "0 message(s)\n", l.String())

	l.Warning("w", nil)
	l.Error("e", errors.New("root cause"))
	assert.Equal(t,
		"2 message(s):\nMessage #0: Warning: w\nMessage #1: Error: e\nCaused by: root cause",
		l.String())
}

func TestMessage_JSON(t *testing.T) {
	x := ref.Code(1, "x")
	l := NewLog(mapLocator{x: fixedPositioner{}})
	m := l.Report(KindFatal, "stop", errors.New("why"), &x, 0)

	b, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"kind":"fatal","text":"stop","cause":"why","origin":{"code":"feeder[1].code[\"x\"]","offset":0,"line":1,"column":1}}`,
		string(b))
}

func TestKind_TextRoundTrip(t *testing.T) {
	for _, k := range []Kind{KindMessage, KindWarning, KindError, KindFatal} {
		b, err := k.MarshalText()
		require.NoError(t, err)
		var got Kind
		require.NoError(t, got.UnmarshalText(b))
		assert.Equal(t, k, got)
	}
	var k Kind
	assert.Error(t, k.UnmarshalText([]byte("loud")))
}

func TestRender(t *testing.T) {
	x := ref.Code(0, "x")
	l := NewLog(mapLocator{x: fixedPositioner{}})
	l.Report(KindError, "left-over token", nil, &x, 2)
	l.Info("done")

	var diags hcl.Diagnostics
	for _, m := range l.Messages() {
		diags = append(diags, ToHCL(m, "x.src"))
	}
	require.Len(t, diags, 2)
	assert.Equal(t, hcl.DiagError, diags[0].Severity)
	require.NotNil(t, diags[0].Subject)
	assert.Equal(t, 3, diags[0].Subject.Start.Column)
	assert.Equal(t, hcl.DiagWarning, diags[1].Severity)
	assert.Nil(t, diags[1].Subject)

	files := map[string]*hcl.File{"x.src": {Bytes: []byte("abcdef")}}
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, diags, files, 80, false))
	out := buf.String()
	assert.Contains(t, out, "left-over token")
	assert.Contains(t, out, "x.src line 1")
	assert.Contains(t, out, "Message: done")
}
