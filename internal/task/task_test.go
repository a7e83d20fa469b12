package task

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/compilekit/internal/ref"
)

func noop(Invocation, []any) ([]any, error) { return nil, nil }

func TestNewEntry_Arity(t *testing.T) {
	tk := Func("pair", PerCode, []Slot{In[string]("a"), In[int]("b")}, []Slot{Out[int]("c")}, noop)

	testCases := []struct {
		name    string
		ins     []Binding
		outs    []Binding
		wantErr error
	}{
		{"exact", Names("a", "b"), Names("c"), nil},
		{"too few inputs", Names("a"), Names("c"), ErrArity},
		{"too many inputs", Names("a", "b", "x"), Names("c"), ErrArity},
		{"missing output", Names("a", "b"), nil, ErrArity},
		{"empty name", Names("a", ""), Names("c"), ErrEmptyBinding},
		{"absolute bindings", []Binding{BindRef(ref.Global("a")), Bind("b")}, Names("c"), nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			e, err := NewEntry(tk, tc.ins, tc.outs)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				assert.Nil(t, e)
				return
			}
			require.NoError(t, err)
			assert.Same(t, tk, e.Task())
			assert.Len(t, e.Inputs(), 2)
		})
	}
}

func TestNewEntry_NilTask(t *testing.T) {
	_, err := NewEntry(nil, nil, nil)
	assert.ErrorIs(t, err, ErrNilTask)
}

func TestMustEntry_Panics(t *testing.T) {
	tk := Func("one", Global, []Slot{Any("x")}, nil, noop)
	assert.Panics(t, func() { MustEntry(tk, nil, nil) })
	assert.NotPanics(t, func() { MustEntry(tk, Names("x"), nil) })
}

func TestEntry_CopiesBindings(t *testing.T) {
	tk := Func("one", Global, []Slot{Any("x")}, nil, noop)
	ins := Names("x")
	e := MustEntry(tk, ins, nil)
	ins[0] = Bind("changed")
	assert.Equal(t, "x", e.Inputs()[0].Name())
}

func TestParseBinding(t *testing.T) {
	testCases := []struct {
		in       string
		absolute bool
		want     string
		wantErr  bool
	}{
		{in: "len", want: "len"},
		{in: `data["opt"]`, absolute: true, want: `data["opt"]`},
		{in: `feeder[1].code["x"].data["len"]`, absolute: true, want: `feeder[1].code["x"].data["len"]`},
		{in: `feeder[1]`, wantErr: true},
		{in: `data[opt]`, wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			b, err := ParseBinding(tc.in)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			_, abs := b.Ref()
			assert.Equal(t, tc.absolute, abs)
			assert.Equal(t, tc.want, b.String())
		})
	}
}

func TestSlot_Accepts(t *testing.T) {
	testCases := []struct {
		name string
		slot Slot
		v    any
		want bool
	}{
		{"untyped takes anything", Any("x"), 3, true},
		{"nil always passes", In[int]("x"), nil, true},
		{"exact type", In[int]("x"), 3, true},
		{"wrong type", In[int]("x"), "3", false},
		{"interface slot", In[error]("x"), errors.New("e"), true},
		{"stringer slot rejects int", In[fmt.Stringer]("x"), 1, false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.slot.Accepts(tc.v))
		})
	}
}

func TestTypeOf(t *testing.T) {
	assert.Equal(t, reflect.TypeOf(""), TypeOf[string]())
	assert.Equal(t, reflect.Interface, TypeOf[error]().Kind())
}

func TestInDefault(t *testing.T) {
	s := InDefault("n", 7)
	assert.Equal(t, 7, s.Default)
	assert.Equal(t, reflect.TypeOf(0), s.Type)
}

func TestEntry_String(t *testing.T) {
	tk := Func("sum", Global, []Slot{Any("a"), Any("b")}, []Slot{Any("c")}, noop)
	e := MustEntry(tk, []Binding{Bind("a"), BindRef(ref.Global("b"))}, Names("c"))
	assert.Equal(t, `sum(a, data["b"]) -> (c)`, e.String())
}

func TestScope(t *testing.T) {
	assert.Equal(t, ref.ScopeGlobal, Global.DataScope())
	assert.Equal(t, ref.ScopeFeeder, PerFeeder.DataScope())
	assert.Equal(t, ref.ScopeCode, PerCode.DataScope())
	assert.Equal(t, "per-code", PerCode.String())
}

func TestFunc_NilBodyPanics(t *testing.T) {
	assert.Panics(t, func() { Func("x", Global, nil, nil, nil) })
}
