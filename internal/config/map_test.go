package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapAddGet(t *testing.T) {
	m := NewMap()
	require.NoError(t, m.Add("window.width", Int(640)))

	e, ok := m.Get("window.width")
	require.True(t, ok)
	assert.Equal(t, Int(640), e.Value)
	assert.Equal(t, KindInt, e.Value.Kind())
}

func TestMapUpdate(t *testing.T) {
	m := NewMap()
	require.NoError(t, m.Add("title", String("old")))
	require.NoError(t, m.Update("title", String("new")))

	e, ok := m.Get("title")
	require.True(t, ok)
	assert.Equal(t, String("new"), e.Value)
	assert.NotEqual(t, String("old"), e.Value)

	err := m.Update("missing", Bool(true))
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 1, m.Len(), "update never inserts")
}

func TestMapGetMissing(t *testing.T) {
	m := NewMap()
	e, ok := m.Get("nope")
	assert.False(t, ok)
	assert.Nil(t, e)

	var nilMap *Map
	assert.NotPanics(t, func() {
		_, ok = nilMap.Get("nope")
	})
	assert.False(t, ok)
}

func TestMapAddRejectsDuplicates(t *testing.T) {
	m := NewMap()
	require.NoError(t, m.Add("fps", Int(60)))

	err := m.Add("fps", Int(30))
	assert.ErrorIs(t, err, ErrDuplicateKey)
	assert.Equal(t, 60, m.Int("fps", 0), "first value kept")
	assert.Equal(t, 1, m.Len())
}

func TestMapAddRejectsInvalid(t *testing.T) {
	m := NewMap()
	assert.ErrorIs(t, m.Add("", Int(1)), ErrEmptyKey)
	assert.ErrorIs(t, m.Add("k", nil), ErrNilValue)
	assert.Zero(t, m.Len())
}

func TestEntrySetRetags(t *testing.T) {
	m := NewMap()
	require.NoError(t, m.Add("value", String("text")))

	e, _ := m.Get("value")
	require.NoError(t, e.Set(Float(2.5)))

	got, _ := m.Get("value")
	assert.Equal(t, KindFloat, got.Value.Kind())
	assert.Equal(t, 2.5, m.Float("value", 0))
	assert.ErrorIs(t, e.Set(nil), ErrNilValue)
}

func TestEntryPointerSurvivesGrowth(t *testing.T) {
	m := NewMap()
	require.NoError(t, m.Add("first", Int(1)))
	first, _ := m.Get("first")

	for i := range 100 {
		require.NoError(t, m.Add(string(rune('a'+i%26))+string(rune('0'+i/26)), Int(int64(i))))
	}

	require.NoError(t, first.Set(Int(99)))
	assert.Equal(t, 99, m.Int("first", 0))
}

func TestMapSet(t *testing.T) {
	m := NewMap()
	require.NoError(t, m.Set("vsync", Bool(false)))
	require.NoError(t, m.Set("vsync", Bool(true)))

	assert.Equal(t, 1, m.Len())
	assert.True(t, m.Bool("vsync", false))
}

func TestTypedGetters(t *testing.T) {
	m := NewMap()
	require.NoError(t, m.Add("b", Bool(true)))
	require.NoError(t, m.Add("i", Int(7)))
	require.NoError(t, m.Add("f", Float(0.25)))
	require.NoError(t, m.Add("s", String("hi")))

	assert.True(t, m.Bool("b", false))
	assert.Equal(t, 7, m.Int("i", 0))
	assert.Equal(t, 0.25, m.Float("f", 0))
	assert.Equal(t, 7.0, m.Float("i", 0), "ints widen to float")
	assert.Equal(t, "hi", m.String("s", ""))

	// Wrong kind or missing key returns the default.
	assert.Equal(t, 3, m.Int("s", 3))
	assert.Equal(t, "def", m.String("missing", "def"))
	assert.False(t, m.Bool("i", false))
}

func TestMapDestroy(t *testing.T) {
	m := NewMap()
	require.NoError(t, m.Add("s", String("payload")))
	require.NoError(t, m.Add("i", Int(1)))

	m.Destroy()
	assert.Zero(t, m.Len())
	_, ok := m.Get("s")
	assert.False(t, ok)

	assert.NotPanics(t, m.Destroy, "second destroy")
	var nilMap *Map
	assert.NotPanics(t, nilMap.Destroy, "nil destroy")
}

func TestKeysAndEntriesKeepOrder(t *testing.T) {
	m := NewMap()
	for _, k := range []string{"z", "a", "m"} {
		require.NoError(t, m.Add(k, Bool(true)))
	}

	assert.Equal(t, []string{"z", "a", "m"}, m.Keys())

	entries := m.Entries()
	entries[0].Value = Bool(false)
	assert.True(t, m.Bool("z", false), "Entries returns copies")
}

func TestValueStrings(t *testing.T) {
	assert.Equal(t, "true", Bool(true).String())
	assert.Equal(t, "-12", Int(-12).String())
	assert.Equal(t, "2.0", Float(2).String())
	assert.Equal(t, "0.125", Float(0.125).String())
	assert.Equal(t, "1e+21", Float(1e21).String())
	assert.Equal(t, "raw", String("raw").String())
}

func TestParseValue(t *testing.T) {
	v, err := ParseValue(KindFloat, "2.0")
	require.NoError(t, err)
	assert.Equal(t, Float(2), v)

	_, err = ParseValue(KindInt, "2.5")
	assert.ErrorIs(t, err, ErrMalformed)

	_, err = ParseKind("complex")
	assert.ErrorIs(t, err, ErrMalformed)
}
