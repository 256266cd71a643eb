package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisableEmptyInputs(t *testing.T) {
	f := New("a", "b")
	f.Set("b", "x")

	DisableEmptyInputs(f)

	require.NotNil(t, f.Control("a"))
	require.NotNil(t, f.Control("b"))
	assert.True(t, f.Control("a").Disabled)
	assert.False(t, f.Control("b").Disabled)
}

func TestDisableEmptyInputsReenables(t *testing.T) {
	f := New("title")
	DisableEmptyInputs(f)
	assert.True(t, f.Control("title").Disabled)

	f.Set("title", "sky")
	DisableEmptyInputs(f)
	assert.False(t, f.Control("title").Disabled)
}

func TestDisableEmptyInputsWhitespaceIsNotEmpty(t *testing.T) {
	f := New("q")
	f.Set("q", " ")

	DisableEmptyInputs(f)

	assert.False(t, f.Control("q").Disabled)
}

func TestSetAddsUnknownControl(t *testing.T) {
	f := New()
	f.Set("extra", "1")

	require.Len(t, f.Controls(), 1)
	assert.Equal(t, "extra", f.Controls()[0].Name)
	assert.Nil(t, f.Control("missing"))
}

func TestEncodeSkipsDisabledAndKeepsOrder(t *testing.T) {
	f := New("title", "include_tags", "include_characters")
	f.Set("include_tags", "big sky")
	f.Set("title", "a&b")

	DisableEmptyInputs(f)

	assert.Equal(t, "title=a%26b&include_tags=big+sky", f.Encode())

	values := f.Values()
	assert.Equal(t, "big sky", values.Get("include_tags"))
	assert.False(t, values.Has("include_characters"))
}

func TestEncodeEmptyForm(t *testing.T) {
	f := New("title")
	DisableEmptyInputs(f)

	assert.Equal(t, "", f.Encode())
	assert.Empty(t, f.Values())
}
