package entry

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2023-01-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2023, 1, 1, 0, 0, 0, 0, time.Local), d)
}

func TestParseDateRejectsMalformed(t *testing.T) {
	for _, s := range []string{"not-a-date", "", "2023-13-01", "01/02/2023"} {
		_, err := ParseDate(s)
		require.Error(t, err, "input %q", s)
		assert.True(t, errors.Is(err, ErrInvalidDate), "input %q", s)
	}
}

func TestNormalizeDate(t *testing.T) {
	in := time.Date(2024, 1, 15, 14, 30, 45, 123, time.Local)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.Local), NormalizeDate(in))
	assert.True(t, SameDay(in, time.Date(2024, 1, 15, 23, 59, 0, 0, time.Local)))
	assert.False(t, SameDay(in, time.Date(2024, 1, 16, 0, 0, 0, 0, time.Local)))
}

func TestFormatLong(t *testing.T) {
	d := time.Date(2023, 1, 1, 0, 0, 0, 0, time.Local)
	assert.Equal(t, "Sunday, January 1, 2023", FormatLong(d))
	assert.Equal(t, "2023-01-01", FormatDate(d))
}

func TestDecapitalize(t *testing.T) {
	cases := map[string]string{
		"":            "",
		"Hello world": "hello world",
		"hello":       "hello",
		"ÉCOLE":       "éCOLE",
		"A":           "a",
		"1st place":   "1st place",
	}
	for in, want := range cases {
		assert.Equal(t, want, Decapitalize(in), "input %q", in)
	}
}

func TestValidateID(t *testing.T) {
	id, err := NewID()
	require.NoError(t, err)
	assert.NoError(t, ValidateID(id))
	assert.Error(t, ValidateID("ABC"))
}

func TestPreview(t *testing.T) {
	e := Entry{Content: "line one\nline two"}
	assert.Equal(t, "line one line two", e.Preview(80))
	assert.Equal(t, "line o...", e.Preview(9))
	assert.Equal(t, "..", e.Preview(2))
}

func TestPreviewCutsOnRuneBoundaries(t *testing.T) {
	e := Entry{Content: strings.Repeat("a", 56) + "¡Gracias por todo!"}
	got := e.Preview(60)
	assert.True(t, utf8.ValidString(got), "got %q", got)
	assert.Equal(t, strings.Repeat("a", 56)+"¡...", got)
	assert.Equal(t, 60, utf8.RuneCountInString(got))

	short := Entry{Content: "¡Sí!"}
	assert.Equal(t, "¡Sí!", short.Preview(4))
}

func TestEntryJSONUsesDateKey(t *testing.T) {
	e := New(time.Date(2024, 3, 9, 18, 0, 0, 0, time.Local), "sunshine")
	data, err := json.Marshal(e)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"content":"sunshine"`)
	assert.Equal(t, "2024-03-09", e.Key())
}
