package entry

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	idAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	idLength   = 8

	// DateLayout is the key form of an entry date.
	DateLayout = "2006-01-02"
	// LongLayout is the long-form date shown when a date is neither today nor yesterday.
	LongLayout = "Monday, January 2, 2006"
)

var idPattern = regexp.MustCompile(`^[a-z0-9]{8}$`)

// ErrInvalidDate is returned when a date string cannot be parsed.
var ErrInvalidDate = errors.New("invalid entry date")

// Entry is the gratitude entry for a single calendar date.
type Entry struct {
	ID        string    `json:"id"`
	Date      time.Time `json:"date"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// New builds an entry for date with the given content. ID and timestamps are
// assigned by the repository on upsert.
func New(date time.Time, content string) Entry {
	return Entry{Date: NormalizeDate(date), Content: content}
}

// NewID generates a new nanoid for an entry.
func NewID() (string, error) {
	return gonanoid.Generate(idAlphabet, idLength)
}

// ValidateID checks whether an ID matches the expected pattern.
func ValidateID(id string) error {
	if !idPattern.MatchString(id) {
		return fmt.Errorf("invalid entry ID: %q (must be 8 lowercase alphanumeric characters)", id)
	}
	return nil
}

// ParseDate parses a YYYY-MM-DD date string in the local timezone.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: %v", ErrInvalidDate, s, err)
	}
	return t, nil
}

// NormalizeDate truncates t to midnight in the local timezone.
func NormalizeDate(t time.Time) time.Time {
	year, month, day := t.Local().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.Local)
}

// SameDay reports whether a and b fall on the same local calendar date.
func SameDay(a, b time.Time) bool {
	return NormalizeDate(a).Equal(NormalizeDate(b))
}

// FormatDate returns the key form of t (2006-01-02).
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// FormatLong returns the long-form rendering of t.
func FormatLong(t time.Time) string {
	return t.Format(LongLayout)
}

// Decapitalize lower-cases the first character of s and leaves the rest untouched.
func Decapitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}

// Key returns the storage key of the entry.
func (e *Entry) Key() string {
	return FormatDate(e.Date)
}

// Preview returns a truncated preview of the entry content.
func (e *Entry) Preview(maxLen int) string {
	content := strings.ReplaceAll(e.Content, "\n", " ")
	if utf8.RuneCountInString(content) <= maxLen {
		return content
	}
	if maxLen <= 3 {
		return strings.Repeat(".", max(maxLen, 0))
	}
	runes := []rune(content)
	return string(runes[:maxLen-3]) + "..."
}
