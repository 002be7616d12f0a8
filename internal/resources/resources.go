// Package resources serves the localized strings and string arrays shown on
// the entry screen.
package resources

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"golang.org/x/text/language"
)

// String keys.
const (
	Today                  = "today"
	Yesterday              = "yesterday"
	WhatAreYouThankfulFor  = "what_are_you_thankful_for"
	WhatWereYouThankfulFor = "what_were_you_thankful_for"
	IAm                    = "iam"
	IWas                   = "iwas"
)

// Array keys.
const (
	Inspirations = "inspirations"
	Prompts      = "prompts"
)

// Provider looks up localized strings by symbolic key.
type Provider interface {
	String(key string) string
	Strings(key string) []string
}

//go:embed catalogs/*.toml
var catalogs embed.FS

var supported = []language.Tag{language.English, language.Spanish}

var matcher = language.NewMatcher(supported)

// Bundle is a Provider backed by an embedded catalog for one locale, with the
// English catalog as fallback.
type Bundle struct {
	locale   string
	v        *viper.Viper
	fallback *viper.Viper
}

// Load builds a Bundle for locale (a BCP 47 tag or POSIX locale such as
// en_US.UTF-8; empty means English). If overridePath names an existing TOML
// file, its keys are merged over the catalog.
func Load(locale, overridePath string) (*Bundle, error) {
	base := MatchLocale(locale)

	fallback, err := readCatalog("en")
	if err != nil {
		return nil, err
	}
	v, err := readCatalog(base)
	if err != nil {
		return nil, err
	}

	if overridePath != "" {
		if _, err := os.Stat(overridePath); err == nil {
			v.SetConfigFile(overridePath)
			if err := v.MergeInConfig(); err != nil {
				return nil, fmt.Errorf("reading string overrides %s: %w", overridePath, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("checking string overrides: %w", err)
		}
	}

	return &Bundle{locale: base, v: v, fallback: fallback}, nil
}

// MatchLocale maps a user locale onto the closest supported catalog and
// returns its base language code.
func MatchLocale(locale string) string {
	locale = strings.TrimSpace(locale)
	if i := strings.IndexAny(locale, ".@"); i >= 0 {
		locale = locale[:i]
	}
	locale = strings.ReplaceAll(locale, "_", "-")
	if locale == "" || locale == "C" || locale == "POSIX" {
		return "en"
	}

	tag, err := language.Parse(locale)
	if err != nil {
		return "en"
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return "en"
	}
	b, _ := supported[idx].Base()
	return b.String()
}

func readCatalog(base string) (*viper.Viper, error) {
	data, err := catalogs.ReadFile("catalogs/" + base + ".toml")
	if err != nil {
		return nil, fmt.Errorf("loading %s catalog: %w", base, err)
	}
	v := viper.New()
	v.SetConfigType("toml")
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("parsing %s catalog: %w", base, err)
	}
	return v, nil
}

// Locale returns the base language code of the loaded catalog.
func (b *Bundle) Locale() string {
	return b.locale
}

// String returns the localized string for key, falling back to English and
// then to the key itself.
func (b *Bundle) String(key string) string {
	if s := b.v.GetString(key); s != "" {
		return s
	}
	if s := b.fallback.GetString(key); s != "" {
		return s
	}
	return key
}

// Strings returns the localized array for key, falling back to English.
func (b *Bundle) Strings(key string) []string {
	if s := b.v.GetStringSlice(key); len(s) > 0 {
		return s
	}
	return b.fallback.GetStringSlice(key)
}

// Static is a Provider over fixed maps, handy for tests and embedding.
type Static struct {
	Values map[string]string
	Arrays map[string][]string
}

func (s Static) String(key string) string {
	if v, ok := s.Values[key]; ok {
		return v
	}
	return key
}

func (s Static) Strings(key string) []string {
	return s.Arrays[key]
}

var (
	_ Provider = (*Bundle)(nil)
	_ Provider = Static{}
)
