package content

import (
	"errors"
	"fmt"
	"sort"

	"golang.org/x/text/language"
)

var ErrUnknownLocale = errors.New("unknown locale")

// Provider hands out the bundle to render for a request.
type Provider interface {
	// Match resolves a locale preference (a tag such as "fr" or a full
	// Accept-Language header value) to one of Locales. An empty or
	// unparseable preference resolves to the default locale.
	Match(pref string) string
	// Bundle returns the bundle for a locale returned by Match. Unknown
	// locales get the default bundle.
	Bundle(locale string) *Bundle
	Locales() []string
}

// StaticBundle serves one bundle regardless of locale.
type StaticBundle struct {
	b *Bundle
}

func NewStatic(b *Bundle) *StaticBundle {
	return &StaticBundle{b: b}
}

func (s *StaticBundle) Match(string) string   { return s.b.Locale }
func (s *StaticBundle) Bundle(string) *Bundle { return s.b }
func (s *StaticBundle) Locales() []string     { return []string{s.b.Locale} }

// LocalizedBundle serves one bundle per locale and negotiates between them.
type LocalizedBundle struct {
	def     string
	bundles map[string]*Bundle
	locales []string
	matcher language.Matcher
}

// NewLocalized builds a provider over bundles with def as the fallback
// locale. def must be the locale of one of the bundles.
func NewLocalized(def string, bundles ...*Bundle) (*LocalizedBundle, error) {
	l := &LocalizedBundle{def: def, bundles: make(map[string]*Bundle, len(bundles))}
	for _, b := range bundles {
		if _, dup := l.bundles[b.Locale]; dup {
			return nil, fmt.Errorf("duplicate bundle for locale %q", b.Locale)
		}
		l.bundles[b.Locale] = b
	}
	if _, ok := l.bundles[def]; !ok {
		return nil, fmt.Errorf("default locale %q: %w", def, ErrUnknownLocale)
	}

	// The matcher falls back to its first tag, so the default goes first.
	l.locales = append(l.locales, def)
	rest := make([]string, 0, len(bundles))
	for loc := range l.bundles {
		if loc != def {
			rest = append(rest, loc)
		}
	}
	sort.Strings(rest)
	l.locales = append(l.locales, rest...)

	tags := make([]language.Tag, 0, len(l.locales))
	for _, loc := range l.locales {
		tag, err := language.Parse(loc)
		if err != nil {
			return nil, fmt.Errorf("locale %q: %w", loc, err)
		}
		tags = append(tags, tag)
	}
	l.matcher = language.NewMatcher(tags)
	return l, nil
}

func (l *LocalizedBundle) Match(pref string) string {
	if pref == "" {
		return l.def
	}
	if _, ok := l.bundles[pref]; ok {
		return pref
	}
	tags, _, err := language.ParseAcceptLanguage(pref)
	if err != nil || len(tags) == 0 {
		return l.def
	}
	_, idx, conf := l.matcher.Match(tags...)
	if conf == language.No {
		return l.def
	}
	return l.locales[idx]
}

func (l *LocalizedBundle) Bundle(locale string) *Bundle {
	if b, ok := l.bundles[locale]; ok {
		return b
	}
	return l.bundles[l.def]
}

func (l *LocalizedBundle) Locales() []string {
	out := make([]string, len(l.locales))
	copy(out, l.locales)
	return out
}
