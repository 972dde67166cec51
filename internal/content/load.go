package content

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed bundles/*.yaml
var embedded embed.FS

var validate = validator.New()

// Parse decodes and validates one YAML bundle.
func Parse(data []byte) (*Bundle, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var b Bundle
	if err := dec.Decode(&b); err != nil {
		return nil, fmt.Errorf("decoding bundle: %w", err)
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	if err := b.render(); err != nil {
		return nil, err
	}
	return &b, nil
}

// Validate checks the struct constraints plus the references a YAML schema
// cannot express: locale tags, nav ids, icons and accents.
func (b *Bundle) Validate() error {
	if err := validate.Struct(b); err != nil {
		return fmt.Errorf("bundle %q: %w", b.Locale, err)
	}
	if _, err := language.Parse(b.Locale); err != nil {
		return fmt.Errorf("bundle %q: bad locale tag: %w", b.Locale, err)
	}

	var errs []error
	for id := range b.Nav {
		if !IsSection(id) {
			errs = append(errs, fmt.Errorf("nav: unknown section %q", id))
		}
	}
	for _, s := range b.Skills {
		if !s.Icon.Valid() {
			errs = append(errs, fmt.Errorf("skill %q: unknown icon %q", s.Name, s.Icon))
		}
		if !s.Accent.Valid() {
			errs = append(errs, fmt.Errorf("skill %q: unknown accent %q", s.Name, s.Accent))
		}
	}
	for _, s := range b.Services {
		if !s.Icon.Valid() {
			errs = append(errs, fmt.Errorf("service %q: unknown icon %q", s.Title, s.Icon))
		}
		if !s.Accent.Valid() {
			errs = append(errs, fmt.Errorf("service %q: unknown accent %q", s.Title, s.Accent))
		}
	}
	for _, l := range b.Social {
		if !l.Network.Valid() {
			errs = append(errs, fmt.Errorf("social link %q: unknown network %q", l.URL, l.Network))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("bundle %q: %w", b.Locale, errors.Join(errs...))
	}
	return nil
}

// LoadFS reads every *.yaml bundle at the root of fsys. A single bundle
// yields a StaticBundle; several yield a LocalizedBundle defaulting to def.
func LoadFS(fsys fs.FS, def string) (Provider, error) {
	names, err := fs.Glob(fsys, "*.yaml")
	if err != nil {
		return nil, fmt.Errorf("listing bundles: %w", err)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no bundles found")
	}
	sort.Strings(names)

	bundles := make([]*Bundle, 0, len(names))
	for _, name := range names {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
		b, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		if want := strings.TrimSuffix(path.Base(name), ".yaml"); b.Locale != want {
			return nil, fmt.Errorf("%s: locale %q does not match file name", name, b.Locale)
		}
		bundles = append(bundles, b)
	}

	if len(bundles) == 1 {
		return NewStatic(bundles[0]), nil
	}
	return NewLocalized(def, bundles...)
}

// Load reads bundles from dir, or the bundles compiled into the binary when
// dir is empty.
func Load(dir, def string) (Provider, error) {
	if dir == "" {
		sub, err := fs.Sub(embedded, "bundles")
		if err != nil {
			return nil, err
		}
		return LoadFS(sub, def)
	}
	return LoadFS(os.DirFS(dir), def)
}
