// Package content holds the copy and structured data the portfolio renders:
// profile, experience, skills, services, projects, testimonials, blog
// teasers and FAQ. A Bundle carries everything for one locale; a Provider
// picks the bundle for a request.
package content

import (
	"html/template"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Section ids in the order they appear on the page. The order is fixed for
// the lifetime of the process and drives scroll-spy tie-breaking.
var sectionIDs = []string{
	"home",
	"about",
	"experience",
	"skills",
	"services",
	"portfolio",
	"testimonials",
	"blog",
	"contact",
	"faq",
}

// SectionIDs returns the declared section ids in page order.
func SectionIDs() []string {
	ids := make([]string, len(sectionIDs))
	copy(ids, sectionIDs)
	return ids
}

// IsSection reports whether id names a declared section.
func IsSection(id string) bool {
	for _, s := range sectionIDs {
		if s == id {
			return true
		}
	}
	return false
}

// NavSection is one entry of the navigation bar.
type NavSection struct {
	ID    string
	Label string
}

// Bundle is the page copy for one locale.
type Bundle struct {
	Locale       string            `yaml:"locale" validate:"required"`
	Nav          map[string]string `yaml:"nav"`
	Labels       map[string]string `yaml:"labels"`
	Profile      Profile           `yaml:"profile"`
	Experiences  []Experience      `yaml:"experiences" validate:"dive"`
	Skills       []Skill           `yaml:"skills" validate:"dive"`
	Services     []Service         `yaml:"services" validate:"dive"`
	Projects     []Project         `yaml:"projects" validate:"dive"`
	Testimonials []Testimonial     `yaml:"testimonials" validate:"dive"`
	Posts        []Post            `yaml:"posts" validate:"dive"`
	FAQ          []FAQEntry        `yaml:"faq" validate:"dive"`
	Highlights   []Highlight       `yaml:"highlights" validate:"dive"`
	Social       []SocialLink      `yaml:"social" validate:"dive"`
}

type Profile struct {
	Name         string   `yaml:"name" validate:"required"`
	Title        string   `yaml:"title" validate:"required"`
	Tagline      string   `yaml:"tagline"`
	Photo        string   `yaml:"photo"`
	Bio          []string `yaml:"bio" validate:"min=1"`
	Achievements []string `yaml:"achievements"`
	Closing      string   `yaml:"closing"`

	BioHTML     []template.HTML `yaml:"-"`
	ClosingHTML template.HTML   `yaml:"-"`
}

type Experience struct {
	Company      string   `yaml:"company" validate:"required"`
	Role         string   `yaml:"role" validate:"required"`
	Period       string   `yaml:"period"`
	Description  string   `yaml:"description"`
	Achievements []string `yaml:"achievements"`
}

type Skill struct {
	Name   string `yaml:"name" validate:"required"`
	Level  int    `yaml:"level" validate:"min=0,max=100"`
	Icon   IconID `yaml:"icon" validate:"required"`
	Accent Accent `yaml:"accent"`
}

type Service struct {
	Title       string `yaml:"title" validate:"required"`
	Description string `yaml:"description"`
	Icon        IconID `yaml:"icon" validate:"required"`
	Accent      Accent `yaml:"accent"`
}

type Project struct {
	Title       string   `yaml:"title" validate:"required"`
	Description string   `yaml:"description"`
	Image       string   `yaml:"image" validate:"omitempty,url"`
	Tags        []string `yaml:"tags"`
}

type Testimonial struct {
	Name    string `yaml:"name" validate:"required"`
	Role    string `yaml:"role"`
	Content string `yaml:"content" validate:"required"`
	Image   string `yaml:"image" validate:"omitempty,url"`
}

// Post is a blog teaser. Excerpt is Markdown.
type Post struct {
	Title    string    `yaml:"title" validate:"required"`
	Excerpt  string    `yaml:"excerpt"`
	Date     time.Time `yaml:"date"`
	Image    string    `yaml:"image" validate:"omitempty,url"`
	Category string    `yaml:"category"`
	URL      string    `yaml:"url"`

	ExcerptHTML template.HTML `yaml:"-"`
}

type FAQEntry struct {
	Question string `yaml:"question" validate:"required"`
	Answer   string `yaml:"answer" validate:"required"`
}

type Highlight struct {
	Title       string `yaml:"title" validate:"required"`
	Description string `yaml:"description"`
}

type SocialLink struct {
	Network IconID `yaml:"network" validate:"required"`
	URL     string `yaml:"url" validate:"required,url"`
}

var titleCaser = cases.Title(language.English)

// NavSections returns the navigation entries in page order, labelled from
// the bundle. Sections without a label fall back to the title-cased id.
func (b *Bundle) NavSections() []NavSection {
	out := make([]NavSection, 0, len(sectionIDs))
	for _, id := range sectionIDs {
		label := b.Nav[id]
		if label == "" {
			label = titleCaser.String(id)
		}
		out = append(out, NavSection{ID: id, Label: label})
	}
	return out
}

// Label returns the UI string stored under key, or key itself.
func (b *Bundle) Label(key string) string {
	if v, ok := b.Labels[key]; ok && v != "" {
		return v
	}
	return strings.ReplaceAll(key, "_", " ")
}

// Highlight returns the i-th rotating highlight, wrapping around.
func (b *Bundle) Highlight(i int) (Highlight, bool) {
	if len(b.Highlights) == 0 {
		return Highlight{}, false
	}
	if i < 0 {
		i = 0
	}
	return b.Highlights[i%len(b.Highlights)], true
}
