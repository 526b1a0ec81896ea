// Package catalog holds the set of .gitignore templates available during a
// session and fetches it from a remote source.
package catalog

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Template is a named, ready-made set of ignore rules.
type Template struct {
	// Key is the opaque identifier the source lists the template under.
	Key string `json:"key"`
	// Name is the display name shown to the user.
	Name string `json:"name"`
	// Contents is the raw newline-separated rule text.
	Contents string `json:"contents"`
}

// Catalog is an immutable snapshot of templates keyed by Template.Key.
// A nil *Catalog behaves as an empty catalog.
type Catalog struct {
	byKey map[string]Template
	keys  []string // sorted
}

// Empty returns a catalog with no templates.
func Empty() *Catalog {
	return &Catalog{byKey: map[string]Template{}}
}

// New builds a catalog from templates. Templates without a name are skipped.
// A template without a key is keyed by its name; the first template wins
// when two share a key.
func New(templates []Template) *Catalog {
	c := &Catalog{byKey: make(map[string]Template, len(templates))}
	for _, t := range templates {
		if t.Name == "" {
			continue
		}
		if t.Key == "" {
			t.Key = t.Name
		}
		if _, dup := c.byKey[t.Key]; dup {
			continue
		}
		c.byKey[t.Key] = t
		c.keys = append(c.keys, t.Key)
	}
	sort.Strings(c.keys)
	return c
}

// Len returns the number of templates.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.keys)
}

// Names returns every template's display name in ascending order under the
// root locale's collation: base letters first, then accents, then case with
// lowercase first. Names that collate equal are ordered byte-wise.
func (c *Catalog) Names() []string {
	if c.Len() == 0 {
		return []string{}
	}

	names := make([]string, 0, len(c.keys))
	for _, k := range c.keys {
		names = append(names, c.byKey[k].Name)
	}

	col := collate.New(language.Und)
	sort.SliceStable(names, func(i, j int) bool {
		if r := col.CompareString(names[i], names[j]); r != 0 {
			return r < 0
		}
		return names[i] < names[j]
	})
	return names
}

// Find returns the template whose display name equals name exactly.
//
// Display names are not guaranteed unique across keys. When several
// templates share a name, the one with the smallest key is returned and the
// others are unreachable by name.
func (c *Catalog) Find(name string) (Template, bool) {
	if c == nil {
		return Template{}, false
	}
	for _, k := range c.keys {
		if t := c.byKey[k]; t.Name == name {
			return t, true
		}
	}
	return Template{}, false
}

// Lookup returns the template stored under key.
func (c *Catalog) Lookup(key string) (Template, bool) {
	if c == nil {
		return Template{}, false
	}
	t, ok := c.byKey[key]
	return t, ok
}

// Resolve finds a template by display name, falling back to key lookup.
func (c *Catalog) Resolve(nameOrKey string) (Template, bool) {
	if t, ok := c.Find(nameOrKey); ok {
		return t, true
	}
	return c.Lookup(nameOrKey)
}
