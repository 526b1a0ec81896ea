package catalog

import (
	"reflect"
	"strings"
	"testing"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

func TestNew(t *testing.T) {
	c := New([]Template{
		{Key: "go", Name: "Go", Contents: "*.test\n"},
		{Key: "", Name: "Node", Contents: "node_modules/\n"},
		{Key: "noname", Name: "", Contents: "x\n"},
		{Key: "go", Name: "Go (dup key)", Contents: "ignored\n"},
	})

	if c.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", c.Len())
	}
	if tmpl, ok := c.Lookup("Node"); !ok || tmpl.Contents != "node_modules/\n" {
		t.Errorf("Lookup(\"Node\") = %+v, %v; want keyed by name", tmpl, ok)
	}
	if tmpl, _ := c.Lookup("go"); tmpl.Name != "Go" {
		t.Errorf("Lookup(\"go\").Name = %q, want first template to win", tmpl.Name)
	}
}

func TestNames_Sorted(t *testing.T) {
	c := New([]Template{
		{Key: "1", Name: "cherry"},
		{Key: "2", Name: "Banana"},
		{Key: "3", Name: "apple"},
		{Key: "4", Name: "Élan"},
		{Key: "5", Name: "Go"},
	})

	got := c.Names()
	want := []string{"apple", "Banana", "cherry", "Élan", "Go"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}

func TestNames_CaseAndAccentOrder(t *testing.T) {
	var templates []Template
	for i, name := range []string{"zeta", "Éclair", "B", "eclair", "A", "b", "_x", "a"} {
		templates = append(templates, Template{Key: string(rune('a' + i)), Name: name})
	}

	got := New(templates).Names()
	want := []string{"_x", "a", "A", "b", "B", "eclair", "Éclair", "zeta"}
	if strings.Join(got, " ") != strings.Join(want, " ") {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}

func TestNames_NonDecreasing(t *testing.T) {
	var templates []Template
	for i, n := range []string{"VisualStudio", "visualstudiocode", "Vim", "C++", "C", "c", "Android", "android", "Zig", "Ada", "ädä", "macOS", "MATLAB", "Go", "go"} {
		templates = append(templates, Template{Key: string(rune('a' + i)), Name: n})
	}
	names := New(templates).Names()

	col := collate.New(language.Und)
	for i := 1; i < len(names); i++ {
		if col.CompareString(names[i-1], names[i]) > 0 {
			t.Errorf("Names() not sorted at %d: %q before %q", i, names[i-1], names[i])
		}
	}
	if len(names) != len(templates) {
		t.Errorf("Names() returned %d names, want %d", len(names), len(templates))
	}
}

func TestNames_Empty(t *testing.T) {
	var nilCatalog *Catalog
	for name, c := range map[string]*Catalog{"nil": nilCatalog, "empty": Empty()} {
		t.Run(name, func(t *testing.T) {
			got := c.Names()
			if got == nil || len(got) != 0 {
				t.Errorf("Names() = %#v, want empty non-nil slice", got)
			}
			if _, ok := c.Find("Go"); ok {
				t.Error("Find() on empty catalog reported a match")
			}
		})
	}
}

func TestFind(t *testing.T) {
	c := New([]Template{
		{Key: "b", Name: "Shared", Contents: "second\n"},
		{Key: "a", Name: "Shared", Contents: "first\n"},
		{Key: "go", Name: "Go", Contents: "*.test\n"},
	})

	tests := []struct {
		name     string
		lookup   string
		wantOK   bool
		contents string
	}{
		{name: "exact match", lookup: "Go", wantOK: true, contents: "*.test\n"},
		{name: "case sensitive", lookup: "go", wantOK: false},
		{name: "no partial match", lookup: "G", wantOK: false},
		{name: "shared name resolves to smallest key", lookup: "Shared", wantOK: true, contents: "first\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, ok := c.Find(tt.lookup)
			if ok != tt.wantOK {
				t.Fatalf("Find(%q) ok = %v, want %v", tt.lookup, ok, tt.wantOK)
			}
			if ok && tmpl.Contents != tt.contents {
				t.Errorf("Find(%q).Contents = %q, want %q", tt.lookup, tmpl.Contents, tt.contents)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	c := New([]Template{{Key: "visualstudiocode", Name: "VisualStudioCode", Contents: ".vscode/*\n"}})

	if _, ok := c.Resolve("VisualStudioCode"); !ok {
		t.Error("Resolve() by name failed")
	}
	if _, ok := c.Resolve("visualstudiocode"); !ok {
		t.Error("Resolve() by key failed")
	}
	if _, ok := c.Resolve("vscode"); ok {
		t.Error("Resolve() matched an unknown template")
	}
}
