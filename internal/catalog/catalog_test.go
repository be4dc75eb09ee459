package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"

	"skupick/internal/sku"
)

func TestDemoCatalogBinds(t *testing.T) {
	c := Demo()
	if c.Name != "Linen Shirt" {
		t.Errorf("Name = %q", c.Name)
	}
	sel := sku.New()
	if err := c.Bind(sel); err != nil {
		t.Fatalf("Bind() error = %v", err)
	}
	groups := sel.Groups()
	if len(groups) != 3 || groups[0].Name != "Color" || groups[2].Name != "Fit" {
		t.Errorf("Groups() = %v", groups)
	}
}

func TestDecodeAssignsMissingIDs(t *testing.T) {
	in := `{"variants": [
		{"attributes": [{"name": "Color", "value": "Red"}], "stock": 1},
		{"id": "  blue ", "attributes": [{"name": "Color", "value": "Blue"}], "stock": 0}
	]}`
	c, err := Decode(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if _, err := uuid.Parse(c.Variants[0].ID); err != nil {
		t.Errorf("generated id %q is not a uuid: %v", c.Variants[0].ID, err)
	}
	if c.Variants[1].ID != "blue" {
		t.Errorf("id = %q, want trimmed blue", c.Variants[1].ID)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want error
	}{
		{
			name: "duplicate id",
			in: `{"variants": [
				{"id": "a", "attributes": [{"name": "Color", "value": "Red"}], "stock": 1},
				{"id": "a", "attributes": [{"name": "Color", "value": "Blue"}], "stock": 1}
			]}`,
			want: ErrDuplicateID,
		},
		{
			name: "misaligned",
			in: `{"variants": [
				{"attributes": [{"name": "Color", "value": "Red"}, {"name": "Size", "value": "M"}], "stock": 1},
				{"attributes": [{"name": "Size", "value": "M"}, {"name": "Color", "value": "Red"}], "stock": 1}
			]}`,
			want: sku.ErrInvalidInput,
		},
		{
			name: "empty",
			in:   `{"variants": []}`,
			want: sku.ErrEmptyCatalog,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode(strings.NewReader(tt.in)); !errors.Is(err, tt.want) {
				t.Errorf("Decode() error = %v, want %v", err, tt.want)
			}
		})
	}

	if _, err := Decode(strings.NewReader(`{"variants": [], "price": 3}`)); err == nil {
		t.Error("Decode() should reject unknown fields")
	}
}

func TestLoadRestoresSelectedVariant(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mug.json")
	body := `{"selected": "mug-blue", "variants": [
		{"id": "mug-red", "attributes": [{"name": "Color", "value": "Red"}], "stock": 1},
		{"id": "mug-blue", "attributes": [{"name": "Color", "value": "Blue"}], "stock": 1}
	]}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if c.Name != "mug" {
		t.Errorf("Name = %q, want the file stem", c.Name)
	}

	sel := sku.New()
	if err := c.Bind(sel); err != nil {
		t.Fatalf("Bind() error = %v", err)
	}
	if v, ok := sel.SelectedVariant(); !ok || v.ID != "mug-blue" {
		t.Errorf("SelectedVariant() = %v, %v", v, ok)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load() error = %v, want not-exist", err)
	}
}

func TestExpandTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := expandTilde("~/cat.json"); got != filepath.Join(home, "cat.json") {
		t.Errorf("expandTilde() = %q", got)
	}
	if got := expandTilde("/tmp/~/x"); got != "/tmp/~/x" {
		t.Errorf("expandTilde() = %q", got)
	}
}
