// Package catalog loads variant lists for the picker from JSON files.
package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"skupick/internal/sku"
)

//go:embed demo.json
var demoJSON []byte

var (
	// ErrDuplicateID is returned when two variants of a catalog share an id.
	ErrDuplicateID = errors.New("duplicate variant id")

	// ErrMalformed is returned when the catalog is not valid JSON.
	ErrMalformed = errors.New("malformed catalog")
)

// Catalog is the on-disk form of a product and its variants.
type Catalog struct {
	Name     string        `json:"name"`
	Variants []sku.Variant `json:"variants"`
	// Selected optionally names the variant to restore on open (e.g. the
	// variant of a cart line being edited).
	Selected string `json:"selected,omitempty"`
}

// Load reads a catalog file. A leading ~/ is expanded to the home directory.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(expandTilde(path))
	if err != nil {
		return nil, fmt.Errorf("could not read catalog: %w", err)
	}
	defer f.Close()

	c, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if c.Name == "" {
		c.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return c, nil
}

// Decode parses a catalog, assigns ids to variants that lack one and checks
// the variant list is bindable.
func Decode(r io.Reader) (*Catalog, error) {
	var c Catalog
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if err := c.normalize(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Demo returns the embedded sample catalog.
func Demo() *Catalog {
	c, err := Decode(bytes.NewReader(demoJSON))
	if err != nil {
		panic(fmt.Sprintf("embedded demo catalog: %v", err))
	}
	return c
}

// Bind binds the catalog to sel and restores the Selected variant, if any.
func (c *Catalog) Bind(sel *sku.Selector) error {
	if err := sel.Bind(c.Variants); err != nil {
		return err
	}
	if c.Selected != "" {
		return sel.SelectVariantByID(c.Selected)
	}
	return nil
}

func (c *Catalog) normalize() error {
	seen := make(map[string]struct{}, len(c.Variants))
	for i := range c.Variants {
		v := &c.Variants[i]
		v.ID = strings.TrimSpace(v.ID)
		if v.ID == "" {
			v.ID = uuid.NewString()
		}
		if _, dup := seen[v.ID]; dup {
			return fmt.Errorf("%q: %w", v.ID, ErrDuplicateID)
		}
		seen[v.ID] = struct{}{}
	}
	return sku.Validate(c.Variants)
}

func expandTilde(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			return home
		}
	}
	return path
}
