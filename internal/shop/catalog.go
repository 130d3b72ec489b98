package shop

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/studybuddy/internal/rewards"
)

//go:embed catalog.yaml
var defaultCatalogYAML []byte

// Chest is a purchasable reward draw.
type Chest struct {
	ID    string        `yaml:"id"`
	Name  string        `yaml:"name"`
	Cost  int           `yaml:"cost"`
	Table rewards.Table `yaml:"table"`
}

// ArmorPiece grants one armor retry per battle once owned.
type ArmorPiece struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	Cost int    `yaml:"cost"`
}

// Catalog lists everything for sale.
type Catalog struct {
	Chests []Chest      `yaml:"chests"`
	Armor  []ArmorPiece `yaml:"armor"`
}

// DefaultCatalog parses the embedded catalog.
func DefaultCatalog() (*Catalog, error) {
	return ParseCatalog(defaultCatalogYAML)
}

// LoadCatalog reads a catalog from path, or the embedded one when path is
// empty.
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return DefaultCatalog()
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return ParseCatalog(b)
}

// ParseCatalog decodes and validates a YAML catalog.
func ParseCatalog(b []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks ids, prices and reward tables.
func (c *Catalog) Validate() error {
	seen := make(map[string]bool)
	for _, ch := range c.Chests {
		if ch.ID == "" || seen[ch.ID] {
			return fmt.Errorf("chest %q: missing or duplicate id", ch.ID)
		}
		seen[ch.ID] = true
		if ch.Cost <= 0 {
			return fmt.Errorf("chest %q: cost must be positive", ch.ID)
		}
		if err := ch.Table.Validate(); err != nil {
			return fmt.Errorf("chest %q: %w", ch.ID, err)
		}
	}
	for _, a := range c.Armor {
		if a.ID == "" || seen[a.ID] {
			return fmt.Errorf("armor %q: missing or duplicate id", a.ID)
		}
		seen[a.ID] = true
		if a.Cost <= 0 {
			return fmt.Errorf("armor %q: cost must be positive", a.ID)
		}
	}
	return nil
}

// Chest looks up a chest by id.
func (c *Catalog) Chest(id string) (Chest, bool) {
	for _, ch := range c.Chests {
		if ch.ID == id {
			return ch, true
		}
	}
	return Chest{}, false
}

// ArmorPiece looks up an armor piece by id.
func (c *Catalog) ArmorPiece(id string) (ArmorPiece, bool) {
	for _, a := range c.Armor {
		if a.ID == id {
			return a, true
		}
	}
	return ArmorPiece{}, false
}
