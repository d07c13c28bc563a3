package menu

import (
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Catalog is the YAML seed file for the menu.
type Catalog struct {
	Items []CatalogItem `yaml:"items"`
}

// CatalogItem is one menu entry in the seed file. Price is a decimal string.
type CatalogItem struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Price       string `yaml:"price"`
	ImageURL    string `yaml:"image_url"`
}

// SeedItem is a validated catalog entry ready for upsert.
type SeedItem struct {
	Name        string
	Description string
	Price       decimal.Decimal
	ImageURL    string
}

// LoadCatalog reads and validates a catalog file.
func LoadCatalog(path string) ([]SeedItem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes catalog YAML. Names must be present and unique, prices
// non-negative.
func ParseCatalog(data []byte) ([]SeedItem, error) {
	var catalog Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	seen := make(map[string]struct{}, len(catalog.Items))
	items := make([]SeedItem, 0, len(catalog.Items))
	for i, it := range catalog.Items {
		name := strings.TrimSpace(it.Name)
		if name == "" {
			return nil, fmt.Errorf("item %d: name is required", i)
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("item %d: duplicate name %q", i, name)
		}
		seen[name] = struct{}{}

		price, err := decimal.NewFromString(strings.TrimSpace(it.Price))
		if err != nil {
			return nil, fmt.Errorf("item %q: invalid price %q: %w", name, it.Price, err)
		}
		if price.IsNegative() {
			return nil, fmt.Errorf("item %q: price cannot be negative", name)
		}

		items = append(items, SeedItem{
			Name:        name,
			Description: strings.TrimSpace(it.Description),
			Price:       price.Round(2),
			ImageURL:    strings.TrimSpace(it.ImageURL),
		})
	}
	return items, nil
}
