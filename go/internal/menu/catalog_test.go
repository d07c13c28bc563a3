package menu

import (
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCatalog(t *testing.T) {
	tests := []struct {
		name      string
		yaml      string
		want      []SeedItem
		wantError string
	}{
		{
			name: "valid catalog: ok",
			yaml: `
items:
  - name: "  Soup "
    description: Tomato
    price: "4.5"
    image_url: /soup.jpg
  - name: Bread
    price: "0"
`,
			want: []SeedItem{
				{Name: "Soup", Description: "Tomato", Price: decimal.RequireFromString("4.5"), ImageURL: "/soup.jpg"},
				{Name: "Bread", Price: decimal.Zero},
			},
		},
		{name: "empty catalog: ok", yaml: `items: []`, want: []SeedItem{}},
		{name: "missing name: error", yaml: "items:\n  - price: \"1\"\n", wantError: "item 0: name is required"},
		{name: "duplicate name: error", yaml: "items:\n  - {name: A, price: \"1\"}\n  - {name: A, price: \"2\"}\n", wantError: `item 1: duplicate name "A"`},
		{name: "negative price: error", yaml: "items:\n  - {name: A, price: \"-1\"}\n", wantError: `item "A": price cannot be negative`},
		{name: "bad yaml: error", yaml: "items: [", wantError: "failed to parse catalog"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCatalog([]byte(tt.yaml))
			if tt.wantError != "" {
				require.ErrorContains(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)
			require.Len(t, got, len(tt.want))
			for i := range tt.want {
				assert.Equal(t, tt.want[i].Name, got[i].Name)
				assert.Equal(t, tt.want[i].Description, got[i].Description)
				assert.Equal(t, tt.want[i].ImageURL, got[i].ImageURL)
				assert.True(t, tt.want[i].Price.Equal(got[i].Price), "price %s != %s", tt.want[i].Price, got[i].Price)
			}
		})
	}
}

func TestLoadCatalogShippedFile(t *testing.T) {
	items, err := LoadCatalog(filepath.Join("..", "..", "..", "config", "menu.yaml"))
	require.NoError(t, err)
	assert.NotEmpty(t, items)
	for _, it := range items {
		assert.False(t, it.Price.IsNegative())
	}
}
