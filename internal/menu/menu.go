package menu

import (
	"strings"

	"github.com/Lixing-Zhang/loyverse-ordering/backend/internal/models"
)

// Section is one category with its products, for grouped rendering
type Section struct {
	Category models.Category  `json:"category"`
	Products []models.Product `json:"products"`
}

// Sections returns the menu in category order
func (m *Menu) Sections() []Section {
	sections := make([]Section, 0, len(m.Categories))
	for _, c := range m.Categories {
		sections = append(sections, Section{Category: c, Products: m.Products[c.ID]})
	}
	return sections
}

// Filter returns a copy of the menu keeping products whose name contains query,
// case-insensitively. Categories left without products are dropped.
// A blank query returns the menu unchanged.
func (m *Menu) Filter(query string) *Menu {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return m
	}

	filtered := &Menu{
		Products: make(map[string][]models.Product),
		Failures: m.Failures,
	}
	for _, c := range m.Categories {
		var kept []models.Product
		for _, p := range m.Products[c.ID] {
			if strings.Contains(strings.ToLower(p.Name), q) {
				kept = append(kept, p)
			}
		}
		if len(kept) == 0 {
			continue
		}
		filtered.Categories = append(filtered.Categories, c)
		filtered.Products[c.ID] = kept
	}
	return filtered
}

// FailedCategories returns the IDs of categories that could not be loaded
func (m *Menu) FailedCategories() []string {
	ids := make([]string, 0, len(m.Failures))
	for _, f := range m.Failures {
		ids = append(ids, f.CategoryID)
	}
	return ids
}
