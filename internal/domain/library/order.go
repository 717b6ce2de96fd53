package library

// FullCategoryOrder returns the effective display order for item
// synthesis: the configured order with any unlisted categories appended
// at the end. A stale or partial stored order therefore degrades to
// appending, never to dropping a category.
func FullCategoryOrder(settings CompanySettings, categories []Category) []string {
	order := settings.CategoryOrder
	if len(order) == 0 {
		order = []string{SysProductTypes, SysProductSeries, SysUnits}
		for _, c := range categories {
			order = append(order, c.ID)
		}
		return order
	}

	known := make(map[string]bool, len(order))
	for _, cid := range order {
		known[cid] = true
	}
	full := append([]string(nil), order...)
	for _, c := range categories {
		if !known[c.ID] {
			full = append(full, c.ID)
		}
	}
	return full
}

// CategoryByID finds a category in a slice, or nil when it has been
// deleted. Callers skip nil results silently: items may reference
// categories that no longer exist.
func CategoryByID(categories []Category, catID string) *Category {
	for i := range categories {
		if categories[i].ID == catID {
			return &categories[i]
		}
	}
	return nil
}
