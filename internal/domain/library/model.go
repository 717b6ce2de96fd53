// Package library provides the taxonomy store: product types, series,
// measurement units, user-defined attribute and term categories, and
// company settings. Everything a quote line item can reference is
// configured here.
package library

import (
	"encoding/json"

	"github.com/Huzeyfe22/otomatik-quote/internal/core/apperror"
)

// System category IDs used in CompanySettings.CategoryOrder. The three
// fixed collections have no Category record of their own; display names
// come from CompanySettings.CategoryLabels.
const (
	SysProductTypes  = "sys_productTypes"
	SysProductSeries = "sys_productSeries"
	SysUnits         = "sys_units"
)

// Label keys for the three fixed collections.
const (
	LabelKeyProductTypes  = "productTypes"
	LabelKeyProductSeries = "productSeries"
	LabelKeyUnits         = "units"
)

// Entity is any selectable taxonomy leaf: a product type, a series, a
// unit, an attribute value, or a term value.
type Entity struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	HasDescription bool   `json:"hasDescription"`
	Description    string `json:"description,omitempty"`

	// IsExtras marks a product type as a simple/service line that
	// bypasses series, dimension, and unit requirements.
	IsExtras bool `json:"isExtras,omitempty"`
}

// Validate checks entity invariants.
func (e *Entity) Validate() error {
	if e.Name == "" && !e.IsExtras {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	return nil
}

// Arity governs how many items may be selected from a category.
type Arity string

const (
	AritySingle   Arity = "single"
	ArityMultiple Arity = "multiple"
)

// Valid reports whether the arity is one of the known values.
func (a Arity) Valid() bool {
	return a == AritySingle || a == ArityMultiple
}

// Category is a user-defined dimension of configuration. The same shape
// serves attribute categories (product configuration) and term
// categories (legal/commercial clauses).
type Category struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Type  Arity    `json:"type"`
	Items []Entity `json:"items"`
}

// Validate checks category invariants.
func (c *Category) Validate() error {
	if c.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	if !c.Type.Valid() {
		return apperror.NewValidation("invalid selection type").
			WithDetail("field", "type").
			WithDetail("value", string(c.Type))
	}
	return nil
}

// ItemByID returns the item with the given id, or nil.
func (c *Category) ItemByID(id string) *Entity {
	for i := range c.Items {
		if c.Items[i].ID == id {
			return &c.Items[i]
		}
	}
	return nil
}

// Selection is the value a quote item holds for one attribute category:
// a single entity for 'single' categories, a list for 'multiple'. It is
// a value snapshot taken at selection time, never a live reference into
// the library.
//
// The persisted JSON shape is either a bare entity object or an array of
// entities; Selection accepts both verbatim.
type Selection struct {
	single   *Entity
	multiple []Entity
	isMulti  bool
}

// SelectOne builds a single-arity selection.
func SelectOne(e Entity) Selection {
	return Selection{single: &e}
}

// SelectMany builds a multiple-arity selection.
func SelectMany(items ...Entity) Selection {
	return Selection{multiple: items, isMulti: true}
}

// Entities returns the selected entities regardless of arity.
func (s Selection) Entities() []Entity {
	if s.isMulti {
		return s.multiple
	}
	if s.single != nil {
		return []Entity{*s.single}
	}
	return nil
}

// Empty reports whether nothing is selected.
func (s Selection) Empty() bool {
	return len(s.Entities()) == 0
}

// IsMultiple reports whether the selection carries multiple arity.
func (s Selection) IsMultiple() bool {
	return s.isMulti
}

// Clone returns a deep copy preserving arity.
func (s Selection) Clone() Selection {
	if s.isMulti {
		return Selection{multiple: append([]Entity(nil), s.multiple...), isMulti: true}
	}
	if s.single == nil {
		return Selection{}
	}
	e := *s.single
	return Selection{single: &e}
}

// MarshalJSON emits a bare entity for single selections and an array
// for multiple selections, matching the persisted shape.
func (s Selection) MarshalJSON() ([]byte, error) {
	if s.isMulti {
		if s.multiple == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(s.multiple)
	}
	if s.single == nil {
		return []byte("null"), nil
	}
	return json.Marshal(s.single)
}

// UnmarshalJSON accepts either a single entity object or an array.
func (s *Selection) UnmarshalJSON(data []byte) error {
	var many []Entity
	if err := json.Unmarshal(data, &many); err == nil {
		s.multiple = many
		s.single = nil
		s.isMulti = true
		return nil
	}
	var one Entity
	if err := json.Unmarshal(data, &one); err != nil {
		return err
	}
	s.single = &one
	s.multiple = nil
	s.isMulti = false
	return nil
}

// CompanySettings holds supplier identity and document presentation
// configuration. Created once, mutated by the library manager, read by
// every document-generation call.
type CompanySettings struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Website string `json:"website,omitempty"`

	Logo string `json:"logo,omitempty"`
	// LogoURL is the legacy logo field, kept for backward compatibility
	// with older workspace files.
	LogoURL      string `json:"logoUrl,omitempty"`
	WatermarkURL string `json:"watermarkUrl,omitempty"`

	// TaxRate is a percentage (e.g. 13 for 13%).
	TaxRate float64 `json:"taxRate"`

	SelectedTemplate string `json:"selectedTemplate,omitempty"`

	// CategoryLabels overrides display names for the three fixed
	// collections, keyed by LabelKey* constants.
	CategoryLabels map[string]string `json:"categoryLabels,omitempty"`

	// CategoryOrder is the display order of category ids, including the
	// three Sys* ids.
	CategoryOrder []string `json:"categoryOrder,omitempty"`
}

// ResolvedLogo returns the effective logo source.
func (s CompanySettings) ResolvedLogo() string {
	if s.Logo != "" {
		return s.Logo
	}
	return s.LogoURL
}

// Label returns the display label for one of the fixed collections,
// falling back to the given default when no override exists.
func (s CompanySettings) Label(key, fallback string) string {
	if s.CategoryLabels != nil {
		if v, ok := s.CategoryLabels[key]; ok && v != "" {
			return v
		}
	}
	return fallback
}

// DefaultCompanySettings returns the settings a fresh workspace starts
// with.
func DefaultCompanySettings() CompanySettings {
	return CompanySettings{
		CategoryLabels: map[string]string{
			LabelKeyProductTypes:  "Product Type",
			LabelKeyProductSeries: "Product Series",
			LabelKeyUnits:         "Units",
		},
	}
}
