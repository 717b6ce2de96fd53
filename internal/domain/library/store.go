package library

import (
	"sync"

	"github.com/Huzeyfe22/otomatik-quote/internal/core/apperror"
	"github.com/Huzeyfe22/otomatik-quote/internal/core/id"
)

// SystemCollection names the three fixed entity collections.
type SystemCollection string

const (
	CollectionProductTypes  SystemCollection = "productTypes"
	CollectionProductSeries SystemCollection = "productSeries"
	CollectionUnits         SystemCollection = "units"
)

// Valid reports whether the collection name is known.
func (c SystemCollection) Valid() bool {
	switch c {
	case CollectionProductTypes, CollectionProductSeries, CollectionUnits:
		return true
	}
	return false
}

// State is the serializable library content. Field names match the
// persisted workspace JSON shape.
type State struct {
	ProductTypes        []Entity        `json:"productTypes"`
	ProductSeries       []Entity        `json:"productSeries"`
	Units               []Entity        `json:"units"`
	AttributeCategories []Category      `json:"attributeCategories"`
	TermCategories      []Category      `json:"termCategories"`
	CompanySettings     CompanySettings `json:"companySettings"`
}

// DefaultTermCategories returns the term categories a fresh workspace is
// seeded with. Their fixed ids are referenced by the contract clause
// generator.
func DefaultTermCategories() []Category {
	return []Category{
		{ID: "inclusions", Name: "Inclusions", Type: ArityMultiple, Items: []Entity{}},
		{ID: "exclusions", Name: "Exclusions", Type: ArityMultiple, Items: []Entity{}},
		{ID: "paymentTerms", Name: "Payment Terms", Type: ArityMultiple, Items: []Entity{}},
		{ID: "leadTime", Name: "Lead Time", Type: AritySingle, Items: []Entity{}},
		{ID: "validity", Name: "Validity", Type: AritySingle, Items: []Entity{}},
	}
}

// Store holds the mutable taxonomy. All mutations go through Store so
// that CategoryOrder stays consistent with the attribute categories.
// Document generation must call Snapshot and never read the live store.
type Store struct {
	mu    sync.RWMutex
	state State
}

// NewStore creates a store seeded with default term categories and
// settings.
func NewStore() *Store {
	return &Store{
		state: State{
			ProductTypes:        []Entity{},
			ProductSeries:       []Entity{},
			Units:               []Entity{},
			AttributeCategories: []Category{},
			TermCategories:      DefaultTermCategories(),
			CompanySettings:     DefaultCompanySettings(),
		},
	}
}

// NewStoreFromState creates a store from loaded workspace content.
// Missing term categories fall back to the default set.
func NewStoreFromState(st State) *Store {
	if st.TermCategories == nil {
		st.TermCategories = DefaultTermCategories()
	}
	if st.CompanySettings.CategoryLabels == nil {
		st.CompanySettings.CategoryLabels = DefaultCompanySettings().CategoryLabels
	}
	return &Store{state: st}
}

// Snapshot returns a deep copy of the library state. Safe to read while
// the store keeps being mutated.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneState(s.state)
}

// Import merges a partial state into the store, matching the workspace
// import semantics: non-nil collections replace, nil collections are
// preserved.
func (s *Store) Import(st State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st.ProductTypes != nil {
		s.state.ProductTypes = cloneEntities(st.ProductTypes)
	}
	if st.ProductSeries != nil {
		s.state.ProductSeries = cloneEntities(st.ProductSeries)
	}
	if st.Units != nil {
		s.state.Units = cloneEntities(st.Units)
	}
	if st.AttributeCategories != nil {
		s.state.AttributeCategories = cloneCategories(st.AttributeCategories)
	}
	if st.TermCategories != nil {
		s.state.TermCategories = cloneCategories(st.TermCategories)
	}
	if st.CompanySettings.Name != "" || st.CompanySettings.CategoryLabels != nil {
		s.state.CompanySettings = cloneSettings(st.CompanySettings)
	}
}

// --- System collections (product types, series, units) ---

// SystemItems returns a copy of the named collection.
func (s *Store) SystemItems(col SystemCollection) ([]Entity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list, err := s.systemRef(col)
	if err != nil {
		return nil, err
	}
	return cloneEntities(*list), nil
}

// AddSystemItem appends an entity to the named collection, assigning an
// id when absent. Returns the stored entity.
func (s *Store) AddSystemItem(col SystemCollection, e Entity) (Entity, error) {
	if err := e.Validate(); err != nil {
		return Entity{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	list, err := s.systemRef(col)
	if err != nil {
		return Entity{}, err
	}
	if e.ID == "" {
		e.ID = id.New()
	}
	for _, existing := range *list {
		if existing.ID == e.ID {
			return Entity{}, apperror.NewDuplicate(string(col), "id", e.ID)
		}
	}
	*list = append(*list, e)
	return e, nil
}

// UpdateSystemItem replaces fields of an entity in the named collection.
func (s *Store) UpdateSystemItem(col SystemCollection, itemID string, e Entity) (Entity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list, err := s.systemRef(col)
	if err != nil {
		return Entity{}, err
	}
	for i := range *list {
		if (*list)[i].ID == itemID {
			e.ID = itemID
			if err := e.Validate(); err != nil {
				return Entity{}, err
			}
			(*list)[i] = e
			return e, nil
		}
	}
	return Entity{}, apperror.NewNotFound(string(col), itemID)
}

// DeleteSystemItem removes an entity. Existing quote snapshots are not
// touched (no cascade).
func (s *Store) DeleteSystemItem(col SystemCollection, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	list, err := s.systemRef(col)
	if err != nil {
		return err
	}
	for i := range *list {
		if (*list)[i].ID == itemID {
			*list = append((*list)[:i], (*list)[i+1:]...)
			return nil
		}
	}
	return apperror.NewNotFound(string(col), itemID)
}

func (s *Store) systemRef(col SystemCollection) (*[]Entity, error) {
	switch col {
	case CollectionProductTypes:
		return &s.state.ProductTypes, nil
	case CollectionProductSeries:
		return &s.state.ProductSeries, nil
	case CollectionUnits:
		return &s.state.Units, nil
	}
	return nil, apperror.NewValidation("unknown system collection").
		WithDetail("collection", string(col))
}

// --- Attribute categories ---

// AttributeCategories returns a copy of all attribute categories.
func (s *Store) AttributeCategories() []Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneCategories(s.state.AttributeCategories)
}

// AddAttributeCategory creates a category and appends its id to the
// category order.
func (s *Store) AddAttributeCategory(name string, arity Arity) (Category, error) {
	if arity == "" {
		arity = AritySingle
	}
	cat := Category{ID: id.New(), Name: name, Type: arity, Items: []Entity{}}
	if err := cat.Validate(); err != nil {
		return Category{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	order := s.state.CompanySettings.CategoryOrder
	if order == nil {
		order = []string{SysProductTypes, SysProductSeries, SysUnits}
		for _, c := range s.state.AttributeCategories {
			order = append(order, c.ID)
		}
	}
	s.state.AttributeCategories = append(s.state.AttributeCategories, cat)
	s.state.CompanySettings.CategoryOrder = append(order, cat.ID)
	return cat, nil
}

// UpdateAttributeCategory renames a category.
func (s *Store) UpdateAttributeCategory(catID, name string) (Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.state.AttributeCategories {
		if s.state.AttributeCategories[i].ID == catID {
			if name == "" {
				return Category{}, apperror.NewValidation("name is required").
					WithDetail("field", "name")
			}
			s.state.AttributeCategories[i].Name = name
			return s.state.AttributeCategories[i], nil
		}
	}
	return Category{}, apperror.NewNotFound("attribute category", catID)
}

// DeleteAttributeCategory removes a category and strips its id from the
// category order. Quote items keep their snapshots.
func (s *Store) DeleteAttributeCategory(catID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.state.AttributeCategories {
		if s.state.AttributeCategories[i].ID == catID {
			s.state.AttributeCategories = append(
				s.state.AttributeCategories[:i], s.state.AttributeCategories[i+1:]...)
			order := s.state.CompanySettings.CategoryOrder
			for j := range order {
				if order[j] == catID {
					s.state.CompanySettings.CategoryOrder = append(order[:j], order[j+1:]...)
					break
				}
			}
			return nil
		}
	}
	return apperror.NewNotFound("attribute category", catID)
}

// AddAttributeItem appends a value to an attribute category.
func (s *Store) AddAttributeItem(catID string, e Entity) (Entity, error) {
	return s.addCategoryItem(&s.state.AttributeCategories, "attribute category", catID, e)
}

// UpdateAttributeItem replaces a value inside an attribute category.
func (s *Store) UpdateAttributeItem(catID, itemID string, e Entity) (Entity, error) {
	return s.updateCategoryItem(&s.state.AttributeCategories, "attribute category", catID, itemID, e)
}

// DeleteAttributeItem removes a value from an attribute category.
func (s *Store) DeleteAttributeItem(catID, itemID string) error {
	return s.deleteCategoryItem(&s.state.AttributeCategories, "attribute category", catID, itemID)
}

// --- Term categories ---

// TermCategories returns a copy of all term categories.
func (s *Store) TermCategories() []Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneCategories(s.state.TermCategories)
}

// AddTermCategory creates a term category. Term categories do not
// participate in the attribute display order.
func (s *Store) AddTermCategory(name string, arity Arity) (Category, error) {
	cat := Category{ID: id.New(), Name: name, Type: arity, Items: []Entity{}}
	if err := cat.Validate(); err != nil {
		return Category{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.TermCategories = append(s.state.TermCategories, cat)
	return cat, nil
}

// UpdateTermCategory renames a term category or changes its arity.
func (s *Store) UpdateTermCategory(catID string, name string, arity Arity) (Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.state.TermCategories {
		if s.state.TermCategories[i].ID == catID {
			if name != "" {
				s.state.TermCategories[i].Name = name
			}
			if arity != "" {
				if !arity.Valid() {
					return Category{}, apperror.NewValidation("invalid selection type").
						WithDetail("value", string(arity))
				}
				s.state.TermCategories[i].Type = arity
			}
			return s.state.TermCategories[i], nil
		}
	}
	return Category{}, apperror.NewNotFound("term category", catID)
}

// DeleteTermCategory removes a term category.
func (s *Store) DeleteTermCategory(catID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.state.TermCategories {
		if s.state.TermCategories[i].ID == catID {
			s.state.TermCategories = append(
				s.state.TermCategories[:i], s.state.TermCategories[i+1:]...)
			return nil
		}
	}
	return apperror.NewNotFound("term category", catID)
}

// AddTermItem appends a value to a term category.
func (s *Store) AddTermItem(catID string, e Entity) (Entity, error) {
	return s.addCategoryItem(&s.state.TermCategories, "term category", catID, e)
}

// UpdateTermItem replaces a value inside a term category.
func (s *Store) UpdateTermItem(catID, itemID string, e Entity) (Entity, error) {
	return s.updateCategoryItem(&s.state.TermCategories, "term category", catID, itemID, e)
}

// DeleteTermItem removes a value from a term category.
func (s *Store) DeleteTermItem(catID, itemID string) error {
	return s.deleteCategoryItem(&s.state.TermCategories, "term category", catID, itemID)
}

// --- Company settings ---

// Settings returns a copy of the company settings.
func (s *Store) Settings() CompanySettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSettings(s.state.CompanySettings)
}

// UpdateSettings merges non-zero fields into the company settings.
// CategoryOrder and CategoryLabels have dedicated mutators and are not
// touched here.
func (s *Store) UpdateSettings(patch CompanySettings) CompanySettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur := &s.state.CompanySettings
	if patch.Name != "" {
		cur.Name = patch.Name
	}
	if patch.Address != "" {
		cur.Address = patch.Address
	}
	if patch.Email != "" {
		cur.Email = patch.Email
	}
	if patch.Phone != "" {
		cur.Phone = patch.Phone
	}
	if patch.Website != "" {
		cur.Website = patch.Website
	}
	if patch.Logo != "" {
		cur.Logo = patch.Logo
	}
	if patch.LogoURL != "" {
		cur.LogoURL = patch.LogoURL
	}
	if patch.WatermarkURL != "" {
		cur.WatermarkURL = patch.WatermarkURL
	}
	if patch.TaxRate != 0 {
		cur.TaxRate = patch.TaxRate
	}
	if patch.SelectedTemplate != "" {
		cur.SelectedTemplate = patch.SelectedTemplate
	}
	return cloneSettings(*cur)
}

// UpdateCategoryLabel overrides the display label of one of the three
// fixed collections. Renaming a fixed collection updates the label
// mapping, never a Category record.
func (s *Store) UpdateCategoryLabel(key, label string) error {
	switch key {
	case LabelKeyProductTypes, LabelKeyProductSeries, LabelKeyUnits:
	default:
		return apperror.NewValidation("unknown system category").
			WithDetail("key", key)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.CompanySettings.CategoryLabels == nil {
		s.state.CompanySettings.CategoryLabels = map[string]string{}
	}
	s.state.CompanySettings.CategoryLabels[key] = label
	return nil
}

// ReorderCategories replaces the category order. Ids not present in the
// library are dropped; known categories missing from the requested
// order are appended at the end rather than lost.
func (s *Store) ReorderCategories(order []string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	known := map[string]bool{
		SysProductTypes:  true,
		SysProductSeries: true,
		SysUnits:         true,
	}
	for _, c := range s.state.AttributeCategories {
		known[c.ID] = true
	}

	merged := make([]string, 0, len(known))
	seen := map[string]bool{}
	for _, cid := range order {
		if known[cid] && !seen[cid] {
			merged = append(merged, cid)
			seen[cid] = true
		}
	}
	for _, cid := range []string{SysProductTypes, SysProductSeries, SysUnits} {
		if !seen[cid] {
			merged = append(merged, cid)
			seen[cid] = true
		}
	}
	for _, c := range s.state.AttributeCategories {
		if !seen[c.ID] {
			merged = append(merged, c.ID)
			seen[c.ID] = true
		}
	}

	s.state.CompanySettings.CategoryOrder = merged
	return append([]string(nil), merged...)
}

// --- Shared category item helpers ---

func (s *Store) addCategoryItem(cats *[]Category, entity, catID string, e Entity) (Entity, error) {
	if err := e.Validate(); err != nil {
		return Entity{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range *cats {
		if (*cats)[i].ID == catID {
			if e.ID == "" {
				e.ID = id.New()
			}
			(*cats)[i].Items = append((*cats)[i].Items, e)
			return e, nil
		}
	}
	return Entity{}, apperror.NewNotFound(entity, catID)
}

func (s *Store) updateCategoryItem(cats *[]Category, entity, catID, itemID string, e Entity) (Entity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range *cats {
		if (*cats)[i].ID != catID {
			continue
		}
		for j := range (*cats)[i].Items {
			if (*cats)[i].Items[j].ID == itemID {
				e.ID = itemID
				if err := e.Validate(); err != nil {
					return Entity{}, err
				}
				(*cats)[i].Items[j] = e
				return e, nil
			}
		}
		return Entity{}, apperror.NewNotFound("item", itemID)
	}
	return Entity{}, apperror.NewNotFound(entity, catID)
}

func (s *Store) deleteCategoryItem(cats *[]Category, entity, catID, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range *cats {
		if (*cats)[i].ID != catID {
			continue
		}
		items := (*cats)[i].Items
		for j := range items {
			if items[j].ID == itemID {
				(*cats)[i].Items = append(items[:j], items[j+1:]...)
				return nil
			}
		}
		return apperror.NewNotFound("item", itemID)
	}
	return apperror.NewNotFound(entity, catID)
}

// --- Cloning ---

func cloneState(st State) State {
	return State{
		ProductTypes:        cloneEntities(st.ProductTypes),
		ProductSeries:       cloneEntities(st.ProductSeries),
		Units:               cloneEntities(st.Units),
		AttributeCategories: cloneCategories(st.AttributeCategories),
		TermCategories:      cloneCategories(st.TermCategories),
		CompanySettings:     cloneSettings(st.CompanySettings),
	}
}

func cloneEntities(in []Entity) []Entity {
	if in == nil {
		return nil
	}
	out := make([]Entity, len(in))
	copy(out, in)
	return out
}

func cloneCategories(in []Category) []Category {
	if in == nil {
		return nil
	}
	out := make([]Category, len(in))
	for i, c := range in {
		c.Items = cloneEntities(c.Items)
		out[i] = c
	}
	return out
}

func cloneSettings(s CompanySettings) CompanySettings {
	out := s
	if s.CategoryLabels != nil {
		out.CategoryLabels = make(map[string]string, len(s.CategoryLabels))
		for k, v := range s.CategoryLabels {
			out.CategoryLabels[k] = v
		}
	}
	if s.CategoryOrder != nil {
		out.CategoryOrder = append([]string(nil), s.CategoryOrder...)
	}
	return out
}
