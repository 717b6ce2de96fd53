package quote

import (
	"strings"
	"sync"
	"time"

	"github.com/Huzeyfe22/otomatik-quote/internal/core/apperror"
	"github.com/Huzeyfe22/otomatik-quote/internal/core/id"
	"github.com/Huzeyfe22/otomatik-quote/internal/domain/library"
	"github.com/Huzeyfe22/otomatik-quote/pkg/numerator"
)

// Service owns the current quote being built and the saved quote list.
// Every item mutation recomputes the aggregate total.
type Service struct {
	mu      sync.RWMutex
	current *Quote
	saved   []Quote
	store   *library.Store
}

// NewService creates a quote service backed by the taxonomy store
// (used for tax-rate snapshots and unit defaults).
func NewService(store *library.Store) *Service {
	return &Service{store: store}
}

// Restore replaces the in-memory state from loaded workspace content.
func (s *Service) Restore(current *Quote, saved []Quote) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = current.Clone()
	s.saved = make([]Quote, len(saved))
	for i := range saved {
		s.saved[i] = *saved[i].Clone()
	}
}

// Current returns a copy of the quote under construction, initializing
// a fresh one on first use.
func (s *Service) Current() *Quote {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureCurrent()
	return s.current.Clone()
}

// SetCurrent replaces the quote under construction wholesale, e.g. when
// the client pushes imported state. The total is recomputed; a stale
// incoming value is never trusted.
func (s *Service) SetCurrent(q *Quote) (*Quote, error) {
	if q == nil {
		return nil, apperror.NewValidation("quote is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := q.Clone()
	if cp.ID == "" {
		cp.ID = id.New()
	}
	if cp.SelectedTerms == nil {
		cp.SelectedTerms = map[string][]library.Entity{}
	}
	cp.Recompute()
	cp.UpdatedAt = time.Now().UTC()
	s.current = cp
	return cp.Clone(), nil
}

// AddItem validates, normalizes, and appends a line item.
func (s *Service) AddItem(item Item) (*Quote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureCurrent()

	units, _ := s.store.SystemItems(library.CollectionUnits)
	item.Normalize(units)
	if err := item.Validate(); err != nil {
		return nil, err
	}
	if item.ID == "" {
		item.ID = id.New()
	}
	s.current.Items = append(s.current.Items, item)
	s.touch()
	return s.current.Clone(), nil
}

// UpdateItem replaces an existing line item, preserving its id.
func (s *Service) UpdateItem(itemID string, item Item) (*Quote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureCurrent()

	existing := s.current.ItemByID(itemID)
	if existing == nil {
		return nil, apperror.NewNotFound("quote item", itemID)
	}
	units, _ := s.store.SystemItems(library.CollectionUnits)
	item.Normalize(units)
	item.ID = itemID
	if err := item.Validate(); err != nil {
		return nil, err
	}
	*existing = item
	s.touch()
	return s.current.Clone(), nil
}

// RemoveItem deletes a line item.
func (s *Service) RemoveItem(itemID string) (*Quote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureCurrent()

	for i := range s.current.Items {
		if s.current.Items[i].ID == itemID {
			s.current.Items = append(s.current.Items[:i], s.current.Items[i+1:]...)
			s.touch()
			return s.current.Clone(), nil
		}
	}
	return nil, apperror.NewNotFound("quote item", itemID)
}

// DuplicateItem copies a line item under a new id.
func (s *Service) DuplicateItem(itemID string) (*Quote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureCurrent()

	src := s.current.ItemByID(itemID)
	if src == nil {
		return nil, apperror.NewNotFound("quote item", itemID)
	}
	dup := src.clone()
	dup.ID = id.New()
	s.current.Items = append(s.current.Items, dup)
	s.touch()
	return s.current.Clone(), nil
}

// UpdateTerms sets the selection for one term category.
func (s *Service) UpdateTerms(categoryID string, items []library.Entity) (*Quote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureCurrent()

	if s.current.SelectedTerms == nil {
		s.current.SelectedTerms = map[string][]library.Entity{}
	}
	s.current.SelectedTerms[categoryID] = append([]library.Entity(nil), items...)
	s.current.UpdatedAt = time.Now().UTC()
	return s.current.Clone(), nil
}

// UpdateClient merges client fields. Empty strings leave existing
// values untouched; the Show* flags are always applied.
func (s *Service) UpdateClient(c ClientInfo, applyFlags bool) (*Quote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureCurrent()

	cur := &s.current.Client
	if c.Name != "" {
		cur.Name = c.Name
	}
	if c.Address != "" {
		cur.Address = c.Address
	}
	if c.Email != "" {
		cur.Email = c.Email
	}
	if c.Phone != "" {
		cur.Phone = c.Phone
	}
	if applyFlags {
		cur.ShowEmail = c.ShowEmail
		cur.ShowPhone = c.ShowPhone
	}
	s.current.UpdatedAt = time.Now().UTC()
	return s.current.Clone(), nil
}

// MetaPatch carries optional quote metadata updates.
type MetaPatch struct {
	Name            *string    `json:"name,omitempty"`
	QuoteDate       *time.Time `json:"quoteDate,omitempty"`
	ShowQuoteName   *bool      `json:"showQuoteName,omitempty"`
	ShowQuoteDate   *bool      `json:"showQuoteDate,omitempty"`
	HasCoverPage    *bool      `json:"hasCoverPage,omitempty"`
	Terms           *string    `json:"terms,omitempty"`
	IsManualPricing *bool      `json:"isManualPricing,omitempty"`
	ManualSubtotal  *float64   `json:"manualSubtotal,omitempty"`
	TaxRate         *float64   `json:"taxRate,omitempty"`
}

// UpdateMeta applies a metadata patch.
func (s *Service) UpdateMeta(p MetaPatch) (*Quote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureCurrent()

	q := s.current
	if p.Name != nil {
		q.Name = *p.Name
	}
	if p.QuoteDate != nil {
		q.QuoteDate = *p.QuoteDate
	}
	if p.ShowQuoteName != nil {
		q.ShowQuoteName = *p.ShowQuoteName
	}
	if p.ShowQuoteDate != nil {
		q.ShowQuoteDate = *p.ShowQuoteDate
	}
	if p.HasCoverPage != nil {
		q.HasCoverPage = *p.HasCoverPage
	}
	if p.Terms != nil {
		q.Terms = *p.Terms
	}
	if p.IsManualPricing != nil {
		q.IsManualPricing = *p.IsManualPricing
	}
	if p.ManualSubtotal != nil {
		v := safeNumber(*p.ManualSubtotal)
		q.ManualSubtotal = &v
	}
	if p.TaxRate != nil {
		q.TaxRate = safeNumber(*p.TaxRate)
	}
	q.UpdatedAt = time.Now().UTC()
	return q.Clone(), nil
}

// UpdateNotes sets the extra notes block and its visibility toggle.
func (s *Service) UpdateNotes(notes string, show bool) (*Quote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureCurrent()

	s.current.ExtraNotes = notes
	s.current.ShowExtraNotes = show
	s.current.UpdatedAt = time.Now().UTC()
	return s.current.Clone(), nil
}

// SetNumber assigns a quote number.
func (s *Service) SetNumber(number string) (*Quote, error) {
	if strings.TrimSpace(number) == "" {
		return nil, apperror.NewValidation("quote number is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureCurrent()

	s.current.QuoteNumber = number
	s.current.UpdatedAt = time.Now().UTC()
	return s.current.Clone(), nil
}

// NextNumber generates and assigns the next date-scoped quote number,
// scanning saved quotes for the day's sequence.
func (s *Service) NextNumber(now time.Time) (*Quote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureCurrent()

	existing := make([]string, 0, len(s.saved))
	for i := range s.saved {
		if s.saved[i].QuoteNumber != "" {
			existing = append(existing, s.saved[i].QuoteNumber)
		}
	}
	s.current.QuoteNumber = numerator.Next(existing, now)
	s.current.UpdatedAt = time.Now().UTC()
	return s.current.Clone(), nil
}

// Save stores the current quote in the saved list, replacing a previous
// save with the same id. Returns the saved copy.
func (s *Service) Save() (*Quote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil, apperror.NewValidation("no quote in progress")
	}
	cp := *s.current.Clone()
	for i := range s.saved {
		if s.saved[i].ID == cp.ID {
			s.saved[i] = cp
			return cp.Clone(), nil
		}
	}
	s.saved = append(s.saved, cp)
	return cp.Clone(), nil
}

// Saved returns copies of all saved quotes.
func (s *Service) Saved() []Quote {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Quote, len(s.saved))
	for i := range s.saved {
		out[i] = *s.saved[i].Clone()
	}
	return out
}

// SavedByID returns a copy of one saved quote.
func (s *Service) SavedByID(quoteID string) (*Quote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.saved {
		if s.saved[i].ID == quoteID {
			return s.saved[i].Clone(), nil
		}
	}
	return nil, apperror.NewNotFound("quote", quoteID)
}

// Load makes a saved quote the current one.
func (s *Service) Load(quoteID string) (*Quote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.saved {
		if s.saved[i].ID == quoteID {
			s.current = s.saved[i].Clone()
			return s.current.Clone(), nil
		}
	}
	return nil, apperror.NewNotFound("quote", quoteID)
}

// DeleteSaved removes a saved quote. The current quote is unaffected
// even when it originated from the deleted save.
func (s *Service) DeleteSaved(quoteID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.saved {
		if s.saved[i].ID == quoteID {
			s.saved = append(s.saved[:i], s.saved[i+1:]...)
			return nil
		}
	}
	return apperror.NewNotFound("quote", quoteID)
}

// ImportSaved merges quotes into the saved list. A quote whose id is
// already present replaces the stored copy; the rest are appended in
// input order. It reports how many quotes were merged.
func (s *Service) ImportSaved(quotes []Quote) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, q := range quotes {
		if q.ID == "" {
			q.ID = id.New()
		}
		cp := *q.Clone()
		replaced := false
		for i := range s.saved {
			if s.saved[i].ID == cp.ID {
				s.saved[i] = cp
				replaced = true
				break
			}
		}
		if !replaced {
			s.saved = append(s.saved, cp)
		}
	}
	return len(quotes)
}

// Duplicate copies a saved quote under a new id and name.
func (s *Service) Duplicate(quoteID string) (*Quote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.saved {
		if s.saved[i].ID == quoteID {
			cp := s.saved[i].Clone()
			cp.ID = id.New()
			cp.Name = cp.Name + " (Copy)"
			now := time.Now().UTC()
			cp.CreatedAt = now
			cp.UpdatedAt = now
			s.saved = append(s.saved, *cp)
			return cp.Clone(), nil
		}
	}
	return nil, apperror.NewNotFound("quote", quoteID)
}

// ensureCurrent lazily initializes the quote under construction,
// snapshotting the company tax rate. Callers must hold the lock.
func (s *Service) ensureCurrent() {
	if s.current != nil {
		return
	}
	now := time.Now().UTC()
	s.current = &Quote{
		ID:            id.New(),
		Name:          "New Quote",
		Client:        ClientInfo{},
		Items:         []Item{},
		SelectedTerms: map[string][]library.Entity{},
		TaxRate:       s.store.Settings().TaxRate,
		HasCoverPage:  true,
		ShowQuoteDate: true,
		QuoteDate:     now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// touch recomputes the total and bumps the updated timestamp. Callers
// must hold the lock.
func (s *Service) touch() {
	s.current.Recompute()
	s.current.UpdatedAt = time.Now().UTC()
}
