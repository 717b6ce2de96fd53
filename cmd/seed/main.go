// Package main provides a CLI tool for seeding a demo workspace and
// rendering sample documents from it.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"github.com/Huzeyfe22/otomatik-quote/internal/document"
	"github.com/Huzeyfe22/otomatik-quote/internal/domain/library"
	"github.com/Huzeyfe22/otomatik-quote/internal/domain/quote"
	"github.com/Huzeyfe22/otomatik-quote/internal/infrastructure/render"
	"github.com/Huzeyfe22/otomatik-quote/internal/infrastructure/storage/snapshot"
	"github.com/Huzeyfe22/otomatik-quote/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	store := library.NewStore()
	quotes := quote.NewService(store)

	if err := seedLibrary(store); err != nil {
		log.Fatalw("failed to seed library", "error", err)
	}
	log.Info("library seeded")

	if err := seedQuote(store, quotes); err != nil {
		log.Fatalw("failed to seed quote", "error", err)
	}
	log.Info("demo quote created")

	dataFile := getEnv("QUOTE_DATA_FILE", "data/workspace.json")
	snapStore := snapshot.NewStore(dataFile)
	err = snapStore.Save(&snapshot.Workspace{
		Library:      store.Snapshot(),
		CurrentQuote: quotes.Current(),
		SavedQuotes:  quotes.Saved(),
	})
	if err != nil {
		log.Fatalw("failed to save workspace", "file", dataFile, "error", err)
	}
	log.Infow("workspace saved", "file", dataFile)

	outDir := getEnv("SEED_OUT_DIR", "data")
	if err := renderSamples(store, quotes, outDir); err != nil {
		log.Fatalw("failed to render sample documents", "error", err)
	}
	log.Infow("sample documents rendered", "dir", outDir)
}

func seedLibrary(store *library.Store) error {
	store.UpdateSettings(library.CompanySettings{
		Name:             "Northlight Windows & Doors",
		Address:          "412 Harbourview Rd, Toronto, ON",
		Email:            "sales@northlight.example",
		Phone:            "(416) 555-0156",
		TaxRate:          13,
		SelectedTemplate: "modern_1",
	})

	for _, e := range []library.Entity{
		{Name: "Casement Window"},
		{Name: "Fixed Window"},
		{Name: "Patio Door"},
		{Name: "Installation Service", IsExtras: true},
	} {
		if _, err := store.AddSystemItem(library.CollectionProductTypes, e); err != nil {
			return err
		}
	}

	for _, e := range []library.Entity{
		{Name: "Series 100", HasDescription: true, Description: "Vinyl frame with fusion-welded corners."},
		{Name: "Series 300", HasDescription: true, Description: "Aluminum-clad wood frame."},
	} {
		if _, err := store.AddSystemItem(library.CollectionProductSeries, e); err != nil {
			return err
		}
	}

	for _, e := range []library.Entity{{Name: "Inches"}, {Name: "Centimeters"}} {
		if _, err := store.AddSystemItem(library.CollectionUnits, e); err != nil {
			return err
		}
	}

	glazing, err := store.AddAttributeCategory("Glazing", library.AritySingle)
	if err != nil {
		return err
	}
	for _, e := range []library.Entity{
		{Name: "Double Pane Low-E"},
		{Name: "Triple Pane", HasDescription: true, Description: "Argon filled, U-value 0.17."},
	} {
		if _, err := store.AddAttributeItem(glazing.ID, e); err != nil {
			return err
		}
	}

	color, err := store.AddAttributeCategory("Color", library.ArityMultiple)
	if err != nil {
		return err
	}
	for _, e := range []library.Entity{{Name: "Black Exterior"}, {Name: "White Interior"}} {
		if _, err := store.AddAttributeItem(color.ID, e); err != nil {
			return err
		}
	}

	termItems := map[string][]library.Entity{
		"inclusions": {
			{Name: "Supply of Units"},
			{Name: "Standard Glazing"},
			{Name: "Delivery to Site"},
		},
		"exclusions": {
			{Name: "Installation"},
			{Name: "Interior Trim"},
			{Name: "Permits"},
		},
		"paymentTerms": {
			{Name: "50% Deposit", HasDescription: true, Description: "Due upon signing."},
			{Name: "40% Prior to Delivery"},
			{Name: "10% Upon Completion"},
		},
		"leadTime": {
			{Name: "8-10 Weeks"},
		},
	}
	for catID, items := range termItems {
		for _, e := range items {
			if _, err := store.AddTermItem(catID, e); err != nil {
				return err
			}
		}
	}
	return nil
}

func seedQuote(store *library.Store, quotes *quote.Service) error {
	st := store.Snapshot()
	attrs := st.AttributeCategories

	item := quote.Item{
		ProductType:   st.ProductTypes[0],
		ProductSeries: st.ProductSeries[0],
		Attributes: map[string]library.Selection{
			attrs[0].ID: library.SelectOne(attrs[0].Items[1]),
			attrs[1].ID: library.SelectMany(attrs[1].Items...),
		},
		Width:          36,
		Height:         48,
		Unit:           st.Units[0],
		Quantity:       3,
		Price:          2850,
		HasScreen:      true,
		ShowDimensions: true,
	}
	if _, err := quotes.AddItem(item); err != nil {
		return err
	}

	extras := quote.Item{
		ProductType: st.ProductTypes[3],
		Name:        "Site Measurement",
		Quantity:    1,
		Price:       250,
	}
	if _, err := quotes.AddItem(extras); err != nil {
		return err
	}

	if _, err := quotes.UpdateClient(quote.ClientInfo{
		Name:    "Jordan Reyes",
		Address: "88 Birchmount Ave, Toronto, ON",
		Email:   "jordan@example.com",
	}, false); err != nil {
		return err
	}

	for _, catID := range []string{"inclusions", "exclusions", "paymentTerms", "leadTime"} {
		cat, err := termCategory(store, catID)
		if err != nil {
			return err
		}
		items := cat.Items
		if cat.Type == library.AritySingle && len(items) > 1 {
			items = items[:1]
		}
		if _, err := quotes.UpdateTerms(catID, items); err != nil {
			return err
		}
	}

	name := "Reyes Residence"
	if _, err := quotes.UpdateMeta(quote.MetaPatch{Name: &name}); err != nil {
		return err
	}
	if _, err := quotes.NextNumber(time.Now()); err != nil {
		return err
	}
	_, err := quotes.Save()
	return err
}

func termCategory(store *library.Store, catID string) (library.Category, error) {
	for _, cat := range store.TermCategories() {
		if cat.ID == catID {
			return cat, nil
		}
	}
	return library.Category{}, fmt.Errorf("term category %s not seeded", catID)
}

func renderSamples(store *library.Store, quotes *quote.Service, outDir string) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}

	q := quotes.Current()
	settings := store.Settings()
	categories := store.AttributeCategories()
	renderer := render.NewPDF()

	quoteDoc, err := document.BuildQuoteDocument(q, settings, categories, store.TermCategories())
	if err != nil {
		return err
	}
	quotePDF, err := renderer.Render(quoteDoc)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(outDir, "sample-quote.pdf"), quotePDF, 0o644); err != nil {
		return err
	}

	contractDoc, err := document.BuildContractDocument(q, settings, categories, time.Now())
	if err != nil {
		return err
	}
	contractPDF, err := renderer.Render(contractDoc)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(outDir, "sample-contract.pdf"), contractPDF, 0o644)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
