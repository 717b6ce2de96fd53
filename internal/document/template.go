package document

// HeaderLayout positions the company block in the page header.
type HeaderLayout string

const (
	HeaderLeft   HeaderLayout = "left"
	HeaderRight  HeaderLayout = "right"
	HeaderCenter HeaderLayout = "center"
)

// Theme is a visual template for generated documents. Colors are hex
// strings without alpha.
type Theme struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	PrimaryColor   string       `json:"primaryColor"`
	SecondaryColor string       `json:"secondaryColor"`
	HeaderLayout   HeaderLayout `json:"headerLayout"`
	FontFamily     string       `json:"fontFamily,omitempty"`
	MinimalTables  bool         `json:"minimalTables,omitempty"`
	Background     string       `json:"background,omitempty"`
}

// Themes lists the selectable templates in display order.
var Themes = []Theme{
	{ID: "modern_1", Name: "Modern Blue (Default)", PrimaryColor: "#2563eb", SecondaryColor: "#1e40af", HeaderLayout: HeaderLeft},
	{ID: "modern_2", Name: "Modern Slate", PrimaryColor: "#475569", SecondaryColor: "#334155", HeaderLayout: HeaderRight},
	{ID: "classic_1", Name: "Classic Serif", PrimaryColor: "#0f172a", SecondaryColor: "#000000", HeaderLayout: HeaderCenter, FontFamily: "Times"},
	{ID: "minimal_1", Name: "Minimalist", PrimaryColor: "#000000", SecondaryColor: "#555555", HeaderLayout: HeaderLeft, MinimalTables: true},
	{ID: "bold_1", Name: "Bold Red", PrimaryColor: "#dc2626", SecondaryColor: "#991b1b", HeaderLayout: HeaderLeft},
	{ID: "nature_1", Name: "Nature Green", PrimaryColor: "#16a34a", SecondaryColor: "#15803d", HeaderLayout: HeaderRight},
	{ID: "royal_1", Name: "Royal Gold", PrimaryColor: "#ca8a04", SecondaryColor: "#854d0e", HeaderLayout: HeaderCenter},
	{ID: "tech_1", Name: "Tech Cyan", PrimaryColor: "#0891b2", SecondaryColor: "#0e7490", HeaderLayout: HeaderLeft},
	{ID: "dark_1", Name: "Dark Mode", PrimaryColor: "#1e293b", SecondaryColor: "#0f172a", HeaderLayout: HeaderLeft, Background: "#f8fafc"},
	{ID: "elegant_1", Name: "Elegant Purple", PrimaryColor: "#7c3aed", SecondaryColor: "#5b21b6", HeaderLayout: HeaderCenter},
}

// ThemeByID resolves a template id, falling back to the first theme
// for unknown or empty ids.
func ThemeByID(themeID string) Theme {
	for _, t := range Themes {
		if t.ID == themeID {
			return t
		}
	}
	return Themes[0]
}
