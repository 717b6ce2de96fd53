package richtext

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Block
	}{
		{"blank", "", Block{Kind: Spacer}},
		{"whitespace only", "   ", Block{Kind: Spacer}},
		{"numbered heading", "1. Scope of Work", Block{Kind: Heading, Text: "1. Scope of Work"}},
		{"multi digit heading", "12. Final Terms", Block{Kind: Heading, Text: "12. Final Terms"}},
		{"caps subheading", "PAYMENT TERMS:", Block{Kind: Subheading, Text: "PAYMENT TERMS:"}},
		{"caps with ampersand", "SUPPLY & INSTALL (ALL):", Block{Kind: Subheading, Text: "SUPPLY & INSTALL (ALL):"}},
		{"star bullet", "* Supply of units", Block{Kind: Bullet, Text: "Supply of units"}},
		{"dash bullet", "- Interior trim", Block{Kind: Bullet, Text: "Interior trim"}},
		{"plain paragraph", "All prices in effect for 30 days.", Block{Kind: Paragraph, Text: "All prices in effect for 30 days."}},
		{"mixed case colon is paragraph", "Payment Terms:", Block{Kind: Paragraph, Text: "Payment Terms:"}},
		{"number without dot is paragraph", "10 Years", Block{Kind: Paragraph, Text: "10 Years"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.line)
			if tt.line == "" {
				// Empty input yields no blocks at all.
				assert.Nil(t, got)
				return
			}
			assert.Equal(t, []Block{tt.want}, got)
		})
	}
}

func TestClassify_MultiLine(t *testing.T) {
	text := "1. Warranty\n\nGLASS:\n* 10 Years sealed units\nAll warranty claims in writing."
	got := Classify(text)
	want := []Block{
		{Kind: Heading, Text: "1. Warranty"},
		{Kind: Spacer},
		{Kind: Subheading, Text: "GLASS:"},
		{Kind: Bullet, Text: "10 Years sealed units"},
		{Kind: Paragraph, Text: "All warranty claims in writing."},
	}
	assert.Equal(t, want, got)
}

func TestClassify_BareMarker(t *testing.T) {
	got := Classify("*")
	assert.Equal(t, []Block{{Kind: Bullet, Text: ""}}, got)
}
