package synthesis

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Huzeyfe22/otomatik-quote/internal/domain/library"
	"github.com/Huzeyfe22/otomatik-quote/internal/domain/pricing"
	"github.com/Huzeyfe22/otomatik-quote/internal/domain/quote"
)

// Term category ids the contract reads selections from.
const (
	TermInclusions   = "inclusions"
	TermExclusions   = "exclusions"
	TermPaymentTerms = "paymentTerms"
	TermLeadTime     = "leadTime"
)

// Defaults used when neither keyword extraction nor term selections
// yield a value.
const (
	defaultGlassWarranty   = "10 Years"
	defaultFrameWarranty   = "10 Years"
	defaultHardwareWarr    = "2 Years"
	defaultInstallWarranty = "1 Year"
	defaultLeadTime        = "8-10 Weeks"
	defaultPaymentSchedule = "50% Deposit upon signing, 40% Prior to Delivery, 10% Upon Completion"
	defaultInclusions      = "Supply of Units, Standard Glazing"
	defaultExclusions      = "Installation, Interior Trim, Final Cleaning, Permits, Structural Support"
	defaultContractTaxRate = 13.0
)

// ProductSpec is one item's contract-flavored specification card.
type ProductSpec struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Clause is one dynamically numbered legal clause.
type Clause struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// ContractData is the full textual content of a contract document.
type ContractData struct {
	Intro       string         `json:"intro"`
	ProjectInfo string         `json:"projectInfo"`
	Products    []ProductSpec  `json:"products"`
	Financials  string         `json:"financials"`
	Clauses     []Clause       `json:"clauses"`
	Totals      pricing.Totals `json:"totals"`
}

// GenerateContractData assembles the contract prose for a quote. Term
// values resolve through a three-tier chain: keyword extraction from
// the free-text terms field, then structured term selections, then
// hardcoded defaults. The quote is read only, never mutated.
func GenerateContractData(q *quote.Quote, settings library.CompanySettings, categories []library.Category, now time.Time) ContractData {
	userTerms := q.Terms
	fmtCA := pricing.ContractFormatter()

	totals := contractTotals(q, settings)

	return ContractData{
		Intro:       introText(q, settings, now),
		ProjectInfo: projectInfoText(q),
		Products:    productSpecs(q, settings, categories),
		Financials:  financialText(totals, fmtCA),
		Clauses: []Clause{
			{ID: "technical", Title: "Site Readiness & Permits", Content: technicalText},
			{ID: "changes", Title: "Drawings & Changes", Content: changesText},
			{ID: "legal", Title: "Terms of Sale & Liability", Content: legalText},
			{ID: "payment", Title: "Payment Schedule", Content: paymentText(q, userTerms)},
			{ID: "warranty", Title: "Warranty & Exclusions", Content: warrantyText(userTerms)},
			{ID: "leadTime", Title: "Timeline & Delivery", Content: leadTimeText(q, userTerms)},
			{ID: "inclusions", Title: "Scope of Work", Content: scopeText(q)},
		},
		Totals: totals,
	}
}

// contractTotals applies the contract's tax chain: quote rate, then
// company rate, then 13 percent.
func contractTotals(q *quote.Quote, settings library.CompanySettings) pricing.Totals {
	sub := coerce(q.TotalPrice)
	if q.IsManualPricing && q.ManualSubtotal != nil {
		sub = coerce(*q.ManualSubtotal)
	}
	rate := coerce(q.TaxRate)
	if rate == 0 {
		rate = coerce(settings.TaxRate)
	}
	if rate == 0 {
		rate = defaultContractTaxRate
	}
	d := decimal.NewFromFloat(sub).Round(2)
	tax := d.Mul(decimal.NewFromFloat(rate)).Div(decimal.NewFromInt(100)).Round(2)
	return pricing.Totals{
		Subtotal: d.InexactFloat64(),
		TaxRate:  rate,
		Tax:      tax.InexactFloat64(),
		Total:    d.Add(tax).InexactFloat64(),
	}
}

// selectedTermNames joins the names selected in one term category, or
// returns the fallback when nothing is selected.
func selectedTermNames(q *quote.Quote, categoryID, fallback string) string {
	items := q.SelectedTerms[categoryID]
	if len(items) == 0 {
		return fallback
	}
	names := make([]string, len(items))
	for i, it := range items {
		names[i] = it.Name
	}
	return strings.Join(names, ", ")
}

func introText(q *quote.Quote, settings library.CompanySettings, now time.Time) string {
	client := q.Client.Name
	if client == "" {
		client = "[CLIENT NAME]"
	}
	project := q.Name
	if project == "" {
		project = "[PROJECT NAME]"
	}
	return fmt.Sprintf(`THIS SUPPLY AGREEMENT (the "Agreement") is made and entered into on this %s, by and between:

SELLER:
%s
(Hereinafter referred to as the "Supplier")

BUYER:
%s
(Hereinafter referred to as the "Client")

PROJECT REFERENCE:
"%s"

RECITALS:
WHEREAS, the Client wishes to purchase custom architectural fenestration products and related services; and
WHEREAS, the Supplier specializes in the fabrication, supply, and/or installation of such high-performance systems;
NOW, THEREFORE, in consideration of the mutual covenants, promises, and payments herein contained, the parties agree as follows:

1. ENTIRE AGREEMENT
This Agreement, including all attached schedules and specifications, constitutes the entire agreement between the parties and supersedes all prior negotiations, representations, or agreements, whether written or oral. No modification to this Agreement shall be binding unless made in writing and signed by authorized representatives of both parties.`,
		now.Format("January 2, 2006"), settings.Name, client, project)
}

func projectInfoText(q *quote.Quote) string {
	address := q.Client.Address
	if address == "" {
		address = "[DELIVERY ADDRESS NOT PROVIDED]"
	}
	name := orNA(q.Client.Name)
	return fmt.Sprintf(`1. SITE LOCATION & DELIVERY:
%s

2. CONTACT INFORMATION:
Client Representative: %s
Email: %s | Phone: %s

3. VERIFICATION OF CONDITIONS:
The Client acknowledges that all manufacturing dimensions are critical. The Supplier reserves the right to conduct a final site measurement. If actual site conditions differ materially from the initial drawings, the Supplier reserves the right to adjust the Contract Price accordingly via a Change Order.`,
		address, name, orNA(q.Client.Email), orNA(q.Client.Phone))
}

// productSpecs builds one specification card per item. A custom
// description replaces the derived content wholesale.
func productSpecs(q *quote.Quote, settings library.CompanySettings, categories []library.Category) []ProductSpec {
	specs := make([]ProductSpec, 0, len(q.Items))
	for _, it := range q.Items {
		title := fmt.Sprintf("%dx %s", it.Quantity, it.DisplayName())
		content := ""
		if it.IsCustomDescription && it.Description != "" {
			content = it.Description
		} else {
			content = AutoDescription(it, settings, categories)
		}
		specs = append(specs, ProductSpec{ID: it.ID, Title: title, Content: content})
	}
	return specs
}

func financialText(t pricing.Totals, f *pricing.Formatter) string {
	return fmt.Sprintf(`INVESTMENT SUMMARY & OBLIGATIONS:

    Net Product Value:      %s
    Applicable Taxes (%s): %s
    --------------------------------
    TOTAL CONTRACT VALUE:   %s

    * Validity: Valid for 30 days from Agreement Date.
    * Currency: All amounts are in Canadian Dollars (CAD) unless otherwise noted.
    * Price Escalation: Prices are based on current raw material costs. In the event of significant industry-wide price increases (Aluminum, Glass) prior to the Deposit date, the Supplier reserves the right to adjust pricing with written notice.`,
		f.Money(t.Subtotal), f.Percent(t.TaxRate), f.Money(t.Tax), f.Money(t.Total))
}

// paymentText resolves the payment schedule. Structured selections win
// and render as bullets with indented descriptions; otherwise keyword
// extraction, then the default schedule.
func paymentText(q *quote.Quote, userTerms string) string {
	var schedule string
	if items := q.SelectedTerms[TermPaymentTerms]; len(items) > 0 {
		lines := make([]string, len(items))
		for i, it := range items {
			line := "• " + it.Name
			if it.Description != "" {
				line += "\n  (" + it.Description + ")"
			}
			lines[i] = line
		}
		schedule = strings.Join(lines, "\n")
	} else {
		schedule = ExtractDuration(userTerms, "Payment", "")
		if schedule == "" {
			schedule = defaultPaymentSchedule
		}
	}
	return fmt.Sprintf(`PAYMENT TERMS & FINANCIAL CONDITIONS:

Production is strictly contingent upon receipt of the Deposit and signed Shop Drawings.

    SCHEDULE:
%s

    * Interest: Overdue accounts bear interest at 2%% per month (24%% per annum).
    * Suspension of Work: The Supplier reserves the right to suspend work or delivery if any payment is overdue.
    * No Holdback: Unless explicitly agreed in writing, no statutory holdback applies to the supply of materials.
    * Collection Costs: The Client agrees to pay all costs of collection, including reasonable legal fees, in the event of default.`,
		schedule)
}

func warrantyText(userTerms string) string {
	return fmt.Sprintf(`LIMITED WARRANTY & EXCLUSIONS:

The Supplier warrants its products to be free from defects in material and workmanship for the periods specified below:

    A) INSULATED GLASS: %s (Seal failure/obstruction).
    B) FRAMING SYSTEM: %s (Abnormal fading/peeling).
    C) HARDWARE: %s (Mechanical failure).
    D) LABOR: %s (If installed by Supplier).

EXCLUSIONS & VOIDING OF WARRANTY:
1. THERMAL STRESS: Glass breakage due to thermal stress or spontaneous breakage is excluded.
2. CHEMICAL DAMAGE: Damage caused by brick wash, harsh solvents, or abrasive cleaners voids the finish warranty.
3. CONSTRUCTION DEBRIS (CRITICAL):
   The high-performance hardware is sensitive to dust. DAMAGE CAUSED BY DRYWALL DUST, SANDING, OR PLASTER IS STRICTLY EXCLUDED. The Client must protect hardware during construction.
4. UNAUTHORIZED MODIFICATION: Any alteration or repair attempted by non-authorized personnel voids all warranties.`,
		ExtractDuration(userTerms, "Glass", defaultGlassWarranty),
		ExtractDuration(userTerms, "Frame", defaultFrameWarranty),
		ExtractDuration(userTerms, "Hardware", defaultHardwareWarr),
		ExtractDuration(userTerms, "Installation", defaultInstallWarranty))
}

func leadTimeText(q *quote.Quote, userTerms string) string {
	fallback := selectedTermNames(q, TermLeadTime, defaultLeadTime)
	lead := ExtractDuration(userTerms, "Lead Time", fallback)
	return fmt.Sprintf(`PROJECT TIMELINE & DELIVERY:

    ESTIMATED LEAD TIME: %s

    * Commencement: Lead Time begins ONLY after: (1) Deposit Receipt, (2) Final Measurements, (3) Signed Shop Drawings.
    * Estimates Only: All dates are estimates subject to global supply chain variables. The Supplier shall not be penalized for delays beyond its control.
    * Storage Fees: If the Client is unable to accept delivery within 14 days of notification of readiness, a storage fee of 1%% of the contract value per week may be charged.`,
		lead)
}

func scopeText(q *quote.Quote) string {
	return fmt.Sprintf(`SCOPE OF WORK DEFINITION:

INCLUDED:
%s

EXPLICITLY EXCLUDED (CLIENT RESPONSIBILITY):
%s
(The Supplier assumes no liability for work performed by other trades. Any item not listed in "Included" is deemed excluded.)`,
		selectedTermNames(q, TermInclusions, defaultInclusions),
		selectedTermNames(q, TermExclusions, defaultExclusions))
}

const technicalText = `SITE READINESS, PERMITS & RESPONSIBILITIES:

1. BUILDING PERMITS & COMPLIANCE:
The Client certifies that it has obtained all necessary building permits and is in compliance with all applicable laws. The Supplier has no responsibility to obtain building permits or ensure the Improvement complies with applicable laws.

2. WORKMANSHIP & CODES:
The Supplier agrees that all work performed shall be in a good and workmanlike manner and comply with applicable building codes relevant to the fenestration product itself.

3. STRUCTURE & FRAMING RESPONSIBILITY:
The Supplier is NOT responsible for the building structure. The stability of the frames/bucks around the windows and doors is the Customer's sole responsibility.

4. FRAMING IRREGULARITIES:
Any installation delays or additional job-site visits resulting from improper framing (out of square, not plumb, loose bucks) will be subject to additional charges billed to the Customer.

5. ROUGH OPENINGS:
Openings must be prepared 1 inch (25mm) wider and 1 inch (25mm) taller than the Net Frame Size. The Supplier accepts no liability for fitment issues caused by irregular openings.`

const changesText = `DRAWINGS & CHANGE ORDERS:

1. APPROVAL PROCESS:
Each window and door drawing will be submitted to the Customer for review. Production will not commence until these shop drawings are signed and approved.

2. CHANGES AFTER APPROVAL:
After agreement and confirmation of shop drawings, ANY change requested by the Customer will be subject to additional charges and potential schedule delays.`

const legalText = `TERMS OF SALE & LIABILITY:

1. TITLE & OWNERSHIP:
The title and ownership of the goods shall remain with the Supplier until all amounts are paid in full.

2. CUSTOM PRODUCTS & TERMINATION:
The Customer understands that products purchased under this agreement are unique and custom-made. Upon signing this agreement, the Customer agrees to pay the FULL contract price in the event the Customer chooses to terminate the contract prior to completion.

3. DAMAGE BY OTHERS:
The Supplier is not responsible for any damage caused to the windows and doors by other contractors working on site after the completion of the installation (or delivery).

4. FORCE MAJEURE & DELAYS:
The Supplier is not responsible for delays caused by port strikes, strikes at rail/transport lines, lockouts, natural disasters, unexpected weather conditions, or government lockdowns.

5. NON-ASSIGNABILITY:
This contract may not be assigned by the Customer to a third party without written consent.

6. GOVERNING LAW:
Customer and Supplier agree that they each have the right and authority to enter this contract. In the event of a dispute, the laws of Ontario shall apply.`

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func coerce(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
