package display

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/ehr/nhcx-viewer/internal/platform/fhir"
	"github.com/ehr/nhcx-viewer/pkg/fhirmodels"
)

// NA is the placeholder rendered for any absent value.
const NA = "N/A"

// LongDateLayout renders dates as "2 January 2006".
const LongDateLayout = "2 January 2006"

var locale = language.Make("en-IN")

// Text returns s, or NA when empty.
func Text(s string) string {
	if strings.TrimSpace(s) == "" {
		return NA
	}
	return s
}

// CodeableConceptText renders the first coding's display, then its code.
// Free text on the concept is not consulted.
func CodeableConceptText(cc *fhir.CodeableConcept) string {
	if cc == nil || len(cc.Coding) == 0 {
		return NA
	}
	first := cc.Coding[0]
	if first.Display != "" {
		return first.Display
	}
	if first.Code != "" {
		return first.Code
	}
	return NA
}

// CodeableConceptsText joins the rendering of each concept with ", ".
func CodeableConceptsText(ccs []fhir.CodeableConcept) string {
	if len(ccs) == 0 {
		return NA
	}
	parts := make([]string, 0, len(ccs))
	for i := range ccs {
		parts = append(parts, CodeableConceptText(&ccs[i]))
	}
	return strings.Join(parts, ", ")
}

// MoneyText renders a Money in the en-IN locale. A missing or zero value
// renders as NA.
func MoneyText(m *fhir.Money) string {
	if m == nil || m.Value == nil || *m.Value == 0 {
		return NA
	}
	code := m.Currency
	if code == "" {
		code = fhirmodels.DefaultCurrency
	}
	return formatAmount(*m.Value, code)
}

// AmountText renders a bare amount in the default currency. Zero renders as
// NA, matching MoneyText.
func AmountText(v float64) string {
	if v == 0 {
		return NA
	}
	return formatAmount(v, fhirmodels.DefaultCurrency)
}

func formatAmount(v float64, code string) string {
	p := message.NewPrinter(locale)

	var num string
	if v == float64(int64(v)) {
		num = p.Sprintf("%v", number.Decimal(v, number.MaxFractionDigits(0)))
	} else {
		num = p.Sprintf("%v", number.Decimal(v, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
	}

	unit, err := currency.ParseISO(code)
	if err != nil {
		return fmt.Sprintf("%s %s", code, num)
	}
	sym := p.Sprint(currency.NarrowSymbol(unit))
	if strings.HasPrefix(num, "-") {
		return "-" + sym + strings.TrimPrefix(num, "-")
	}
	return sym + num
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// DateText renders a FHIR date or dateTime in long form. Partial dates keep
// only the parts they carry; unparseable input is returned as given.
func DateText(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return NA
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(LongDateLayout)
		}
	}
	if t, err := time.Parse("2006-01", s); err == nil {
		return t.Format("January 2006")
	}
	if t, err := time.Parse("2006", s); err == nil {
		return t.Format("2006")
	}
	return s
}

// PeriodText renders "<start> - <end>", each side independently NA.
func PeriodText(p *fhir.Period) string {
	if p == nil {
		return NA + " - " + NA
	}
	return DateText(p.Start) + " - " + DateText(p.End)
}

// NamesText renders the first name in the list.
func NamesText(names []fhir.HumanName) string {
	if len(names) == 0 {
		return NA
	}
	n := names[0]
	if strings.TrimSpace(n.Text) != "" {
		return n.Text
	}
	full := strings.TrimSpace(strings.Join(n.Given, " ") + " " + n.Family)
	if full == "" {
		return NA
	}
	return full
}

// IdentifiersText renders each identifier as "<system tail>: <value>".
func IdentifiersText(ids []fhir.Identifier) string {
	if len(ids) == 0 {
		return NA
	}
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, systemTail(id.System)+": "+Text(id.Value))
	}
	return strings.Join(parts, ", ")
}

func systemTail(system string) string {
	trimmed := strings.TrimRight(system, "/")
	if i := strings.LastIndexAny(trimmed, "/:"); i >= 0 {
		trimmed = trimmed[i+1:]
	}
	return Text(trimmed)
}

// ReferenceText prefers the display, then the literal reference, then a
// logical identifier value.
func ReferenceText(ref *fhir.Reference) string {
	switch {
	case ref == nil:
		return NA
	case ref.Display != "":
		return ref.Display
	case ref.Reference != "":
		return ref.Reference
	case ref.Identifier != nil && ref.Identifier.Value != "":
		return ref.Identifier.Value
	}
	return NA
}

// QuantityText renders a value with its unit or code.
func QuantityText(q *fhir.Quantity) string {
	if q == nil || q.Value == nil {
		return NA
	}
	unit := q.Unit
	if unit == "" {
		unit = q.Code
	}
	v := number.Decimal(*q.Value, number.MaxFractionDigits(2))
	s := message.NewPrinter(locale).Sprintf("%v", v)
	if unit == "" {
		return s
	}
	return s + " " + unit
}

// TelecomText joins contact values as "<system>: <value>".
func TelecomText(cps []fhir.ContactPoint) string {
	var parts []string
	for _, cp := range cps {
		if cp.Value == "" {
			continue
		}
		if cp.System != "" {
			parts = append(parts, cp.System+": "+cp.Value)
		} else {
			parts = append(parts, cp.Value)
		}
	}
	if len(parts) == 0 {
		return NA
	}
	return strings.Join(parts, ", ")
}

// AddressText renders the first address. Explicit text wins over parts.
func AddressText(addrs []fhir.Address) string {
	if len(addrs) == 0 {
		return NA
	}
	a := addrs[0]
	if strings.TrimSpace(a.Text) != "" {
		return a.Text
	}
	var parts []string
	parts = append(parts, a.Line...)
	for _, s := range []string{a.City, a.District, a.State, a.PostalCode, a.Country} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	if len(parts) == 0 {
		return NA
	}
	return strings.Join(parts, ", ")
}

// BoolText renders an optional flag as Yes/No.
func BoolText(b *bool) string {
	if b == nil {
		return NA
	}
	if *b {
		return "Yes"
	}
	return "No"
}
