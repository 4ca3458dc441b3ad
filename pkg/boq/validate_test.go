package boq

import "testing"

func findingWith(findings []Finding, substr func(Finding) bool) bool {
	for _, f := range findings {
		if substr(f) {
			return true
		}
	}
	return false
}

func TestValidateFlagsBadRows(t *testing.T) {
	doc := []Section{{
		Title: TitleWalling,
		Items: []Item{
			headerFor(TitleWalling, "walling"),
			{ItemNo: "MAS-001", Description: "Walling", Unit: "m²", Quantity: -5, Rate: 50},
			{ItemNo: "MAS-002", Description: "", Unit: "", Quantity: 10, Rate: 0},
			{ItemNo: "MAS-003", Description: "Special block", Unit: "No", Quantity: 10, Rate: 40, MaterialType: "unobtainium"},
			{ItemNo: "MAS-004", Description: "Mix", Unit: "m³", Quantity: 2, Rate: 100, Breakdown: []BreakdownPart{
				{Material: "Cement", Unit: "bags", Ratio: 0.5},
				{Material: "Sand", Unit: "m³", Ratio: 0.3},
			}},
		},
	}}

	findings := Validate(doc)

	checks := []struct {
		name string
		want func(Finding) bool
	}{
		{"negative quantity error", func(f Finding) bool {
			return f.Severity == SeverityError && f.ItemNo == "MAS-001" && f.Message == "negative quantity -5.00"
		}},
		{"missing description error", func(f Finding) bool {
			return f.Severity == SeverityError && f.ItemNo == "MAS-002" && f.Message == "missing description"
		}},
		{"missing unit error", func(f Finding) bool {
			return f.Severity == SeverityError && f.ItemNo == "MAS-002" && f.Message == "missing unit"
		}},
		{"zero rate warning", func(f Finding) bool {
			return f.Severity == SeverityWarning && f.ItemNo == "MAS-002" && f.Message == "zero rate"
		}},
		{"unknown material warning", func(f Finding) bool {
			return f.Severity == SeverityWarning && f.ItemNo == "MAS-003"
		}},
		{"ratio drift warning", func(f Finding) bool {
			return f.Severity == SeverityWarning && f.ItemNo == "MAS-004"
		}},
	}
	for _, c := range checks {
		if !findingWith(findings, c.want) {
			t.Errorf("missing finding: %s (got %+v)", c.name, findings)
		}
	}
}

func TestValidateSkipsHeaders(t *testing.T) {
	doc := []Section{{
		Title: TitleFinishes,
		Items: []Item{headerFor(TitleFinishes, "finishes")},
	}}
	if findings := Validate(doc); len(findings) != 0 {
		t.Errorf("header rows produced findings: %+v", findings)
	}
}

func TestTotalsExcludeHeaders(t *testing.T) {
	doc := []Section{
		{
			Title: TitleSubstructure,
			Items: []Item{
				headerFor(TitleSubstructure, "substructure"),
				{ItemNo: "CONC-001", Description: "Concrete", Unit: "m³", Quantity: 10, Rate: 100, Amount: 1000},
				{ItemNo: "CUS-1", Description: "Sundries", Unit: "Item", Quantity: 1, Rate: 250.50, Amount: 250.50},
			},
		},
		{
			Title: TitleWalling,
			Items: []Item{
				{ItemNo: "MAS-001", Description: "Walling", Unit: "m²", Quantity: 250, Rate: 50, Amount: 12500},
			},
		},
	}

	if got := SectionTotal(doc[0]); got != 1250.50 {
		t.Errorf("SectionTotal = %v, want 1250.50", got)
	}
	if got := GrandTotal(doc); got != 13750.50 {
		t.Errorf("GrandTotal = %v, want 13750.50", got)
	}
}

func TestCheckDeclaredTotal(t *testing.T) {
	doc := []Section{{
		Title: TitleSubstructure,
		Items: []Item{{ItemNo: "CONC-001", Description: "Concrete", Unit: "m³", Amount: 1000}},
	}}

	if _, flagged := CheckDeclaredTotal(doc, 0); flagged {
		t.Error("zero declared total must be ignored")
	}
	if _, flagged := CheckDeclaredTotal(doc, 1000); flagged {
		t.Error("matching declared total flagged")
	}
	f, flagged := CheckDeclaredTotal(doc, 1200)
	if !flagged {
		t.Fatal("drifting declared total not flagged")
	}
	if f.Severity != SeverityWarning {
		t.Errorf("severity = %q, want warning", f.Severity)
	}
}

func TestMaterialRegistry(t *testing.T) {
	if !KnownMaterialType("Concrete") {
		t.Error("lookup must be case-insensitive")
	}
	if KnownMaterialType("unobtainium") {
		t.Error("unknown material reported as known")
	}

	unit, ok := UnitForMaterial("paint")
	if !ok || unit != "litres" {
		t.Errorf("paint unit = %q, %v", unit, ok)
	}

	a := BreakdownForMaterial("mortar")
	b := BreakdownForMaterial("mortar")
	if len(a) != 3 {
		t.Fatalf("mortar parts = %d, want 3", len(a))
	}
	a[0].Ratio = 0.99
	if b[0].Ratio == 0.99 {
		t.Error("BreakdownForMaterial returns shared state")
	}
	if BreakdownForMaterial("steel") != nil {
		t.Error("flat material returned a breakdown")
	}
}
