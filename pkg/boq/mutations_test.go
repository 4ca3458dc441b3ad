package boq

import (
	"math"
	"testing"
)

func twoSectionDoc() []Section {
	return []Section{
		{
			Title: TitleSubstructure,
			Items: []Item{
				headerFor(TitleSubstructure, "substructure"),
				{
					ItemNo:      "CONC-001",
					Description: "Vibrated reinforced concrete (C20) to Strip foundation",
					Unit:        "m³",
					Quantity:    12,
					Rate:        15000,
					Amount:      180000,
					Category:    "substructure",
					Element:     "Strip foundation",
				},
			},
		},
		{
			Title: TitleWalling,
			Items: []Item{headerFor(TitleWalling, "walling")},
		},
	}
}

func TestAddCustomItemNumbering(t *testing.T) {
	doc := twoSectionDoc()

	doc, err := AddCustomItem(doc, 0, Item{Description: "Anti-termite treatment", Unit: "m²", Quantity: 90, Rate: 150})
	if err != nil {
		t.Fatal(err)
	}
	doc, err = AddCustomItem(doc, 0, Item{Description: "Dewatering", Unit: "Item", Quantity: 1, Rate: 45000})
	if err != nil {
		t.Fatal(err)
	}

	items := doc[0].Items
	first, second := items[len(items)-2], items[len(items)-1]
	if first.ItemNo != "CUS-1" || second.ItemNo != "CUS-2" {
		t.Errorf("item numbers = %q, %q, want CUS-1, CUS-2", first.ItemNo, second.ItemNo)
	}
	if first.Amount != 90*150 {
		t.Errorf("amount = %v, want %v", first.Amount, 90*150)
	}
	if first.Element != "Custom" || first.Category != TitleSubstructure {
		t.Errorf("defaults not applied: element=%q category=%q", first.Element, first.Category)
	}

	// Numbering is per section.
	doc, err = AddCustomItem(doc, 1, Item{Description: "Weep holes", Unit: "No", Quantity: 20, Rate: 80})
	if err != nil {
		t.Fatal(err)
	}
	if got := doc[1].Items[len(doc[1].Items)-1].ItemNo; got != "CUS-1" {
		t.Errorf("second section starts at %q, want CUS-1", got)
	}
}

func TestAddCustomItemNoReuseAfterRemoval(t *testing.T) {
	doc := twoSectionDoc()
	doc, _ = AddCustomItem(doc, 0, Item{Description: "One", Unit: "Item", Quantity: 1, Rate: 10})
	doc, _ = AddCustomItem(doc, 0, Item{Description: "Two", Unit: "Item", Quantity: 1, Rate: 20})

	var err error
	doc, err = RemoveItem(doc, 0, len(doc[0].Items)-2) // drop CUS-1
	if err != nil {
		t.Fatal(err)
	}
	doc, _ = AddCustomItem(doc, 0, Item{Description: "Three", Unit: "Item", Quantity: 1, Rate: 30})
	if got := doc[0].Items[len(doc[0].Items)-1].ItemNo; got != "CUS-3" {
		t.Errorf("got %q after removal, want CUS-3", got)
	}
}

func TestAddHeaderItem(t *testing.T) {
	doc, err := AddHeaderItem(twoSectionDoc(), 1, "Internal partitions")
	if err != nil {
		t.Fatal(err)
	}
	it := doc[1].Items[len(doc[1].Items)-1]
	if !it.IsHeader || it.ItemNo != "HDR-1" || it.Description != "Internal partitions" {
		t.Errorf("header item = %+v", it)
	}

	doc, _ = AddHeaderItem(doc, 1, "")
	it = doc[1].Items[len(doc[1].Items)-1]
	if it.Description != "New Header/Note" || it.ItemNo != "HDR-2" {
		t.Errorf("default header = %+v", it)
	}
}

func TestSectionLifecycle(t *testing.T) {
	doc := AddSection(twoSectionDoc(), "7. External Works")
	if doc[len(doc)-1].Title != "7. External Works" {
		t.Fatalf("section not appended: %+v", doc)
	}

	doc, err := RenameSection(doc, 2, "7. External & Landscaping")
	if err != nil {
		t.Fatal(err)
	}
	if doc[2].Title != "7. External & Landscaping" {
		t.Errorf("rename failed: %q", doc[2].Title)
	}
	if _, err := RenameSection(doc, 2, "  "); err == nil {
		t.Error("blank rename accepted")
	}

	doc, err = RemoveSection(doc, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(doc) != 2 {
		t.Fatalf("got %d sections, want 2", len(doc))
	}

	doc, err = RemoveSection(doc, 0)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := RemoveSection(doc, 0); err == nil {
		t.Error("removed the last remaining section")
	}
}

func TestUpdateItemFieldRecomputesAmount(t *testing.T) {
	doc, err := UpdateItemField(twoSectionDoc(), 0, 1, "quantity", "15")
	if err != nil {
		t.Fatal(err)
	}
	if got := doc[0].Items[1].Amount; got != 15*15000 {
		t.Errorf("amount = %v, want %v", got, 15*15000)
	}

	doc, err = UpdateItemField(doc, 0, 1, "rate", "16000")
	if err != nil {
		t.Fatal(err)
	}
	if got := doc[0].Items[1].Amount; got != 15*16000 {
		t.Errorf("amount = %v, want %v", got, 15*16000)
	}
}

func TestUpdateItemFieldMaterialType(t *testing.T) {
	doc, err := UpdateItemField(twoSectionDoc(), 0, 1, "materialtype", "concrete")
	if err != nil {
		t.Fatal(err)
	}
	it := doc[0].Items[1]
	if it.Unit != "m³" {
		t.Errorf("unit = %q, want m³", it.Unit)
	}
	if len(it.Breakdown) != 4 {
		t.Fatalf("breakdown parts = %d, want 4", len(it.Breakdown))
	}
	sum := 0.0
	for _, p := range it.Breakdown {
		sum += p.Ratio
	}
	if math.Abs(sum-1.0) > 1e-9 {
		t.Errorf("breakdown ratios sum to %v", sum)
	}

	// Flat materials clear the breakdown.
	doc, err = UpdateItemField(doc, 0, 1, "materialtype", "steel")
	if err != nil {
		t.Fatal(err)
	}
	if it := doc[0].Items[1]; it.Unit != "kg" || it.Breakdown != nil {
		t.Errorf("flat material: unit=%q breakdown=%v", it.Unit, it.Breakdown)
	}
}

func TestUpdateItemFieldRejectsUnknownField(t *testing.T) {
	if _, err := UpdateItemField(twoSectionDoc(), 0, 1, "colour", "blue"); err == nil {
		t.Error("unknown field accepted")
	}
}

func TestMutationsDoNotAliasInput(t *testing.T) {
	orig := twoSectionDoc()
	if _, err := UpdateItemField(orig, 0, 1, "quantity", "99"); err != nil {
		t.Fatal(err)
	}
	if orig[0].Items[1].Quantity != 12 {
		t.Error("mutation wrote through to the input snapshot")
	}
}

func TestIndexValidation(t *testing.T) {
	doc := twoSectionDoc()
	if _, err := AddCustomItem(doc, 9, Item{}); err == nil {
		t.Error("out-of-range section accepted")
	}
	if _, err := RemoveItem(doc, 0, 9); err == nil {
		t.Error("out-of-range item accepted")
	}
	if _, err := UpdateItemField(doc, -1, 0, "unit", "m"); err == nil {
		t.Error("negative section index accepted")
	}
}
