package schedule

import (
	"fmt"
	"regexp"
	"strings"

	"mjengo.ke/estimator/pkg/boq"
	"mjengo.ke/estimator/pkg/takeoff"
)

// Extractor walks every material-bearing part of a quote and emits flat
// categorized lines. The counter is shared across sources so item numbers
// stay unique within one extraction run; a fresh Extractor per run keeps
// extraction deterministic.
type Extractor struct {
	counter int
}

func NewExtractor() *Extractor {
	return &Extractor{}
}

func (e *Extractor) next(prefix string) string {
	e.counter++
	return fmt.Sprintf("%s%03d", prefix, e.counter)
}

// FromSections pulls every non-header row out of a BOQ document. The
// section title becomes the line's location so consolidation can trace
// contributions back to work sections.
func (e *Extractor) FromSections(sections []boq.Section) []CategorizedMaterial {
	var out []CategorizedMaterial
	for _, sec := range sections {
		for _, it := range sec.Items {
			if it.IsHeader {
				continue
			}
			itemNo := it.ItemNo
			if itemNo == "" {
				itemNo = e.next("M")
			}
			out = append(out, CategorizedMaterial{
				ItemNo:      itemNo,
				Category:    orAuto(it.Category, autoCategory(it.Description)),
				Element:     orAuto(it.Element, autoElement(it.Description)),
				Description: it.Description,
				Unit:        orAuto(it.Unit, "Unit"),
				Quantity:    it.Quantity,
				Rate:        it.Rate,
				Amount:      it.Amount,
				Source:      "boq",
				Location:    sec.Title,
				Breakdown:   it.Breakdown,
			})
		}
	}
	return out
}

// FromConcrete converts derived concrete constituent lines.
func (e *Extractor) FromConcrete(materials []ConcreteMaterial) []CategorizedMaterial {
	out := make([]CategorizedMaterial, 0, len(materials))
	for _, m := range materials {
		out = append(out, CategorizedMaterial{
			ItemNo:      e.next("C"),
			Category:    autoCategory(m.Name),
			Element:     "concrete",
			Description: m.Name,
			Unit:        autoUnit(m.Name),
			Quantity:    m.Quantity,
			Rate:        m.UnitPrice,
			Amount:      m.TotalPrice,
			Source:      "concrete",
			Location:    orAuto(m.Location, "General"),
		})
	}
	return out
}

// FromRebar converts reinforcement calculation records.
func (e *Extractor) FromRebar(records []takeoff.RebarRecord) []CategorizedMaterial {
	out := make([]CategorizedMaterial, 0, len(records))
	for _, r := range records {
		qty := r.TotalWeightKg
		out = append(out, CategorizedMaterial{
			ItemNo:      e.next("R"),
			Category:    orAuto(r.Category, "superstructure"),
			Element:     "reinforcement",
			Description: fmt.Sprintf("Reinforcement steel %s", r.BarSize),
			Unit:        "Kg",
			Quantity:    qty,
			Rate:        r.Rate,
			Amount:      qty * r.Rate,
			Source:      "rebar",
			Location:    orAuto(r.ElementID, "General"),
		})
	}
	return out
}

// FromRooms converts per-room masonry figures and opening lists. A room
// contributes a line per material it actually carries; zero figures are
// absent, not zero-quantity lines.
func (e *Extractor) FromRooms(rooms []takeoff.RoomRecord) []CategorizedMaterial {
	var out []CategorizedMaterial
	for _, room := range rooms {
		if room.CementBags > 0 {
			out = append(out, CategorizedMaterial{
				ItemNo:      e.next("M"),
				Category:    "masonry",
				Element:     "masonry",
				Description: fmt.Sprintf("Cement - %s", room.Name),
				Unit:        "Bags",
				Quantity:    room.CementBags,
				Rate:        safeRate(room.CementCost, room.CementBags),
				Amount:      room.CementCost,
				Source:      "masonry",
				Location:    room.Name,
			})
		}
		if room.SandVolume > 0 {
			out = append(out, CategorizedMaterial{
				ItemNo:      e.next("M"),
				Category:    "masonry",
				Element:     "masonry",
				Description: fmt.Sprintf("Sand - %s", room.Name),
				Unit:        "m³",
				Quantity:    room.SandVolume,
				Rate:        safeRate(room.SandCost, room.SandVolume),
				Amount:      room.SandCost,
				Source:      "masonry",
				Location:    room.Name,
			})
		}
		if room.Blocks > 0 {
			out = append(out, CategorizedMaterial{
				ItemNo:      e.next("M"),
				Category:    "masonry",
				Element:     "masonry",
				Description: fmt.Sprintf("%s - %s", orAuto(room.BlockType, "Block"), room.Name),
				Unit:        "No.",
				Quantity:    room.Blocks,
				Rate:        safeRate(room.BlockCost, room.Blocks),
				Amount:      room.BlockCost,
				Source:      "masonry",
				Location:    room.Name,
			})
		}

		out = append(out, e.openings(room.Name, room.Doors, "door")...)
		out = append(out, e.openings(room.Name, room.Windows, "window")...)
	}
	return out
}

func (e *Extractor) openings(roomName string, list []takeoff.Opening, kind string) []CategorizedMaterial {
	var out []CategorizedMaterial
	for _, op := range list {
		count := op.Count
		if count <= 0 {
			count = 1
		}
		label := op.Type
		if label == "" {
			label = op.Glass
		}
		out = append(out, CategorizedMaterial{
			ItemNo:      e.next("M"),
			Category:    "openings",
			Element:     kind,
			Description: fmt.Sprintf("%s %s - %s", label, kind, roomName),
			Unit:        "No.",
			Quantity:    count,
			Rate:        op.Price,
			Amount:      op.Price * count,
			Source:      "openings",
			Location:    roomName,
		})
		if op.Frame != nil && op.Frame.Price > 0 {
			out = append(out, CategorizedMaterial{
				ItemNo:      e.next("M"),
				Category:    "openings",
				Element:     kind + "-frame",
				Description: fmt.Sprintf("%s Frame - %s", op.Frame.Type, roomName),
				Unit:        "No.",
				Quantity:    count,
				Rate:        op.Frame.Price,
				Amount:      op.Frame.Price * count,
				Source:      "openings",
				Location:    roomName,
			})
		}
	}
	return out
}

var (
	reSubstructure   = regexp.MustCompile(`foundation|footing|substructure|blinding`)
	reSuperstructure = regexp.MustCompile(`beam|column|slab|frame|structural`)
	reMasonry        = regexp.MustCompile(`block|brick|wall|masonry|mortar`)
	reFinishes       = regexp.MustCompile(`paint|tile|floor|ceiling|finish`)
	reOpenings       = regexp.MustCompile(`door|window|frame|glazing|lock|hinge|handle`)

	// \b keeps "cement" from substring-matching "reinforcement".
	reConcreteMix = regexp.MustCompile(`\bcement\b|sand|ballast`)
	reSteel       = regexp.MustCompile(`steel|rebar`)
	reBlockwork   = regexp.MustCompile(`block|brick|masonry`)
	reDoor        = regexp.MustCompile(`door`)
	reWindow      = regexp.MustCompile(`window`)
	reFrame       = regexp.MustCompile(`frame`)
	reFinishElem  = regexp.MustCompile(`paint|tile|finish`)

	reCement    = regexp.MustCompile(`\bcement\b`)
	reBulk      = regexp.MustCompile(`sand|ballast`)
	reCountable = regexp.MustCompile(`block|brick`)
	rePerKg     = regexp.MustCompile(`steel|rebar`)
	rePerPiece  = regexp.MustCompile(`door|window|frame`)
)

// autoCategory buckets a material by description keywords. Order matters:
// structural words win over masonry words so "column wall bracket" lands
// in superstructure.
func autoCategory(description string) string {
	d := strings.ToLower(description)
	switch {
	case reSubstructure.MatchString(d):
		return "substructure"
	case reSuperstructure.MatchString(d):
		return "superstructure"
	case reMasonry.MatchString(d):
		return "masonry"
	case reFinishes.MatchString(d):
		return "finishes"
	case reOpenings.MatchString(d):
		return "openings"
	}
	return "miscellaneous"
}

func autoElement(description string) string {
	d := strings.ToLower(description)
	switch {
	case reConcreteMix.MatchString(d):
		return "concrete"
	case reSteel.MatchString(d):
		return "reinforcement"
	case reBlockwork.MatchString(d):
		return "masonry"
	case reDoor.MatchString(d):
		return "door"
	case reWindow.MatchString(d):
		return "window"
	case reFrame.MatchString(d):
		return "frame"
	case reFinishElem.MatchString(d):
		return "finish"
	}
	return "general"
}

func autoUnit(description string) string {
	d := strings.ToLower(description)
	switch {
	case reCement.MatchString(d):
		return "Bags"
	case reBulk.MatchString(d):
		return "m³"
	case reCountable.MatchString(d):
		return "No."
	case rePerKg.MatchString(d):
		return "Kg"
	case rePerPiece.MatchString(d):
		return "No."
	}
	return "Unit"
}

func orAuto(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func safeRate(amount, quantity float64) float64 {
	if quantity <= 0 {
		return 0
	}
	return amount / quantity
}
