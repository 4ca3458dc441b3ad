// handlers/pipeline.go
package handlers

import (
	"fmt"

	"mjengo.ke/estimator/models"
	"mjengo.ke/estimator/pkg/boq"
	"mjengo.ke/estimator/pkg/costing"
	"mjengo.ke/estimator/pkg/roofing"
	"mjengo.ke/estimator/pkg/takeoff"
)

// recomputeResult is everything one pipeline run produces.
type recomputeResult struct {
	Sections   []boq.Section         `json:"sections"`
	GrandTotal float64               `json:"grandTotal"`
	Findings   []boq.Finding         `json:"findings"`
	Skipped    []string              `json:"skipped,omitempty"`
	RoofTotals roofing.Totals        `json:"roofTotals"`
	RoofCalcs  []roofing.Calculation `json:"roofCalcs"`
}

// runPipeline maps every takeoff domain of the quote, assembles the fresh
// skeleton, reconciles it against the persisted document, and validates
// the merged result. Mapper hard errors abort only that mapper's domain;
// they surface as findings so the rest of the bill still regenerates.
func runPipeline(quote *models.Quote, prices *costing.PriceIndex) (recomputeResult, error) {
	var out recomputeResult
	var mapped boq.Mapped

	fail := func(domain string, err error) {
		out.Findings = append(out.Findings, boq.Finding{
			Severity: boq.SeverityError,
			Section:  domain,
			Message:  err.Error(),
		})
	}

	concreteRows, err := quote.DecodeConcreteRows()
	if err != nil {
		return out, fmt.Errorf("decode concrete rows: %w", err)
	}
	concreteTotals, err := quote.DecodeConcreteTotals()
	if err != nil {
		return out, fmt.Errorf("decode concrete totals: %w", err)
	}
	rebarRows, err := quote.DecodeRebarRows()
	if err != nil {
		return out, fmt.Errorf("decode rebar rows: %w", err)
	}
	elementRefs, err := quote.DecodeElementRefs()
	if err != nil {
		return out, fmt.Errorf("decode element refs: %w", err)
	}
	wallRows, err := quote.DecodeWallRows()
	if err != nil {
		return out, fmt.Errorf("decode wall rows: %w", err)
	}
	rooms, err := quote.DecodeRooms()
	if err != nil {
		return out, fmt.Errorf("decode rooms: %w", err)
	}
	roofs, err := quote.DecodeRoofStructures()
	if err != nil {
		return out, fmt.Errorf("decode roof structures: %w", err)
	}

	mapped.Concrete, out.Skipped = takeoff.MapConcrete(concreteRows, concreteTotals)

	wallingRate, ok := prices.Lookup("walling", "machine-cut")
	if !ok {
		wallingRate, _ = prices.FirstInCategory("walling")
	}
	if fdw, err := takeoff.MapFoundationWalling(concreteRows, wallingRate); err != nil {
		fail("foundation walling", err)
	} else {
		mapped.FoundationWalling = fdw
	}

	mapped.Rebar = takeoff.MapRebar(rebarRows, elementRefs)
	mapped.Masonry = takeoff.MapMasonry(wallRows)

	if doors, err := takeoff.MapDoors(rooms); err != nil {
		fail("doors", err)
	} else {
		mapped.Doors = doors
	}
	if windows, err := takeoff.MapWindows(rooms); err != nil {
		fail("windows", err)
	} else {
		mapped.Windows = windows
	}
	if frames, err := takeoff.MapFrames(rooms); err != nil {
		fail("frames", err)
	} else {
		mapped.Frames = frames
	}

	out.RoofCalcs = roofing.ComputeAll(roofs, prices)
	out.RoofTotals = roofing.Aggregate(out.RoofCalcs)
	mapped.Roofing = takeoff.MapRoofing(out.RoofCalcs)

	persisted, err := quote.DecodeBOQ()
	if err != nil {
		return out, fmt.Errorf("decode persisted boq: %w", err)
	}

	out.Sections = boq.Reconcile(boq.BuildSkeleton(mapped), persisted)
	out.GrandTotal = boq.GrandTotal(out.Sections)
	out.Findings = append(out.Findings, boq.Validate(out.Sections)...)
	if f, flagged := boq.CheckDeclaredTotal(out.Sections, quote.DeclaredTotal); flagged {
		out.Findings = append(out.Findings, f)
	}
	return out, nil
}
