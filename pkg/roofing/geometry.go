package roofing

import (
	"fmt"
	"math"
)

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// DeriveGeometry computes the shape quantities for one roof structure.
// Ridge, hip and valley figures come from the bare plan dimensions (the
// span is the plan width); the eaves overhang only widens the covered
// footprint, so it enters the plan and pitched areas and nothing else.
func DeriveGeometry(s Structure) Geometry {
	pitchRad := degToRad(s.Pitch)
	tanPitch := math.Tan(pitchRad)
	cosPitch := math.Cos(pitchRad)

	planArea := (s.Length + 2*s.EavesOverhang) * (s.Width + 2*s.EavesOverhang)

	g := Geometry{
		PlanArea:    planArea,
		RidgeHeight: (s.Width / 2) * tanPitch,
		PitchRatio:  fmt.Sprintf("%v:12", math.Round(12*tanPitch*100)/100),
	}

	if cosPitch != 0 {
		g.PitchedArea = planArea / cosPitch
	} else {
		g.PitchedArea = planArea
	}

	switch s.Type {
	case Gable, Butterfly, Pitched:
		g.RidgeLength = s.Length
	case Hip, Mansard:
		g.RidgeLength = math.Max(0, s.Length-s.Width)
	case Skillion, Flat:
		g.RidgeLength = 0
	default:
		g.RidgeLength = s.Length
	}

	slopeEdge := math.Sqrt(math.Pow(s.Width/2, 2) + math.Pow(g.RidgeHeight, 2))
	switch s.Type {
	case Hip, Mansard:
		g.HipLength = slopeEdge
	case Butterfly:
		g.ValleyLength = slopeEdge
	}

	return g
}
