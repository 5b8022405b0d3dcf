// Package vitality implements the per-note aliveness score of spec §4.3:
// an ACT-R-inspired base activation, a per-space metabolic decay rate, a
// structural boost from connectivity, an access-saturation blend, a
// revival bonus for newly-connected notes, and a bridge floor. Standard
// library math only — these are closed numeric formulas, not a library
// concern (see DESIGN.md).
package vitality

import (
	"math"

	"github.com/aayoawoyemi/Ori-Mnemos/internal/models"
)

// Rates holds the per-space metabolic-rate multipliers from
// vitality.metabolic_rates.{self,notes,ops}.
type Rates struct {
	Self  float64 // identity notes decay 10x slower, default 0.1
	Notes float64 // general notes, default 1.0
	Ops   float64 // operational files, default 3.0
}

// DefaultRates matches the defaults named in spec §6.
func DefaultRates() Rates {
	return Rates{Self: 0.1, Notes: 1.0, Ops: 3.0}
}

// Params collects the tunables of §6's vitality.* config keys.
type Params struct {
	ActrDecay            float64 // vitality.actr_decay, default 0.5
	Rates                Rates
	AccessSaturationK    float64 // default 10
	StructuralBoostPer   float64 // default 0.1
	StructuralBoostCap   int     // default 10
	RevivalDecayRate     float64 // default 0.2
	RevivalWindowDays    int     // default 14
	BridgeVitalityFloor  float64 // graph.bridge_vitality_floor, default 0.5
}

// DefaultParams matches spec §6's documented defaults.
func DefaultParams() Params {
	return Params{
		ActrDecay:           0.5,
		Rates:               DefaultRates(),
		AccessSaturationK:   10,
		StructuralBoostPer:  0.1,
		StructuralBoostCap:  10,
		RevivalDecayRate:    0.2,
		RevivalWindowDays:   14,
		BridgeVitalityFloor: 0.5,
	}
}

// Input bundles the per-note facts the vitality formula of §4.3 consumes.
type Input struct {
	Note *models.Note
	Now  float64 // not read by Score; the note's age reaches it through AgeDays

	AgeDays             float64
	InDegree            int
	IsBridge            bool
	DaysSinceNewInLink  float64 // -1 if no incoming link gained within the revival window
}

// metabolicRate selects the space-specific rate for a note: identity notes
// ("self" space) decay slowest, operational notes fastest. The spec names
// the space but not which notes are "self"; resolved in DESIGN.md as notes
// whose Project set contains the literal tag "self".
func metabolicRate(n *models.Note, rates Rates) float64 {
	if n != nil && n.HasProject("self") {
		return rates.Self
	}
	if n != nil && n.HasProject("ops") {
		return rates.Ops
	}
	return rates.Notes
}

// Score computes the final [0,1] vitality for one note, running the six
// steps of §4.3 in the documented order.
func Score(in Input, p Params) float64 {
	n := in.Note
	accessCount := 0
	if n != nil {
		accessCount = n.AccessCount
	}

	// 1. Base activation (ACT-R-inspired).
	d := p.ActrDecay * metabolicRate(n, p.Rates) // 2. metabolic rate folds into the effective decay used below
	d = clampDecay(d)

	var base float64
	switch {
	case accessCount == 0:
		base = 0.5
	case in.AgeDays == 0:
		base = 1.0
	default:
		b := math.Log(float64(accessCount)/(1-d)) - d*math.Log(in.AgeDays)
		base = sigmoid(b)
	}

	vitality := base

	// 3. Structural boost.
	boostLinks := in.InDegree
	if boostLinks > p.StructuralBoostCap {
		boostLinks = p.StructuralBoostCap
	}
	structBoost := 1 + p.StructuralBoostPer*float64(boostLinks)
	if structBoost > 2 {
		structBoost = 2
	}
	vitality *= structBoost

	// 4. Access saturation.
	satK := p.AccessSaturationK
	if satK <= 0 {
		satK = 10
	}
	vitality *= 0.5 + 0.5*(1-math.Exp(-float64(accessCount)/satK))

	// 5. Revival bonus.
	if in.DaysSinceNewInLink >= 0 && in.DaysSinceNewInLink <= float64(p.RevivalWindowDays) {
		vitality += 0.2 * math.Exp(-p.RevivalDecayRate*in.DaysSinceNewInLink)
	}

	// 6. Bridge floor.
	if in.IsBridge && vitality < p.BridgeVitalityFloor {
		vitality = p.BridgeVitalityFloor
	}

	return clamp01(vitality)
}

func clampDecay(d float64) float64 {
	if d < 0.01 {
		return 0.01
	}
	if d > 0.99 {
		return 0.99
	}
	return d
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
