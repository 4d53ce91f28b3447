package personnel

import (
	"github.com/warp/workforce-sim/generic"
)

// =============================================================================
// TRAITS
// =============================================================================

// Traits are the latent personality/ability scores, each in [0, 1].
// Strength and Openmindedness are control traits: drawn like the others
// but never used by any rule.
type Traits struct {
	Health         float64 `json:"health"`
	Commitment     float64 `json:"commitment"`
	Perceptiveness float64 `json:"perceptiveness"`
	Dexterity      float64 `json:"dexterity"`
	Sociality      float64 `json:"sociality"`
	Goodness       float64 `json:"goodness"`
	Strength       float64 `json:"strength"`
	Openmindedness float64 `json:"openmindedness"`
}

// drawTrait samples N(mean, sd). Draws below 0 clamp to 0; draws above 1
// are re-rolled so the upper tail keeps its shape.
func drawTrait(rng *generic.RNG, mean, sd float64) float64 {
	for {
		v := rng.Normal(mean, sd)
		if v > 1 {
			continue
		}
		if v < 0 {
			return 0
		}
		return v
	}
}

// DrawTraits samples all eight traits in a fixed order.
func DrawTraits(rng *generic.RNG, mean, sd float64) Traits {
	return Traits{
		Health:         drawTrait(rng, mean, sd),
		Commitment:     drawTrait(rng, mean, sd),
		Perceptiveness: drawTrait(rng, mean, sd),
		Dexterity:      drawTrait(rng, mean, sd),
		Sociality:      drawTrait(rng, mean, sd),
		Goodness:       drawTrait(rng, mean, sd),
		Strength:       drawTrait(rng, mean, sd),
		Openmindedness: drawTrait(rng, mean, sd),
	}
}

// ManagerialCapacity ranks persons for the Director and Shift Manager roles.
func (t Traits) ManagerialCapacity() float64 {
	return 0.30*t.Commitment + 0.25*t.Perceptiveness + 0.25*t.Sociality + 0.20*t.Goodness
}

// WorkerCapacity drives the efficacy level.
func (t Traits) WorkerCapacity() float64 {
	return 0.35*t.Dexterity + 0.25*t.Health + 0.20*t.Commitment + 0.20*t.Perceptiveness
}

// =============================================================================
// BASE PROBABILITIES
// =============================================================================

// BaseRates are the population base rates the traits adjust.
type BaseRates struct {
	Presence, Idea, Lapse, Feat, Slip, Teamwork, Disruption, Sacrifice, Sabotage float64
	RecordingAccurately, EfficacyLevel                                            float64
}

// BaseProbabilities computes base rate ± weighted trait contribution.
// A trait mix of 0.5 leaves the base rate unchanged; 1.0 (or 0.0 for
// poor behaviors) moves it by the full strength.
func BaseProbabilities(t Traits, rates BaseRates, strength float64) Probabilities {
	adj := func(base, mix float64) float64 {
		return generic.Clamp01(base * (1 + strength*(2*mix-1)))
	}
	inv := func(base, mix float64) float64 { return adj(base, 1-mix) }

	return Probabilities{
		Presence:            adj(rates.Presence, 0.6*t.Health+0.4*t.Commitment),
		Idea:                adj(rates.Idea, 0.5*t.Perceptiveness+0.3*t.Commitment+0.2*t.Dexterity),
		Lapse:               inv(rates.Lapse, 0.6*t.Perceptiveness+0.4*t.Commitment),
		Feat:                adj(rates.Feat, 0.6*t.Dexterity+0.4*t.Health),
		Slip:                inv(rates.Slip, 0.6*t.Dexterity+0.4*t.Perceptiveness),
		Teamwork:            adj(rates.Teamwork, 0.6*t.Sociality+0.4*t.Goodness),
		Disruption:          inv(rates.Disruption, 0.5*t.Sociality+0.5*t.Goodness),
		Sacrifice:           adj(rates.Sacrifice, 0.6*t.Goodness+0.4*t.Commitment),
		Sabotage:            inv(rates.Sabotage, 0.7*t.Goodness+0.3*t.Commitment),
		RecordingAccurately: adj(rates.RecordingAccurately, 0.6*t.Perceptiveness+0.4*t.Commitment),
		Efficacy:            rates.EfficacyLevel * (1 + strength*(2*t.WorkerCapacity()-1)),
	}
}

// =============================================================================
// WORKSTYLE
// =============================================================================

// Workstyle is one of five behavioral archetypes.
type Workstyle string

const (
	WorkstyleA Workstyle = "A"
	WorkstyleB Workstyle = "B"
	WorkstyleC Workstyle = "C"
	WorkstyleD Workstyle = "D"
	WorkstyleE Workstyle = "E"
)

// WorkstyleProfile describes how a workstyle biases a person.
type WorkstyleProfile struct {
	// LevelBias scales the efficacy level bonus (A,B up; D,E down).
	LevelBias float64
	// Variability multiplies the daily efficacy noise.
	Variability float64
	// Volatile groups get a fresh random level swing every day.
	Volatile bool
	// Tendencies multiply selected behavior probabilities.
	IdeaTendency, TeamworkTendency, DisruptionTendency, LapseTendency float64
}

var workstyleProfiles = map[Workstyle]WorkstyleProfile{
	WorkstyleA: {LevelBias: 1.0, Variability: 0.6, IdeaTendency: 1.3, TeamworkTendency: 1.0, DisruptionTendency: 0.9, LapseTendency: 0.8},
	WorkstyleB: {LevelBias: 0.5, Variability: 1.5, Volatile: true, IdeaTendency: 1.2, TeamworkTendency: 0.9, DisruptionTendency: 1.1, LapseTendency: 1.0},
	WorkstyleC: {LevelBias: 0.0, Variability: 0.8, IdeaTendency: 1.0, TeamworkTendency: 1.2, DisruptionTendency: 0.9, LapseTendency: 1.0},
	WorkstyleD: {LevelBias: -0.5, Variability: 0.7, IdeaTendency: 0.8, TeamworkTendency: 1.0, DisruptionTendency: 1.0, LapseTendency: 1.2},
	WorkstyleE: {LevelBias: -1.0, Variability: 1.5, Volatile: true, IdeaTendency: 0.9, TeamworkTendency: 0.8, DisruptionTendency: 1.3, LapseTendency: 1.2},
}

// Profile returns the workstyle's profile.
func (w Workstyle) Profile() WorkstyleProfile {
	return workstyleProfiles[w]
}

// workstyleThresholds are cumulative thresholds for A..D (E is the rest),
// conditioned on age band and sex.
var workstyleThresholds = []struct {
	maxAge int
	male   [4]float64
	female [4]float64
}{
	{29, [4]float64{0.15, 0.40, 0.65, 0.85}, [4]float64{0.18, 0.40, 0.70, 0.88}},
	{44, [4]float64{0.20, 0.40, 0.70, 0.85}, [4]float64{0.22, 0.42, 0.75, 0.90}},
	{1 << 30, [4]float64{0.25, 0.40, 0.75, 0.90}, [4]float64{0.25, 0.40, 0.78, 0.92}},
}

// DrawWorkstyle assigns a workstyle with one uniform draw.
func DrawWorkstyle(rng *generic.RNG, age int, sex Sex) Workstyle {
	u := rng.Float()
	for _, band := range workstyleThresholds {
		if age > band.maxAge {
			continue
		}
		t := band.male
		if sex == Female {
			t = band.female
		}
		switch {
		case u < t[0]:
			return WorkstyleA
		case u < t[1]:
			return WorkstyleB
		case u < t[2]:
			return WorkstyleC
		case u < t[3]:
			return WorkstyleD
		default:
			return WorkstyleE
		}
	}
	return WorkstyleC
}
