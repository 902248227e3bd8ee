package sim

import (
	"fmt"
)

// LayerResidences is the reserved contact-rate key for the residence layer.
// Cluster layers may use any other name.
const LayerResidences = "residences"

// GridConfig sets the rectangular block grid the population is spread over.
// Block identifiers are row-major: block = row*Cols + col.
type GridConfig struct {
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`
}

// GammaParams parameterizes a Gamma distribution by shape and scale.
// The mean of the distribution is Shape*Scale.
type GammaParams struct {
	Shape float64 `yaml:"shape"`
	Scale float64 `yaml:"scale"`
}

// AgeBin is one bar of the age pyramid: integer ages in [Lo, Hi] are drawn
// with probability proportional to Weight, uniformly within the bin.
type AgeBin struct {
	Lo     int     `yaml:"lo"`
	Hi     int     `yaml:"hi"`
	Weight float64 `yaml:"weight"`
}

// ClusterLayerConfig declares one secondary-contact category: who is
// eligible (by age) and how the layer partitions its eligible individuals
// into groups.
type ClusterLayerConfig struct {
	Name string `yaml:"name"`

	// MaxSize bounds group sizes; sizes 1..MaxSize are drawn with weight
	// proportional to 1/(1+size^DecayExponent).
	MaxSize       int     `yaml:"max_size"`
	DecayExponent float64 `yaml:"decay_exponent"`

	// MinAge and MaxAge bound eligibility, inclusive.
	MinAge int `yaml:"min_age"`
	MaxAge int `yaml:"max_age"`
}

// TransitionConfig sets the branch probabilities of the phase machine.
type TransitionConfig struct {
	// PAsymptomatic is the probability an exposed individual progresses to
	// the asymptomatic branch rather than the symptomatic one.
	PAsymptomatic float64 `yaml:"p_asymptomatic"`

	// PDecease is the probability an infected individual exits to deceased
	// rather than recovered.
	PDecease float64 `yaml:"p_decease"`
}

// RunConfig drives the evolution loop.
type RunConfig struct {
	// Steps is the total number of simulated steps including the initial
	// snapshot: evolution covers steps 2..Steps.
	Steps int `yaml:"steps"`

	// StepDays is the duration of one step in days; contact rates and the
	// dwell tables are calibrated in days.
	StepDays float64 `yaml:"step_days"`

	// InitialExposed pins the initially exposed individuals by index.
	// Mutually exclusive with InitialExposedCount.
	InitialExposed []int `yaml:"initial_exposed"`

	// InitialExposedCount seeds that many uniformly drawn individuals as
	// exposed at step 1. Zero with an empty InitialExposed list means the
	// run starts fully susceptible.
	InitialExposedCount int `yaml:"initial_exposed_count"`

	// ProgressEvery logs a progress line every that many steps; zero
	// disables progress logging.
	ProgressEvery int `yaml:"progress_every"`

	// Workers is the number of goroutines composing per-individual hazards.
	// Zero and one both mean sequential; results are identical either way.
	Workers int `yaml:"workers"`
}

// Config carries every parameter of a simulation run: scenario generation
// and evolution. It is passed by value through the pipeline. Zero values
// are never silently replaced with defaults; a Config that would need one
// fails Validate instead. DefaultConfig returns a fully valid baseline.
type Config struct {
	// Population is the total number of individuals N.
	Population int `yaml:"population"`

	Grid GridConfig `yaml:"grid"`

	// ResidenceSizeWeights[j] is the relative frequency of residences with
	// j+1 members. The list length fixes the maximum residence size.
	ResidenceSizeWeights []float64 `yaml:"residence_size_weights"`

	AgePyramid []AgeBin `yaml:"age_pyramid"`

	Susceptibility GammaParams `yaml:"susceptibility"`
	Infectivity    GammaParams `yaml:"infectivity"`

	// ContactRates maps layer name to the rate coefficient of its hazard
	// contribution, in units of 1/day. It must cover LayerResidences and
	// exactly the declared cluster layers.
	ContactRates map[string]float64 `yaml:"contact_rates"`

	ClusterLayers []ClusterLayerConfig `yaml:"cluster_layers"`

	Transitions TransitionConfig `yaml:"transitions"`

	Run RunConfig `yaml:"run"`
}

// Validate checks every configuration constraint. A Config that passes
// Validate generates and evolves without configuration-induced panics.
func (c Config) Validate() error {
	if c.Population < 1 {
		return fmt.Errorf("population must be at least 1, got %d", c.Population)
	}
	if c.Grid.Rows < 1 || c.Grid.Cols < 1 {
		return fmt.Errorf("grid must be at least 1x1, got %dx%d", c.Grid.Rows, c.Grid.Cols)
	}

	if len(c.ResidenceSizeWeights) == 0 {
		return fmt.Errorf("residence_size_weights must not be empty")
	}
	for j, w := range c.ResidenceSizeWeights {
		if !(w > 0) {
			return fmt.Errorf("residence_size_weights[%d] must be positive, got %v", j, w)
		}
	}

	if len(c.AgePyramid) == 0 {
		return fmt.Errorf("age_pyramid must not be empty")
	}
	for i, bin := range c.AgePyramid {
		if !(bin.Weight > 0) {
			return fmt.Errorf("age_pyramid[%d] weight must be positive, got %v", i, bin.Weight)
		}
		if bin.Lo < 0 {
			return fmt.Errorf("age_pyramid[%d] lower bound must be non-negative, got %d", i, bin.Lo)
		}
		if bin.Lo > bin.Hi {
			return fmt.Errorf("age_pyramid[%d] has lo %d > hi %d", i, bin.Lo, bin.Hi)
		}
	}

	if err := validateGamma("susceptibility", c.Susceptibility); err != nil {
		return err
	}
	if err := validateGamma("infectivity", c.Infectivity); err != nil {
		return err
	}

	if _, ok := c.ContactRates[LayerResidences]; !ok {
		return fmt.Errorf("contact_rates must include the %q layer", LayerResidences)
	}
	for name, rate := range c.ContactRates {
		if !(rate >= 0) {
			return fmt.Errorf("contact rate for layer %q must be non-negative, got %v", name, rate)
		}
	}

	layerNames := map[string]bool{}
	for i, layer := range c.ClusterLayers {
		if layer.Name == "" {
			return fmt.Errorf("cluster layer %d has an empty name", i)
		}
		if layer.Name == LayerResidences {
			return fmt.Errorf("cluster layer %d uses the reserved name %q", i, LayerResidences)
		}
		if layerNames[layer.Name] {
			return fmt.Errorf("duplicate cluster layer name %q", layer.Name)
		}
		layerNames[layer.Name] = true

		if layer.MaxSize < 1 {
			return fmt.Errorf("cluster layer %q max_size must be at least 1, got %d", layer.Name, layer.MaxSize)
		}
		if !(layer.DecayExponent >= 0) {
			return fmt.Errorf("cluster layer %q decay_exponent must be non-negative, got %v", layer.Name, layer.DecayExponent)
		}
		if layer.MinAge < 0 {
			return fmt.Errorf("cluster layer %q min_age must be non-negative, got %d", layer.Name, layer.MinAge)
		}
		if layer.MinAge > layer.MaxAge {
			return fmt.Errorf("cluster layer %q has min_age %d > max_age %d", layer.Name, layer.MinAge, layer.MaxAge)
		}
		if _, ok := c.ContactRates[layer.Name]; !ok {
			return fmt.Errorf("contact_rates missing entry for cluster layer %q", layer.Name)
		}
	}
	for name := range c.ContactRates {
		if name != LayerResidences && !layerNames[name] {
			return fmt.Errorf("contact rate for undeclared layer %q", name)
		}
	}

	if !(c.Transitions.PAsymptomatic >= 0 && c.Transitions.PAsymptomatic <= 1) {
		return fmt.Errorf("p_asymptomatic must be in [0,1], got %v", c.Transitions.PAsymptomatic)
	}
	if !(c.Transitions.PDecease >= 0 && c.Transitions.PDecease <= 1) {
		return fmt.Errorf("p_decease must be in [0,1], got %v", c.Transitions.PDecease)
	}

	if c.Run.Steps < 1 {
		return fmt.Errorf("steps must be at least 1, got %d", c.Run.Steps)
	}
	if !(c.Run.StepDays > 0) {
		return fmt.Errorf("step_days must be positive, got %v", c.Run.StepDays)
	}
	if c.Run.ProgressEvery < 0 {
		return fmt.Errorf("progress_every must be non-negative, got %d", c.Run.ProgressEvery)
	}
	if c.Run.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", c.Run.Workers)
	}
	if len(c.Run.InitialExposed) > 0 && c.Run.InitialExposedCount > 0 {
		return fmt.Errorf("initial_exposed and initial_exposed_count are mutually exclusive")
	}
	if c.Run.InitialExposedCount < 0 || c.Run.InitialExposedCount > c.Population {
		return fmt.Errorf("initial_exposed_count must be in [0,%d], got %d", c.Population, c.Run.InitialExposedCount)
	}
	seen := map[int]bool{}
	for _, idx := range c.Run.InitialExposed {
		if idx < 0 || idx >= c.Population {
			return fmt.Errorf("initial_exposed index %d outside population [0,%d)", idx, c.Population)
		}
		if seen[idx] {
			return fmt.Errorf("initial_exposed index %d listed twice", idx)
		}
		seen[idx] = true
	}

	return nil
}

func validateGamma(field string, g GammaParams) error {
	if !(g.Shape > 0) {
		return fmt.Errorf("%s shape must be positive, got %v", field, g.Shape)
	}
	if !(g.Scale > 0) {
		return fmt.Errorf("%s scale must be positive, got %v", field, g.Scale)
	}
	return nil
}

// MaxResidenceSize returns the largest residence size the weights allow.
func (c Config) MaxResidenceSize() int {
	return len(c.ResidenceSizeWeights)
}

// DefaultConfig returns the baseline scenario: a ten-thousand-person town
// on a 5x5 grid with school and workplace layers. Every field is explicit;
// callers override what they need and re-Validate.
func DefaultConfig() Config {
	return Config{
		Population: 10000,
		Grid:       GridConfig{Rows: 5, Cols: 5},
		ResidenceSizeWeights: []float64{
			0.28, 0.34, 0.16, 0.12, 0.06, 0.04,
		},
		AgePyramid: []AgeBin{
			{Lo: 0, Hi: 9, Weight: 0.12},
			{Lo: 10, Hi: 19, Weight: 0.12},
			{Lo: 20, Hi: 29, Weight: 0.14},
			{Lo: 30, Hi: 39, Weight: 0.14},
			{Lo: 40, Hi: 49, Weight: 0.13},
			{Lo: 50, Hi: 59, Weight: 0.12},
			{Lo: 60, Hi: 69, Weight: 0.10},
			{Lo: 70, Hi: 79, Weight: 0.08},
			{Lo: 80, Hi: 89, Weight: 0.05},
		},
		Susceptibility: GammaParams{Shape: 2.0, Scale: 0.5},
		Infectivity:    GammaParams{Shape: 2.0, Scale: 0.5},
		ContactRates: map[string]float64{
			LayerResidences: 0.40,
			"schools":       0.30,
			"workplaces":    0.20,
		},
		ClusterLayers: []ClusterLayerConfig{
			{Name: "schools", MaxSize: 35, DecayExponent: 1.2, MinAge: 4, MaxAge: 18},
			{Name: "workplaces", MaxSize: 25, DecayExponent: 1.1, MinAge: 19, MaxAge: 65},
		},
		Transitions: TransitionConfig{PAsymptomatic: 0.6, PDecease: 0.02},
		Run: RunConfig{
			Steps:               120,
			StepDays:            1.0,
			InitialExposedCount: 5,
			ProgressEvery:       10,
			Workers:             1,
		},
	}
}
