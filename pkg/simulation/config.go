package simulation

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Config bundles every tunable of the simulation into one value that is
// constructed once, validated once and passed explicitly to NewWorld.
// Nothing in the core reads ambient/global state.
type Config struct {
	// World Dimensions
	WorldWidth  float64 `json:"worldWidth"`
	WorldHeight float64 `json:"worldHeight"`

	// Population
	NumBoids int `json:"numBoids"`

	// Speed regulation
	StartSpeed            float64 `json:"startSpeed"`            // Cruising speed agents relax toward
	MaxSpeed              float64 `json:"maxSpeed"`              // Hard cap after integration
	SpeedAdjustmentFactor float64 `json:"speedAdjustmentFactor"` // Relaxation rate toward StartSpeed
	VelocityDamping       float64 `json:"velocityDamping"`       // Multiplicative damping after the position update

	// Interaction Radii
	PerceptionRadius   float64 `json:"perceptionRadius"`   // Alignment/cohesion range
	SeparationRadius   float64 `json:"separationRadius"`   // Repulsion sub-range, must not exceed PerceptionRadius
	BoundaryPerception float64 `json:"boundaryPerception"` // Soft-wall margin, coupled to PerceptionRadius (see Validate)

	// Flocking rule weights (per-agent jitter is applied on top of these)
	CohesionWeight   float64 `json:"cohesionWeight"`
	AlignmentWeight  float64 `json:"alignmentWeight"`
	SeparationWeight float64 `json:"separationWeight"`
	WeightJitter     float64 `json:"weightJitter"` // Relative spread of per-agent weights, e.g. 0.2 for +/-20%

	// Noise perturbation
	RandomnessWeight float64 `json:"randomnessWeight"`
	NoisePhaseStep   float64 `json:"noisePhaseStep"`

	// Physics
	MassEquivalent float64 `json:"massEquivalent"` // Inertia divisor applied to acceleration
	TurnFactor     float64 `json:"turnFactor"`     // Boundary repulsion strength per unit of penetration

	// Attractors
	AttractorForce            float64 `json:"attractorForce"`
	AttractorForceMax         float64 `json:"attractorForceMax"` // Clamp; sole safeguard against divergence at distance 0
	AttractorForceDistanceExp float64 `json:"attractorForceDistanceExp"`
	AttractorInitCount        int     `json:"attractorInitCount"`
	AttractorInitSeed         int64   `json:"attractorInitSeed"`
	AttractorInitMargin       float64 `json:"attractorInitMargin"`

	// Field sampling / color
	FieldScale             float64 `json:"fieldScale"`             // Grid resolution as a fraction of world size per axis
	AttractorColorFactor   float64 `json:"attractorColorFactor"`   // Brightness gain of the sampled field
	ProximityNormalization float64 `json:"proximityNormalization"` // Crowding divisor in the color derivation

	// Workers is the number of goroutines used for the force sweep.
	// Zero means one worker per available CPU.
	Workers int `json:"workers"`
}

// DefaultConfig returns the reference parameter set.
func DefaultConfig() *Config {
	return &Config{
		WorldWidth:  1500,
		WorldHeight: 1000,
		NumBoids:    100,

		StartSpeed:            2.25,
		MaxSpeed:              5.0,
		SpeedAdjustmentFactor: 0.3,
		VelocityDamping:       0.95,

		PerceptionRadius:   30.0,
		SeparationRadius:   20.0,
		BoundaryPerception: 30.0,

		CohesionWeight:   0.4,
		AlignmentWeight:  0.2,
		SeparationWeight: 3.0,
		WeightJitter:     0.2,

		RandomnessWeight: 0.225,
		NoisePhaseStep:   0.01,

		MassEquivalent: 2.0,
		TurnFactor:     0.0325,

		AttractorForce:            10.0,
		AttractorForceMax:         20.0,
		AttractorForceDistanceExp: -1.0,
		AttractorInitCount:        10,
		AttractorInitSeed:         42,
		AttractorInitMargin:       100.0,

		FieldScale:             0.25,
		AttractorColorFactor:   2.0,
		ProximityNormalization: 5.0,

		Workers: 0,
	}
}

// Validate checks the construction-time contract: every parameter that is
// physically required to be positive is, every float is finite, and the
// boundary margin stays explicitly coupled to the perception radius.
// Violations surface once at setup, never per tick.
func (c *Config) Validate() error {
	positives := []struct {
		name string
		v    float64
	}{
		{"worldWidth", c.WorldWidth},
		{"worldHeight", c.WorldHeight},
		{"startSpeed", c.StartSpeed},
		{"maxSpeed", c.MaxSpeed},
		{"perceptionRadius", c.PerceptionRadius},
		{"separationRadius", c.SeparationRadius},
		{"boundaryPerception", c.BoundaryPerception},
		{"massEquivalent", c.MassEquivalent},
		{"attractorForceMax", c.AttractorForceMax},
		{"proximityNormalization", c.ProximityNormalization},
	}
	for _, p := range positives {
		if math.IsNaN(p.v) || math.IsInf(p.v, 0) || p.v <= 0 {
			return fmt.Errorf("config: %s must be finite and positive, got %v", p.name, p.v)
		}
	}

	finites := []struct {
		name string
		v    float64
	}{
		{"speedAdjustmentFactor", c.SpeedAdjustmentFactor},
		{"velocityDamping", c.VelocityDamping},
		{"cohesionWeight", c.CohesionWeight},
		{"alignmentWeight", c.AlignmentWeight},
		{"separationWeight", c.SeparationWeight},
		{"weightJitter", c.WeightJitter},
		{"randomnessWeight", c.RandomnessWeight},
		{"noisePhaseStep", c.NoisePhaseStep},
		{"turnFactor", c.TurnFactor},
		{"attractorForce", c.AttractorForce},
		{"attractorForceDistanceExp", c.AttractorForceDistanceExp},
		{"attractorInitMargin", c.AttractorInitMargin},
		{"attractorColorFactor", c.AttractorColorFactor},
	}
	for _, p := range finites {
		if math.IsNaN(p.v) || math.IsInf(p.v, 0) {
			return fmt.Errorf("config: %s must be finite, got %v", p.name, p.v)
		}
	}

	if c.NumBoids <= 0 {
		return fmt.Errorf("config: numBoids must be positive, got %d", c.NumBoids)
	}
	if c.AttractorInitCount < 0 {
		return fmt.Errorf("config: attractorInitCount must not be negative, got %d", c.AttractorInitCount)
	}
	if c.Workers < 0 {
		return fmt.Errorf("config: workers must not be negative, got %d", c.Workers)
	}
	if c.SeparationRadius > c.PerceptionRadius {
		return fmt.Errorf("config: separationRadius (%v) must not exceed perceptionRadius (%v)",
			c.SeparationRadius, c.PerceptionRadius)
	}
	if c.BoundaryPerception < c.PerceptionRadius {
		return fmt.Errorf("config: boundaryPerception (%v) must be at least perceptionRadius (%v)",
			c.BoundaryPerception, c.PerceptionRadius)
	}
	if c.SpeedAdjustmentFactor < 0 || c.SpeedAdjustmentFactor > 1 {
		return fmt.Errorf("config: speedAdjustmentFactor must be in [0,1], got %v", c.SpeedAdjustmentFactor)
	}
	if c.VelocityDamping <= 0 || c.VelocityDamping > 1 {
		return fmt.Errorf("config: velocityDamping must be in (0,1], got %v", c.VelocityDamping)
	}
	if c.WeightJitter < 0 || c.WeightJitter >= 1 {
		return fmt.Errorf("config: weightJitter must be in [0,1), got %v", c.WeightJitter)
	}
	if c.FieldScale <= 0 || c.FieldScale > 1 {
		return fmt.Errorf("config: fieldScale must be in (0,1], got %v", c.FieldScale)
	}
	if c.StartSpeed > c.MaxSpeed {
		return fmt.Errorf("config: startSpeed (%v) must not exceed maxSpeed (%v)", c.StartSpeed, c.MaxSpeed)
	}
	return nil
}

// LoadConfig loads configuration from a JSON file and validates it against
// the JSON schema before unmarshalling, then applies the same construction
// contract as Validate.
func LoadConfig(configFile string, schemaFile string) (*Config, error) {
	sch, err := jsonschema.Compile(schemaFile)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	b, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, fmt.Errorf("failed to decode config json: %w", err)
	}
	if err := sch.Validate(v); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
