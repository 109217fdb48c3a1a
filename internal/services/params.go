package services

// Tunable inputs of the generation pipeline. All numeric tables are
// configuration, not calibrated model output; DefaultParams returns the
// values the service ships with and callers override individual knobs.
type Params struct {
	// People per km², keyed by ISO3 country code.
	DensityByCountry map[string]int
	DefaultDensity   int

	AvgHouseholdSize float64

	// Index i holds the probability of a household having i children (0-3).
	ChildCountWeights []float64
	// Index 0 holds the probability of one adult, index 1 of two.
	AdultCountWeights []float64

	// Work category -> base weight, renormalized over non-empty categories.
	WorkCategoryWeights map[WorkCategory]float64

	ShoppingRadiusKm float64
	ShoppingChance   float64
	HealthcareChance float64

	ElderlyAge           int
	IndependentSchoolAge int
	KindergartenMinAge   int

	DropoffMinMinutes int
	DropoffMaxMinutes int
	ErrandMinMinutes  int
	ErrandMaxMinutes  int

	// Households are dropped in generation order once the synthesized
	// population would exceed this many agents.
	MaxAgents int

	// Worker goroutines used for per-household generation.
	Workers int
}

func DefaultParams() Params {
	return Params{
		DensityByCountry: map[string]int{
			"IRL": 70,
			"GBR": 275,
			"USA": 36,
			"DEU": 240,
			"FRA": 119,
			"NLD": 508,
			"BEL": 383,
			"ESP": 94,
			"PRT": 111,
			"ITA": 200,
		},
		DefaultDensity: 100,

		AvgHouseholdSize:  2.5,
		ChildCountWeights: []float64{0.30, 0.35, 0.25, 0.10},
		AdultCountWeights: []float64{0.30, 0.70},

		WorkCategoryWeights: map[WorkCategory]float64{
			WorkSupermarket: 0.15,
			WorkHealthcare:  0.15,
			WorkEducation:   0.15,
			WorkRetail:      0.40,
			WorkFood:        0.15,
		},

		ShoppingRadiusKm: 2.0,
		ShoppingChance:   0.40,
		HealthcareChance: 0.30,

		ElderlyAge:           65,
		IndependentSchoolAge: 12,
		KindergartenMinAge:   3,

		DropoffMinMinutes: 5,
		DropoffMaxMinutes: 10,
		ErrandMinMinutes:  30,
		ErrandMaxMinutes:  120,

		MaxAgents: 1000,
		Workers:   4,
	}
}
