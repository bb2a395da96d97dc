// Package thresholds holds the clinical cut points used by the risk
// classifier and the trend analyzer. The catalog is pure data: it is
// constructed once at startup, validated, and passed by reference to
// every consumer so alternate guideline sets can be swapped in without
// touching the classification code.
package thresholds

import "fmt"

type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

func (r Range) Contains(value float64) bool {
	return value >= r.Min && value <= r.Max
}

type BloodPressureBand struct {
	Systolic  Range `yaml:"systolic"`
	Diastolic Range `yaml:"diastolic"`
}

type BloodPressureThresholds struct {
	Normal   BloodPressureBand `yaml:"normal"`
	Elevated BloodPressureBand `yaml:"elevated"`
	Stage1   BloodPressureBand `yaml:"stage1"`
	Stage2   BloodPressureBand `yaml:"stage2"`
	// Crisis has no upper bound, only the floor at which either
	// reading is an emergency.
	CrisisSystolic  float64 `yaml:"crisisSystolic"`
	CrisisDiastolic float64 `yaml:"crisisDiastolic"`
}

type BloodSugarBands struct {
	Normal      Range   `yaml:"normal"`
	Prediabetes Range   `yaml:"prediabetes"`
	Diabetes    float64 `yaml:"diabetes"`
}

type BloodSugarThresholds struct {
	Fasting BloodSugarBands `yaml:"fasting"`
	Random  BloodSugarBands `yaml:"random"`
}

type BMIThresholds struct {
	Underweight float64 `yaml:"underweight"`
	Normal      Range   `yaml:"normal"`
	Overweight  Range   `yaml:"overweight"`
	Obese       float64 `yaml:"obese"`
}

// HeartRateThresholds and TemperatureThresholds are carried as reference
// data only. No trend or risk policy is defined for them yet, so no
// component assigns severities based on these bands.
type HeartRateThresholds struct {
	Athlete    Range   `yaml:"athlete"`
	Excellent  Range   `yaml:"excellent"`
	Good       Range   `yaml:"good"`
	Fair       Range   `yaml:"fair"`
	Poor       Range   `yaml:"poor"`
	Concerning float64 `yaml:"concerning"`
}

type TemperatureThresholds struct {
	Normal        Range   `yaml:"normal"`
	LowGradeFever Range   `yaml:"lowGradeFever"`
	Fever         Range   `yaml:"fever"`
	HighFever     Range   `yaml:"highFever"`
	Dangerous     float64 `yaml:"dangerous"`
}

type TrendPolicy struct {
	SignificanceGate float64 `yaml:"significanceGate"`
	LookbackDays     int     `yaml:"lookbackDays"`
	MaxObservations  int     `yaml:"maxObservations"`
	MinObservations  int     `yaml:"minObservations"`

	BloodPressureSlopeHigh   float64 `yaml:"bloodPressureSlopeHigh"`
	BloodPressureSlopeMedium float64 `yaml:"bloodPressureSlopeMedium"`
	BloodPressureAverageHigh float64 `yaml:"bloodPressureAverageHigh"`

	BloodSugarSlopeHigh   float64 `yaml:"bloodSugarSlopeHigh"`
	BloodSugarSlopeMedium float64 `yaml:"bloodSugarSlopeMedium"`
	BloodSugarAverageHigh float64 `yaml:"bloodSugarAverageHigh"`

	WeightSlope float64 `yaml:"weightSlope"`
}

type Catalog struct {
	BloodPressure BloodPressureThresholds `yaml:"bloodPressure"`
	BloodSugar    BloodSugarThresholds    `yaml:"bloodSugar"`
	BMI           BMIThresholds           `yaml:"bmi"`
	HeartRate     HeartRateThresholds     `yaml:"heartRate"`
	Temperature   TemperatureThresholds   `yaml:"temperature"`
	Trend         TrendPolicy             `yaml:"trend"`
}

// Default returns the reference catalog. Blood pressure bands follow the
// AHA staging, blood sugar bands follow ADA guidance with fasting stricter
// than random or post-meal readings.
func Default() Catalog {
	return Catalog{
		BloodPressure: BloodPressureThresholds{
			Normal:          BloodPressureBand{Systolic: Range{90, 120}, Diastolic: Range{60, 80}},
			Elevated:        BloodPressureBand{Systolic: Range{120, 129}, Diastolic: Range{60, 80}},
			Stage1:          BloodPressureBand{Systolic: Range{130, 139}, Diastolic: Range{80, 89}},
			Stage2:          BloodPressureBand{Systolic: Range{140, 180}, Diastolic: Range{90, 120}},
			CrisisSystolic:  180,
			CrisisDiastolic: 120,
		},
		BloodSugar: BloodSugarThresholds{
			Fasting: BloodSugarBands{
				Normal:      Range{70, 100},
				Prediabetes: Range{100, 125},
				Diabetes:    126,
			},
			Random: BloodSugarBands{
				Normal:      Range{70, 140},
				Prediabetes: Range{140, 199},
				Diabetes:    200,
			},
		},
		BMI: BMIThresholds{
			Underweight: 18.5,
			Normal:      Range{18.5, 24.9},
			Overweight:  Range{25, 29.9},
			Obese:       30,
		},
		HeartRate: HeartRateThresholds{
			Athlete:    Range{40, 60},
			Excellent:  Range{61, 69},
			Good:       Range{70, 79},
			Fair:       Range{80, 89},
			Poor:       Range{90, 100},
			Concerning: 100,
		},
		Temperature: TemperatureThresholds{
			Normal:        Range{36.1, 37.2},
			LowGradeFever: Range{37.3, 38.0},
			Fever:         Range{38.1, 39.0},
			HighFever:     Range{39.1, 41.0},
			Dangerous:     41.0,
		},
		Trend: TrendPolicy{
			SignificanceGate: 0.3,
			LookbackDays:     90,
			MaxObservations:  10,
			MinObservations:  3,

			BloodPressureSlopeHigh:   2,
			BloodPressureSlopeMedium: 1,
			BloodPressureAverageHigh: 130,

			BloodSugarSlopeHigh:   5,
			BloodSugarSlopeMedium: 2,
			BloodSugarAverageHigh: 140,

			WeightSlope: 0.5,
		},
	}
}

// Validate rejects catalogs that would silently misclassify. A service
// must refuse to start with an invalid catalog.
func (c *Catalog) Validate() error {
	ranges := map[string]Range{
		"bloodPressure.normal.systolic":    c.BloodPressure.Normal.Systolic,
		"bloodPressure.normal.diastolic":   c.BloodPressure.Normal.Diastolic,
		"bloodPressure.elevated.systolic":  c.BloodPressure.Elevated.Systolic,
		"bloodPressure.elevated.diastolic": c.BloodPressure.Elevated.Diastolic,
		"bloodPressure.stage1.systolic":    c.BloodPressure.Stage1.Systolic,
		"bloodPressure.stage1.diastolic":   c.BloodPressure.Stage1.Diastolic,
		"bloodPressure.stage2.systolic":    c.BloodPressure.Stage2.Systolic,
		"bloodPressure.stage2.diastolic":   c.BloodPressure.Stage2.Diastolic,
		"bloodSugar.fasting.normal":        c.BloodSugar.Fasting.Normal,
		"bloodSugar.fasting.prediabetes":   c.BloodSugar.Fasting.Prediabetes,
		"bloodSugar.random.normal":         c.BloodSugar.Random.Normal,
		"bloodSugar.random.prediabetes":    c.BloodSugar.Random.Prediabetes,
		"bmi.normal":                       c.BMI.Normal,
		"bmi.overweight":                   c.BMI.Overweight,
	}
	for name, r := range ranges {
		if r.Min >= r.Max {
			return fmt.Errorf("thresholds: %s range is inverted or empty (%v-%v)", name, r.Min, r.Max)
		}
	}

	positive := map[string]float64{
		"bloodPressure.crisisSystolic":  c.BloodPressure.CrisisSystolic,
		"bloodPressure.crisisDiastolic": c.BloodPressure.CrisisDiastolic,
		"bloodSugar.fasting.diabetes":   c.BloodSugar.Fasting.Diabetes,
		"bloodSugar.random.diabetes":    c.BloodSugar.Random.Diabetes,
		"bmi.underweight":               c.BMI.Underweight,
		"bmi.obese":                     c.BMI.Obese,
	}
	for name, v := range positive {
		if v <= 0 {
			return fmt.Errorf("thresholds: %s must be positive, got %v", name, v)
		}
	}

	if c.BMI.Underweight >= c.BMI.Obese {
		return fmt.Errorf("thresholds: bmi.underweight %v must be below bmi.obese %v", c.BMI.Underweight, c.BMI.Obese)
	}
	if c.BloodSugar.Fasting.Diabetes >= c.BloodSugar.Random.Diabetes {
		return fmt.Errorf("thresholds: fasting diabetes cut point must be stricter than the random cut point")
	}

	t := c.Trend
	if t.SignificanceGate <= 0 || t.SignificanceGate > 1 {
		return fmt.Errorf("thresholds: trend.significanceGate must be in (0, 1], got %v", t.SignificanceGate)
	}
	if t.MinObservations < 2 {
		return fmt.Errorf("thresholds: trend.minObservations must be at least 2, got %d", t.MinObservations)
	}
	if t.MaxObservations < t.MinObservations {
		return fmt.Errorf("thresholds: trend.maxObservations %d is below trend.minObservations %d", t.MaxObservations, t.MinObservations)
	}
	if t.LookbackDays <= 0 {
		return fmt.Errorf("thresholds: trend.lookbackDays must be positive, got %d", t.LookbackDays)
	}

	return nil
}
