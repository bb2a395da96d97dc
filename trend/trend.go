// Package trend fits a least squares line through a series of readings
// for one parameter and surfaces findings when the fit is strong enough
// to act on. The significance score is the clamped R-squared of the fit:
// a heuristic evidence gate, not a statistical confidence interval.
package trend

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/montanaflynn/stats"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/healthmitra/insights/observations"
	"github.com/healthmitra/insights/risk"
	"github.com/healthmitra/insights/thresholds"
)

// Point is one reading used for trend fitting.
type Point struct {
	Time          time.Time
	Value         float64
	ObservationId primitive.ObjectID
}

// Finding describes a significant trend. Slope is in value units per
// day. Severity is empty for parameters without a codified risk policy;
// those findings carry slope and significance only.
type Finding struct {
	Parameter       observations.Parameter
	Slope           float64
	Significance    float64
	Severity        risk.Severity
	Message         string
	Recommendations []string
	Points          []Point
}

type Analyzer struct {
	catalog *thresholds.Catalog
}

func NewAnalyzer(catalog *thresholds.Catalog) *Analyzer {
	return &Analyzer{catalog: catalog}
}

// Analyze returns a finding for the series, or nil when there are too
// few points, the fit is below the significance gate, or the parameter
// policy considers the trend unremarkable. None of these are errors.
func (a *Analyzer) Analyze(points []Point, parameter observations.Parameter) *Finding {
	policy := a.catalog.Trend
	if len(points) < policy.MinObservations {
		return nil
	}

	ordered := make([]Point, len(points))
	copy(ordered, points)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Time.Before(ordered[j].Time)
	})

	// Timestamps become whole day offsets from the earliest reading.
	first := ordered[0].Time
	x := make(stats.Float64Data, len(ordered))
	y := make(stats.Float64Data, len(ordered))
	for i, p := range ordered {
		x[i] = math.Floor(p.Time.Sub(first).Hours() / 24)
		y[i] = p.Value
	}

	sdX, err := stats.StandardDeviation(x)
	if err != nil || sdX == 0 {
		// All readings on the same day; no time axis to fit against.
		return nil
	}
	sdY, err := stats.StandardDeviation(y)
	if err != nil || sdY == 0 {
		// Perfectly flat series carries no trend evidence.
		return nil
	}

	r, err := stats.Pearson(x, y)
	if err != nil {
		return nil
	}

	significance := math.Min(r*r, 1)
	if significance < policy.SignificanceGate {
		return nil
	}

	slope := r * sdY / sdX
	mean, err := stats.Mean(y)
	if err != nil {
		return nil
	}

	finding := a.classify(parameter, slope, mean)
	if finding == nil {
		return nil
	}

	finding.Parameter = parameter
	finding.Slope = slope
	finding.Significance = significance
	finding.Points = ordered
	return finding
}

func (a *Analyzer) classify(parameter observations.Parameter, slope, mean float64) *Finding {
	switch {
	case parameter == observations.ParameterBloodPressure:
		return a.classifyBloodPressure(slope, mean)
	case parameter.IsBloodSugar():
		return a.classifyBloodSugar(slope, mean)
	case parameter == observations.ParameterWeight:
		return a.classifyWeight(slope)
	case parameter == observations.ParameterHeartRate, parameter == observations.ParameterTemperature:
		// No codified risk policy for these yet; surface the rate of
		// change without a severity.
		return &Finding{
			Message: fmt.Sprintf("Your %s shows a consistent trend of %+.2f per day.", parameterLabel(parameter), slope),
		}
	default:
		return nil
	}
}

func (a *Analyzer) classifyBloodPressure(slope, mean float64) *Finding {
	policy := a.catalog.Trend
	change := thirtyDayChangePercent(slope, mean)

	if slope > policy.BloodPressureSlopeHigh && mean > policy.BloodPressureAverageHigh {
		return &Finding{
			Severity: risk.SeverityHigh,
			Message:  fmt.Sprintf("Your blood pressure shows an increasing trend (%.1f%% increase over 30 days).", change),
			Recommendations: []string{
				"Schedule appointment with cardiologist",
				"Monitor blood pressure daily",
				"Review current medications",
				"Implement stress management techniques",
			},
		}
	}

	if slope > policy.BloodPressureSlopeMedium {
		return &Finding{
			Severity: risk.SeverityMedium,
			Message:  fmt.Sprintf("Your blood pressure is gradually increasing (%.1f%% over 30 days).", change),
			Recommendations: []string{
				"Monitor blood pressure more frequently",
				"Review diet and exercise habits",
				"Consult healthcare provider",
			},
		}
	}

	// Flat or declining blood pressure is not flagged, however strong
	// the fit.
	return nil
}

func (a *Analyzer) classifyBloodSugar(slope, mean float64) *Finding {
	policy := a.catalog.Trend
	change := thirtyDayChangePercent(slope, mean)

	if slope > policy.BloodSugarSlopeHigh && mean > policy.BloodSugarAverageHigh {
		return &Finding{
			Severity: risk.SeverityHigh,
			Message:  fmt.Sprintf("Your blood sugar shows a concerning upward trend (%.1f%% increase over 30 days).", change),
			Recommendations: []string{
				"Consult endocrinologist immediately",
				"Review diabetic medications",
				"Strict dietary monitoring",
				"Check for medication compliance",
			},
		}
	}

	if slope > policy.BloodSugarSlopeMedium {
		return &Finding{
			Severity: risk.SeverityMedium,
			Message:  fmt.Sprintf("Your blood sugar levels are gradually increasing (%.1f%% over 30 days).", change),
			Recommendations: []string{
				"Monitor blood sugar more frequently",
				"Review carbohydrate intake",
				"Increase physical activity",
			},
		}
	}

	return nil
}

func (a *Analyzer) classifyWeight(slope float64) *Finding {
	if math.Abs(slope) <= a.catalog.Trend.WeightSlope {
		return nil
	}

	weeklyRate := math.Abs(slope * 7)
	if slope > 0 {
		return &Finding{
			Severity: risk.SeverityMedium,
			Message:  fmt.Sprintf("You're gaining weight at a rate of %.1fkg per week.", weeklyRate),
			Recommendations: []string{
				"Review caloric intake",
				"Increase physical activity",
				"Consider nutritionist consultation",
			},
		}
	}

	return &Finding{
		Severity: risk.SeverityLow,
		Message:  fmt.Sprintf("You're losing weight at a rate of %.1fkg per week.", weeklyRate),
		Recommendations: []string{
			"Monitor for underlying health issues",
			"Ensure adequate nutrition",
			"Consult healthcare provider if unintentional",
		},
	}
}

func thirtyDayChangePercent(slope, mean float64) float64 {
	if mean == 0 {
		return 0
	}
	return math.Abs(slope*30/mean) * 100
}

func parameterLabel(parameter observations.Parameter) string {
	switch parameter {
	case observations.ParameterHeartRate:
		return "heart rate"
	case observations.ParameterTemperature:
		return "body temperature"
	default:
		return string(parameter)
	}
}
