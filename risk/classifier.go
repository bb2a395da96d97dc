// Package risk classifies single vital sign readings against the
// threshold catalog. Classification is deterministic, has no side
// effects and never errors: readings that cannot be assessed yield a
// nil assessment.
package risk

import (
	"github.com/healthmitra/insights/observations"
	"github.com/healthmitra/insights/thresholds"
)

// Assessment is the outcome of classifying one reading. It is never
// persisted directly; the insight generator folds it into an insight.
type Assessment struct {
	Category        string
	Severity        Severity
	Message         string
	Recommendations []string
}

type Classifier struct {
	catalog *thresholds.Catalog
}

func NewClassifier(catalog *thresholds.Catalog) *Classifier {
	return &Classifier{catalog: catalog}
}

// BloodPressure evaluates bands worst first so that either reading
// crossing into a higher band decides the outcome. Missing readings are
// not assessable.
func (c *Classifier) BloodPressure(systolic, diastolic *float64) *Assessment {
	if systolic == nil || diastolic == nil {
		return nil
	}

	bp := c.catalog.BloodPressure
	sys, dia := *systolic, *diastolic

	if sys >= bp.CrisisSystolic || dia >= bp.CrisisDiastolic {
		return &Assessment{
			Category: "Hypertensive Crisis",
			Severity: SeverityCritical,
			Message:  "Your blood pressure is critically high. Seek immediate medical attention.",
			Recommendations: []string{
				"Call emergency services or go to ER immediately",
				"Do not delay medical care",
			},
		}
	}

	if sys >= bp.Stage2.Systolic.Min || dia >= bp.Stage2.Diastolic.Min {
		return &Assessment{
			Category: "Stage 2 Hypertension",
			Severity: SeverityHigh,
			Message:  "Your blood pressure indicates Stage 2 Hypertension.",
			Recommendations: []string{
				"Consult your doctor for medication adjustment",
				"Monitor blood pressure daily",
				"Reduce sodium intake",
				"Exercise regularly as advised by doctor",
			},
		}
	}

	// A diastolic of exactly 80 still belongs to the normal and elevated
	// bands; stage 1 starts strictly above it.
	if sys >= bp.Stage1.Systolic.Min || dia > bp.Stage1.Diastolic.Min {
		return &Assessment{
			Category: "Stage 1 Hypertension",
			Severity: SeverityMedium,
			Message:  "Your blood pressure is elevated and needs attention.",
			Recommendations: []string{
				"Schedule appointment with healthcare provider",
				"Monitor blood pressure regularly",
				"Maintain healthy diet and exercise",
				"Limit alcohol and reduce stress",
			},
		}
	}

	if sys >= bp.Elevated.Systolic.Min {
		return &Assessment{
			Category: "Elevated Blood Pressure",
			Severity: SeverityLow,
			Message:  "Your blood pressure is elevated but manageable with lifestyle changes.",
			Recommendations: []string{
				"Maintain healthy lifestyle",
				"Regular exercise",
				"Balanced diet with less sodium",
				"Monitor blood pressure monthly",
			},
		}
	}

	return &Assessment{
		Category:        "Normal Blood Pressure",
		Severity:        SeverityLow,
		Message:         "Your blood pressure is within normal range.",
		Recommendations: []string{"Continue healthy lifestyle habits"},
	}
}

// BloodSugar selects the fasting or random threshold set from the
// parameter. Fasting is the stricter path. Post-meal readings share the
// random thresholds.
func (c *Classifier) BloodSugar(value *float64, parameter observations.Parameter) *Assessment {
	if value == nil || !parameter.IsBloodSugar() {
		return nil
	}

	if parameter == observations.ParameterBloodSugarFasting {
		return c.fastingSugar(*value)
	}
	return c.randomSugar(*value)
}

func (c *Classifier) fastingSugar(value float64) *Assessment {
	bands := c.catalog.BloodSugar.Fasting

	if value >= bands.Diabetes {
		return &Assessment{
			Category: "Possible Diabetes",
			Severity: SeverityHigh,
			Message:  "Your fasting blood sugar indicates possible diabetes.",
			Recommendations: []string{
				"Consult endocrinologist immediately",
				"Follow prescribed diabetic diet",
				"Regular blood sugar monitoring",
				"Take prescribed medications",
			},
		}
	}

	if value >= bands.Prediabetes.Min {
		return &Assessment{
			Category: "Prediabetes Risk",
			Severity: SeverityMedium,
			Message:  "Your fasting blood sugar indicates prediabetes risk.",
			Recommendations: []string{
				"Consult healthcare provider",
				"Reduce carbohydrate intake",
				"Increase physical activity",
				"Regular monitoring",
			},
		}
	}

	return normalSugar()
}

func (c *Classifier) randomSugar(value float64) *Assessment {
	bands := c.catalog.BloodSugar.Random

	if value >= bands.Diabetes {
		return &Assessment{
			Category: "Possible Diabetes",
			Severity: SeverityHigh,
			Message:  "Your blood sugar level indicates possible diabetes.",
			Recommendations: []string{
				"Consult healthcare provider immediately",
				"Avoid high-sugar foods",
				"Regular monitoring required",
			},
		}
	}

	if value >= bands.Prediabetes.Min {
		return &Assessment{
			Category: "Elevated Blood Sugar",
			Severity: SeverityMedium,
			Message:  "Your blood sugar is elevated.",
			Recommendations: []string{
				"Limit sugar and refined carbs",
				"Exercise after meals",
				"Regular check-ups",
			},
		}
	}

	return normalSugar()
}

func normalSugar() *Assessment {
	return &Assessment{
		Category:        "Normal Blood Sugar",
		Severity:        SeverityLow,
		Message:         "Your blood sugar is within normal range.",
		Recommendations: []string{"Maintain healthy diet and exercise"},
	}
}

// CalculateBMI expects weight in kilograms and height in centimeters.
func CalculateBMI(weightKg, heightCm float64) float64 {
	heightM := heightCm / 100
	return weightKg / (heightM * heightM)
}

// BMI derives the body mass index and classifies it. Underweight is
// never low severity: it carries its own health risk.
func (c *Classifier) BMI(weightKg, heightCm *float64) *Assessment {
	if weightKg == nil || heightCm == nil || *weightKg <= 0 || *heightCm <= 0 {
		return nil
	}

	bmi := CalculateBMI(*weightKg, *heightCm)
	bands := c.catalog.BMI

	if bmi < bands.Underweight {
		return &Assessment{
			Category: "Underweight",
			Severity: SeverityMedium,
			Message:  "Your BMI indicates you are underweight.",
			Recommendations: []string{
				"Consult nutritionist for healthy weight gain plan",
				"Regular health check-ups",
			},
		}
	}

	if bmi >= bands.Obese {
		return &Assessment{
			Category: "Obesity",
			Severity: SeverityHigh,
			Message:  "Your BMI indicates obesity, which increases health risks.",
			Recommendations: []string{
				"Consult healthcare provider for weight management",
				"Structured diet and exercise plan",
				"Regular monitoring",
			},
		}
	}

	if bmi >= bands.Overweight.Min {
		return &Assessment{
			Category: "Overweight",
			Severity: SeverityMedium,
			Message:  "Your BMI indicates you are overweight.",
			Recommendations: []string{
				"Balanced diet with calorie control",
				"Regular physical activity",
				"Monitor weight weekly",
			},
		}
	}

	return &Assessment{
		Category:        "Normal Weight",
		Severity:        SeverityLow,
		Message:         "Your BMI is within the healthy range.",
		Recommendations: []string{"Maintain current diet and activity levels"},
	}
}
