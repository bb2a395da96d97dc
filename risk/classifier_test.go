package risk_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/healthmitra/insights/observations"
	"github.com/healthmitra/insights/risk"
	"github.com/healthmitra/insights/thresholds"
)

func Ptr[T any](value T) *T {
	return &value
}

var _ = Describe("Classifier", func() {
	var classifier *risk.Classifier

	BeforeEach(func() {
		catalog := thresholds.Default()
		classifier = risk.NewClassifier(&catalog)
	})

	Describe("BloodPressure", func() {
		It("returns no assessment when either reading is missing", func() {
			Expect(classifier.BloodPressure(nil, Ptr(80.0))).To(BeNil())
			Expect(classifier.BloodPressure(Ptr(120.0), nil)).To(BeNil())
			Expect(classifier.BloodPressure(nil, nil)).To(BeNil())
		})

		It("classifies any reading at or above the crisis floor as critical", func() {
			for _, pair := range [][2]float64{{180, 80}, {200, 70}, {120, 120}, {110, 130}, {185, 125}} {
				assessment := classifier.BloodPressure(Ptr(pair[0]), Ptr(pair[1]))
				Expect(assessment).ToNot(BeNil())
				Expect(assessment.Severity).To(Equal(risk.SeverityCritical), "for %v", pair)
				Expect(assessment.Category).To(Equal("Hypertensive Crisis"))
			}
		})

		It("classifies 150/95 as Stage 2 Hypertension with high severity", func() {
			assessment := classifier.BloodPressure(Ptr(150.0), Ptr(95.0))
			Expect(assessment.Category).To(Equal("Stage 2 Hypertension"))
			Expect(assessment.Severity).To(Equal(risk.SeverityHigh))
			Expect(assessment.Recommendations).ToNot(BeEmpty())
		})

		It("lets the worse reading win when systolic and diastolic disagree", func() {
			// Normal systolic, stage 2 diastolic.
			assessment := classifier.BloodPressure(Ptr(118.0), Ptr(95.0))
			Expect(assessment.Category).To(Equal("Stage 2 Hypertension"))
			Expect(assessment.Severity).To(Equal(risk.SeverityHigh))

			// Stage 1 systolic, normal diastolic.
			assessment = classifier.BloodPressure(Ptr(135.0), Ptr(70.0))
			Expect(assessment.Category).To(Equal("Stage 1 Hypertension"))
			Expect(assessment.Severity).To(Equal(risk.SeverityMedium))
		})

		It("keeps the elevated band at low severity across its whole range", func() {
			for systolic := 120.0; systolic <= 129; systolic++ {
				assessment := classifier.BloodPressure(Ptr(systolic), Ptr(80.0))
				Expect(assessment.Category).To(Equal("Elevated Blood Pressure"), "at %v", systolic)
				Expect(assessment.Severity).To(Equal(risk.SeverityLow))
			}
		})

		It("classifies normal readings as low with a maintenance recommendation", func() {
			assessment := classifier.BloodPressure(Ptr(115.0), Ptr(75.0))
			Expect(assessment.Category).To(Equal("Normal Blood Pressure"))
			Expect(assessment.Severity).To(Equal(risk.SeverityLow))
			Expect(assessment.Recommendations).To(HaveLen(1))
		})

		It("is deterministic for identical inputs", func() {
			first := classifier.BloodPressure(Ptr(150.0), Ptr(95.0))
			second := classifier.BloodPressure(Ptr(150.0), Ptr(95.0))
			Expect(first).To(Equal(second))
		})
	})

	Describe("BloodSugar", func() {
		It("returns no assessment for missing values or non-sugar parameters", func() {
			Expect(classifier.BloodSugar(nil, observations.ParameterBloodSugarFasting)).To(BeNil())
			Expect(classifier.BloodSugar(Ptr(100.0), observations.ParameterWeight)).To(BeNil())
		})

		It("uses the stricter fasting thresholds", func() {
			// Diabetic on the fasting path, merely elevated on the random path.
			fasting := classifier.BloodSugar(Ptr(130.0), observations.ParameterBloodSugarFasting)
			Expect(fasting.Category).To(Equal("Possible Diabetes"))
			Expect(fasting.Severity).To(Equal(risk.SeverityHigh))

			random := classifier.BloodSugar(Ptr(130.0), observations.ParameterBloodSugarRandom)
			Expect(random.Category).To(Equal("Normal Blood Sugar"))
			Expect(random.Severity).To(Equal(risk.SeverityLow))
		})

		It("classifies fasting prediabetes as medium", func() {
			assessment := classifier.BloodSugar(Ptr(110.0), observations.ParameterBloodSugarFasting)
			Expect(assessment.Category).To(Equal("Prediabetes Risk"))
			Expect(assessment.Severity).To(Equal(risk.SeverityMedium))
			Expect(assessment.Recommendations).ToNot(BeEmpty())
		})

		It("shares the random thresholds for post-meal readings", func() {
			postMeal := classifier.BloodSugar(Ptr(210.0), observations.ParameterBloodSugarPostMeal)
			Expect(postMeal.Category).To(Equal("Possible Diabetes"))
			Expect(postMeal.Severity).To(Equal(risk.SeverityHigh))

			elevated := classifier.BloodSugar(Ptr(150.0), observations.ParameterBloodSugarPostMeal)
			Expect(elevated.Category).To(Equal("Elevated Blood Sugar"))
			Expect(elevated.Severity).To(Equal(risk.SeverityMedium))
		})
	})

	Describe("BMI", func() {
		It("returns no assessment for missing or non-positive inputs", func() {
			Expect(classifier.BMI(nil, Ptr(175.0))).To(BeNil())
			Expect(classifier.BMI(Ptr(70.0), nil)).To(BeNil())
			Expect(classifier.BMI(Ptr(70.0), Ptr(0.0))).To(BeNil())
		})

		It("classifies 70kg at 175cm as normal", func() {
			Expect(risk.CalculateBMI(70, 175)).To(BeNumerically("~", 22.9, 0.1))

			assessment := classifier.BMI(Ptr(70.0), Ptr(175.0))
			Expect(assessment.Category).To(Equal("Normal Weight"))
			Expect(assessment.Severity).To(Equal(risk.SeverityLow))
		})

		It("classifies 100kg at 175cm as obese with high severity", func() {
			Expect(risk.CalculateBMI(100, 175)).To(BeNumerically("~", 32.7, 0.1))

			assessment := classifier.BMI(Ptr(100.0), Ptr(175.0))
			Expect(assessment.Category).To(Equal("Obesity"))
			Expect(assessment.Severity).To(Equal(risk.SeverityHigh))
		})

		It("never treats underweight as low severity", func() {
			assessment := classifier.BMI(Ptr(50.0), Ptr(175.0))
			Expect(assessment.Category).To(Equal("Underweight"))
			Expect(assessment.Severity).To(Equal(risk.SeverityMedium))
			Expect(assessment.Recommendations).ToNot(BeEmpty())
		})

		It("classifies the overweight band as medium", func() {
			assessment := classifier.BMI(Ptr(85.0), Ptr(175.0))
			Expect(assessment.Category).To(Equal("Overweight"))
			Expect(assessment.Severity).To(Equal(risk.SeverityMedium))
		})
	})
})

var _ = Describe("Severity", func() {
	It("orders severities from low to critical", func() {
		Expect(risk.SeverityCritical.AtLeast(risk.SeverityHigh)).To(BeTrue())
		Expect(risk.SeverityHigh.AtLeast(risk.SeverityHigh)).To(BeTrue())
		Expect(risk.SeverityMedium.AtLeast(risk.SeverityHigh)).To(BeFalse())
		Expect(risk.SeverityLow.AtLeast(risk.SeverityMedium)).To(BeFalse())
	})
})
