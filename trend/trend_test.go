package trend_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/healthmitra/insights/observations"
	"github.com/healthmitra/insights/risk"
	"github.com/healthmitra/insights/thresholds"
	"github.com/healthmitra/insights/trend"
)

// series builds one point per day ending today, with values produced by
// valueAt given the zero based day index.
func series(count int, valueAt func(i int) float64) []trend.Point {
	points := make([]trend.Point, count)
	start := time.Now().AddDate(0, 0, -(count - 1))
	for i := 0; i < count; i++ {
		points[i] = trend.Point{
			Time:          start.AddDate(0, 0, i),
			Value:         valueAt(i),
			ObservationId: primitive.NewObjectID(),
		}
	}
	return points
}

var _ = Describe("Analyzer", func() {
	var analyzer *trend.Analyzer

	BeforeEach(func() {
		catalog := thresholds.Default()
		analyzer = trend.NewAnalyzer(&catalog)
	})

	It("returns no finding for fewer than three points", func() {
		points := series(2, func(i int) float64 { return 100 + float64(i)*50 })
		Expect(analyzer.Analyze(points, observations.ParameterBloodPressure)).To(BeNil())
		Expect(analyzer.Analyze(nil, observations.ParameterBloodPressure)).To(BeNil())
	})

	It("returns no finding for a perfectly flat series", func() {
		points := series(10, func(int) float64 { return 98 })
		Expect(analyzer.Analyze(points, observations.ParameterBloodPressure)).To(BeNil())
	})

	It("returns no finding when all readings fall on the same day", func() {
		now := time.Now()
		points := []trend.Point{
			{Time: now, Value: 120, ObservationId: primitive.NewObjectID()},
			{Time: now.Add(time.Hour), Value: 130, ObservationId: primitive.NewObjectID()},
			{Time: now.Add(2 * time.Hour), Value: 140, ObservationId: primitive.NewObjectID()},
		}
		Expect(analyzer.Analyze(points, observations.ParameterBloodPressure)).To(BeNil())
	})

	It("gates out weak fits", func() {
		points := series(5, func(i int) float64 {
			if i%2 == 0 {
				return 100
			}
			return 101
		})
		Expect(analyzer.Analyze(points, observations.ParameterBloodSugarFasting)).To(BeNil())
	})

	Describe("blood pressure policy", func() {
		It("flags a steep rise at a high average as high severity", func() {
			points := series(10, func(i int) float64 { return 130 + float64(i)*3 })

			finding := analyzer.Analyze(points, observations.ParameterBloodPressure)
			Expect(finding).ToNot(BeNil())
			Expect(finding.Severity).To(Equal(risk.SeverityHigh))
			Expect(finding.Slope).To(BeNumerically("~", 3, 0.01))
			Expect(finding.Significance).To(BeNumerically("~", 1, 0.01))
			Expect(finding.Message).To(ContainSubstring("increasing trend"))
			Expect(finding.Message).To(ContainSubstring("%"))
			Expect(finding.Recommendations).To(ContainElement("Schedule appointment with cardiologist"))
			Expect(finding.Points).To(HaveLen(10))
		})

		It("flags a gradual rise as medium severity", func() {
			points := series(10, func(i int) float64 { return 110 + float64(i)*1.5 })

			finding := analyzer.Analyze(points, observations.ParameterBloodPressure)
			Expect(finding).ToNot(BeNil())
			Expect(finding.Severity).To(Equal(risk.SeverityMedium))
		})

		It("ignores declining trends however strong the fit", func() {
			points := series(10, func(i int) float64 { return 180 - float64(i)*3 })
			Expect(analyzer.Analyze(points, observations.ParameterBloodPressure)).To(BeNil())
		})
	})

	Describe("blood sugar policy", func() {
		It("flags a steep rise at a high average as high severity", func() {
			points := series(8, func(i int) float64 { return 130 + float64(i)*6 })

			finding := analyzer.Analyze(points, observations.ParameterBloodSugarFasting)
			Expect(finding).ToNot(BeNil())
			Expect(finding.Severity).To(Equal(risk.SeverityHigh))
			Expect(finding.Message).To(ContainSubstring("concerning upward trend"))
		})

		It("flags a gradual rise as medium severity", func() {
			points := series(8, func(i int) float64 { return 100 + float64(i)*3 })

			finding := analyzer.Analyze(points, observations.ParameterBloodSugarRandom)
			Expect(finding).ToNot(BeNil())
			Expect(finding.Severity).To(Equal(risk.SeverityMedium))
		})
	})

	Describe("weight policy", func() {
		It("reports weekly gain rate for a steady daily gain", func() {
			points := series(5, func(i int) float64 { return 80 + float64(i) })

			finding := analyzer.Analyze(points, observations.ParameterWeight)
			Expect(finding).ToNot(BeNil())
			Expect(finding.Severity).To(Equal(risk.SeverityMedium))
			Expect(finding.Slope).To(BeNumerically("~", 1, 0.01))
			Expect(finding.Message).To(ContainSubstring("gaining weight"))
			Expect(finding.Message).To(ContainSubstring("7.0kg per week"))
		})

		It("notes weight loss at low severity", func() {
			points := series(5, func(i int) float64 { return 80 - float64(i) })

			finding := analyzer.Analyze(points, observations.ParameterWeight)
			Expect(finding).ToNot(BeNil())
			Expect(finding.Severity).To(Equal(risk.SeverityLow))
			Expect(finding.Message).To(ContainSubstring("losing weight"))
			Expect(finding.Recommendations).To(ContainElement("Monitor for underlying health issues"))
		})

		It("ignores slow drift below the rate cut point", func() {
			points := series(10, func(i int) float64 { return 80 + float64(i)*0.1 })
			Expect(analyzer.Analyze(points, observations.ParameterWeight)).To(BeNil())
		})
	})

	Describe("parameters without a codified policy", func() {
		It("passes heart rate trends through without a severity", func() {
			points := series(6, func(i int) float64 { return 60 + float64(i)*2 })

			finding := analyzer.Analyze(points, observations.ParameterHeartRate)
			Expect(finding).ToNot(BeNil())
			Expect(finding.Severity).To(BeEquivalentTo(""))
			Expect(finding.Slope).To(BeNumerically("~", 2, 0.01))
			Expect(finding.Message).To(ContainSubstring("heart rate"))
			Expect(finding.Recommendations).To(BeEmpty())
		})
	})

	It("is insensitive to input ordering", func() {
		points := series(6, func(i int) float64 { return 130 + float64(i)*3 })
		shuffled := []trend.Point{points[3], points[0], points[5], points[1], points[4], points[2]}

		ordered := analyzer.Analyze(points, observations.ParameterBloodPressure)
		reordered := analyzer.Analyze(shuffled, observations.ParameterBloodPressure)
		Expect(reordered).ToNot(BeNil())
		Expect(reordered.Slope).To(BeNumerically("~", ordered.Slope, 0.0001))
		Expect(reordered.Significance).To(BeNumerically("~", ordered.Significance, 0.0001))
	})
})
