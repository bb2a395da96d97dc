package thresholds_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/healthmitra/insights/thresholds"
)

var _ = Describe("Catalog", func() {
	Describe("Default", func() {
		It("validates", func() {
			catalog := thresholds.Default()
			Expect(catalog.Validate()).To(Succeed())
		})

		It("keeps fasting cut points stricter than random ones", func() {
			catalog := thresholds.Default()
			Expect(catalog.BloodSugar.Fasting.Diabetes).To(BeNumerically("<", catalog.BloodSugar.Random.Diabetes))
			Expect(catalog.BloodSugar.Fasting.Normal.Max).To(BeNumerically("<", catalog.BloodSugar.Random.Normal.Max))
		})
	})

	Describe("Validate", func() {
		var catalog thresholds.Catalog

		BeforeEach(func() {
			catalog = thresholds.Default()
		})

		It("rejects inverted ranges", func() {
			catalog.BMI.Normal = thresholds.Range{Min: 24.9, Max: 18.5}
			Expect(catalog.Validate()).To(MatchError(ContainSubstring("inverted")))
		})

		It("rejects empty ranges", func() {
			catalog.BloodPressure.Normal.Systolic = thresholds.Range{Min: 120, Max: 120}
			Expect(catalog.Validate()).To(MatchError(ContainSubstring("bloodPressure.normal.systolic")))
		})

		It("rejects non-positive cut points", func() {
			catalog.BloodSugar.Fasting.Diabetes = 0
			Expect(catalog.Validate()).To(MatchError(ContainSubstring("must be positive")))
		})

		It("rejects a significance gate outside (0, 1]", func() {
			catalog.Trend.SignificanceGate = 0
			Expect(catalog.Validate()).To(HaveOccurred())

			catalog.Trend.SignificanceGate = 1.2
			Expect(catalog.Validate()).To(HaveOccurred())

			catalog.Trend.SignificanceGate = 1
			Expect(catalog.Validate()).To(Succeed())
		})

		It("rejects a window smaller than the minimum sample", func() {
			catalog.Trend.MaxObservations = 2
			Expect(catalog.Validate()).To(MatchError(ContainSubstring("maxObservations")))
		})
	})

	Describe("Range", func() {
		It("contains its bounds", func() {
			r := thresholds.Range{Min: 70, Max: 100}
			Expect(r.Contains(70)).To(BeTrue())
			Expect(r.Contains(100)).To(BeTrue())
			Expect(r.Contains(69.9)).To(BeFalse())
			Expect(r.Contains(100.1)).To(BeFalse())
		})
	})
})

var _ = Describe("NewCatalog", func() {
	It("returns the defaults when no file is configured", func() {
		catalog, err := thresholds.NewCatalog(&thresholds.Config{})
		Expect(err).ToNot(HaveOccurred())
		Expect(*catalog).To(Equal(thresholds.Default()))
	})

	It("merges overrides on top of the defaults", func() {
		path := filepath.Join(GinkgoT().TempDir(), "catalog.yaml")
		override := []byte("trend:\n  significanceGate: 0.5\nbmi:\n  obese: 32\n")
		Expect(os.WriteFile(path, override, 0o600)).To(Succeed())

		catalog, err := thresholds.NewCatalog(&thresholds.Config{CatalogFile: path})
		Expect(err).ToNot(HaveOccurred())
		Expect(catalog.Trend.SignificanceGate).To(Equal(0.5))
		Expect(catalog.BMI.Obese).To(Equal(32.0))

		// Everything not mentioned keeps the reference values.
		Expect(catalog.Trend.LookbackDays).To(Equal(90))
		Expect(catalog.BloodPressure.CrisisSystolic).To(Equal(180.0))
	})

	It("fails when the file cannot be read", func() {
		_, err := thresholds.NewCatalog(&thresholds.Config{CatalogFile: "/nonexistent/catalog.yaml"})
		Expect(err).To(MatchError(ContainSubstring("unable to read")))
	})

	It("fails when the file is not valid YAML", func() {
		path := filepath.Join(GinkgoT().TempDir(), "catalog.yaml")
		Expect(os.WriteFile(path, []byte("{not yaml"), 0o600)).To(Succeed())

		_, err := thresholds.NewCatalog(&thresholds.Config{CatalogFile: path})
		Expect(err).To(MatchError(ContainSubstring("unable to parse")))
	})

	It("fails when the overridden catalog is invalid", func() {
		path := filepath.Join(GinkgoT().TempDir(), "catalog.yaml")
		Expect(os.WriteFile(path, []byte("trend:\n  significanceGate: 2\n"), 0o600)).To(Succeed())

		_, err := thresholds.NewCatalog(&thresholds.Config{CatalogFile: path})
		Expect(err).To(MatchError(ContainSubstring("significanceGate")))
	})
})
