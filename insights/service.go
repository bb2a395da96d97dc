// Package insights assembles risk assessments and trend findings into
// persisted advisory records. The generator is the orchestration shell:
// all I/O happens here, so the classifier and the trend analyzer stay
// pure. Partial failure is the norm rather than the exception: a broken
// history fetch or a failed insight write is logged and skipped, never
// allowed to sink the whole generation pass.
package insights

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/healthmitra/insights/alerts"
	"github.com/healthmitra/insights/observations"
	"github.com/healthmitra/insights/risk"
	"github.com/healthmitra/insights/subjects"
	"github.com/healthmitra/insights/thresholds"
	"github.com/healthmitra/insights/trend"
)

// Confidence reflects how directly the clinical threshold maps to the
// measured input, not statistical confidence. Trend insights use the
// regression significance instead.
const (
	bloodPressureConfidence = 0.90
	bloodSugarConfidence    = 0.85
	bmiConfidence           = 0.95
)

var trendParameters = []observations.Parameter{
	observations.ParameterBloodPressure,
	observations.ParameterBloodSugarFasting,
	observations.ParameterBloodSugarPostMeal,
	observations.ParameterBloodSugarRandom,
	observations.ParameterWeight,
	observations.ParameterHeartRate,
	observations.ParameterTemperature,
}

type service struct {
	repo         Repository
	observations observations.Repository
	subjects     subjects.Repository
	classifier   *risk.Classifier
	analyzer     *trend.Analyzer
	dispatcher   alerts.Dispatcher
	catalog      *thresholds.Catalog
	logger       *zap.SugaredLogger
}

var _ Service = &service{}

func NewService(
	repo Repository,
	observationsRepo observations.Repository,
	subjectsRepo subjects.Repository,
	classifier *risk.Classifier,
	analyzer *trend.Analyzer,
	dispatcher alerts.Dispatcher,
	catalog *thresholds.Catalog,
	logger *zap.SugaredLogger,
) (Service, error) {
	return &service{
		repo:         repo,
		observations: observationsRepo,
		subjects:     subjectsRepo,
		classifier:   classifier,
		analyzer:     analyzer,
		dispatcher:   dispatcher,
		catalog:      catalog,
		logger:       logger,
	}, nil
}

func (s *service) GenerateInsights(ctx context.Context, subjectId string, newObservation *observations.Observation) ([]*Insight, error) {
	var assembled []*Insight

	if newObservation != nil {
		if insight := s.assessObservation(ctx, subjectId, newObservation); insight != nil {
			assembled = append(assembled, insight)
		}
	}

	assembled = append(assembled, s.analyzeTrends(ctx, subjectId)...)

	created := make([]*Insight, 0, len(assembled))
	for _, insight := range assembled {
		persisted, err := s.repo.Create(ctx, *insight)
		if err != nil {
			s.logger.Errorw("unable to persist insight",
				"subjectId", subjectId, "kind", insight.Kind, "title", insight.Title, "error", err)
			continue
		}
		created = append(created, persisted)
	}

	s.dispatchSevere(ctx, subjectId, created)

	return created, nil
}

// assessObservation classifies the newly submitted reading. Readings
// that are not assessable or classify as low severity produce no
// insight, which is indistinguishable from nothing notable being found.
func (s *service) assessObservation(ctx context.Context, subjectId string, observation *observations.Observation) *Insight {
	switch {
	case observation.Parameter == observations.ParameterBloodPressure:
		return s.assessBloodPressure(subjectId, observation)
	case observation.Parameter.IsBloodSugar():
		return s.assessBloodSugar(subjectId, observation)
	case observation.Parameter == observations.ParameterWeight, observation.Parameter == observations.ParameterHeight:
		return s.assessBMI(ctx, subjectId, observation)
	default:
		return nil
	}
}

func (s *service) assessBloodPressure(subjectId string, observation *observations.Observation) *Insight {
	assessment := s.classifier.BloodPressure(observation.Systolic, observation.Diastolic)
	if assessment == nil || !assessment.Severity.AtLeast(risk.SeverityMedium) {
		return nil
	}

	return &Insight{
		SubjectId:       subjectId,
		Kind:            KindHealthRisk,
		Severity:        assessment.Severity,
		Title:           fmt.Sprintf("Blood Pressure Alert: %s", assessment.Category),
		Message:         assessment.Message,
		Recommendations: assessment.Recommendations,
		Confidence:      bloodPressureConfidence,
		Evidence: []Evidence{{
			Parameter:     string(observations.ParameterBloodPressure),
			Value:         fmt.Sprintf("%g/%g", *observation.Systolic, *observation.Diastolic),
			ObservationId: observation.Id,
		}},
	}
}

func (s *service) assessBloodSugar(subjectId string, observation *observations.Observation) *Insight {
	assessment := s.classifier.BloodSugar(observation.Value, observation.Parameter)
	if assessment == nil || !assessment.Severity.AtLeast(risk.SeverityMedium) {
		return nil
	}

	return &Insight{
		SubjectId:       subjectId,
		Kind:            KindHealthRisk,
		Severity:        assessment.Severity,
		Title:           fmt.Sprintf("Blood Sugar Alert: %s", assessment.Category),
		Message:         assessment.Message,
		Recommendations: assessment.Recommendations,
		Confidence:      bloodSugarConfidence,
		Evidence: []Evidence{{
			Parameter:     string(observation.Parameter),
			Value:         fmt.Sprintf("%g (%s)", *observation.Value, sugarLabel(observation.Parameter)),
			ObservationId: observation.Id,
		}},
	}
}

// assessBMI pairs the new weight or height reading with the most recent
// counterpart measurement. A missing counterpart, or a failing lookup,
// simply means no BMI assessment this time.
func (s *service) assessBMI(ctx context.Context, subjectId string, observation *observations.Observation) *Insight {
	counterpartParameter := observations.ParameterHeight
	if observation.Parameter == observations.ParameterHeight {
		counterpartParameter = observations.ParameterWeight
	}

	counterpart, err := s.observations.LatestByParameter(ctx, subjectId, counterpartParameter)
	if err == observations.ErrNotFound {
		return nil
	} else if err != nil {
		s.logger.Errorw("unable to fetch counterpart reading for bmi",
			"subjectId", subjectId, "parameter", counterpartParameter, "error", err)
		return nil
	}

	weight, height := observation.Value, counterpart.Value
	if observation.Parameter == observations.ParameterHeight {
		weight, height = counterpart.Value, observation.Value
	}

	assessment := s.classifier.BMI(weight, height)
	if assessment == nil || !assessment.Severity.AtLeast(risk.SeverityMedium) {
		return nil
	}

	return &Insight{
		SubjectId:       subjectId,
		Kind:            KindHealthRisk,
		Severity:        assessment.Severity,
		Title:           fmt.Sprintf("BMI Alert: %s", assessment.Category),
		Message:         assessment.Message,
		Recommendations: assessment.Recommendations,
		Confidence:      bmiConfidence,
		Evidence: []Evidence{{
			Parameter:     "bmi",
			Value:         fmt.Sprintf("%.1f", risk.CalculateBMI(*weight, *height)),
			ObservationId: observation.Id,
		}},
	}
}

// analyzeTrends runs the trend analyzer over the recent history of each
// tracked parameter. A failing history fetch disables that parameter's
// analysis for this pass without affecting the others.
func (s *service) analyzeTrends(ctx context.Context, subjectId string) []*Insight {
	policy := s.catalog.Trend
	since := time.Now().AddDate(0, 0, -policy.LookbackDays)

	var result []*Insight
	for _, parameter := range trendParameters {
		history, err := s.observations.ListRecent(ctx, subjectId, parameter, since, policy.MaxObservations)
		if err != nil {
			s.logger.Errorw("unable to fetch observation history",
				"subjectId", subjectId, "parameter", parameter, "error", err)
			continue
		}

		points := make([]trend.Point, 0, len(history))
		for _, observation := range history {
			value := observation.TrendValue()
			if value == nil || observation.Id == nil {
				continue
			}
			points = append(points, trend.Point{
				Time:          observation.Timestamp,
				Value:         *value,
				ObservationId: *observation.Id,
			})
		}

		finding := s.analyzer.Analyze(points, parameter)
		if finding == nil || finding.Severity == "" {
			// Parameters without a codified risk policy pass through
			// the analyzer without producing user-facing advice.
			continue
		}

		result = append(result, trendInsight(subjectId, finding))
	}

	return result
}

func trendInsight(subjectId string, finding *trend.Finding) *Insight {
	evidence := make([]Evidence, 0, len(finding.Points))
	for _, point := range finding.Points {
		id := point.ObservationId
		evidence = append(evidence, Evidence{
			Parameter:     string(finding.Parameter),
			Value:         fmt.Sprintf("%.1f", point.Value),
			ObservationId: &id,
		})
	}

	return &Insight{
		SubjectId:       subjectId,
		Kind:            KindTrendAnalysis,
		Severity:        finding.Severity,
		Title:           fmt.Sprintf("Health Trend: %s", parameterTitle(finding.Parameter)),
		Message:         finding.Message,
		Recommendations: finding.Recommendations,
		Confidence:      finding.Significance,
		Evidence:        evidence,
	}
}

// dispatchSevere fires alerts for high and critical insights. Dispatch
// failures are logged only; the insights are already persisted and must
// stay that way.
func (s *service) dispatchSevere(ctx context.Context, subjectId string, created []*Insight) {
	var severe []*Insight
	for _, insight := range created {
		if insight.Severity.AtLeast(risk.SeverityHigh) {
			severe = append(severe, insight)
		}
	}
	if len(severe) == 0 {
		return
	}

	subject, err := s.subjects.Get(ctx, subjectId)
	if err != nil {
		s.logger.Warnw("unable to look up subject contact for alerting",
			"subjectId", subjectId, "error", err)
		return
	}
	if !subject.SmsEnabled || subject.Phone == "" {
		return
	}

	for _, insight := range severe {
		if err := s.dispatcher.Dispatch(ctx, subject.Phone, insight.Severity, insight.Message); err != nil {
			s.logger.Warnw("alert dispatch failed",
				"subjectId", subjectId, "insightId", insight.Id, "error", err)
		}
	}
}

func sugarLabel(parameter observations.Parameter) string {
	switch parameter {
	case observations.ParameterBloodSugarFasting:
		return "fasting"
	case observations.ParameterBloodSugarPostMeal:
		return "post-meal"
	default:
		return "random"
	}
}

func parameterTitle(parameter observations.Parameter) string {
	switch parameter {
	case observations.ParameterBloodPressure:
		return "Blood Pressure"
	case observations.ParameterBloodSugarFasting:
		return "Blood Sugar (Fasting)"
	case observations.ParameterBloodSugarPostMeal:
		return "Blood Sugar (Post-Meal)"
	case observations.ParameterBloodSugarRandom:
		return "Blood Sugar"
	case observations.ParameterWeight:
		return "Weight"
	case observations.ParameterHeartRate:
		return "Heart Rate"
	case observations.ParameterTemperature:
		return "Temperature"
	default:
		return string(parameter)
	}
}
