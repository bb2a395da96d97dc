package observations

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrNotFound = errors.New("observation not found")

// Parameter identifies the vital sign a reading measures. Branching on
// parameters is done over this closed set, with unknown values treated
// as not assessable rather than an error.
type Parameter string

const (
	ParameterBloodPressure      Parameter = "blood_pressure"
	ParameterBloodSugarFasting  Parameter = "blood_sugar_fasting"
	ParameterBloodSugarPostMeal Parameter = "blood_sugar_postmeal"
	ParameterBloodSugarRandom   Parameter = "blood_sugar_random"
	ParameterWeight             Parameter = "weight"
	ParameterHeight             Parameter = "height"
	ParameterHeartRate          Parameter = "heart_rate"
	ParameterTemperature        Parameter = "temperature"
)

func KnownParameters() []Parameter {
	return []Parameter{
		ParameterBloodPressure,
		ParameterBloodSugarFasting,
		ParameterBloodSugarPostMeal,
		ParameterBloodSugarRandom,
		ParameterWeight,
		ParameterHeight,
		ParameterHeartRate,
		ParameterTemperature,
	}
}

func (p Parameter) IsKnown() bool {
	for _, known := range KnownParameters() {
		if p == known {
			return true
		}
	}
	return false
}

func (p Parameter) IsBloodSugar() bool {
	return p == ParameterBloodSugarFasting || p == ParameterBloodSugarPostMeal || p == ParameterBloodSugarRandom
}

// Observation is a single timestamped vital sign reading. Observations
// are created by the intake workflow and immutable afterwards; the
// analysis code only ever reads them. Numeric fields are pointers so a
// partially populated reading can be detected and skipped instead of
// being misread as zero.
type Observation struct {
	Id        *primitive.ObjectID `bson:"_id,omitempty"`
	SubjectId string              `bson:"subjectId"`
	Parameter Parameter           `bson:"parameter"`
	Value     *float64            `bson:"value,omitempty"`
	Systolic  *float64            `bson:"systolic,omitempty"`
	Diastolic *float64            `bson:"diastolic,omitempty"`
	Timestamp time.Time           `bson:"timestamp"`
}

// TrendValue returns the scalar used for trend fitting, or nil when the
// reading has no usable value. Blood pressure is tracked via systolic.
func (o *Observation) TrendValue() *float64 {
	if o.Parameter == ParameterBloodPressure {
		return o.Systolic
	}
	return o.Value
}

//go:generate go tool mockgen -source=./observations.go -destination=./test/mock_repository.go -package test

type Repository interface {
	Create(ctx context.Context, observation Observation) (*Observation, error)
	Get(ctx context.Context, id string) (*Observation, error)
	// ListRecent returns up to limit readings of one parameter taken at or
	// after since, ordered oldest to newest. When more than limit readings
	// qualify the most recent ones win.
	ListRecent(ctx context.Context, subjectId string, parameter Parameter, since time.Time, limit int) ([]*Observation, error)
	LatestByParameter(ctx context.Context, subjectId string, parameter Parameter) (*Observation, error)
}
