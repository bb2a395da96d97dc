package test

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/healthmitra/insights/observations"
	"github.com/healthmitra/insights/test"
)

func Ptr[T any](value T) *T {
	return &value
}

func RandomSubjectId() string {
	return test.Faker.UUID().V4()
}

func RandomBloodPressure(subjectId string, systolic, diastolic float64) observations.Observation {
	id := primitive.NewObjectID()
	return observations.Observation{
		Id:        &id,
		SubjectId: subjectId,
		Parameter: observations.ParameterBloodPressure,
		Systolic:  Ptr(systolic),
		Diastolic: Ptr(diastolic),
		Timestamp: time.Now(),
	}
}

func RandomReading(subjectId string, parameter observations.Parameter, value float64) observations.Observation {
	id := primitive.NewObjectID()
	return observations.Observation{
		Id:        &id,
		SubjectId: subjectId,
		Parameter: parameter,
		Value:     Ptr(value),
		Timestamp: time.Now(),
	}
}

// Series builds evenly spaced readings ending now, one per interval,
// with values produced by valueAt given the zero based index.
func Series(subjectId string, parameter observations.Parameter, count int, interval time.Duration, valueAt func(i int) float64) []*observations.Observation {
	series := make([]*observations.Observation, count)
	start := time.Now().Add(-time.Duration(count-1) * interval)
	for i := 0; i < count; i++ {
		observation := RandomReading(subjectId, parameter, valueAt(i))
		observation.Timestamp = start.Add(time.Duration(i) * interval)
		series[i] = &observation
	}
	return series
}
