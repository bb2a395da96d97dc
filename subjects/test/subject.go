package test

import (
	"github.com/healthmitra/insights/subjects"
	"github.com/healthmitra/insights/test"
)

func RandomSubject() subjects.Subject {
	return subjects.Subject{
		UserId:     test.Faker.UUID().V4(),
		FullName:   test.Faker.Person().Name(),
		Phone:      test.Faker.Phone().E164Number(),
		SmsEnabled: true,
	}
}
