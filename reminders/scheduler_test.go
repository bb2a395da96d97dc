package reminders_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/fx/fxtest"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	alertsTest "github.com/healthmitra/insights/alerts/test"
	"github.com/healthmitra/insights/reminders"
	remindersTest "github.com/healthmitra/insights/reminders/test"
	"github.com/healthmitra/insights/subjects"
	subjectsTest "github.com/healthmitra/insights/subjects/test"
)

var _ = Describe("Scheduler", func() {
	var ctrl *gomock.Controller
	var repo *remindersTest.MockRepository
	var subjectsRepo *subjectsTest.MockRepository
	var transport *alertsTest.MockTransport
	var scheduler *reminders.Scheduler
	var subject subjects.Subject
	var reminder *reminders.Reminder

	BeforeEach(func() {
		ctrl = gomock.NewController(GinkgoT())
		repo = remindersTest.NewMockRepository(ctrl)
		subjectsRepo = subjectsTest.NewMockRepository(ctrl)
		transport = alertsTest.NewMockTransport(ctrl)

		scheduler = reminders.NewScheduler(
			repo,
			subjectsRepo,
			transport,
			&reminders.SchedulerConfig{PollInterval: time.Minute, LeadWindow: 5 * time.Minute},
			zap.NewNop().Sugar(),
			fxtest.NewLifecycle(GinkgoT()),
		)

		subject = subjectsTest.RandomSubject()

		id := primitive.NewObjectID()
		reminder = &reminders.Reminder{
			Id:        &id,
			SubjectId: subject.UserId,
			Kind:      reminders.KindMedication,
			Metadata: reminders.Metadata{
				MedicationName: "Metformin",
				Dosage:         "500mg",
			},
			ScheduledTime: time.Now().Add(2 * time.Minute),
			IsActive:      true,
		}
	})

	Describe("ProcessDue", func() {
		It("sends due reminders and marks them sent", func() {
			repo.EXPECT().
				ListDue(gomock.Any(), gomock.Any()).
				Return([]*reminders.Reminder{reminder}, nil)
			subjectsRepo.EXPECT().Get(gomock.Any(), subject.UserId).Return(&subject, nil)
			transport.EXPECT().
				Send(gomock.Any(), subject.Phone, gomock.Any()).
				DoAndReturn(func(_ context.Context, _ string, message string) (string, error) {
					Expect(message).To(ContainSubstring("Metformin (500mg)"))
					return "SM200", nil
				})
			repo.EXPECT().MarkSent(gomock.Any(), reminder.Id.Hex()).Return(nil)

			scheduler.ProcessDue(context.Background())
		})

		It("marks reminders for opted out recipients sent without sending", func() {
			subject.SmsEnabled = false
			repo.EXPECT().
				ListDue(gomock.Any(), gomock.Any()).
				Return([]*reminders.Reminder{reminder}, nil)
			subjectsRepo.EXPECT().Get(gomock.Any(), subject.UserId).Return(&subject, nil)
			repo.EXPECT().MarkSent(gomock.Any(), reminder.Id.Hex()).Return(nil)

			scheduler.ProcessDue(context.Background())
		})

		It("leaves a reminder unsent when the send fails", func() {
			repo.EXPECT().
				ListDue(gomock.Any(), gomock.Any()).
				Return([]*reminders.Reminder{reminder}, nil)
			subjectsRepo.EXPECT().Get(gomock.Any(), subject.UserId).Return(&subject, nil)
			transport.EXPECT().
				Send(gomock.Any(), subject.Phone, gomock.Any()).
				Return("", errors.New("provider unreachable"))

			scheduler.ProcessDue(context.Background())
		})

		It("continues past a reminder whose recipient cannot be resolved", func() {
			other := *reminder
			otherId := primitive.NewObjectID()
			other.Id = &otherId
			other.SubjectId = "gone"

			repo.EXPECT().
				ListDue(gomock.Any(), gomock.Any()).
				Return([]*reminders.Reminder{&other, reminder}, nil)
			subjectsRepo.EXPECT().Get(gomock.Any(), "gone").Return(nil, subjects.ErrNotFound)
			subjectsRepo.EXPECT().Get(gomock.Any(), subject.UserId).Return(&subject, nil)
			transport.EXPECT().Send(gomock.Any(), subject.Phone, gomock.Any()).Return("SM201", nil)
			repo.EXPECT().MarkSent(gomock.Any(), reminder.Id.Hex()).Return(nil)

			scheduler.ProcessDue(context.Background())
		})

		It("does nothing when listing due reminders fails", func() {
			repo.EXPECT().
				ListDue(gomock.Any(), gomock.Any()).
				Return(nil, errors.New("primary stepped down"))

			scheduler.ProcessDue(context.Background())
		})

		It("formats appointment reminders with the doctor and location", func() {
			reminder.Kind = reminders.KindAppointment
			reminder.Metadata = reminders.Metadata{DoctorName: "Sharma", Location: "City Clinic"}

			repo.EXPECT().
				ListDue(gomock.Any(), gomock.Any()).
				Return([]*reminders.Reminder{reminder}, nil)
			subjectsRepo.EXPECT().Get(gomock.Any(), subject.UserId).Return(&subject, nil)
			transport.EXPECT().
				Send(gomock.Any(), subject.Phone, gomock.Any()).
				DoAndReturn(func(_ context.Context, _ string, message string) (string, error) {
					Expect(message).To(ContainSubstring("Dr. Sharma"))
					Expect(message).To(ContainSubstring("City Clinic"))
					return "SM202", nil
				})
			repo.EXPECT().MarkSent(gomock.Any(), reminder.Id.Hex()).Return(nil)

			scheduler.ProcessDue(context.Background())
		})
	})
})
