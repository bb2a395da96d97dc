package alerts_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/healthmitra/insights/alerts"
	alertsTest "github.com/healthmitra/insights/alerts/test"
	"github.com/healthmitra/insights/risk"
	"github.com/healthmitra/insights/test"
)

var _ = Describe("Dispatcher", func() {
	var ctrl *gomock.Controller
	var transport *alertsTest.MockTransport
	var deliveries *alertsTest.MockDeliveriesRepository
	var dispatcher alerts.Dispatcher
	var contact string

	BeforeEach(func() {
		ctrl = gomock.NewController(GinkgoT())
		transport = alertsTest.NewMockTransport(ctrl)
		deliveries = alertsTest.NewMockDeliveriesRepository(ctrl)

		var err error
		dispatcher, err = alerts.NewDispatcher(transport, deliveries, zap.NewNop().Sugar())
		Expect(err).ToNot(HaveOccurred())

		contact = test.Faker.Phone().E164Number()
	})

	It("marks high severity alerts urgent and records the delivery", func() {
		var recorded alerts.Delivery
		transport.EXPECT().
			Send(gomock.Any(), contact, "URGENT HealthMitra Alert: Blood pressure critically high").
			Return("SM123", nil)
		deliveries.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, delivery alerts.Delivery) error {
				recorded = delivery
				return nil
			})

		err := dispatcher.Dispatch(context.Background(), contact, risk.SeverityHigh, "Blood pressure critically high")
		Expect(err).ToNot(HaveOccurred())

		Expect(recorded.ReceiptId).ToNot(BeEmpty())
		Expect(recorded.To).To(Equal(contact))
		Expect(recorded.Severity).To(Equal(risk.SeverityHigh))
		Expect(recorded.ProviderSid).To(Equal("SM123"))
		Expect(recorded.Succeeded).To(BeTrue())
		Expect(recorded.Error).To(BeEmpty())
	})

	It("prefixes medium severity alerts as warnings", func() {
		transport.EXPECT().
			Send(gomock.Any(), contact, "WARNING HealthMitra Alert: Blood sugar trending up").
			Return("SM124", nil)
		deliveries.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		err := dispatcher.Dispatch(context.Background(), contact, risk.SeverityMedium, "Blood sugar trending up")
		Expect(err).ToNot(HaveOccurred())
	})

	It("retries transient transport failures", func() {
		gomock.InOrder(
			transport.EXPECT().Send(gomock.Any(), contact, gomock.Any()).Return("", errors.New("throttled")),
			transport.EXPECT().Send(gomock.Any(), contact, gomock.Any()).Return("SM125", nil),
		)
		deliveries.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, delivery alerts.Delivery) error {
				Expect(delivery.Succeeded).To(BeTrue())
				Expect(delivery.ProviderSid).To(Equal("SM125"))
				return nil
			})

		err := dispatcher.Dispatch(context.Background(), contact, risk.SeverityCritical, "Hypertensive crisis")
		Expect(err).ToNot(HaveOccurred())
	})

	It("records the failure after exhausting retries and returns the last error", func() {
		transport.EXPECT().
			Send(gomock.Any(), contact, gomock.Any()).
			Return("", errors.New("provider unreachable")).
			Times(3)

		var recorded alerts.Delivery
		deliveries.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, delivery alerts.Delivery) error {
				recorded = delivery
				return nil
			})

		err := dispatcher.Dispatch(context.Background(), contact, risk.SeverityHigh, "Blood pressure critically high")
		Expect(err).To(MatchError(ContainSubstring("provider unreachable")))

		Expect(recorded.Succeeded).To(BeFalse())
		Expect(recorded.Error).To(ContainSubstring("provider unreachable"))
		Expect(recorded.ProviderSid).To(BeEmpty())
	})

	It("returns the send outcome even when the delivery log write fails", func() {
		transport.EXPECT().Send(gomock.Any(), contact, gomock.Any()).Return("SM126", nil)
		deliveries.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("collection unavailable"))

		err := dispatcher.Dispatch(context.Background(), contact, risk.SeverityHigh, "Blood pressure critically high")
		Expect(err).ToNot(HaveOccurred())
	})
})

var _ = Describe("Messages", func() {
	It("formats medication reminders with and without dosage", func() {
		Expect(alerts.MedicationReminderMessage("Metformin", "500mg", "8:00 AM")).
			To(Equal("HealthMitra Reminder: Take your Metformin (500mg) at 8:00 AM."))
		Expect(alerts.MedicationReminderMessage("Metformin", "", "8:00 AM")).
			To(Equal("HealthMitra Reminder: Take your Metformin at 8:00 AM."))
	})

	It("formats appointment reminders with optional doctor and location", func() {
		Expect(alerts.AppointmentReminderMessage("Sharma", "10:30 AM", "City Clinic")).
			To(Equal("HealthMitra: Appointment with Dr. Sharma at 10:30 AM, City Clinic."))
		Expect(alerts.AppointmentReminderMessage("", "10:30 AM", "")).
			To(Equal("HealthMitra: Appointment at 10:30 AM."))
	})
})
