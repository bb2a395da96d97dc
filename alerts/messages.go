package alerts

import "fmt"

const senderName = "HealthMitra"

// HealthAlertMessage prefixes the alert with an urgency marker so high
// and critical findings stand out from routine warnings.
func HealthAlertMessage(message string, urgent bool) string {
	prefix := "WARNING"
	if urgent {
		prefix = "URGENT"
	}
	return fmt.Sprintf("%s %s Alert: %s", prefix, senderName, message)
}

func MedicationReminderMessage(medicationName, dosage, timeOfDay string) string {
	if dosage != "" {
		return fmt.Sprintf("%s Reminder: Take your %s (%s) at %s.", senderName, medicationName, dosage, timeOfDay)
	}
	return fmt.Sprintf("%s Reminder: Take your %s at %s.", senderName, medicationName, timeOfDay)
}

func AppointmentReminderMessage(doctorName, appointmentTime, location string) string {
	msg := fmt.Sprintf("%s: Appointment", senderName)
	if doctorName != "" {
		msg += fmt.Sprintf(" with Dr. %s", doctorName)
	}
	msg += fmt.Sprintf(" at %s", appointmentTime)
	if location != "" {
		msg += fmt.Sprintf(", %s", location)
	}
	return msg + "."
}
