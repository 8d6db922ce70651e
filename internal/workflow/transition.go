// server/internal/workflow/transition.go
package workflow

import (
	"fmt"

	"jeevan-api-server/internal/models"
)

// This package holds the allowed status transitions for appointments and blood
// requests. Handlers consult these tables before writing anything, so an
// unknown status string is rejected instead of persisted.

// appointmentTransitions: completed and cancelled are terminal.
var appointmentTransitions = map[string][]string{
	models.AppointmentPending:   {models.AppointmentConfirmed, models.AppointmentCancelled},
	models.AppointmentConfirmed: {models.AppointmentCompleted, models.AppointmentCancelled},
	models.AppointmentCompleted: {},
	models.AppointmentCancelled: {},
}

// requestTransitions: a request is approved or rejected first, and only an
// approved request can be fulfilled.
var requestTransitions = map[string][]string{
	models.RequestPending:   {models.RequestApproved, models.RequestRejected},
	models.RequestApproved:  {models.RequestFulfilled},
	models.RequestRejected:  {},
	models.RequestFulfilled: {},
}

var trackingStatuses = map[string]bool{
	models.TrackingCollected:  true,
	models.TrackingTesting:    true,
	models.TrackingProcessing: true,
	models.TrackingReady:      true,
	models.TrackingTransfused: true,
}

// IsAppointmentStatus reports whether s is a known appointment status.
func IsAppointmentStatus(s string) bool {
	_, ok := appointmentTransitions[s]
	return ok
}

// IsRequestStatus reports whether s is a known request status.
func IsRequestStatus(s string) bool {
	_, ok := requestTransitions[s]
	return ok
}

// IsTrackingStatus reports whether s is a known tracking status.
func IsTrackingStatus(s string) bool {
	return trackingStatuses[s]
}

func allows(table map[string][]string, from, to string) bool {
	for _, next := range table[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CheckAppointmentTransition validates a requested appointment status change
// for the given caller. ownsAppointment is whether the caller is the donor the
// appointment belongs to.
func CheckAppointmentTransition(role string, ownsAppointment bool, from, to string) error {
	if !IsAppointmentStatus(to) {
		return fmt.Errorf("unknown appointment status %q", to)
	}
	if !allows(appointmentTransitions, from, to) {
		return fmt.Errorf("cannot move appointment from %q to %q", from, to)
	}
	switch role {
	case models.RoleAdmin, models.RoleHospital:
		return nil
	case models.RoleDonor:
		// A donor may only cancel, and only their own appointment.
		if to != models.AppointmentCancelled {
			return fmt.Errorf("donors may only cancel appointments")
		}
		if !ownsAppointment {
			return fmt.Errorf("appointment belongs to another donor")
		}
		return nil
	default:
		return fmt.Errorf("role %q may not change appointment status", role)
	}
}

// CheckTrackingTransition validates a tracking status write. Tracking only
// applies once the donation itself is completed.
func CheckTrackingTransition(role, appointmentStatus, to string) error {
	if !IsTrackingStatus(to) {
		return fmt.Errorf("unknown tracking status %q", to)
	}
	if role != models.RoleAdmin && role != models.RoleHospital {
		return fmt.Errorf("role %q may not change tracking status", role)
	}
	if appointmentStatus != models.AppointmentCompleted {
		return fmt.Errorf("tracking status requires a completed appointment")
	}
	return nil
}

// CheckRequestTransition validates a blood request status change. Only
// admin/hospital callers may move a request into approved, rejected or
// fulfilled.
func CheckRequestTransition(role, from, to string) error {
	if !IsRequestStatus(to) {
		return fmt.Errorf("unknown request status %q", to)
	}
	if !allows(requestTransitions, from, to) {
		return fmt.Errorf("cannot move request from %q to %q", from, to)
	}
	if role != models.RoleAdmin && role != models.RoleHospital {
		return fmt.Errorf("only administrators or hospitals can change request status")
	}
	return nil
}

// CompletionEffectsDue reports whether the stock/donor-stat side effects of a
// completed donation should fire for this status change. The guard is the
// previous status not already being completed.
func CompletionEffectsDue(from, to string) bool {
	return to == models.AppointmentCompleted && from != models.AppointmentCompleted
}
