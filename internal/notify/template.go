package notify

import (
	"fmt"
	"strings"
	"time"
)

// Template keys
const (
	TmplPackageArrival       = "package_arrival"
	TmplPackagePickupReminder = "package_pickup_reminder"
	TmplPackageFinalNotice   = "package_final_notice"
	TmplLargeDelivery        = "large_delivery"
	TmplBookingConfirmed     = "booking_confirmed"
	TmplBookingReminder      = "booking_reminder"
	TmplBookingCancelled     = "booking_cancelled"
	TmplParkingApproved      = "parking_approved"
	TmplParkingDenied        = "parking_denied"
	TmplVisitorCheckedIn     = "visitor_checked_in"
	TmplVisitorWaiting       = "visitor_waiting"
	TmplMaintenanceNotice    = "maintenance_notice"
	TmplMaintenanceComplete  = "maintenance_complete"
	TmplGeneralAnnouncement  = "general_announcement"
)

// Template is one entry of the fixed notification catalog. SMS holds the
// text variant; EmailSubject/EmailBody the email variant. Bodies carry
// {token} placeholders substituted from entity fields at dispatch time.
type Template struct {
	Key          string
	Name         string
	SMS          string
	EmailSubject string
	EmailBody    string
}

var catalog = map[string]Template{
	TmplPackageArrival: {
		Key:  TmplPackageArrival,
		Name: "Package Delivery",
		SMS:  "Hi {name}! A package from {courier} has arrived at the front desk for Unit {unit}. Please pick it up during business hours. Tracking: {tracking}. Building Management.",
		EmailSubject: "A package has arrived for Unit {unit}",
		EmailBody:    "Hi {name},\n\nA package from {courier} has arrived at the front desk for Unit {unit}.\nDescription: {description}\nTracking: {tracking}\nDelivered: {delivered_time}\n\nPlease pick it up during business hours.\n\nBuilding Management",
	},
	TmplPackagePickupReminder: {
		Key:  TmplPackagePickupReminder,
		Name: "Package Pickup Reminder",
		SMS:  "Reminder: You have a package waiting at the front desk for pickup. Unit {unit}. Please collect it during business hours. Building Management.",
		EmailSubject: "Reminder: package waiting for Unit {unit}",
		EmailBody:    "Hi {name},\n\nThis is a reminder that a package from {courier} is still waiting at the front desk for Unit {unit}. Please collect it during business hours.\n\nBuilding Management",
	},
	TmplPackageFinalNotice: {
		Key:  TmplPackageFinalNotice,
		Name: "Package Final Notice",
		SMS:  "FINAL NOTICE: Your package has been waiting for pickup for several days. Unit {unit}. Please collect it immediately or contact building management. Building Management.",
		EmailSubject: "Final notice: uncollected package for Unit {unit}",
		EmailBody:    "Hi {name},\n\nFINAL NOTICE: your package from {courier} has been waiting for pickup for several days. Please collect it immediately or contact building management.\n\nBuilding Management",
	},
	TmplLargeDelivery: {
		Key:  TmplLargeDelivery,
		Name: "Large Item Delivery",
		SMS:  "A large delivery has arrived for Unit {unit}. Please contact the front desk to arrange pickup or delivery to your unit. Building Management.",
		EmailSubject: "Large delivery for Unit {unit}",
		EmailBody:    "Hi {name},\n\nA large delivery has arrived for Unit {unit}. Please contact the front desk to arrange pickup or delivery to your unit.\n\nBuilding Management",
	},
	TmplBookingConfirmed: {
		Key:  TmplBookingConfirmed,
		Name: "Amenity Booking Confirmed",
		SMS:  "Your amenity booking has been confirmed for {date} at {time}. Please arrive on time and follow all facility guidelines. Building Management.",
		EmailSubject: "Booking confirmed for {date}",
		EmailBody:    "Hi {name},\n\nYour amenity booking has been confirmed for {date} at {time}. Please arrive on time and follow all facility guidelines.\n\nBuilding Management",
	},
	TmplBookingReminder: {
		Key:  TmplBookingReminder,
		Name: "Booking Reminder",
		SMS:  "Reminder: You have an amenity booking on {date} at {time}. Please bring your key fob and follow all facility rules. Building Management.",
		EmailSubject: "Booking reminder for {date}",
		EmailBody:    "Hi {name},\n\nReminder: you have an amenity booking on {date} at {time}. Please bring your key fob and follow all facility rules.\n\nBuilding Management",
	},
	TmplBookingCancelled: {
		Key:  TmplBookingCancelled,
		Name: "Booking Cancelled",
		SMS:  "Your booking for {date} has been cancelled as requested. Any applicable refunds will be processed within 3-5 business days. Building Management.",
		EmailSubject: "Booking for {date} cancelled",
		EmailBody:    "Hi {name},\n\nYour booking for {date} has been cancelled as requested. Any applicable refunds will be processed within 3-5 business days.\n\nBuilding Management",
	},
	TmplParkingApproved: {
		Key:  TmplParkingApproved,
		Name: "Visitor Parking Approved",
		SMS:  "Your parking request for {date} has been APPROVED. Parking spot: {spot}, Access code: {code}. Building Management.",
		EmailSubject: "Parking request approved for {date}",
		EmailBody:    "Hi {name},\n\nYour visitor parking request for {date} has been approved.\nParking spot: {spot}\nAccess code: {code}\n\nBuilding Management",
	},
	TmplParkingDenied: {
		Key:  TmplParkingDenied,
		Name: "Visitor Parking Denied",
		SMS:  "Unfortunately your parking request for {date} could not be approved. Please contact building management for alternatives. Building Management.",
		EmailSubject: "Parking request for {date}",
		EmailBody:    "Hi {name},\n\nUnfortunately your visitor parking request for {date} could not be approved. Please contact building management for alternatives.\n\nBuilding Management",
	},
	TmplVisitorCheckedIn: {
		Key:  TmplVisitorCheckedIn,
		Name: "Visitor Checked In",
		SMS:  "Your visitor {name} has checked in at the front desk for Unit {unit}. Building Management.",
		EmailSubject: "Your visitor has checked in",
		EmailBody:    "Hello,\n\nYour visitor {name} has checked in at the front desk for Unit {unit}.\n\nBuilding Management",
	},
	TmplVisitorWaiting: {
		Key:  TmplVisitorWaiting,
		Name: "Visitor Waiting",
		SMS:  "You have a visitor waiting in the lobby. Please come down to meet them or provide authorization for building access. Building Management.",
		EmailSubject: "Visitor waiting in the lobby",
		EmailBody:    "Hello,\n\nYou have a visitor waiting in the lobby. Please come down to meet them or provide authorization for building access.\n\nBuilding Management",
	},
	TmplMaintenanceNotice: {
		Key:  TmplMaintenanceNotice,
		Name: "Maintenance Notice",
		SMS:  "Notice: Scheduled maintenance will occur in your building on {date} from {time}. Please plan accordingly. Building Management.",
		EmailSubject: "Scheduled maintenance on {date}",
		EmailBody:    "Hello,\n\nScheduled maintenance will occur in your building on {date} from {time}. Please plan accordingly and contact us with any questions.\n\nBuilding Management",
	},
	TmplMaintenanceComplete: {
		Key:  TmplMaintenanceComplete,
		Name: "Maintenance Complete",
		SMS:  "The maintenance work in your area has been completed. Thank you for your patience. Building Management.",
		EmailSubject: "Maintenance complete",
		EmailBody:    "Hello,\n\nThe maintenance work in your area has been completed. Thank you for your patience during this time.\n\nBuilding Management",
	},
	TmplGeneralAnnouncement: {
		Key:  TmplGeneralAnnouncement,
		Name: "Building Update",
		SMS:  "Important update for all residents: {description}. Please contact the office if you have any questions. Building Management.",
		EmailSubject: "Building update",
		EmailBody:    "Hello,\n\nImportant update for all residents: {description}\n\nPlease contact the office if you have any questions.\n\nBuilding Management",
	},
}

// Lookup returns the catalog template for a key.
func Lookup(key string) (Template, bool) {
	t, ok := catalog[key]
	return t, ok
}

// Keys lists the catalog for the template picker UI.
func Keys() []Template {
	out := make([]Template, 0, len(catalog))
	for _, t := range catalog {
		out = append(out, t)
	}
	return out
}

// Render substitutes {token} placeholders with values. Tokens with no
// value (or an empty one) are left as literal placeholder text; that is
// deliberate degradation, not an error.
func Render(text string, values map[string]string) string {
	for token, value := range values {
		if value == "" {
			continue
		}
		text = strings.ReplaceAll(text, "{"+token+"}", value)
	}
	return text
}

// TokenValues derives the substitution map from an entity document. Field
// names cover packages, bookings, visitors and parking requests; absent
// fields simply produce no substitution.
func TokenValues(doc map[string]interface{}) map[string]string {
	return map[string]string{
		"name":           firstString(doc, "residentName", "requesterName", "name", "contactName"),
		"unit":           firstNonEmpty(firstString(doc, "unitNumber"), nestedString(doc, "visiting", "unitNumber")),
		"courier":        firstString(doc, "courier"),
		"description":    firstString(doc, "description", "content"),
		"tracking":       firstString(doc, "trackingNumber"),
		"delivered_time": timeString(doc, "deliveredAt", "Jan 2 3:04 PM"),
		"received_by":    firstString(doc, "receivedBy", "checkedInBy"),
		"date": firstNonEmpty(
			timeString(doc, "startDate", "Jan 2, 2006"),
			timeString(doc, "requestedDate", "Jan 2, 2006"),
			timeString(doc, "expectedArrival", "Jan 2, 2006"),
		),
		"time": firstNonEmpty(timeString(doc, "startDate", "3:04 PM"), firstString(doc, "startTime")),
		"spot": firstString(doc, "parkingSpot"),
		"code": firstString(doc, "accessCode"),
	}
}

func firstString(doc map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		if s, ok := doc[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func nestedString(doc map[string]interface{}, outer, inner string) string {
	if m, ok := doc[outer].(map[string]interface{}); ok {
		if s, ok := m[inner].(string); ok {
			return s
		}
	}
	return ""
}

func timeString(doc map[string]interface{}, key, layout string) string {
	s, ok := doc[key].(string)
	if !ok || s == "" {
		return ""
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		if t2, err2 := time.Parse(time.RFC3339, s); err2 == nil {
			t = t2
		} else {
			return fmt.Sprint(s)
		}
	}
	return t.Local().Format(layout)
}
