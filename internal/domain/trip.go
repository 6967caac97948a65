package domain

// TripCustomization holds the per-product trip parameters a customer
// picked on the schedule screen. Dates use the wire format 2006-01-02,
// times come from the fixed slot set below. JSON field names match the
// backend contract.
type TripCustomization struct {
	FechaIda    string `json:"fechaIda" validate:"required,datetime=2006-01-02"`
	FechaVuelta string `json:"fechaVuelta" validate:"required,datetime=2006-01-02"`
	HoraIda     string `json:"horaIda" validate:"required,trip_slot"`
	HoraVuelta  string `json:"horaVuelta" validate:"required,trip_slot"`
}

// DepartureSlots is the closed set of selectable departure/return times:
// 06:00 through 20:00 in 2-hour steps.
var DepartureSlots = []string{
	"06:00", "08:00", "10:00", "12:00", "14:00", "16:00", "18:00", "20:00",
}

func IsDepartureSlot(s string) bool {
	for _, slot := range DepartureSlots {
		if s == slot {
			return true
		}
	}
	return false
}
