package trips

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/andesviajes/storefront/internal/domain"
)

const dateLayout = "2006-01-02"

// User-visible validation messages, matching the schedule screen.
const (
	msgMissingFields   = "Debes completar todas las opciones."
	msgDepartureInPast = "La fecha de ida no puede ser anterior a hoy."
	msgReturnNotAfter  = "La fecha de regreso debe ser posterior a la de ida."
)

// ValidationError is surfaced to the user, never thrown past the
// operation boundary.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

// TripValidator checks a customization before it is saved: all four
// fields present, times drawn from the fixed slot set, departure not in
// the past and return strictly after departure.
type TripValidator struct {
	validate *validator.Validate
	now      func() time.Time
}

func NewTripValidator() *TripValidator {
	v := validator.New()
	if err := v.RegisterValidation("trip_slot", validateSlot); err != nil {
		panic(fmt.Sprintf("register trip_slot validator: %v", err))
	}
	return &TripValidator{validate: v, now: time.Now}
}

func validateSlot(fl validator.FieldLevel) bool {
	return domain.IsDepartureSlot(fl.Field().String())
}

// Validate returns the first violated rule as a ValidationError, in the
// same precedence the schedule screen reports them.
func (tv *TripValidator) Validate(tc domain.TripCustomization) error {
	if err := tv.validate.Struct(tc); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return ValidationError{Field: verrs[0].Field(), Message: msgMissingFields}
		}
		return ValidationError{Field: "", Message: msgMissingFields}
	}

	ida, err := time.Parse(dateLayout, tc.FechaIda)
	if err != nil {
		return ValidationError{Field: "FechaIda", Message: msgMissingFields}
	}
	vuelta, err := time.Parse(dateLayout, tc.FechaVuelta)
	if err != nil {
		return ValidationError{Field: "FechaVuelta", Message: msgMissingFields}
	}

	today, _ := time.Parse(dateLayout, tv.now().Format(dateLayout))
	if ida.Before(today) {
		return ValidationError{Field: "FechaIda", Message: msgDepartureInPast}
	}
	if !vuelta.After(ida) {
		return ValidationError{Field: "FechaVuelta", Message: msgReturnNotAfter}
	}
	return nil
}
