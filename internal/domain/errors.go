package domain

import "fmt"

// InvalidParameterError reports a structurally invalid parameter set. It is
// raised at validation time, before any simulation runs.
type InvalidParameterError struct {
	Field  string
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s: %s", e.Field, e.Reason)
}

// ConfigurationError reports a cap schedule that cannot be resolved for a
// year the simulation needs.
type ConfigurationError struct {
	Year   int
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Year != 0 {
		return fmt.Sprintf("cap schedule cannot resolve year %d: %s", e.Year, e.Reason)
	}
	return fmt.Sprintf("cap schedule: %s", e.Reason)
}

// IneligibleAnnuityError reports an annuity withdrawal requested below the
// eligibility age. The evaluator never falls back to lump-sum taxation; the
// caller must pick a valid mode/age combination.
type IneligibleAnnuityError struct {
	Age    int
	MinAge int
}

func (e *IneligibleAnnuityError) Error() string {
	return fmt.Sprintf("annuity withdrawal at age %d is below the eligibility age %d", e.Age, e.MinAge)
}
