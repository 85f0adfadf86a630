// Package validator proves machine definitions internally consistent.
//
// The checks shared by every Turing machine variant (alphabet subset,
// blank symbol, initial and final state membership) are free functions over
// domain.Base, so each variant composes them in its own Validate and adds
// only its specific checks. Validate is the deterministic variant.
//
// Every check returns a *domain.ValidationError that unwraps to the
// sentinel for its kind:
//
//	err := validator.Validate(def)
//	if errors.Is(err, domain.ErrFinalStateTransitions) {
//	    // a final state has outgoing transitions
//	}
package validator
