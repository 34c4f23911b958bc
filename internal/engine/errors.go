package engine

import "fmt"

// InvalidActivityError reports a structurally invalid activity, naming the
// offending field and value. Terminal; the engine never repairs inputs.
type InvalidActivityError struct {
	Field  string
	Value  string
	Reason string
}

func (e *InvalidActivityError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid activity: %s %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid activity: %s %q %s", e.Field, e.Value, e.Reason)
}

// FactorResolutionError reports that no emission factor fit an activity and
// no caller override was supplied. It names the scope/category/unit
// combination that could not be resolved.
type FactorResolutionError struct {
	Scope    Scope
	Category string
	Unit     string
}

func (e *FactorResolutionError) Error() string {
	if e.Category == "" {
		return fmt.Sprintf("no emission factor resolvable for scope %d activity in %q (supply a custom factor)", e.Scope, e.Unit)
	}
	return fmt.Sprintf("no emission factor resolvable for scope %d category %q in %q (supply a custom factor)", e.Scope, e.Category, e.Unit)
}
