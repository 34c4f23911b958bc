// Package ingest decodes and validates JSON activity-record files for the
// CLI. Validation is per-record: instead of failing a whole batch on the
// first bad record, it reports a count of valid records plus (index, error)
// pairs, leaving fail-fast semantics to the engine's own batch calculation.
package ingest

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/oklog/ulid/v2"

	"github.com/rshade/ghgcalc/internal/engine"
)

// Record is the JSON wire shape of one activity record. It mirrors
// engine.Activity but carries validation tags, keeping the engine free of
// wire-format concerns.
type Record struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	Scope          int    `json:"scope" validate:"required,min=1,max=3"`
	Scope1Category string `json:"scope1_category" validate:"omitempty,oneof=stationary_combustion mobile_combustion fugitive process"`
	Scope3Category int    `json:"scope3_category" validate:"omitempty,min=1,max=15"`
	Scope2Method   string `json:"scope2_method" validate:"omitempty,oneof=location_based market_based"`

	Quantity float64 `json:"quantity" validate:"required,gt=0"`
	Unit     string  `json:"unit" validate:"required"`

	FuelType   string `json:"fuel_type"`
	CustomFuel string `json:"custom_fuel"`

	GridSubregion string `json:"grid_subregion"`
	Country       string `json:"country"`

	CustomFactor *float64 `json:"custom_factor" validate:"omitempty,gt=0"`
	MarketFactor *float64 `json:"market_factor" validate:"omitempty,gt=0"`

	RefrigerantType string `json:"refrigerant_type"`
	MethodHint      string `json:"method_hint"`
}

// RecordError pairs a failing record's index with its validation error.
type RecordError struct {
	Index int
	Err   error
}

// Report summarizes per-record validation of a batch.
type Report struct {
	Valid  int
	Errors []RecordError
}

// OK reports whether every record validated.
func (r *Report) OK() bool { return len(r.Errors) == 0 }

// DecodeFile reads a JSON file holding either a single activity record or
// an array of them.
func DecodeFile(path string) ([]Record, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading activity file: %w", err)
	}
	return Decode(raw)
}

// Decode parses raw JSON into records, accepting a single object or an
// array.
func Decode(raw []byte) ([]Record, error) {
	var records []Record
	if err := json.Unmarshal(raw, &records); err == nil {
		return records, nil
	}

	var single Record
	if err := json.Unmarshal(raw, &single); err != nil {
		return nil, fmt.Errorf("parsing activity records: %w", err)
	}
	return []Record{single}, nil
}

// Validate runs struct validation plus the engine's own activity invariants
// over every record, collecting (index, error) pairs rather than failing
// the batch.
func Validate(records []Record) *Report {
	validate := validator.New(validator.WithRequiredStructEnabled())

	report := &Report{}
	for i, record := range records {
		if err := validate.Struct(record); err != nil {
			report.Errors = append(report.Errors, RecordError{Index: i, Err: err})
			continue
		}
		activity := record.ToActivity()
		if err := activity.Validate(); err != nil {
			report.Errors = append(report.Errors, RecordError{Index: i, Err: err})
			continue
		}
		report.Valid++
	}
	return report
}

// ToActivity converts a wire record into an engine Activity.
func (r Record) ToActivity() engine.Activity {
	return engine.Activity{
		ID:              r.ID,
		Name:            r.Name,
		Scope:           engine.Scope(r.Scope),
		Scope1Category:  engine.Scope1Category(r.Scope1Category),
		Scope3Category:  engine.Scope3Category(r.Scope3Category),
		Scope2MethodPin: engine.Scope2Method(r.Scope2Method),
		Quantity:        r.Quantity,
		Unit:            r.Unit,
		FuelType:        engine.FuelType(r.FuelType),
		CustomFuel:      r.CustomFuel,
		GridSubregion:   r.GridSubregion,
		Country:         r.Country,
		CustomFactor:    r.CustomFactor,
		MarketFactor:    r.MarketFactor,
		RefrigerantType: r.RefrigerantType,
		MethodHint:      r.MethodHint,
	}
}

// Activities converts records into engine Activities, assigning a ULID to
// any record without an id so results stay traceable.
func Activities(records []Record) []engine.Activity {
	entropy := ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0) //nolint:gosec // traceability ids only
	activities := make([]engine.Activity, len(records))
	for i, record := range records {
		activity := record.ToActivity()
		if activity.ID == "" {
			activity.ID = ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
		}
		activities[i] = activity
	}
	return activities
}
