package extract

import (
	"docuvision/constants"
	"docuvision/internal/schema"
)

// Outcome is the tagged union flowing from the validator to the renderer:
// either a schema-validated record or the model's original text. The record is
// only reachable through Record(), which forces callers to check the tag.
type Outcome struct {
	docType constants.DocumentType
	record  schema.Record // nil for the raw variant
	raw     string
}

// StructuredOutcome wraps a validated record.
func StructuredOutcome(docType constants.DocumentType, rec schema.Record) Outcome {
	return Outcome{docType: docType, record: rec}
}

// RawOutcome wraps the unmodified model text after a parse or validation
// failure (or when structured extraction was never attempted).
func RawOutcome(docType constants.DocumentType, text string) Outcome {
	return Outcome{docType: docType, raw: text}
}

// DocumentType reports the type the extraction was attempted against.
func (o Outcome) DocumentType() constants.DocumentType { return o.docType }

// Structured reports whether a validated record is present.
func (o Outcome) Structured() bool { return o.record != nil }

// Record returns the validated record, or ok=false for the raw variant.
func (o Outcome) Record() (schema.Record, bool) {
	if o.record == nil {
		return nil, false
	}
	return o.record, true
}

// RawText returns the fallback text. Empty for the structured variant.
func (o Outcome) RawText() string { return o.raw }
