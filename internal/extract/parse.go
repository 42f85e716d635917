// Package extract turns raw vision-model output into a schema-validated
// record, or degrades to the original text when the output is malformed.
// Malformed model output is the expected common case here, not an exceptional
// one: nothing in this package propagates an error to its caller.
package extract

import (
	"encoding/json"
	"log/slog"
	"strings"

	"docuvision/constants"
	"docuvision/internal/schema"
)

type Parser struct {
	logger *slog.Logger
}

func NewParser(logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{logger: logger}
}

// Parse validates raw model output against the schema for docType.
//
// Steps: strip a markdown code fence if present, decode as a single JSON
// object, validate against the registry's JSON-Schema, then decode into the
// typed record. Any failure downgrades to RawOutcome carrying the original
// text. A single bad field fails the whole record: partial structured data is
// worse downstream than flagged raw text.
func (p *Parser) Parse(raw string, docType constants.DocumentType) Outcome {
	cleaned := StripCodeFence(raw)

	var decoded map[string]any
	if err := json.Unmarshal([]byte(cleaned), &decoded); err != nil {
		p.logger.Warn("extract.parse.invalid_json",
			"document_type", string(docType),
			"error", err,
			"bytes", len(cleaned),
		)
		return RawOutcome(docType, raw)
	}

	if err := validateAgainstSchema(schema.ForType(docType), decoded); err != nil {
		p.logger.Warn("extract.parse.schema_violation",
			"document_type", string(docType),
			"error", err,
		)
		return RawOutcome(docType, raw)
	}

	rec := schema.NewRecord(docType)
	if err := json.Unmarshal([]byte(cleaned), rec); err != nil {
		// Validation passed but the typed decode did not; treat it the same
		// as any other shape violation.
		p.logger.Warn("extract.parse.decode_failed",
			"document_type", string(docType),
			"error", err,
		)
		return RawOutcome(docType, raw)
	}

	return StructuredOutcome(docType, rec)
}

// StripCodeFence removes a surrounding markdown code fence (```json ... ``` or
// ``` ... ```) if present. Absence of the fence is not an error; the input is
// returned trimmed either way.
func StripCodeFence(s string) string {
	t := strings.TrimSpace(s)
	if strings.HasPrefix(t, "```json") {
		t = t[len("```json"):]
	} else if strings.HasPrefix(t, "```") {
		t = t[len("```"):]
	}
	t = strings.TrimSpace(t)
	t = strings.TrimSuffix(t, "```")
	return strings.TrimSpace(t)
}
