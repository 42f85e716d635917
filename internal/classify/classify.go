// Package classify maps the model's free-text classification answer onto the
// closed DocumentType set. It is a total function: garbled, empty, or
// unexpected answers degrade to Other instead of failing the pipeline.
package classify

import (
	"strings"

	"docuvision/constants"
)

// entry order is load-bearing: the first matching phrase wins, so more
// specific phrases must come before their shorter substrings ("bank statement"
// before "statement", "accident claim" before "claim").
var table = []struct {
	phrase  string
	docType constants.DocumentType
}{
	{"bank statement", constants.BankStatement},
	{"statement", constants.BankStatement},
	{"insurance form", constants.InsuranceForm},
	{"insurance", constants.InsuranceForm},
	{"accident claim", constants.AccidentClaim},
	{"claim", constants.AccidentClaim},
	{"invoice", constants.Invoice},
	{"receipt", constants.Invoice},
	{"bill", constants.Invoice},
	{"other", constants.Other},
}

// Classify reduces a raw classification response to a DocumentType.
// Normalization: trim, lowercase, underscores to spaces (the classification
// prompt asks for tokens like "bank_statement"). An exact table match is
// preferred; failing that, the first table phrase contained in the answer
// wins; failing that, Other.
func Classify(raw string) constants.DocumentType {
	norm := strings.ToLower(strings.TrimSpace(raw))
	norm = strings.ReplaceAll(norm, "_", " ")
	if norm == "" {
		return constants.Other
	}

	for _, e := range table {
		if norm == e.phrase {
			return e.docType
		}
	}
	for _, e := range table {
		if strings.Contains(norm, e.phrase) {
			return e.docType
		}
	}
	return constants.Other
}
