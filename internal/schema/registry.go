package schema

import (
	"docuvision/constants"
)

// ForType returns the JSON-Schema document (draft 2020-12 subset, as a generic
// map) that raw model output must satisfy for the given document type. The
// mapping is total over the closed enum: Receipt and Contract share the
// general document schema, and so does anything unrecognized.
func ForType(t constants.DocumentType) map[string]any {
	switch t {
	case constants.BankStatement:
		return bankStatementSchema()
	case constants.InsuranceForm:
		return insuranceClaimSchema()
	case constants.AccidentClaim:
		return accidentClaimSchema()
	case constants.Invoice:
		return invoiceSchema()
	default:
		return generalDocumentSchema()
	}
}

// NewRecord returns a fresh record of the shape matching the document type,
// with the document_type discriminant pre-filled so an absent key in the
// model's JSON still round-trips to the fixed literal.
func NewRecord(t constants.DocumentType) Record {
	switch t {
	case constants.BankStatement:
		return &BankStatementRecord{DocType: string(constants.BankStatement)}
	case constants.InsuranceForm:
		return &InsuranceClaimRecord{DocType: string(constants.InsuranceForm)}
	case constants.AccidentClaim:
		return &AccidentClaimRecord{DocType: string(constants.AccidentClaim)}
	case constants.Invoice:
		return &InvoiceRecord{DocType: string(constants.Invoice)}
	default:
		return &GeneralDocumentRecord{DocType: string(constants.Other)}
	}
}

// Every field is optional: nothing is listed under "required", and null is an
// accepted type everywhere. The only fixed point is the document_type literal,
// which detects schema/type mismatches. additionalProperties stays open so
// custom-prompt extras are ignored instead of rejected.

func bankStatementSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"document_type":    literalProp(constants.BankStatement),
			"account_holder":   textProp(),
			"account_number":   textProp(),
			"bank_name":        textProp(),
			"statement_period": textProp(),
			"opening_balance":  amountProp(),
			"closing_balance":  amountProp(),
			"total_credits":    amountProp(),
			"total_debits":     amountProp(),
			"transactions": map[string]any{
				"type":  []any{"array", "null"},
				"items": transactionSchema(),
			},
			"address": textProp(),
			"phone":   textProp(),
			"email":   textProp(),
		},
	}
}

func transactionSchema() map[string]any {
	txTypes := []any{nil}
	for _, c := range constants.TransactionCategories() {
		txTypes = append(txTypes, c)
	}
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"date":             textProp(),
			"description":      textProp(),
			"amount":           amountProp(),
			"balance":          amountProp(),
			"transaction_type": map[string]any{"enum": txTypes},
			"reference":        textProp(),
		},
	}
}

func insuranceClaimSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"document_type":        literalProp(constants.InsuranceForm),
			"policy_number":        textProp(),
			"claim_number":         textProp(),
			"insured_name":         textProp(),
			"incident_date":        textProp(),
			"incident_description": textProp(),
			"claim_amount":         amountProp(),
			"policy_type":          textProp(),
			"address":              textProp(),
			"phone":                textProp(),
			"email":                textProp(),
		},
	}
}

func accidentClaimSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"document_type":        literalProp(constants.AccidentClaim),
			"claim_number":         textProp(),
			"claimant_name":        textProp(),
			"accident_date":        textProp(),
			"accident_location":    textProp(),
			"accident_description": textProp(),
			"vehicle_details":      textProp(),
			"damage_amount":        amountProp(),
			"police_report":        textProp(),
			"witnesses":            textListProp(),
			"address":              textProp(),
			"phone":                textProp(),
			"email":                textProp(),
		},
	}
}

func invoiceSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"document_type":    literalProp(constants.Invoice),
			"invoice_number":   textProp(),
			"invoice_date":     textProp(),
			"due_date":         textProp(),
			"vendor_name":      textProp(),
			"customer_name":    textProp(),
			"total_amount":     amountProp(),
			"tax_amount":       amountProp(),
			"subtotal":         amountProp(),
			"items":            textListProp(),
			"vendor_address":   textProp(),
			"customer_address": textProp(),
		},
	}
}

func generalDocumentSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"document_type":   literalProp(constants.Other),
			"title":           textProp(),
			"date":            textProp(),
			"parties":         textListProp(),
			"addresses":       textListProp(),
			"phone_numbers":   textListProp(),
			"email_addresses": textListProp(),
			"amounts": map[string]any{
				"type":  []any{"array", "null"},
				"items": map[string]any{"type": []any{"number", "null"}},
			},
			"dates":           textListProp(),
			"key_information": map[string]any{"type": []any{"object", "null"}},
		},
	}
}

func literalProp(t constants.DocumentType) map[string]any {
	return map[string]any{"enum": []any{string(t)}}
}

func textProp() map[string]any {
	return map[string]any{"type": []any{"string", "null"}}
}

func amountProp() map[string]any {
	return map[string]any{"type": []any{"number", "null"}}
}

func textListProp() map[string]any {
	return map[string]any{
		"type":  []any{"array", "null"},
		"items": map[string]any{"type": []any{"string", "null"}},
	}
}
