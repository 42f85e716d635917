package schema

import (
	"docuvision/constants"
)

// Record is implemented by every typed document record the registry knows
// about. The concrete type is the discriminant the renderer dispatches on.
type Record interface {
	DocumentType() constants.DocumentType
}

// Every field below is a pointer (or slice/map) on purpose: OCR extraction
// cannot guarantee presence, so absence must be representable and must never
// fail validation. Pointers serialize to explicit nulls.

// Transaction is a single line item inside a bank statement. Amounts are
// signed: positive for credits, negative for debits.
type Transaction struct {
	Date            *string  `json:"date"`
	Description     *string  `json:"description"`
	Amount          *float64 `json:"amount"`
	Balance         *float64 `json:"balance"`
	TransactionType *string  `json:"transaction_type"`
	Reference       *string  `json:"reference"`
}

// BankStatementRecord holds the extracted fields of a bank statement.
type BankStatementRecord struct {
	DocType         string        `json:"document_type"`
	AccountHolder   *string       `json:"account_holder"`
	AccountNumber   *string       `json:"account_number"`
	BankName        *string       `json:"bank_name"`
	StatementPeriod *string       `json:"statement_period"`
	OpeningBalance  *float64      `json:"opening_balance"`
	ClosingBalance  *float64      `json:"closing_balance"`
	TotalCredits    *float64      `json:"total_credits"`
	TotalDebits     *float64      `json:"total_debits"`
	Transactions    []Transaction `json:"transactions"`
	Address         *string       `json:"address"`
	Phone           *string       `json:"phone"`
	Email           *string       `json:"email"`
}

func (*BankStatementRecord) DocumentType() constants.DocumentType { return constants.BankStatement }

// InsuranceClaimRecord holds the extracted fields of an insurance policy or
// claim form.
type InsuranceClaimRecord struct {
	DocType             string   `json:"document_type"`
	PolicyNumber        *string  `json:"policy_number"`
	ClaimNumber         *string  `json:"claim_number"`
	InsuredName         *string  `json:"insured_name"`
	IncidentDate        *string  `json:"incident_date"`
	IncidentDescription *string  `json:"incident_description"`
	ClaimAmount         *float64 `json:"claim_amount"`
	PolicyType          *string  `json:"policy_type"`
	Address             *string  `json:"address"`
	Phone               *string  `json:"phone"`
	Email               *string  `json:"email"`
}

func (*InsuranceClaimRecord) DocumentType() constants.DocumentType { return constants.InsuranceForm }

// AccidentClaimRecord holds the extracted fields of an accident claim form.
type AccidentClaimRecord struct {
	DocType             string   `json:"document_type"`
	ClaimNumber         *string  `json:"claim_number"`
	ClaimantName        *string  `json:"claimant_name"`
	AccidentDate        *string  `json:"accident_date"`
	AccidentLocation    *string  `json:"accident_location"`
	AccidentDescription *string  `json:"accident_description"`
	VehicleDetails      *string  `json:"vehicle_details"`
	DamageAmount        *float64 `json:"damage_amount"`
	PoliceReport        *string  `json:"police_report"`
	Witnesses           []string `json:"witnesses"`
	Address             *string  `json:"address"`
	Phone               *string  `json:"phone"`
	Email               *string  `json:"email"`
}

func (*AccidentClaimRecord) DocumentType() constants.DocumentType { return constants.AccidentClaim }

// InvoiceRecord holds the extracted fields of an invoice or receipt.
type InvoiceRecord struct {
	DocType         string   `json:"document_type"`
	InvoiceNumber   *string  `json:"invoice_number"`
	InvoiceDate     *string  `json:"invoice_date"`
	DueDate         *string  `json:"due_date"`
	VendorName      *string  `json:"vendor_name"`
	CustomerName    *string  `json:"customer_name"`
	TotalAmount     *float64 `json:"total_amount"`
	TaxAmount       *float64 `json:"tax_amount"`
	Subtotal        *float64 `json:"subtotal"`
	Items           []string `json:"items"`
	VendorAddress   *string  `json:"vendor_address"`
	CustomerAddress *string  `json:"customer_address"`
}

func (*InvoiceRecord) DocumentType() constants.DocumentType { return constants.Invoice }

// GeneralDocumentRecord is the catch-all bag used when the document type is
// Other or unrecognized: lists of everything the model could find plus a
// free-form key/value map.
type GeneralDocumentRecord struct {
	DocType        string         `json:"document_type"`
	Title          *string        `json:"title"`
	Date           *string        `json:"date"`
	Parties        []string       `json:"parties"`
	Addresses      []string       `json:"addresses"`
	PhoneNumbers   []string       `json:"phone_numbers"`
	EmailAddresses []string       `json:"email_addresses"`
	Amounts        []float64      `json:"amounts"`
	Dates          []string       `json:"dates"`
	KeyInformation map[string]any `json:"key_information"`
}

func (*GeneralDocumentRecord) DocumentType() constants.DocumentType { return constants.Other }
