// Package prompt is the fixed catalog of instruction text sent to the vision
// model. Every prompt is a constant (or a pure function of its inputs) so a
// retried call always sends byte-identical text.
package prompt

import (
	"sort"
	"strings"

	"docuvision/constants"
)

// SystemInstruction primes the model for document analysis before any
// per-page prompt is sent.
const SystemInstruction = `You are an expert document analysis AI specialized in extracting structured information from various document types including bank statements, insurance forms, invoices, and other financial documents.

Your task is to:
1. First classify the document type
2. Extract relevant information according to the specified JSON schema
3. Return only valid JSON without any additional text or markdown formatting
4. Ensure all extracted data is accurate and properly formatted
5. Use null for missing information rather than making assumptions`

// classificationPrompt asks for exactly one lowercase token from the closed
// classification set.
const classificationPrompt = `Analyze this document image and classify it into one of these categories:
- bank_statement: Bank account statements with transactions
- insurance_form: Insurance policies or claim forms
- accident_claim: Accident or incident claim forms
- invoice: Bills, invoices, or receipts
- other: Any other document type

Return only the classification as a single word (e.g., "bank_statement").`

// MarkdownFallback is used when structured extraction is disabled: plain
// text-to-markdown transcription with no JSON contract.
const MarkdownFallback = `Extract all text from the image and convert it into proper markdown format, ensuring all details are captured accurately including names, dates, addresses, and identification numbers.`

const bankStatementPrompt = `Extract information from this bank statement and return it as JSON matching this exact schema:

{
  "document_type": "bank_statement",
  "account_holder": "string or null",
  "account_number": "string or null",
  "bank_name": "string or null",
  "statement_period": "string or null",
  "opening_balance": number or null,
  "closing_balance": number or null,
  "total_credits": number or null,
  "total_debits": number or null,
  "transactions": [
    {
      "date": "string or null",
      "description": "string or null",
      "amount": number or null,
      "balance": number or null,
      "transaction_type": "debit|credit|transfer|fee|interest or null",
      "reference": "string or null"
    }
  ],
  "address": "string or null",
  "phone": "string or null",
  "email": "string or null"
}

Extract ALL transactions visible in the statement. For amounts, use positive numbers for credits and negative numbers for debits. Return only the JSON object.`

const insuranceFormPrompt = `Extract information from this insurance document and return it as JSON matching this exact schema:

{
  "document_type": "insurance_form",
  "policy_number": "string or null",
  "claim_number": "string or null",
  "insured_name": "string or null",
  "incident_date": "string or null",
  "incident_description": "string or null",
  "claim_amount": number or null,
  "policy_type": "string or null",
  "address": "string or null",
  "phone": "string or null",
  "email": "string or null"
}

Return only the JSON object.`

const accidentClaimPrompt = `Extract information from this accident claim form and return it as JSON matching this exact schema:

{
  "document_type": "accident_claim",
  "claim_number": "string or null",
  "claimant_name": "string or null",
  "accident_date": "string or null",
  "accident_location": "string or null",
  "accident_description": "string or null",
  "vehicle_details": "string or null",
  "damage_amount": number or null,
  "police_report": "string or null",
  "witnesses": ["string"] or null,
  "address": "string or null",
  "phone": "string or null",
  "email": "string or null"
}

Return only the JSON object.`

const invoicePrompt = `Extract information from this invoice/receipt and return it as JSON matching this exact schema:

{
  "document_type": "invoice",
  "invoice_number": "string or null",
  "invoice_date": "string or null",
  "due_date": "string or null",
  "vendor_name": "string or null",
  "customer_name": "string or null",
  "total_amount": number or null,
  "tax_amount": number or null,
  "subtotal": number or null,
  "items": ["string"] or null,
  "vendor_address": "string or null",
  "customer_address": "string or null"
}

Return only the JSON object.`

const generalDocumentPrompt = `Extract key information from this document and return it as JSON matching this exact schema:

{
  "document_type": "other",
  "title": "string or null",
  "date": "string or null",
  "parties": ["string"] or null,
  "addresses": ["string"] or null,
  "phone_numbers": ["string"] or null,
  "email_addresses": ["string"] or null,
  "amounts": [number] or null,
  "dates": ["string"] or null,
  "key_information": {} or null
}

Extract all names, addresses, phone numbers, email addresses, monetary amounts, and dates found in the document. Return only the JSON object.`

// ClassificationPrompt returns the fixed classification instruction.
func ClassificationPrompt() string {
	return classificationPrompt
}

// ExtractionPrompt returns the type-specific extraction instruction. Receipt,
// Contract, and anything unrecognized fall through to the general document
// prompt, matching the registry's schema mapping.
func ExtractionPrompt(t constants.DocumentType) string {
	switch t {
	case constants.BankStatement:
		return bankStatementPrompt
	case constants.InsuranceForm:
		return insuranceFormPrompt
	case constants.AccidentClaim:
		return accidentClaimPrompt
	case constants.Invoice:
		return invoicePrompt
	default:
		return generalDocumentPrompt
	}
}

// CustomPrompt appends ad-hoc field requests to the base extraction prompt.
// Field names are sorted so the prompt text is stable across calls; the
// validator ignores whatever extra keys the model returns for them.
func CustomPrompt(t constants.DocumentType, extraFields map[string]string) string {
	base := ExtractionPrompt(t)
	if len(extraFields) == 0 {
		return base
	}

	names := make([]string, 0, len(extraFields))
	for name := range extraFields {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(base)
	b.WriteString("\n\nAdditionally extract these specific fields:\n")
	for _, name := range names {
		b.WriteString("- ")
		b.WriteString(name)
		b.WriteString(": ")
		b.WriteString(extraFields[name])
		b.WriteString("\n")
	}
	return b.String()
}
