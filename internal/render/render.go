// Package render converts an extraction outcome into its final textual form.
// Rendering is deterministic and side-effect-free; a raw fallback outcome
// passes through unchanged no matter which format was requested.
package render

import (
	"encoding/json"
	"fmt"
	"strings"

	"docuvision/internal/extract"
	"docuvision/internal/schema"
)

// Format selects the output representation.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
	FormatText     Format = "text"
)

// Ext returns the file extension used when writing a document in this format.
func (f Format) Ext() string {
	switch f {
	case FormatJSON:
		return ".json"
	case FormatText:
		return ".txt"
	default:
		return ".md"
	}
}

// Render produces the final string for an outcome.
//
//   - Raw outcomes return the original model text unchanged: there is nothing
//     structured to reformat.
//   - json renders the record as indented JSON with explicit nulls for absent
//     optional fields.
//   - markdown dispatches on the record's concrete type to a fixed template.
//   - text, or any format Render does not recognize, falls back to the
//     record's generic compact-JSON form. An unknown format is a caller
//     configuration mistake, not a data problem, so it never fails.
func Render(o extract.Outcome, format Format) string {
	rec, ok := o.Record()
	if !ok {
		return o.RawText()
	}

	switch format {
	case FormatJSON:
		b, err := json.MarshalIndent(rec, "", "  ")
		if err != nil {
			return renderText(rec)
		}
		return string(b)
	case FormatMarkdown:
		return renderMarkdown(rec)
	default:
		return renderText(rec)
	}
}

func renderMarkdown(rec schema.Record) string {
	switch r := rec.(type) {
	case *schema.BankStatementRecord:
		return bankStatementMarkdown(r)
	case *schema.InsuranceClaimRecord:
		return insuranceMarkdown(r)
	case *schema.AccidentClaimRecord:
		return accidentClaimMarkdown(r)
	case *schema.InvoiceRecord:
		return invoiceMarkdown(r)
	case *schema.GeneralDocumentRecord:
		return generalMarkdown(r)
	default:
		return renderText(rec)
	}
}

// renderText is the generic string form: one line of compact JSON. Struct
// field order keeps it deterministic.
func renderText(rec schema.Record) string {
	b, err := json.Marshal(rec)
	if err != nil {
		return fmt.Sprintf("%v", rec)
	}
	return string(b)
}

func bankStatementMarkdown(r *schema.BankStatementRecord) string {
	var b strings.Builder
	b.WriteString("# Bank Statement\n\n")
	fmt.Fprintf(&b, "**Account Holder:** %s\n", strOr(r.AccountHolder))
	fmt.Fprintf(&b, "**Account Number:** %s\n", strOr(r.AccountNumber))
	fmt.Fprintf(&b, "**Bank:** %s\n", strOr(r.BankName))
	fmt.Fprintf(&b, "**Period:** %s\n\n", strOr(r.StatementPeriod))

	fmt.Fprintf(&b, "**Opening Balance:** %s\n", money(r.OpeningBalance))
	fmt.Fprintf(&b, "**Closing Balance:** %s\n\n", money(r.ClosingBalance))

	if len(r.Transactions) > 0 {
		b.WriteString("## Transactions\n\n")
		b.WriteString("| Date | Description | Amount | Balance |\n")
		b.WriteString("|------|-------------|--------|----------|\n")
		// Rows stay in record order; the statement already orders them.
		for _, txn := range r.Transactions {
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
				strOr(txn.Date), strOr(txn.Description), money(txn.Amount), money(txn.Balance))
		}
	}
	return b.String()
}

func insuranceMarkdown(r *schema.InsuranceClaimRecord) string {
	var b strings.Builder
	b.WriteString("# Insurance Form\n\n")
	fmt.Fprintf(&b, "**Policy Number:** %s\n", strOr(r.PolicyNumber))
	fmt.Fprintf(&b, "**Claim Number:** %s\n", strOr(r.ClaimNumber))
	fmt.Fprintf(&b, "**Insured Name:** %s\n", strOr(r.InsuredName))
	fmt.Fprintf(&b, "**Incident Date:** %s\n", strOr(r.IncidentDate))
	fmt.Fprintf(&b, "**Claim Amount:** %s\n\n", money(r.ClaimAmount))

	if r.IncidentDescription != nil {
		fmt.Fprintf(&b, "**Incident Description:**\n%s\n\n", *r.IncidentDescription)
	}
	return b.String()
}

func accidentClaimMarkdown(r *schema.AccidentClaimRecord) string {
	var b strings.Builder
	b.WriteString("# Accident Claim\n\n")
	fmt.Fprintf(&b, "**Claim Number:** %s\n", strOr(r.ClaimNumber))
	fmt.Fprintf(&b, "**Claimant:** %s\n", strOr(r.ClaimantName))
	fmt.Fprintf(&b, "**Accident Date:** %s\n", strOr(r.AccidentDate))
	fmt.Fprintf(&b, "**Location:** %s\n", strOr(r.AccidentLocation))
	fmt.Fprintf(&b, "**Damage Amount:** %s\n\n", money(r.DamageAmount))

	if r.AccidentDescription != nil {
		fmt.Fprintf(&b, "**Description:**\n%s\n\n", *r.AccidentDescription)
	}
	return b.String()
}

func invoiceMarkdown(r *schema.InvoiceRecord) string {
	var b strings.Builder
	b.WriteString("# Invoice\n\n")
	fmt.Fprintf(&b, "**Invoice Number:** %s\n", strOr(r.InvoiceNumber))
	fmt.Fprintf(&b, "**Date:** %s\n", strOr(r.InvoiceDate))
	fmt.Fprintf(&b, "**Vendor:** %s\n", strOr(r.VendorName))
	fmt.Fprintf(&b, "**Customer:** %s\n", strOr(r.CustomerName))
	fmt.Fprintf(&b, "**Total Amount:** %s\n\n", money(r.TotalAmount))
	return b.String()
}

func generalMarkdown(r *schema.GeneralDocumentRecord) string {
	var b strings.Builder
	b.WriteString("# Document\n\n")
	fmt.Fprintf(&b, "**Title:** %s\n", strOr(r.Title))
	fmt.Fprintf(&b, "**Date:** %s\n\n", strOr(r.Date))

	if len(r.Parties) > 0 {
		b.WriteString("**Parties:**\n")
		for _, party := range r.Parties {
			fmt.Fprintf(&b, "- %s\n", party)
		}
		b.WriteString("\n")
	}
	if len(r.Amounts) > 0 {
		b.WriteString("**Amounts:**\n")
		for _, amt := range r.Amounts {
			fmt.Fprintf(&b, "- $%.2f\n", amt)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func strOr(p *string) string {
	if p == nil || *p == "" {
		return "N/A"
	}
	return *p
}

// money formats a nullable amount. nil renders as $0.00; the markdown
// templates do not distinguish "zero extracted" from "nothing extracted".
func money(p *float64) string {
	if p == nil {
		return "$0.00"
	}
	return fmt.Sprintf("$%.2f", *p)
}
