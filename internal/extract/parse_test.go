package extract

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docuvision/constants"
	"docuvision/internal/schema"
)

const bankJSON = `{
  "document_type": "bank_statement",
  "account_holder": "John Doe",
  "account_number": "12345678",
  "bank_name": "First National",
  "statement_period": "2024-01-01 - 2024-01-31",
  "opening_balance": 1234.5,
  "closing_balance": 4200.0,
  "total_credits": 3000.0,
  "total_debits": 34.5,
  "transactions": [
    {"date": "2024-01-15", "description": "Salary", "amount": 3000.0, "balance": 4234.5, "transaction_type": "credit", "reference": "SAL-01"},
    {"date": "2024-01-16", "description": "Card fee", "amount": -34.5, "balance": 4200.0, "transaction_type": "fee", "reference": null}
  ],
  "address": "1 Main St",
  "phone": "555-0100",
  "email": "john@example.com"
}`

func TestParse_ValidBankStatement(t *testing.T) {
	p := NewParser(nil)
	out := p.Parse(bankJSON, constants.BankStatement)

	require.True(t, out.Structured())
	rec, ok := out.Record()
	require.True(t, ok)

	bank, ok := rec.(*schema.BankStatementRecord)
	require.True(t, ok)
	require.NotNil(t, bank.AccountHolder)
	assert.Equal(t, "John Doe", *bank.AccountHolder)
	require.Len(t, bank.Transactions, 2)
	require.NotNil(t, bank.Transactions[0].Amount)
	assert.Equal(t, 3000.0, *bank.Transactions[0].Amount)
	assert.Equal(t, constants.BankStatement, out.DocumentType())
}

func TestParse_NeverFails(t *testing.T) {
	p := NewParser(nil)
	inputs := []string{
		"{ broken json",
		"",
		"   ",
		"plain prose with no JSON at all",
		"[1,2,3]",
		`"just a string"`,
		"```json\nnot even json\n```",
	}
	for _, in := range inputs {
		for _, dt := range constants.AllDocumentTypes() {
			out := p.Parse(in, dt)
			assert.False(t, out.Structured(), "input %q type %q", in, dt)
			assert.Equal(t, in, out.RawText(), "raw text must be the original, unstripped input")
		}
	}
}

func TestParse_FenceStrippingEquivalence(t *testing.T) {
	p := NewParser(nil)

	plain := p.Parse(bankJSON, constants.BankStatement)
	fenced := p.Parse("```json\n"+bankJSON+"\n```", constants.BankStatement)
	bare := p.Parse("```\n"+bankJSON+"\n```", constants.BankStatement)

	require.True(t, plain.Structured())
	require.True(t, fenced.Structured())
	require.True(t, bare.Structured())

	plainRec, _ := plain.Record()
	fencedRec, _ := fenced.Record()
	bareRec, _ := bare.Record()
	assert.Equal(t, plainRec, fencedRec)
	assert.Equal(t, plainRec, bareRec)
}

func TestParse_AllFieldsAbsentStillStructured(t *testing.T) {
	p := NewParser(nil)
	out := p.Parse(`{"document_type":"bank_statement"}`, constants.BankStatement)

	require.True(t, out.Structured())
	rec, _ := out.Record()
	bank := rec.(*schema.BankStatementRecord)
	assert.Nil(t, bank.AccountHolder)
	assert.Nil(t, bank.OpeningBalance)
	assert.Nil(t, bank.Transactions)
	assert.Equal(t, "bank_statement", bank.DocType)
}

func TestParse_EmptyObjectGetsDiscriminantFilledIn(t *testing.T) {
	p := NewParser(nil)
	out := p.Parse(`{}`, constants.InsuranceForm)

	require.True(t, out.Structured())
	rec, _ := out.Record()
	assert.Equal(t, "insurance_form", rec.(*schema.InsuranceClaimRecord).DocType)
}

func TestParse_UnknownExtraKeysIgnored(t *testing.T) {
	p := NewParser(nil)
	out := p.Parse(`{"document_type":"invoice","total_amount":10,"vin":"1HGCM82633A004352"}`, constants.Invoice)

	require.True(t, out.Structured())
	rec, _ := out.Record()
	inv := rec.(*schema.InvoiceRecord)
	require.NotNil(t, inv.TotalAmount)
	assert.Equal(t, 10.0, *inv.TotalAmount)
}

func TestParse_TypeMismatchFailsWholeRecord(t *testing.T) {
	p := NewParser(nil)

	// One non-numeric amount fails the whole record, not just the field.
	raw := `{"document_type":"bank_statement","opening_balance":"a lot","account_holder":"John"}`
	out := p.Parse(raw, constants.BankStatement)
	assert.False(t, out.Structured())
	assert.Equal(t, raw, out.RawText())

	// Same for a nested transaction field.
	raw = `{"document_type":"bank_statement","transactions":[{"amount":"three thousand"}]}`
	out = p.Parse(raw, constants.BankStatement)
	assert.False(t, out.Structured())
}

func TestParse_TransactionTypeOutsideEnumRejected(t *testing.T) {
	p := NewParser(nil)
	out := p.Parse(`{"document_type":"bank_statement","transactions":[{"transaction_type":"chargeback"}]}`, constants.BankStatement)
	assert.False(t, out.Structured())
}

func TestParse_DocumentTypeMismatchRejected(t *testing.T) {
	p := NewParser(nil)
	out := p.Parse(`{"document_type":"invoice"}`, constants.BankStatement)
	assert.False(t, out.Structured())
}

func TestParse_RoundTripThroughJSON(t *testing.T) {
	p := NewParser(nil)
	out := p.Parse(bankJSON, constants.BankStatement)
	require.True(t, out.Structured())
	rec, _ := out.Record()

	encoded, err := json.Marshal(rec)
	require.NoError(t, err)

	var got, want map[string]any
	require.NoError(t, json.Unmarshal(encoded, &got))
	require.NoError(t, json.Unmarshal([]byte(bankJSON), &want))

	// The original had reference:null on the second transaction; explicit
	// null and pointer-nil serialize identically, so the trees match.
	assert.Equal(t, want, got)
}

func TestStripCodeFence(t *testing.T) {
	assert.Equal(t, `{"a":1}`, StripCodeFence("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, StripCodeFence("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, StripCodeFence(`{"a":1}`))
	assert.Equal(t, `{"a":1}`, StripCodeFence("  {\"a\":1}  \n"))
	assert.Equal(t, "", StripCodeFence(""))
	assert.Equal(t, "", StripCodeFence("```json\n```"))
}

func TestOutcome_RawVariantHidesRecord(t *testing.T) {
	out := RawOutcome(constants.Invoice, "free text")
	rec, ok := out.Record()
	assert.Nil(t, rec)
	assert.False(t, ok)
	assert.False(t, out.Structured())
	assert.Equal(t, "free text", out.RawText())
	assert.Equal(t, constants.Invoice, out.DocumentType())
}
