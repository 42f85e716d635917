package constants

// DocumentType is the closed set of document categories the pipeline
// understands. It drives which schema and which extraction prompt are used.
type DocumentType string

const (
	BankStatement DocumentType = "bank_statement"
	InsuranceForm DocumentType = "insurance_form"
	AccidentClaim DocumentType = "accident_claim"
	Invoice       DocumentType = "invoice"
	Receipt       DocumentType = "receipt"
	Contract      DocumentType = "contract"
	Other         DocumentType = "other"
)

var allDocumentTypes = []DocumentType{
	BankStatement,
	InsuranceForm,
	AccidentClaim,
	Invoice,
	Receipt,
	Contract,
	Other,
}

// AllDocumentTypes returns every member of the closed enum, in declaration order.
func AllDocumentTypes() []DocumentType {
	out := make([]DocumentType, len(allDocumentTypes))
	copy(out, allDocumentTypes)
	return out
}

// TransactionCategory classifies a single bank-statement transaction.
type TransactionCategory string

const (
	TxDebit    TransactionCategory = "debit"
	TxCredit   TransactionCategory = "credit"
	TxTransfer TransactionCategory = "transfer"
	TxFee      TransactionCategory = "fee"
	TxInterest TransactionCategory = "interest"
)

// TransactionCategories returns the allowed transaction_type values, in the
// order they appear in the extraction prompts.
func TransactionCategories() []string {
	return []string{
		string(TxDebit),
		string(TxCredit),
		string(TxTransfer),
		string(TxFee),
		string(TxInterest),
	}
}
