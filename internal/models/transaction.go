package models

// Transaction types accepted by the scoring pipeline
const (
	TransactionTypeTransfer   = "transfer"
	TransactionTypePayment    = "payment"
	TransactionTypeInvestment = "investment"
	TransactionTypeLoan       = "loan"
	TransactionTypeRefund     = "refund"
)

// Supported payment currencies
const (
	CurrencyUSD = "USD"
	CurrencyEUR = "EUR"
	CurrencyGBP = "GBP"
	CurrencyJPY = "JPY"
	CurrencyCAD = "CAD"
)

// Defaults applied to optional transaction fields
const (
	DefaultCurrency     = "USD"
	DefaultBankLocation = "Unknown"
)

// Transaction is a single inbound transaction record. It is immutable once
// created; the pipeline never mutates it. Timestamp carries the raw ISO-8601
// string as received so validation can report the offending value verbatim.
type Transaction struct {
	TransactionID        string  `json:"transaction_id"`
	Amount               float64 `json:"amount"`
	SenderID             string  `json:"sender_id"`
	ReceiverID           string  `json:"receiver_id"`
	TransactionType      string  `json:"transaction_type"`
	PaymentCurrency      string  `json:"payment_currency"`
	ReceivedCurrency     string  `json:"received_currency"`
	SenderBankLocation   string  `json:"sender_bank_location"`
	ReceiverBankLocation string  `json:"receiver_bank_location"`
	Timestamp            string  `json:"timestamp"`
	Source               string  `json:"source,omitempty"`
}
