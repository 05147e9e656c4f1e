package features

import (
	"hash/fnv"
	"math"
	"time"

	"fraudwatch/internal/models"
)

// Vector geometry and hash bucket sizes. These are model metadata: a trained
// artifact records the values it was built against and the scorer rejects
// artifacts that disagree.
const (
	VectorWidth     = 18
	AccountBuckets  = 1_000_000
	CategoryBuckets = 100
)

// SlotNames lists the feature slots in model input order.
var SlotNames = []string{
	"Amount", "Log_amount", "Receiver_account", "Sender_account", "Payment_type",
	"Received_currency", "Hour_sin", "Hour_cos", "Month_cos", "Month_sin",
	"Day_of_week_sin", "Receiver_bank_location", "Day_of_week_cos", "Payment_currency",
	"Is_weekend", "Sender_bank_location", "Is_night", "Amount_rounded",
}

// timestamp layouts accepted on input, tried in order
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
}

// Engineer transforms transactions into feature vectors. It holds no state
// and is safe for concurrent use.
type Engineer struct {
	now func() time.Time
}

// NewEngineer creates a feature engineer.
func NewEngineer() *Engineer {
	return &Engineer{now: time.Now}
}

// Validate checks a transaction for the required fields without transforming
// it. It returns a *ValidationError describing the first problem found.
func (e *Engineer) Validate(tx models.Transaction) error {
	if tx.TransactionID == "" {
		return newValidationError("transaction_id", "is required")
	}
	if tx.SenderID == "" {
		return newValidationError("sender_id", "is required")
	}
	if tx.ReceiverID == "" {
		return newValidationError("receiver_id", "is required")
	}
	if tx.TransactionType == "" {
		return newValidationError("transaction_type", "is required")
	}
	if tx.Amount <= 0 {
		return newValidationError("amount", "must be greater than zero")
	}
	if math.IsNaN(tx.Amount) || math.IsInf(tx.Amount, 0) {
		return newValidationError("amount", "must be finite")
	}
	if tx.Timestamp != "" {
		if _, err := parseTimestamp(tx.Timestamp); err != nil {
			return newValidationError("timestamp", "is not a valid ISO-8601 instant")
		}
	}
	return nil
}

// Transform validates the transaction and encodes it as a feature vector.
// The returned vector always has length VectorWidth and every slot is finite.
func (e *Engineer) Transform(tx models.Transaction) (models.FeatureVector, error) {
	if err := e.Validate(tx); err != nil {
		return nil, err
	}

	ts := e.now().UTC()
	if tx.Timestamp != "" {
		parsed, err := parseTimestamp(tx.Timestamp)
		if err != nil {
			return nil, newValidationError("timestamp", "is not a valid ISO-8601 instant")
		}
		ts = parsed
	}

	hour := float64(ts.Hour())
	month := float64(ts.Month())
	weekday := mondayIndexed(ts.Weekday())

	v := make(models.FeatureVector, VectorWidth)
	v[0] = tx.Amount
	v[1] = math.Log1p(tx.Amount)
	v[2] = hashBucket(tx.ReceiverID, AccountBuckets)
	v[3] = hashBucket(tx.SenderID, AccountBuckets)
	v[4] = hashBucket(tx.TransactionType, CategoryBuckets)
	v[5] = hashBucket(defaulted(tx.ReceivedCurrency, models.DefaultCurrency), CategoryBuckets)
	v[6] = math.Sin(2 * math.Pi * hour / 24)
	v[7] = math.Cos(2 * math.Pi * hour / 24)
	v[8] = math.Cos(2 * math.Pi * month / 12)
	v[9] = math.Sin(2 * math.Pi * month / 12)
	v[10] = math.Sin(2 * math.Pi * weekday / 7)
	v[11] = hashBucket(defaulted(tx.ReceiverBankLocation, models.DefaultBankLocation), CategoryBuckets)
	v[12] = math.Cos(2 * math.Pi * weekday / 7)
	v[13] = hashBucket(defaulted(tx.PaymentCurrency, models.DefaultCurrency), CategoryBuckets)
	v[14] = boolFeature(weekday >= 5)
	v[15] = hashBucket(defaulted(tx.SenderBankLocation, models.DefaultBankLocation), CategoryBuckets)
	v[16] = boolFeature(ts.Hour() >= 22 || ts.Hour() <= 6)
	v[17] = boolFeature(tx.Amount == math.Trunc(tx.Amount))

	return v, nil
}

// hashBucket maps a categorical value into [0, buckets) deterministically.
// FNV-1a has no randomized seed, so the mapping is stable across restarts.
func hashBucket(value string, buckets uint64) float64 {
	h := fnv.New64a()
	h.Write([]byte(value))
	return float64(h.Sum64() % buckets)
}

// mondayIndexed converts Go's Sunday-first weekday to the Monday=0 indexing
// the model was trained with.
func mondayIndexed(wd time.Weekday) float64 {
	return float64((int(wd) + 6) % 7)
}

func defaulted(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func boolFeature(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func parseTimestamp(raw string) (time.Time, error) {
	var lastErr error
	for _, layout := range timestampLayouts {
		ts, err := time.Parse(layout, raw)
		if err == nil {
			return ts.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
