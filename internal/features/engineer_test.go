package features

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fraudwatch/internal/models"
)

func validTransaction() models.Transaction {
	return models.Transaction{
		TransactionID:      "tx-001",
		Amount:             50000,
		SenderID:           "user_1234",
		ReceiverID:         "user_5678",
		TransactionType:    models.TransactionTypeTransfer,
		PaymentCurrency:    models.CurrencyUSD,
		SenderBankLocation: "US",
		Timestamp:          "2025-01-13T16:00:00Z",
	}
}

func TestEngineer_Transform_ShapeAndFiniteness(t *testing.T) {
	engineer := NewEngineer()

	tests := []struct {
		name   string
		mutate func(*models.Transaction)
	}{
		{name: "typical transaction", mutate: func(tx *models.Transaction) {}},
		{name: "tiny amount", mutate: func(tx *models.Transaction) { tx.Amount = 0.01 }},
		{name: "huge amount", mutate: func(tx *models.Transaction) { tx.Amount = 99999999.99 }},
		{name: "midnight boundary", mutate: func(tx *models.Transaction) { tx.Timestamp = "2025-01-12T00:00:00Z" }},
		{name: "end of day", mutate: func(tx *models.Transaction) { tx.Timestamp = "2025-01-12T23:59:59Z" }},
		{name: "no timestamp", mutate: func(tx *models.Transaction) { tx.Timestamp = "" }},
		{name: "unseen category values", mutate: func(tx *models.Transaction) {
			tx.TransactionType = "never-seen-before"
			tx.PaymentCurrency = "XXX"
			tx.SenderBankLocation = "ZZ"
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := validTransaction()
			tt.mutate(&tx)

			v, err := engineer.Transform(tx)
			require.NoError(t, err)
			require.Len(t, v, VectorWidth)
			for i, x := range v {
				assert.False(t, math.IsNaN(x), "slot %d is NaN", i)
				assert.False(t, math.IsInf(x, 0), "slot %d is infinite", i)
			}
		})
	}
}

func TestEngineer_Transform_Deterministic(t *testing.T) {
	engineer := NewEngineer()
	tx := validTransaction()

	first, err := engineer.Transform(tx)
	require.NoError(t, err)
	second, err := engineer.Transform(tx)
	require.NoError(t, err)

	assert.Equal(t, first, second)

	// A fresh engineer must agree too: the encoding carries no per-instance
	// or per-process state.
	third, err := NewEngineer().Transform(tx)
	require.NoError(t, err)
	assert.Equal(t, first, third)
}

func TestEngineer_Transform_SlotSemantics(t *testing.T) {
	engineer := NewEngineer()
	// 2025-01-13 is a Monday; 16:00 is neither night nor weekend.
	tx := validTransaction()

	v, err := engineer.Transform(tx)
	require.NoError(t, err)

	assert.Equal(t, 50000.0, v[0])
	assert.InDelta(t, math.Log1p(50000), v[1], 1e-12)
	assert.InDelta(t, math.Sin(2*math.Pi*16/24), v[6], 1e-12)
	assert.InDelta(t, math.Cos(2*math.Pi*16/24), v[7], 1e-12)
	// Monday is weekday 0: sin 0, cos 1
	assert.InDelta(t, 0, v[10], 1e-12)
	assert.InDelta(t, 1, v[12], 1e-12)
	assert.Equal(t, 0.0, v[14], "Monday is not a weekend")
	assert.Equal(t, 0.0, v[16], "16:00 is not night")
	assert.Equal(t, 1.0, v[17], "50000 has no fractional part")
}

func TestEngineer_Transform_NightAndWeekend(t *testing.T) {
	engineer := NewEngineer()
	tx := validTransaction()
	// 2025-01-11 is a Saturday, 23:00 is night
	tx.Timestamp = "2025-01-11T23:00:00Z"
	tx.Amount = 123.45

	v, err := engineer.Transform(tx)
	require.NoError(t, err)

	assert.Equal(t, 1.0, v[14])
	assert.Equal(t, 1.0, v[16])
	assert.Equal(t, 0.0, v[17])
}

func TestEngineer_Transform_BucketRanges(t *testing.T) {
	engineer := NewEngineer()

	// Arbitrary, never-trained category strings must still land inside the
	// bucket ranges.
	inputs := []string{"", "a", "completely new bank", "日本", "user-9999999999"}
	for _, s := range inputs {
		tx := validTransaction()
		tx.ReceiverID = "r" + s
		tx.SenderID = "s" + s
		tx.TransactionType = "t" + s
		tx.PaymentCurrency = "c" + s
		tx.SenderBankLocation = "l" + s

		v, err := engineer.Transform(tx)
		require.NoError(t, err)

		assert.GreaterOrEqual(t, v[2], 0.0)
		assert.Less(t, v[2], float64(AccountBuckets))
		assert.GreaterOrEqual(t, v[3], 0.0)
		assert.Less(t, v[3], float64(AccountBuckets))
		for _, slot := range []int{4, 5, 11, 13, 15} {
			assert.GreaterOrEqual(t, v[slot], 0.0, "slot %d", slot)
			assert.Less(t, v[slot], float64(CategoryBuckets), "slot %d", slot)
		}
	}
}

func TestEngineer_Validate(t *testing.T) {
	engineer := NewEngineer()

	tests := []struct {
		name      string
		mutate    func(*models.Transaction)
		wantField string
	}{
		{name: "missing transaction id", mutate: func(tx *models.Transaction) { tx.TransactionID = "" }, wantField: "transaction_id"},
		{name: "missing sender", mutate: func(tx *models.Transaction) { tx.SenderID = "" }, wantField: "sender_id"},
		{name: "missing receiver", mutate: func(tx *models.Transaction) { tx.ReceiverID = "" }, wantField: "receiver_id"},
		{name: "missing type", mutate: func(tx *models.Transaction) { tx.TransactionType = "" }, wantField: "transaction_type"},
		{name: "zero amount", mutate: func(tx *models.Transaction) { tx.Amount = 0 }, wantField: "amount"},
		{name: "negative amount", mutate: func(tx *models.Transaction) { tx.Amount = -10 }, wantField: "amount"},
		{name: "NaN amount", mutate: func(tx *models.Transaction) { tx.Amount = math.NaN() }, wantField: "amount"},
		{name: "garbage timestamp", mutate: func(tx *models.Transaction) { tx.Timestamp = "yesterday" }, wantField: "timestamp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := validTransaction()
			tt.mutate(&tx)

			_, err := engineer.Transform(tx)
			require.Error(t, err)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantField, verr.Field)
		})
	}
}

func TestSlotNames_MatchVectorWidth(t *testing.T) {
	assert.Len(t, SlotNames, VectorWidth)
}
