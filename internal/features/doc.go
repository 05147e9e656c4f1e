/*
Package features converts raw transaction records into the fixed-width
numeric feature vectors consumed by the risk classifier.

The transformation is a pure function of the single record: no feature
depends on prior transactions, so the same input always produces the same
vector across calls and process restarts.

Slot layout (width 18, order is part of the trained model's input contract):

	 0  Amount                 raw amount
	 1  LogAmount              ln(amount + 1)
	 2  ReceiverAccount        fnv1a(receiver_id) % 1_000_000
	 3  SenderAccount          fnv1a(sender_id) % 1_000_000
	 4  PaymentType            fnv1a(transaction_type) % 100
	 5  ReceivedCurrency       fnv1a(received_currency) % 100
	 6  HourSin                sin(2π · hour/24)
	 7  HourCos                cos(2π · hour/24)
	 8  MonthCos               cos(2π · month/12)
	 9  MonthSin               sin(2π · month/12)
	10  DayOfWeekSin           sin(2π · weekday/7), Monday = 0
	11  ReceiverBankLocation   fnv1a(receiver_bank_location) % 100
	12  DayOfWeekCos           cos(2π · weekday/7)
	13  PaymentCurrency        fnv1a(payment_currency) % 100
	14  IsWeekend              1 if Saturday or Sunday
	15  SenderBankLocation     fnv1a(sender_bank_location) % 100
	16  IsNight                1 if hour >= 22 or hour <= 6
	17  AmountRounded          1 if amount has no fractional part

Categorical slots use FNV-1a hashing into a bounded bucket range, so unseen
category values still map inside the range the model was trained against.
Changing the hash function or a bucket size invalidates a trained model;
artifacts record their bucket sizes and the loader cross-checks them.
*/
package features
