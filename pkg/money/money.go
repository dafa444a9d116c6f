package money

import (
	"errors"
	"fmt"
)

// Amounts are carried as int64 dirhams: 1 LYD = 1000 dirhams. Integer minor
// units avoid float drift in balance arithmetic; formatting back to LYD is a
// display concern only.

// DirhamsPerDinar is the number of minor units in one Libyan dinar.
const DirhamsPerDinar = 1000

// ErrNonPositiveAmount is returned when an amount is zero or negative.
var ErrNonPositiveAmount = errors.New("amount must be positive")

// ValidateAmount rejects zero and negative amounts before any storage call.
func ValidateAmount(amount int64) error {
	if amount <= 0 {
		return ErrNonPositiveAmount
	}
	return nil
}

// FormatLYD renders a dirham amount as a decimal dinar string, e.g. 1500 -> "1.500 LYD".
func FormatLYD(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return fmt.Sprintf("%s%d.%03d LYD", sign, amount/DirhamsPerDinar, amount%DirhamsPerDinar)
}

// FeeSchedule computes movement fees in basis points of the moved amount.
// A zero schedule charges nothing, which matches the platform's launch
// configuration; the fields exist so operations can turn fees on per type
// without a code change.
type FeeSchedule struct {
	TransferBps int64
	PaymentBps  int64
}

// TransferFee returns the fee charged on a wallet-to-wallet transfer.
func (f FeeSchedule) TransferFee(amount int64) int64 {
	return bpsOf(amount, f.TransferBps)
}

// PaymentFee returns the fee charged on a customer-to-merchant payment.
func (f FeeSchedule) PaymentFee(amount int64) int64 {
	return bpsOf(amount, f.PaymentBps)
}

// Cash deposits and withdrawals are fee-free, matching the original flows.

func bpsOf(amount, bps int64) int64 {
	return amount * bps / 10_000
}
