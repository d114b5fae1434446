// Package model defines the core domain types shared across the application.
package model

import (
	"sort"
	"strings"
)

// BalanceTransaction is a single entry from the payment processor's ledger.
// Amount is in minor units (cents for USD) and may be negative.
type BalanceTransaction struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Currency string `json:"currency"`
	Amount   int64  `json:"amount"`
}

// grossVolumeTypes are the transaction kinds that count toward gross volume.
var grossVolumeTypes = map[string]bool{
	"charge":  true,
	"payment": true,
}

// CountsTowardGrossVolume reports whether this transaction kind is included
// when summing the day's gross volume. Refunds, payouts, fees and every other
// kind are excluded regardless of sign.
func (t BalanceTransaction) CountsTowardGrossVolume() bool {
	return grossVolumeTypes[t.Type]
}

// Totals maps an upper-cased 3-letter currency code to a summed amount in
// minor units.
type Totals map[string]int64

// Add accumulates amount under the upper-cased currency code.
func (t Totals) Add(currency string, amount int64) {
	t[strings.ToUpper(currency)] += amount
}

// Sum returns the cross-currency sum of all totals. Amounts in different
// currencies are added as dimensionless integers; callers that need an
// economically meaningful value must not mix currencies.
func (t Totals) Sum() int64 {
	var sum int64
	for _, amount := range t {
		sum += amount
	}
	return sum
}

// Currencies returns the currency codes in lexicographic order, the order
// used for all display output.
func (t Totals) Currencies() []string {
	codes := make([]string, 0, len(t))
	for code := range t {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
