package service

import "github.com/shopspring/decimal"

// FeeTier is one step of the processing fee table.
type FeeTier struct {
	UpTo decimal.Decimal
	Fee  decimal.Decimal
}

var feeTiers = []FeeTier{
	{UpTo: decimal.NewFromInt(5000), Fee: decimal.NewFromInt(99)},
	{UpTo: decimal.NewFromInt(7000), Fee: decimal.NewFromInt(135)},
	{UpTo: decimal.NewFromInt(10000), Fee: decimal.NewFromInt(165)},
	{UpTo: decimal.NewFromInt(14000), Fee: decimal.NewFromInt(195)},
	{UpTo: decimal.NewFromInt(16000), Fee: decimal.NewFromInt(210)},
	{UpTo: decimal.NewFromInt(19000), Fee: decimal.NewFromInt(240)},
	{UpTo: decimal.NewFromInt(22000), Fee: decimal.NewFromInt(300)},
	{UpTo: decimal.NewFromInt(25000), Fee: decimal.NewFromInt(350)},
}

// ceilingFee applies above the last tier.
var ceilingFee = decimal.NewFromInt(350)

// TransactionFee returns the processing fee for a loan or withdrawal amount.
// The first tier whose bound is >= amount wins.
func TransactionFee(amount decimal.Decimal) decimal.Decimal {
	for _, tier := range feeTiers {
		if amount.LessThanOrEqual(tier.UpTo) {
			return tier.Fee
		}
	}
	return ceilingFee
}

// FeeSchedule returns a copy of the fee table and the ceiling fee.
func FeeSchedule() ([]FeeTier, decimal.Decimal) {
	tiers := make([]FeeTier, len(feeTiers))
	copy(tiers, feeTiers)
	return tiers, ceilingFee
}
