package model

import "github.com/shopspring/decimal"

// LineSubtotal returns price × quantity without float rounding drift.
func LineSubtotal(price float64, quantity int) decimal.Decimal {
	return decimal.NewFromFloat(price).Mul(decimal.NewFromInt(int64(quantity)))
}

// Subtotal returns the line's price × quantity.
func (l CartLine) Subtotal() float64 {
	return LineSubtotal(l.Price, l.Quantity).InexactFloat64()
}

// SumLines returns the sum of all line subtotals.
func SumLines(lines []CartLine) float64 {
	sum := decimal.Zero
	for _, line := range lines {
		sum = sum.Add(LineSubtotal(line.Price, line.Quantity))
	}
	return sum.InexactFloat64()
}
