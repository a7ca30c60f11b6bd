// Package common contains small utilities shared across the project:
// amount formatting for transaction descriptions and display strings.
package common

import "fmt"

// FormatPoints formats a signed point delta for display.
// The "+" sign is added automatically for non-negative amounts.
//
// Examples:
//
//	FormatPoints(100) → "+100 points"
//	FormatPoints(-50) → "-50 points"
//	FormatPoints(1)   → "+1 point"
func FormatPoints(amount int64) string {
	if amount >= 0 {
		return fmt.Sprintf("+%d %s", amount, pluralizePoints(amount))
	}
	return fmt.Sprintf("%d %s", amount, pluralizePoints(amount))
}

// FormatBalance formats a balance into a readable string.
// Example: FormatBalance(150) → "150 points"
func FormatBalance(balance int64) string {
	return fmt.Sprintf("%d %s", balance, pluralizePoints(balance))
}

func pluralizePoints(n int64) string {
	if n == 1 || n == -1 {
		return "point"
	}
	return "points"
}
