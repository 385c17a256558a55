package utils

import "fmt"

// FormatMoney keeps consistent decimal formatting for currency fields.
func FormatMoney(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}

// ToMinorUnits converts a decimal currency amount to the gateway's
// integer minor units. The conversion truncates via integer
// conversion rather than rounding; the payment processor contract
// depends on this exact behavior.
func ToMinorUnits(amount float64) int64 {
	return int64(amount * 100)
}
