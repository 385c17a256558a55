package utils

import "testing"

func TestToMinorUnits(t *testing.T) {
	cases := []struct {
		amount float64
		want   int64
	}{
		{0, 0},
		{1, 100},
		{25.00 * 2, 5000},
		{49.90, 4990},
		// truncation, not rounding: the gateway contract depends on it
		{19.99, 1998},
		{10.999, 1099},
	}
	for _, c := range cases {
		if got := ToMinorUnits(c.amount); got != c.want {
			t.Fatalf("ToMinorUnits(%v) = %d, want %d", c.amount, got, c.want)
		}
	}
}

func TestFormatMoney(t *testing.T) {
	if got := FormatMoney(1234.5); got != "1234.50" {
		t.Fatalf("FormatMoney(1234.5) = %q", got)
	}
	if got := FormatMoney(0); got != "0.00" {
		t.Fatalf("FormatMoney(0) = %q", got)
	}
}
