package domain

import (
	"math"
	"strconv"
)

// MaxPrice is the largest price, in whole currency units, accepted on input
const MaxPrice = 1_000_000_000

// ToMinorUnits converts a price in whole currency units to cents, rounding half away from zero.
// ok is false for NaN, infinities and prices beyond ±MaxPrice
func ToMinorUnits(major float64) (cents int64, ok bool) {
	if math.IsNaN(major) || math.Abs(major) > MaxPrice {
		return 0, false
	}
	return int64(math.Round(major * 100)), true
}

// FormatPrice renders a cent amount as a decimal string with two fraction digits
func FormatPrice(minor int64) string {
	sign := ""
	mag := uint64(minor)
	if minor < 0 {
		sign = "-"
		mag = -mag // Two's complement, also correct for math.MinInt64
	}
	cents := mag % 100
	pad := ""
	if cents < 10 {
		pad = "0"
	}
	return sign + strconv.FormatUint(mag/100, 10) + "." + pad + strconv.FormatUint(cents, 10)
}
