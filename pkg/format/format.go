// Package format renders cent amounts and clock times for receipts,
// exports and emails.
package format

import (
	"fmt"
	"strconv"
	"strings"
)

// Amount renders an amount in cents as a decimal string with thousands
// separators, e.g. 137000 -> "1,370.00".
func Amount(cents int64) string {
	negative := cents < 0
	if negative {
		cents = -cents
	}

	units := cents / 100
	fraction := cents % 100

	digits := strconv.FormatInt(units, 10)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}

	out := fmt.Sprintf("%s.%02d", b.String(), fraction)
	if negative {
		return "-" + out
	}
	return out
}

// AmountWithSymbol prefixes the formatted amount with a currency symbol,
// e.g. ("Rs", 137000) -> "Rs 1,370.00".
func AmountWithSymbol(symbol string, cents int64) string {
	if symbol == "" {
		return Amount(cents)
	}
	return symbol + " " + Amount(cents)
}

// Time12h converts a 24-hour "HH:MM" clock string to 12-hour form with an
// AM/PM suffix, e.g. "14:30" -> "2:30 PM". Strings that do not parse are
// returned unchanged.
func Time12h(hhmm string) string {
	parts := strings.SplitN(hhmm, ":", 2)
	if len(parts) != 2 {
		return hhmm
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return hhmm
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return hhmm
	}

	suffix := "AM"
	if hour >= 12 {
		suffix = "PM"
	}
	hour = hour % 12
	if hour == 0 {
		hour = 12
	}
	return fmt.Sprintf("%d:%02d %s", hour, minute, suffix)
}
