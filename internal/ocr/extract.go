package ocr

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/ridwanfathin/pantry-receipt-service/internal/domain"
)

var (
	// quantityPrefixPattern matches a leading "<digits> x " quantity marker,
	// e.g. "2 x Tomato Soup" or "3X Eggs".
	quantityPrefixPattern = regexp.MustCompile(`^(\d+)\s*[xX]\s*`)

	// pricePattern matches a trailing decimal amount with exactly two
	// fractional digits. End-anchoring keeps mid-line numbers (UPC fragments,
	// unit rates like "2.00/lb") from being captured as the line price.
	pricePattern = regexp.MustCompile(`(\d+\.\d{2})\s*$`)
)

// ExtractItem attempts to parse one candidate line into a line item. The
// boolean result is false when the line yields no usable name+price pair;
// a single unparseable line must never abort the whole receipt, so there is
// no error return.
//
// Rules run in order: quantity prefix, end-anchored price, name validity.
func ExtractItem(line string) (domain.ReceiptLineItem, bool) {
	quantity := 1
	rest := line

	if m := quantityPrefixPattern.FindStringSubmatch(rest); m != nil {
		if parsed, err := strconv.Atoi(m[1]); err == nil && parsed > 0 {
			quantity = parsed
			rest = rest[len(m[0]):]
		}
	}

	loc := pricePattern.FindStringSubmatchIndex(rest)
	if loc == nil {
		return domain.ReceiptLineItem{}, false
	}

	price, err := strconv.ParseFloat(rest[loc[2]:loc[3]], 64)
	if err != nil {
		return domain.ReceiptLineItem{}, false
	}

	name := strings.TrimSpace(rest[:loc[0]])
	// A currency symbol directly before the price is not part of the name.
	name = strings.TrimRight(name, "$ ")

	if !isValidItemName(name) {
		return domain.ReceiptLineItem{}, false
	}

	return domain.ReceiptLineItem{
		Name:     name,
		Quantity: quantity,
		Price:    price,
	}, true
}

// isValidItemName guards against punctuation/noise lines that happen to end
// in a price token: at least two runes, starting with a letter or digit.
func isValidItemName(name string) bool {
	runes := []rune(name)
	if len(runes) < 2 {
		return false
	}
	return unicode.IsLetter(runes[0]) || unicode.IsDigit(runes[0])
}
