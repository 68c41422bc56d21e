package transform

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ToNumber coerces a metric value. Empty input and anything that fails to
// parse become zero; strings with a '.' are fractional, other strings are
// integers. Values that are already numeric pass through.
func ToNumber(v any) decimal.Decimal {
	switch n := v.(type) {
	case nil:
		return decimal.Zero
	case string:
		return parseNumber(n)
	case decimal.Decimal:
		return n
	case int:
		return decimal.NewFromInt(int64(n))
	case int32:
		return decimal.NewFromInt32(n)
	case int64:
		return decimal.NewFromInt(n)
	case float32:
		return fractional(decimal.NewFromFloat32(n))
	case float64:
		return fractional(decimal.NewFromFloat(n))
	default:
		return decimal.Zero
	}
}

func parseNumber(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	if strings.Contains(s, ".") {
		d, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Zero
		}
		return fractional(d)
	}
	i, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return decimal.Zero
	}
	return decimal.NewFromInt(i)
}

// fractional rescales d to one decimal place when it has none, so that
// "1.5e3" or float64(2) keep rendering as floats.
func fractional(d decimal.Decimal) decimal.Decimal {
	exp := d.Exponent()
	if exp < 0 {
		return d
	}
	c := d.Coefficient()
	c.Mul(c, new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(exp)+1), nil))
	return decimal.NewFromBigInt(c, -1)
}
