package pg

import (
	"math"
	"math/big"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/doujins-org/sqlevalkit/resultset"
)

// FromAny converts a value as decoded by pgx into a comparable cell. Text,
// the integer and float widths, booleans, and NULL map onto their dedicated
// variants; numeric columns become exact decimals; everything else (dates,
// bytea, arrays, ranges, ...) stays opaque and compares by its printed form.
func FromAny(v any) resultset.Value {
	switch x := v.(type) {
	case nil:
		return resultset.NullValue()
	case string:
		return resultset.TextValue(x)
	case bool:
		return resultset.BoolValue(x)
	case int:
		return resultset.IntValue(int64(x))
	case int16:
		return resultset.IntValue(int64(x))
	case int32:
		return resultset.IntValue(int64(x))
	case int64:
		return resultset.IntValue(x)
	case uint32:
		// OID-typed columns decode as uint32.
		return resultset.IntValue(int64(x))
	case float32:
		return resultset.FloatValue(float64(x))
	case float64:
		return resultset.FloatValue(x)
	case pgtype.Numeric:
		return fromNumeric(x)
	default:
		return resultset.OtherValue(v)
	}
}

// FromAnyRow converts one decoded row, column order preserved.
func FromAnyRow(vals []any) resultset.Row {
	row := make(resultset.Row, len(vals))
	for i, v := range vals {
		row[i] = FromAny(v)
	}
	return row
}

func fromNumeric(n pgtype.Numeric) resultset.Value {
	if !n.Valid {
		return resultset.NullValue()
	}
	if n.NaN {
		return resultset.FloatValue(math.NaN())
	}
	switch n.InfinityModifier {
	case pgtype.Infinity:
		return resultset.FloatValue(math.Inf(1))
	case pgtype.NegativeInfinity:
		return resultset.FloatValue(math.Inf(-1))
	}
	i := n.Int
	if i == nil {
		i = new(big.Int)
	}
	return resultset.DecimalValue(decimal.NewFromBigInt(i, n.Exp))
}
