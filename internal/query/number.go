package query

import (
	"encoding/json"
	"math"
	"strconv"
)

// Number is a float result that may be mathematically undefined, such as the
// correlation of a constant column. Undefined values encode as JSON null.
type Number struct {
	value   float64
	defined bool
}

// Undefined is the marker for a result with no meaningful value.
var Undefined = Number{}

// Defined wraps v. NaN and infinities are reported as Undefined.
func Defined(v float64) Number {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Undefined
	}
	return Number{value: v, defined: true}
}

// Float64 returns the value and whether it is defined.
func (n Number) Float64() (float64, bool) { return n.value, n.defined }

func (n Number) IsDefined() bool { return n.defined }

func (n Number) String() string {
	if !n.defined {
		return "undefined"
	}
	return strconv.FormatFloat(n.value, 'g', -1, 64)
}

func (n Number) MarshalJSON() ([]byte, error) {
	if !n.defined {
		return []byte("null"), nil
	}
	return json.Marshal(n.value)
}
