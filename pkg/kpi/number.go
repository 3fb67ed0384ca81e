package kpi

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"

	pkgerrors "github.com/pkg/errors"
)

// Number is a float64 that survives JSON encoding when it is not finite.
// +Inf and -Inf are written as the strings "+Inf" and "-Inf", NaN as null.
type Number float64

func (n Number) Float() float64 { return float64(n) }

// Finite reports whether v is neither NaN nor infinite.
func Finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func (n Number) IsInf() bool { return math.IsInf(float64(n), 0) }

func (n Number) MarshalJSON() ([]byte, error) {
	f := float64(n)
	switch {
	case math.IsInf(f, 1):
		return []byte(`"+Inf"`), nil
	case math.IsInf(f, -1):
		return []byte(`"-Inf"`), nil
	case math.IsNaN(f):
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, f, 'g', -1, 64), nil
}

func (n *Number) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*n = Number(math.NaN())
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		switch s {
		case "+Inf", "Inf":
			*n = Number(math.Inf(1))
		case "-Inf":
			*n = Number(math.Inf(-1))
		default:
			return pkgerrors.Errorf("invalid number %q", s)
		}
		return nil
	}
	f, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return pkgerrors.Wrapf(err, "invalid number %s", b)
	}
	*n = Number(f)
	return nil
}
