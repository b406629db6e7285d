package catalog

import (
	"strconv"

	"github.com/hardeen-go/geomgraph/pkg/hderr"
)

// The parse/format helpers below implement §6's parameter string grammar
// for the scalar type tags; Position and PositionList round-trip through
// geom.ParsePosition/geom.ParsePositionList instead, since those need the
// geom package's Position type.

func ParseInt(op, s string) (int64, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, hderr.Wrap(op, hderr.ParseError, err)
	}
	return v, nil
}

func ParseUint(op, s string) (uint64, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, hderr.Wrap(op, hderr.ParseError, err)
	}
	return v, nil
}

func ParseFloat(op, s string) (float32, error) {
	v, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0, hderr.Wrap(op, hderr.ParseError, err)
	}
	return float32(v), nil
}

func ParseBool(op, s string) (bool, error) {
	switch s {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, hderr.New(op, hderr.ParseError)
	}
}

func FormatBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
