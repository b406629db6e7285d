// Package processors is the Processor Library (§4.7): the nineteen
// concrete processor types a host composes into graphs. Each type is
// grounded in the corresponding run() body of the original source's
// geometry_processors/mod.rs, translated into a catalog.Processor (or
// catalog.SubgraphProcessor) implementation, and registered into a
// catalog.Registry by Register.
//
// © 2025 arena-cache authors. MIT License.
package processors

import (
	"strconv"

	"github.com/hardeen-go/geomgraph/pkg/catalog"
	"github.com/hardeen-go/geomgraph/pkg/hderr"
)

// paramStore holds a processor's parameter values in their canonical string
// form (§8 property 9: get_parameter after set_parameter returns the
// canonical form, not the raw input string).
type paramStore struct {
	values map[string]string
}

func newParamStore(defaults map[string]string) *paramStore {
	v := make(map[string]string, len(defaults))
	for k, d := range defaults {
		v[k] = d
	}
	return &paramStore{values: v}
}

func (p *paramStore) get(op, name string) (string, error) {
	v, ok := p.values[name]
	if !ok {
		return "", hderr.New(op, hderr.UnknownParameter)
	}
	return v, nil
}

func (p *paramStore) set(op, name, canonical string) error {
	if _, ok := p.values[name]; !ok {
		return hderr.New(op, hderr.UnknownParameter)
	}
	p.values[name] = canonical
	return nil
}

func formatFloat32(v float32) string {
	return strconv.FormatFloat(float64(v), 'g', -1, 32)
}

func formatInt64(v int64) string  { return strconv.FormatInt(v, 10) }
func formatUint64(v uint64) string { return strconv.FormatUint(v, 10) }

func parseFloatParam(op, value string) (float32, string, error) {
	v, err := catalog.ParseFloat(op, value)
	if err != nil {
		return 0, "", err
	}
	return v, formatFloat32(v), nil
}

func parseIntParam(op, value string) (int64, string, error) {
	v, err := catalog.ParseInt(op, value)
	if err != nil {
		return 0, "", err
	}
	return v, formatInt64(v), nil
}

func parseUintParam(op, value string) (uint64, string, error) {
	v, err := catalog.ParseUint(op, value)
	if err != nil {
		return 0, "", err
	}
	return v, formatUint64(v), nil
}

func parseBoolParam(op, value string) (bool, string, error) {
	v, err := catalog.ParseBool(op, value)
	if err != nil {
		return false, "", err
	}
	return v, catalog.FormatBool(v), nil
}
