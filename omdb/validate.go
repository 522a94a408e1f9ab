package omdb

import (
	"fmt"
	"maps"
	"slices"
)

// allowedParameters lists every filter key the API accepts
var allowedParameters = map[string]bool{
	ParamID:      true,
	ParamTitle:   true,
	ParamType:    true,
	ParamYear:    true,
	ParamPlot:    true,
	ParamVersion: true,
	ParamSearch:  true,
}

// allowedValues restricts some parameters to a fixed set of values
var allowedValues = map[string][]string{
	ParamType: {string(EntityMovie), string(EntitySeries)},
	ParamPlot: {PlotShort, PlotFull},
}

// Validate checks filters before they are sent. The first violation is returned.
func Validate(filters Filters) error {
	if !filters.Has(ParamID) && !filters.Has(ParamTitle) && !filters.Has(ParamSearch) {
		return fmt.Errorf("%w: search not possible", ErrInvalidArgument)
	}

	for _, key := range slices.Sorted(maps.Keys(filters)) {
		if !allowedParameters[key] {
			return fmt.Errorf("%w: the '%s' parameter is not allowed", ErrInvalidParameter, key)
		}

		options, restricted := allowedValues[key]
		if restricted && !slices.Contains(options, filters[key]) {
			return fmt.Errorf("%w: the value '%s' is not allowed for parameter '%s'", ErrInvalidParameterValue, filters[key], key)
		}
	}

	return nil
}
