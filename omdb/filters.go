package omdb

import (
	"fmt"
	"maps"
	"slices"
)

// Filter parameter names understood by the OMDB API
const (
	ParamID      = "i"
	ParamTitle   = "t"
	ParamType    = "type"
	ParamYear    = "y"
	ParamPlot    = "plot"
	ParamVersion = "v"
	ParamSearch  = "s"
)

// Plot lengths
const (
	PlotShort = "short"
	PlotFull  = "full"
)

// Filters holds the query parameters of one request. Every key may be set once.
type Filters map[string]string

// Add merges params into f. It fails with ErrDuplicateFilter if any key is
// already present, in which case f is left untouched.
func (f Filters) Add(params map[string]string) error {
	for _, key := range slices.Sorted(maps.Keys(params)) {
		if _, exists := f[key]; exists {
			return fmt.Errorf("%w: the '%s' filter parameter has already been set", ErrDuplicateFilter, key)
		}
	}
	maps.Copy(f, params)
	return nil
}

// Has reports whether key is set
func (f Filters) Has(key string) bool {
	_, ok := f[key]
	return ok
}

// Clone returns a copy of f
func (f Filters) Clone() Filters {
	return maps.Clone(f)
}
