package omdb

import (
	"context"
	"net/http"
	"strconv"
)

// API builds one query through chained filter calls and resolves it into
// entities. An API value is a single session; create a new one per query.
type API struct {
	querier Querier
	filters Filters
	err     error
}

// NewAPI creates a query session backed by querier
func NewAPI(querier Querier) *API {
	return &API{
		querier: querier,
		filters: Filters{},
	}
}

// FilterBy adds raw filter parameters. Setting a key twice records
// ErrDuplicateFilter, which is returned by Err, First and All.
func (a *API) FilterBy(params map[string]string) *API {
	if a.err != nil {
		return a
	}
	a.err = a.filters.Add(params)
	return a
}

// TTID filters by IMDb id
func (a *API) TTID(ttid string) *API {
	return a.FilterBy(map[string]string{ParamID: ttid})
}

// Title filters by exact title
func (a *API) Title(title string) *API {
	return a.FilterBy(map[string]string{ParamTitle: title})
}

// Search performs a multi-result title search
func (a *API) Search(terms string) *API {
	return a.FilterBy(map[string]string{ParamSearch: terms})
}

// Type restricts results to movie or series
func (a *API) Type(typ string) *API {
	return a.FilterBy(map[string]string{ParamType: typ})
}

// Year restricts results to a release year
func (a *API) Year(year int) *API {
	return a.FilterBy(map[string]string{ParamYear: strconv.Itoa(year)})
}

// ShortPlot requests the short plot
func (a *API) ShortPlot() *API {
	return a.Plot(PlotShort)
}

// FullPlot requests the full plot
func (a *API) FullPlot() *API {
	return a.Plot(PlotFull)
}

// Plot sets the plot length
func (a *API) Plot(length string) *API {
	return a.FilterBy(map[string]string{ParamPlot: length})
}

// APIVersion sets the OMDB API version parameter
func (a *API) APIVersion(version string) *API {
	return a.FilterBy(map[string]string{ParamVersion: version})
}

// Err returns the first error recorded while building filters
func (a *API) Err() error {
	return a.err
}

// Filters returns a copy of the accumulated filters
func (a *API) Filters() Filters {
	return a.filters.Clone()
}

// First returns the first exact match for the filters. Searches are resolved
// through All.
func (a *API) First(ctx context.Context) (Entity, error) {
	if a.err != nil {
		return nil, a.err
	}

	if a.filters.Has(ParamSearch) {
		entities, err := a.All(ctx)
		if err != nil {
			return nil, err
		}
		if len(entities) == 0 {
			return nil, &APIError{Kind: ErrNoResults, StatusCode: http.StatusOK, Message: "search returned no entries"}
		}
		return entities[0], nil
	}

	result, err := a.querier.Query(ctx, a.filters)
	if err != nil {
		return nil, err
	}
	return result.Entity()
}

// All returns every entity matching the filters
func (a *API) All(ctx context.Context) ([]Entity, error) {
	if a.err != nil {
		return nil, a.err
	}

	result, err := a.querier.Query(ctx, a.filters)
	if err != nil {
		return nil, err
	}

	if a.filters.Has(ParamSearch) && result.IsSearch() {
		return result.Collection(ctx)
	}

	entity, err := result.Entity()
	if err != nil {
		return nil, err
	}
	return []Entity{entity}, nil
}
