package omdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// MaxResults is the size of one OMDB search page. Larger searches are rejected
// instead of paginated.
const MaxResults = 10

// Result is a classified OMDB response
type Result struct {
	querier    Querier
	statusCode int
	raw        []byte
	payload    map[string]any
}

// searchHit is the minimal record a search returns for each match
type searchHit struct {
	ImdbID string `json:"imdbID"`
	Type   string `json:"Type"`
	Title  string `json:"Title"`
	Year   string `json:"Year"`
}

// newResult decodes body and returns the error matching the response, if any.
// querier is used for the follow-up requests of Collection.
func newResult(querier Querier, statusCode int, body []byte) (*Result, error) {
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	if payload == nil {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidJSON)
	}

	if statusCode == http.StatusUnauthorized {
		return nil, &APIError{Kind: ErrUnauthorized, StatusCode: statusCode, Message: stringField(payload, "Error")}
	}

	if statusCode != http.StatusOK {
		return nil, &APIError{Kind: ErrBadAPIResponse, StatusCode: statusCode, Message: stringField(payload, "Error")}
	}

	if stringField(payload, "Response") == "False" {
		return nil, &APIError{Kind: ErrNoResults, StatusCode: statusCode, Message: stringField(payload, "Error")}
	}

	return &Result{
		querier:    querier,
		statusCode: statusCode,
		raw:        body,
		payload:    payload,
	}, nil
}

// Raw returns the undecoded response body
func (r *Result) Raw() []byte {
	return r.raw
}

// Payload returns the decoded response body
func (r *Result) Payload() map[string]any {
	return r.payload
}

// StatusCode returns the HTTP status of the response
func (r *Result) StatusCode() int {
	return r.statusCode
}

// IsSearch reports whether the payload is a multi-result search
func (r *Result) IsSearch() bool {
	_, ok := r.payload["totalResults"]
	return ok
}

// Entity maps the payload onto a Movie or Series depending on its Type
func (r *Result) Entity() (Entity, error) {
	typ := stringField(r.payload, "Type")
	ctor, ok := constructorFor(typ)
	if !ok {
		return nil, fmt.Errorf("%w: entity with the name of '%s' could not be converted", ErrUnknownEntity, typ)
	}
	return ctor(r.payload), nil
}

// TotalResults returns the number of matches a search reported
func (r *Result) TotalResults() (int, error) {
	total, err := strconv.Atoi(strings.TrimSpace(stringField(r.payload, "totalResults")))
	if err != nil {
		return 0, fmt.Errorf("%w: totalResults: %v", ErrInvalidJSON, err)
	}
	return total, nil
}

// Collection resolves every search hit into a full entity with one follow-up
// query each. The returned order matches the search order.
func (r *Result) Collection(ctx context.Context) ([]Entity, error) {
	total, err := r.TotalResults()
	if err != nil {
		return nil, err
	}
	if total > MaxResults {
		return nil, fmt.Errorf("%w: %d found, please provide more filters", ErrTooManyResults, total)
	}

	hits, err := r.searchHits()
	if err != nil {
		return nil, err
	}

	entities := make([]Entity, 0, len(hits))
	for _, hit := range hits {
		result, err := r.querier.Query(ctx, Filters{ParamID: hit.ImdbID, ParamType: strings.ToLower(hit.Type)})
		if err != nil {
			return nil, err
		}

		entity, err := result.Entity()
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}

	return entities, nil
}

func (r *Result) searchHits() ([]searchHit, error) {
	var envelope struct {
		Search []searchHit `json:"Search"`
	}
	if err := json.Unmarshal(r.raw, &envelope); err != nil {
		return nil, fmt.Errorf("%w: Search: %v", ErrInvalidJSON, err)
	}
	return envelope.Search, nil
}
