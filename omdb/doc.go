// Package omdb provides a fluent client for the OMDB movie and series metadata API.
//
// # Architecture
//
// The package is organized into several components:
//
//   - Client: issues validated queries against the API and classifies responses
//   - API: a chainable query session with First and All terminals
//   - Result: a classified response that maps onto entities
//   - Movie, Series: immutable records built from a response
//   - Errors: sentinel error kinds and a structured APIError
//
// # Usage
//
//	logger := zerolog.New(os.Stderr)
//	client, err := omdb.NewClient(
//		"your-api-key",
//		logger,
//		omdb.WithTimeout(10*time.Second),
//		omdb.WithRateLimit(1, 1),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	ctx := context.Background()
//	movie, err := omdb.NewAPI(client).Title("Tron").Year(1982).FullPlot().First(ctx)
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Searches resolve every hit into a full entity with one follow-up request per hit:
//
//	entities, err := omdb.NewAPI(client).Search("Tron").Type("movie").All(ctx)
//
// Searches matching more than MaxResults records fail with ErrTooManyResults.
//
// # Error Handling
//
// Every failure wraps one of the sentinel errors, so callers classify with errors.Is:
//
//   - ErrDuplicateFilter, ErrInvalidArgument, ErrInvalidParameter,
//     ErrInvalidParameterValue: rejected before any request is made
//   - ErrInvalidJSON: the body could not be decoded
//   - ErrUnauthorized, ErrBadAPIResponse, ErrNoResults: reported by the API as *APIError
//   - ErrTooManyResults, ErrUnknownEntity: the response could not be mapped
//
// API errors carry the API's own message:
//
//	var apiErr *omdb.APIError
//	if errors.As(err, &apiErr) && apiErr.IsUnauthorized() {
//		// Handle auth failure
//	}
package omdb
