package match

import (
	"errors"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/file"
	"github.com/expr-lang/expr/vm"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/s0up4200/omdbq/omdb"
)

// Matcher is a compiled expression that selects entities
type Matcher interface {
	// Match reports whether entity satisfies the expression
	Match(entity omdb.Entity) (bool, error)

	// Expression returns the original expression
	Expression() string
}

// Compiler compiles match expressions
type Compiler interface {
	Compile(expression string) (Matcher, error)
}

// exprMatcher implements Matcher using the expr language
type exprMatcher struct {
	expression string
	program    *vm.Program
	compiler   *ExprCompiler
}

// CompilerOption configures an expr compiler
type CompilerOption func(*ExprCompiler)

// WithCache enables matcher caching with the specified size
func WithCache(size int) CompilerOption {
	return func(c *ExprCompiler) {
		if size > 0 {
			c.cache, _ = lru.New[string, Matcher](size)
		}
	}
}

// WithCustomFunctions adds custom helper functions
func WithCustomFunctions(funcs map[string]any) CompilerOption {
	return func(c *ExprCompiler) {
		maps.Copy(c.helperFuncs, funcs)
	}
}

// ExprCompiler compiles expressions with the expr language
type ExprCompiler struct {
	helperFuncs map[string]any
	cache       *lru.Cache[string, Matcher]
}

// NewExprCompiler creates a new expr-based compiler
func NewExprCompiler(opts ...CompilerOption) *ExprCompiler {
	c := &ExprCompiler{
		helperFuncs: map[string]any{},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Compile compiles an expression into a Matcher. Expressions are type checked
// against the entity fields and must evaluate to a boolean.
func (c *ExprCompiler) Compile(expression string) (Matcher, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
			Position:   -1,
		}
	}

	// Check cache if enabled
	if c.cache != nil {
		if cached, ok := c.cache.Get(expression); ok {
			return cached, nil
		}
	}

	program, err := expr.Compile(expression,
		expr.Env(c.environment(omdb.Series{})),
		expr.AsBool(),
	)
	if err != nil {
		compErr := &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Position:   -1,
			Err:        err,
		}
		var fileErr *file.Error
		if errors.As(err, &fileErr) {
			compErr.Reason = fileErr.Message
			compErr.Position = fileErr.Column
		}
		return nil, compErr
	}

	m := &exprMatcher{
		expression: expression,
		program:    program,
		compiler:   c,
	}

	// Cache if enabled
	if c.cache != nil {
		c.cache.Add(expression, m)
	}

	return m, nil
}

// Clear removes all cached matchers
func (c *ExprCompiler) Clear() {
	if c.cache != nil {
		c.cache.Purge()
	}
}

// Size returns the number of cached matchers
func (c *ExprCompiler) Size() int {
	if c.cache != nil {
		return c.cache.Len()
	}
	return 0
}

// environment builds the evaluation environment for one entity
func (c *ExprCompiler) environment(entity omdb.Entity) map[string]any {
	env := make(map[string]any, 48)
	addHelperFunctions(env)
	maps.Copy(env, c.helperFuncs)

	var f fields
	switch e := entity.(type) {
	case omdb.Movie:
		f = fields{e.Title, e.Year, e.Rating, e.ReleaseDate, e.Runtime, e.Genres, e.Directors, e.Writers, e.Actors, e.Plot, e.Languages, e.Country, e.Poster, e.TTID, 0}
	case omdb.Series:
		f = fields{e.Title, e.Year, e.Rating, e.ReleaseDate, e.Runtime, e.Genres, e.Directors, e.Writers, e.Actors, e.Plot, e.Languages, e.Country, e.Poster, e.TTID, e.Seasons}
	}

	env["Kind"] = string(entity.Kind())
	env["IsMovie"] = entity.Kind() == omdb.EntityMovie
	env["IsSeries"] = entity.Kind() == omdb.EntitySeries
	env["Title"] = f.title
	env["Year"] = f.year
	env["Rating"] = f.rating
	env["Released"] = f.releaseDate != nil
	env["ReleaseDate"] = time.Time{}
	if f.releaseDate != nil {
		env["ReleaseDate"] = *f.releaseDate
	}
	env["Runtime"] = f.runtime
	env["Genres"] = f.genres
	env["Directors"] = f.directors
	env["Writers"] = f.writers
	env["Actors"] = f.actors
	env["Plot"] = f.plot
	env["Languages"] = f.languages
	env["Country"] = f.country
	env["Poster"] = f.poster
	env["TTID"] = f.ttid
	env["Seasons"] = f.seasons

	env["hasGenre"] = createHasFunc(f.genres)
	env["hasActor"] = createHasFunc(f.actors)
	env["hasDirector"] = createHasFunc(f.directors)
	env["hasWriter"] = createHasFunc(f.writers)
	env["hasLanguage"] = createHasFunc(f.languages)

	return env
}

// fields is the common shape of Movie and Series
type fields struct {
	title       string
	year        int
	rating      string
	releaseDate *time.Time
	runtime     int
	genres      []string
	directors   []string
	writers     []string
	actors      []string
	plot        string
	languages   []string
	country     string
	poster      string
	ttid        string
	seasons     int
}

// Match evaluates the expression against an entity
func (m *exprMatcher) Match(entity omdb.Entity) (bool, error) {
	result, err := expr.Run(m.program, m.compiler.environment(entity))
	if err != nil {
		return false, &EvaluationError{
			Expression:  m.expression,
			EntityTitle: entity.Name(),
			Reason:      "failed to evaluate expression",
			Err:         err,
		}
	}

	// Result is guaranteed to be bool due to AsBool() option during compilation
	return result.(bool), nil
}

// Expression returns the original expression
func (m *exprMatcher) Expression() string {
	return m.expression
}

// Filter keeps the entities matched by m, preserving order
func Filter(m Matcher, entities []omdb.Entity) ([]omdb.Entity, error) {
	matched := make([]omdb.Entity, 0, len(entities))
	for _, entity := range entities {
		ok, err := m.Match(entity)
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, entity)
		}
	}
	return matched, nil
}

// addHelperFunctions adds all static helper functions to the provided map
func addHelperFunctions(env map[string]any) {
	// Date helpers
	env["daysSince"] = func(t time.Time) int {
		return int(time.Since(t).Hours() / 24)
	}
	env["yearsAgo"] = func(years int) time.Time {
		return time.Now().AddDate(-years, 0, 0)
	}
	env["parseDate"] = func(dateStr string) time.Time {
		t, _ := time.Parse("2006-01-02", dateStr)
		return t
	}
	// String helpers
	env["contains"] = func(str, substr string) bool {
		return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
	}
	env["startsWith"] = func(str, prefix string) bool {
		return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
	}
	env["lower"] = strings.ToLower
	env["upper"] = strings.ToUpper
	// Current time
	env["now"] = time.Now
}

func createHasFunc(values []string) func(string) bool {
	return func(want string) bool {
		return slices.ContainsFunc(values, func(v string) bool {
			return strings.EqualFold(v, want)
		})
	}
}
