package omdb

import (
	"strings"
	"time"
)

// EntityType is the OMDB Type of a record
type EntityType string

// Entity types
const (
	EntityMovie  EntityType = "movie"
	EntitySeries EntityType = "series"
)

// Entity is a fully hydrated OMDB record
type Entity interface {
	// ID returns the IMDb ttid
	ID() string
	// Name returns the title
	Name() string
	// Kind returns the entity type
	Kind() EntityType
}

// Movie represents a single OMDB movie record
type Movie struct {
	Title       string     `json:"title"`
	Year        int        `json:"year"`
	Rating      string     `json:"rating"`
	ReleaseDate *time.Time `json:"release_date,omitempty"`
	Runtime     int        `json:"runtime"`
	Genres      []string   `json:"genres"`
	Directors   []string   `json:"directors"`
	Writers     []string   `json:"writers"`
	Actors      []string   `json:"actors"`
	Plot        string     `json:"plot"`
	Languages   []string   `json:"languages"`
	Country     string     `json:"country"`
	Poster      string     `json:"poster"`
	TTID        string     `json:"ttid"`
}

// ID returns the IMDb id
func (m Movie) ID() string { return m.TTID }

// Name returns the title
func (m Movie) Name() string { return m.Title }

// Kind returns EntityMovie
func (m Movie) Kind() EntityType { return EntityMovie }

// Series represents a single OMDB series record
type Series struct {
	Title       string     `json:"title"`
	Year        int        `json:"year"`
	Rating      string     `json:"rating"`
	ReleaseDate *time.Time `json:"release_date,omitempty"`
	Runtime     int        `json:"runtime"`
	Genres      []string   `json:"genres"`
	Directors   []string   `json:"directors"`
	Writers     []string   `json:"writers"`
	Actors      []string   `json:"actors"`
	Plot        string     `json:"plot"`
	Languages   []string   `json:"languages"`
	Country     string     `json:"country"`
	Poster      string     `json:"poster"`
	TTID        string     `json:"ttid"`
	Seasons     int        `json:"seasons"`
}

// ID returns the IMDb id
func (s Series) ID() string { return s.TTID }

// Name returns the title
func (s Series) Name() string { return s.Title }

// Kind returns EntitySeries
func (s Series) Kind() EntityType { return EntitySeries }

func newMovie(p map[string]any) Entity {
	return Movie{
		Title:       stringField(p, "Title"),
		Year:        parseLeadingInt(stringField(p, "Year")),
		Rating:      stringField(p, "Rated"),
		ReleaseDate: parseDate(stringField(p, "Released")),
		Runtime:     parseRuntime(stringField(p, "Runtime")),
		Genres:      splitOnComma(stringField(p, "Genre")),
		Directors:   splitOnComma(stringField(p, "Director")),
		Writers:     splitOnComma(stringField(p, "Writer")),
		Actors:      splitOnComma(stringField(p, "Actors")),
		Plot:        stringField(p, "Plot"),
		Languages:   splitOnComma(stringField(p, "Language")),
		Country:     stringField(p, "Country"),
		Poster:      stringField(p, "Poster"),
		TTID:        stringField(p, "imdbID"),
	}
}

func newSeries(p map[string]any) Entity {
	return Series{
		Title:       stringField(p, "Title"),
		Year:        parseLeadingInt(stringField(p, "Year")),
		Rating:      stringField(p, "Rated"),
		ReleaseDate: parseDate(stringField(p, "Released")),
		Runtime:     parseRuntime(stringField(p, "Runtime")),
		Genres:      splitOnComma(stringField(p, "Genre")),
		Directors:   splitOnComma(stringField(p, "Director")),
		Writers:     splitOnComma(stringField(p, "Writer")),
		Actors:      splitOnComma(stringField(p, "Actors")),
		Plot:        stringField(p, "Plot"),
		Languages:   splitOnComma(stringField(p, "Language")),
		Country:     stringField(p, "Country"),
		Poster:      stringField(p, "Poster"),
		TTID:        stringField(p, "imdbID"),
		Seasons:     parseLeadingInt(stringField(p, "totalSeasons")),
	}
}

// entityConstructors maps a lowercased OMDB Type to its constructor
var entityConstructors = map[EntityType]func(map[string]any) Entity{
	EntityMovie:  newMovie,
	EntitySeries: newSeries,
}

func constructorFor(typ string) (func(map[string]any) Entity, bool) {
	ctor, ok := entityConstructors[EntityType(strings.ToLower(strings.TrimSpace(typ)))]
	return ctor, ok
}
