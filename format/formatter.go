package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/s0up4200/omdbq/omdb"
)

// Formatter renders entities for output
type Formatter interface {
	Write(w io.Writer, entities []omdb.Entity) error
}

// Options contains options for formatting output
type Options struct {
	ShowDetails bool
}

// New returns the formatter registered under name ("console" or "json")
func New(name string, options Options) (Formatter, error) {
	switch name {
	case "", "console":
		return NewConsoleFormatter(options), nil
	case "json":
		return &JSONFormatter{}, nil
	default:
		return nil, fmt.Errorf("unknown output format: %s", name)
	}
}

// ConsoleFormatter provides tree style console output
type ConsoleFormatter struct {
	options Options
}

// NewConsoleFormatter creates a new console formatter
func NewConsoleFormatter(options Options) *ConsoleFormatter {
	return &ConsoleFormatter{options: options}
}

// Write formats a list of entities for console display
func (f *ConsoleFormatter) Write(w io.Writer, entities []omdb.Entity) error {
	_, err := io.WriteString(w, f.Format(entities))
	return err
}

// Format renders entities as a tree
func (f *ConsoleFormatter) Format(entities []omdb.Entity) string {
	if len(entities) == 0 {
		return "No titles found\n"
	}

	var sb strings.Builder

	// Header
	sb.WriteString("\nTitle")
	if len(entities) != 1 {
		sb.WriteString("s")
	}
	fmt.Fprintf(&sb, " (%d):\n\n", len(entities))

	for i, entity := range entities {
		isLast := i == len(entities)-1
		f.formatEntity(&sb, entity, isLast)

		if !isLast {
			sb.WriteString("│\n")
		}
	}

	sb.WriteString("\n")
	return sb.String()
}

// formatEntity formats a single movie or series entry
func (f *ConsoleFormatter) formatEntity(sb *strings.Builder, entity omdb.Entity, isLast bool) {
	prefix := "├"
	if isLast {
		prefix = "╰"
	}

	indent := "│   "
	if isLast {
		indent = "    "
	}

	switch e := entity.(type) {
	case omdb.Movie:
		fmt.Fprintf(sb, "%s── %s (%d) [%s]\n", prefix, e.Title, e.Year, e.TTID)
		if f.options.ShowDetails {
			writeDetails(sb, indent, details{e.Rating, e.Runtime, e.Genres, e.Directors, e.Actors, e.Country, e.Plot})
			if e.ReleaseDate != nil {
				fmt.Fprintf(sb, "%sReleased: %s\n", indent, e.ReleaseDate.Format("2006-01-02"))
			}
		}
	case omdb.Series:
		fmt.Fprintf(sb, "%s── %s (%d) [%s] series", prefix, e.Title, e.Year, e.TTID)
		if e.Seasons > 0 {
			fmt.Fprintf(sb, ", %d season", e.Seasons)
			if e.Seasons != 1 {
				sb.WriteString("s")
			}
		}
		sb.WriteString("\n")
		if f.options.ShowDetails {
			writeDetails(sb, indent, details{e.Rating, e.Runtime, e.Genres, e.Directors, e.Actors, e.Country, e.Plot})
		}
	default:
		fmt.Fprintf(sb, "%s── %s [%s]\n", prefix, entity.Name(), entity.ID())
	}
}

type details struct {
	rating    string
	runtime   int
	genres    []string
	directors []string
	actors    []string
	country   string
	plot      string
}

func writeDetails(sb *strings.Builder, indent string, d details) {
	var parts []string
	if d.rating != "" && d.rating != "N/A" {
		parts = append(parts, "Rated "+d.rating)
	}
	if d.runtime > 0 {
		parts = append(parts, fmt.Sprintf("%d min", d.runtime))
	}
	if d.country != "" && d.country != "N/A" {
		parts = append(parts, d.country)
	}
	if len(parts) > 0 {
		fmt.Fprintf(sb, "%s%s\n", indent, strings.Join(parts, " | "))
	}

	if len(d.genres) > 0 {
		fmt.Fprintf(sb, "%sGenres: %s\n", indent, strings.Join(d.genres, ", "))
	}
	if len(d.directors) > 0 {
		fmt.Fprintf(sb, "%sDirected by: %s\n", indent, strings.Join(d.directors, ", "))
	}
	if len(d.actors) > 0 {
		fmt.Fprintf(sb, "%sStarring: %s\n", indent, strings.Join(d.actors, ", "))
	}
	if d.plot != "" && d.plot != "N/A" {
		fmt.Fprintf(sb, "%sPlot: %s\n", indent, d.plot)
	}
}

// JSONFormatter writes entities as a JSON array
type JSONFormatter struct{}

type jsonEntity struct {
	Kind omdb.EntityType `json:"kind"`
	omdb.Entity
}

// MarshalJSON inlines the entity fields next to its kind
func (e jsonEntity) MarshalJSON() ([]byte, error) {
	body, err := json.Marshal(e.Entity)
	if err != nil {
		return nil, err
	}
	var fields map[string]any
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, err
	}
	fields["kind"] = e.Kind
	return json.Marshal(fields)
}

// Write formats entities as indented JSON
func (f *JSONFormatter) Write(w io.Writer, entities []omdb.Entity) error {
	out := make([]jsonEntity, 0, len(entities))
	for _, entity := range entities {
		out = append(out, jsonEntity{Kind: entity.Kind(), Entity: entity})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
