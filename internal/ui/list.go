package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/whataflick/flick/internal/models"
	"github.com/whataflick/flick/internal/tasks"
)

var (
	_ list.Item = movieItem{}
	_ list.Item = reviewItem{}
)

// movieItem wraps an enriched [tasks.CatalogEntry] to implement [list.Item].
type movieItem struct {
	entry tasks.CatalogEntry
}

func (i movieItem) FilterValue() string { return i.entry.Movie.Title }
func (i movieItem) Title() string       { return i.entry.Movie.Title }
func (i movieItem) Description() string {
	rating := "–"
	if i.entry.ReviewCount > 0 {
		rating = fmt.Sprintf("%.1f★", i.entry.Average)
	}
	desc := rating
	if year := i.entry.Movie.ReleaseYear; year > 0 {
		desc = fmt.Sprintf("%s • %d", desc, year)
	}
	if !i.entry.HasPoster {
		desc = fmt.Sprintf("%s • no poster", desc)
	}
	return desc
}

// adminItem wraps a bare [models.Movie] for the admin catalog list.
type adminItem struct {
	movie models.Movie
}

func (i adminItem) FilterValue() string { return i.movie.Title }
func (i adminItem) Title() string       { return i.movie.Title }
func (i adminItem) Description() string {
	if i.movie.ReleaseYear == 0 {
		return i.movie.DirectorLine()
	}
	return fmt.Sprintf("%d • %s", i.movie.ReleaseYear, i.movie.DirectorLine())
}

// reviewItem wraps one of the caller's own reviews to implement [list.Item].
type reviewItem struct {
	entry tasks.ReviewEntry
}

func (i reviewItem) FilterValue() string { return i.entry.Review.Movie.Title }
func (i reviewItem) Title() string {
	return fmt.Sprintf("%s — %.1f★", i.entry.Review.Movie.Title, i.entry.Review.Rating)
}
func (i reviewItem) Description() string {
	return i.entry.Review.CreatedAt.Format("2006-01-02")
}
