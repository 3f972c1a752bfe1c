package tasks

import (
	"context"
	"fmt"
	"sync"

	"github.com/whataflick/flick/internal/models"
	"github.com/whataflick/flick/internal/services"
	"github.com/whataflick/flick/internal/shared"
	"golang.org/x/time/rate"
)

// CatalogEntry is one movie enriched with its derived aggregates. Poster
// and rating resolve independently: either may be absent while the other
// is present.
type CatalogEntry struct {
	Movie       models.Movie
	PosterURL   string  // Display image URL, "" when unresolved
	HasPoster   bool    // Whether a poster was found
	Average     float64 // Arithmetic mean over the review set
	ReviewCount int     // Size of the review set
	ReviewsErr  error   // Review fetch failure, nil on success
}

// CatalogResult contains the enriched catalog in backend list order.
type CatalogResult struct {
	Entries []CatalogEntry
}

// EnrichOpts bounds the enrichment fan-out.
type EnrichOpts struct {
	NumWorkers int     // Concurrent workers (default 5, max 10)
	RateLimit  float64 // Poster lookups per second (default 5)
}

// CatalogEngine orchestrates reads against the backend and poster services.
type CatalogEngine struct {
	backend services.Backend
	posters services.PosterFinder
}

// NewCatalogEngine creates a new CatalogEngine with the provided services.
func NewCatalogEngine(backend services.Backend, posters services.PosterFinder) *CatalogEngine {
	return &CatalogEngine{backend: backend, posters: posters}
}

// sendProgress sends a progress update through the channel without blocking.
func (e *CatalogEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// EnrichCatalog fetches the movie list and enriches every entry with its
// poster and average rating.
//
// Enrichment uses a bounded worker pool with a rate limiter on poster
// lookups. Each movie's poster and review fetches run together and resolve
// independently; one movie's failure never blocks another's entry, and a
// failed review fetch leaves only that entry's rating unresolved.
func (e *CatalogEngine) EnrichCatalog(ctx context.Context, prog chan<- ProgressUpdate, opts EnrichOpts) (*CatalogResult, error) {
	if e.backend == nil {
		return nil, fmt.Errorf("%w: backend not configured", shared.ErrInvalidConfig)
	}

	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 5
	}
	if opts.NumWorkers > 10 {
		opts.NumWorkers = 10
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5.0
	}

	e.sendProgress(prog, fetchCatalogUpdate())

	movies, err := e.backend.Movies(ctx)
	if err != nil {
		return nil, err
	}

	result := &CatalogResult{Entries: make([]CatalogEntry, len(movies))}
	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)

	jobs := make(chan int, len(movies))

	var wg sync.WaitGroup
	for w := 0; w < opts.NumWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				result.Entries[i] = e.enrichMovie(ctx, limiter, movies[i])
				e.sendProgress(prog, enrichMovieUpdate(i+1, len(movies), movies[i].Title))
			}
		}()
	}

	for i := range movies {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return result, ctx.Err()
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	return result, nil
}

// enrichMovie resolves one movie's poster and review aggregate. The two
// fetches run concurrently; each degrades on its own.
func (e *CatalogEngine) enrichMovie(ctx context.Context, limiter *rate.Limiter, movie models.Movie) CatalogEntry {
	entry := CatalogEntry{Movie: movie}

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		if e.posters == nil {
			return
		}
		if err := limiter.Wait(ctx); err != nil {
			return
		}
		entry.PosterURL, entry.HasPoster = e.posters.PosterURL(ctx, movie.Title)
	}()

	go func() {
		defer wg.Done()
		reviews, err := e.backend.MovieReviews(ctx, movie.ID)
		if err != nil {
			entry.ReviewsErr = err
			return
		}
		entry.Average = models.AverageRating(reviews)
		entry.ReviewCount = len(reviews)
	}()

	wg.Wait()
	return entry
}

// ResolveReviewers maps each distinct reviewing user id to a display name
// via concurrent authenticated lookups. The caller's own id is labeled
// "You" without a lookup; ids whose lookup fails are omitted so the caller
// falls back to "Anonymous".
func (e *CatalogEngine) ResolveReviewers(ctx context.Context, prog chan<- ProgressUpdate, reviews []models.Review, selfID string) map[string]string {
	names := make(map[string]string)
	seen := make(map[string]bool)

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)

	for _, review := range reviews {
		id := review.User.ID
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true

		if id == selfID {
			names[id] = "You"
			continue
		}

		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			name, err := e.backend.UserName(ctx, id)
			if err != nil || name == "" {
				return
			}
			mu.Lock()
			names[id] = name
			mu.Unlock()
		}(id)
	}

	e.sendProgress(prog, resolveNamesUpdate(len(seen)))
	wg.Wait()

	return names
}

// ResolveSession turns a stored token into a resolved session per the
// role-resolution contract: absent token → anonymous; present token →
// profile fetch binds the role; a failed fetch leaves the caller anonymous
// but keeps the token.
func (e *CatalogEngine) ResolveSession(ctx context.Context, token string) models.Session {
	session := models.NewSession(token)
	if session.Anonymous() {
		return session
	}

	profile, err := e.backend.Profile(ctx)
	if err != nil {
		return session
	}

	session.Role = profile.Role
	return session
}

// EnrichReviews attaches a poster to each of the caller's own reviews via
// the embedded movie title. Posters resolve concurrently and degrade to
// absence individually.
func (e *CatalogEngine) EnrichReviews(ctx context.Context, reviews []models.Review) []ReviewEntry {
	entries := make([]ReviewEntry, len(reviews))

	var wg sync.WaitGroup
	for i := range reviews {
		entries[i] = ReviewEntry{Review: reviews[i]}

		if e.posters == nil || reviews[i].Movie.Title == "" {
			continue
		}

		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			entries[i].PosterURL, entries[i].HasPoster = e.posters.PosterURL(ctx, reviews[i].Movie.Title)
		}(i)
	}
	wg.Wait()

	return entries
}

// ReviewEntry is one of the caller's reviews enriched with a poster.
type ReviewEntry struct {
	Review    models.Review
	PosterURL string
	HasPoster bool
}
