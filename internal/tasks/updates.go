package tasks

import "fmt"

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
}

// Operation phase enumeration
type Phase int

const (
	FetchCatalog Phase = iota
	EnrichMovie
	ResolveNames
)

func (p Phase) String() string {
	switch p {
	case FetchCatalog:
		return "fetch_catalog"
	case EnrichMovie:
		return "enrich_movie"
	case ResolveNames:
		return "resolve_names"
	default:
		return ""
	}
}

func fetchCatalogUpdate() ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchCatalog,
		Step:    1,
		Total:   1,
		Message: "Fetching movie catalog...",
	}
}

func enrichMovieUpdate(step, total int, title string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   EnrichMovie,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Enriched %q (%d/%d)", title, step, total),
	}
}

func resolveNamesUpdate(total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ResolveNames,
		Step:    0,
		Total:   total,
		Message: fmt.Sprintf("Resolving %d reviewer names...", total),
	}
}
