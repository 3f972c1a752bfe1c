package ui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/whataflick/flick/internal/models"
	"github.com/whataflick/flick/internal/shared"
	"github.com/whataflick/flick/internal/tasks"
)

// moviesState distinguishes the catalog listing from a single inspected movie.
type moviesState int

const (
	browsingMovies moviesState = iota
	inspectingMovie
)

// moviesModel is the catalog controller. Browsing holds the enriched list;
// inspecting layers one movie's review thread and an optional review form on
// top. Leaving the inspection discards its local state but keeps the list,
// so going back never re-fetches the catalog.
type moviesModel struct {
	ctx     context.Context
	deps    Context
	session models.Session
	gen     int

	state   moviesState
	catalog list.Model
	loading bool
	errLine string

	// inspection-local state, reset on every select and on back
	inspectGen int
	inspect    inspection
}

// inspection is the per-movie snapshot shown while inspecting.
type inspection struct {
	entry     tasks.CatalogEntry
	reviews   []models.Review
	names     map[string]string
	loading   bool
	warnLine  string
	composing bool
	rating    textinput.Model
	comment   textinput.Model
	focus     int
	saving    bool
}

type catalogLoadedMsg struct {
	gen    int
	result *tasks.CatalogResult
	err    error
}

type reviewsLoadedMsg struct {
	gen        int
	inspectGen int
	reviews    []models.Review
	names      map[string]string
	err        error
}

type reviewSavedMsg struct {
	gen        int
	inspectGen int
	review     *models.Review
	err        error
}

func newMoviesModel(ctx context.Context, deps Context, session models.Session, gen int) *moviesModel {
	catalog := list.New(nil, list.NewDefaultDelegate(), 0, 20)
	catalog.Title = "Catalog"
	catalog.SetShowStatusBar(false)
	catalog.SetShowHelp(false)

	return &moviesModel{
		ctx:     ctx,
		deps:    deps,
		session: session,
		gen:     gen,
		state:   browsingMovies,
		catalog: catalog,
		loading: true,
	}
}

func (m *moviesModel) init() tea.Cmd {
	gen := m.gen
	return func() tea.Msg {
		result, err := m.deps.Engine.EnrichCatalog(m.ctx, nil, tasks.EnrichOpts{})
		return catalogLoadedMsg{gen: gen, result: result, err: err}
	}
}

func (m *moviesModel) update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.catalog.SetSize(msg.Width, msg.Height-6)
		return m, nil

	case catalogLoadedMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.errLine = msg.err.Error()
			return m, nil
		}
		items := make([]list.Item, len(msg.result.Entries))
		for i, entry := range msg.result.Entries {
			items[i] = movieItem{entry: entry}
		}
		return m, m.catalog.SetItems(items)

	case reviewsLoadedMsg:
		if msg.gen != m.gen || msg.inspectGen != m.inspectGen {
			return m, nil
		}
		m.inspect.loading = false
		if msg.err != nil {
			m.inspect.warnLine = "reviews unavailable: " + msg.err.Error()
			return m, nil
		}
		m.inspect.reviews = msg.reviews
		m.inspect.names = msg.names
		return m, nil

	case reviewSavedMsg:
		if msg.gen != m.gen || msg.inspectGen != m.inspectGen {
			return m, nil
		}
		m.inspect.saving = false
		if msg.err != nil {
			if errors.Is(msg.err, shared.ErrDuplicateReview) {
				m.inspect.warnLine = "you have already reviewed this movie"
			} else {
				m.inspect.warnLine = "review not saved: " + msg.err.Error()
			}
			return m, nil
		}
		// Append locally so the new review shows without a re-fetch.
		m.inspect.reviews = append(m.inspect.reviews, *msg.review)
		if m.inspect.names == nil {
			m.inspect.names = make(map[string]string)
		}
		m.inspect.names[msg.review.User.ID] = "You"
		m.inspect.composing = false
		m.inspect.warnLine = ""
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.state == browsingMovies {
		var cmd tea.Cmd
		m.catalog, cmd = m.catalog.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *moviesModel) handleKey(msg tea.KeyMsg) (screen, tea.Cmd) {
	if m.state == inspectingMovie {
		return m.handleInspectKey(msg)
	}

	if m.catalog.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.catalog, cmd = m.catalog.Update(msg)
		return m, cmd
	}

	keys := newKeyMap()
	switch {
	case key.Matches(msg, keys.enter):
		if item, ok := m.catalog.SelectedItem().(movieItem); ok {
			return m, m.startInspect(item.entry)
		}
		return m, nil
	case key.Matches(msg, keys.user):
		return m, navigate(UserRoute)
	case key.Matches(msg, keys.admin):
		return m, navigate(AdminRoute)
	case key.Matches(msg, keys.quit):
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.catalog, cmd = m.catalog.Update(msg)
	return m, cmd
}

// startInspect mounts a fresh inspection for the entry. Bumping inspectGen
// makes any in-flight result from a previous inspection stale.
func (m *moviesModel) startInspect(entry tasks.CatalogEntry) tea.Cmd {
	m.state = inspectingMovie
	m.inspectGen++
	m.inspect = inspection{entry: entry, loading: true}

	gen, inspectGen := m.gen, m.inspectGen
	movieID, selfID := entry.Movie.ID, m.session.UserID

	return func() tea.Msg {
		reviews, err := m.deps.Backend.MovieReviews(m.ctx, movieID)
		if err != nil {
			return reviewsLoadedMsg{gen: gen, inspectGen: inspectGen, err: err}
		}
		names := m.deps.Engine.ResolveReviewers(m.ctx, nil, reviews, selfID)
		return reviewsLoadedMsg{gen: gen, inspectGen: inspectGen, reviews: reviews, names: names}
	}
}

func (m *moviesModel) handleInspectKey(msg tea.KeyMsg) (screen, tea.Cmd) {
	if m.inspect.composing {
		return m.handleComposeKey(msg)
	}

	keys := newKeyMap()
	switch {
	case key.Matches(msg, keys.back):
		m.state = browsingMovies
		m.inspect = inspection{}
		return m, nil
	case key.Matches(msg, keys.add):
		if m.session.Anonymous() {
			m.inspect.warnLine = "log in to review this movie"
			return m, nil
		}
		if m.hasOwnReview() {
			m.inspect.warnLine = "you have already reviewed this movie"
			return m, nil
		}
		m.startCompose()
		return m, nil
	case key.Matches(msg, keys.open):
		if m.inspect.entry.HasPoster {
			url := m.inspect.entry.PosterURL
			return m, func() tea.Msg {
				_ = shared.OpenBrowser(url)
				return nil
			}
		}
		return m, nil
	case key.Matches(msg, keys.quit):
		return m, tea.Quit
	}
	return m, nil
}

// hasOwnReview reports whether the loaded thread already holds a review by
// the current identity. At most one review per (user, movie) pair exists, so
// a match closes the compose path.
func (m *moviesModel) hasOwnReview() bool {
	for _, review := range m.inspect.reviews {
		if review.User.ID != "" && review.User.ID == m.session.UserID {
			return true
		}
	}
	return false
}

func (m *moviesModel) startCompose() {
	rating := textinput.New()
	rating.Placeholder = "7.5"
	rating.Prompt = "Rating (1.0-10.0): "
	rating.CharLimit = 4
	rating.Focus()

	comment := textinput.New()
	comment.Placeholder = "What a flick!"
	comment.Prompt = "Comment:           "

	m.inspect.composing = true
	m.inspect.rating = rating
	m.inspect.comment = comment
	m.inspect.focus = 0
	m.inspect.warnLine = ""
}

func (m *moviesModel) handleComposeKey(msg tea.KeyMsg) (screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.inspect.composing = false
		m.inspect.warnLine = ""
		return m, nil
	case "tab", "shift+tab":
		if m.inspect.focus == 0 {
			m.inspect.focus = 1
			m.inspect.rating.Blur()
			m.inspect.comment.Focus()
		} else {
			m.inspect.focus = 0
			m.inspect.comment.Blur()
			m.inspect.rating.Focus()
		}
		return m, nil
	case "enter":
		return m, m.submitReview()
	}

	var cmd tea.Cmd
	if m.inspect.focus == 0 {
		m.inspect.rating, cmd = m.inspect.rating.Update(msg)
	} else {
		m.inspect.comment, cmd = m.inspect.comment.Update(msg)
	}
	return m, cmd
}

// submitReview validates the form locally before any network call. A
// duplicate review surfaces as a warning and mutates nothing.
func (m *moviesModel) submitReview() tea.Cmd {
	if m.inspect.saving {
		return nil
	}

	rating, err := strconv.ParseFloat(strings.TrimSpace(m.inspect.rating.Value()), 64)
	if err != nil || !models.ValidRating(rating) {
		m.inspect.warnLine = fmt.Sprintf("rating must be between %.1f and %.1f", models.MinRating, models.MaxRating)
		return nil
	}

	comment := strings.TrimSpace(m.inspect.comment.Value())
	if comment == "" {
		m.inspect.warnLine = "a comment is required"
		return nil
	}

	m.inspect.saving = true
	m.inspect.warnLine = ""
	gen, inspectGen := m.gen, m.inspectGen
	movieID := m.inspect.entry.Movie.ID

	return func() tea.Msg {
		review, err := m.deps.Backend.CreateReview(m.ctx, movieID, rating, comment)
		return reviewSavedMsg{gen: gen, inspectGen: inspectGen, review: review, err: err}
	}
}

func (m *moviesModel) view(width int) string {
	if m.state == inspectingMovie {
		return m.inspectView()
	}

	if m.loading {
		return styles.help.Render("loading catalog...")
	}
	if m.errLine != "" {
		return styles.err.Render(m.errLine)
	}
	return m.catalog.View()
}

func (m *moviesModel) inspectView() string {
	var b strings.Builder
	entry := m.inspect.entry

	b.WriteString(styles.title.Render(entry.Movie.Title) + "\n")

	if entry.Movie.ReleaseYear > 0 {
		b.WriteString(fmt.Sprintf("Released %d\n", entry.Movie.ReleaseYear))
	}
	if line := entry.Movie.DirectorLine(); line != "" {
		b.WriteString("Directed by " + line + "\n")
	}
	if line := entry.Movie.GenreLine(); line != "" {
		b.WriteString(line + "\n")
	}
	if entry.HasPoster {
		b.WriteString(styles.help.Render(entry.PosterURL) + "\n")
	} else {
		b.WriteString(styles.help.Render("no poster found") + "\n")
	}
	if entry.ReviewCount > 0 {
		b.WriteString(styles.ok.Render(fmt.Sprintf("%.1f★ across %d reviews", entry.Average, entry.ReviewCount)) + "\n")
	}

	b.WriteString("\n")
	switch {
	case m.inspect.loading:
		b.WriteString(styles.help.Render("loading reviews...") + "\n")
	case len(m.inspect.reviews) == 0:
		b.WriteString(styles.help.Render("no reviews yet") + "\n")
	default:
		for _, review := range m.inspect.reviews {
			name := m.inspect.names[review.User.ID]
			if name == "" {
				name = "Anonymous"
			}
			b.WriteString(fmt.Sprintf("%s %s: %s\n",
				styles.ok.Render(fmt.Sprintf("%.1f★", review.Rating)), name, review.Comment))
		}
	}

	if m.inspect.composing {
		b.WriteString("\n" + m.inspect.rating.View() + "\n" + m.inspect.comment.View() + "\n")
		if m.inspect.saving {
			b.WriteString(styles.help.Render("submitting...") + "\n")
		}
	}

	if m.inspect.warnLine != "" {
		b.WriteString("\n" + styles.warn.Render(m.inspect.warnLine) + "\n")
	}

	if m.inspect.composing {
		b.WriteString("\n" + styles.help.Render("enter submit • tab switch field • esc cancel"))
	} else {
		b.WriteString("\n" + styles.help.Render("+ review • o open poster • esc back"))
	}

	return b.String()
}
