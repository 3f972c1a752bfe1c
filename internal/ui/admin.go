package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/whataflick/flick/internal/models"
	"github.com/whataflick/flick/internal/shared"
)

// posterDebounce is how long the title must rest before a poster lookup
// fires. Every keystroke restarts the window.
const posterDebounce = 300 * time.Millisecond

// adminMode is the editor's current activity. Exactly one is active at a
// time; transition resets the state the previous mode owned.
type adminMode int

const (
	adminIdle adminMode = iota
	adminViewing
	adminEditing
	adminAdding
)

// adminModel is the catalog editor. The local movie list is only ever
// patched from server responses; a save or delete that fails leaves the
// list exactly as it was.
type adminModel struct {
	ctx  context.Context
	deps Context
	gen  int

	mode    adminMode
	movies  list.Model
	loading bool
	errLine string

	selected models.Movie
	form     adminForm

	// Debounced poster preview. posterSeq stamps every scheduled lookup;
	// results and ticks carrying an older stamp are dropped.
	posterSeq  int
	posterURL  string
	posterOK   bool
	posterBusy bool
}

// adminForm holds the edit/add inputs plus the draft derived from them.
type adminForm struct {
	title    textinput.Model
	director textinput.Model
	genre    textinput.Model
	year     textinput.Model
	focus    int
	draft    models.Movie
	saving   bool
}

type adminCatalogMsg struct {
	gen    int
	movies []models.Movie
	err    error
}

type movieSavedMsg struct {
	gen     int
	movie   *models.Movie
	created bool
	err     error
}

type movieDeletedMsg struct {
	gen int
	id  string
	err error
}

type posterTickMsg struct {
	gen int
	seq int
}

type adminPosterMsg struct {
	gen int
	seq int
	url string
	ok  bool
}

func newAdminModel(ctx context.Context, deps Context, gen int) *adminModel {
	movies := list.New(nil, list.NewDefaultDelegate(), 0, 16)
	movies.Title = "Catalog editor"
	movies.SetShowStatusBar(false)
	movies.SetShowHelp(false)

	return &adminModel{
		ctx:     ctx,
		deps:    deps,
		gen:     gen,
		mode:    adminIdle,
		movies:  movies,
		loading: true,
	}
}

func (m *adminModel) init() tea.Cmd {
	gen := m.gen
	return func() tea.Msg {
		movies, err := m.deps.Backend.Movies(m.ctx)
		return adminCatalogMsg{gen: gen, movies: movies, err: err}
	}
}

// transition switches modes and resets state owned by the one being left.
func (m *adminModel) transition(to adminMode) tea.Cmd {
	m.mode = to
	m.errLine = ""
	m.posterSeq++
	m.posterURL, m.posterOK, m.posterBusy = "", false, false

	switch to {
	case adminIdle:
		m.selected = models.Movie{}
		m.form = adminForm{}
		return nil
	case adminViewing:
		m.form = adminForm{}
		return m.lookupPoster(m.selected.Title)
	case adminEditing:
		m.form = newAdminForm(m.selected)
		return m.lookupPoster(m.selected.Title)
	case adminAdding:
		m.selected = models.Movie{}
		m.form = newAdminForm(models.Movie{})
		return nil
	}
	return nil
}

func newAdminForm(movie models.Movie) adminForm {
	title := textinput.New()
	title.Prompt = "Title:     "
	title.SetValue(movie.Title)
	title.Focus()

	director := textinput.New()
	director.Prompt = "Directors: "
	director.Placeholder = "comma separated"
	director.SetValue(strings.Join(movie.Director, ", "))

	genre := textinput.New()
	genre.Prompt = "Genres:    "
	genre.Placeholder = "comma separated"
	genre.SetValue(strings.Join(movie.Genre, ", "))

	year := textinput.New()
	year.Prompt = "Year:      "
	year.CharLimit = 4
	if movie.ReleaseYear > 0 {
		year.SetValue(strconv.Itoa(movie.ReleaseYear))
	}

	return adminForm{
		title:    title,
		director: director,
		genre:    genre,
		year:     year,
		draft:    movie,
	}
}

// lookupPoster fires an immediate poster fetch for a settled title.
func (m *adminModel) lookupPoster(title string) tea.Cmd {
	if title == "" {
		return nil
	}
	m.posterBusy = true
	gen, seq := m.gen, m.posterSeq
	return func() tea.Msg {
		url, ok := m.deps.Posters.PosterURL(m.ctx, title)
		return adminPosterMsg{gen: gen, seq: seq, url: url, ok: ok}
	}
}

// schedulePoster restarts the debounce window after a title keystroke. Only
// the tick carrying the latest stamp survives to fire a lookup.
func (m *adminModel) schedulePoster() tea.Cmd {
	m.posterSeq++
	m.posterURL, m.posterOK = "", false
	m.posterBusy = m.form.draft.Title != ""

	if m.form.draft.Title == "" {
		return nil
	}

	gen, seq := m.gen, m.posterSeq
	return tea.Tick(posterDebounce, func(time.Time) tea.Msg {
		return posterTickMsg{gen: gen, seq: seq}
	})
}

func (m *adminModel) update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.movies.SetSize(msg.Width, msg.Height-6)
		return m, nil

	case adminCatalogMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.errLine = msg.err.Error()
			return m, nil
		}
		items := make([]list.Item, len(msg.movies))
		for i, movie := range msg.movies {
			items[i] = adminItem{movie: movie}
		}
		return m, m.movies.SetItems(items)

	case posterTickMsg:
		if msg.gen != m.gen || msg.seq != m.posterSeq {
			return m, nil
		}
		title := m.form.draft.Title
		gen, seq := m.gen, m.posterSeq
		return m, func() tea.Msg {
			url, ok := m.deps.Posters.PosterURL(m.ctx, title)
			return adminPosterMsg{gen: gen, seq: seq, url: url, ok: ok}
		}

	case adminPosterMsg:
		if msg.gen != m.gen || msg.seq != m.posterSeq {
			return m, nil
		}
		m.posterBusy = false
		m.posterURL, m.posterOK = msg.url, msg.ok
		return m, nil

	case movieSavedMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.form.saving = false
		if msg.err != nil {
			m.errLine = "save failed: " + msg.err.Error()
			return m, nil
		}
		cmd := m.patchList(*msg.movie, msg.created)
		return m, tea.Batch(cmd, m.transition(adminIdle))

	case movieDeletedMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		if msg.err != nil {
			m.errLine = "delete failed: " + msg.err.Error()
			return m, nil
		}
		kept := make([]list.Item, 0, len(m.movies.Items()))
		for _, item := range m.movies.Items() {
			if a, ok := item.(adminItem); ok && a.movie.ID == msg.id {
				continue
			}
			kept = append(kept, item)
		}
		cmd := m.movies.SetItems(kept)
		return m, tea.Batch(cmd, m.transition(adminIdle))

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.mode == adminIdle {
		var cmd tea.Cmd
		m.movies, cmd = m.movies.Update(msg)
		return m, cmd
	}
	return m, nil
}

// patchList applies one server-confirmed change to the local list: replace
// by id on update, append on create.
func (m *adminModel) patchList(movie models.Movie, created bool) tea.Cmd {
	items := m.movies.Items()
	if created {
		return m.movies.SetItems(append(items, adminItem{movie: movie}))
	}
	next := make([]list.Item, len(items))
	for i, item := range items {
		if a, ok := item.(adminItem); ok && a.movie.ID == movie.ID {
			next[i] = adminItem{movie: movie}
			continue
		}
		next[i] = item
	}
	return m.movies.SetItems(next)
}

func (m *adminModel) handleKey(msg tea.KeyMsg) (screen, tea.Cmd) {
	switch m.mode {
	case adminEditing, adminAdding:
		return m.handleFormKey(msg)
	case adminViewing:
		return m.handleViewKey(msg)
	}

	if m.movies.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.movies, cmd = m.movies.Update(msg)
		return m, cmd
	}

	keys := newKeyMap()
	switch {
	case key.Matches(msg, keys.enter):
		if item, ok := m.movies.SelectedItem().(adminItem); ok {
			m.selected = item.movie
			return m, m.transition(adminViewing)
		}
		return m, nil
	case key.Matches(msg, keys.add):
		return m, m.transition(adminAdding)
	case key.Matches(msg, keys.movies):
		return m, navigate(MoviesRoute)
	case key.Matches(msg, keys.user):
		return m, navigate(UserRoute)
	case key.Matches(msg, keys.quit):
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.movies, cmd = m.movies.Update(msg)
	return m, cmd
}

func (m *adminModel) handleViewKey(msg tea.KeyMsg) (screen, tea.Cmd) {
	keys := newKeyMap()
	switch {
	case key.Matches(msg, keys.back):
		return m, m.transition(adminIdle)
	case key.Matches(msg, keys.edit):
		return m, m.transition(adminEditing)
	case key.Matches(msg, keys.add):
		return m, m.transition(adminAdding)
	case key.Matches(msg, keys.delete):
		gen, id := m.gen, m.selected.ID
		return m, func() tea.Msg {
			return movieDeletedMsg{gen: gen, id: id, err: m.deps.Backend.DeleteMovie(m.ctx, id)}
		}
	case key.Matches(msg, keys.open):
		if m.posterOK {
			url := m.posterURL
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

func (m *adminModel) handleFormKey(msg tea.KeyMsg) (screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, m.transition(adminIdle)
	case "tab", "shift+tab", "down", "up":
		m.cycleFormFocus(msg.String() == "tab" || msg.String() == "down")
		return m, nil
	case "enter":
		return m, m.save()
	}

	titleBefore := m.form.draft.Title
	var cmd tea.Cmd
	switch m.form.focus {
	case 0:
		m.form.title, cmd = m.form.title.Update(msg)
	case 1:
		m.form.director, cmd = m.form.director.Update(msg)
	case 2:
		m.form.genre, cmd = m.form.genre.Update(msg)
	case 3:
		m.form.year, cmd = m.form.year.Update(msg)
	}

	// Re-derive the draft on every keystroke so lists and the year are
	// always parsed from the current text.
	m.form.draft = models.Movie{
		ID:          m.selected.ID,
		Title:       strings.TrimSpace(m.form.title.Value()),
		Director:    models.SplitList(m.form.director.Value()),
		Genre:       models.SplitList(m.form.genre.Value()),
		ReleaseYear: models.ParseYear(m.form.year.Value()),
	}

	if m.form.draft.Title != titleBefore {
		return m, tea.Batch(cmd, m.schedulePoster())
	}
	return m, cmd
}

func (m *adminModel) cycleFormFocus(forward bool) {
	inputs := []*textinput.Model{&m.form.title, &m.form.director, &m.form.genre, &m.form.year}
	inputs[m.form.focus].Blur()
	if forward {
		m.form.focus = (m.form.focus + 1) % len(inputs)
	} else {
		m.form.focus = (m.form.focus - 1 + len(inputs)) % len(inputs)
	}
	inputs[m.form.focus].Focus()
}

func (m *adminModel) save() tea.Cmd {
	if m.form.saving {
		return nil
	}
	if m.form.draft.Title == "" {
		m.errLine = "a title is required"
		return nil
	}

	m.form.saving = true
	m.errLine = ""
	gen, draft := m.gen, m.form.draft
	adding := m.mode == adminAdding

	return func() tea.Msg {
		if adding {
			movie, err := m.deps.Backend.CreateMovie(m.ctx, draft)
			return movieSavedMsg{gen: gen, movie: movie, created: true, err: err}
		}
		movie, err := m.deps.Backend.UpdateMovie(m.ctx, draft)
		return movieSavedMsg{gen: gen, movie: movie, err: err}
	}
}

func (m *adminModel) view(width int) string {
	switch m.mode {
	case adminViewing:
		return m.detailView()
	case adminEditing, adminAdding:
		return m.formView()
	}

	if m.loading {
		return styles.help.Render("loading catalog...")
	}
	if m.errLine != "" {
		return styles.err.Render(m.errLine)
	}
	return m.movies.View() + "\n" + styles.help.Render("enter inspect • + add movie")
}

func (m *adminModel) detailView() string {
	var b strings.Builder
	b.WriteString(styles.title.Render(m.selected.Title) + "\n")
	if m.selected.ReleaseYear > 0 {
		b.WriteString(fmt.Sprintf("Released %d\n", m.selected.ReleaseYear))
	}
	if line := m.selected.DirectorLine(); line != "" {
		b.WriteString("Directed by " + line + "\n")
	}
	if line := m.selected.GenreLine(); line != "" {
		b.WriteString(line + "\n")
	}
	b.WriteString(m.posterLine())
	if m.errLine != "" {
		b.WriteString("\n" + styles.err.Render(m.errLine))
	}
	b.WriteString("\n" + styles.help.Render("e edit • x delete • + add • o open poster • esc back"))
	return b.String()
}

func (m *adminModel) formView() string {
	var b strings.Builder
	if m.mode == adminAdding {
		b.WriteString(styles.title.Render("New movie") + "\n")
	} else {
		b.WriteString(styles.title.Render("Edit "+m.selected.Title) + "\n")
	}

	b.WriteString(m.form.title.View() + "\n")
	b.WriteString(m.form.director.View() + "\n")
	b.WriteString(m.form.genre.View() + "\n")
	b.WriteString(m.form.year.View() + "\n")
	b.WriteString(m.posterLine())

	if m.form.saving {
		b.WriteString(styles.help.Render("saving...") + "\n")
	}
	if m.errLine != "" {
		b.WriteString(styles.err.Render(m.errLine) + "\n")
	}

	b.WriteString("\n" + styles.help.Render("enter save • tab next field • esc cancel"))
	return b.String()
}

func (m *adminModel) posterLine() string {
	switch {
	case m.posterBusy:
		return styles.help.Render("looking up poster...") + "\n"
	case m.posterOK:
		return styles.ok.Render(m.posterURL) + "\n"
	default:
		return styles.help.Render("no poster found") + "\n"
	}
}
