package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/whataflick/flick/internal/models"
	"github.com/whataflick/flick/internal/services"
	"github.com/whataflick/flick/internal/tasks"
)

// Route identifies a screen in the navigation shell.
type Route int

const (
	LoginRoute Route = iota
	RegisterRoute
	MoviesRoute
	UserRoute
	AdminRoute
)

// SessionStore is the shared token slot every controller reads at mount and
// the auth flows write. Implemented by [repositories.SessionRepository].
type SessionStore interface {
	Token() (string, error)
	Current() string
	Save(token string) error
	Clear() error
}

// Context carries the dependencies handed to each controller at
// construction, keeping every screen's requirements explicit.
type Context struct {
	Backend services.Backend
	Posters services.PosterFinder
	Engine  *tasks.CatalogEngine
	Store   SessionStore
	Logger  *log.Logger
}

// screen is one routed controller. Controllers own their local snapshot of
// remote entities; the shell owns navigation and the resolved session.
type screen interface {
	init() tea.Cmd
	update(msg tea.Msg) (screen, tea.Cmd)
	view(width int) string
}

// navigateMsg requests a route change. Controllers emit it; only the shell
// acts on it.
type navigateMsg struct {
	route Route
}

func navigate(route Route) tea.Cmd {
	return func() tea.Msg { return navigateMsg{route: route} }
}

// sessionResolvedMsg delivers the role-resolution result for the stored token.
type sessionResolvedMsg struct {
	session models.Session
}

// Shell is the root model: a route table over the screen controllers.
type Shell struct {
	ctx     context.Context
	deps    Context
	route   Route
	session models.Session
	denied  bool // transient admin-denied indicator
	active  screen
	gen     int // mount generation, bumped per navigation
	width   int
	height  int
	keys    keyMap
	help    help.Model
}

// NewShell creates the navigation shell. A stored token routes straight to
// the catalog; otherwise the login screen shows first.
func NewShell(ctx context.Context, deps Context) *Shell {
	s := &Shell{
		ctx:     ctx,
		deps:    deps,
		session: models.NewSession(deps.Store.Current()),
		keys:    newKeyMap(),
		help:    help.New(),
	}

	s.route = LoginRoute
	if !s.session.Anonymous() {
		s.route = MoviesRoute
	}
	s.active = s.mount(s.route)

	return s
}

// Init resolves the stored token's role and starts the first screen.
func (s *Shell) Init() tea.Cmd {
	return tea.Batch(s.resolveSession(), s.active.init())
}

// resolveSession re-derives identity from the stored token and binds the
// role via a profile fetch. Failure leaves the caller anonymous but keeps
// the token.
func (s *Shell) resolveSession() tea.Cmd {
	return func() tea.Msg {
		session := s.deps.Engine.ResolveSession(s.ctx, s.deps.Store.Current())
		return sessionResolvedMsg{session: session}
	}
}

// mount constructs a fresh controller for the route. Mounting always starts
// from an empty snapshot; screens re-fetch rather than share state.
func (s *Shell) mount(route Route) screen {
	s.gen++
	switch route {
	case LoginRoute:
		return newAuthModel(s.ctx, s.deps, s.gen, false)
	case RegisterRoute:
		return newAuthModel(s.ctx, s.deps, s.gen, true)
	case MoviesRoute:
		return newMoviesModel(s.ctx, s.deps, s.session, s.gen)
	case UserRoute:
		return newUserModel(s.ctx, s.deps, s.gen)
	case AdminRoute:
		return newAdminModel(s.ctx, s.deps, s.gen)
	default:
		return newAuthModel(s.ctx, s.deps, s.gen, false)
	}
}

// Update routes messages: navigation and session results are handled here,
// everything else goes to the active controller.
func (s *Shell) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return s, tea.Quit
		}

	case navigateMsg:
		return s, s.navigateTo(msg.route)

	case sessionResolvedMsg:
		s.session = msg.session
		return s, nil
	}

	active, cmd := s.active.update(msg)
	s.active = active
	return s, cmd
}

// navigateTo guards the admin route by role and remounts the target screen.
// A denied admin attempt shows a transient indicator and stays put.
func (s *Shell) navigateTo(route Route) tea.Cmd {
	if route == AdminRoute && !s.session.IsAdmin() {
		s.denied = true
		if s.deps.Logger != nil {
			s.deps.Logger.Warn("admin navigation denied", "role", s.session.Role)
		}
		return nil
	}

	s.denied = false
	s.session = models.NewSession(s.deps.Store.Current())
	s.route = route
	s.active = s.mount(route)
	return tea.Batch(s.resolveSession(), s.active.init())
}

// View renders the header bar, the active screen, and contextual help.
func (s *Shell) View() string {
	header := styles.title.Render("What a flick?!")
	if s.denied {
		header += "  " + styles.err.Render("admin access denied")
	} else if s.session.IsAdmin() {
		header += "  " + styles.help.Render("(admin)")
	}

	return header + "\n" + s.active.view(s.width) + "\n" + s.help.View(s.keys)
}
