package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/whataflick/flick/internal/models"
	"github.com/whataflick/flick/internal/shared"
	"github.com/whataflick/flick/internal/tasks"
)

// userModel is the profile controller: the caller's identity plus their
// review history. Profile and reviews load concurrently and fail
// independently. Account deletion sits behind an explicit confirm step.
type userModel struct {
	ctx  context.Context
	deps Context
	gen  int

	profile    *models.Profile
	profileErr error
	reviews    list.Model
	loading    bool
	errLine    string
	confirming bool
}

type profileLoadedMsg struct {
	gen     int
	profile *models.Profile
	err     error
}

type ownReviewsMsg struct {
	gen     int
	entries []tasks.ReviewEntry
	err     error
}

type reviewDeletedMsg struct {
	gen int
	id  string
	err error
}

type accountDeletedMsg struct {
	gen int
	err error
}

func newUserModel(ctx context.Context, deps Context, gen int) *userModel {
	reviews := list.New(nil, list.NewDefaultDelegate(), 0, 14)
	reviews.Title = "Your reviews"
	reviews.SetShowStatusBar(false)
	reviews.SetShowHelp(false)

	return &userModel{
		ctx:     ctx,
		deps:    deps,
		gen:     gen,
		reviews: reviews,
		loading: true,
	}
}

func (m *userModel) init() tea.Cmd {
	gen := m.gen
	return tea.Batch(
		func() tea.Msg {
			profile, err := m.deps.Backend.Profile(m.ctx)
			return profileLoadedMsg{gen: gen, profile: profile, err: err}
		},
		func() tea.Msg {
			reviews, err := m.deps.Backend.OwnReviews(m.ctx)
			if err != nil {
				return ownReviewsMsg{gen: gen, err: err}
			}
			return ownReviewsMsg{gen: gen, entries: m.deps.Engine.EnrichReviews(m.ctx, reviews)}
		},
	)
}

func (m *userModel) update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.reviews.SetSize(msg.Width, msg.Height-10)
		return m, nil

	case profileLoadedMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.profile = msg.profile
		m.profileErr = msg.err
		return m, nil

	case ownReviewsMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.errLine = msg.err.Error()
			return m, nil
		}
		items := make([]list.Item, len(msg.entries))
		for i, entry := range msg.entries {
			items[i] = reviewItem{entry: entry}
		}
		return m, m.reviews.SetItems(items)

	case reviewDeletedMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		if msg.err != nil {
			m.errLine = "delete failed: " + msg.err.Error()
			return m, nil
		}
		// Drop the deleted review from the local snapshot by id.
		kept := make([]list.Item, 0, len(m.reviews.Items()))
		for _, item := range m.reviews.Items() {
			if r, ok := item.(reviewItem); ok && r.entry.Review.ID == msg.id {
				continue
			}
			kept = append(kept, item)
		}
		m.errLine = ""
		return m, m.reviews.SetItems(kept)

	case accountDeletedMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		if msg.err != nil {
			m.confirming = false
			m.errLine = "account deletion failed: " + msg.err.Error()
			return m, nil
		}
		if err := m.deps.Store.Clear(); err != nil {
			m.errLine = err.Error()
			return m, nil
		}
		return m, navigate(LoginRoute)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.reviews, cmd = m.reviews.Update(msg)
	return m, cmd
}

func (m *userModel) handleKey(msg tea.KeyMsg) (screen, tea.Cmd) {
	keys := newKeyMap()

	if m.confirming {
		switch {
		case key.Matches(msg, keys.yes):
			gen := m.gen
			return m, func() tea.Msg {
				return accountDeletedMsg{gen: gen, err: m.deps.Backend.DeleteAccount(m.ctx)}
			}
		case key.Matches(msg, keys.no), key.Matches(msg, keys.back):
			m.confirming = false
			return m, nil
		}
		return m, nil
	}

	if m.reviews.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.reviews, cmd = m.reviews.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, keys.delete):
		if item, ok := m.reviews.SelectedItem().(reviewItem); ok {
			gen, id := m.gen, item.entry.Review.ID
			return m, func() tea.Msg {
				return reviewDeletedMsg{gen: gen, id: id, err: m.deps.Backend.DeleteReview(m.ctx, id)}
			}
		}
		return m, nil
	case key.Matches(msg, keys.open):
		if item, ok := m.reviews.SelectedItem().(reviewItem); ok && item.entry.HasPoster {
			url := item.entry.PosterURL
			return m, func() tea.Msg {
				_ = shared.OpenBrowser(url)
				return nil
			}
		}
		return m, nil
	case key.Matches(msg, keys.destroy):
		m.confirming = true
		return m, nil
	case key.Matches(msg, keys.logout):
		if err := m.deps.Store.Clear(); err != nil {
			m.errLine = err.Error()
			return m, nil
		}
		return m, navigate(LoginRoute)
	case key.Matches(msg, keys.movies):
		return m, navigate(MoviesRoute)
	case key.Matches(msg, keys.admin):
		return m, navigate(AdminRoute)
	case key.Matches(msg, keys.quit):
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.reviews, cmd = m.reviews.Update(msg)
	return m, cmd
}

func (m *userModel) view(width int) string {
	var b strings.Builder

	switch {
	case m.profile != nil:
		b.WriteString(fmt.Sprintf("%s <%s>  %s\n\n",
			styles.ok.Render(m.profile.Name), m.profile.Email, styles.help.Render(m.profile.Role)))
	case m.profileErr != nil:
		b.WriteString(styles.warn.Render("profile unavailable: "+m.profileErr.Error()) + "\n\n")
	default:
		b.WriteString(styles.help.Render("loading profile...") + "\n\n")
	}

	if m.confirming {
		b.WriteString(styles.err.Render("Delete your account and all of your reviews?") + " " +
			styles.help.Render("y confirm • n cancel"))
		return b.String()
	}

	if m.loading {
		b.WriteString(styles.help.Render("loading reviews..."))
	} else {
		b.WriteString(m.reviews.View())
	}

	if m.errLine != "" {
		b.WriteString("\n" + styles.err.Render(m.errLine))
	}

	b.WriteString("\n" + styles.help.Render("x delete review • o open poster • L logout • D delete account"))
	return b.String()
}
