// Package ui implements the interactive terminal view of the favorites list.
package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/charlesng35/favorites/internal/client"
	"github.com/charlesng35/favorites/internal/models"
	"github.com/charlesng35/favorites/internal/view"
)

const (
	// PageSize is the number of rows requested per page.
	PageSize = 10
	// LoadMoreThreshold triggers the next page when the selection is this close to the end.
	LoadMoreThreshold = 3
)

// API is the subset of the HTTP client the view needs.
type API interface {
	List(ctx context.Context, take int, cursor *uint) (*client.Page, error)
	Create(ctx context.Context, input client.FavoriteInput) (*models.Favorite, error)
	Update(ctx context.Context, id uint, patch client.FavoritePatch) (*models.Favorite, error)
	Delete(ctx context.Context, id uint) error
}

// Mode is the screen currently shown.
type Mode int

const (
	ListMode Mode = iota
	FormMode
	ConfirmMode
)

// Model represents the TUI application state.
type Model struct {
	ctx      context.Context
	api      API
	state    *view.State
	mode     Mode
	list     list.Model
	form     formModel
	saving   bool
	deleting *models.Favorite
	spinner  spinner.Model
	help     help.Model
	keys     keyMap
	width    int
	height   int
}

// NewModel creates a TUI model backed by api.
func NewModel(ctx context.Context, api API) *Model {
	if ctx == nil {
		ctx = context.Background()
	}

	l := list.New(nil, list.NewDefaultDelegate(), 80, 20)
	l.Title = "Favorite Movies & TV Shows"
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &Model{
		ctx:     ctx,
		api:     api,
		state:   view.New(),
		mode:    ListMode,
		list:    l,
		spinner: sp,
		help:    help.New(),
		keys:    newKeyMap(),
	}
}

// State exposes the list state, mainly for tests.
func (m *Model) State() *view.State {
	return m.state
}

// Mode returns the screen currently shown.
func (m *Model) Mode() Mode {
	return m.mode
}

// Init requests the first page.
func (m *Model) Init() tea.Cmd {
	return m.load(nil)
}

// load starts a page request unless one is already in flight.
func (m *Model) load(cursor *uint) tea.Cmd {
	if !m.state.BeginLoad() {
		return nil
	}
	return tea.Batch(m.spinner.Tick, m.fetchPage(cursor))
}

func (m *Model) fetchPage(cursor *uint) tea.Cmd {
	ctx, api := m.ctx, m.api
	return func() tea.Msg {
		page, err := api.List(ctx, PageSize, cursor)
		return pageLoadedMsg{cursor: cursor, page: page, err: err}
	}
}

func (m *Model) save(form formModel) tea.Cmd {
	ctx, api := m.ctx, m.api
	if form.editing == nil {
		input := form.input()
		return func() tea.Msg {
			created, err := api.Create(ctx, input)
			return savedMsg{favorite: created, err: err}
		}
	}

	id, patch := form.editing.ID, form.patch()
	return func() tea.Msg {
		updated, err := api.Update(ctx, id, patch)
		return savedMsg{id: id, favorite: updated, err: err}
	}
}

func (m *Model) remove(id uint) tea.Cmd {
	ctx, api := m.ctx, m.api
	return func() tea.Msg {
		return deletedMsg{id: id, err: api.Delete(ctx, id)}
	}
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width-2, max(msg.Height-6, 4))
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		if !m.state.Loading && !m.saving {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case pageLoadedMsg:
		if msg.err != nil {
			m.state.FailLoad(msg.err)
			return m, nil
		}
		m.state.ApplyPage(msg.cursor, msg.page.Data, msg.page.NextCursor)
		return m, m.syncItems()

	case savedMsg:
		m.saving = false
		if msg.err != nil {
			m.state.Fail(describe(msg.err, "Failed to save"))
			return m, nil
		}
		if msg.id == 0 {
			m.state.Prepend(*msg.favorite)
			m.mode = ListMode
			cmd := m.syncItems()
			m.list.Select(0)
			return m, cmd
		}
		m.state.Patch(msg.id, *msg.favorite)
		m.mode = ListMode
		return m, m.syncItems()

	case deletedMsg:
		m.deleting = nil
		m.mode = ListMode
		if msg.err != nil {
			m.state.Fail(describe(msg.err, "Failed to delete"))
			return m, nil
		}
		m.state.Remove(msg.id)
		return m, tea.Batch(m.syncItems(), m.maybeLoadMore())

	case tea.KeyMsg:
		switch m.mode {
		case FormMode:
			return m.handleFormKeys(msg)
		case ConfirmMode:
			return m.handleConfirmKeys(msg)
		default:
			return m.handleListKeys(msg)
		}
	}

	return m, nil
}

func (m *Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.add):
		m.state.ClearError()
		m.form = newForm(nil)
		m.mode = FormMode
		return m, textinput.Blink
	case key.Matches(msg, m.keys.edit):
		if selected, ok := m.selected(); ok {
			m.state.ClearError()
			m.form = newForm(&selected)
			m.mode = FormMode
			return m, textinput.Blink
		}
		return m, nil
	case key.Matches(msg, m.keys.remove):
		if selected, ok := m.selected(); ok {
			m.deleting = &selected
			m.mode = ConfirmMode
		}
		return m, nil
	case key.Matches(msg, m.keys.reload):
		return m, m.load(nil)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, tea.Batch(cmd, m.maybeLoadMore())
}

func (m *Model) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.saving {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.back):
		m.mode = ListMode
		return m, nil
	case key.Matches(msg, m.keys.submit), msg.Type == tea.KeyEnter && m.form.lastField():
		return m, m.submit()
	case msg.Type == tea.KeyEnter, key.Matches(msg, m.keys.next):
		m.form.setFocus(m.form.focus + 1)
		return m, nil
	case key.Matches(msg, m.keys.prev):
		m.form.setFocus(m.form.focus - 1)
		return m, nil
	}

	return m, m.form.updateInput(msg)
}

func (m *Model) submit() tea.Cmd {
	if !m.form.validate() {
		return nil
	}
	m.saving = true
	return tea.Batch(m.spinner.Tick, m.save(m.form))
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.yes):
		if m.deleting == nil {
			m.mode = ListMode
			return m, nil
		}
		return m, m.remove(m.deleting.ID)
	case key.Matches(msg, m.keys.no):
		m.deleting = nil
		m.mode = ListMode
	}
	return m, nil
}

func (m *Model) selected() (models.Favorite, bool) {
	item, ok := m.list.SelectedItem().(favoriteItem)
	if !ok {
		return models.Favorite{}, false
	}
	return item.favorite, true
}

func (m *Model) syncItems() tea.Cmd {
	index := m.list.Index()
	cmd := m.list.SetItems(toItems(m.state.Favorites))
	if n := len(m.state.Favorites); n > 0 {
		m.list.Select(min(index, n-1))
	}
	return cmd
}

func (m *Model) maybeLoadMore() tea.Cmd {
	if !m.state.ShouldLoadMore(m.list.Index(), LoadMoreThreshold) {
		return nil
	}
	return m.load(m.state.NextCursor)
}

// View renders the current screen.
func (m *Model) View() string {
	var b strings.Builder

	switch m.mode {
	case FormMode:
		b.WriteString(m.form.view())
		if m.saving {
			b.WriteString("\n" + m.spinner.View() + " Saving...")
		}
		b.WriteString(m.errorLine())
		b.WriteString("\n" + m.help.View(formHelp{keys: m.keys}))
		return b.String()

	case ConfirmMode:
		if m.deleting != nil {
			body := fmt.Sprintf("Delete Favorite?\n\nAre you sure you want to delete %s?\nThis action cannot be undone.", styles.warn.Render(m.deleting.Title))
			b.WriteString(styles.dialog.Render(body))
		}
		b.WriteString("\n" + m.help.View(confirmHelp{keys: m.keys}))
		return b.String()
	}

	switch {
	case m.state.Loading && !m.state.Loaded:
		b.WriteString(m.spinner.View() + " Loading...\n")
	case m.state.Loaded && len(m.state.Favorites) == 0:
		b.WriteString(styles.title.Render("Favorite Movies & TV Shows"))
		b.WriteString("\nNo favorites yet. Press a to add one.\n")
	default:
		b.WriteString(m.list.View())
		b.WriteString("\n")
	}

	if m.state.LoadingMore() {
		b.WriteString(m.spinner.View() + " Loading more...\n")
	}
	b.WriteString(m.errorLine())
	b.WriteString("\n" + m.help.View(m.keys))
	return b.String()
}

func (m *Model) errorLine() string {
	if m.state.Err == nil {
		return ""
	}
	return "\n" + styles.err.Render(m.state.Err.Error()) + "\n"
}

// describe prefers the server's message and otherwise falls back to a fixed text.
func describe(err error, fallback string) error {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return errors.New(apiErr.Message)
	}
	return errors.New(fallback)
}
