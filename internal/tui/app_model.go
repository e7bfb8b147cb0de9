package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ametelin/localtodo/internal/service"
	"github.com/ametelin/localtodo/models"
)

type screen int

const (
	screenList screen = iota
	screenCreate
)

type appModel struct {
	ctx           context.Context
	services      *service.ClientServices
	currentScreen screen

	list listModel
	form formCreateModel

	showError    bool
	errorOverlay errorOverlayModel
	showConfirm  bool
	confirm      confirmModel

	pendingDelete string
	pendingClear  bool
}

func newAppModel(ctx context.Context, services *service.ClientServices) appModel {
	return appModel{
		ctx:      ctx,
		services: services,
		list:     newListModel(),
	}
}

func (m appModel) Init() tea.Cmd {
	return m.cmdLoadList()
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.showError {
			if key.Matches(msg, keys.enter) || key.Matches(msg, keys.esc) {
				m.showError = false
				m.errorOverlay.message = ""
			}
			return m, nil
		}
		if m.showConfirm {
			if key.Matches(msg, keys.yes) {
				m.showConfirm = false
				if m.pendingClear {
					m.pendingClear = false
					return m, m.cmdClearCompleted()
				}
				if m.pendingDelete != "" {
					return m, m.cmdDeleteTodo(m.pendingDelete)
				}
				return m, nil
			}
			if key.Matches(msg, keys.no) || key.Matches(msg, keys.esc) {
				m.showConfirm = false
				m.pendingDelete = ""
				m.pendingClear = false
			}
			return m, nil
		}
	case listLoadedMsg:
		m.list.loading = false
		if msg.err != nil {
			m.showErrorf(msg.err.Error())
			return m, nil
		}
		m.list.todos = msg.todos
		m.list.pending = msg.pending
		if m.list.idx >= len(m.list.todos) {
			m.list.idx = len(m.list.todos) - 1
		}
		if m.list.idx < 0 {
			m.list.idx = 0
		}
		return m, nil
	case syncDoneMsg:
		m.list.syncing = false
		if msg.err != nil {
			m.showErrorf("Server unreachable, changes will sync later")
		}
		return m, m.cmdLoadList()
	case todoSavedMsg:
		if msg.err != nil {
			m.showErrorf(msg.err.Error())
			return m, nil
		}
		m.currentScreen = screenList
		return m, m.cmdLoadList()
	case todoDeletedMsg:
		if msg.err != nil {
			m.showErrorf(msg.err.Error())
			return m, nil
		}
		m.pendingDelete = ""
		return m, m.cmdLoadList()
	case clearedMsg:
		if msg.err != nil {
			m.showErrorf(msg.err.Error())
			return m, nil
		}
		m.list.status = fmt.Sprintf("Cleared %d completed", msg.removed)
		return m, tea.Batch(m.cmdLoadList(), cmdClearStatus())
	case copiedMsg:
		m.list.status = "Copied!"
		return m, cmdClearStatus()
	case clearStatusMsg:
		m.list.status = ""
		return m, nil
	case tea.WindowSizeMsg:
		return m, nil
	}

	switch m.currentScreen {
	case screenList:
		return m.updateList(msg)
	case screenCreate:
		return m.updateCreate(msg)
	}

	return m, nil
}

func (m appModel) View() string {
	var body string
	switch m.currentScreen {
	case screenList:
		body = m.list.View()
	case screenCreate:
		body = m.form.View()
	}

	if m.showConfirm {
		body += "\n\n" + m.confirm.View()
	}
	if m.showError {
		body += "\n\n" + m.errorOverlay.View()
	}

	return appStyle.Render(body)
}

func (m *appModel) showErrorf(message string) {
	m.showError = true
	m.errorOverlay.message = message
}

func (m appModel) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.up):
			if m.list.idx > 0 {
				m.list.idx--
			}
		case key.Matches(msg, keys.down):
			if m.list.idx < len(m.list.todos)-1 {
				m.list.idx++
			}
		case key.Matches(msg, keys.enter):
			todo, ok := m.list.current()
			if !ok {
				return m, nil
			}
			return m, m.cmdToggleTodo(todo.ID)
		case key.Matches(msg, keys.newItem):
			m.form = newFormCreateModel()
			m.currentScreen = screenCreate
		case key.Matches(msg, keys.delete):
			todo, ok := m.list.current()
			if !ok {
				return m, nil
			}
			m.showConfirm = true
			m.confirm.message = "Delete \"" + todo.Title + "\"?"
			m.pendingDelete = todo.ID
		case key.Matches(msg, keys.clear):
			m.showConfirm = true
			m.confirm.message = "Clear all completed todos?"
			m.pendingClear = true
		case key.Matches(msg, keys.sync):
			if m.list.syncing {
				return m, nil
			}
			m.list.syncing = true
			return m, tea.Batch(m.list.spinner.Tick, m.cmdSync())
		case key.Matches(msg, keys.copy):
			todo, ok := m.list.current()
			if !ok {
				return m, nil
			}
			return m, cmdCopyToClipboard(todo.ID)
		case key.Matches(msg, keys.quit):
			return m, tea.Quit
		}
	case spinner.TickMsg:
		if m.list.syncing {
			var cmd tea.Cmd
			m.list.spinner, cmd = m.list.spinner.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

func (m appModel) updateCreate(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			m.currentScreen = screenList
			return m, nil
		case key.Matches(keyMsg, keys.tab):
			m.form = focusNextCreate(m.form)
			return m, nil
		case key.Matches(keyMsg, keys.backtab):
			m.form = focusPrevCreate(m.form)
			return m, nil
		case key.Matches(keyMsg, keys.left):
			if m.form.priorityIdx > 0 {
				m.form.priorityIdx--
			}
			return m, nil
		case key.Matches(keyMsg, keys.right):
			if m.form.priorityIdx < len(formPriorities)-1 {
				m.form.priorityIdx++
			}
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			if strings.TrimSpace(m.form.inputs[0].Value()) == "" {
				m.showErrorf("Title is required")
				return m, nil
			}
			return m, m.cmdCreateTodo(m.form.toRequest())
		}
	}

	var cmd tea.Cmd
	m.form.inputs[m.form.focus], cmd = m.form.inputs[m.form.focus].Update(msg)
	return m, cmd
}

func (m appModel) cmdLoadList() tea.Cmd {
	todos := m.services.Todos
	return func() tea.Msg {
		items, err := todos.List(models.TodoFilter{SortOrder: "asc"})
		if err != nil {
			return listLoadedMsg{err: err}
		}
		pending, err := todos.PendingCount()
		if err != nil {
			return listLoadedMsg{err: err}
		}
		return listLoadedMsg{todos: items, pending: pending}
	}
}

func (m appModel) cmdSync() tea.Cmd {
	ctx := m.ctx
	rec := m.services.Reconciler
	return func() tea.Msg {
		return syncDoneMsg{err: rec.FullSync(ctx)}
	}
}

func (m appModel) cmdCreateTodo(req models.CreateTodoRequest) tea.Cmd {
	todos := m.services.Todos
	return func() tea.Msg {
		_, err := todos.Create(req)
		return todoSavedMsg{err: err}
	}
}

func (m appModel) cmdToggleTodo(id string) tea.Cmd {
	todos := m.services.Todos
	return func() tea.Msg {
		_, _, err := todos.Toggle(id)
		return todoSavedMsg{err: err}
	}
}

func (m appModel) cmdDeleteTodo(id string) tea.Cmd {
	todos := m.services.Todos
	return func() tea.Msg {
		_, err := todos.Delete(id)
		return todoDeletedMsg{err: err}
	}
}

func (m appModel) cmdClearCompleted() tea.Cmd {
	todos := m.services.Todos
	return func() tea.Msg {
		removed, err := todos.ClearCompleted()
		return clearedMsg{removed: removed, err: err}
	}
}

func cmdCopyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			return todoSavedMsg{err: fmt.Errorf("copy to clipboard: %w", err)}
		}
		return copiedMsg{}
	}
}

func cmdClearStatus() tea.Cmd {
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

func focusNextCreate(m formCreateModel) formCreateModel {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + 1) % len(m.inputs)
	m.inputs[m.focus].Focus()
	return m
}

func focusPrevCreate(m formCreateModel) formCreateModel {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus - 1 + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
	return m
}
