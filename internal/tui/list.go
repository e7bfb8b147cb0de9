package tui

import (
	"fmt"

	"github.com/ametelin/localtodo/models"
	"github.com/charmbracelet/bubbles/spinner"
)

type listModel struct {
	todos   []models.Todo
	idx     int
	loading bool
	syncing bool
	pending int
	spinner spinner.Model
	status  string
}

func newListModel() listModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	return listModel{spinner: s, loading: true}
}

func (m listModel) current() (models.Todo, bool) {
	if len(m.todos) == 0 || m.idx < 0 || m.idx >= len(m.todos) {
		return models.Todo{}, false
	}
	return m.todos[m.idx], true
}

func priorityMark(p models.Priority) string {
	switch p {
	case models.PriorityHigh:
		return "!"
	case models.PriorityLow:
		return "."
	default:
		return "-"
	}
}

func (m listModel) View() string {
	header := titleStyle.Render("localtodo")
	if m.pending > 0 {
		header += helpStyle.Render(fmt.Sprintf("  (%d pending)", m.pending))
	}
	if m.syncing {
		header += "  " + m.spinner.View()
	}
	out := header + "\n\n"

	if m.loading {
		out += "Loading...\n"
	} else if len(m.todos) == 0 {
		out += "No todos yet. Press n to add one.\n"
	} else {
		for i, todo := range m.todos {
			cursor := "  "
			if i == m.idx {
				cursor = "> "
			}
			box := "[ ]"
			title := todo.Title
			if todo.Completed {
				box = "[x]"
				title = doneStyle.Render(title)
			} else if todo.Priority == models.PriorityHigh {
				title = highStyle.Render(title)
			}
			out += fmt.Sprintf("%s%s %s %s\n", cursor, box, priorityMark(todo.Priority), title)
		}
	}

	if m.status != "" {
		out += "\n" + m.status + "\n"
	}

	out += "\n" + helpStyle.Render("enter toggle  n new  d delete  x clear done  s sync  c copy  q quit")
	return out
}
