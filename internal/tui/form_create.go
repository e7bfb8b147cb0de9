package tui

import (
	"github.com/ametelin/localtodo/models"
	"github.com/charmbracelet/bubbles/textinput"
)

var formPriorities = []models.Priority{
	models.PriorityLow,
	models.PriorityMedium,
	models.PriorityHigh,
}

type formCreateModel struct {
	inputs      []textinput.Model
	focus       int
	priorityIdx int
}

func newFormCreateModel() formCreateModel {
	inputs := make([]textinput.Model, 2)
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].Width = 50
	}
	inputs[0].Focus()

	// medium by default
	return formCreateModel{inputs: inputs, priorityIdx: 1}
}

func (m formCreateModel) toRequest() models.CreateTodoRequest {
	return models.CreateTodoRequest{
		Title:       m.inputs[0].Value(),
		Description: m.inputs[1].Value(),
		Priority:    formPriorities[m.priorityIdx],
	}
}

func (m formCreateModel) View() string {
	out := titleStyle.Render("New todo") + "\n\n"
	out += "Title:       [" + m.inputs[0].View() + "]\n"
	out += "Description: [" + m.inputs[1].View() + "]\n"
	out += "Priority:     "
	for i, p := range formPriorities {
		mark := "  "
		if i == m.priorityIdx {
			mark = "* "
		}
		out += mark + string(p) + "  "
	}
	out += "\n\n" + helpStyle.Render("esc cancel  tab next field  left/right priority  enter save")
	return out
}
