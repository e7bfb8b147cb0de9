package tui

import (
	"github.com/ametelin/localtodo/models"
)

type listLoadedMsg struct {
	todos   []models.Todo
	pending int
	err     error
}

type syncDoneMsg struct {
	err error
}

type todoSavedMsg struct {
	err error
}

type todoDeletedMsg struct {
	err error
}

type clearedMsg struct {
	removed int
	err     error
}

type copiedMsg struct{}

type clearStatusMsg struct{}
