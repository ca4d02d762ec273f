package tui

import "github.com/newecon/cleanbrief/internal/render"

type articlesLoadedMsg struct {
	cards []render.Card
}

type articlesErrMsg struct {
	err error
}

type briefingLoadedMsg struct {
	view  render.BriefingView
	found bool
}

type briefingErrMsg struct {
	err error
}
