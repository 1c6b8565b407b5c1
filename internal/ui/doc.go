// Package ui provides the terminal interface for pitchdeck.
//
// # Architecture Overview
//
// The UI is a single Bubble Tea model. Business state lives in two
// controllers it owns: form.Controller for the document form and
// draft.Controller for the AI drafting dialog. The model only holds widget
// state (text areas, inputs, the log viewport) and forwards user intent to the
// controllers. Network calls run as tea.Cmds and come back as epoch-tagged
// messages, so a result that arrives after a reset is dropped.
//
// # Package Structure
//
//   - app.go: Model, Init/Update/View and key routing
//   - form_view.go: form screen, logo picker and text editing
//   - draft_view.go: AI drafting dialog
//   - health.go, header.go: backend check and title bar
//   - logs.go: client log overlay backed by logtail
//   - help.go, keys.go: key bindings and the help overlay
//   - theme.go: color themes
//
// # Key Features
//
//   - Three-step form: logo, style card, text
//   - AI drafting with example prompts; accepted text replaces the form text
//   - Success flash after a saved document, cleared by a timer
//   - Log overlay with a warnings-only filter
//   - Theme cycling saved to the preferences file
package ui
