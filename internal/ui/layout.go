package ui

import "time"

// Layout sizes.
const (
	// LayoutMaxWidth caps the width of the form column.
	LayoutMaxWidth = 110

	// ModalWidth is the width of the drafting, logo and help dialogs.
	ModalWidth = 64

	TextAreaHeight = 6
	PromptHeight   = 4

	// LogoNameLimit is the number of runes of a logo name shown before it is
	// cut with "...".
	LogoNameLimit = 20
)

// Log overlay limits.
const (
	// LogTailLines is the number of lines read from the end of the log file.
	LogTailLines = 400
)

// HealthCheckTimeout bounds the startup backend check. Document and draft
// requests are not bounded by it.
const HealthCheckTimeout = 5 * time.Second
