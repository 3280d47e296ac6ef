package ui

import "time"

// Terminal width below which rows and the header drop detail.
const LayoutCompactWidth = 80

// Fixed chrome around the list.
const (
	headerLines = 2 // status line and indicator bar
	footerLines = 1 // key hints or the filter editor
)

// DefaultUIInterval is the default snapshot refresh interval.
const DefaultUIInterval = time.Second

// LogFetchLimit is the number of log lines the log overlay reads.
const LogFetchLimit = 500
