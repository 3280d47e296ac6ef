// Package logtail reads the end of framelist's own log file.
//
// The log is written by log/slog's text handler (see internal/app), one
// record per line with a "level=" field. Read returns the last lines without
// loading the whole file into memory; Level and AtLeast pick records by
// level. The UI uses them for its log overlay and colors each line by level.
package logtail
