// Package logtail reads the tail of the client log file for the log overlay.
//
// Read returns the last N lines of a file using a ring buffer, so memory use
// is bounded by N regardless of file size:
//
//	lines, err := logtail.Read(cfg.LogFile, 400)
//
// Parse understands the key=value lines written by logrus' text formatter
// (time, level, msg and any extra fields) and Filter drops lines below a
// severity. Lines that do not parse are passed through unchanged.
package logtail
