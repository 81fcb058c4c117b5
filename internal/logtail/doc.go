// Package logtail reads the tail of the songmatch log file for the Activity
// view.
//
// # Reading
//
// Read returns the last maxLines lines of a file, buffering at most twice
// that many while scanning, so memory stays bounded however large the log
// grows. A missing file
// yields no lines and no error; the log is created lazily on first write.
//
//	lines, err := logtail.Read(cfg.LogFile, 400)
//
// # Formatting
//
// The log is written by zerolog as JSON lines. Parse decodes one line into
// an Entry and Format renders it compactly:
//
//	{"level":"warn","attempt":1,"message":"transport failure, retrying"}
//	→ WRN transport failure, retrying attempt=1
//
// Extra fields are sorted by key. Lines that are not JSON are passed through
// unchanged.
package logtail
