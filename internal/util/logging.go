// Package util provides common utilities: logging helpers, data-directory
// resolution, and small value conversions.
package util

import "log"

// LogError logs an error with context if it is non-nil.
func LogError(context string, err error) {
	if err != nil {
		log.Printf("%s: %v", context, err)
	}
}

// Logf logs a formatted diagnostic line. Used for benign events (rejected
// timer starts, reconciled background time) that are worth a trace but are
// not errors.
func Logf(format string, args ...any) {
	log.Printf(format, args...)
}
