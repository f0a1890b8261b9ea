package tle

import "time"

// ElementRecord is one satellite's three-line element set: the free-text
// name line plus the two fixed-format element lines.
type ElementRecord struct {
	NoradID int
	Name    string
	Epoch   time.Time
	Line1   string
	Line2   string
}
