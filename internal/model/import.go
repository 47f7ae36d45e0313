package model

import "time"

// ImportRecord describes one dataset snapshot written to storage.
type ImportRecord struct {
	ImportedAt time.Time
	Source     string
	ID         int64
	Rows       int
}
