package importer

import "time"

const (
	defaultFlushSize     = 10_000
	defaultFlushInterval = 5 * time.Second
	defaultRPS           = 10
)
