package store

// Config holds configuration for the Store.
type Config struct {
	// UniqueTable is the name of the unique constraints table.
	// Default: "warehouse_unique_constraints"
	UniqueTable string

	// ScanSegments is the number of parallel segments used by Scan.
	// Higher values finish full-table scans faster on large tables at the
	// cost of more concurrent read capacity.
	// Default: 1 (sequential scan)
	// Max: 64
	ScanSegments int
}

// DefaultConfig returns sensible defaults for small datasets.
func DefaultConfig() Config {
	return Config{
		UniqueTable:  "warehouse_unique_constraints",
		ScanSegments: 1,
	}
}

// validate ensures config values are within acceptable bounds.
func (c *Config) validate() {
	if c.UniqueTable == "" {
		c.UniqueTable = "warehouse_unique_constraints"
	}
	if c.ScanSegments < 1 {
		c.ScanSegments = 1
	}
	if c.ScanSegments > 64 {
		c.ScanSegments = 64
	}
}
