package mongo

import "time"

// Config holds MongoDB connection settings
type Config struct {
	// URI is the MongoDB connection string (e.g., mongodb://localhost:27017)
	URI string

	// Database holds the participants and messages collections
	Database string

	// ConnectTimeout bounds connecting, pinging and index creation in New
	ConnectTimeout time.Duration
}

// DefaultConfig returns sensible defaults for MongoDB configuration
func DefaultConfig() Config {
	return Config{
		URI:            "mongodb://localhost:27017",
		Database:       "batepapo",
		ConnectTimeout: 5 * time.Second,
	}
}
