package config

const (
	// DefaultDatabasePath is the default path for the application database
	DefaultDatabasePath = "./libreria.db"

	// DefaultCORSOrigin is the frontend dev server origin
	DefaultCORSOrigin = "http://localhost:5173"
)
