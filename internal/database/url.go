package database

import "strings"

// InferDriver guesses the driver from a connection string. Anything that is
// not recognisably postgres or mysql is treated as a sqlite path.
func InferDriver(dsn string) string {
	lower := strings.ToLower(strings.TrimSpace(dsn))
	switch {
	case strings.HasPrefix(lower, "postgres://"), strings.HasPrefix(lower, "postgresql://"):
		return "postgres"
	case strings.HasPrefix(lower, "mysql://"):
		return "mysql"
	case strings.Contains(lower, "@tcp("), strings.Contains(lower, "@unix("):
		return "mysql"
	case strings.HasPrefix(lower, "host=") || strings.Contains(lower, " dbname="):
		return "postgres"
	default:
		return "sqlite"
	}
}
