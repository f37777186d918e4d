package cli

import "os"

// Config holds CLI configuration
type Config struct {
	ServerURL string
	AdminUser string
	AdminPass string
	Output    string
	Verbose   bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL: getEnvOrDefault("SLGAME_SERVER", "http://localhost:8080"),
		AdminUser: os.Getenv("SLGAME_ADMIN_USER"),
		AdminPass: os.Getenv("SLGAME_ADMIN_PASS"),
		Output:    "text",
		Verbose:   false,
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
