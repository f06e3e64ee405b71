package cli

import (
	"os"
	"path/filepath"
	"strings"
)

// Config holds CLI configuration
type Config struct {
	ServerURL string
	User      string
	UserFile  string
	Output    string
	Verbose   bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL: getEnvOrDefault("BATEPAPO_SERVER", "http://localhost:5000"),
		User:      os.Getenv("BATEPAPO_USER"),
		UserFile:  getEnvOrDefault("BATEPAPO_USER_FILE", defaultUserFile()),
		Output:    "text",
		Verbose:   false,
	}
}

// LoadUser loads the participant name from file if not already set
func (c *Config) LoadUser() error {
	if c.User != "" {
		return nil
	}

	data, err := os.ReadFile(c.UserFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // Not joined yet
		}
		return err
	}

	c.User = strings.TrimSpace(string(data))
	return nil
}

// SaveUser saves the participant name to the user file
func (c *Config) SaveUser(name string) error {
	c.User = name

	dir := filepath.Dir(c.UserFile)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	return os.WriteFile(c.UserFile, []byte(name), 0600)
}

func defaultUserFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".batepapo/user"
	}
	return filepath.Join(home, ".batepapo", "user")
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
