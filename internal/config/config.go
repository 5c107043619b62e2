package config

import (
	"crypto/rand"
	"encoding/base64"
	"log/slog"
	"os"
	"strconv"
)

type Config struct {
	Port         string
	DBPath       string
	UploadDir    string
	CSRFKey      []byte
	SessionKey   []byte
	CookieDomain string
	CookieSecure bool
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:         getEnv("PORT", "8080"),
		DBPath:       getEnv("DB_PATH", "./minimart.db"),
		UploadDir:    getEnv("UPLOAD_DIR", "static/uploads"),
		CookieDomain: getEnv("COOKIE_DOMAIN", ""),
		CookieSecure: getEnv("COOKIE_SECURE", "false") == "true",
	}

	cfg.SessionKey = loadKey("SESSION_KEY")
	cfg.CSRFKey = loadKey("CSRF_KEY")

	if _, err := strconv.Atoi(cfg.Port); err != nil {
		slog.Error("Invalid PORT environment variable. Falling back to default.", "PORT", os.Getenv("PORT"))
		cfg.Port = "8080"
	}

	return cfg, nil
}

// loadKey reads a base64 32-byte signing key from the environment. When
// unset or invalid it generates a random one, which invalidates sessions
// on every restart and must not be relied on in production.
func loadKey(name string) []byte {
	raw := os.Getenv(name)
	if raw == "" {
		slog.Warn("Signing key not set, generating a random one for this run. Set it in production!", "key", name)
		return randomBytes(32)
	}
	decoded, err := base64.StdEncoding.DecodeString(raw)
	if err != nil || len(decoded) < 32 {
		slog.Warn("Signing key invalid or shorter than 32 bytes, generating a random one. Set a secure key in production!", "key", name)
		return randomBytes(32)
	}
	return decoded
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func randomBytes(n int) []byte {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand failing means the platform is broken; refuse to
		// continue with a guessable key.
		panic("config: unable to read random bytes: " + err.Error())
	}
	return b
}
