package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

const (
	defaultHTTPAddr = ":8080"
	defaultGRPCAddr = ":9090"
)

// ServerEnv is the server's runtime configuration.
type ServerEnv struct {
	HTTPAddr  string // KPL_HTTP_ADDR
	GRPCAddr  string // KPL_GRPC_ADDR
	ConfigDir string // KPL_CONFIG_DIR, empty serves the built-in roster
	League    string // KPL_LEAGUE
	Fixture   string // KPL_FIXTURE
	LogLevel  string // KPL_LOG_LEVEL
	DevLog    bool   // KPL_DEV_LOG=1
}

// LoadServerEnv reads the given .env files into the process environment
// (existing variables win) and then reads ServerEnv from it. Missing files
// are skipped.
func LoadServerEnv(files ...string) (ServerEnv, error) {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return ServerEnv{}, fmt.Errorf("load %s: %w", f, err)
		}
	}
	env := ServerEnv{
		HTTPAddr:  getenv("KPL_HTTP_ADDR", defaultHTTPAddr),
		GRPCAddr:  getenv("KPL_GRPC_ADDR", defaultGRPCAddr),
		ConfigDir: os.Getenv("KPL_CONFIG_DIR"),
		League:    os.Getenv("KPL_LEAGUE"),
		Fixture:   os.Getenv("KPL_FIXTURE"),
		LogLevel:  getenv("KPL_LOG_LEVEL", "info"),
		DevLog:    os.Getenv("KPL_DEV_LOG") == "1",
	}
	if env.Fixture != "" && env.League == "" {
		return ServerEnv{}, fmt.Errorf("KPL_FIXTURE %q needs KPL_LEAGUE", env.Fixture)
	}
	return env, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
