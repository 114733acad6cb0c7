package config // package config loads application configuration from environment variables

import (
	"log"     // log reports configuration errors and halts execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
)

// Config holds all runtime configuration values. Each field corresponds to an
// environment variable. The struct is built once at startup and never mutated
// afterwards; every component receives it by value or holds a reference to an
// immutable copy, so no synchronization is needed.
type Config struct {
	Env          string // application environment (e.g. "dev", "prod")
	Port         string // HTTP port to listen on
	DBUser       string // database username
	DBPass       string // database password (optional)
	DBHost       string // database host address
	DBPort       string // database port number
	DBName       string // database name
	JWTSecret    string // secret used to sign JWTs
	JWTAlgorithm string // signing algorithm; validated at Load, only HS256 is implemented
	AccessTTLMin int    // access token time-to-live in minutes
	BcryptCost   int    // bcrypt cost for password hashing
}

// insecureDefaultSecret is used when SECRET_KEY is unset. It exists so the
// service can boot in development; deployments must override it. The risk is
// documented, not enforced.
const insecureDefaultSecret = "clave-insegura-solo-desarrollo"

// Load reads configuration values from environment variables and returns a
// Config. Database variables are required and missing values cause the
// program to exit with a fatal log message. Token parameters fall back to
// documented insecure defaults.
func Load() Config {
	cfg := Config{
		Env:          getenv("APP_ENV", "dev"),
		Port:         getenv("APP_PORT", "8000"),
		DBUser:       must("DB_USER"),
		DBPass:       os.Getenv("DB_PASS"), // empty allowed
		DBHost:       must("DB_HOST"),
		DBPort:       must("DB_PORT"),
		DBName:       must("DB_NAME"),
		JWTSecret:    getenv("SECRET_KEY", insecureDefaultSecret),
		JWTAlgorithm: getenv("ALGORITHM", "HS256"),
		AccessTTLMin: getenvInt("ACCESS_TOKEN_EXPIRE_MINUTES", 30),
		BcryptCost:   getenvInt("BCRYPT_COST", 10),
	}
	// Refuse to boot with an algorithm the token code does not implement.
	// Silently signing with HS256 under an ALGORITHM=RS256 deployment would
	// mislead whoever set the variable.
	if !SupportedAlgorithm(cfg.JWTAlgorithm) {
		log.Fatalf("unsupported ALGORITHM %q: only HS256 is implemented", cfg.JWTAlgorithm)
	}
	return cfg
}

// SupportedAlgorithm reports whether the token service can sign and verify
// with the named JWT algorithm.
func SupportedAlgorithm(alg string) bool {
	return alg == "HS256"
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, v)
	}
	return n
}
