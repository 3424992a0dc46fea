package config

import (
	"fmt"
	"log"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"
)

const (
	BackendRedis  = "redis"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"

	// DefaultSlotKey is the storage key the gallery has always used.
	DefaultSlotKey = "agentic-playbook-fanart-v1"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s
	RequestTimeout  time.Duration // per-request timeout (chi middleware.Timeout)

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	RosterFile     string        // path to characters.yaml
	ReloadInterval time.Duration // interval to reload the roster (default: 24h, 0 = manual only)

	// Gallery
	SlotBackend   string        // "redis" | "sqlite" | "memory"
	SlotKey       string        // name of the persisted slot
	SQLitePath    string        // database file for the sqlite backend
	IDGenerator   string        // "secure" | "pseudo"
	FlushInterval time.Duration // retry interval for failed slot writes (0 = disabled)

	// Redis
	RedisAddr             string        // ex: "localhost:6379"
	RedisUser             string        // optional
	RedisPassword         string        // optional
	RedisPasswordRequired bool          // true => require password, false => allow empty password
	RedisDB               int           // Redis DB number
	RedisDT               time.Duration // Redis dial timeout (ex: 5s)
	RedisRT               time.Duration // Redis read timeout (ex: 3s)
	RedisWT               time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait          time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout      time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize         int           // Redis connection pool size
	RedisConnectTimeout   time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval    time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold    int           // warn after this many attempts

	AllowedHosts []string // optional, restrict admin endpoints to specific Host headers
	AllowedCIDRS []string // optional, restrict admin endpoints to specific IPs/CIDRs
	TrustProxy   bool     // true => trust X-Forwarded-For headers (e.g. cloudflared)
	CORSOrigins  []string // allowed browser origins for the API ("*" = any)

	// Submissions rate limit (per client IP)
	SubmitBurst        int
	SubmitRefillPerMin int
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("CODEX_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("CODEX_SHUTDOWN_TIMEOUT", 5*time.Second),
		RequestTimeout:  mustDuration("CODEX_REQUEST_TIMEOUT", 2*time.Second),

		// Logging
		LogLevel:  getenv("CODEX_LOG_LEVEL", "info"),
		PrettyLog: mustBool("CODEX_PRETTY_LOG", true),

		// Roster
		RosterFile:     getenv("CODEX_ROSTER_FILE", "/app/characters.yaml"),
		ReloadInterval: mustDuration("CODEX_RELOAD_INTERVAL", 24*time.Hour),

		// Gallery
		SlotBackend:   oneOf("CODEX_SLOT_BACKEND", BackendRedis, BackendRedis, BackendSQLite, BackendMemory),
		SlotKey:       getenv("CODEX_SLOT_KEY", DefaultSlotKey),
		SQLitePath:    getenv("CODEX_SQLITE_PATH", "/data/codex.db"),
		IDGenerator:   oneOf("CODEX_ID_GENERATOR", "secure", "secure", "pseudo"),
		FlushInterval: mustDuration("CODEX_FLUSH_INTERVAL", time.Minute),

		// Redis settings
		RedisUser:             getenv("CODEX_REDIS_USERNAME", "default"),
		RedisPasswordRequired: mustBool("CODEX_REDIS_PASSWORD_REQUIRED", true),
		RedisPassword:         getenv("CODEX_REDIS_PASSWORD", ""),
		RedisDB:               getenvInt("CODEX_REDIS_DB", 0),
		RedisDT:               mustDuration("CODEX_REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:               mustDuration("CODEX_REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:               mustDuration("CODEX_REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:          mustDuration("CODEX_REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:      mustDuration("CODEX_REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:         getenvInt("CODEX_REDIS_POOL_SIZE", 10),
		RedisConnectTimeout:   mustDuration("CODEX_REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:    mustDuration("CODEX_REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:    getenvInt("CODEX_REDIS_WARN_THRESHOLD", 3),

		// Access restrictions
		AllowedHosts: splitAndTrim(getenv("CODEX_ALLOWED_HOSTS", "")),
		AllowedCIDRS: parseAllowedIPs(getenv("CODEX_ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("CODEX_TRUST_PROXY", true),
		CORSOrigins:  splitAndTrim(getenv("CODEX_CORS_ORIGINS", "")),

		SubmitBurst:        getenvInt("CODEX_SUBMIT_BURST", 5),
		SubmitRefillPerMin: getenvInt("CODEX_SUBMIT_REFILL_PER_MIN", 10),
	}

	if cfg.SlotBackend == BackendRedis {
		cfg.RedisAddr = requireEnv("CODEX_REDIS_ADDR")

		// Validate Redis password configuration
		if cfg.RedisPasswordRequired && cfg.RedisPassword == "" {
			panic("❌ FATAL: CODEX_REDIS_PASSWORD is required when CODEX_REDIS_PASSWORD_REQUIRED=true")
		}
	}

	if strings.TrimSpace(cfg.SlotKey) == "" {
		panic("❌ FATAL: CODEX_SLOT_KEY must not be blank")
	}
	if cfg.SubmitBurst <= 0 || cfg.SubmitRefillPerMin <= 0 {
		panic(fmt.Sprintf("❌ FATAL: submission rate limit must be positive (burst=%d, refill=%d)",
			cfg.SubmitBurst, cfg.SubmitRefillPerMin))
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		log.Printf("[DEBUG] cfg: %+v\n", cfg.Redacted())
	}

	return cfg
}

// Redacted returns a copy safe to print.
func (c *Config) Redacted() Config {
	cp := *c
	if cp.RedisPassword != "" {
		cp.RedisPassword = "***REDACTED***"
	}
	if cp.RedisUser != "" {
		cp.RedisUser = "***REDACTED***"
	}
	return cp
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

// oneOf returns the variable's value, or def when unset, and panics on
// anything outside allowed.
func oneOf(key, def string, allowed ...string) string {
	v := strings.ToLower(strings.TrimSpace(getenv(key, def)))
	if !slices.Contains(allowed, v) {
		panic(fmt.Sprintf("❌ FATAL: %s=%q is invalid (allowed: %s)", key, v, strings.Join(allowed, ", ")))
	}
	return v
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func parseAllowedIPs(allowed string) []string {
	if allowed == "" {
		return nil
	}
	ips := make([]string, 0, 4)
	for _, ip := range splitAndTrim(allowed) {
		if ip != "" {
			ips = append(ips, ip)
		}
	}
	return ips
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
