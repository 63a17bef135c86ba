package config

import (
	"os"
	"strings"
	"time"
)

// Server captures process-level configuration. Backing services are optional:
// with nothing configured the binary runs fully in-memory with a mock
// downstream transport, which is the local development mode.
type Server struct {
	Addr          string
	RedisURL      string
	PostgresURL   string
	KafkaBrokers  []string
	AuditTopic    string
	JWTSigningKey string
	SessionTTL    time.Duration
	TransportURL  string
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("INTAKE_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	jwtSigningKey := os.Getenv("INTAKE_JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Use a default for development - should be overridden in production
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	sessionTTL := 2 * time.Hour
	if raw := os.Getenv("INTAKE_SESSION_TTL"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			sessionTTL = d
		}
	}

	auditTopic := os.Getenv("INTAKE_AUDIT_TOPIC")
	if auditTopic == "" {
		auditTopic = "intake.audit"
	}

	var brokers []string
	if raw := os.Getenv("INTAKE_KAFKA_BROKERS"); raw != "" {
		for _, b := range strings.Split(raw, ",") {
			if b = strings.TrimSpace(b); b != "" {
				brokers = append(brokers, b)
			}
		}
	}

	return Server{
		Addr:          addr,
		RedisURL:      os.Getenv("INTAKE_REDIS_URL"),
		PostgresURL:   os.Getenv("INTAKE_POSTGRES_URL"),
		KafkaBrokers:  brokers,
		AuditTopic:    auditTopic,
		JWTSigningKey: jwtSigningKey,
		SessionTTL:    sessionTTL,
		TransportURL:  os.Getenv("INTAKE_TRANSPORT_URL"),
	}
}
