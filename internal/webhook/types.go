package webhook

import "time"

// SecurityConfig holds webhook security settings
type SecurityConfig struct {
	Secret     string        // secret_token given to setWebhook; empty disables the check
	AllowedIPs []string      // IP/CIDR whitelist (optional)
	DedupeSize int           // max remembered update IDs
	DedupeTTL  time.Duration // how long an update ID is remembered
}

const (
	defaultDedupeSize = 10000
	defaultDedupeTTL  = 10 * time.Minute
)
