package webhook

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

var (
	ErrSecretMismatch = errors.New("secret token mismatch")
	ErrIPNotAllowed   = errors.New("ip not whitelisted")
)

// SecurityValidator validates webhook requests
type SecurityValidator struct {
	config SecurityConfig
	nets   []*net.IPNet

	mu   sync.Mutex // guards check-and-add on seen
	seen *expirable.LRU[int64, struct{}]
}

func NewSecurityValidator(config SecurityConfig) *SecurityValidator {
	size := config.DedupeSize
	if size <= 0 {
		size = defaultDedupeSize
	}
	ttl := config.DedupeTTL
	if ttl <= 0 {
		ttl = defaultDedupeTTL
	}

	v := &SecurityValidator{
		config: config,
		seen:   expirable.NewLRU[int64, struct{}](size, nil, ttl),
	}

	for _, allowed := range config.AllowedIPs {
		if !strings.Contains(allowed, "/") {
			continue
		}
		if _, ipNet, err := net.ParseCIDR(allowed); err == nil {
			v.nets = append(v.nets, ipNet)
		}
	}

	return v
}

// ValidateSecretToken verifies the X-Telegram-Bot-Api-Secret-Token header value.
func (v *SecurityValidator) ValidateSecretToken(token string) error {
	if v.config.Secret == "" {
		return nil
	}

	if subtle.ConstantTimeCompare([]byte(token), []byte(v.config.Secret)) != 1 {
		return ErrSecretMismatch
	}

	return nil
}

// ValidateIPAddress checks if request IP is whitelisted
func (v *SecurityValidator) ValidateIPAddress(r *http.Request) error {
	if len(v.config.AllowedIPs) == 0 {
		return nil // No IP restriction
	}

	ip := extractIP(r)

	for _, allowedIP := range v.config.AllowedIPs {
		if ip == allowedIP {
			return nil
		}
	}

	parsed := net.ParseIP(ip)
	if parsed != nil {
		for _, ipNet := range v.nets {
			if ipNet.Contains(parsed) {
				return nil
			}
		}
	}

	return fmt.Errorf("%w: %s", ErrIPNotAllowed, ip)
}

// FirstDelivery reports whether updateID has not been seen within the TTL and remembers it.
// Telegram redelivers an update when the previous delivery was not acknowledged in time.
// Updates without an id (0) cannot be told apart and are always accepted.
func (v *SecurityValidator) FirstDelivery(updateID int64) bool {
	if updateID == 0 {
		return true
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if v.seen.Contains(updateID) {
		return false
	}
	v.seen.Add(updateID, struct{}{})
	return true
}

// extractIP extracts client IP from request
func extractIP(r *http.Request) string {
	// Check X-Forwarded-For header (proxy/load balancer)
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		ips := strings.Split(xff, ",")
		return strings.TrimSpace(ips[0])
	}

	// Check X-Real-IP header
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	// Fallback to RemoteAddr
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
