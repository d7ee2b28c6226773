package config

import (
	"os"
	"strings"
)

// GuardStaleCompletions makes workflows tag each FERB request with a
// monotonically increasing token so an older completion never overwrites
// a newer one. Disable to keep last-arrival-wins behaviour.
//
// Set via env:
// - GUARD_STALE_COMPLETIONS=false
func GuardStaleCompletions() bool {
	return EnvBoolDefault("GUARD_STALE_COMPLETIONS", true)
}

// AuditEnabled turns on the MySQL audit trail of screening actions.
//
// Set via env:
// - AUDIT_ENABLED=true
func AuditEnabled() bool {
	return EnvBoolDefault("AUDIT_ENABLED", false)
}

// EventsEnabled turns on Pub/Sub intake events.
//
// Set via env:
// - INTAKE_EVENTS_ENABLED=true
func EventsEnabled() bool {
	return EnvBoolDefault("INTAKE_EVENTS_ENABLED", false)
}

func EnvBoolDefault(key string, def bool) bool {
	val := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	switch val {
	case "true", "1", "yes", "y", "on":
		return true
	case "false", "0", "no", "n", "off":
		return false
	default:
		return def
	}
}
