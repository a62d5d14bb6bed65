//go:build !gcloud

package config

// ValidateForRun has nothing to enforce locally; telemetry exporters are
// optional and the schedule settings are checked at load time.
func ValidateForRun(_ *Config) error {
	return nil
}
