//go:build gcloud

package config

import "errors"

func ValidateForRun(cfg *Config) error {
	if cfg.GCPProjectID == "" {
		return errors.New("GOOGLE_CLOUD_PROJECT or GCLOUD_PROJECT_ID environment variable is required")
	}
	return nil
}
