package utils

import "os"

// SafeEnv returns the environment variable value for key, or fallback if
// empty. All server configuration goes through DORLOG_* variables read with
// this helper.
func SafeEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}
