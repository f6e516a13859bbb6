package config

import (
	"os"
	"strconv"
	"strings"
)

// Helper function to get environment variable with fallback default value
func GetEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// Helper function to get environment variable as integer with fallback
func GetEnvAsInt(key string, fallback int) int {
	valueStr := GetEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

// GetEnvAsClock reads an "HH:MM" value (e.g. LATE_CUTOFF=11:00). Malformed
// values fall back to the defaults.
func GetEnvAsClock(key string, fallbackHour, fallbackMinute int) (int, int) {
	value := GetEnv(key, "")
	parts := strings.SplitN(value, ":", 2)
	if len(parts) != 2 {
		return fallbackHour, fallbackMinute
	}
	hour, err1 := strconv.Atoi(parts[0])
	minute, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return fallbackHour, fallbackMinute
	}
	return hour, minute
}
