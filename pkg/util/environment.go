package util

import (
	"os"
	"strings"
)

func GetEnvironmentVariables() map[string]string {
	environmentVariables := map[string]string{}

	for _, variable := range os.Environ() {
		pair := strings.SplitN(variable, "=", 2)
		if len(pair) != 2 {
			continue
		}

		environmentVariables[pair[0]] = pair[1]
	}

	return environmentVariables
}

// EnvironmentFlag reads YES/NO style switches, anything unrecognised returns the fallback
func EnvironmentFlag(value string, fallback bool) bool {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "YES", "Y", "TRUE", "1", "ON":
		return true
	case "NO", "N", "FALSE", "0", "OFF":
		return false
	default:
		return fallback
	}
}
