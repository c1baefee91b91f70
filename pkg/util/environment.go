package util

import (
	"os"
	"strings"
)

func GetEnvironmentVariables() map[string]string {
	environmentVariables := map[string]string{}

	for _, variable := range os.Environ() {
		key, value, _ := strings.Cut(variable, "=")

		environmentVariables[key] = value
	}

	return environmentVariables
}

// GetPrefixedEnvironmentVariables returns the variables starting with prefix, keyed without it
func GetPrefixedEnvironmentVariables(prefix string) map[string]string {
	environmentVariables := map[string]string{}

	for key, value := range GetEnvironmentVariables() {
		if name, found := strings.CutPrefix(key, prefix); found && name != "" {
			environmentVariables[name] = value
		}
	}

	return environmentVariables
}
