package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Resolver provides helper functions for applying CLI > env > default
// precedence. A setting may list several env keys; the first non-empty one
// wins, so one binary can read AppVeyor and Azure Pipelines variables alike.
type Resolver struct {
	logger *zap.Logger
}

// NewResolver creates a Resolver with the provided logger.
func NewResolver(logger *zap.Logger) Resolver {
	return Resolver{logger: logger}
}

func (r Resolver) logConflict(setting, envKey, envVal, cliVal string) {
	if r.logger == nil {
		return
	}
	r.logger.Warn(
		"config: conflict for "+setting,
		zap.String("envKey", envKey),
		zap.String("env", envVal),
		zap.String("cli", cliVal),
		zap.String("decision", "using cli value"),
	)
}

// lookupEnv returns the first env key holding a non-blank value.
func lookupEnv(envKeys []string) (key, value string, ok bool) {
	for _, k := range envKeys {
		if k == "" {
			continue
		}
		v, set := os.LookupEnv(k)
		if !set {
			continue
		}
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		return k, v, true
	}
	return "", "", false
}

// String resolves a string setting using the precedence rules.
func (r Resolver) String(setting string, envKeys []string, cliVal string, cliSet bool, defaultVal string) string {
	envKey, envVal, envSet := lookupEnv(envKeys)
	if cliSet {
		if envSet && envVal != cliVal {
			r.logConflict(setting, envKey, envVal, cliVal)
		}
		return cliVal
	}
	if envSet {
		return envVal
	}
	return defaultVal
}

// Bool resolves a boolean setting.
func (r Resolver) Bool(setting string, envKeys []string, cliVal bool, cliSet bool, defaultVal bool) (bool, error) {
	envKey, envVal, envSet := lookupEnv(envKeys)
	if !envSet {
		if cliSet {
			return cliVal, nil
		}
		return defaultVal, nil
	}

	parsed, err := strconv.ParseBool(envVal)
	if err != nil {
		if cliSet {
			return cliVal, nil
		}
		return false, fmt.Errorf("config %s: invalid boolean %q in %s: %w", setting, envVal, envKey, err)
	}

	if cliSet {
		if parsed != cliVal {
			r.logConflict(setting, envKey, envVal, strconv.FormatBool(cliVal))
		}
		return cliVal, nil
	}

	return parsed, nil
}

// Uint32 resolves an unsigned 32-bit setting. The boolean result reports
// whether the value came from the CLI or the environment rather than the
// default.
func (r Resolver) Uint32(setting string, envKeys []string, cliVal uint32, cliSet bool, defaultVal uint32) (uint32, bool, error) {
	envKey, envVal, envSet := lookupEnv(envKeys)
	if !envSet {
		if cliSet {
			return cliVal, true, nil
		}
		return defaultVal, false, nil
	}

	parsed, err := strconv.ParseUint(envVal, 10, 32)
	if err != nil {
		if cliSet {
			return cliVal, true, nil
		}
		return 0, false, fmt.Errorf("config %s: invalid unsigned integer %q in %s: %w", setting, envVal, envKey, err)
	}

	if cliSet {
		if uint32(parsed) != cliVal {
			r.logConflict(setting, envKey, envVal, strconv.FormatUint(uint64(cliVal), 10))
		}
		return cliVal, true, nil
	}

	return uint32(parsed), true, nil
}
