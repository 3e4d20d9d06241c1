package burrow

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// An Environment names the deployment a burrow app runs in.
// It picks defaults like log levels, HTTPS redirects and asset caching.
type Environment string

const (
	Development Environment = "DEVELOPMENT"
	Production  Environment = "PRODUCTION"
	Staging     Environment = "STAGING"
	Testing     Environment = "TESTING"
)

// ParseEnvironment reads s, in any case, as an Environment.
func ParseEnvironment(s string) (Environment, error) {
	e := Environment(strings.ToUpper(strings.TrimSpace(s)))
	return e, e.Valid()
}

func (e Environment) String() string { return string(e) }

func (e Environment) Valid() error {
	switch e {
	case Development, Production, Staging, Testing:
		return nil
	default:
		return fmt.Errorf("%w: unknown environment %q", ErrNotValid, string(e))
	}
}

func (e Environment) IsDevelopment() bool { return e == Development }

func (e Environment) IsProduction() bool { return e == Production }

func (e Environment) IsStaging() bool { return e == Staging }

func (e Environment) IsTesting() bool { return e == Testing }

// EnvVarOr parses the environment variable key with parse.
// def returns when key is unset, empty or fails to parse.
func EnvVarOr[T any](key string, def T, parse func(string) (T, error)) T {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return def
	}

	v, err := parse(val)
	if err != nil {
		return def
	}

	return v
}

// EnvVarOrBool reads key as anything strconv.ParseBool accepts.
func EnvVarOrBool(key string, def bool) bool {
	return EnvVarOr(key, def, strconv.ParseBool)
}

// EnvVarOrDuration reads key as a time.Duration, e.g. "30s".
func EnvVarOrDuration(key string, def time.Duration) time.Duration {
	return EnvVarOr(key, def, time.ParseDuration)
}

// EnvVarOrEnv reads key as an Environment.
func EnvVarOrEnv(key string, def Environment) Environment {
	return EnvVarOr(key, def, ParseEnvironment)
}

func EnvVarOrInt(key string, def int) int {
	return EnvVarOr(key, def, strconv.Atoi)
}

func EnvVarOrString(key, def string) string {
	return EnvVarOr(key, def, func(s string) (string, error) { return s, nil })
}
