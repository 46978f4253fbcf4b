package config

import (
    "os"
    "strconv"
    "strings"
    "time"
)

// The env helpers return d when the variable is unset or does not parse.

func envStr(k, d string) string {
    if v := strings.TrimSpace(os.Getenv(k)); v != "" {
        return v
    }
    return d
}

func envBool(k string, d bool) bool {
    switch strings.ToLower(envStr(k, "")) {
    case "1", "true", "yes", "on":
        return true
    case "0", "false", "no", "off":
        return false
    }
    return d
}

func envInt(k string, d int) int {
    n, err := strconv.Atoi(envStr(k, ""))
    if err != nil {
        return d
    }
    return n
}

func envDur(k string, d time.Duration) time.Duration {
    v, err := time.ParseDuration(envStr(k, ""))
    if err != nil {
        return d
    }
    return v
}
