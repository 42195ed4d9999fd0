package buflog

import (
	"fmt"
	"strings"
)

// fmtErrorf wrapper
func fmtErrorf(format string, args ...any) error {
	if !strings.HasPrefix(format, "buflog: ") {
		format = "buflog: " + format
	}
	return fmt.Errorf(format, args...)
}

// combineErrors helper
func combineErrors(err1, err2 error) error {
	if err1 == nil {
		return err2
	}
	if err2 == nil {
		return err1
	}
	return fmt.Errorf("%v; %w", err1, err2)
}

// parseKeyValue splits a "key=value" string.
func parseKeyValue(arg string) (string, string, error) {
	parts := strings.SplitN(strings.TrimSpace(arg), "=", 2)
	if len(parts) != 2 {
		return "", "", fmtErrorf("invalid format in override string '%s', expected key=value", arg)
	}
	key := strings.TrimSpace(parts[0])
	value := strings.TrimSpace(parts[1])
	if key == "" {
		return "", "", fmtErrorf("key cannot be empty in override string '%s'", arg)
	}
	return key, value, nil
}

// ParseLevel converts a level name to its numeric constant.
// Names are matched case-insensitively.
func ParseLevel(levelStr string) (int64, error) {
	switch strings.ToLower(strings.TrimSpace(levelStr)) {
	case "warning":
		return LevelWarning, nil
	case "info":
		return LevelInfo, nil
	case "debug":
		return LevelDebug, nil
	case "detail":
		return LevelDetail, nil
	default:
		return 0, fmtErrorf("unknown level: '%s' (use warning, info, debug, or detail)", levelStr)
	}
}

// levelLabel returns the padded pretty-print label for a severity.
func levelLabel(level int64) string {
	switch level {
	case LevelWarning:
		return "WARNING"
	case LevelInfo:
		return "INFO   "
	case LevelDebug:
		return "DEBUG  "
	case LevelDetail:
		return "DETAIL "
	default:
		return "????   "
	}
}
