package buflog

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/davecgh/go-spew/spew"
)

// formatter renders severity, timestamp and message into a single
// newline-terminated line of at most maxLineSize bytes.
type formatter struct {
	pretty bool
}

// render produces the line for a log call. The bool result is false when the
// rendered line would exceed maxLineSize; such messages must be dropped, the
// line is never truncated. The scratch buffer is per call, render is safe for
// concurrent use.
func (f *formatter) render(now time.Time, level int64, format string, args ...any) ([]byte, bool) {
	buf := make([]byte, 0, maxLineSize)
	buf = appendTimestamp(buf, now)
	buf = append(buf, ' ')

	if f.pretty {
		buf = append(buf, levelLabel(level)...)
	} else {
		buf = strconv.AppendInt(buf, level, 10)
	}
	buf = append(buf, ':', ' ')

	if len(args) > 0 {
		buf = fmt.Appendf(buf, format, args...)
	} else {
		buf = append(buf, format...)
	}

	if len(buf) >= maxLineSize {
		return nil, false
	}
	if len(buf) == 0 || buf[len(buf)-1] != '\n' {
		buf = append(buf, '\n')
	}
	return buf, true
}

// appendTimestamp renders local time in asctime style with microsecond
// precision and the zone abbreviation. When no abbreviation is available it
// falls back to raw epoch seconds.microseconds.
func appendTimestamp(buf []byte, now time.Time) []byte {
	micros := now.Nanosecond() / 1000
	zone, _ := now.Zone()
	if zone == "" {
		buf = strconv.AppendInt(buf, now.Unix(), 10)
		buf = append(buf, '.')
		return fmt.Appendf(buf, "%06d", micros)
	}
	buf = now.AppendFormat(buf, "Mon Jan _2 15:04:05")
	buf = append(buf, '.')
	buf = fmt.Appendf(buf, "%06d", micros)
	buf = append(buf, ' ')
	return append(buf, zone...)
}

// renderArgs flattens variadic values into a space-separated message for the
// non-printf logging methods.
func renderArgs(args []any) string {
	buf := make([]byte, 0, 256)
	for i, arg := range args {
		if i > 0 {
			buf = append(buf, ' ')
		}
		buf = appendValue(buf, arg)
	}
	return string(buf)
}

// appendValue converts a value to its string representation.
// Aggregates fall back to go-spew for a compact structural dump.
func appendValue(buf []byte, v any) []byte {
	switch val := v.(type) {
	case string:
		return append(buf, val...)
	case int:
		return strconv.AppendInt(buf, int64(val), 10)
	case int64:
		return strconv.AppendInt(buf, val, 10)
	case uint:
		return strconv.AppendUint(buf, uint64(val), 10)
	case uint64:
		return strconv.AppendUint(buf, val, 10)
	case float32:
		return strconv.AppendFloat(buf, float64(val), 'f', -1, 32)
	case float64:
		return strconv.AppendFloat(buf, val, 'f', -1, 64)
	case bool:
		return strconv.AppendBool(buf, val)
	case nil:
		return append(buf, "nil"...)
	case time.Time:
		return val.AppendFormat(buf, time.RFC3339Nano)
	case error:
		return append(buf, val.Error()...)
	case fmt.Stringer:
		return append(buf, val.String()...)
	default:
		// Structs, maps, pointers, slices: delegate to spew for a
		// deterministic, log-friendly dump.
		var b bytes.Buffer
		dumper := &spew.ConfigState{
			Indent:                  " ",
			MaxDepth:                10,
			DisablePointerAddresses: true,
			DisableCapacities:       true,
			SortKeys:                true,
		}
		dumper.Fdump(&b, val)
		return append(buf, bytes.TrimSpace(b.Bytes())...)
	}
}
