package logtail

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Entry is one structured log line.
type Entry struct {
	Time    time.Time
	Level   zerolog.Level
	Message string
	Fields  []Field
	Raw     string
}

// Field is a key/value pair from a log line, rendered as text.
type Field struct {
	Key   string
	Value string
}

// Parse decodes a zerolog JSON line. Lines that are not JSON objects are
// returned with only Raw set and Level NoLevel.
func Parse(line string) Entry {
	entry := Entry{Raw: line, Level: zerolog.NoLevel}
	var obj map[string]any
	if err := json.Unmarshal([]byte(line), &obj); err != nil {
		return entry
	}

	if v, ok := obj[zerolog.TimestampFieldName].(string); ok {
		if ts, err := time.Parse(time.RFC3339, v); err == nil {
			entry.Time = ts
		}
	}
	if v, ok := obj[zerolog.LevelFieldName].(string); ok {
		if lvl, err := zerolog.ParseLevel(v); err == nil {
			entry.Level = lvl
		}
	}
	if v, ok := obj[zerolog.MessageFieldName].(string); ok {
		entry.Message = v
	}

	keys := make([]string, 0, len(obj))
	for k := range obj {
		switch k {
		case zerolog.TimestampFieldName, zerolog.LevelFieldName, zerolog.MessageFieldName:
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		entry.Fields = append(entry.Fields, Field{Key: k, Value: fieldText(obj[k])})
	}
	return entry
}

// Format renders a log line as "15:04:05 INF message key=value".
func Format(line string) string {
	e := Parse(line)
	if e.Level == zerolog.NoLevel && e.Message == "" && len(e.Fields) == 0 {
		return e.Raw
	}

	var b strings.Builder
	if !e.Time.IsZero() {
		b.WriteString(e.Time.Local().Format("15:04:05"))
		b.WriteByte(' ')
	}
	b.WriteString(levelTag(e.Level))
	if e.Message != "" {
		b.WriteByte(' ')
		b.WriteString(e.Message)
	}
	for _, f := range e.Fields {
		fmt.Fprintf(&b, " %s=%s", f.Key, f.Value)
	}
	return b.String()
}

// FormatLines formats each line with Format.
func FormatLines(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = Format(line)
	}
	return out
}

func levelTag(lvl zerolog.Level) string {
	switch lvl {
	case zerolog.TraceLevel:
		return "TRC"
	case zerolog.DebugLevel:
		return "DBG"
	case zerolog.InfoLevel:
		return "INF"
	case zerolog.WarnLevel:
		return "WRN"
	case zerolog.ErrorLevel:
		return "ERR"
	case zerolog.FatalLevel:
		return "FTL"
	case zerolog.PanicLevel:
		return "PNC"
	default:
		return "???"
	}
}

func fieldText(v any) string {
	switch val := v.(type) {
	case string:
		if strings.ContainsAny(val, " \t") {
			return fmt.Sprintf("%q", val)
		}
		return val
	case float64:
		return fmt.Sprintf("%g", val)
	case nil:
		return "null"
	default:
		data, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(data)
	}
}
