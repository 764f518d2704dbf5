package obslog

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// LogFormat defines the output format for logs
type LogFormat int

const (
	FormatText LogFormat = iota
	FormatJSON
)

// LogEntry represents a complete log entry
type LogEntry struct {
	Timestamp time.Time              `json:"timestamp"`
	Level     string                 `json:"level"`
	Message   string                 `json:"message"`
	Fields    map[string]interface{} `json:"fields,omitempty"`
}

// StructuredLogger provides structured logging with levels and fields
type StructuredLogger struct {
	mu            sync.RWMutex
	level         LogLevel
	output        io.Writer
	format        LogFormat
	contextFields map[string]interface{}
}

// StructuredLoggerConfig holds configuration for the logger
type StructuredLoggerConfig struct {
	Level  LogLevel
	Output io.Writer
	Format LogFormat
}

// DefaultStructuredLoggerConfig returns default configuration
func DefaultStructuredLoggerConfig() *StructuredLoggerConfig {
	return &StructuredLoggerConfig{
		Level:  INFO,
		Output: os.Stdout,
		Format: FormatText,
	}
}

// NewStructuredLogger creates a new structured logger
func NewStructuredLogger(config *StructuredLoggerConfig) (*StructuredLogger, error) {
	if config == nil {
		config = DefaultStructuredLoggerConfig()
	}

	return &StructuredLogger{
		level:         config.Level,
		output:        config.Output,
		format:        config.Format,
		contextFields: make(map[string]interface{}),
	}, nil
}

// WithField returns a new logger with an additional context field
func (sl *StructuredLogger) WithField(key string, value interface{}) *StructuredLogger {
	sl.mu.Lock()
	defer sl.mu.Unlock()

	newFields := make(map[string]interface{}, len(sl.contextFields)+1)
	for k, v := range sl.contextFields {
		newFields[k] = v
	}
	newFields[key] = value

	return &StructuredLogger{
		level:         sl.level,
		output:        sl.output,
		format:        sl.format,
		contextFields: newFields,
	}
}

// WithComponent returns a logger with a component field
func (sl *StructuredLogger) WithComponent(component string) *StructuredLogger {
	return sl.WithField("component", component)
}

// GetLevel returns the current log level
func (sl *StructuredLogger) GetLevel() LogLevel {
	sl.mu.RLock()
	defer sl.mu.RUnlock()
	return sl.level
}

// isEnabled checks if a log level is enabled for this logger
func (sl *StructuredLogger) isEnabled(level LogLevel) bool {
	sl.mu.RLock()
	defer sl.mu.RUnlock()
	return level >= sl.level
}

// log writes a log entry
func (sl *StructuredLogger) log(level LogLevel, message string, fields map[string]interface{}) {
	if !sl.isEnabled(level) {
		return
	}

	entry := LogEntry{
		Timestamp: time.Now(),
		Level:     level.String(),
		Message:   message,
		Fields:    make(map[string]interface{}),
	}

	sl.mu.RLock()
	for k, v := range sl.contextFields {
		entry.Fields[k] = v
	}
	sl.mu.RUnlock()

	for k, v := range fields {
		entry.Fields[k] = v
	}

	var output string
	if sl.format == FormatJSON {
		jsonBytes, err := json.Marshal(entry)
		if err != nil {
			output = sl.formatText(entry)
		} else {
			output = string(jsonBytes) + "\n"
		}
	} else {
		output = sl.formatText(entry)
	}

	sl.mu.Lock()
	defer sl.mu.Unlock()
	_, _ = sl.output.Write([]byte(output))
}

// formatText formats a log entry as human-readable text
func (sl *StructuredLogger) formatText(entry LogEntry) string {
	var sb strings.Builder

	sb.WriteString(entry.Timestamp.Format("2006-01-02 15:04:05.000"))
	sb.WriteString(" [")
	sb.WriteString(entry.Level)
	sb.WriteString("] ")
	sb.WriteString(entry.Message)

	if len(entry.Fields) > 0 {
		sb.WriteString(" {")
		first := true
		for k, v := range entry.Fields {
			if !first {
				sb.WriteString(", ")
			}
			first = false
			sb.WriteString(k)
			sb.WriteString("=")
			sb.WriteString(fmt.Sprintf("%v", v))
		}
		sb.WriteString("}")
	}

	sb.WriteString("\n")
	return sb.String()
}

// Debug logs a debug message
func (sl *StructuredLogger) Debug(message string, fields ...map[string]interface{}) {
	sl.logWithFields(DEBUG, message, fields...)
}

// Info logs an info message
func (sl *StructuredLogger) Info(message string, fields ...map[string]interface{}) {
	sl.logWithFields(INFO, message, fields...)
}

// logWithFields is a helper to log with optional field maps
func (sl *StructuredLogger) logWithFields(level LogLevel, message string, fieldMaps ...map[string]interface{}) {
	var fields map[string]interface{}
	if len(fieldMaps) > 0 && fieldMaps[0] != nil {
		fields = fieldMaps[0]
	}
	sl.log(level, message, fields)
}

// Close releases any resources held by the logger. The simulator never
// opens a file of its own (Output is always an existing io.Writer), so
// this is a no-op kept for symmetry with the constructor.
func (sl *StructuredLogger) Close() error {
	return nil
}
