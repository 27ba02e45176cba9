package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"time"
)

// Log levels used across the module.
const (
	LevelDebug = "DEBUG"
	LevelInfo  = "INFO"
	LevelWarn  = "WARN"
	LevelError = "ERROR"
)

// LogEntry represents a single log record.
type LogEntry struct {
	Timestamp string `json:"timestamp"`
	Level     string `json:"level"`
	Message   string `json:"message"`
}

var (
	mu          sync.RWMutex
	logEntries  []LogEntry
	maxEntries  = 500
	maxFileSize = int64(2 * 1024 * 1024)
	logFilePath string
	logFile     *os.File
	console     io.Writer = os.Stderr
	logChan     = make(chan LogEntry, 100)
	done        chan struct{}
	workerDone  chan struct{}

	// Brave subscription tokens and bearer credentials must never reach disk.
	braveKeyRegex   = regexp.MustCompile(`BSA[A-Za-z0-9_-]{10,}`)
	bearerRegex     = regexp.MustCompile(`(?i)bearer\s+[A-Za-z0-9._~+/=-]+`)
	tokenParamRegex = regexp.MustCompile(`(?i)(api_key|token|key)=([^&\s]+)`)
)

// Init opens the daily log file under appDir/logs and starts the file writer.
func Init(appDir string) error {
	mu.Lock()
	defer mu.Unlock()

	logDir := filepath.Join(appDir, "logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	logFileName := fmt.Sprintf("%s customtools.log", time.Now().Format("20060102"))
	logFilePath = filepath.Join(logDir, logFileName)

	f, err := os.OpenFile(logFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	logFile = f

	done = make(chan struct{})
	workerDone = make(chan struct{})
	go logWorker()

	return nil
}

// SetConsole redirects console echo. Passing nil silences it.
func SetConsole(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if w == nil {
		w = io.Discard
	}
	console = w
}

// Redact masks credentials in a message.
func Redact(message string) string {
	message = braveKeyRegex.ReplaceAllString(message, "BSA-REDACTED")
	message = bearerRegex.ReplaceAllString(message, "Bearer REDACTED")
	return tokenParamRegex.ReplaceAllString(message, "$1=REDACTED")
}

// AddLog adds a new log entry.
func AddLog(level, message string) {
	entry := LogEntry{
		Timestamp: time.Now().Format(time.RFC3339),
		Level:     level,
		Message:   Redact(message),
	}

	mu.Lock()
	logEntries = append(logEntries, entry)
	if len(logEntries) > maxEntries {
		logEntries = logEntries[len(logEntries)-maxEntries:]
	}
	out := console
	fileOpen := logFile != nil
	mu.Unlock()

	// stdout belongs to the MCP stdio transport
	fmt.Fprintf(out, "[%s] [%s] %s\n", entry.Timestamp, entry.Level, entry.Message)

	if !fileOpen {
		return
	}
	select {
	case logChan <- entry:
	default:
		// Drop rather than block a tool call on disk I/O
	}
}

// Infof logs a formatted INFO entry.
func Infof(format string, args ...interface{}) {
	AddLog(LevelInfo, fmt.Sprintf(format, args...))
}

// Warnf logs a formatted WARN entry.
func Warnf(format string, args ...interface{}) {
	AddLog(LevelWarn, fmt.Sprintf(format, args...))
}

// Errorf logs a formatted ERROR entry.
func Errorf(format string, args ...interface{}) {
	AddLog(LevelError, fmt.Sprintf(format, args...))
}

// GetLogs returns all logs currently in memory.
func GetLogs() []LogEntry {
	mu.RLock()
	defer mu.RUnlock()

	res := make([]LogEntry, len(logEntries))
	copy(res, logEntries)
	return res
}

// ClearLogs wipes the in-memory buffer.
func ClearLogs() {
	mu.Lock()
	defer mu.Unlock()
	logEntries = []LogEntry{}
}

// GetLogFilePath returns the path to the log file.
func GetLogFilePath() string {
	mu.RLock()
	defer mu.RUnlock()
	return logFilePath
}

// Close flushes and closes the log file.
func Close() {
	if done != nil {
		close(done)
		if workerDone != nil {
			<-workerDone
		}
		done = nil
	}

	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}

func logWorker() {
	defer close(workerDone)
	for {
		select {
		case entry := <-logChan:
			writeEntry(entry)
		case <-done:
			for {
				select {
				case entry := <-logChan:
					writeEntry(entry)
				default:
					return
				}
			}
		}
	}
}

func writeEntry(entry LogEntry) {
	mu.Lock()
	defer mu.Unlock()

	f := logFile
	if f == nil {
		return
	}

	if info, err := f.Stat(); err == nil && info.Size() > maxFileSize {
		f.Close()
		f, err = os.OpenFile(logFilePath, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			logFile = nil
			return
		}
		logFile = f
		truncateEntry := LogEntry{
			Timestamp: time.Now().Format(time.RFC3339),
			Level:     LevelInfo,
			Message:   "Log file reached size limit and was truncated.",
		}
		data, _ := json.Marshal(truncateEntry)
		f.Write(append(data, '\n'))
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}
	f.Write(append(data, '\n'))
}
