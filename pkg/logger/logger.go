package logger

import (
	"bytes"
	"html"
	"io"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger wraps zap. The buffered variant keeps everything it wrote so the web page
// can show the log of one request.
type ZapLogger struct {
	log    *zap.Logger
	logBuf *bytes.Buffer
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    colorLevelEncoder,
		EncodeTime:     customTimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}

func build(w zapcore.WriteSyncer, level zapcore.LevelEnabler) *zap.Logger {
	encoder := zapcore.NewConsoleEncoder(encoderConfig())
	core := zapcore.NewCore(encoder, zapcore.Lock(w), level)
	return zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1), zap.AddStacktrace(zapcore.ErrorLevel))
}

// New returns a debug level logger writing into memory, see Logs.
func New() *ZapLogger {
	logBuf := &bytes.Buffer{}
	return &ZapLogger{
		log:    build(zapcore.AddSync(logBuf), zap.DebugLevel),
		logBuf: logBuf,
	}
}

// NewConsole writes colored lines to w, for the server's own log.
func NewConsole(w io.Writer, level zapcore.Level) *ZapLogger {
	return &ZapLogger{log: build(zapcore.AddSync(w), level)}
}

// NewNop discards everything.
func NewNop() *ZapLogger {
	return &ZapLogger{log: zap.NewNop()}
}

// With returns a child logger sharing the output (and the buffer) of z.
func (z *ZapLogger) With(fields ...zap.Field) *ZapLogger {
	return &ZapLogger{log: z.log.With(fields...), logBuf: z.logBuf}
}

func customTimeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format("[2006-01-02 | 15:04:05]"))
}

func colorLevelEncoder(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	var colorCode string
	switch level {
	case zapcore.DebugLevel:
		colorCode = "\033[36m" // Cyan
	case zapcore.InfoLevel:
		colorCode = "\033[32m" // Green
	case zapcore.WarnLevel:
		colorCode = "\033[33m" // Yellow
	case zapcore.ErrorLevel:
		colorCode = "\033[31m" // Red
	default:
		colorCode = "\033[0m" // Default
	}
	enc.AppendString(colorCode + level.String() + "\033[0m")
}

// ansiColor matches ANSI color codes
var ansiColor = regexp.MustCompile(`\033\[(\d+)m`)

// Converts ANSI color codes to HTML span with inline styles
func ansiToHTML(input string) string {
	var result strings.Builder
	var lastIndex int

	// Map to keep track of the currently opened color styles
	var openTags []string

	// Replace ANSI color codes with HTML color spans
	result.WriteString("<pre>") // Use <pre> tag for preserving whitespace and formatting

	// Iterate over matches and replace ANSI color codes
	for _, match := range ansiColor.FindAllStringIndex(input, -1) {
		start := match[0]
		end := match[1]

		// Write text before the match
		if start > lastIndex {
			result.WriteString(html.EscapeString(input[lastIndex:start]))
		}

		// Process the color code
		colorCode := input[start+2 : end-1]
		color, ok := colorMap[colorCode]
		if ok {
			// Close the previous color tag if any
			if len(openTags) > 0 {
				result.WriteString("</span>")
				openTags = nil
			}
			// Add the new color tag
			result.WriteString(`<span style="color: ` + color + `;">`)
			openTags = append(openTags, color)
		} else if colorCode == "0" {
			// Close all color tags on reset
			if len(openTags) > 0 {
				result.WriteString("</span>")
				openTags = nil
			}
		}

		lastIndex = end
	}

	// Write any remaining text
	if lastIndex < len(input) {
		result.WriteString(html.EscapeString(input[lastIndex:]))
	}

	// Close any remaining open tags
	if len(openTags) > 0 {
		result.WriteString("</span>")
	}

	result.WriteString("</pre>")

	return result.String()
}

// Color mapping for ANSI codes
var colorMap = map[string]string{
	"31": "red",    // Red
	"32": "green",  // Green
	"33": "yellow", // Yellow
	"34": "blue",   // Blue
	"36": "cyan",   // Cyan
	// Add more colors as needed
}

// Logs returns the buffered output rendered as HTML. Other loggers have no logs.
func (z *ZapLogger) Logs() []string {
	if z.logBuf == nil || z.logBuf.Len() == 0 {
		return nil
	}
	return []string{ansiToHTML(z.logBuf.String())}
}

func (z *ZapLogger) ClearLogs() {
	if z.logBuf != nil {
		z.logBuf.Reset()
	}
}

func (z *ZapLogger) Sync() error {
	return z.log.Sync()
}

func (z *ZapLogger) Info(wrappedMsg string, fields ...zap.Field) {
	z.log.Info(wrappedMsg, fields...)
}

func (z *ZapLogger) Debug(wrappedMsg string, fields ...zap.Field) {
	z.log.Debug(wrappedMsg, fields...)
}

func (z *ZapLogger) Warn(wrappedMsg string, fields ...zap.Field) {
	z.log.Warn(wrappedMsg, fields...)
}

func (z *ZapLogger) Error(wrappedMsg string, fields ...zap.Field) {
	z.log.Error(wrappedMsg, fields...)
}

func (z *ZapLogger) Fatal(wrappedMsg string, fields ...zap.Field) {
	z.log.Fatal(wrappedMsg, fields...)
}
