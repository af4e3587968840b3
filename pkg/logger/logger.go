package logger

import (
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var Logger *zap.Logger
var currentLogLevel zapcore.Level

// InitLogger sets up the global console logger. The level defaults to info
// and can be lowered with LOG_LEVEL=debug to see per-call details.
func InitLogger() {
	config := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		MessageKey:     "msg",
		CallerKey:      "caller",
		NameKey:        "logger",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    customLevelEncoder,
		EncodeTime:     customTimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   customCallerEncoder,
		EncodeName:     zapcore.FullNameEncoder,
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(config),
		zapcore.AddSync(os.Stdout),
		levelFromEnv(),
	)

	Logger = zap.New(core, zap.AddCallerSkip(1), zap.Hooks(levelHook))
}

func levelFromEnv() zapcore.Level {
	level, err := zapcore.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		return zapcore.InfoLevel
	}
	return level
}

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
)

func levelHook(entry zapcore.Entry) error {
	currentLogLevel = entry.Level
	return nil
}

func customTimeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	var timeColor string
	switch currentLogLevel {
	case zapcore.ErrorLevel:
		timeColor = colorRed
	case zapcore.WarnLevel:
		timeColor = colorYellow
	case zapcore.DebugLevel:
		timeColor = colorGreen
	default:
		timeColor = colorBlue
	}

	enc.AppendString(timeColor + "[" + t.Format("2006-01-02 15:04:05") + "]" + colorReset)
}

func SyncLogger() {
	_ = Logger.Sync()
}

func customLevelEncoder(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	var levelStr string
	switch level {
	case zapcore.InfoLevel:
		levelStr = colorBlue + "[" + level.CapitalString() + "]" + colorReset
	case zapcore.WarnLevel:
		levelStr = colorYellow + "[" + level.CapitalString() + "]" + colorReset
	case zapcore.ErrorLevel:
		levelStr = colorRed + "[" + level.CapitalString() + "]" + colorReset
	case zapcore.DebugLevel:
		levelStr = colorGreen + "[" + level.CapitalString() + "]" + colorReset
	default:
		levelStr = "[" + level.CapitalString() + "]"
	}

	enc.AppendString(levelStr)
}

func customCallerEncoder(caller zapcore.EntryCaller, enc zapcore.PrimitiveArrayEncoder) {
	if Logger.Core().Enabled(zapcore.DebugLevel) {
		const colorDim = "\033[2m"
		enc.AppendString(colorDim + padRight(caller.TrimmedPath(), 30) + colorReset)
	}
}

func padRight(str string, length int) string {
	if len(str) >= length {
		return str
	}
	padded := str
	for i := len(str); i < length; i++ {
		padded += " "
	}
	return padded
}
