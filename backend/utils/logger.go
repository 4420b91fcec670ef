package utils

import (
	"context"
	"errors"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
	gormUtils "gorm.io/gorm/utils"
)

// LoggerConfig configures the application logger.
type LoggerConfig struct {
	// text or json
	Format string
	// Defaults to os.Stdout
	Output io.Writer
	// Colored prefix for terminals
	EnableColors bool
}

// InitLogger builds the application logger.
func InitLogger(config ...LoggerConfig) *log.Logger {
	var cfg LoggerConfig
	if len(config) > 0 {
		cfg = config[0]
	}

	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}

	prefix := "[Quiz Master] "

	var logger *log.Logger
	if cfg.Format == "json" {
		logger = log.New(&jsonLineWriter{out: cfg.Output, app: appName}, "", 0)
	} else {
		if cfg.EnableColors {
			prefix = "\033[36m" + prefix + "\033[0m"
		}
		logger = log.New(cfg.Output, prefix, log.LstdFlags|log.Lshortfile|log.LUTC)
	}

	return logger
}

const appName = "Quiz Master"

type jsonLogLine struct {
	Time string `json:"time"`
	App  string `json:"app"`
	Msg  string `json:"msg"`
}

// jsonLineWriter turns each log.Logger message into one JSON object per line.
type jsonLineWriter struct {
	out io.Writer
	app string
}

func (w *jsonLineWriter) Write(p []byte) (int, error) {
	line, err := sonic.Marshal(jsonLogLine{
		Time: time.Now().UTC().Format(time.RFC3339Nano),
		App:  w.app,
		Msg:  strings.TrimRight(string(p), "\n"),
	})
	if err != nil {
		return 0, err
	}
	if _, err := w.out.Write(append(line, '\n')); err != nil {
		return 0, err
	}
	return len(p), nil
}

// GormLogger routes gorm's SQL tracing through the application logger.
type GormLogger struct {
	Logger        *log.Logger
	SlowThreshold time.Duration
	LogLevel      gormLogger.LogLevel
}

// NewGormLogger logs errors and slow queries, and every query when verbose is set.
func NewGormLogger(logger *log.Logger, verbose bool) gormLogger.Interface {
	level := gormLogger.Warn
	if verbose {
		level = gormLogger.Info
	}
	return &GormLogger{
		Logger:        logger,
		SlowThreshold: 200 * time.Millisecond,
		LogLevel:      level,
	}
}

func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	clone := *l
	clone.LogLevel = level
	return &clone
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Info {
		l.Logger.Printf("[INFO] "+msg, data...)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Warn {
		l.Logger.Printf("[WARN] "+msg, data...)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Error {
		l.Logger.Printf("[ERROR] "+msg, data...)
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.LogLevel <= gormLogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	file := gormUtils.FileWithLineNum()

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && l.LogLevel >= gormLogger.Error:
		sql, rows := fc()
		l.Logger.Printf("[ERROR] %s | %v | %s | %d rows | %s", file, err, elapsed, rows, sql)
	case elapsed > l.SlowThreshold && l.LogLevel >= gormLogger.Warn:
		sql, rows := fc()
		l.Logger.Printf("[SLOW SQL] %s | %s | %d rows | %s", file, elapsed, rows, sql)
	case l.LogLevel >= gormLogger.Info:
		sql, rows := fc()
		l.Logger.Printf("[QUERY] %s | %s | %d rows | %s", file, elapsed, rows, sql)
	}
}
