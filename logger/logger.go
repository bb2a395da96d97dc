package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func NewProductionLogger() (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(levelFromEnv())
	return config.Build()
}

func Sugar(logger *zap.Logger) *zap.SugaredLogger {
	return logger.Sugar()
}

func levelFromEnv() zapcore.Level {
	if raw, ok := os.LookupEnv("LOG_LEVEL"); ok {
		if level, err := zapcore.ParseLevel(raw); err == nil {
			return level
		}
	}
	return zapcore.InfoLevel
}
