package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var log = zap.NewNop()

func Init() {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encCfg),
		zapcore.Lock(os.Stdout),
		zapcore.InfoLevel,
	)

	log = zap.New(core)
	log.Info("logger initialized")
}

func Info(msg string, fields map[string]any) {
	log.Info(msg, zapFields(fields)...)
}

func Warn(msg string, fields map[string]any) {
	log.Warn(msg, zapFields(fields)...)
}

func Error(msg string, fields map[string]any) {
	log.Error(msg, zapFields(fields)...)
}

// Fatal logs and exits with status 1.
func Fatal(msg string, fields map[string]any) {
	log.Fatal(msg, zapFields(fields)...)
}

func zapFields(m map[string]any) []zap.Field {
	if len(m) == 0 {
		return nil
	}
	fields := make([]zap.Field, 0, len(m))
	for k, v := range m {
		fields = append(fields, zap.Any(k, v))
	}
	return fields
}
