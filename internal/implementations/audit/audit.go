package audit

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"remindbot/internal/core/domain/audit"
	e "remindbot/internal/core/domain/errors"
	"remindbot/internal/core/domain/logging"
	"sort"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapAuditor appends one JSON object per event.
type ZapAuditor struct {
	logger    *zap.Logger
	generator audit.EventIDGenerator
	closer    func() error
}

// Open creates the parent directory and appends to the file at path.
func Open(path string, log logging.Logger, generator audit.EventIDGenerator) (*ZapAuditor, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("could not create audit directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("could not open audit log: %w", err)
	}
	auditor := New(zapcore.AddSync(file), log, generator)
	auditor.closer = file.Close
	return auditor, nil
}

func New(ws zapcore.WriteSyncer, log logging.Logger, generator audit.EventIDGenerator) *ZapAuditor {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if generator == nil {
		panic(e.NewNilArgumentError("generator"))
	}
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeTime:     encodeTime,
		EncodeDuration: zapcore.StringDurationEncoder,
	}
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), ws, zapcore.InfoLevel)
	logger := zap.New(core, zap.ErrorOutput(zapcore.AddSync(errorWriter{log: log})))
	return &ZapAuditor{logger: logger, generator: generator, closer: func() error { return nil }}
}

func (a *ZapAuditor) Record(ctx context.Context, event audit.Event) {
	fields := make([]zap.Field, 0, len(event.Fields)+4)
	fields = append(
		fields,
		zap.String("event_id", string(a.generator.GenerateEventID())),
		zap.String("action", event.Action),
		zap.Int64("chat_id", int64(event.User.ChatID)),
		zap.Int64("user_id", int64(event.User.ID)),
	)
	keys := make([]string, 0, len(event.Fields))
	for k := range event.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fields = append(fields, zap.Any(k, event.Fields[k]))
	}
	a.logger.Info("", fields...)
}

func (a *ZapAuditor) Close() error {
	a.logger.Sync()
	return a.closer()
}

func encodeTime(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.UTC().Format(time.RFC3339))
}

// errorWriter forwards zap internal write failures to the application log.
type errorWriter struct {
	log logging.Logger
}

func (w errorWriter) Write(p []byte) (int, error) {
	w.log.Error(context.Background(), "Could not write audit record.", logging.Entry("err", string(p)))
	return len(p), nil
}
