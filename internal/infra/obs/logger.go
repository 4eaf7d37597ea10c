package obs

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// NewLogger configures an slog logger: colorful dev output, JSON for
// production-like envs.
func NewLogger(env string) *slog.Logger {
	level := slog.LevelInfo
	writer := os.Stdout
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		handler := tint.NewHandler(writer, &tint.Options{
			Level:      level,
			TimeFormat: time.RFC3339,
			AddSource:  true,
		})
		return slog.New(handler)
	default:
		handler := slog.NewJSONHandler(writer, &slog.HandlerOptions{
			Level:     level,
			AddSource: true,
		})
		return slog.New(handler)
	}
}
