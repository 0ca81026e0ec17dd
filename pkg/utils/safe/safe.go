package safe

import (
	"context"
	"io"
	"log/slog"

	"github.com/secmon-lab/vetplan/pkg/utils/logging"
)

// Close closes c and logs a failure with the resource name. A nil closer is ignored.
func Close(ctx context.Context, c io.Closer, resource string) {
	if c == nil {
		return
	}
	if err := c.Close(); err != nil {
		logging.From(ctx).Error("failed to close resource",
			slog.String("resource", resource),
			slog.Any("error", err),
		)
	}
}

// Recover logs a panic instead of crashing the process. Call it deferred.
func Recover(ctx context.Context, where string) {
	if r := recover(); r != nil {
		logging.From(ctx).Error("recovered from panic",
			slog.String("where", where),
			slog.Any("panic", r),
		)
	}
}
