package composables

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/pixelport/pixelport/pkg/constants"
)

var ErrNoLogger = errors.New("logger not found in context")

func WithLogger(ctx context.Context, logger *logrus.Entry) context.Context {
	return context.WithValue(ctx, constants.LoggerKey, logger)
}

// UseLogger returns the request-scoped logger, falling back to the standard
// logger so callers never need to nil-check.
func UseLogger(ctx context.Context) *logrus.Entry {
	logger, ok := ctx.Value(constants.LoggerKey).(*logrus.Entry)
	if !ok {
		return logrus.NewEntry(logrus.StandardLogger())
	}
	return logger
}
