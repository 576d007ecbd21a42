package utils

import (
	"log/slog"

	"github.com/posthog/posthog-go"
)

// PosthogClientWrapper guards a posthog.Client so callers never have to
// care whether analytics is configured. With no API key every method is a
// no-op.
type PosthogClientWrapper struct {
	client posthog.Client
	logger *slog.Logger
}

// InitializePosthogClient builds the analytics wrapper. An empty apiKey
// yields an inert wrapper.
func InitializePosthogClient(apiKey string, logger *slog.Logger) *PosthogClientWrapper {
	if apiKey == "" {
		logger.Info("Analytics disabled: no PostHog API key configured.")
		return &PosthogClientWrapper{}
	}

	client, err := posthog.NewWithConfig(apiKey, posthog.Config{Endpoint: "https://eu.i.posthog.com"})
	if err != nil {
		logger.Error("Failed to initialize PostHog client, analytics disabled", slog.String("error", err.Error()))
		return &PosthogClientWrapper{}
	}
	return &PosthogClientWrapper{client: client, logger: logger}
}

// IsInitialized reports whether events will actually be delivered.
func (w *PosthogClientWrapper) IsInitialized() bool {
	return w.client != nil
}

// Enqueue records an event against a user. Delivery is asynchronous and
// best effort; failures never surface to the request path.
func (w *PosthogClientWrapper) Enqueue(distinctID, event string, properties map[string]any) {
	if w.client == nil {
		return
	}
	if err := w.client.Enqueue(posthog.Capture{
		DistinctId: distinctID,
		Event:      event,
		Properties: properties,
	}); err != nil && w.logger != nil {
		w.logger.Warn("Failed to enqueue analytics event", slog.String("event", event), slog.String("error", err.Error()))
	}
}

// Close flushes pending events. Call it on shutdown.
func (w *PosthogClientWrapper) Close() {
	if w.client == nil {
		return
	}
	if err := w.client.Close(); err != nil && w.logger != nil {
		w.logger.Warn("Error closing analytics client", slog.String("error", err.Error()))
	}
}
