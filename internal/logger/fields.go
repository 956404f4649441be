package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldTransport is the structured log field key for the entry point that served a request.
	FieldTransport = "transport"
	// FieldRequestID is the structured log field key for the per-request identifier.
	FieldRequestID = "request_id"
)

// RequestFields returns the fields identifying a single ranking request.
// Blank values are skipped.
func RequestFields(transport, requestID string) []zap.Field {
	fields := make([]zap.Field, 0, 2)
	if transport = strings.TrimSpace(transport); transport != "" {
		fields = append(fields, zap.String(FieldTransport, transport))
	}
	if requestID = strings.TrimSpace(requestID); requestID != "" {
		fields = append(fields, zap.String(FieldRequestID, requestID))
	}
	return fields
}

// ForRequest returns a child of base carrying the request fields.
// A nil base is replaced with a no-op logger.
func ForRequest(base *zap.Logger, transport, requestID string) *zap.Logger {
	if base == nil {
		base = zap.NewNop()
	}

	fields := RequestFields(transport, requestID)
	if len(fields) == 0 {
		return base
	}
	return base.With(fields...)
}
