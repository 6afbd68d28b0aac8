package lsp

import (
	"time"

	"go.uber.org/zap"
)

// traceHandler logs entry and exit of a handler at debug level.
func (s *Server) traceHandler(method string) func() {
	start := time.Now()
	s.logger.Debug("handler start", zap.String("method", method))

	return func() {
		s.logger.Debug("handler end", zap.String("method", method), zap.Duration("elapsed", time.Since(start)))
	}
}
