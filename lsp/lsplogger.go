package lsp

import (
	"context"
	"strings"

	"go.lsp.dev/protocol"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// clientCore is a zapcore.Core forwarding entries to the client through
// window/logMessage. Delivery is asynchronous and drops entries when the
// queue is full.
type clientCore struct {
	zapcore.LevelEnabler

	encoder zapcore.Encoder
	queue   chan *protocol.LogMessageParams
}

const logQueueSize = 100

// NewLogger returns a logger teeing fallback with a core that sends entries
// to client. The returned stop function ends delivery.
func NewLogger(client Client, fallback zapcore.Core, level zapcore.LevelEnabler) (*zap.Logger, func()) {
	ctx, cancel := context.WithCancel(context.Background())

	core := &clientCore{
		LevelEnabler: level,
		encoder: zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
			MessageKey:     "msg",
			NameKey:        "logger",
			EncodeDuration: zapcore.StringDurationEncoder,
		}),
		queue: make(chan *protocol.LogMessageParams, logQueueSize),
	}

	go func() {
		for {
			select {
			case params := <-core.queue:
				_ = client.LogMessage(ctx, params)
			case <-ctx.Done():
				return
			}
		}
	}()

	return zap.New(zapcore.NewTee(core, fallback)), cancel
}

// With implements zapcore.Core.
func (c *clientCore) With(fields []zapcore.Field) zapcore.Core {
	clone := &clientCore{
		LevelEnabler: c.LevelEnabler,
		encoder:      c.encoder.Clone(),
		queue:        c.queue,
	}

	for _, f := range fields {
		f.AddTo(clone.encoder)
	}

	return clone
}

// Check implements zapcore.Core.
func (c *clientCore) Check(entry zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(entry.Level) {
		return ce.AddCore(entry, c)
	}

	return ce
}

// Write implements zapcore.Core.
func (c *clientCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	buf, err := c.encoder.EncodeEntry(entry, fields)
	if err != nil {
		return err
	}

	message := strings.TrimSpace(buf.String())
	buf.Free()

	select {
	case c.queue <- &protocol.LogMessageParams{Type: messageType(entry.Level), Message: message}:
	default:
	}

	return nil
}

// Sync implements zapcore.Core.
func (c *clientCore) Sync() error {
	return nil
}

func messageType(level zapcore.Level) protocol.MessageType {
	switch {
	case level >= zapcore.ErrorLevel:
		return protocol.MessageTypeError
	case level == zapcore.WarnLevel:
		return protocol.MessageTypeWarning
	case level == zapcore.InfoLevel:
		return protocol.MessageTypeInfo
	default:
		return protocol.MessageTypeLog
	}
}
