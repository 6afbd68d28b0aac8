// Package lsp implements a Language Server Protocol server that publishes
// GQL parse diagnostics.
package lsp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.uber.org/zap"

	"github.com/rlch/gql"
)

// Client is the part of protocol.Client the server talks to.
type Client interface {
	PublishDiagnostics(ctx context.Context, params *protocol.PublishDiagnosticsParams) error
	LogMessage(ctx context.Context, params *protocol.LogMessageParams) error
}

// Server tracks open documents and publishes their diagnostics.
type Server struct {
	client Client
	logger *zap.Logger
	config *gql.Config

	// Document state
	mu        sync.RWMutex
	documents map[protocol.DocumentURI]*Document

	// Server state
	shutdown bool
	exit     chan struct{}
	exitOnce sync.Once
}

// Document represents an open document in the server.
type Document struct {
	URI     protocol.DocumentURI
	Version int32
	Content string
	Result  *gql.Result
}

// NewServer creates a new LSP server. A nil config uses gql.DefaultConfig.
func NewServer(client Client, logger *zap.Logger, config *gql.Config) *Server {
	if config == nil {
		config = gql.DefaultConfig()
	}

	return &Server{
		client:    client,
		logger:    logger,
		config:    config,
		documents: make(map[protocol.DocumentURI]*Document),
		exit:      make(chan struct{}),
	}
}

// Exited is closed once the client sends the exit notification.
func (s *Server) Exited() <-chan struct{} {
	return s.exit
}

// Handle is a jsonrpc2.Handler dispatching the methods the server supports.
// Anything else is answered with method-not-found.
func (s *Server) Handle(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	defer s.traceHandler(req.Method())()

	if s.isShutdown() && req.Method() != protocol.MethodExit {
		return reply(ctx, nil, fmt.Errorf("%s after shutdown: %w", req.Method(), jsonrpc2.ErrInvalidRequest))
	}

	switch req.Method() {
	case protocol.MethodInitialize:
		var params protocol.InitializeParams
		if err := decodeParams(req, &params); err != nil {
			return reply(ctx, nil, err)
		}

		return reply(ctx, s.Initialize(ctx, &params), nil)

	case protocol.MethodInitialized:
		s.Initialized(ctx)

		return reply(ctx, nil, nil)

	case protocol.MethodShutdown:
		s.Shutdown(ctx)

		return reply(ctx, nil, nil)

	case protocol.MethodExit:
		s.Exit(ctx)

		return reply(ctx, nil, nil)

	case protocol.MethodTextDocumentDidOpen:
		var params protocol.DidOpenTextDocumentParams
		if err := decodeParams(req, &params); err != nil {
			return reply(ctx, nil, err)
		}

		s.DidOpen(ctx, &params)

		return reply(ctx, nil, nil)

	case protocol.MethodTextDocumentDidChange:
		var params protocol.DidChangeTextDocumentParams
		if err := decodeParams(req, &params); err != nil {
			return reply(ctx, nil, err)
		}

		s.DidChange(ctx, &params)

		return reply(ctx, nil, nil)

	case protocol.MethodTextDocumentDidClose:
		var params protocol.DidCloseTextDocumentParams
		if err := decodeParams(req, &params); err != nil {
			return reply(ctx, nil, err)
		}

		s.DidClose(ctx, &params)

		return reply(ctx, nil, nil)

	default:
		s.logger.Debug("Unhandled method", zap.String("method", req.Method()))

		return jsonrpc2.MethodNotFoundHandler(ctx, reply, req)
	}
}

func decodeParams(req jsonrpc2.Request, v any) error {
	dec := json.NewDecoder(bytes.NewReader(req.Params()))

	err := dec.Decode(v)
	if err != nil {
		return fmt.Errorf("%s: %w: %w", req.Method(), jsonrpc2.ErrParse, err)
	}

	return nil
}

// Initialize handles the initialize request.
func (s *Server) Initialize(_ context.Context, params *protocol.InitializeParams) *protocol.InitializeResult {
	s.logger.Info("Initialize", zap.String("rootURI", string(params.RootURI)))

	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			// Full document sync - client sends entire content on change
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: true,
				Change:    protocol.TextDocumentSyncKindFull,
			},
		},
		ServerInfo: &protocol.ServerInfo{
			Name:    "gql-lsp",
			Version: "0.1.0",
		},
	}
}

// Initialized handles the initialized notification.
func (s *Server) Initialized(_ context.Context) {
	s.logger.Info("Initialized")
}

// Shutdown handles the shutdown request.
func (s *Server) Shutdown(_ context.Context) {
	s.logger.Info("Shutdown")

	s.mu.Lock()
	s.shutdown = true
	s.mu.Unlock()
}

func (s *Server) isShutdown() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.shutdown
}

// Exit handles the exit notification.
func (s *Server) Exit(_ context.Context) {
	s.logger.Info("Exit")
	s.exitOnce.Do(func() { close(s.exit) })
}

// DidOpen handles textDocument/didOpen notifications.
func (s *Server) DidOpen(ctx context.Context, params *protocol.DidOpenTextDocumentParams) {
	s.logger.Info("DidOpen", zap.String("uri", string(params.TextDocument.URI)))

	doc := &Document{
		URI:     params.TextDocument.URI,
		Version: params.TextDocument.Version,
		Content: params.TextDocument.Text,
	}
	s.analyze(doc)

	// Hold lock only for document map update
	s.mu.Lock()
	s.documents[doc.URI] = doc
	s.mu.Unlock()

	// Publish diagnostics outside the lock to prevent deadlock
	s.publishDiagnostics(ctx, doc)
}

// DidChange handles textDocument/didChange notifications. Only full sync is
// supported, so the last content change holds the whole text.
func (s *Server) DidChange(ctx context.Context, params *protocol.DidChangeTextDocumentParams) {
	start := time.Now()
	uri := params.TextDocument.URI

	if len(params.ContentChanges) == 0 {
		return
	}

	doc, ok := s.Document(uri)
	if !ok {
		s.logger.Warn("DidChange for unknown document", zap.String("uri", string(uri)))

		return
	}

	updated := &Document{
		URI:     uri,
		Version: params.TextDocument.Version,
		Content: params.ContentChanges[len(params.ContentChanges)-1].Text,
	}
	s.analyze(updated)

	// Hold lock only for document map update. A close that raced the
	// analysis wins.
	s.mu.Lock()
	if _, ok := s.documents[uri]; !ok {
		s.mu.Unlock()
		s.logger.Debug("DidChange: document closed during analysis", zap.String("uri", string(uri)))

		return
	}
	s.documents[uri] = updated
	s.mu.Unlock()

	s.logger.Debug("DidChange: analysis complete",
		zap.String("uri", string(uri)),
		zap.Int32("from", doc.Version),
		zap.Int32("to", updated.Version),
		zap.Duration("elapsed", time.Since(start)))

	// Publish diagnostics outside the lock to prevent deadlock.
	s.publishDiagnostics(ctx, updated)
}

// DidClose handles textDocument/didClose notifications.
func (s *Server) DidClose(ctx context.Context, params *protocol.DidCloseTextDocumentParams) {
	s.logger.Info("DidClose", zap.String("uri", string(params.TextDocument.URI)))

	s.mu.Lock()
	delete(s.documents, params.TextDocument.URI)
	s.mu.Unlock()

	err := s.client.PublishDiagnostics(ctx, &protocol.PublishDiagnosticsParams{
		URI:         params.TextDocument.URI,
		Diagnostics: []protocol.Diagnostic{},
	})
	if err != nil {
		s.logger.Error("Failed to clear diagnostics", zap.Error(err))
	}
}

// Document returns an open document by URI.
func (s *Server) Document(uri protocol.DocumentURI) (*Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.documents[uri]

	return doc, ok
}

// analyze parses doc unless it exceeds the configured size limit, in which
// case Result stays nil.
func (s *Server) analyze(doc *Document) {
	if err := s.config.CheckInput(len(doc.Content)); err != nil {
		s.logger.Warn("Skipping oversized document", zap.String("uri", string(doc.URI)), zap.Error(err))
		return
	}

	doc.Result = gql.Parse(doc.Content, gql.WithLogger(s.logger.Named("parser")))
}
