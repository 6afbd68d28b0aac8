package main

import (
	"context"
	"encoding/json"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/rlch/gql"
)

func TestServe(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	clientSide, serverSide := net.Pipe()

	done := make(chan error, 1)
	go func() {
		done <- serve(ctx, gql.DefaultConfig(), zap.NewAtomicLevelAt(zapcore.ErrorLevel), serverSide)
	}()

	published := make(chan *protocol.PublishDiagnosticsParams, 4)

	conn := jsonrpc2.NewConn(jsonrpc2.NewStream(clientSide))
	conn.Go(ctx, func(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
		if req.Method() == protocol.MethodTextDocumentPublishDiagnostics {
			var params protocol.PublishDiagnosticsParams
			if err := json.Unmarshal(req.Params(), &params); err == nil {
				published <- &params
			}
		}

		return reply(ctx, nil, nil)
	})
	defer conn.Close()

	var result protocol.InitializeResult
	_, err := conn.Call(ctx, protocol.MethodInitialize, &protocol.InitializeParams{}, &result)
	require.NoError(t, err)
	assert.Equal(t, "gql-lsp", result.ServerInfo.Name)

	require.NoError(t, conn.Notify(ctx, protocol.MethodTextDocumentDidOpen, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: "file:///q.gql", Version: 1, Text: "RETURN a < b < c"},
	}))

	select {
	case params := <-published:
		require.Len(t, params.Diagnostics, 1)
		assert.Equal(t, "P003", params.Diagnostics[0].Code)
	case <-time.After(5 * time.Second):
		t.Fatal("no diagnostics published")
	}

	require.NoError(t, conn.Notify(ctx, protocol.MethodExit, nil))

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after exit")
	}
}
