package lsp

import (
	"context"
	"strings"
	"unicode/utf16"

	"go.lsp.dev/protocol"
	"go.uber.org/zap"

	"github.com/rlch/gql/diag"
)

// diagnosticSource identifies our diagnostics in the client.
const diagnosticSource = "gql"

// publishDiagnostics converts the document's diagnostics to LSP format and
// publishes them.
func (s *Server) publishDiagnostics(ctx context.Context, doc *Document) {
	src := diag.NewSource(string(doc.URI), doc.Content)

	var diagnostics []protocol.Diagnostic

	if doc.Result == nil {
		diagnostics = []protocol.Diagnostic{{
			Severity: protocol.DiagnosticSeverityError,
			Source:   diagnosticSource,
			Message:  "document exceeds the configured size limit and was not parsed",
		}}
	} else {
		diagnostics = make([]protocol.Diagnostic, 0, len(doc.Result.Diagnostics))

		for _, d := range doc.Result.Diagnostics {
			diagnostics = append(diagnostics, convertDiagnostic(doc.URI, src, d))
		}
	}

	s.logger.Debug("publishDiagnostics",
		zap.String("uri", string(doc.URI)),
		zap.Int32("version", doc.Version),
		zap.Int("count", len(diagnostics)))

	err := s.client.PublishDiagnostics(ctx, &protocol.PublishDiagnosticsParams{
		URI:         doc.URI,
		Version:     uint32(doc.Version), //nolint:gosec // LSP version numbers are always non-negative
		Diagnostics: diagnostics,
	})
	if err != nil {
		s.logger.Error("publishDiagnostics: RPC failed", zap.Error(err))
	}
}

// convertDiagnostic converts a diag.Diagnostic to an LSP protocol.Diagnostic.
// The range comes from the primary label; secondary labels become related
// information.
func convertDiagnostic(uri protocol.DocumentURI, src *diag.Source, d diag.Diagnostic) protocol.Diagnostic {
	out := protocol.Diagnostic{
		Severity: convertSeverity(d.Severity),
		Source:   diagnosticSource,
		Message:  diagnosticMessage(d),
	}

	if d.Code != "" {
		out.Code = d.Code
	}

	if span, ok := d.PrimarySpan(); ok {
		out.Range = spanToRange(src, span)
	}

	for _, l := range d.Labels {
		if l.Primary || l.Message == "" {
			continue
		}

		out.RelatedInformation = append(out.RelatedInformation, protocol.DiagnosticRelatedInformation{
			Location: protocol.Location{URI: uri, Range: spanToRange(src, l.Span)},
			Message:  l.Message,
		})
	}

	return out
}

func diagnosticMessage(d diag.Diagnostic) string {
	var b strings.Builder

	b.WriteString(d.Message)

	if d.Help != "" {
		b.WriteString("\nhelp: " + d.Help)
	}

	for _, note := range d.Notes {
		b.WriteString("\nnote: " + note)
	}

	return b.String()
}

// convertSeverity converts diag severity to LSP severity.
func convertSeverity(sev diag.Severity) protocol.DiagnosticSeverity {
	switch sev {
	case diag.SeverityError:
		return protocol.DiagnosticSeverityError
	case diag.SeverityWarning:
		return protocol.DiagnosticSeverityWarning
	case diag.SeverityNote:
		return protocol.DiagnosticSeverityInformation
	default:
		return protocol.DiagnosticSeverityError
	}
}

// spanToRange resolves a span to 0-based LSP positions with UTF-16
// character offsets.
func spanToRange(src *diag.Source, span diag.Span) protocol.Range {
	start, end := src.Range(span)

	return protocol.Range{
		Start: lspPosition(src, start.Line, start.Column),
		End:   lspPosition(src, end.Line, end.Column),
	}
}

func lspPosition(src *diag.Source, line, column int) protocol.Position {
	units := 0
	runes := column - 1

	for _, r := range src.Line(line) {
		if runes == 0 {
			break
		}

		units += utf16.RuneLen(r)
		runes--
	}

	// Column past the end of the line text sits on a stripped "\r".
	units += runes

	return protocol.Position{
		Line:      uint32(line - 1), //nolint:gosec // lines are 1-based and positive
		Character: uint32(units),    //nolint:gosec // offsets are non-negative
	}
}
