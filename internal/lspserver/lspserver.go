// Package lspserver exposes the parsing and completion core over the
// Language Server Protocol: one handler struct wired to protocol.Handler
// callbacks, backed by an in-memory table of open documents.
package lspserver

import (
	"net/url"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"

	"github.com/dhamidi/sqlite-ls/completion"
	"github.com/dhamidi/sqlite-ls/cst"
	"github.com/dhamidi/sqlite-ls/grammar"
	"github.com/dhamidi/sqlite-ls/incremental"
	"github.com/dhamidi/sqlite-ls/lexer"
	"github.com/dhamidi/sqlite-ls/parser"
	"github.com/dhamidi/sqlite-ls/sqlitels"
)

const lsName = "sqlite-ls"

// diagnosticSource is the Source value attached to every diagnostic; taken
// by address, so it must be a var rather than a const.
var diagnosticSource = lsName

// Server is the LSP front end: one glsp server plus the open-document
// table it mutates on every didOpen/didChange/didClose notification.
type Server struct {
	handler protocol.Handler
	server  *server.Server
	version string
	log     *logrus.Entry

	grammar *grammar.Grammar
	schema  completion.Schema

	mu   sync.Mutex
	docs map[string]*sqlitels.Document
}

// New builds a Server ready to run; g and schema may be nil. With a nil g,
// completion requests return no items instead of erroring; with a nil
// schema, completion offers no table or column names.
func New(version string, g *grammar.Grammar, schema completion.Schema, log *logrus.Entry) *Server {
	s := &Server{
		version: version,
		grammar: g,
		schema:  schema,
		log:     log,
		docs:    map[string]*sqlitels.Document{},
	}

	s.handler = protocol.Handler{
		Initialize:             s.initialize,
		Initialized:            s.initialized,
		Shutdown:               s.shutdown,
		SetTrace:               s.setTrace,
		TextDocumentDidOpen:    s.textDocumentDidOpen,
		TextDocumentDidChange:  s.textDocumentDidChange,
		TextDocumentDidClose:   s.textDocumentDidClose,
		TextDocumentCompletion: s.textDocumentCompletion,
	}
	s.server = server.NewServer(&s.handler, lsName, false)
	return s
}

// RunStdio runs the server over stdin/stdout, blocking until the client
// disconnects or the process is signalled to stop.
func (s *Server) RunStdio() error {
	return s.server.RunStdio()
}

func (s *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := s.handler.CreateServerCapabilities()
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindIncremental),
	}
	capabilities.CompletionProvider = &protocol.CompletionOptions{
		TriggerCharacters: []string{" ", ".", "("},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &s.version,
		},
	}, nil
}

func (s *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	s.log.Info("server initialized")
	return nil
}

func (s *Server) shutdown(ctx *glsp.Context) error { return nil }

func (s *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (s *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	doc := sqlitels.Parse([]byte(params.TextDocument.Text), sqlitels.BranchIndexed, lexer.DefaultVersion)
	s.mu.Lock()
	s.docs[path] = doc
	s.mu.Unlock()
	s.publishDiagnostics(ctx, params.TextDocument.URI, doc)
	return nil
}

func (s *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	s.mu.Lock()
	doc, ok := s.docs[path]
	s.mu.Unlock()
	if !ok {
		return nil
	}
	for _, raw := range params.ContentChanges {
		switch change := raw.(type) {
		case protocol.TextDocumentContentChangeEvent:
			patch := rangeToPatch(doc, change.Range, change.Text)
			doc.ApplyPatch(patch)
		case protocol.TextDocumentContentChangeEventWhole:
			*doc = *sqlitels.Parse([]byte(change.Text), sqlitels.BranchIndexed, lexer.DefaultVersion)
		}
	}
	s.publishDiagnostics(ctx, params.TextDocument.URI, doc)
	return nil
}

// publishDiagnostics walks doc's CST for error nodes and reports every one
// of them except the recoverable missing-semicolon marker, which is noise
// rather than a diagnostic a user can act on.
func (s *Server) publishDiagnostics(ctx *glsp.Context, uri string, doc *sqlitels.Document) {
	tree := doc.Tree()
	errNodes := cst.Errors(tree, tree.Root())

	diagnostics := make([]protocol.Diagnostic, 0, len(errNodes))
	for _, n := range errNodes {
		err := tree.Error(n)
		if parser.IsMissingSemicolonErr(err) {
			continue
		}
		severity := protocol.DiagnosticSeverityError
		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range: protocol.Range{
				Start: positionAt(doc, tree.Start(n)),
				End:   positionAt(doc, tree.End(n)),
			},
			Severity: &severity,
			Source:   &diagnosticSource,
			Message:  err.String(),
		})
	}

	if ctx == nil {
		return
	}
	ctx.Notify("textDocument/publishDiagnostics", protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func (s *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	s.mu.Lock()
	delete(s.docs, path)
	s.mu.Unlock()
	return nil
}

func (s *Server) textDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (any, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil || s.grammar == nil {
		return nil, nil
	}
	s.mu.Lock()
	doc, ok := s.docs[path]
	s.mu.Unlock()
	if !ok {
		return nil, nil
	}

	pos := offsetAt(doc, params.Position)
	results := doc.Complete(s.grammar, s.schema, pos)

	items := make([]protocol.CompletionItem, 0, len(results))
	for _, r := range results {
		kind := toProtocolKind(r.Kind)
		items = append(items, protocol.CompletionItem{
			Label: r.Label,
			Kind:  &kind,
		})
	}
	return items, nil
}

func toProtocolKind(k completion.ItemKind) protocol.CompletionItemKind {
	switch k {
	case completion.KindKeyword:
		return protocol.CompletionItemKindKeyword
	case completion.KindTableName:
		return protocol.CompletionItemKindClass
	case completion.KindColumnName:
		return protocol.CompletionItemKindField
	case completion.KindFunctionName:
		return protocol.CompletionItemKindFunction
	default:
		return protocol.CompletionItemKindText
	}
}

// offsetAt converts an LSP line/character position into a byte offset by
// walking the document's leading token text; this is O(document) per
// request, acceptable for the completion path which already re-walks the
// tree for target-node lookup.
func offsetAt(doc *sqlitels.Document, pos protocol.Position) int {
	tree := doc.Tree()
	text := cst.TextOf(tree, tree.Root())
	line, col := 0, 0
	for i, b := range []byte(text) {
		if line == int(pos.Line) && col == int(pos.Character) {
			return i
		}
		if b == '\n' {
			line++
			col = 0
		} else {
			col++
		}
	}
	return len(text)
}

// positionAt is offsetAt's inverse: it converts a byte offset into the
// document back into an LSP line/character position.
func positionAt(doc *sqlitels.Document, offset int) protocol.Position {
	tree := doc.Tree()
	text := cst.TextOf(tree, tree.Root())
	if offset > len(text) {
		offset = len(text)
	}
	line, col := 0, 0
	for i := 0; i < offset; i++ {
		if text[i] == '\n' {
			line++
			col = 0
		} else {
			col++
		}
	}
	return protocol.Position{Line: uint32(line), Character: uint32(col)}
}

func rangeToPatch(doc *sqlitels.Document, r *protocol.Range, text string) incremental.TextPatch {
	if r == nil {
		tree := doc.Tree()
		return incremental.TextPatch{Start: 0, End: len(cst.TextOf(tree, tree.Root())), NewText: text}
	}
	start := offsetAt(doc, r.Start)
	end := offsetAt(doc, r.End)
	return incremental.TextPatch{Start: start, End: end, NewText: text}
}

func uriToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(parsed.Path), nil
	}
	return uri, nil
}

func boolPtr(b bool) *bool { return &b }

func syncKindPtr(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind { return &k }
