package lspserver

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/sqlite-ls/completion"
	"github.com/dhamidi/sqlite-ls/grammar"
	"github.com/dhamidi/sqlite-ls/lexer"
	"github.com/dhamidi/sqlite-ls/sqlitels"
)

func discardLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

func TestUriToPathDecodesFileURI(t *testing.T) {
	got, err := uriToPath("file:///tmp/query.sql")
	if err != nil {
		t.Fatalf("uriToPath() error = %v", err)
	}
	if got != "/tmp/query.sql" {
		t.Errorf("uriToPath() = %q, want %q", got, "/tmp/query.sql")
	}
}

func TestUriToPathPassesThroughNonFileURI(t *testing.T) {
	got, err := uriToPath("untitled:Untitled-1")
	if err != nil {
		t.Fatalf("uriToPath() error = %v", err)
	}
	if got != "untitled:Untitled-1" {
		t.Errorf("uriToPath() = %q, want passthrough", got)
	}
}

func TestToProtocolKindMapsEveryItemKind(t *testing.T) {
	cases := []struct {
		in   completion.ItemKind
		want protocol.CompletionItemKind
	}{
		{completion.KindKeyword, protocol.CompletionItemKindKeyword},
		{completion.KindTableName, protocol.CompletionItemKindClass},
		{completion.KindColumnName, protocol.CompletionItemKindField},
		{completion.KindFunctionName, protocol.CompletionItemKindFunction},
	}
	for _, c := range cases {
		if got := toProtocolKind(c.in); got != c.want {
			t.Errorf("toProtocolKind(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestOffsetAtResolvesMultilinePosition(t *testing.T) {
	doc := sqlitels.Parse([]byte("SELECT 1;\nSELECT 2;"), sqlitels.Batch, lexer.DefaultVersion)
	off := offsetAt(doc, protocol.Position{Line: 1, Character: 0})
	if off != 10 { // length of "SELECT 1;\n"
		t.Errorf("offsetAt() = %d, want 10", off)
	}
}

func TestOffsetAtClampsPastEndOfDocument(t *testing.T) {
	doc := sqlitels.Parse([]byte("SELECT 1;"), sqlitels.Batch, lexer.DefaultVersion)
	off := offsetAt(doc, protocol.Position{Line: 99, Character: 0})
	if off != len("SELECT 1;") {
		t.Errorf("offsetAt() = %d, want document length as a fallback", off)
	}
}

func TestRangeToPatchNilRangeReplacesWholeDocument(t *testing.T) {
	doc := sqlitels.Parse([]byte("SELECT 1;"), sqlitels.Batch, lexer.DefaultVersion)
	patch := rangeToPatch(doc, nil, "SELECT 2;")
	if patch.Start != 0 || patch.End != len("SELECT 1;") || patch.NewText != "SELECT 2;" {
		t.Errorf("rangeToPatch(nil) = %+v, want a replacement of the whole document", patch)
	}
}

func TestRangeToPatchConvertsPositionsToOffsets(t *testing.T) {
	doc := sqlitels.Parse([]byte("SELECT 1;"), sqlitels.Batch, lexer.DefaultVersion)
	r := &protocol.Range{
		Start: protocol.Position{Line: 0, Character: 7},
		End:   protocol.Position{Line: 0, Character: 8},
	}
	patch := rangeToPatch(doc, r, "99")
	if patch.Start != 7 || patch.End != 8 || patch.NewText != "99" {
		t.Errorf("rangeToPatch() = %+v, want {Start:7 End:8 NewText:99}", patch)
	}
}

func TestDocumentLifecycleAndCompletion(t *testing.T) {
	g, err := grammar.Parse(`Start = 'SELECT' 'FROM' Name`)
	if err != nil {
		t.Fatalf("grammar.Parse() error = %v", err)
	}
	srv := New("test", g, nil, discardLogger())

	uri := "file:///tmp/q.sql"
	openErr := srv.textDocumentDidOpen(nil, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, Text: "SELECT 1;"},
	})
	if openErr != nil {
		t.Fatalf("textDocumentDidOpen() error = %v", openErr)
	}
	if _, ok := srv.docs["/tmp/q.sql"]; !ok {
		t.Fatalf("document was not registered after didOpen")
	}

	closeErr := srv.textDocumentDidClose(nil, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	if closeErr != nil {
		t.Fatalf("textDocumentDidClose() error = %v", closeErr)
	}
	if _, ok := srv.docs["/tmp/q.sql"]; ok {
		t.Errorf("document still registered after didClose")
	}
}
