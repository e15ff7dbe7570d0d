package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/mgomes/calcengine/calc"
	"go.uber.org/zap"
)

type lspInboundMessage struct {
	JSONRPC string           `json:"jsonrpc"`
	ID      *json.RawMessage `json:"id,omitempty"`
	Method  string           `json:"method,omitempty"`
	Params  json.RawMessage  `json:"params,omitempty"`
}

type lspResponseError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type lspOutboundMessage struct {
	JSONRPC string            `json:"jsonrpc"`
	ID      *json.RawMessage  `json:"id,omitempty"`
	Method  string            `json:"method,omitempty"`
	Params  any               `json:"params,omitempty"`
	Result  any               `json:"result,omitempty"`
	Error   *lspResponseError `json:"error,omitempty"`
}

// MarshalJSON writes "result":null for successful responses that carry no
// value. Notifications and error responses omit it.
func (m lspOutboundMessage) MarshalJSON() ([]byte, error) {
	type wire lspOutboundMessage
	if m.ID == nil || m.Method != "" || m.Error != nil {
		return json.Marshal(wire(m))
	}
	return json.Marshal(struct {
		wire
		Result any `json:"result"`
	}{wire: wire(m), Result: m.Result})
}

type lspDidOpenParams struct {
	TextDocument struct {
		URI  string `json:"uri"`
		Text string `json:"text"`
	} `json:"textDocument"`
}

type lspDidChangeParams struct {
	TextDocument struct {
		URI string `json:"uri"`
	} `json:"textDocument"`
	ContentChanges []struct {
		Text string `json:"text"`
	} `json:"contentChanges"`
}

type lspDidCloseParams struct {
	TextDocument struct {
		URI string `json:"uri"`
	} `json:"textDocument"`
}

type lspTextDocumentPositionParams struct {
	TextDocument struct {
		URI string `json:"uri"`
	} `json:"textDocument"`
	Position struct {
		Line      int `json:"line"`
		Character int `json:"character"`
	} `json:"position"`
}

// lspServer speaks just enough of the language server protocol to publish
// per-line diagnostics for .calc documents and show results on hover.
type lspServer struct {
	reader    *bufio.Reader
	writer    *bufio.Writer
	engine    *calc.Engine
	precision int
	log       *zap.Logger
	docs      map[string]string
}

func newLSPServer(r io.Reader, w io.Writer, sess *session) *lspServer {
	return &lspServer{
		reader:    bufio.NewReader(r),
		writer:    bufio.NewWriter(w),
		engine:    sess.engine,
		precision: sess.cfg.Precision,
		log:       sess.log.Named("lsp"),
		docs:      make(map[string]string),
	}
}

func lspCommand(args []string) error {
	fs := flag.NewFlagSet("lsp", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	common := registerCommonFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	sess, err := common.session(fs)
	if err != nil {
		return err
	}
	defer sess.close()

	return newLSPServer(os.Stdin, os.Stdout, sess).serve()
}

func (s *lspServer) serve() error {
	for {
		payload, err := s.readPayload()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}

		var incoming lspInboundMessage
		if err := json.Unmarshal(payload, &incoming); err != nil {
			s.log.Debug("dropping malformed message", zap.Error(err))
			continue
		}

		messages := s.handleMessage(incoming)
		for _, msg := range messages {
			if err := s.writePayload(msg); err != nil {
				return err
			}
		}

		if incoming.Method == "exit" {
			return nil
		}
	}
}

func (s *lspServer) handleMessage(incoming lspInboundMessage) []lspOutboundMessage {
	switch incoming.Method {
	case "initialize":
		return []lspOutboundMessage{
			{
				JSONRPC: "2.0",
				ID:      incoming.ID,
				Result: map[string]any{
					"capabilities": map[string]any{
						"textDocumentSync": 1,
						"hoverProvider":    true,
					},
					"serverInfo": map[string]any{
						"name": "calc-lsp",
					},
				},
			},
		}
	case "initialized":
		return nil
	case "shutdown":
		if incoming.ID == nil {
			return nil
		}
		return []lspOutboundMessage{{JSONRPC: "2.0", ID: incoming.ID, Result: nil}}
	case "exit":
		return nil
	case "textDocument/didOpen":
		var params lspDidOpenParams
		if err := json.Unmarshal(incoming.Params, &params); err != nil {
			return nil
		}
		s.docs[params.TextDocument.URI] = params.TextDocument.Text
		return []lspOutboundMessage{
			s.publishDiagnostics(params.TextDocument.URI, params.TextDocument.Text),
		}
	case "textDocument/didChange":
		var params lspDidChangeParams
		if err := json.Unmarshal(incoming.Params, &params); err != nil {
			return nil
		}
		if len(params.ContentChanges) == 0 {
			return nil
		}
		latest := params.ContentChanges[len(params.ContentChanges)-1].Text
		s.docs[params.TextDocument.URI] = latest
		return []lspOutboundMessage{
			s.publishDiagnostics(params.TextDocument.URI, latest),
		}
	case "textDocument/didClose":
		var params lspDidCloseParams
		if err := json.Unmarshal(incoming.Params, &params); err != nil {
			return nil
		}
		delete(s.docs, params.TextDocument.URI)
		return nil
	case "textDocument/hover":
		if incoming.ID == nil {
			return nil
		}
		var params lspTextDocumentPositionParams
		if err := json.Unmarshal(incoming.Params, &params); err != nil {
			return []lspOutboundMessage{
				{
					JSONRPC: "2.0",
					ID:      incoming.ID,
					Error:   &lspResponseError{Code: -32602, Message: "invalid hover params"},
				},
			}
		}
		source := s.docs[params.TextDocument.URI]
		value := s.hoverText(source, params.Position.Line)
		if value == "" {
			return []lspOutboundMessage{
				{JSONRPC: "2.0", ID: incoming.ID, Result: nil},
			}
		}
		return []lspOutboundMessage{
			{
				JSONRPC: "2.0",
				ID:      incoming.ID,
				Result: map[string]any{
					"contents": map[string]any{
						"kind":  "markdown",
						"value": value,
					},
				},
			},
		}
	default:
		if incoming.ID == nil {
			return nil
		}
		return []lspOutboundMessage{
			{
				JSONRPC: "2.0",
				ID:      incoming.ID,
				Error: &lspResponseError{
					Code:    -32601,
					Message: "method not found",
				},
			},
		}
	}
}

func (s *lspServer) publishDiagnostics(uri, source string) lspOutboundMessage {
	return lspOutboundMessage{
		JSONRPC: "2.0",
		Method:  "textDocument/publishDiagnostics",
		Params: map[string]any{
			"uri":         uri,
			"diagnostics": diagnosticsForSource(s.engine, source),
		},
	}
}

func diagnosticsForSource(engine *calc.Engine, source string) []map[string]any {
	lines, err := scanExpressions(strings.NewReader(source))
	if err != nil {
		return []map[string]any{newDiagnostic(0, 0, err.Error())}
	}

	rawLines := strings.Split(source, "\n")
	issues := checkExpressions(engine, "", lines)
	out := make([]map[string]any, 0, len(issues))
	for _, issue := range issues {
		lineIdx := max(0, issue.Line-1)
		character := 0
		if lineIdx < len(rawLines) {
			character = utf16Offset(rawLines[lineIdx], issue.Column-1)
		}
		out = append(out, newDiagnostic(lineIdx, character, issue.Message))
	}
	return out
}

func newDiagnostic(line, character int, message string) map[string]any {
	return map[string]any{
		"range": map[string]any{
			"start": map[string]any{
				"line":      line,
				"character": character,
			},
			"end": map[string]any{
				"line":      line,
				"character": character + 1,
			},
		},
		"severity": 1,
		"source":   "calc-lsp",
		"message":  message,
	}
}

// hoverText evaluates the expression on the given zero-based line. Blank
// lines and comments produce no hover.
func (s *lspServer) hoverText(source string, line int) string {
	rawLines := strings.Split(source, "\n")
	if line < 0 || line >= len(rawLines) {
		return ""
	}
	text := strings.TrimSpace(rawLines[line])
	if text == "" || strings.HasPrefix(text, "#") {
		return ""
	}

	program, err := s.engine.Compile(text)
	if err != nil {
		return fmt.Sprintf("`%s`\n\n%s", text, hoverError(err))
	}
	value, err := program.Eval()
	if err != nil {
		return fmt.Sprintf("`%s`\n\n%s", text, hoverError(err))
	}
	return fmt.Sprintf("`%s = %s`\n\npostfix: `%s`", text, calc.FormatNumberPrecision(value, s.precision), program.String())
}

func hoverError(err error) string {
	var calcErr *calc.Error
	if errors.As(err, &calcErr) {
		return "error: " + calcErr.Msg
	}
	return "error: " + err.Error()
}

// utf16Offset converts a rune column into the UTF-16 code unit offset
// clients expect.
func utf16Offset(line string, runeCol int) int {
	offset := 0
	for i, r := range []rune(line) {
		if i >= runeCol {
			break
		}
		offset += len(utf16.Encode([]rune{r}))
	}
	return offset
}

func (s *lspServer) readPayload() ([]byte, error) {
	contentLength := -1
	for {
		line, err := s.reader.ReadString('\n')
		if err != nil {
			return nil, err
		}
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			break
		}
		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			continue
		}
		name := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		if strings.EqualFold(name, "Content-Length") {
			n, err := strconv.Atoi(value)
			if err != nil {
				return nil, fmt.Errorf("invalid Content-Length: %w", err)
			}
			contentLength = n
		}
	}

	if contentLength < 0 {
		return nil, fmt.Errorf("missing Content-Length header")
	}
	payload := make([]byte, contentLength)
	if _, err := io.ReadFull(s.reader, payload); err != nil {
		return nil, err
	}
	return payload, nil
}

func (s *lspServer) writePayload(msg lspOutboundMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(s.writer, "Content-Length: %d\r\n\r\n", len(data)); err != nil {
		return err
	}
	if _, err := s.writer.Write(data); err != nil {
		return err
	}
	return s.writer.Flush()
}
