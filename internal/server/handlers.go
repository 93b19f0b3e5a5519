package server

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/ironsheep/image-editor-mcp/internal/editor"
	"github.com/ironsheep/image-editor-mcp/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "editor_load", "editor_binarize").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
// A busy or locked editor is not an error: the result reports
// "accepted": false with the reason.
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Every handler reaches the editor through onLoop, so each tool call is one
// event on the editor's event loop.
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Loading and Editing
	case "editor_load":
		return s.handleEditorLoad(ctx, args)
	case "editor_binarize":
		return s.handleEditorBinarize(ctx, args)
	case "editor_invert":
		return s.handleEditorInvert(ctx, args)

	// History
	case "editor_undo":
		return s.handleEditorUndo(ctx, args)
	case "editor_redo":
		return s.handleEditorRedo(ctx, args)
	case "editor_cancel":
		return s.handleEditorCancel(ctx)

	// Output
	case "editor_save":
		return s.handleEditorSave(ctx, args)
	case "editor_render":
		return s.handleEditorRender(ctx)
	case "editor_ocr":
		return s.handleEditorOCR(ctx, args)

	// Appearance and State
	case "editor_theme":
		return s.handleEditorTheme(ctx, args)
	case "editor_status":
		return s.handleEditorStatus(ctx)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// unmarshalArgs decodes optional tool arguments; absent arguments are fine.
func unmarshalArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 || string(args) == "null" {
		return nil
	}
	return json.Unmarshal(args, v)
}

// onLoop runs fn as a task on the editor's event loop and waits for it.
func (s *Server) onLoop(ctx context.Context, fn func() error) error {
	var err error
	if callErr := s.loop.Call(ctx, func() { err = fn() }); callErr != nil {
		return callErr
	}
	return err
}

// OperationResult reports the outcome of an admission-gated tool call.
type OperationResult struct {
	// Accepted is false when the editor refused the event (busy, locked,
	// no image, or nothing to undo/redo). Reason says why.
	Accepted bool   `json:"accepted"`
	Reason   string `json:"reason,omitempty"`

	Operation  string            `json:"operation"`
	Generation editor.Generation `json:"generation,omitempty"`

	// Completed is true once the operation finished. It stays false when
	// the call did not wait, or when the operation was cancelled.
	Completed  bool `json:"completed"`
	Superseded bool `json:"superseded,omitempty"`

	Text   string              `json:"text,omitempty"`
	Source *imaging.SourceInfo `json:"source,omitempty"`
	Status *editor.Status      `json:"status,omitempty"`
}

// waitArgs is embedded by tools that start an operation.
type waitArgs struct {
	// Wait defaults to true. With wait false the call returns as soon as
	// the operation is admitted, leaving room for editor_cancel.
	Wait *bool `json:"wait"`
}

func (w waitArgs) shouldWait() bool {
	return w.Wait == nil || *w.Wait
}

// refused reports whether err is a refusal reported as a result rather than
// a tool error. A missing image is logged by the editor and otherwise ignored.
func refused(err error) bool {
	return editor.IsControlFlow(err) || errors.Is(err, editor.ErrNoImage)
}

// runOperation posts start to the loop and, if asked, waits for the
// operation it admits.
func (s *Server) runOperation(ctx context.Context, kind string, wait bool, start func() (*editor.Operation, error)) (*OperationResult, error) {
	res := &OperationResult{Operation: kind}

	var op *editor.Operation
	err := s.onLoop(ctx, func() error {
		var err error
		op, err = start()
		return err
	})
	if err != nil {
		if refused(err) {
			res.Reason = err.Error()
			return s.withStatus(ctx, res)
		}
		return nil, err
	}

	res.Accepted = true
	res.Generation = op.Generation
	if wait {
		out, err := op.Wait(ctx)
		switch {
		case errors.Is(err, editor.ErrSuperseded):
			res.Superseded = true
		case err != nil:
			return nil, fmt.Errorf("%s failed: %w", kind, err)
		default:
			res.Completed = true
			res.Text = out.Text
		}
	}
	return s.withStatus(ctx, res)
}

func (s *Server) withStatus(ctx context.Context, res *OperationResult) (*OperationResult, error) {
	err := s.onLoop(ctx, func() error {
		st, err := s.session.Status()
		res.Status = st
		return err
	})
	if err != nil && !errors.Is(err, editor.ErrLocked) {
		return nil, err
	}
	return res, nil
}

// === Loading and Editing Handlers ===

type editorLoadArgs struct {
	waitArgs
	Path       string `json:"path"`
	DataBase64 string `json:"data_base64"`
}

func (s *Server) handleEditorLoad(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a editorLoadArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}

	var data []byte
	var info *imaging.SourceInfo
	var err error
	switch {
	case a.Path != "" && a.DataBase64 != "":
		return nil, fmt.Errorf("provide either path or data_base64, not both")
	case a.Path != "":
		data, info, err = imaging.ReadSource(a.Path)
	case a.DataBase64 != "":
		data, err = base64.StdEncoding.DecodeString(a.DataBase64)
		if err != nil {
			return nil, fmt.Errorf("invalid data_base64: %w", err)
		}
		info, err = imaging.DescribeSource(data)
	default:
		return nil, fmt.Errorf("path or data_base64 is required")
	}
	if err != nil {
		return nil, err
	}

	res, err := s.runOperation(ctx, "load", a.shouldWait(), func() (*editor.Operation, error) {
		return s.session.Load(data)
	})
	if err != nil {
		return nil, err
	}
	res.Source = info
	return res, nil
}

type editorBinarizeArgs struct {
	waitArgs
	Threshold *int `json:"threshold"`
	Auto      bool `json:"auto"`
}

func (s *Server) handleEditorBinarize(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a editorBinarizeArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	level := s.cfg.Threshold
	if a.Threshold != nil {
		level = *a.Threshold
	}
	if level < 0 || level > 255 {
		return nil, fmt.Errorf("threshold must be between 0 and 255, got %d", level)
	}

	t := editor.Threshold{Level: uint8(level), Auto: a.Auto}
	return s.runOperation(ctx, "binarize", a.shouldWait(), func() (*editor.Operation, error) {
		return s.session.Binarize(t)
	})
}

func (s *Server) handleEditorInvert(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a waitArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	return s.runOperation(ctx, "invert", a.shouldWait(), s.session.Invert)
}

// === History Handlers ===

func (s *Server) handleEditorUndo(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a waitArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	return s.runOperation(ctx, "undo", a.shouldWait(), s.session.Undo)
}

func (s *Server) handleEditorRedo(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a waitArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	return s.runOperation(ctx, "redo", a.shouldWait(), s.session.Redo)
}

// CancelResult reports what editor_cancel superseded.
type CancelResult struct {
	Cancelled  bool              `json:"cancelled"`
	Generation editor.Generation `json:"generation,omitempty"`
	Status     *editor.Status    `json:"status,omitempty"`
}

func (s *Server) handleEditorCancel(ctx context.Context) (interface{}, error) {
	res := &CancelResult{}
	err := s.onLoop(ctx, func() error {
		g, cancelled, err := s.session.Cancel()
		if err != nil {
			return err
		}
		res.Cancelled, res.Generation = cancelled, g
		res.Status, err = s.session.Status()
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// === Output Handlers ===

type editorSaveArgs struct {
	Directory      string `json:"directory"`
	IncludeDataURL bool   `json:"include_data_url"`
}

// SaveResult describes a written export, or why none was written.
type SaveResult struct {
	Accepted bool   `json:"accepted"`
	Reason   string `json:"reason,omitempty"`

	Filename string `json:"filename,omitempty"`
	Path     string `json:"path,omitempty"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
	DataURL  string `json:"data_url,omitempty"`
}

func (s *Server) handleEditorSave(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a editorSaveArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	dir := a.Directory
	if dir == "" {
		dir = s.cfg.ExportDir
	}

	var exp *editor.Export
	err := s.onLoop(ctx, func() error {
		var err error
		exp, err = s.session.Save()
		return err
	})
	if err != nil {
		if refused(err) {
			return &SaveResult{Reason: err.Error()}, nil
		}
		return nil, err
	}

	path := filepath.Join(dir, exp.Filename)
	if err := imaging.SaveFile(exp.Image, path); err != nil {
		return nil, err
	}
	b := exp.Image.Bounds()
	res := &SaveResult{
		Accepted: true,
		Filename: exp.Filename,
		Path:     path,
		Width:    b.Dx(),
		Height:   b.Dy(),
	}
	if a.IncludeDataURL {
		res.DataURL = exp.DataURL
	}
	return res, nil
}

// RenderResult is the visible surface as a PNG.
type RenderResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	MimeType    string `json:"mime_type"`
	ImageBase64 string `json:"image_base64"`
}

func (s *Server) handleEditorRender(ctx context.Context) (interface{}, error) {
	var res *RenderResult
	err := s.onLoop(ctx, func() error {
		img, err := s.session.Render()
		if err != nil {
			return err
		}
		data, err := imaging.EncodePNG(img)
		if err != nil {
			return err
		}
		b := img.Bounds()
		res = &RenderResult{
			Width:       b.Dx(),
			Height:      b.Dy(),
			MimeType:    imaging.PNGMimeType,
			ImageBase64: base64.StdEncoding.EncodeToString(data),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *Server) handleEditorOCR(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a waitArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	return s.runOperation(ctx, "recognize", a.shouldWait(), s.session.Recognize)
}

// === Appearance and State Handlers ===

type editorThemeArgs struct {
	PrefersDark *bool `json:"prefers_dark"`
	Toggle      bool  `json:"toggle"`
}

func (s *Server) handleEditorTheme(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a editorThemeArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Toggle == (a.PrefersDark != nil) {
		return nil, fmt.Errorf("provide exactly one of prefers_dark or toggle")
	}

	var st *editor.Status
	err := s.onLoop(ctx, func() error {
		var err error
		if a.Toggle {
			_, err = s.session.ToggleTheme()
		} else {
			_, err = s.session.SetSystemPreference(*a.PrefersDark)
		}
		if err != nil {
			return err
		}
		st, err = s.session.Status()
		return err
	})
	if err != nil {
		return nil, err
	}
	return st, nil
}

func (s *Server) handleEditorStatus(ctx context.Context) (interface{}, error) {
	var st *editor.Status
	err := s.onLoop(ctx, func() error {
		var err error
		st, err = s.session.Status()
		return err
	})
	if err != nil {
		return nil, err
	}
	return st, nil
}
