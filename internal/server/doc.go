// Package server implements the MCP (Model Context Protocol) server for the
// image editor.
//
// This package provides a JSON-RPC 2.0 server that drives a single editor
// session. Each tool call is delivered to the editor as one event on its
// event loop, so calls observe the same admission rules an interactive
// editor would: a call that arrives while another operation runs is
// refused rather than queued.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Loading and Editing:
//   - editor_load: Load an image from a path or inline base64 data
//   - editor_binarize: Threshold to black and white (fixed or automatic level)
//   - editor_invert: Invert colour channels
//
// History:
//   - editor_undo, editor_redo: Move through the last 10 entries
//   - editor_cancel: Cancel the running operation
//
// Output:
//   - editor_save: Write image.png to the export directory
//   - editor_render: Return the visible surface as PNG
//   - editor_ocr: Recognize text (tesseract builds only)
//
// Appearance and State:
//   - editor_theme: System preference change or light/dark toggle
//   - editor_status: Busy flag, history position, control states
//
// # Waiting and Cancellation
//
// Requests are handled one at a time. Operation tools wait for completion
// by default; pass "wait": false to return as soon as the operation is
// admitted, then poll editor_status or send editor_cancel.
//
// # Error Handling
//
// A refused event (busy, locked, nothing to undo or redo) is a normal
// result with "accepted": false. Other failures are returned as JSON-RPC
// error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// # Usage
//
//	srv, err := server.New(cfg, logger)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := srv.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
package server
