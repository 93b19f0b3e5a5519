package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// waitProperty is shared by every tool that starts an editor operation.
var waitProperty = map[string]interface{}{
	"type":        "boolean",
	"description": "Wait for the operation to finish before returning. Default true. Pass false to keep editor_cancel available while it runs.",
	"default":     true,
}

func waitOnlySchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"wait": waitProperty,
		},
	}
}

func emptySchema() map[string]interface{} {
	return map[string]interface{}{
		"type":       "object",
		"properties": map[string]interface{}{},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Loading and Editing
		{
			Name:        "editor_load",
			Description: "Load a PNG, JPEG or GIF image into the editor. The image becomes the newest history entry and is drawn scaled to fit the surface.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"data_base64": map[string]interface{}{
						"type":        "string",
						"description": "Base64-encoded image data, as an alternative to path",
					},
					"wait": waitProperty,
				},
			},
		},
		{
			Name:        "editor_binarize",
			Description: "Threshold the current image to black and white as a new history entry. Channel values above the threshold become 255, the rest 0; alpha is preserved.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"threshold": map[string]interface{}{
						"type":        "integer",
						"description": "Threshold level 0-255. Default from config (128)",
						"minimum":     0,
						"maximum":     255,
					},
					"auto": map[string]interface{}{
						"type":        "boolean",
						"description": "Pick the threshold from the image histogram (Otsu's method) instead",
						"default":     false,
					},
					"wait": waitProperty,
				},
			},
		},
		{
			Name:        "editor_invert",
			Description: "Invert the colour channels of the current image as a new history entry. Alpha is preserved.",
			InputSchema: waitOnlySchema(),
		},

		// History
		{
			Name:        "editor_undo",
			Description: "Step back one history entry and redraw it. Returns accepted=false at the first entry.",
			InputSchema: waitOnlySchema(),
		},
		{
			Name:        "editor_redo",
			Description: "Step forward one history entry and redraw it. Returns accepted=false at the newest entry.",
			InputSchema: waitOnlySchema(),
		},
		{
			Name:        "editor_cancel",
			Description: "Cancel the running operation. An edit that was still being written is discarded and the current image is redrawn.",
			InputSchema: emptySchema(),
		},

		// Output
		{
			Name:        "editor_save",
			Description: "Export the current image as image.png.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"directory": map[string]interface{}{
						"type":        "string",
						"description": "Directory to write image.png into. Default from config",
					},
					"include_data_url": map[string]interface{}{
						"type":        "boolean",
						"description": "Also return the export as a data:image/png;base64 URL",
						"default":     false,
					},
				},
			},
		},
		{
			Name:        "editor_render",
			Description: "Return the visible editor surface as a base64-encoded PNG.",
			InputSchema: emptySchema(),
		},
		{
			Name:        "editor_ocr",
			Description: "Recognize text in the current image with Tesseract. Requires a build with the tesseract tag.",
			InputSchema: waitOnlySchema(),
		},

		// Appearance and State
		{
			Name:        "editor_theme",
			Description: "Change the editor theme: report the system colour-scheme preference or toggle between light and dark.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"prefers_dark": map[string]interface{}{
						"type":        "boolean",
						"description": "The system now prefers a dark (true) or light (false) scheme",
					},
					"toggle": map[string]interface{}{
						"type":        "boolean",
						"description": "Flip between light and dark",
					},
				},
			},
		},
		{
			Name:        "editor_status",
			Description: "Report whether an operation is running, the history position, image size, control states and theme.",
			InputSchema: emptySchema(),
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
