package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func stringProp(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": description,
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Acquisition
		{
			Name:        "image_fetch",
			Description: "Copy an image from a URL (http, https, ftp, sftp) or local path to a local destination, validate it and return its metadata. A destination without a dot in its last segment is treated as a directory.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"source":      stringProp("URL or local path of the source image"),
					"destination": stringProp("Local file path or directory to copy into"),
				},
				"required": []string{"source", "destination"},
			},
		},

		// Basic Image Information
		{
			Name:        "image_info",
			Description: "Validate a local image file and return its width, height, type code, attr string, bit depth, channel count and MIME type.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": stringProp("Absolute path to the image file"),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_supported_types",
			Description: "List the MIME types accepted by the validator.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},

		// Scaling
		{
			Name:        "image_scale",
			Description: "Scale an image uniformly by a factor and save the result. The new width is the current width times the factor, truncated; the height follows proportionally.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":        stringProp("Absolute path to the source image"),
					"destination": stringProp("Path the scaled JPEG is written to"),
					"factor": map[string]interface{}{
						"type":        "number",
						"description": "Scale factor (e.g., 0.5 for half size)",
					},
				},
				"required": []string{"path", "destination", "factor"},
			},
		},
		{
			Name:        "image_scale_to_width",
			Description: "Scale an image to an exact width, preserving aspect ratio, and save the result.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":        stringProp("Absolute path to the source image"),
					"destination": stringProp("Path the scaled JPEG is written to"),
					"width": map[string]interface{}{
						"type":        "integer",
						"description": "Target width in pixels",
					},
				},
				"required": []string{"path", "destination", "width"},
			},
		},
		{
			Name:        "image_scale_to_height",
			Description: "Scale an image to a target height (within one pixel), preserving aspect ratio, and save the result.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":        stringProp("Absolute path to the source image"),
					"destination": stringProp("Path the scaled JPEG is written to"),
					"height": map[string]interface{}{
						"type":        "integer",
						"description": "Target height in pixels",
					},
				},
				"required": []string{"path", "destination", "height"},
			},
		},
		{
			Name:        "image_save",
			Description: "Re-encode a validated image to another path, creating missing directories unless create_directories is false.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":        stringProp("Absolute path to the source image"),
					"destination": stringProp("Path the copy is written to"),
					"create_directories": map[string]interface{}{
						"type":        "boolean",
						"description": "Create missing parent directories. Default true",
						"default":     true,
					},
				},
				"required": []string{"path", "destination"},
			},
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
