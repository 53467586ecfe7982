package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ironsheep/image-scaler/pkg/imagefile"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_info", "image_scale").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// ImageResult describes the handle produced by a tool call.
type ImageResult struct {
	Path     string `json:"path"`
	Filename string `json:"filename"`
	imagefile.Metadata
}

// ToolError is the data attached to a failed tool call. Kind is
// "environment" or "image" for the library's error families and "internal"
// for anything else (bad arguments, I/O outside the library).
type ToolError struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000
// and a ToolError as data.
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", ToolError{Kind: "internal", Message: err.Error()})
	}

	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if err != nil {
		s.log.Debug().Err(err).Str("tool", params.Name).Msg("tool failed")
		return s.errorResponse(req.ID, -32000, "Tool execution failed", ToolError{Kind: errorKind(err), Message: err.Error()})
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
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "image_fetch":
		return s.handleImageFetch(ctx, args)
	case "image_info":
		return s.handleImageInfo(args)
	case "image_supported_types":
		return map[string]interface{}{"mime_types": imagefile.SupportedMIMETypes()}, nil
	case "image_scale":
		return s.handleImageScale(args)
	case "image_scale_to_width":
		return s.handleImageScaleToWidth(args)
	case "image_scale_to_height":
		return s.handleImageScaleToHeight(args)
	case "image_save":
		return s.handleImageSave(args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

func errorKind(err error) string {
	switch {
	case imagefile.IsEnvironmentError(err):
		return "environment"
	case imagefile.IsImageError(err):
		return "image"
	default:
		return "internal"
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message string, data interface{}) *MCPResponse {
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
// On marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

func resultFor(img *imagefile.Image) *ImageResult {
	return &ImageResult{
		Path:     img.Path(),
		Filename: img.Filename(),
		Metadata: img.Metadata(),
	}
}

// === Acquisition ===

type imageFetchArgs struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
}

func (s *Server) handleImageFetch(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a imageFetchArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Source == "" || a.Destination == "" {
		return nil, fmt.Errorf("source and destination are required")
	}
	img, err := s.loader.FromURLToLocalPath(ctx, a.Source, a.Destination)
	if err != nil {
		return nil, err
	}
	return resultFor(img), nil
}

// === Basic Image Information ===

type imageInfoArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageInfo(args json.RawMessage) (interface{}, error) {
	var a imageInfoArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.loader.AtLocalPath(a.Path)
	if err != nil {
		return nil, err
	}
	return resultFor(img), nil
}

// === Scaling ===

type imageScaleArgs struct {
	Path        string  `json:"path"`
	Destination string  `json:"destination"`
	Factor      float64 `json:"factor"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
}

func (s *Server) loadForScale(args json.RawMessage) (*imagefile.Image, *imageScaleArgs, error) {
	var a imageScaleArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, nil, err
	}
	if a.Destination == "" {
		return nil, nil, fmt.Errorf("destination is required")
	}
	img, err := s.loader.AtLocalPath(a.Path)
	if err != nil {
		return nil, nil, err
	}
	return img, &a, nil
}

func (s *Server) handleImageScale(args json.RawMessage) (interface{}, error) {
	img, a, err := s.loadForScale(args)
	if err != nil {
		return nil, err
	}
	scaled, err := img.Scale(a.Factor, a.Destination)
	if err != nil {
		return nil, err
	}
	return resultFor(scaled), nil
}

func (s *Server) handleImageScaleToWidth(args json.RawMessage) (interface{}, error) {
	img, a, err := s.loadForScale(args)
	if err != nil {
		return nil, err
	}
	scaled, err := img.ScaleToWidth(a.Width, a.Destination)
	if err != nil {
		return nil, err
	}
	return resultFor(scaled), nil
}

func (s *Server) handleImageScaleToHeight(args json.RawMessage) (interface{}, error) {
	img, a, err := s.loadForScale(args)
	if err != nil {
		return nil, err
	}
	scaled, err := img.ScaleToHeight(a.Height, a.Destination)
	if err != nil {
		return nil, err
	}
	return resultFor(scaled), nil
}

// === Save ===

type imageSaveArgs struct {
	Path              string `json:"path"`
	Destination       string `json:"destination"`
	CreateDirectories *bool  `json:"create_directories"`
}

func (s *Server) handleImageSave(args json.RawMessage) (interface{}, error) {
	var a imageSaveArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Destination == "" {
		return nil, fmt.Errorf("destination is required")
	}
	createDirectories := true
	if a.CreateDirectories != nil {
		createDirectories = *a.CreateDirectories
	}

	img, err := s.loader.AtLocalPath(a.Path)
	if err != nil {
		return nil, err
	}
	if err := img.SaveTo(a.Destination, createDirectories); err != nil {
		return nil, err
	}

	saved, err := s.loader.AtLocalPath(a.Destination)
	if err != nil {
		return nil, err
	}
	return resultFor(saved), nil
}
