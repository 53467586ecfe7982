// Package server implements an MCP (Model Context Protocol) server that
// exposes the image acquisition and scaling operations as tools.
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
// Acquisition:
//   - image_fetch: Copy a remote or local image to a local path and validate it
//
// Basic Image Information:
//   - image_info: Validate a local file and return its metadata
//   - image_supported_types: List accepted MIME types
//
// Scaling:
//   - image_scale: Scale by a factor
//   - image_scale_to_width: Scale to an exact width
//   - image_scale_to_height: Scale to a height (within one pixel)
//   - image_save: Re-encode to another path
//
// Every scaling tool writes its result to disk and reports the metadata of
// the written file.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: a ToolError whose kind is "environment", "image" or "internal"
//
// # Usage
//
//	srv := server.New(loader, log)
//	if err := srv.Run(ctx, os.Stdin, os.Stdout); err != nil {
//	    log.Fatal().Err(err).Msg("server error")
//	}
package server
