package server

import (
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/jpeg"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

// createTestImageFile creates a JPEG test image in a temp dir and returns its path
func createTestImageFile(t *testing.T, width, height int, c color.Color) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}

	path := filepath.Join(t.TempDir(), "handler-test.jpg")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer f.Close()

	if err := jpeg.Encode(f, img, nil); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}

	return path
}

func callTool(t *testing.T, s *Server, name string, args map[string]interface{}) *MCPResponse {
	t.Helper()
	params, _ := json.Marshal(map[string]interface{}{
		"name":      name,
		"arguments": args,
	})

	resp := s.handleRequest(context.Background(), &MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/call",
		Params:  params,
	})
	if resp == nil {
		t.Fatal("handleRequest returned nil")
	}
	return resp
}

// decodeImageResult extracts the ImageResult from a successful tool response.
func decodeImageResult(t *testing.T, resp *MCPResponse) ImageResult {
	t.Helper()
	if resp.Error != nil {
		t.Fatalf("Unexpected error: %+v", resp.Error)
	}

	result := resp.Result.(map[string]interface{})
	content := result["content"].([]map[string]interface{})
	text := content[0]["text"].(string)

	var r ImageResult
	if err := json.Unmarshal([]byte(text), &r); err != nil {
		t.Fatalf("failed to decode result %q: %v", text, err)
	}
	return r
}

func toolErrorKind(t *testing.T, resp *MCPResponse) string {
	t.Helper()
	if resp.Error == nil {
		t.Fatal("expected an error response")
	}
	if resp.Error.Code != -32000 {
		t.Errorf("Error.Code: got %d, want -32000", resp.Error.Code)
	}
	te, ok := resp.Error.Data.(ToolError)
	if !ok {
		t.Fatalf("Error.Data should be a ToolError, got %T", resp.Error.Data)
	}
	return te.Kind
}

func TestHandleToolsCall_ImageInfo(t *testing.T) {
	s := newTestServer()
	imgPath := createTestImageFile(t, 100, 80, color.RGBA{255, 0, 0, 255})

	r := decodeImageResult(t, callTool(t, s, "image_info", map[string]interface{}{"path": imgPath}))

	if r.Width != 100 || r.Height != 80 {
		t.Errorf("dimensions: got %dx%d, want 100x80", r.Width, r.Height)
	}
	if r.MIME != "image/jpeg" {
		t.Errorf("MIME: got %s, want image/jpeg", r.MIME)
	}
	if r.Filename != "handler-test.jpg" {
		t.Errorf("Filename: got %s", r.Filename)
	}
	if r.Attr != `width="100" height="80"` {
		t.Errorf("Attr: got %s", r.Attr)
	}
}

func TestHandleToolsCall_ImageInfo_NotFound(t *testing.T) {
	s := newTestServer()
	resp := callTool(t, s, "image_info", map[string]interface{}{"path": "/nonexistent/image.jpg"})

	if kind := toolErrorKind(t, resp); kind != "image" {
		t.Errorf("kind: got %s, want image", kind)
	}
}

func TestHandleToolsCall_ImageScale(t *testing.T) {
	s := newTestServer()
	imgPath := createTestImageFile(t, 200, 100, color.RGBA{0, 255, 0, 255})
	dest := filepath.Join(t.TempDir(), "thumbs", "half.jpg")

	r := decodeImageResult(t, callTool(t, s, "image_scale", map[string]interface{}{
		"path":        imgPath,
		"destination": dest,
		"factor":      0.5,
	}))

	if r.Width != 100 || r.Height != 50 {
		t.Errorf("dimensions: got %dx%d, want 100x50", r.Width, r.Height)
	}
	if r.Path != dest {
		t.Errorf("Path: got %s, want %s", r.Path, dest)
	}
}

func TestHandleToolsCall_ImageScale_InvalidFactor(t *testing.T) {
	s := newTestServer()
	imgPath := createTestImageFile(t, 20, 20, color.RGBA{0, 0, 255, 255})

	resp := callTool(t, s, "image_scale", map[string]interface{}{
		"path":        imgPath,
		"destination": filepath.Join(t.TempDir(), "out.jpg"),
		"factor":      0,
	})
	if kind := toolErrorKind(t, resp); kind != "image" {
		t.Errorf("kind: got %s, want image", kind)
	}
}

func TestHandleToolsCall_ImageScaleToWidthAndHeight(t *testing.T) {
	s := newTestServer()
	imgPath := createTestImageFile(t, 300, 200, color.RGBA{10, 20, 30, 255})
	dir := t.TempDir()

	w := decodeImageResult(t, callTool(t, s, "image_scale_to_width", map[string]interface{}{
		"path":        imgPath,
		"destination": filepath.Join(dir, "w.jpg"),
		"width":       150,
	}))
	if w.Width != 150 {
		t.Errorf("width: got %d, want 150", w.Width)
	}

	h := decodeImageResult(t, callTool(t, s, "image_scale_to_height", map[string]interface{}{
		"path":        imgPath,
		"destination": filepath.Join(dir, "h.jpg"),
		"height":      500,
	}))
	if h.Height < 499 || h.Height > 501 {
		t.Errorf("height: got %d, want 500±1", h.Height)
	}
}

func TestHandleToolsCall_MissingDestination(t *testing.T) {
	s := newTestServer()
	imgPath := createTestImageFile(t, 20, 20, color.RGBA{0, 0, 255, 255})

	resp := callTool(t, s, "image_scale", map[string]interface{}{"path": imgPath, "factor": 0.5})
	if kind := toolErrorKind(t, resp); kind != "internal" {
		t.Errorf("kind: got %s, want internal", kind)
	}
}

func TestHandleToolsCall_ImageSave(t *testing.T) {
	s := newTestServer()
	imgPath := createTestImageFile(t, 40, 30, color.RGBA{200, 100, 0, 255})
	dest := filepath.Join(t.TempDir(), "copies", "copy.jpg")

	r := decodeImageResult(t, callTool(t, s, "image_save", map[string]interface{}{
		"path":        imgPath,
		"destination": dest,
	}))
	if r.Width != 40 || r.Height != 30 {
		t.Errorf("dimensions: got %dx%d, want 40x30", r.Width, r.Height)
	}
}

func TestHandleToolsCall_ImageSave_NoDirectoryCreation(t *testing.T) {
	s := newTestServer()
	imgPath := createTestImageFile(t, 40, 30, color.RGBA{200, 100, 0, 255})

	resp := callTool(t, s, "image_save", map[string]interface{}{
		"path":               imgPath,
		"destination":        filepath.Join(t.TempDir(), "missing", "copy.jpg"),
		"create_directories": false,
	})
	if resp.Error == nil {
		t.Error("expected an error when the directory is missing")
	}
}

func TestHandleToolsCall_ImageFetch(t *testing.T) {
	imgPath := createTestImageFile(t, 64, 32, color.RGBA{1, 2, 3, 255})
	data, err := os.ReadFile(imgPath)
	if err != nil {
		t.Fatalf("failed to read fixture: %v", err)
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(data)
	}))
	defer srv.Close()

	s := newTestServer()
	destDir := t.TempDir()

	r := decodeImageResult(t, callTool(t, s, "image_fetch", map[string]interface{}{
		"source":      srv.URL + "/media/banner.jpg",
		"destination": destDir,
	}))
	if r.Path != filepath.Join(destDir, "banner.jpg") {
		t.Errorf("Path: got %s", r.Path)
	}
	if r.Width != 64 || r.Height != 32 {
		t.Errorf("dimensions: got %dx%d, want 64x32", r.Width, r.Height)
	}
}

func TestHandleToolsCall_ImageFetch_EnvironmentError(t *testing.T) {
	s := newTestServer()
	resp := callTool(t, s, "image_fetch", map[string]interface{}{
		"source":      "/tmp/a.jpg",
		"destination": "http://example.com/a.jpg",
	})
	if kind := toolErrorKind(t, resp); kind != "environment" {
		t.Errorf("kind: got %s, want environment", kind)
	}
}

func TestHandleToolsCall_SupportedTypes(t *testing.T) {
	s := newTestServer()
	resp := callTool(t, s, "image_supported_types", map[string]interface{}{})
	if resp.Error != nil {
		t.Fatalf("Unexpected error: %+v", resp.Error)
	}
}

func TestHandleToolsCall_UnknownTool(t *testing.T) {
	s := newTestServer()
	resp := callTool(t, s, "image_rotate", map[string]interface{}{})
	if kind := toolErrorKind(t, resp); kind != "internal" {
		t.Errorf("kind: got %s, want internal", kind)
	}
}

func TestHandleToolsCall_InvalidParams(t *testing.T) {
	s := newTestServer()
	resp := s.handleRequest(context.Background(), &MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/call",
		Params:  json.RawMessage(`"not an object"`),
	})
	if resp.Error == nil || resp.Error.Code != -32602 {
		t.Errorf("expected -32602, got %+v", resp.Error)
	}
}
