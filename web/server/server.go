package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"github.com/df07/go-phong-raytracer/pkg/imageio"
	"github.com/df07/go-phong-raytracer/pkg/integrator"
	"github.com/df07/go-phong-raytracer/pkg/renderer"
	"github.com/df07/go-phong-raytracer/pkg/scene"
)

// Request limits
const (
	minWidth   = 16
	maxWidth   = 2000
	maxSamples = 64
	maxDepth   = 32
)

// Server renders scenes on demand over HTTP
type Server struct {
	port      int
	scenesDir string
	logger    *zap.Logger
}

// NewServer creates a new web server. A nil logger discards output.
func NewServer(port int, scenesDir string, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{port: port, scenesDir: scenesDir, logger: logger}
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene      string         // Scene name or ID
	Width      int            // Image width, 0 keeps the scene width
	MaxSamples int            // Samples per pixel, 0 keeps the scene setting
	MaxDepth   int            // Reflection depth, -1 keeps the scene setting
	Format     imageio.Format // Response encoding
}

// Stats represents render statistics
type Stats struct {
	TotalPixels    int     `json:"totalPixels"`
	TotalSamples   int     `json:"totalSamples"`
	AverageSamples float64 `json:"averageSamples"`
	InvalidPixels  int     `json:"invalidPixels"`
	ElapsedMs      int64   `json:"elapsedMs"`
}

// Handler returns the HTTP routes of the server
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/scene-config", s.handleSceneConfig)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("starting web server", zap.String("addr", addr))
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleRender renders the requested scene and answers with the encoded image
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	sceneObj, status, err := s.createScene(req.Scene)
	if err != nil {
		s.writeError(w, status, err.Error())
		return
	}
	if req.Width > 0 {
		sceneObj.SetWidth(req.Width)
	}
	if req.MaxSamples > 0 {
		sceneObj.SamplingConfig.SamplesPerPixel = req.MaxSamples
	}
	if req.MaxDepth >= 0 {
		sceneObj.SamplingConfig.MaxDepth = req.MaxDepth
	}
	if err := sceneObj.Preprocess(); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Use request context to stop rendering when the client disconnects
	raytracer := renderer.NewRaytracer(sceneObj, integrator.NewTracer(nil), renderer.DefaultConfig(), s.logger)
	frame, stats, err := raytracer.Render(r.Context())
	if err != nil {
		s.logger.Warn("render aborted", zap.String("scene", req.Scene), zap.Error(err))
		s.writeError(w, http.StatusServiceUnavailable, fmt.Sprintf("Render error: %v", err))
		return
	}

	w.Header().Set("Content-Type", contentType(req.Format))
	w.Header().Set("X-Render-Stats", s.encodeStats(stats))
	if err := imageio.Encode(w, frame, req.Format); err != nil {
		s.logger.Error("failed to encode image", zap.Error(err))
	}
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	query := r.URL.Query()
	req := &RenderRequest{Scene: "default"}

	if sceneName := query.Get("scene"); sceneName != "" {
		req.Scene = sceneName
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", 0, minWidth, maxWidth); err != nil {
		return nil, err
	}
	if req.MaxSamples, err = parseIntParam(query, "maxSamples", 0, 1, maxSamples); err != nil {
		return nil, err
	}
	if req.MaxDepth, err = parseIntParam(query, "maxDepth", -1, 0, maxDepth); err != nil {
		return nil, err
	}

	req.Format = imageio.FormatPNG
	if format := query.Get("format"); format != "" {
		if req.Format, err = imageio.ParseFormat(format); err != nil {
			return nil, err
		}
	}

	return req, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// createScene resolves a scene by name and picks the HTTP status for failures
func (s *Server) createScene(sceneName string) (*scene.Scene, int, error) {
	sceneObj, err := scene.Resolve(sceneName, s.scenesDir)
	if errors.Is(err, scene.ErrUnknownScene) {
		return nil, http.StatusNotFound, err
	}
	if err != nil {
		return nil, http.StatusUnprocessableEntity, err
	}
	return sceneObj, http.StatusOK, nil
}

// handleScenes lists built-in and discovered scenes
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	groups, err := scene.ListAllScenes(s.scenesDir)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, groups)
}

// handleSceneConfig returns the default configuration for a scene
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	sceneName := r.URL.Query().Get("scene")
	if sceneName == "" {
		sceneName = "default"
	}

	sceneObj, status, err := s.createScene(sceneName)
	if err != nil {
		s.writeError(w, status, err.Error())
		return
	}

	config := sceneObj.SamplingConfig
	response := map[string]interface{}{
		"scene": sceneName,
		"defaults": map[string]interface{}{
			"width":           config.Width,
			"height":          config.Height,
			"samplesPerPixel": config.SamplesPerPixel,
			"maxDepth":        config.MaxDepth,
			"miss":            sceneObj.Miss.String(),
		},
		"limits": map[string]interface{}{
			"width": map[string]int{
				"min": minWidth,
				"max": maxWidth,
			},
			"maxSamples": map[string]int{
				"min": 1,
				"max": maxSamples,
			},
			"maxDepth": map[string]int{
				"min": 0,
				"max": maxDepth,
			},
		},
	}

	s.writeJSON(w, http.StatusOK, response)
}

// encodeStats renders statistics as compact JSON for a response header
func (s *Server) encodeStats(stats renderer.RenderStats) string {
	data, err := json.Marshal(Stats{
		TotalPixels:    stats.TotalPixels,
		TotalSamples:   stats.TotalSamples,
		AverageSamples: stats.AverageSamples,
		InvalidPixels:  stats.InvalidPixels,
		ElapsedMs:      stats.Duration.Milliseconds(),
	})
	if err != nil {
		return ""
	}
	return string(data)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Warn("failed to write response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}

func contentType(format imageio.Format) string {
	switch format {
	case imageio.FormatPNG:
		return "image/png"
	case imageio.FormatBMP:
		return "image/bmp"
	default:
		return "image/x-portable-pixmap"
	}
}
