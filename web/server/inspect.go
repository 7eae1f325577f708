package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/geometry"
	"github.com/df07/go-phong-raytracer/pkg/imageio"
	"github.com/df07/go-phong-raytracer/pkg/integrator"
	"github.com/df07/go-phong-raytracer/pkg/material"
	"github.com/df07/go-phong-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	GeometryType string                 `json:"geometryType,omitempty"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	PixelColor   string                 `json:"pixelColor"`
	Events       InspectEvents          `json:"events"`
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

// InspectEvents counts what the tracer did while shading the inspected pixel
type InspectEvents struct {
	Hits        int64 `json:"hits"`
	Misses      int64 `json:"misses"`
	ShadowRays  int64 `json:"shadowRays"`
	Occluded    int64 `json:"occluded"`
	Reflections int64 `json:"reflections"`
}

// InspectResult contains information about the object hit by an inspection ray
type InspectResult struct {
	Hit    bool
	Record geometry.Hit
	Shape  geometry.Shape
	Color  core.Vec3
	Events InspectEvents
}

// inspectPixel casts the pixel's primary ray, then shades it the same way the renderer does
func inspectPixel(sceneObj *scene.Scene, pixelX, pixelY int) InspectResult {
	config := sceneObj.SamplingConfig
	camera := sceneObj.Camera
	ray := camera.GetRay(float64(pixelX)/float64(config.Width), float64(pixelY)/float64(config.Height))

	counter := &integrator.CountingObserver{}
	color := integrator.NewTracer(counter).Trace(ray, camera.Position(), sceneObj, config.MaxDepth)
	events := InspectEvents{
		Hits:        counter.Hits.Load(),
		Misses:      counter.Misses.Load(),
		ShadowRays:  counter.ShadowRays.Load(),
		Occluded:    counter.Occluded.Load(),
		Reflections: counter.Reflections.Load(),
	}

	hit, shape, isHit := sceneObj.Shapes.ClosestHit(ray)
	return InspectResult{
		Hit:    isHit,
		Record: hit,
		Shape:  shape,
		Color:  color,
		Events: events,
	}
}

// extractMaterialInfo lists the Phong coefficients of a material
func extractMaterialInfo(mat *material.Phong) map[string]interface{} {
	properties := make(map[string]interface{})
	if mat == nil {
		return properties
	}
	properties["ambient"] = [3]float64(mat.Ambient)
	properties["diffuse"] = [3]float64(mat.Diffuse)
	properties["specular"] = [3]float64(mat.Specular)
	properties["shininess"] = mat.Shininess
	properties["reflectivity"] = [3]float64(mat.Reflectivity)
	return properties
}

// extractGeometryInfo extracts detailed geometry information
func extractGeometryInfo(shape geometry.Shape) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch geom := shape.(type) {
	case *geometry.Sphere:
		properties["center"] = [3]float64(geom.Center)
		properties["radius"] = geom.Radius
		properties["color"] = hexColor(geom.Color)
		return "sphere", properties
	default:
		return "unknown", properties
	}
}

// hexColor formats a color the way it is quantized on output
func hexColor(c core.Vec3) string {
	r, g, b := imageio.QuantizeColor(c)
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}

	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid x coordinate")
		return
	}
	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid y coordinate")
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
	if req.MaxDepth >= 0 {
		sceneObj.SamplingConfig.MaxDepth = req.MaxDepth
	}
	if err := sceneObj.Preprocess(); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	config := sceneObj.SamplingConfig
	if pixelX < 0 || pixelX >= config.Width || pixelY < 0 || pixelY >= config.Height {
		s.writeError(w, http.StatusBadRequest, "Pixel coordinates out of bounds")
		return
	}

	result := inspectPixel(sceneObj, pixelX, pixelY)
	response := InspectResponse{
		Hit:        result.Hit,
		PixelColor: hexColor(result.Color),
		Events:     result.Events,
	}

	if result.Hit {
		geometryType, geometryProps := extractGeometryInfo(result.Shape)
		response.GeometryType = geometryType
		response.Point = [3]float64(result.Record.Point)
		response.Normal = [3]float64(result.Record.Normal)
		response.Distance = result.Record.Distance
		response.Properties = map[string]interface{}{
			"material": extractMaterialInfo(result.Record.Material),
			"geometry": geometryProps,
		}
	}

	s.writeJSON(w, http.StatusOK, response)
}
