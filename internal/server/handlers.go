package server

import (
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-gl/mathgl/mgl32"

	"redsands/internal/core"
)

// StatusResponse is the body of /api/status and of websocket status frames.
type StatusResponse struct {
	Type       string                `json:"type"`
	Phase      string                `json:"phase"`
	Done       int                   `json:"done"`
	Total      int                   `json:"total"`
	Error      string                `json:"error,omitempty"`
	Provinces  int                   `json:"provinces"`
	Parameters []core.ParameterGroup `json:"parameters"`
}

// SeedResponse describes one province seed.
type SeedResponse struct {
	ID       int    `json:"id"`
	Color    string `json:"color"`
	Position [3]int `json:"position"`
}

// ProvinceResponse adds per-face pixel areas to a seed.
type ProvinceResponse struct {
	SeedResponse
	Area  int            `json:"area"`
	Faces map[string]int `json:"faces"`
}

func (s *Server) status() StatusResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()
	progress := s.orch.Progress()
	resp := StatusResponse{
		Type:       "status",
		Phase:      s.orch.Phase().String(),
		Done:       progress.Done,
		Total:      progress.Total,
		Provinces:  s.planet.ProvinceCount(),
		Parameters: s.params.Groups,
	}
	if err := s.orch.Err(); err != nil {
		resp.Error = err.Error()
	}
	return resp
}

func (s *Server) getStatus(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.status())
}

func (s *Server) getSeeds(w http.ResponseWriter, r *http.Request) {
	p := s.ready()
	if p == nil {
		respondError(w, http.StatusServiceUnavailable, "planet is still generating")
		return
	}
	out := make([]SeedResponse, len(p.Map.Seeds))
	for i := range p.Map.Seeds {
		out[i] = seedResponse(p.Map.Seeds[i].Color, p.Map.Seeds[i].Position, i)
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) getProvince(w http.ResponseWriter, r *http.Request) {
	p := s.ready()
	if p == nil {
		respondError(w, http.StatusServiceUnavailable, "planet is still generating")
		return
	}
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid province id")
		return
	}
	if id < 0 || id >= p.ProvinceCount() {
		respondError(w, http.StatusNotFound, fmt.Sprintf("province %d not found", id))
		return
	}
	seed := p.Map.Seeds[id]
	resp := ProvinceResponse{SeedResponse: seedResponse(seed.Color, seed.Position, id), Faces: map[string]int{}}
	for _, face := range core.Faces {
		n := s.areas[id][face]
		resp.Area += n
		if n > 0 {
			resp.Faces[face.String()] = n
		}
	}
	respondJSON(w, http.StatusOK, resp)
}

func (s *Server) getPick(w http.ResponseWriter, r *http.Request) {
	p := s.ready()
	if p == nil {
		respondError(w, http.StatusServiceUnavailable, "planet is still generating")
		return
	}
	var point mgl32.Vec3
	for i, key := range []string{"x", "y", "z"} {
		v, err := strconv.ParseFloat(r.URL.Query().Get(key), 32)
		if err != nil {
			respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid %s coordinate", key))
			return
		}
		point[i] = float32(v)
	}
	face, x, y, ok := p.Map.Locate(point)
	if !ok {
		respondError(w, http.StatusBadRequest, "point has no direction")
		return
	}
	id, ok := p.Map.ProvinceAt(face, x, y)
	if !ok {
		respondError(w, http.StatusNotFound, "no province at point")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"id": id, "face": face.String(), "x": x, "y": y})
}

func (s *Server) getFaceImage(w http.ResponseWriter, r *http.Request) {
	p := s.ready()
	if p == nil {
		respondError(w, http.StatusServiceUnavailable, "planet is still generating")
		return
	}
	face, err := parseFaceParam(chi.URLParam(r, "face"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondPNG(w, p.Map.Faces[face].Image())
}

func (s *Server) getBorderImage(w http.ResponseWriter, r *http.Request) {
	p := s.ready()
	if p == nil {
		respondError(w, http.StatusServiceUnavailable, "planet is still generating")
		return
	}
	face, err := parseFaceParam(chi.URLParam(r, "face"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if int(face) >= len(p.Borders) {
		respondError(w, http.StatusNotFound, "no border overlay for face")
		return
	}
	respondPNG(w, p.Borders[face].Image())
}

// parseFaceParam accepts a signed axis label such as "+y" or a face index.
func parseFaceParam(s string) (core.Face, error) {
	if face, err := core.ParseFace(s); err == nil {
		return face, nil
	}
	if n, err := strconv.Atoi(s); err == nil && n >= 0 && n < core.FaceCount {
		return core.Face(n), nil
	}
	return 0, fmt.Errorf("unknown face %q", s)
}

func seedResponse(c core.Color, pos [3]int, id int) SeedResponse {
	return SeedResponse{ID: id, Color: fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B), Position: pos}
}

func respondPNG(w http.ResponseWriter, img image.Image) {
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	if err := png.Encode(w, img); err != nil {
		log.Printf("Error encoding PNG: %v", err)
	}
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON: %v", err)
	}
}

// respondError writes an error JSON response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
