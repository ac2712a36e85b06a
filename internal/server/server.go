// Package server exposes a generation run over HTTP and streams meshes to
// websocket clients.
package server

import (
	"context"
	"log"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"redsands/internal/core"
	"redsands/internal/pipeline"
)

// Server owns one orchestrator and the planet it produces.
type Server struct {
	mu     sync.RWMutex
	orch   *pipeline.Orchestrator
	planet *pipeline.Planet
	params core.ParameterSnapshot
	areas  [][core.FaceCount]int

	upgrader     websocket.Upgrader
	clients      map[*websocket.Conn]*sync.Mutex
	clientsMutex sync.RWMutex
}

// New wraps a started orchestrator. params is reported by /api/status.
func New(orch *pipeline.Orchestrator, params core.ParameterSnapshot) *Server {
	return &Server{
		orch:   orch,
		params: params,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[*websocket.Conn]*sync.Mutex),
	}
}

// Routes configures all routes and returns the router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})
		r.Get("/status", s.getStatus)
		r.Get("/seeds", s.getSeeds)
		r.Get("/provinces/{id}", s.getProvince)
		r.Get("/pick", s.getPick)
		r.Get("/faces/{face}/provinces.png", s.getFaceImage)
		r.Get("/faces/{face}/borders.png", s.getBorderImage)
	})
	r.Get("/ws", s.handleWebSocket)
	return r
}

// Watch polls the orchestrator at tps until the run finishes or ctx is done.
// Websocket clients receive a status frame when the run finishes.
func (s *Server) Watch(ctx context.Context, tps int) error {
	clock := core.NewFixedStep(tps)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.mu.Lock()
		phase := s.orch.Poll()
		if phase == pipeline.PhaseReady && s.planet == nil {
			if p, ok := s.orch.Take(); ok {
				s.planet = p
				s.areas = p.Stats().Areas
			}
		}
		s.mu.Unlock()

		switch phase {
		case pipeline.PhaseReady:
			log.Printf("server: planet ready with %d provinces", s.planet.ProvinceCount())
			s.broadcast(s.status())
			return nil
		case pipeline.PhaseFailed:
			err := s.orch.Err()
			log.Printf("server: generation failed: %v", err)
			s.broadcast(s.status())
			return err
		}
		clock.Wait()
	}
}

// ready returns the planet, or nil while generation is still running.
func (s *Server) ready() *pipeline.Planet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.planet
}
