package server

import (
	"fmt"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"redsands/internal/mesh"
)

// MeshRequest asks for one LOD of one face.
type MeshRequest struct {
	Face string `json:"face"`
	LOD  int    `json:"lod"`
}

// MeshFrame carries a face mesh as flat arrays ready for a vertex buffer.
type MeshFrame struct {
	Type       string    `json:"type"`
	Face       string    `json:"face"`
	LOD        int       `json:"lod"`
	Resolution int       `json:"resolution"`
	Positions  []float32 `json:"positions"`
	Normals    []float32 `json:"normals"`
	UVs        []float32 `json:"uvs"`
	Indices    []uint32  `json:"indices"`
}

// ErrorFrame reports a rejected request.
type ErrorFrame struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("WebSocket upgrade error:", err)
		return
	}
	defer conn.Close()

	connMutex := &sync.Mutex{}
	s.clientsMutex.Lock()
	s.clients[conn] = connMutex
	s.clientsMutex.Unlock()
	defer func() {
		s.clientsMutex.Lock()
		delete(s.clients, conn)
		s.clientsMutex.Unlock()
	}()

	s.send(conn, s.status())

	for {
		var req MeshRequest
		if err := conn.ReadJSON(&req); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Println("WebSocket read error:", err)
			}
			return
		}
		frame, err := s.meshFrame(req)
		if err != nil {
			s.send(conn, ErrorFrame{Type: "error", Error: err.Error()})
			continue
		}
		s.send(conn, frame)
	}
}

func (s *Server) meshFrame(req MeshRequest) (MeshFrame, error) {
	p := s.ready()
	if p == nil {
		return MeshFrame{}, fmt.Errorf("planet is still generating")
	}
	face, err := parseFaceParam(req.Face)
	if err != nil {
		return MeshFrame{}, err
	}
	lods := p.Meshes[face]
	if req.LOD < 0 || req.LOD >= len(lods) {
		return MeshFrame{}, fmt.Errorf("lod %d out of range [0,%d)", req.LOD, len(lods))
	}
	return newMeshFrame(lods[req.LOD], req.LOD), nil
}

func newMeshFrame(m *mesh.FaceMesh, lod int) MeshFrame {
	f := MeshFrame{
		Type:       "mesh",
		Face:       m.Face.String(),
		LOD:        lod,
		Resolution: m.Resolution,
		Positions:  make([]float32, 0, 3*len(m.Positions)),
		Normals:    make([]float32, 0, 3*len(m.Normals)),
		UVs:        make([]float32, 0, 2*len(m.UVs)),
		Indices:    m.Indices,
	}
	for i := range m.Positions {
		f.Positions = append(f.Positions, m.Positions[i][:]...)
		f.Normals = append(f.Normals, m.Normals[i][:]...)
		f.UVs = append(f.UVs, m.UVs[i][:]...)
	}
	return f
}

func (s *Server) send(conn *websocket.Conn, v any) {
	s.clientsMutex.RLock()
	mutex, ok := s.clients[conn]
	s.clientsMutex.RUnlock()
	if !ok {
		return
	}
	mutex.Lock()
	defer mutex.Unlock()
	if err := conn.WriteJSON(v); err != nil {
		log.Println("WebSocket write error:", err)
	}
}

func (s *Server) broadcast(v any) {
	s.clientsMutex.RLock()
	conns := make([]*websocket.Conn, 0, len(s.clients))
	for c := range s.clients {
		conns = append(conns, c)
	}
	s.clientsMutex.RUnlock()
	for _, c := range conns {
		s.send(c, v)
	}
}
