package httpapi

import (
	"log"
	"net/http"

	"schoolportal-backend-go/internal/services"

	"github.com/gorilla/websocket"
)

var metricsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

func (s *Server) MetricsHistory(w http.ResponseWriter, r *http.Request) {
	limit := parseInt(r.URL.Query().Get("limit"), 120)
	samples, err := services.LatestMetrics(s.DB, limit)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string][]services.MetricSample{"items": samples})
}

// MetricsSocket authenticates via a token query parameter because browser
// websocket clients cannot set an Authorization header.
func (s *Server) MetricsSocket(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("token")
	if raw == "" {
		raw = extractToken(r)
	}
	resolution, err := services.ResolveIdentity(s.DB, s.Tokens, raw)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	if !resolution.CanWrite() || !services.CanAdministrate(resolution.Session.Role) {
		WriteError(w, http.StatusForbidden, "Not allowed")
		return
	}

	conn, err := metricsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("metrics socket upgrade failed: %v", err)
		return
	}
	s.MetricsHub.Add(conn)
	defer func() {
		s.MetricsHub.Remove(conn)
		_ = conn.Close()
	}()

	// Drain control frames until the client goes away.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
