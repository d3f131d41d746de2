// Package api serves the discovered adapters over HTTP so tooling on
// another host can pick an adapter name for the master.
package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/yalefresne/ecoshw/internal/oshw"
)

// Server answers adapter listing requests. Every request runs a fresh
// discovery; nothing is cached between requests.
type Server struct {
	Enumerator oshw.Enumerator
	Logger     logrus.FieldLogger
	Version    string
	BuildDate  string
}

// Router returns the routes served by s.
func (s *Server) Router() *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/adapters", s.listAdapters).Methods(http.MethodGet)
	router.HandleFunc("/version", s.versionInfo).Methods(http.MethodGet)
	return router
}

func (s *Server) listAdapters(w http.ResponseWriter, r *http.Request) {
	ads, err := s.Enumerator.Discover(r.Context())
	defer ads.Release()
	if err != nil {
		s.logger().WithError(err).Error("adapter discovery failed")
		w.Header().Set("Content-Type", "text/plain; charset=UTF-8")
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(err.Error()))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(http.StatusOK)
	e := json.NewEncoder(w)
	e.SetIndent("", "    ")
	if err := e.Encode(ads); err != nil {
		s.logger().WithError(err).Warn("writing adapter list")
	}
}

// logger returns s.Logger, or a logger that drops everything when unset.
func (s *Server) logger() logrus.FieldLogger {
	if s.Logger != nil {
		return s.Logger
	}
	discard := logrus.New()
	discard.SetOutput(io.Discard)
	return discard
}

func (s *Server) versionInfo(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(http.StatusOK)
	v := struct {
		Version   string `json:"version"`
		BuildDate string `json:"build_date"`
	}{Version: s.Version, BuildDate: s.BuildDate}
	j, _ := json.Marshal(v)
	w.Write(j)
}
