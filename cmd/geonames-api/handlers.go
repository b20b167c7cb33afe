package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"

	geonames "github.com/danzay42/infotecs"
)

const (
	defaultPageLimit    = 10
	defaultSuggestLimit = 10
)

type api struct {
	svc *geonames.Service
	log *log.Logger
}

func newAPI(svc *geonames.Service, logger *log.Logger) *api {
	return &api{svc: svc, log: logger}
}

func (a *api) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", a.handlePage)
	mux.HandleFunc("GET /info", a.handleInfo)
	mux.HandleFunc("GET /diff", a.handleDiff)
	mux.HandleFunc("GET /help", a.handleHelp)
	mux.HandleFunc("GET /nearest", a.handleNearest)
	mux.HandleFunc("GET /healthz", a.handleHealth)
	return a.accessLog(mux)
}

// accessLog logs one line per request with method, path, and duration.
func (a *api) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		a.log.WithFields(log.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"duration": time.Since(start).String(),
		}).Debug("request")
	})
}

func (a *api) handleInfo(w http.ResponseWriter, r *http.Request) {
	id, err := intParam(r, "id", -1)
	if err != nil {
		a.writeDetail(w, http.StatusBadRequest, "id must be an integer")
		return
	}
	rec, err := a.svc.GetByID(id)
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, rec)
}

func (a *api) handlePage(w http.ResponseWriter, r *http.Request) {
	skip, err := intParam(r, "skip", 0)
	if err != nil {
		a.writeDetail(w, http.StatusBadRequest, "skip must be an integer")
		return
	}
	limit, err := intParam(r, "limit", defaultPageLimit)
	if err != nil {
		a.writeDetail(w, http.StatusBadRequest, "limit must be an integer")
		return
	}
	page, err := a.svc.Page(skip, limit)
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, page)
}

func (a *api) handleDiff(w http.ResponseWriter, r *http.Request) {
	name1 := r.URL.Query().Get("name_1")
	name2 := r.URL.Query().Get("name_2")
	result, err := a.svc.Compare(name1, name2)
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, result)
}

func (a *api) handleHelp(w http.ResponseWriter, r *http.Request) {
	prefix := r.URL.Query().Get("name_part")
	limit, err := intParam(r, "limit", defaultSuggestLimit)
	if err != nil {
		a.writeDetail(w, http.StatusBadRequest, "limit must be an integer")
		return
	}

	var names []string
	if r.URL.Query().Get("fuzzy") == "1" {
		names, err = a.svc.SuggestFuzzy(prefix, limit, 2)
	} else {
		names, err = a.svc.Suggest(prefix, limit)
	}
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, names)
}

func (a *api) handleNearest(w http.ResponseWriter, r *http.Request) {
	lat, err := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	if err != nil {
		a.writeDetail(w, http.StatusBadRequest, "lat must be a number")
		return
	}
	lng, err := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if err != nil {
		a.writeDetail(w, http.StatusBadRequest, "lon must be a number")
		return
	}
	rec, err := a.svc.Nearest(lat, lng)
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, rec)
}

func (a *api) handleHealth(w http.ResponseWriter, r *http.Request) {
	a.writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"records": a.svc.Len(),
	})
}

// writeError maps the service error taxonomy onto status codes: invalid
// arguments are the caller's fault, a miss on a well-formed query is 404,
// anything else is a 500 with the detail kept out of the response.
func (a *api) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, geonames.ErrInvalidArgument):
		a.writeDetail(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, geonames.ErrNotFound):
		a.writeDetail(w, http.StatusNotFound, err.Error())
	default:
		a.log.Errorf("internal error: %v", err)
		a.writeDetail(w, http.StatusInternalServerError, "internal server error")
	}
}

func (a *api) writeDetail(w http.ResponseWriter, status int, detail string) {
	a.writeJSON(w, status, map[string]string{"detail": detail})
}

func (a *api) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		a.log.Errorf("encoding response: %v", err)
	}
}

// intParam reads an integer query parameter, falling back to def when the
// parameter is absent.
func intParam(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}
