package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/xtding233/innings-sim/internal/match"
)

const defaultTrials = 1000

type errResp struct {
	Err string `json:"err"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (h *handlers) fail(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if match.IsClientError(err) {
		status = http.StatusBadRequest
	} else {
		h.log.Error("request failed", zap.Error(err))
	}
	writeJSON(w, status, errResp{Err: err.Error()})
}

func parseInt(r *http.Request, key string) (int, bool, string) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return 0, false, ""
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, false, "invalid " + key
	}
	return v, true, ""
}

func parseUint(r *http.Request, key string) (uint64, bool, string) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return 0, false, ""
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, false, "invalid " + key
	}
	return v, true, ""
}

// parseRequest reads target, overs, seed, batting and a comma separated
// lineup from the query string.
func parseRequest(r *http.Request) (match.Request, string) {
	var req match.Request
	if v, ok, msg := parseInt(r, "target"); msg != "" {
		return req, msg
	} else if ok {
		req.Target = &v
	}
	if v, ok, msg := parseInt(r, "overs"); msg != "" {
		return req, msg
	} else if ok {
		req.Overs = &v
	}
	if v, ok, msg := parseUint(r, "seed"); msg != "" {
		return req, msg
	} else if ok {
		req.Seed = &v
	}
	if b := r.URL.Query().Get("batting"); b != "" {
		req.Batting = &b
	}
	if l := r.URL.Query().Get("lineup"); l != "" {
		for _, id := range strings.Split(l, ",") {
			if id = strings.TrimSpace(id); id != "" {
				req.Lineup = append(req.Lineup, id)
			}
		}
	}
	return req, ""
}

func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (h *handlers) players(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Players())
}

func (h *handlers) simulate(w http.ResponseWriter, r *http.Request) {
	req, msg := parseRequest(r)
	if msg != "" {
		writeJSON(w, http.StatusBadRequest, errResp{Err: msg})
		return
	}
	sim, err := h.svc.Simulate(req)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sim)
}

func (h *handlers) odds(w http.ResponseWriter, r *http.Request) {
	req, msg := parseRequest(r)
	if msg != "" {
		writeJSON(w, http.StatusBadRequest, errResp{Err: msg})
		return
	}
	trials, ok, msg := parseInt(r, "trials")
	if msg != "" {
		writeJSON(w, http.StatusBadRequest, errResp{Err: msg})
		return
	}
	if !ok {
		trials = defaultTrials
	}
	workers, _, msg := parseInt(r, "workers")
	if msg != "" {
		writeJSON(w, http.StatusBadRequest, errResp{Err: msg})
		return
	}
	rep, err := h.svc.Odds(r.Context(), req, trials, workers)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}
