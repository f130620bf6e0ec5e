package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/AbdulAhadRauf/best-train-finder/internal/api/tbs"
	"github.com/AbdulAhadRauf/best-train-finder/internal/search"
)

// defaultClasses mirrors the search form default.
var defaultClasses = []string{"CC", "3A", "3E"}

type searchHandler struct {
	searcher *search.Searcher
	logger   *logrus.Logger
}

type searchResponse struct {
	Records []search.RankedRecord `json:"records"`
	Summary *search.Summary       `json:"summary,omitempty"`
	Message string                `json:"message,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *searchHandler) Search(w http.ResponseWriter, r *http.Request) {
	q, err := queryFromRequest(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	if err := q.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	result, err := h.searcher.Search(r.Context(), q)
	if err != nil {
		if errors.Is(err, tbs.ErrFetchFailed) {
			h.logger.WithField("error", err).Warn("availability fetch failed")
			writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error()})
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	resp := searchResponse{
		Records: result.Records,
		Summary: result.Summary,
		Message: result.Outcome.Message(),
	}
	if resp.Records == nil {
		resp.Records = []search.RankedRecord{}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *searchHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func queryFromRequest(r *http.Request) (search.Query, error) {
	params := r.URL.Query()

	q := search.Query{
		From:    strings.ToUpper(strings.TrimSpace(params.Get("from"))),
		To:      strings.ToUpper(strings.TrimSpace(params.Get("to"))),
		Date:    strings.TrimSpace(params.Get("date")),
		Classes: defaultClasses,
	}

	if v := params.Get("classes"); v != "" {
		var classes []string
		for _, c := range strings.Split(v, ",") {
			if c = strings.ToUpper(strings.TrimSpace(c)); c != "" {
				classes = append(classes, c)
			}
		}
		q.Classes = classes
	}

	sortKey, err := search.ParseSortKey(params.Get("sort"))
	if err != nil {
		return q, err
	}
	q.SortBy = sortKey

	window, err := search.ParseTimeWindow(params.Get("time_window"))
	if err != nil {
		return q, err
	}
	q.Window = window

	if v := params.Get("max_duration_hours"); v != "" {
		hours, err := strconv.Atoi(v)
		if err != nil {
			return q, errors.New("max_duration_hours must be an integer")
		}
		q.MaxDurationHours = hours
	}

	if v := params.Get("include_nearby_dates"); v != "" {
		include, err := strconv.ParseBool(v)
		if err != nil {
			return q, errors.New("include_nearby_dates must be a boolean")
		}
		q.IncludeNearbyDates = include
	}

	return q, nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
