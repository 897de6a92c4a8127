package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/SophiaPhilean/UFOTRAC/internal/models"
	"github.com/SophiaPhilean/UFOTRAC/internal/service"
)

// resolveRequest is the inbound body of the resolution endpoint.
type resolveRequest struct {
	Query            string              `json:"q"`
	Near             *models.Coordinates `json:"near,omitempty"`
	ExpectCity       string              `json:"expectCity,omitempty"`
	ExpectRegionCode string              `json:"expectRegionCode,omitempty"`
	Candidates       bool                `json:"candidates,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type candidatesResponse struct {
	Candidates []models.Candidate `json:"candidates"`
}

// handleResolve validates the request and dispatches to strict or
// candidate mode. Outcomes map to status codes: missing query is 400, an
// exhausted chain is 404, anything unexpected is 500.
func (s *Server) handleResolve(writer http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	var body resolveRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		s.writeJSON(writer, req, http.StatusBadRequest, errorResponse{Error: "Invalid JSON body"})
		return
	}

	if strings.TrimSpace(body.Query) == "" {
		s.writeJSON(writer, req, http.StatusBadRequest, errorResponse{Error: "Missing q"})
		return
	}
	if body.Near != nil && !body.Near.Valid() {
		s.writeJSON(writer, req, http.StatusBadRequest, errorResponse{Error: "Invalid near coordinates"})
		return
	}

	serviceReq := service.Request{
		Query: body.Query,
		Near:  body.Near,
		Expect: models.Expectation{
			City:       body.ExpectCity,
			RegionCode: body.ExpectRegionCode,
		},
	}

	mode := "strict"
	if body.Candidates {
		mode = "candidates"
	}

	var status int
	defer func() {
		s.metrics.Resolutions.WithLabelValues(mode, strconv.Itoa(status)).Inc()
	}()

	if body.Candidates {
		candidates, err := s.resolver.Candidates(ctx, serviceReq)
		switch {
		case errors.Is(err, service.ErrNotFound):
			status = http.StatusNotFound
			s.writeJSON(writer, req, status, errorResponse{Error: "No candidates found"})
		case err != nil:
			s.log.ErrorContext(ctx, "Candidate aggregation failed", "error", err)
			status = http.StatusInternalServerError
			s.writeJSON(writer, req, status, errorResponse{Error: "Internal error"})
		default:
			status = http.StatusOK
			s.writeJSON(writer, req, status, candidatesResponse{Candidates: candidates})
		}
		return
	}

	hit, err := s.resolver.Resolve(ctx, serviceReq)
	switch {
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
		s.writeJSON(writer, req, status, errorResponse{Error: "No precise match found"})
	case err != nil:
		s.log.ErrorContext(ctx, "Strict resolution failed", "error", err)
		status = http.StatusInternalServerError
		s.writeJSON(writer, req, status, errorResponse{Error: "Internal error"})
	default:
		status = http.StatusOK
		s.writeJSON(writer, req, status, hit)
	}
}

func (s *Server) writeJSON(writer http.ResponseWriter, req *http.Request, status int, payload any) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	if err := json.NewEncoder(writer).Encode(payload); err != nil {
		s.log.ErrorContext(req.Context(), "failed to write reply", "error", err)
	}
}
