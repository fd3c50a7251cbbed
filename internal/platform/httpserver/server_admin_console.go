package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	httpadapter "komunumo/contexts/internal-ops/admin-console-service/adapters/http"
	"komunumo/contexts/internal-ops/admin-console-service/domain/entities"
	domainerrors "komunumo/contexts/internal-ops/admin-console-service/domain/errors"
	httptransport "komunumo/contexts/internal-ops/admin-console-service/transport/http"
)

const anonymousActor = "anonymous"

// registerResource mounts the listing and dialog routes of one entity type
// under prefix.
func registerResource[E entities.Record, Req httpadapter.RecordRequest[E], Resp any](
	s *Server,
	prefix string,
	resource httpadapter.Resource[E, Req, Resp],
) {
	kind := resource.Kind()

	s.mux.HandleFunc("GET "+prefix, func(w http.ResponseWriter, r *http.Request) {
		list, ok := parseListRequest(w, r)
		if !ok {
			return
		}
		resp, err := resource.ListHandler(r.Context(), list)
		if err != nil {
			s.writeConsoleDomainError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	})

	s.mux.HandleFunc("GET "+prefix+"/new", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, resource.NewHandler())
	})

	s.mux.HandleFunc("POST "+prefix, func(w http.ResponseWriter, r *http.Request) {
		list, ok := parseListRequest(w, r)
		if !ok {
			return
		}
		var req Req
		if !decodeConsoleBody(w, r, &req) {
			return
		}
		resp, err := resource.CreateHandler(r.Context(), resolveCaller(r), req, list)
		if err != nil {
			s.writeConsoleDomainError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, resp)
	})

	s.mux.HandleFunc("GET "+prefix+"/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseRecordID(w, r)
		if !ok {
			return
		}
		resp, found, err := resource.OpenHandler(r.Context(), id)
		if err != nil {
			s.writeConsoleDomainError(w, r, err)
			return
		}
		if !found {
			writeRecordMissing(w, kind)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	})

	s.mux.HandleFunc("PUT "+prefix+"/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseRecordID(w, r)
		if !ok {
			return
		}
		list, ok := parseListRequest(w, r)
		if !ok {
			return
		}
		var req Req
		if !decodeConsoleBody(w, r, &req) {
			return
		}
		resp, found, err := resource.UpdateHandler(r.Context(), resolveCaller(r), id, req, list)
		if errors.Is(err, domainerrors.ErrRecordGone) || (err == nil && !found) {
			writeRecordMissing(w, kind)
			return
		}
		if err != nil {
			s.writeConsoleDomainError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	})

	s.mux.HandleFunc("DELETE "+prefix+"/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseRecordID(w, r)
		if !ok {
			return
		}
		list, ok := parseListRequest(w, r)
		if !ok {
			return
		}
		confirmed, _ := strconv.ParseBool(r.URL.Query().Get("confirm"))
		resp, found, err := resource.DeleteHandler(r.Context(), resolveCaller(r), id, confirmed, list)
		if err != nil {
			s.writeConsoleDomainError(w, r, err)
			return
		}
		if !found {
			writeRecordMissing(w, kind)
			return
		}
		if !confirmed {
			writeJSON(w, http.StatusConflict, resp)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	})
}

func (s *Server) handleListAudit(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeConsoleError(w, http.StatusBadRequest, "invalid_limit", "limit must be a non-negative integer")
			return
		}
		limit = parsed
	}
	resp, err := s.console.Audit.ListRecentActionsHandler(r.Context(), limit)
	if err != nil {
		s.writeConsoleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": resp})
}

func parseListRequest(w http.ResponseWriter, r *http.Request) (httptransport.ListRequest, bool) {
	query := r.URL.Query()
	req := httptransport.ListRequest{Filter: query.Get("filter")}
	var ok bool
	if req.Offset, ok = parseQueryInt(w, query.Get("offset"), "invalid_offset", "offset must be a non-negative integer"); !ok {
		return req, false
	}
	if req.Limit, ok = parseQueryInt(w, query.Get("limit"), "invalid_limit", "limit must be a non-negative integer"); !ok {
		return req, false
	}
	return req, true
}

func parseQueryInt(w http.ResponseWriter, raw string, code string, message string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, true
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		writeConsoleError(w, http.StatusBadRequest, code, message)
		return 0, false
	}
	return value, true
}

func parseRecordID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		writeConsoleError(w, http.StatusBadRequest, "invalid_id", "id must be a positive integer")
		return 0, false
	}
	return id, true
}

func decodeConsoleBody(w http.ResponseWriter, r *http.Request, target any) bool {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		writeConsoleError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return false
	}
	return true
}

func resolveCaller(r *http.Request) httpadapter.Caller {
	actor := strings.TrimSpace(r.Header.Get("X-User-Id"))
	if actor == "" {
		actor = anonymousActor
	}
	return httpadapter.Caller{
		ActorID:   actor,
		RequestID: strings.TrimSpace(r.Header.Get(requestIDHeader)),
	}
}

func writeRecordMissing(w http.ResponseWriter, kind string) {
	writeConsoleError(w, http.StatusNotFound, "not_found", "This "+kind+" does not exist anymore.")
}

func (s *Server) writeConsoleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domainerrors.ErrValidation):
		writeConsoleError(w, http.StatusBadRequest, "validation_failed", err.Error())
	case errors.Is(err, domainerrors.ErrInvalidPage):
		writeConsoleError(w, http.StatusBadRequest, "invalid_page", err.Error())
	case errors.Is(err, domainerrors.ErrInvalidInput):
		writeConsoleError(w, http.StatusBadRequest, "invalid_input", err.Error())
	case errors.Is(err, domainerrors.ErrRecordGone):
		writeConsoleError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, domainerrors.ErrStorage):
		s.logConsoleFailure(r, err)
		writeConsoleError(w, http.StatusServiceUnavailable, "storage_unavailable", "storage is unavailable")
	default:
		s.logConsoleFailure(r, err)
		writeConsoleError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func (s *Server) logConsoleFailure(r *http.Request, err error) {
	s.logger.Error("admin console request failed",
		"event", "admin_console_request_failed",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", r.Header.Get(requestIDHeader),
		"error", err,
	)
}

func writeConsoleError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, httptransport.ErrorResponse{Code: code, Message: message})
}
