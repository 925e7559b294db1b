package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sells-group/localpages/internal/model"
	"github.com/sells-group/localpages/internal/store"
	"github.com/sells-group/localpages/internal/workflow"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleDoctor probes the store and the CMS so operators can verify
// connectivity without triggering a real job.
func (s *Server) handleDoctor(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{"database": "ok", "wordpress": "ok"}
	status := http.StatusOK

	if _, err := s.store.Analytics(r.Context()); err != nil {
		checks["database"] = "unreachable"
		status = http.StatusServiceUnavailable
	}
	if s.wp == nil || !s.wp.TestConnection(r.Context()) {
		checks["wordpress"] = "unreachable"
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, checks)
}

func (s *Server) handleListLocations(w http.ResponseWriter, r *http.Request) {
	locs, err := s.store.ListLocations(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if locs == nil {
		locs = []model.Location{}
	}
	writeJSON(w, http.StatusOK, locs)
}

func (s *Server) handleCreateLocation(w http.ResponseWriter, r *http.Request) {
	var loc model.Location
	if err := decodeBody(r, &loc); err != nil {
		writeError(w, err)
		return
	}
	if loc.City == "" || loc.State == "" || loc.StateAbbr == "" {
		writeError(w, &workflow.ValidationError{Field: "location", Reason: "city, state, and state_abbr are required"})
		return
	}

	created, err := s.store.CreateLocation(r.Context(), loc)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleGetLocation(w http.ResponseWriter, r *http.Request) {
	loc, err := s.store.GetLocation(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loc)
}

func (s *Server) handleUpdateLocation(w http.ResponseWriter, r *http.Request) {
	var loc model.Location
	if err := decodeBody(r, &loc); err != nil {
		writeError(w, err)
		return
	}
	loc.ID = chi.URLParam(r, "id")

	if err := s.store.UpdateLocation(r.Context(), loc); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loc)
}

func (s *Server) handleCreateResearchJob(w http.ResponseWriter, r *http.Request) {
	var params workflow.ResearchParams
	if err := decodeBody(r, &params); err != nil {
		writeError(w, err)
		return
	}

	job, err := s.research.Run(r.Context(), params)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, job)
}

func (s *Server) handleListResearchJobs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := store.JobFilter{
		LocationID: q.Get("location_id"),
		Status:     model.JobStatus(q.Get("status")),
	}
	if n, err := strconv.Atoi(q.Get("limit")); err == nil {
		filter.Limit = n
	}
	if n, err := strconv.Atoi(q.Get("offset")); err == nil {
		filter.Offset = n
	}

	jobs, err := s.store.ListResearchJobs(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	if jobs == nil {
		jobs = []model.ResearchJob{}
	}
	writeJSON(w, http.StatusOK, jobs)
}

func (s *Server) handleGetResearchJob(w http.ResponseWriter, r *http.Request) {
	job, err := s.store.GetResearchJob(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func (s *Server) handlePublish(w http.ResponseWriter, r *http.Request) {
	var params workflow.PublishParams
	if err := decodeBody(r, &params); err != nil {
		writeError(w, err)
		return
	}

	result, err := s.publish.Run(r.Context(), params)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

func (s *Server) handleUpdatePublish(w http.ResponseWriter, r *http.Request) {
	var params workflow.UpdateParams
	if err := decodeBody(r, &params); err != nil {
		writeError(w, err)
		return
	}
	if n, err := strconv.Atoi(chi.URLParam(r, "postID")); err == nil {
		params.PostID = n
	}

	result, err := s.publish.Update(r.Context(), params)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleBulkPublish(w http.ResponseWriter, r *http.Request) {
	var params workflow.BulkPublishParams
	if err := decodeBody(r, &params); err != nil {
		writeError(w, err)
		return
	}

	result, err := s.bulk.Run(r.Context(), params)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleListPages(w http.ResponseWriter, r *http.Request) {
	if slug := r.URL.Query().Get("slug"); slug != "" {
		page, err := s.store.GetPublishedPageBySlug(r.Context(), slug)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, page)
		return
	}

	pages, err := s.store.ListPublishedPages(r.Context(), r.URL.Query().Get("location_id"))
	if err != nil {
		writeError(w, err)
		return
	}
	if pages == nil {
		pages = []model.PublishedPage{}
	}
	writeJSON(w, http.StatusOK, pages)
}

func (s *Server) handleListKeywords(w http.ResponseWriter, r *http.Request) {
	kws, err := s.store.ListKeywords(r.Context(), r.URL.Query().Get("location_id"))
	if err != nil {
		writeError(w, err)
		return
	}
	if kws == nil {
		kws = []model.Keyword{}
	}
	writeJSON(w, http.StatusOK, kws)
}

func (s *Server) handleCreateKeyword(w http.ResponseWriter, r *http.Request) {
	var kw model.Keyword
	if err := decodeBody(r, &kw); err != nil {
		writeError(w, err)
		return
	}
	if kw.LocationID == "" || kw.Keyword == "" {
		writeError(w, &workflow.ValidationError{Field: "keyword", Reason: "location_id and keyword are required"})
		return
	}

	created, err := s.store.CreateKeyword(r.Context(), kw)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateKeyword(w http.ResponseWriter, r *http.Request) {
	var kw model.Keyword
	if err := decodeBody(r, &kw); err != nil {
		writeError(w, err)
		return
	}
	kw.ID = chi.URLParam(r, "id")

	if err := s.store.UpdateKeyword(r.Context(), kw); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, kw)
}

func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	summary, err := s.store.Analytics(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
