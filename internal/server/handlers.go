package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/jonathan/resume-editor/internal/editor"
	"github.com/jonathan/resume-editor/internal/rendering"
	"github.com/jonathan/resume-editor/internal/types"
)

// PatchResponse is the body returned for every event.
type PatchResponse struct {
	Patches []editor.Patch `json:"patches"`
}

// ExportCheckResponse is the body returned by /export/check.
type ExportCheckResponse struct {
	editor.ExportStatus
	Patches []editor.Patch `json:"patches"`
}

// ClearRequest is the body of /clear.
type ClearRequest struct {
	Confirm bool `json:"confirm"`
}

func nonNil(patches []editor.Patch) []editor.Patch {
	if patches == nil {
		return []editor.Patch{}
	}
	return patches
}

// handlePage renders the full editor page
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	var page *rendering.Page
	if err := s.loop.Do(r.Context(), func() { page = s.session.Page() }); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	body, err := s.renderer.RenderPage(page)
	if err != nil {
		log.Printf("[server] Failed to render page: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to render page")
		return
	}
	s.htmlResponse(w, body)
}

// handlePreview renders the preview as a standalone document
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	var preview *rendering.Preview
	if err := s.loop.Do(r.Context(), func() { preview = s.session.Preview() }); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	body, err := s.renderer.RenderPreviewDocument(preview)
	if err != nil {
		log.Printf("[server] Failed to render preview: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to render preview")
		return
	}
	s.htmlResponse(w, body)
}

// handleEvent dispatches one user event and returns the resulting patches
func (s *Server) handleEvent(w http.ResponseWriter, r *http.Request) {
	var ev editor.Event
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if ev.Type == "" {
		s.errorResponse(w, http.StatusBadRequest, "type is required")
		return
	}

	var (
		patches     []editor.Patch
		dispatchErr error
	)
	err := s.loop.Do(r.Context(), func() {
		patches, dispatchErr = s.session.Dispatch(r.Context(), ev)
	})
	if err == nil {
		err = dispatchErr
	}
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, PatchResponse{Patches: nonNil(patches)})
}

// handleStream relays asynchronous patches as Server-Sent Events
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	ch := s.hub.Subscribe()
	defer s.hub.Unsubscribe(ch)

	w.WriteHeader(http.StatusOK)
	if err := sse.WriteEvent("ready", map[string]string{"status": "ok"}); err != nil {
		return
	}

	for {
		select {
		case <-r.Context().Done():
			return
		case patches, ok := <-ch:
			if !ok {
				sse.WriteError("editor stopped")
				return
			}
			if err := sse.WriteEvent("patches", patches); err != nil {
				log.Printf("[server] Stream write failed: %v", err)
				return
			}
		}
	}
}

// handleState returns the current document as persisted
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	var doc *types.Document
	if err := s.loop.Do(r.Context(), func() { doc = s.session.Document() }); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, doc)
}

// handleExportCheck evaluates the export precondition
func (s *Server) handleExportCheck(w http.ResponseWriter, r *http.Request) {
	var resp ExportCheckResponse
	if err := s.loop.Do(r.Context(), func() {
		resp.ExportStatus, resp.Patches = s.session.CheckExport()
	}); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	resp.Patches = nonNil(resp.Patches)
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleClear deletes the saved document after explicit confirmation
func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	var req ClearRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	var (
		patches  []editor.Patch
		clearErr error
	)
	err := s.loop.Do(r.Context(), func() {
		patches, clearErr = s.session.Dispatch(r.Context(), editor.Event{Type: editor.EventClear, Confirm: req.Confirm})
	})
	if err == nil {
		err = clearErr
	}
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, PatchResponse{Patches: nonNil(patches)})
}
