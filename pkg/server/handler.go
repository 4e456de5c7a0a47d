package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/contact/pkg/contact"
	"github.com/vango-dev/contact/pkg/features/form"
	"github.com/vango-dev/contact/pkg/inbox"
	"github.com/vango-dev/contact/pkg/render"
	"github.com/vango-dev/contact/pkg/vdom"
)

// Routes served by the contact server.
const (
	SocketPath  = "/ws"
	APIPath     = "/api/contact"
	HealthPath  = "/healthz"
	MetricsPath = "/metrics"
)

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(s.metrics.Handler)
	r.Use(s.tracer.Handler)

	r.Get("/", s.handlePage)
	r.Get(SocketPath, s.HandleWebSocket)
	r.Post(contact.PostPath, s.handleFormPost)
	r.Post(APIPath, s.handleAPISubmit)
	r.Get(HealthPath, s.handleHealth)
	r.Get(render.DefaultClientScript, s.serveThinClient)
	r.Head(render.DefaultClientScript, s.serveThinClient)
	if s.gatherer != nil {
		r.Handle(MetricsPath, promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

// handlePage renders the contact page with a form in its initial state.
// The live session starts when the client script connects.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	s.writePage(w, http.StatusOK, contact.View(contact.NewController().State()), SocketPath)
}

// handleFormPost is the path for browsers without JavaScript: the posted
// values are submitted to a one-shot form and the result page is rendered
// without a socket.
func (s *Server) handleFormPost(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxBodyBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	if r.PostForm.Get("action") == "reset" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	c := contact.NewController()
	for _, f := range contact.Fields() {
		if err := c.SetField(f, r.PostForm.Get(string(f))); err != nil {
			http.Error(w, "Bad Request", http.StatusBadRequest)
			return
		}
	}

	status := http.StatusOK
	if errs, ok := c.Submit(); !ok {
		s.metrics.RecordValidationFailures(errs.Fields())
		status = http.StatusUnprocessableEntity
	} else if _, err := s.accept(r.Context(), c.Values(), inbox.ChannelForm, r.RemoteAddr); err != nil {
		http.Error(w, "We could not take your message right now. Please try again.", http.StatusServiceUnavailable)
		return
	}

	s.writePage(w, status, contact.View(c.State()), "")
}

// apiResponse is the JSON body of APIPath responses.
type apiResponse struct {
	ID     string      `json:"id,omitempty"`
	Errors form.Errors `json:"errors,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// handleAPISubmit validates a JSON payload in one shot. It answers 201 with
// the submission id, 422 with per-field messages, or 400/413/503.
func (s *Server) handleAPISubmit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxBodyBytes)

	var v contact.Values
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	err := dec.Decode(&v)
	if err == nil {
		// Exactly one object; anything after it is a bad request.
		if _, tail := dec.Token(); tail != io.EOF {
			err = ErrTrailingData
			if tail != nil {
				err = tail
			}
		}
	}
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, apiResponse{Error: "request body too large"})
			return
		}
		writeJSON(w, http.StatusBadRequest, apiResponse{Error: "body must be a JSON object with name, email and message"})
		return
	}

	if errs := contact.Validate(v); !errs.OK() {
		s.metrics.RecordValidationFailures(errs.Fields())
		writeJSON(w, http.StatusUnprocessableEntity, apiResponse{Errors: errs})
		return
	}

	sub, err := s.accept(r.Context(), v, inbox.ChannelAPI, r.RemoteAddr)
	if err != nil {
		writeJSON(w, http.StatusServiceUnavailable, apiResponse{Error: "inbox unavailable, try again later"})
		return
	}
	writeJSON(w, http.StatusCreated, apiResponse{ID: sub.ID.String()})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"sessions": s.sessions.Count(),
	})
}

// writePage renders a full document around body. An empty socket leaves out
// the client script.
func (s *Server) writePage(w http.ResponseWriter, status int, body *vdom.VNode, socket string) {
	var buf bytes.Buffer
	err := s.renderer.RenderPage(&buf, render.PageData{
		Body:      body,
		Title:     s.config.Title,
		Styles:    []string{pageStyles},
		SocketURL: socket,
	})
	if err != nil {
		s.logger.Error("page render failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

const pageStyles = `body{font-family:system-ui,sans-serif;max-width:32rem;margin:2rem auto;padding:0 1rem}
.field{display:flex;flex-direction:column;margin-bottom:1rem}
.field input,.field textarea{font:inherit;padding:.4rem}
[aria-invalid=true]{border-color:#b00020}
[role=alert]{color:#b00020;margin:.25rem 0 0}`
