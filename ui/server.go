package ui

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/tliron/commonlog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/dhamidi/calc/editor"
	"github.com/dhamidi/calc/expr"
	"github.com/dhamidi/calc/telemetry"
)

//go:embed static templates
var embeddedFS embed.FS

const sessionCookie = "calc_session"

type Option func(*Server)

func WithEditorOptions(opts ...editor.Option) Option {
	return func(s *Server) {
		s.editorOpts = append(s.editorOpts, opts...)
	}
}

func WithEvalOptions(opts ...expr.Option) Option {
	return func(s *Server) {
		s.evalOpts = append(s.evalOpts, opts...)
	}
}

// WithRejectPulse sets how long the page shows a rejected token.
func WithRejectPulse(d time.Duration) Option {
	return func(s *Server) {
		s.rejectPulse = d
	}
}

func WithSessionTTL(d time.Duration) Option {
	return func(s *Server) {
		s.sessionTTL = d
	}
}

type Server struct {
	sessions    *Sessions
	staticFS    fs.FS
	templateFS  fs.FS
	funcMap     template.FuncMap
	mux         *http.ServeMux
	log         commonlog.Logger
	tracer      trace.Tracer
	editorOpts  []editor.Option
	evalOpts    []expr.Option
	rejectPulse time.Duration
	sessionTTL  time.Duration
}

func NewServer(opts ...Option) (*Server, error) {
	staticFS := newLayeredFS("ui/static", mustSub(embeddedFS, "static"))
	templateFS := newLayeredFS("ui/templates", mustSub(embeddedFS, "templates"))

	funcMap := template.FuncMap{
		"millis": func(d time.Duration) int64 {
			return d.Milliseconds()
		},
	}

	if _, err := template.New("").Funcs(funcMap).ParseFS(templateFS, "*.html"); err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	s := &Server{
		staticFS:    staticFS,
		templateFS:  templateFS,
		funcMap:     funcMap,
		mux:         http.NewServeMux(),
		log:         commonlog.GetLogger("calc.ui"),
		tracer:      telemetry.Tracer(),
		rejectPulse: 400 * time.Millisecond,
		sessionTTL:  24 * time.Hour,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.sessions = NewSessions(s.sessionTTL, s.editorOpts...)

	s.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	s.mux.HandleFunc("POST /key", s.handleKey)
	s.mux.HandleFunc("POST /clear", s.handleClear)
	s.mux.HandleFunc("POST /evaluate", s.handleEvaluate)
	s.mux.HandleFunc("GET /{$}", s.handleIndex)

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	tmpl, err := template.New("").Funcs(s.funcMap).ParseFS(s.templateFS, "*.html")
	if err != nil {
		http.Error(w, "template error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if err := tmpl.ExecuteTemplate(w, name, data); err != nil {
		s.log.Errorf("render %s: %s", name, err)
	}
}

// session returns the caller's session, starting a new one and setting the
// cookie when the request carries none or an expired one.
func (s *Server) session(w http.ResponseWriter, r *http.Request) *Session {
	if c, err := r.Cookie(sessionCookie); err == nil {
		if session, ok := s.sessions.Get(c.Value); ok {
			return session
		}
	}
	session := s.sessions.Create()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    session.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
	s.log.Debugf("new session %s", session.ID)
	return session
}

type Button struct {
	Label string
	Key   string
	Class string
}

var keypad = [][]Button{
	{{"C", editor.KeyEscape, "clear"}, {"⌫", editor.KeyBackspace, "clear"}, {"÷", "÷", "operator"}, {"×", "×", "operator"}},
	{{"7", "7", ""}, {"8", "8", ""}, {"9", "9", ""}, {"−", "-", "operator"}},
	{{"4", "4", ""}, {"5", "5", ""}, {"6", "6", ""}, {"+", "+", "operator"}},
	{{"1", "1", ""}, {"2", "2", ""}, {"3", "3", ""}, {"=", editor.KeyEnter, "equals"}},
	{{"0", "0", "wide"}, {".", ".", ""}},
}

type indexData struct {
	Display     string
	State       string
	Variant     string
	Keypad      [][]Button
	RejectPulse time.Duration
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	session := s.session(w, r)
	display, state := session.Display()

	s.render(w, "index.html", indexData{
		Display:     display,
		State:       state.String(),
		Variant:     session.Variant().String(),
		Keypad:      keypad,
		RejectPulse: s.rejectPulse,
	})
}

func (s *Server) handleKey(w http.ResponseWriter, r *http.Request) {
	key := r.FormValue("key")
	if key == "" {
		http.Error(w, "missing key", http.StatusBadRequest)
		return
	}
	s.applyKey(w, r, key)
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	s.applyKey(w, r, editor.KeyEscape)
}

func (s *Server) applyKey(w http.ResponseWriter, r *http.Request, key string) {
	_, span := s.tracer.Start(r.Context(), "ui.key", trace.WithAttributes(attribute.String("calc.key", key)))
	defer span.End()

	session := s.session(w, r)
	result, err := session.HandleKey(key)
	span.SetAttributes(
		attribute.String("calc.action", result.Action),
		attribute.String("calc.state", result.State),
	)
	switch {
	case errors.Is(err, editor.ErrRejected):
		span.AddEvent("rejected")
	case err != nil:
		span.RecordError(err)
		span.SetStatus(codes.Error, "evaluation failed")
		s.log.Debugf("session %s: %s", session.ID, err)
	}

	s.writeJSON(w, http.StatusOK, result)
}

type evaluateRequest struct {
	Expression string `json:"expression"`
}

type evaluateResponse struct {
	Result string `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

// maxEvaluateBody caps the JSON body accepted by POST /evaluate.
const maxEvaluateBody = 64 << 10

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	_, span := s.tracer.Start(r.Context(), "ui.evaluate")
	defer span.End()

	var req evaluateRequest
	body := http.MaxBytesReader(w, r.Body, maxEvaluateBody)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	span.SetAttributes(attribute.String("calc.expression", req.Expression))

	result, err := expr.Evaluate(req.Expression, s.evalOpts...)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "evaluation failed")
		s.writeJSON(w, http.StatusUnprocessableEntity, evaluateResponse{Error: expr.ErrorMarker})
		return
	}
	s.writeJSON(w, http.StatusOK, evaluateResponse{Result: result.String()})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Warningf("write response: %v", err)
	}
}

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}
