package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/couchcryptid/calm-guard-drill/internal/domain"
	"github.com/couchcryptid/calm-guard-drill/internal/observability"
	"github.com/couchcryptid/calm-guard-drill/internal/session"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 64 << 10

// API serves the drill endpoints.
type API struct {
	scanner    *domain.Scanner
	classifier *domain.NarrativeClassifier
	generator  domain.NarrativeGenerator
	sessions   *session.Manager
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewAPI creates the API handlers. generator may be nil, in which case every
// drill turn degrades to the fallback reply.
func NewAPI(scanner *domain.Scanner, classifier *domain.NarrativeClassifier, generator domain.NarrativeGenerator, sessions *session.Manager, logger *slog.Logger, metrics *observability.Metrics) *API {
	return &API{
		scanner:    scanner,
		classifier: classifier,
		generator:  generator,
		sessions:   sessions,
		logger:     logger,
		metrics:    metrics,
	}
}

// Routes mounts the API on r.
func (a *API) Routes(r chi.Router) {
	r.Get("/cities", a.listCities)
	r.Get("/distance", a.distance)

	r.Get("/scan", a.scanQuery)
	r.Post("/scan", a.scanBody)

	r.Post("/narrative/classify", a.classifyNarrative)
	r.Post("/simulate", a.simulate)

	r.Route("/quiz/sessions", func(r chi.Router) {
		r.Post("/", a.createSession)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", a.getSession)
			r.Delete("/", a.deleteSession)
			r.Post("/answer", a.answer)
			r.Post("/advance", a.advance)
			r.Post("/restart", a.restart)
		})
	})

	r.Get("/plans", a.listPlans)
	r.Get("/plans/{type}", a.getPlan)
}

// --- radar ---

func (a *API) listCities(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"cities": a.scanner.Registry().List()})
}

func (a *API) distance(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	from, err := a.scanner.Registry().Lookup(q.Get("from"))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	to, err := a.scanner.Registry().Lookup(q.Get("to"))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"from": from.Name,
		"to":   to.Name,
		"km":   math.Round(domain.Distance(from, to)*10) / 10,
	})
}

func (a *API) scanQuery(w http.ResponseWriter, r *http.Request) {
	a.scan(w, r, r.URL.Query().Get("city"))
}

func (a *API) scanBody(w http.ResponseWriter, r *http.Request) {
	var req struct {
		City string `json:"city"`
	}
	if !a.decode(w, r, &req) {
		return
	}
	a.scan(w, r, req.City)
}

func (a *API) scan(w http.ResponseWriter, r *http.Request, city string) {
	result, err := a.scanner.ScanCity(city)
	if err != nil {
		if errors.Is(err, domain.ErrCityNotFound) {
			a.metrics.Scans.WithLabelValues("NOT_FOUND").Inc()
		}
		a.writeError(w, r, err)
		return
	}
	a.metrics.Scans.WithLabelValues(string(result.Badge)).Inc()
	a.logger.Debug("city scanned", "city", result.City.Name, "badge", result.Badge, "active", result.Active())
	writeJSON(w, http.StatusOK, result)
}

// --- narrative ---

func (a *API) classifyNarrative(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if !a.decode(w, r, &req) {
		return
	}
	assessment := a.classifier.Classify(req.Text)
	a.metrics.NarrativeClassified.WithLabelValues(string(assessment.Danger), "api").Inc()
	writeJSON(w, http.StatusOK, assessment)
}

func (a *API) simulate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Step       int    `json:"step"`
		UserAction string `json:"user_action"`
	}
	if !a.decode(w, r, &req) {
		return
	}
	turn, err := domain.RunDrillTurn(r.Context(), domain.GenerationRequest{
		Step:       req.Step,
		UserAction: req.UserAction,
	}, a.generator, a.classifier, a.logger)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	if !turn.Degraded {
		a.metrics.NarrativeClassified.WithLabelValues(string(turn.Danger), "simulate").Inc()
	}
	writeJSON(w, http.StatusOK, turn)
}

// --- quiz ---

func (a *API) createSession(w http.ResponseWriter, r *http.Request) {
	view, err := a.sessions.Create(r.Context())
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

func (a *API) getSession(w http.ResponseWriter, r *http.Request) {
	view, err := a.sessions.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (a *API) deleteSession(w http.ResponseWriter, r *http.Request) {
	if err := a.sessions.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		a.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type answerResponse struct {
	Result  domain.AnswerResult `json:"result"`
	Session session.View        `json:"session"`
}

func (a *API) answer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Choice *int `json:"choice"`
	}
	if !a.decode(w, r, &req) {
		return
	}
	if req.Choice == nil {
		writeMessage(w, http.StatusBadRequest, "choice is required")
		return
	}
	result, view, err := a.sessions.Answer(r.Context(), chi.URLParam(r, "id"), *req.Choice)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, answerResponse{Result: result, Session: view})
}

func (a *API) advance(w http.ResponseWriter, r *http.Request) {
	view, err := a.sessions.Advance(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (a *API) restart(w http.ResponseWriter, r *http.Request) {
	view, err := a.sessions.Restart(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// --- plans ---

func (a *API) listPlans(w http.ResponseWriter, _ *http.Request) {
	types := domain.PlanTypes()
	plans := make([]domain.SafetyPlan, 0, len(types))
	for _, t := range types {
		plans = append(plans, domain.PlanFor(string(t)))
	}
	writeJSON(w, http.StatusOK, map[string]any{"plans": plans})
}

func (a *API) getPlan(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, domain.PlanFor(chi.URLParam(r, "type")))
}

// decode reads a JSON body into v, writing a 400 on failure.
func (a *API) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		a.logger.Debug("invalid request body", "path", r.URL.Path, "error", err)
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
