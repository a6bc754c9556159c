package handlers

import (
	"encoding/json"
	"net/http"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/mark-assistant-go/internal/config"
	"github.com/mark-assistant-go/internal/middleware"
	"github.com/mark-assistant-go/internal/models"
	"github.com/mark-assistant-go/internal/orchestrator"
	"github.com/mark-assistant-go/pkg/logger"
	"github.com/sirupsen/logrus"
)

// ChatHandler serves the JSON chat endpoint and the static landing page
type ChatHandler struct {
	config       *config.Config
	orchestrator *orchestrator.Orchestrator
	metrics      *middleware.Metrics
	logger       *logrus.Logger
}

// NewChatHandler creates a new chat handler
func NewChatHandler(
	cfg *config.Config,
	orch *orchestrator.Orchestrator,
	metrics *middleware.Metrics,
	logger *logrus.Logger,
) *ChatHandler {
	return &ChatHandler{
		config:       cfg,
		orchestrator: orch,
		metrics:      metrics,
		logger:       logger,
	}
}

// Router builds the HTTP router
func (h *ChatHandler) Router() *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/chat", h.HandleChat).Methods(http.MethodPost)
	router.HandleFunc("/healthz", h.handleHealth).Methods(http.MethodGet)
	router.HandleFunc("/", h.handleIndex).Methods(http.MethodGet)
	router.PathPrefix("/static/").Handler(
		http.StripPrefix("/static/", http.FileServer(http.Dir(h.config.Server.StaticDir))))
	return router
}

// HandleChat processes one POST /chat request. The endpoint always
// answers 200 with a reply; malformed JSON is treated as an empty
// message, never a 4xx.
func (h *ChatHandler) HandleChat(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WithError(err).Debug("Malformed chat request body")
		req = models.ChatRequest{}
	}

	userID := req.UserID
	if userID == "" {
		userID = uuid.NewString()
	}

	reply, classified := h.orchestrator.Handle(r.Context(), userID, req.Message)

	h.metrics.RecordChatRequest(classified.String(), "http", time.Since(start))
	logger.WithUser(h.logger, userID).WithFields(logrus.Fields{
		"intent": classified.String(),
		"took":   time.Since(start),
	}).Info("Chat request handled")

	writeJSON(w, models.ChatResponse{Reply: reply, UserID: userID})
}

func (h *ChatHandler) handleIndex(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, filepath.Join(h.config.Server.StaticDir, "index.html"))
}

func (h *ChatHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(v)
}
