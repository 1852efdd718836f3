package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/myrecovery365/sobrio/backend/internal/config"
	chathandler "github.com/myrecovery365/sobrio/backend/internal/handler/chat"
	feedbackhandler "github.com/myrecovery365/sobrio/backend/internal/handler/feedback"
	wshandler "github.com/myrecovery365/sobrio/backend/internal/handler/ws"
	"github.com/myrecovery365/sobrio/backend/internal/identity"
	"github.com/myrecovery365/sobrio/backend/internal/middleware"
	chatservice "github.com/myrecovery365/sobrio/backend/internal/service/chat"
	"github.com/myrecovery365/sobrio/backend/internal/store"
	"github.com/myrecovery365/sobrio/backend/pkg/utils"
	"github.com/myrecovery365/sobrio/backend/web"
)

// crisisResources is the static referral list served at /resources. It
// matches the contacts embedded in the crisis response text.
var crisisResources = []map[string]string{
	{"name": "988 Suicide & Crisis Lifeline", "contact": "Call or text 988", "url": "https://988lifeline.org"},
	{"name": "Crisis Text Line", "contact": "Text HOME to 741741", "url": "https://www.crisistextline.org"},
	{"name": "SAMHSA National Helpline", "contact": "1-800-662-4357", "url": "https://www.samhsa.gov/find-help/national-helpline"},
	{"name": "Emergency", "contact": "Call 911 or visit your nearest ER"},
}

// NewRouter wires HTTP routes to core services. Routes live at the root to
// stay compatible with the original widget.
func NewRouter(cfg config.ServerConfig, chatSvc *chatservice.Service, feedbackRepo store.Repository) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	ids := identity.NewManager(cfg.SessionSecret)

	chathandler.New(chatSvc, ids).RegisterRoutes(r)
	wshandler.New(chatSvc, ids, cfg.AllowedOrigins).RegisterRoutes(r)
	if feedbackRepo != nil {
		feedbackhandler.New(feedbackRepo, ids).RegisterRoutes(r)
	}

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte("<h3>✅ Sobrio AI Recovery Chatbot is running.</h3><p><a href='/chat-ui'>Launch Chat UI</a></p>"))
	})
	r.Get("/chat-ui", web.ChatUIHandler().ServeHTTP)
	r.Get("/resources", func(w http.ResponseWriter, _ *http.Request) {
		utils.RespondJSON(w, http.StatusOK, crisisResources)
	})

	return r
}
