package httpapi

import (
	"net/http"

	"adscontrol-backend-go/internal/config"
	"adscontrol-backend-go/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Server struct {
	Config   config.Config
	Catalog  *services.Catalog
	Analyzer *services.Analyzer
}

func NewServer(cfg config.Config, catalog *services.Catalog, analyzer *services.Analyzer) *Server {
	return &Server{
		Config:   cfg,
		Catalog:  catalog,
		Analyzer: analyzer,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)
	if len(s.Config.CorsOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.Config.CorsOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
			ExposedHeaders:   []string{"X-Request-Id"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	r.Get("/healthz", s.Healthz)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(api chi.Router) {
		if s.Config.RateLimitRequests > 0 && s.Config.RateLimitWindow > 0 {
			api.Use(httprate.Limit(
				s.Config.RateLimitRequests,
				s.Config.RateLimitWindow,
				httprate.WithKeyFuncs(httprate.KeyByIP),
				httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
					WriteError(w, http.StatusTooManyRequests, "Too many requests")
				}),
			))
		}

		api.Get("/content-types", s.ContentTypes)

		api.Route("/projects", func(projects chi.Router) {
			projects.Get("/", s.ListProjects)
			projects.Post("/", s.CreateProject)
			projects.Get("/{projectId}", s.GetProject)
			projects.Put("/{projectId}", s.UpdateProject)
			projects.Delete("/{projectId}", s.DeleteProject)
			projects.Post("/{projectId}/analysis", s.AnalyzeProject)
			projects.Get("/{projectId}/metrics", s.ProjectMetrics)
		})

		api.Route("/contents", func(contents chi.Router) {
			contents.Get("/", s.ListContents)
			contents.Post("/", s.CreateContent)
			contents.Get("/best", s.BestContents)
			contents.Get("/{contentId}", s.GetContent)
			contents.Put("/{contentId}", s.UpdateContent)
			contents.Delete("/{contentId}", s.DeleteContent)
		})

		api.Route("/campaigns", func(campaigns chi.Router) {
			campaigns.Get("/", s.ListCampaigns)
			campaigns.Post("/", s.CreateCampaign)
			campaigns.Get("/{campaignId}", s.GetCampaign)
			campaigns.Put("/{campaignId}", s.UpdateCampaign)
			campaigns.Delete("/{campaignId}", s.DeleteCampaign)
			campaigns.Get("/{campaignId}/contents", s.ListCampaignContents)
			campaigns.Post("/{campaignId}/contents", s.LinkCampaignContent)
			campaigns.Delete("/{campaignId}/contents/{contentId}", s.UnlinkCampaignContent)
		})
	})
	return r
}

func (s *Server) Healthz(w http.ResponseWriter, r *http.Request) {
	storage := "memory"
	if s.Config.UsesDatabase() {
		storage = "postgres"
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok", "storage": storage})
}
