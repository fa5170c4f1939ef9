package bootstrap

import (
	"database/sql"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dealdesk/crm-backend/config"
	adminhttp "github.com/dealdesk/crm-backend/internal/admin/http"
	httpapi "github.com/dealdesk/crm-backend/internal/api/http"
	"github.com/dealdesk/crm-backend/internal/api/http/middleware"
	"github.com/dealdesk/crm-backend/internal/auth"
	authhttp "github.com/dealdesk/crm-backend/internal/auth/http"
	clientshttp "github.com/dealdesk/crm-backend/internal/clients/http"
	clientsrepo "github.com/dealdesk/crm-backend/internal/clients/repository"
	dashhttp "github.com/dealdesk/crm-backend/internal/dashboard/http"
	dashrepo "github.com/dealdesk/crm-backend/internal/dashboard/repository"
	dashservice "github.com/dealdesk/crm-backend/internal/dashboard/service"
	dealshttp "github.com/dealdesk/crm-backend/internal/deals/http"
	dealsrepo "github.com/dealdesk/crm-backend/internal/deals/repository"
	"github.com/dealdesk/crm-backend/internal/storage"
	"github.com/dealdesk/crm-backend/internal/storage/memory"
	"github.com/dealdesk/crm-backend/internal/storage/postgres"
	usershttp "github.com/dealdesk/crm-backend/internal/users/http"
	usersrepo "github.com/dealdesk/crm-backend/internal/users/repository"
)

type RouterDeps struct {
	Config *config.Config
	Logger *zap.Logger
	Kind   storage.Kind
	// DB is nil when the in-memory backing is active.
	DB *sql.DB
}

// BuildRouter wires repositories, services and handlers for the selected
// backing and returns the ready gin engine.
func BuildRouter(dep RouterDeps) *gin.Engine {
	if dep.Config.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID(dep.Logger))
	r.Use(cors.Default())

	var (
		users   usersrepo.Repository
		clients clientsrepo.Repository
		deals   dealsrepo.Repository
		dash    dashrepo.Source
		wiper   adminhttp.Wiper
	)

	switch dep.Kind {
	case storage.KindPostgres:
		users = usersrepo.NewPostgresRepo(dep.DB)
		clients = clientsrepo.NewPostgresRepo(dep.DB, dep.Config.Clients.MatchCompany)
		deals = dealsrepo.NewPostgresRepo(dep.DB, dep.Config.Clients.MatchCompany)
		dash = dashrepo.NewPostgresSource(dep.DB)
		wiper = postgres.NewAdmin(dep.DB)
	default:
		store := memory.NewStore(dep.Config.Clients.MatchCompany)
		users = store
		clients = store
		deals = store
		dash = store
		wiper = store
	}

	healthHandler := httpapi.NewHealthHandler("crm-backend", dep.Config.App.Version, string(dep.Kind), dep.DB)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api")

	authHandler := authhttp.New(users, dep.Config.Auth.JWTSecret, dep.Config.Auth.TokenTTL, dep.Logger)
	authHandler.Register(api.Group("/auth"))

	adminHandler := adminhttp.New(dep.Kind, wiper, dep.Config.App.Environment, dep.Logger)
	adminHandler.Register(api.Group("/admin"))

	protected := api.Group("")
	protected.Use(auth.RequireUser(dep.Config.Auth.JWTSecret))

	accountHandler := usershttp.New(users, dep.Config.Auth.JWTSecret, dep.Config.Auth.TokenTTL, dep.Logger)
	accountHandler.Register(protected.Group("/account"))

	clientsGroup := protected.Group("/clients")
	clientsHandler := clientshttp.New(clients, dep.Logger)
	clientsHandler.Register(clientsGroup)

	dealsHandler := dealshttp.New(deals, dep.Logger)
	dealsHandler.RegisterLegacy(clientsGroup)
	dealsHandler.RegisterStaging(protected.Group("/staging"))

	dashService := dashservice.New(dash, dep.Config.Dashboard.Cumulative)
	dashHandler := dashhttp.New(dashService, dep.Logger)
	dashHandler.Register(protected.Group("/dashboard"))

	return r
}
