package router

import (
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/skillswap-api/config"
	"github.com/oksasatya/skillswap-api/internal/application"
	"github.com/oksasatya/skillswap-api/internal/container"
	"github.com/oksasatya/skillswap-api/internal/domain/repository"
	cacheinfra "github.com/oksasatya/skillswap-api/internal/infrastructure/redis"
	handlers "github.com/oksasatya/skillswap-api/internal/interface/http"
	"github.com/oksasatya/skillswap-api/internal/router/modules"
	"github.com/oksasatya/skillswap-api/pkg/helpers"
	"github.com/oksasatya/skillswap-api/pkg/metrics"
)

// Deps are the constructed infrastructure pieces the modules are built from.
// Cache and Publisher may be nil.
type Deps struct {
	Config    *config.Config
	Logger    *logrus.Logger
	Store     repository.Store
	JWT       *helpers.JWTManager
	Cache     application.UserSnapshotCache
	Publisher application.Publisher
	Metrics   *metrics.Metrics
}

func depsFromContainer() Deps {
	cfg := container.GetConfig()
	d := Deps{
		Config:  cfg,
		Logger:  container.GetLogger(),
		Store:   container.GetStore(),
		JWT:     container.GetJWT(),
		Metrics: container.GetMetrics(),
	}
	if rdb := container.GetRedis(); rdb != nil {
		d.Cache = cacheinfra.NewUserCache(rdb, cfg.UserCacheTTL)
	}
	if pub := container.GetRabbitPub(); pub != nil {
		d.Publisher = pub
	}
	return d
}

// InitModules initializes all application modules from the container and
// registers them with the router registry.
func InitModules(r *Registry) {
	InitModulesWith(r, depsFromContainer())
}

// InitModulesWith wires services and handlers from explicit dependencies.
func InitModulesWith(r *Registry, d Deps) {
	dir := application.NewDirectory(d.Store.Users, d.Cache, d.Logger)
	var notifier *application.Notifier
	if d.Publisher != nil {
		notifier = application.NewNotifier(d.Publisher, d.Logger, d.Metrics, d.Config.AppName, d.Config.AppURL)
	}

	users := application.NewUserService(d.Store.Users, d.JWT, dir, d.Logger, d.Metrics)
	guard := application.NewAccessGuard(d.Store.Users, d.JWT, d.Logger)
	requests := application.NewRequestService(d.Store.Requests, d.Store.Users, dir, notifier, d.Logger, d.Metrics)
	messages := application.NewMessageService(d.Store.Messages, requests, dir, notifier, d.Logger, d.Metrics)

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(users, d.Logger)))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(users, d.Logger), guard))
	r.Add(modules.NewRequestModule(
		handlers.NewRequestHandler(requests, d.Logger),
		handlers.NewMessageHandler(messages, d.Logger),
		guard,
	))

	var m *metrics.Metrics
	if d.Config.MetricsEnabled {
		m = d.Metrics
	}
	r.AddRoot(modules.NewSystemModule(m))
}
