// Package container provides dependency injection for all singleton services
package container

import (
	"github.com/lumenworks/galleria-go/internal/application/services"
	"github.com/lumenworks/galleria-go/internal/domain/content"
	"github.com/lumenworks/galleria-go/internal/domain/navigation"
	"github.com/lumenworks/galleria-go/internal/infrastructure/caching/manager"
	"github.com/lumenworks/galleria-go/internal/infrastructure/caching/stores"
	"github.com/lumenworks/galleria-go/internal/infrastructure/media"
	"github.com/lumenworks/galleria-go/internal/infrastructure/messaging"
	"github.com/lumenworks/galleria-go/internal/infrastructure/observability/logging"
	"github.com/lumenworks/galleria-go/internal/infrastructure/observability/performance"
	"github.com/lumenworks/galleria-go/internal/infrastructure/persistence/database"
	"github.com/lumenworks/galleria-go/internal/infrastructure/persistence/gallery"
	"github.com/lumenworks/galleria-go/internal/infrastructure/upstream"
	"github.com/lumenworks/galleria-go/internal/presentation/templates"
	"github.com/lumenworks/galleria-go/pkg/config"
)

// Container holds all singleton services and infrastructure dependencies
type Container struct {
	// Application services (stateless singletons)
	PageService       *services.PageService
	WarmingService    *services.WarmingService
	SettingsService   *services.SettingsService
	AuthService       *services.AuthService
	CacheAdminService *services.CacheAdminService

	// Infrastructure dependencies
	Logger       *logging.ChanneledLogger
	PerfTracker  *performance.Tracker
	DB           *database.DB
	CacheManager *manager.Manager
	Navigator    *navigation.Navigator
	Loader       *upstream.Loader
	Preloader    *media.Preloader
	EventBus     *messaging.EventBus
	Broadcaster  *messaging.WSBroadcaster
	Renderer     *templates.Renderer
}

// NewContainer creates and wires all singleton services
func NewContainer(db *database.DB, sessionID string, logger *logging.ChanneledLogger) *Container {
	perfTracker := performance.NewTracker(performance.DefaultTrackerConfig())

	routeBacking := gallery.NewRouteCacheRepository(db, sessionID, logger)
	settingsBacking := gallery.NewSettingsRepository(db, logger)

	routeStore := stores.NewRouteStore(config.CacheMaxBytes, config.CacheMaxAge, routeBacking, content.NewDecoder(), logger)
	fragmentStore := stores.NewFragmentStore(config.CacheMaxAge)
	settingsStore := stores.NewSettingsStore(settingsBacking, logger)
	cacheManager := manager.NewManager(routeStore, fragmentStore, settingsStore, logger)

	eventBus := messaging.NewEventBus(logger)
	broadcaster := messaging.NewWSBroadcaster(eventBus, logger)

	preloader := media.NewPreloader(logger, perfTracker)
	loader := upstream.NewLoader(cacheManager, preloader, logger, perfTracker)

	navigator := navigation.NewNavigator()
	renderer := templates.NewRenderer()

	return &Container{
		PageService:       services.NewPageService(navigator, loader, cacheManager, renderer, eventBus, logger, perfTracker),
		WarmingService:    services.NewWarmingService(),
		SettingsService:   services.NewSettingsService(cacheManager, eventBus),
		AuthService:       services.NewAuthService(logger),
		CacheAdminService: services.NewCacheAdminService(cacheManager, loader, eventBus, logger),

		Logger:       logger,
		PerfTracker:  perfTracker,
		DB:           db,
		CacheManager: cacheManager,
		Navigator:    navigator,
		Loader:       loader,
		Preloader:    preloader,
		EventBus:     eventBus,
		Broadcaster:  broadcaster,
		Renderer:     renderer,
	}
}
