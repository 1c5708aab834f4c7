package cmd

import (
	"log/slog"

	"courier/internal/adapters/out/geo"
	"courier/internal/adapters/out/postgres"
	"courier/internal/adapters/out/postgres/geocache"
	"courier/internal/core/application/usecases/commands"
	"courier/internal/core/application/usecases/queries"
	"courier/internal/core/domain/services"
	"courier/internal/core/ports"
	"courier/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters to use cases. All construction happens
// here; the rest of the application receives ready dependencies.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	geoCache   *geocache.GormGeocodeCache
	resolver   ports.GeocodeResolver
	distance   ports.DistanceProvider
	logger     *slog.Logger
}

// NewCompositionRoot builds the object graph from configuration.
func NewCompositionRoot(configs Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	mapsOpts := []geo.Option{}
	if configs.GoogleMapsBaseURL != "" {
		mapsOpts = append(mapsOpts, geo.WithBaseURL(configs.GoogleMapsBaseURL))
	}
	mapsClient := geo.NewGoogleMapsClient(configs.GoogleMapsAPIKey, mapsOpts...)

	geoCache := geocache.NewGormGeocodeCache(gormDB)

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		geoCache:   geoCache,
		resolver:   geocache.NewCachingResolver(mapsClient, geoCache),
		distance:   mapsClient,
		logger:     logger,
	}
}

func (c *CompositionRoot) parcelUoWFactory() commands.ParcelUoWFactory {
	return FuncParcelUoWFactory(func() commands.ParcelUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateParcelCommandHandler() commands.CreateParcelCommandHandler {
	return commands.NewCreateParcelCommandHandler(c.parcelUoWFactory())
}

func (c *CompositionRoot) CreateUpdateParcelStatusCommandHandler() commands.UpdateParcelStatusCommandHandler {
	return commands.NewUpdateParcelStatusCommandHandler(c.parcelUoWFactory(), services.NewTransitionPolicy())
}

func (c *CompositionRoot) CreateAssignAgentCommandHandler() commands.AssignAgentCommandHandler {
	return commands.NewAssignAgentCommandHandler(c.parcelUoWFactory())
}

func (c *CompositionRoot) CreateUnassignAgentCommandHandler() commands.UnassignAgentCommandHandler {
	return commands.NewUnassignAgentCommandHandler(c.parcelUoWFactory())
}

func (c *CompositionRoot) CreateUpdateLocationCommandHandler() commands.UpdateLocationCommandHandler {
	return commands.NewUpdateLocationCommandHandler(c.parcelUoWFactory())
}

func (c *CompositionRoot) CreateTrackParcelQueryHandler() queries.TrackParcelQueryHandler {
	return queries.NewTrackParcelQueryHandler(c.gormDB, c.resolver)
}

func (c *CompositionRoot) CreateGetParcelsQueryHandler() queries.GetParcelsQueryHandler {
	return queries.NewGetParcelsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetCustomerParcelsQueryHandler() queries.GetCustomerParcelsQueryHandler {
	return queries.NewGetCustomerParcelsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetCurrentLocationQueryHandler() queries.GetCurrentLocationQueryHandler {
	return queries.NewGetCurrentLocationQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDistanceQueryHandler() queries.GetDistanceQueryHandler {
	return queries.NewGetDistanceQueryHandler(c.gormDB, c.distance)
}

func (c *CompositionRoot) CreateGetDailyMetricsQueryHandler() queries.GetDailyMetricsQueryHandler {
	return queries.NewGetDailyMetricsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.geoCache, c.logger)
}

// FuncParcelUoWFactory adapts a closure to the ParcelUoWFactory interface.
type FuncParcelUoWFactory func() commands.ParcelUoW

func (f FuncParcelUoWFactory) Create() commands.ParcelUoW {
	return f()
}
