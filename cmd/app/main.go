package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"courier/cmd"
	courierhttp "courier/internal/adapters/in/http"
	"courier/internal/adapters/out/postgres/geocache"
	"courier/internal/adapters/out/postgres/parcelrepo"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	db := connectDB(configs)

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	app := cmd.NewCompositionRoot(configs, db, logger)

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start background jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	return cmd.Config{
		HTTPPort:          goDotEnvVariable("HTTP_PORT"),
		DBHost:            goDotEnvVariable("DB_HOST"),
		DBPort:            goDotEnvVariable("DB_PORT"),
		DBUser:            goDotEnvVariable("DB_USER"),
		DBPassword:        goDotEnvVariable("DB_PASSWORD"),
		DBName:            goDotEnvVariable("DB_NAME"),
		DBSslMode:         goDotEnvVariable("DB_SSLMODE"),
		GoogleMapsAPIKey:  goDotEnvVariable("GOOGLE_MAPS_API_KEY"),
		GoogleMapsBaseURL: os.Getenv("GOOGLE_MAPS_BASE_URL"),
	}
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func connectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	// TranslateError turns unique violations into gorm.ErrDuplicatedKey,
	// which the repository maps to a tracking number conflict.
	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = db.AutoMigrate(
		&parcelrepo.ParcelDTO{},
		&parcelrepo.TrackingEventDTO{},
		&parcelrepo.AgentDTO{},
		&geocache.GeocodeCacheDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	return db
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := courierhttp.NewServer(
		app.CreateCreateParcelCommandHandler(),
		app.CreateUpdateParcelStatusCommandHandler(),
		app.CreateAssignAgentCommandHandler(),
		app.CreateUnassignAgentCommandHandler(),
		app.CreateUpdateLocationCommandHandler(),
		app.CreateTrackParcelQueryHandler(),
		app.CreateGetParcelsQueryHandler(),
		app.CreateGetCustomerParcelsQueryHandler(),
		app.CreateGetCurrentLocationQueryHandler(),
		app.CreateGetDistanceQueryHandler(),
		app.CreateGetDailyMetricsQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
