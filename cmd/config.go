package cmd

// Config carries all environment-driven settings for the service.
type Config struct {
	HTTPPort          string
	DBHost            string
	DBPort            string
	DBUser            string
	DBPassword        string
	DBName            string
	DBSslMode         string
	GoogleMapsAPIKey  string
	GoogleMapsBaseURL string
}
