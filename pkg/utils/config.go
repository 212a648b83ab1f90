package utils

import (
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	JWT      JWTConfig
	TMDB     TMDBConfig
	UsersAPI UsersAPIConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	URI            string
	Name           string
	TimeoutSeconds int
}

type JWTConfig struct {
	Secret string
}

type TMDBConfig struct {
	BaseURL string
	Token   string
}

type UsersAPIConfig struct {
	BaseURL string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "5005")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("MONGODB_URI", "mongodb://localhost:27017")
	viper.SetDefault("MONGODB_NAME", "movie-reviews")
	viper.SetDefault("MONGODB_TIMEOUT_SECONDS", 5)
	viper.SetDefault("TMDB_API_BASE_URL", "https://api.themoviedb.org/3")
	viper.SetDefault("USERS_API_BASE_URL", "http://localhost:5005/api")

	if err := viper.ReadInConfig(); err != nil {
		// No .env file is fine, environment variables still apply
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			URI:            viper.GetString("MONGODB_URI"),
			Name:           viper.GetString("MONGODB_NAME"),
			TimeoutSeconds: viper.GetInt("MONGODB_TIMEOUT_SECONDS"),
		},
		JWT: JWTConfig{
			Secret: viper.GetString("JWT_SECRET"),
		},
		TMDB: TMDBConfig{
			BaseURL: viper.GetString("TMDB_API_BASE_URL"),
			Token:   viper.GetString("TMDB_API_TOKEN"),
		},
		UsersAPI: UsersAPIConfig{
			BaseURL: viper.GetString("USERS_API_BASE_URL"),
		},
	}

	return config, nil
}
