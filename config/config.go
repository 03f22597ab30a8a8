package config

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server   Server
	Database Database
	Auth     Auth
	Gemini   Gemini
	Judge    Judge
	Scoring  Scoring
	LogLevel string
}

type Server struct {
	Port    string
	GinMode string
}

type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type Auth struct {
	JWTSecret string `json:"-"`
	TokenTTL  time.Duration
}

type Gemini struct {
	ApiKey string `json:"-"`
	Model  string
}

// Judge points at a Judge0 CE compatible code-execution endpoint.
type Judge struct {
	BaseURL string
	ApiKey  string `json:"-"`
	ApiHost string
	Timeout time.Duration
}

type Scoring struct {
	// SubjectScorePolicy is "average" or "overwrite".
	SubjectScorePolicy string
	AllowPartialSubmit bool
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("GIN_MODE", "debug")
	viper.SetDefault("DATABASE_SSLMODE", "disable")
	viper.SetDefault("JWT_TTL", "24h")
	viper.SetDefault("GEMINI_MODEL", "gemini-1.5-flash")
	viper.SetDefault("JUDGE_BASE_URL", "https://judge0-ce.p.rapidapi.com")
	viper.SetDefault("JUDGE_API_HOST", "judge0-ce.p.rapidapi.com")
	viper.SetDefault("JUDGE_TIMEOUT", "20s")
	viper.SetDefault("SUBJECT_SCORE_POLICY", "average")
	viper.SetDefault("ALLOW_PARTIAL_SUBMIT", false)
	viper.SetDefault("LOG_LEVEL", "info")

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Server.GinMode = viper.GetString("GIN_MODE")
	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")
	config.Database.SSLMode = viper.GetString("DATABASE_SSLMODE")

	config.Auth.JWTSecret = viper.GetString("JWT_SECRET")
	config.Auth.TokenTTL = viper.GetDuration("JWT_TTL")
	if config.Auth.JWTSecret == "" {
		log.Warn().Msg("JWT_SECRET is not set, using an insecure development secret")
		config.Auth.JWTSecret = "placemate-dev-secret"
	}

	config.Gemini.ApiKey = viper.GetString("GEMINI_API_KEY")
	config.Gemini.Model = viper.GetString("GEMINI_MODEL")

	config.Judge.BaseURL = viper.GetString("JUDGE_BASE_URL")
	config.Judge.ApiKey = viper.GetString("JUDGE_API_KEY")
	config.Judge.ApiHost = viper.GetString("JUDGE_API_HOST")
	config.Judge.Timeout = viper.GetDuration("JUDGE_TIMEOUT")

	config.Scoring.SubjectScorePolicy = viper.GetString("SUBJECT_SCORE_POLICY")
	config.Scoring.AllowPartialSubmit = viper.GetBool("ALLOW_PARTIAL_SUBMIT")

	config.LogLevel = viper.GetString("LOG_LEVEL")

	log.Info().Interface("config", config).Msg("Config loaded")
	return &config, nil

}
