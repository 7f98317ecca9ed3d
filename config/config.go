package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App        AppConfig
	DB         DBConfig
	Redis      RedisConfig
	JWT        JWTConfig
	Fitter     FitterConfig
	Results    ResultsConfig
	Simulation SimulationConfig
}

type AppConfig struct {
	Port string
	Env  string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

// FitterConfig points at the external survival regression service that
// performs the actual Cox model fitting.
type FitterConfig struct {
	BaseURL string
	Timeout time.Duration
}

type ResultsConfig struct {
	Dir string
}

// SimulationConfig carries the default effect-size constants for cohort
// generation. Individual generation requests may override any of them.
type SimulationConfig struct {
	BaselineHazard  float64
	TreatmentA      float64
	TreatmentB      float64
	MultiplierFloor float64
	HorizonDays     float64
	RecensorProb    float64
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	accessExpiry, err := time.ParseDuration(viper.GetString("JWT_ACCESS_EXPIRY"))
	if err != nil {
		accessExpiry = 15 * time.Minute
	}

	refreshExpiry, err := time.ParseDuration(viper.GetString("JWT_REFRESH_EXPIRY"))
	if err != nil {
		refreshExpiry = 7 * 24 * time.Hour
	}

	fitterTimeout, err := time.ParseDuration(viper.GetString("FITTER_TIMEOUT"))
	if err != nil {
		fitterTimeout = 60 * time.Second
	}

	viper.SetDefault("RESULTS_DIR", "results")
	viper.SetDefault("SIM_BASELINE_HAZARD", 0.015)
	viper.SetDefault("SIM_TREATMENT_A", 0.65)
	viper.SetDefault("SIM_TREATMENT_B", 0.35)
	viper.SetDefault("SIM_MULTIPLIER_FLOOR", 0.3)
	viper.SetDefault("SIM_HORIZON_DAYS", 1825.0)
	viper.SetDefault("SIM_RECENSOR_PROB", 0.3)

	config := &Config{
		App: AppConfig{
			Port: viper.GetString("APP_PORT"),
			Env:  viper.GetString("APP_ENV"),
		},
		DB: DBConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Name:     viper.GetString("DB_NAME"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:        viper.GetString("JWT_SECRET"),
			AccessExpiry:  accessExpiry,
			RefreshExpiry: refreshExpiry,
		},
		Fitter: FitterConfig{
			BaseURL: viper.GetString("FITTER_BASE_URL"),
			Timeout: fitterTimeout,
		},
		Results: ResultsConfig{
			Dir: viper.GetString("RESULTS_DIR"),
		},
		Simulation: SimulationConfig{
			BaselineHazard:  viper.GetFloat64("SIM_BASELINE_HAZARD"),
			TreatmentA:      viper.GetFloat64("SIM_TREATMENT_A"),
			TreatmentB:      viper.GetFloat64("SIM_TREATMENT_B"),
			MultiplierFloor: viper.GetFloat64("SIM_MULTIPLIER_FLOOR"),
			HorizonDays:     viper.GetFloat64("SIM_HORIZON_DAYS"),
			RecensorProb:    viper.GetFloat64("SIM_RECENSOR_PROB"),
		},
	}

	return config, nil
}
