package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"aijobs/services/dashboard/internal/errors"
)

const DefaultInputFile = "../dataset/ai_job_dataset.xlsx"

type Config struct {
	InputFile       string
	TargetResidence string

	FilteredFile    string
	MainTableFile   string
	SkillsTableFile string
	SummaryFile     string

	TopRoles            int
	TopSkills           int
	TopRolesBySalary    int
	HighQualityBenefits float64

	ClickHouseDSN          string
	ClickHouseMaxOpenConns int
	ClickHouseMaxIdleConns int
	ClickHouseConnMaxLife  time.Duration
	ClickHouseUsername     string
	ClickHousePassword     string
	ClickHouseDatabase     string

	NATSURL         string
	NATSConnTimeout time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	OTELCollectorURL string
}

func LoadConfig() (*Config, error) {
	config := &Config{
		InputFile:       getEnvString("INPUT_FILE", DefaultInputFile),
		TargetResidence: getEnvString("TARGET_RESIDENCE", "South Korea"),

		FilteredFile:    getEnvString("FILTERED_FILE", "south_korea_jobs.xlsx"),
		MainTableFile:   getEnvString("MAIN_TABLE_FILE", "dashboard_main_table.xlsx"),
		SkillsTableFile: getEnvString("SKILLS_TABLE_FILE", "dashboard_skills_table.xlsx"),
		SummaryFile:     getEnvString("SUMMARY_FILE", "dashboard_summary_tables.xlsx"),

		TopRoles:            getEnvInt("TOP_ROLES", 10),
		TopSkills:           getEnvInt("TOP_SKILLS", 10),
		TopRolesBySalary:    getEnvInt("TOP_ROLES_BY_SALARY", 15),
		HighQualityBenefits: getEnvFloat("HIGH_QUALITY_BENEFITS", 7.0),

		ClickHouseDSN:          getEnvString("CLICKHOUSE_DSN", ""),
		ClickHouseMaxOpenConns: getEnvInt("CLICKHOUSE_MAX_OPEN_CONNS", 10),
		ClickHouseMaxIdleConns: getEnvInt("CLICKHOUSE_MAX_IDLE_CONNS", 5),
		ClickHouseConnMaxLife:  getEnvDuration("CLICKHOUSE_CONN_MAX_LIFE", time.Hour),
		ClickHouseUsername:     getEnvString("CLICKHOUSE_USERNAME", "default"),
		ClickHousePassword:     getEnvString("CLICKHOUSE_PASSWORD", ""),
		ClickHouseDatabase:     getEnvString("CLICKHOUSE_DATABASE", "aijobs"),

		NATSURL:         getEnvString("NATS_URL", ""),
		NATSConnTimeout: getEnvDuration("NATS_CONN_TIMEOUT", 10*time.Second),

		RedisAddr:     getEnvString("REDIS_ADDR", ""),
		RedisPassword: getEnvString("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		CacheTTL:      getEnvDuration("CACHE_TTL", 24*time.Hour),

		OTELCollectorURL: getEnvString("OTEL_COLLECTOR_URL", ""),
	}

	for key, n := range map[string]int{
		"TOP_ROLES":           config.TopRoles,
		"TOP_SKILLS":          config.TopSkills,
		"TOP_ROLES_BY_SALARY": config.TopRolesBySalary,
	} {
		if n <= 0 {
			return nil, errors.InvalidInput(fmt.Sprintf("%s must be positive, got %d", key, n), nil)
		}
	}

	return config, nil
}

func getEnvString(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
