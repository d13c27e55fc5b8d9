package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	Service      ServiceConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Dashboard    DashboardConfig
	Tracking     TrackingConfig
	FeatureFlags FeatureFlagsConfig
	Eventing     EventingConfig
	GCP          GCPConfig
	PubSub       PubSubConfig
	BigQuery     BigQueryConfig
	Cron         CronConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	if _, err := cfg.Dashboard.Location(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SELLERDASH_APP_ENV" required:"true"`
	Port         string `envconfig:"SELLERDASH_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"SELLERDASH_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SELLERDASH_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"SELLERDASH_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN string `envconfig:"SELLERDASH_DB_DSN"`

	LegacyHost     string `envconfig:"SELLERDASH_DB_HOST"`
	LegacyPort     int    `envconfig:"SELLERDASH_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"SELLERDASH_DB_USER"`
	LegacyPassword string `envconfig:"SELLERDASH_DB_PASSWORD"`
	LegacyName     string `envconfig:"SELLERDASH_DB_NAME"`
	LegacySSLMode  string `envconfig:"SELLERDASH_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"SELLERDASH_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SELLERDASH_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SELLERDASH_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SELLERDASH_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"SELLERDASH_REDIS_URL"`
	Address      string        `envconfig:"SELLERDASH_REDIS_ADDR"`
	Password     string        `envconfig:"SELLERDASH_REDIS_PASSWORD"`
	DB           int           `envconfig:"SELLERDASH_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SELLERDASH_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SELLERDASH_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SELLERDASH_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SELLERDASH_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SELLERDASH_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"SELLERDASH_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"SELLERDASH_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"SELLERDASH_JWT_EXPIRATION_MINUTES" default:"60"`
}

// DashboardConfig tunes the seller analytics read path.
type DashboardConfig struct {
	Timezone          string        `envconfig:"SELLERDASH_DASHBOARD_TIMEZONE" default:"Asia/Riyadh"`
	FetchTimeout      time.Duration `envconfig:"SELLERDASH_DASHBOARD_FETCH_TIMEOUT" default:"5s"`
	CacheTTL          time.Duration `envconfig:"SELLERDASH_DASHBOARD_CACHE_TTL" default:"60s"`
	TopListingsLimit  int           `envconfig:"SELLERDASH_DASHBOARD_TOP_LISTINGS_LIMIT" default:"5"`
	RecentOrdersLimit int           `envconfig:"SELLERDASH_DASHBOARD_RECENT_ORDERS_LIMIT" default:"5"`
}

// Location resolves the configured timezone used for calendar-day boundaries.
func (d DashboardConfig) Location() (*time.Location, error) {
	name := strings.TrimSpace(d.Timezone)
	if name == "" {
		name = DefaultDashboardTimezone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", EnvDashboardTimezone, err)
	}
	return loc, nil
}

type TrackingConfig struct {
	RateLimitWindow time.Duration `envconfig:"SELLERDASH_TRACKING_RATE_LIMIT_WINDOW" default:"1m"`
	RateLimitPerIP  int           `envconfig:"SELLERDASH_TRACKING_RATE_LIMIT_PER_IP" default:"120"`
}

type FeatureFlagsConfig struct {
	AutoMigrate   bool `envconfig:"SELLERDASH_AUTO_MIGRATE" default:"false"`
	ArchiveEvents bool `envconfig:"SELLERDASH_FEATURE_ARCHIVE_EVENTS" default:"false"`
}

type EventingConfig struct {
	IdempotencyTTL time.Duration `envconfig:"SELLERDASH_EVENTING_IDEMPOTENCY_TTL" default:"720h"`
}

type GCPConfig struct {
	ProjectID              string `envconfig:"SELLERDASH_GCP_PROJECT_ID"`
	CredentialsJSON        string `envconfig:"SELLERDASH_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"SELLERDASH_GOOGLE_APPLICATION_CREDENTIALS"`
}

type PubSubConfig struct {
	SellerEventsSubscription string `envconfig:"SELLERDASH_PUBSUB_SELLER_EVENTS_SUBSCRIPTION" default:"seller-events-analytics"`
}

type BigQueryConfig struct {
	Dataset           string `envconfig:"SELLERDASH_BIGQUERY_DATASET" default:"seller_dashboard"`
	SellerEventsTable string `envconfig:"SELLERDASH_BIGQUERY_SELLER_EVENTS_TABLE" default:"seller_events"`
}

type CronConfig struct {
	Interval               time.Duration `envconfig:"SELLERDASH_CRON_INTERVAL" default:"1h"`
	LockTTL                time.Duration `envconfig:"SELLERDASH_CRON_LOCK_TTL" default:"30m"`
	MetricsRetentionDays   int           `envconfig:"SELLERDASH_CRON_METRICS_RETENTION_DAYS" default:"730"`
	UniqueCustomersEnabled bool          `envconfig:"SELLERDASH_CRON_UNIQUE_CUSTOMERS_ENABLED" default:"true"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	var missing []string
	for _, key := range legacyDBEnvVars {
		if legacyValues[key] == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}
	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
