package config

// EnvPrefix namespaces every variable read by Load.
const EnvPrefix = "SELLERDASH"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DefaultDashboardTimezone = "Asia/Riyadh"
)

const (
	EnvAppEnv      = "SELLERDASH_APP_ENV"
	EnvPort        = "SELLERDASH_APP_PORT"
	EnvLogLevel    = "SELLERDASH_LOG_LEVEL"
	EnvServiceKind = "SELLERDASH_SERVICE_KIND"

	EnvDBDSN      = "SELLERDASH_DB_DSN"
	EnvDBHost     = "SELLERDASH_DB_HOST"
	EnvDBPort     = "SELLERDASH_DB_PORT"
	EnvDBUser     = "SELLERDASH_DB_USER"
	EnvDBPassword = "SELLERDASH_DB_PASSWORD"
	EnvDBName     = "SELLERDASH_DB_NAME"
	EnvDBSSLMode  = "SELLERDASH_DB_SSLMODE"

	EnvRedisURL  = "SELLERDASH_REDIS_URL"
	EnvRedisAddr = "SELLERDASH_REDIS_ADDR"

	EnvJWTSecret  = "SELLERDASH_JWT_SECRET"
	EnvJWTIssuer  = "SELLERDASH_JWT_ISSUER"
	EnvJWTExpMins = "SELLERDASH_JWT_EXPIRATION_MINUTES"

	EnvDashboardTimezone     = "SELLERDASH_DASHBOARD_TIMEZONE"
	EnvDashboardFetchTimeout = "SELLERDASH_DASHBOARD_FETCH_TIMEOUT"
	EnvDashboardCacheTTL     = "SELLERDASH_DASHBOARD_CACHE_TTL"

	EnvTrackingRateLimitPerIP = "SELLERDASH_TRACKING_RATE_LIMIT_PER_IP"

	EnvGCPProjectID          = "SELLERDASH_GCP_PROJECT_ID"
	EnvPubSubSellerEventsSub = "SELLERDASH_PUBSUB_SELLER_EVENTS_SUBSCRIPTION"
	EnvBigQueryDataset       = "SELLERDASH_BIGQUERY_DATASET"

	EnvCronRetentionDays = "SELLERDASH_CRON_METRICS_RETENTION_DAYS"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
