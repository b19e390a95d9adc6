package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "PORTAL"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv       = "PORTAL_APP_ENV"
	EnvPort         = "PORTAL_APP_PORT"
	EnvLogLevel     = "PORTAL_LOG_LEVEL"
	EnvLogWarnStack = "PORTAL_LOG_WARN_STACK"
	EnvDefaultLang  = "PORTAL_DEFAULT_LANGUAGE"

	EnvDBDSN      = "PORTAL_DB_DSN"
	EnvDBDriver   = "PORTAL_DB_DRIVER"
	EnvDBHost     = "PORTAL_DB_HOST"
	EnvDBPort     = "PORTAL_DB_PORT"
	EnvDBUser     = "PORTAL_DB_USER"
	EnvDBPassword = "PORTAL_DB_PASSWORD"
	EnvDBName     = "PORTAL_DB_NAME"
	EnvDBSSLMode  = "PORTAL_DB_SSLMODE"

	EnvRedisURL = "PORTAL_REDIS_URL"

	EnvJWTSecret  = "PORTAL_JWT_SECRET"
	EnvJWTIssuer  = "PORTAL_JWT_ISSUER"
	EnvJWTExpMins = "PORTAL_JWT_EXPIRATION_MINUTES"

	EnvOrderNumberSource   = "PORTAL_ORDER_NUMBER_SOURCE"
	EnvOrderNumberPrefix   = "PORTAL_ORDER_NUMBER_PREFIX"
	EnvOrderSubmitAtomic   = "PORTAL_ORDER_SUBMIT_TRANSACTIONAL"
	EnvCartSessionTTL      = "PORTAL_CART_SESSION_TTL"
	EnvIdempotencyTTL      = "PORTAL_IDEMPOTENCY_TTL"
	EnvFeatureUseSQLite    = "PORTAL_USE_SQLITE"
	EnvFeatureAutoMigrate  = "PORTAL_AUTO_MIGRATE"
	EnvFeatureMetricsRoute = "PORTAL_EXPOSE_METRICS"
)

const (
	OrderNumberSourcePostgres = "postgres"
	OrderNumberSourceRedis    = "redis"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	HTTP         HTTPConfig
	JWT          JWTConfig
	Orders       OrdersConfig
	Cart         CartConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.FeatureFlags.UseSQLite {
		cfg.DB.Driver = "sqlite"
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	if err := cfg.Orders.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env             string `envconfig:"PORTAL_APP_ENV" required:"true"`
	Port            string `envconfig:"PORTAL_APP_PORT" required:"true"`
	LogLevel        string `envconfig:"PORTAL_LOG_LEVEL" default:"info"`
	LogWarnStack    bool   `envconfig:"PORTAL_LOG_WARN_STACK" default:"false"`
	DefaultLanguage string `envconfig:"PORTAL_DEFAULT_LANGUAGE" default:"fr"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"PORTAL_DB_DSN"`
	Driver string `envconfig:"PORTAL_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"PORTAL_DB_HOST"`
	LegacyPort     int    `envconfig:"PORTAL_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"PORTAL_DB_USER"`
	LegacyPassword string `envconfig:"PORTAL_DB_PASSWORD"`
	LegacyName     string `envconfig:"PORTAL_DB_NAME"`
	LegacySSLMode  string `envconfig:"PORTAL_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"PORTAL_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"PORTAL_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"PORTAL_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"PORTAL_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// IsSQLite reports whether the connection targets the embedded sqlite driver.
func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(strings.TrimSpace(db.Driver), "sqlite")
}

type RedisConfig struct {
	URL          string        `envconfig:"PORTAL_REDIS_URL" required:"true"`
	Address      string        `envconfig:"PORTAL_REDIS_ADDR"`
	Password     string        `envconfig:"PORTAL_REDIS_PASSWORD"`
	DB           int           `envconfig:"PORTAL_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"PORTAL_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"PORTAL_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"PORTAL_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"PORTAL_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"PORTAL_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// HTTPConfig controls the API surface: CORS and request throttling.
type HTTPConfig struct {
	CORSOrigins       []string      `envconfig:"PORTAL_CORS_ORIGINS"`
	RateLimitWindow   time.Duration `envconfig:"PORTAL_RATE_LIMIT_WINDOW" default:"1m"`
	RateLimitPerIP    int           `envconfig:"PORTAL_RATE_LIMIT_PER_IP" default:"300"`
	CheckoutPerClient int           `envconfig:"PORTAL_CHECKOUT_LIMIT_PER_CLIENT" default:"10"`
	ShutdownTimeout   time.Duration `envconfig:"PORTAL_SHUTDOWN_TIMEOUT" default:"15s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"PORTAL_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"PORTAL_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"PORTAL_JWT_EXPIRATION_MINUTES" default:"60"`
}

// OrdersConfig controls order-number allocation and submission.
type OrdersConfig struct {
	NumberSource  string        `envconfig:"PORTAL_ORDER_NUMBER_SOURCE" default:"postgres"`
	NumberPrefix  string        `envconfig:"PORTAL_ORDER_NUMBER_PREFIX" default:"EON"`
	NumberTimeout time.Duration `envconfig:"PORTAL_ORDER_NUMBER_TIMEOUT" default:"2s"`
	// SubmitTransactional writes the order header and its items in one transaction.
	SubmitTransactional bool          `envconfig:"PORTAL_ORDER_SUBMIT_TRANSACTIONAL" default:"true"`
	IdempotencyTTL      time.Duration `envconfig:"PORTAL_IDEMPOTENCY_TTL" default:"24h"`
}

func (o OrdersConfig) validate() error {
	switch strings.ToLower(strings.TrimSpace(o.NumberSource)) {
	case OrderNumberSourcePostgres, OrderNumberSourceRedis:
		return nil
	default:
		return fmt.Errorf("%s must be %q or %q, got %q", EnvOrderNumberSource, OrderNumberSourcePostgres, OrderNumberSourceRedis, o.NumberSource)
	}
}

type CartConfig struct {
	SessionTTL            time.Duration `envconfig:"PORTAL_CART_SESSION_TTL" default:"168h"`
	DiscountAttemptLimit  int64         `envconfig:"PORTAL_CART_DISCOUNT_ATTEMPT_LIMIT" default:"10"`
	DiscountAttemptWindow time.Duration `envconfig:"PORTAL_CART_DISCOUNT_ATTEMPT_WINDOW" default:"10m"`
}

type FeatureFlagsConfig struct {
	UseSQLite     bool `envconfig:"PORTAL_USE_SQLITE" default:"false"`
	AutoMigrate   bool `envconfig:"PORTAL_AUTO_MIGRATE" default:"false"`
	ExposeMetrics bool `envconfig:"PORTAL_EXPOSE_METRICS" default:"true"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}
	if db.IsSQLite() {
		db.DSN = "file:portal.db?cache=shared"
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
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
