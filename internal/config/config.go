package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/logeshwaran0404/Albany-VSM-sub001/domain"
)

type AppConfig struct {
	Port    int    `yaml:"port"`
	GinMode string `yaml:"gin_mode"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	Secret      string `yaml:"secret"`
	Issuer      string `yaml:"issuer"`
	AdminTTL    string `yaml:"admin_ttl"`
	AdvisorTTL  string `yaml:"advisor_ttl"`
	CustomerTTL string `yaml:"customer_ttl"`
}

type OTPConfig struct {
	TTL          string `yaml:"ttl"`
	Length       int    `yaml:"length"`
	MaxAttempts  int    `yaml:"max_attempts"`
	ResendWindow string `yaml:"resend_window"`
}

type PasswordConfig struct {
	BcryptCost int `yaml:"bcrypt_cost"`
}

type TwilioConfig struct {
	AccountSID string `yaml:"account_sid"`
	AuthToken  string `yaml:"auth_token"`
	FromNumber string `yaml:"from_number"`
}

type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

type AuthzConfig struct {
	RoutesPath string `yaml:"routes_path"`
	// AllowUnmatchedAuthenticated: routes with no matching rule still
	// require a valid token but accept any role. Set false for strict
	// default-deny.
	AllowUnmatchedAuthenticated bool `yaml:"allow_unmatched_authenticated"`
}

type ConfigFile struct {
	App      AppConfig      `yaml:"app"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	JWT      JWTConfig      `yaml:"jwt"`
	OTP      OTPConfig      `yaml:"otp"`
	Password PasswordConfig `yaml:"password"`
	Twilio   TwilioConfig   `yaml:"twilio"`
	SMTP     SMTPConfig     `yaml:"smtp"`
	Authz    AuthzConfig    `yaml:"authz"`
}

// Config is the fully parsed runtime configuration, read once at startup.
type Config struct {
	Port             string
	GinMode          string
	DSN              string
	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	JWTSecret        string
	JWTIssuer        string
	TokenTTLs        map[string]time.Duration
	OTP_TTL          time.Duration
	OTP_Length       int
	OTP_MaxAttempts  int
	OTP_ResendWindow time.Duration
	BcryptCost       int
	TwilioSID        string
	TwilioToken      string
	TwilioFrom       string
	SMTPHost         string
	SMTPPort         int
	SMTPUsername     string
	SMTPPassword     string
	SMTPFrom         string
	AccessRules      []domain.AccessRule

	AllowUnmatchedAuthenticated bool
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func Load() (*Config, error) {
	return LoadFrom(env("CONFIG_PATH", "config/config.yml"))
}

// LoadFrom reads the config file at path, applies environment overrides for
// secrets, and loads the route authorization table referenced by it.
func LoadFrom(path string) (*Config, error) {
	configFile, err := loadConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	adminTTL, err := time.ParseDuration(configFile.JWT.AdminTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid admin token TTL: %w", err)
	}
	advisorTTL, err := time.ParseDuration(configFile.JWT.AdvisorTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid advisor token TTL: %w", err)
	}
	customerTTL, err := time.ParseDuration(configFile.JWT.CustomerTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid customer token TTL: %w", err)
	}
	otpTTL, err := time.ParseDuration(configFile.OTP.TTL)
	if err != nil {
		return nil, fmt.Errorf("invalid OTP TTL: %w", err)
	}
	resWnd, err := time.ParseDuration(configFile.OTP.ResendWindow)
	if err != nil {
		return nil, fmt.Errorf("invalid OTP resend window: %w", err)
	}

	rules, err := LoadAccessRules(configFile.Authz.RoutesPath)
	if err != nil {
		return nil, err
	}

	redisDB := configFile.Redis.DB
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			redisDB = n
		}
	}

	return &Config{
		Port:    env("PORT", fmt.Sprintf("%d", configFile.App.Port)),
		GinMode: configFile.App.GinMode,
		DSN:     env("DATABASE_DSN", configFile.Database.DSN),

		RedisAddr:     env("REDIS_ADDR", configFile.Redis.Addr),
		RedisPassword: env("REDIS_PASSWORD", configFile.Redis.Password),
		RedisDB:       redisDB,

		JWTSecret: env("JWT_SECRET", configFile.JWT.Secret),
		JWTIssuer: configFile.JWT.Issuer,
		TokenTTLs: map[string]time.Duration{
			domain.RoleAdmin:          adminTTL,
			domain.RoleServiceAdvisor: advisorTTL,
			domain.RoleCustomer:       customerTTL,
		},

		OTP_TTL:          otpTTL,
		OTP_Length:       configFile.OTP.Length,
		OTP_MaxAttempts:  configFile.OTP.MaxAttempts,
		OTP_ResendWindow: resWnd,

		BcryptCost: configFile.Password.BcryptCost,

		TwilioSID:   env("TWILIO_ACCOUNT_SID", configFile.Twilio.AccountSID),
		TwilioToken: env("TWILIO_AUTH_TOKEN", configFile.Twilio.AuthToken),
		TwilioFrom:  env("TWILIO_FROM_NUMBER", configFile.Twilio.FromNumber),

		SMTPHost:     env("SMTP_HOST", configFile.SMTP.Host),
		SMTPPort:     configFile.SMTP.Port,
		SMTPUsername: env("SMTP_USERNAME", configFile.SMTP.Username),
		SMTPPassword: env("SMTP_PASSWORD", configFile.SMTP.Password),
		SMTPFrom:     env("SMTP_FROM", configFile.SMTP.From),

		AccessRules:                 rules,
		AllowUnmatchedAuthenticated: configFile.Authz.AllowUnmatchedAuthenticated,
	}, nil
}

func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	var config ConfigFile
	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}

	return &config, nil
}

// LoadAccessRules reads the route authorization table. Order in the file is
// evaluation order: the first matching rule wins.
func LoadAccessRules(path string) ([]domain.AccessRule, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read route rules file: %w", err)
	}

	var table struct {
		Routes []domain.AccessRule `yaml:"routes"`
	}
	if err := yaml.Unmarshal(bytes, &table); err != nil {
		return nil, fmt.Errorf("could not parse route rules yaml: %w", err)
	}

	for i, rule := range table.Routes {
		if rule.Pattern == "" {
			return nil, fmt.Errorf("route rule %d has no path pattern", i)
		}
		if !rule.Public && len(rule.Roles) == 0 {
			return nil, fmt.Errorf("route rule %q is neither public nor role-gated", rule.Pattern)
		}
	}

	return table.Routes, nil
}
