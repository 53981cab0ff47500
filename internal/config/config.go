package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
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
	Secret          string `yaml:"secret"`
	Issuer          string `yaml:"issuer"`
	IDTokenTTL      string `yaml:"id_token_ttl"`
	CustomTokenTTL  string `yaml:"custom_token_ttl"`
	VerificationTTL string `yaml:"verification_ttl"`
}

type SessionConfig struct {
	TTL string `yaml:"ttl"`
}

type CookieConfig struct {
	Name   string `yaml:"name"`
	Domain string `yaml:"domain"`
	Secure bool   `yaml:"secure"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type EmailConfig struct {
	SMTPAddr      string `yaml:"smtp_addr"`
	SMTPUsername  string `yaml:"smtp_username"`
	SMTPPassword  string `yaml:"smtp_password"`
	From          string `yaml:"from"`
	VerifyBaseURL string `yaml:"verify_base_url"`
}

type ProgressConfig struct {
	DataDir string `yaml:"data_dir"`
}

// ClientConfig drives the client-side study runtime: which certification
// track the subdomain serves and where its bridge exchanges tokens. An empty
// cert_id disables the runtime (pure auth-server deployments).
type ClientConfig struct {
	CertID      string `yaml:"cert_id"`
	AuthBaseURL string `yaml:"auth_base_url"`
	Origin      string `yaml:"origin"`
}

type CasbinConfig struct {
	ModelPath string `yaml:"model_path"`
}

type ConfigFile struct {
	App      AppConfig      `yaml:"app"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	JWT      JWTConfig      `yaml:"jwt"`
	Session  SessionConfig  `yaml:"session"`
	Cookie   CookieConfig   `yaml:"cookie"`
	CORS     CORSConfig     `yaml:"cors"`
	Email    EmailConfig    `yaml:"email"`
	Progress ProgressConfig `yaml:"progress"`
	Client   ClientConfig   `yaml:"client"`
	Casbin   CasbinConfig   `yaml:"casbin"`
}

type Config struct {
	Port            string
	GinMode         string
	DSN             string
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	JWTSecret       string
	JWTIssuer       string
	IDTokenTTL      time.Duration
	CustomTokenTTL  time.Duration
	VerificationTTL time.Duration
	SessionTTL      time.Duration
	CookieName      string
	CookieDomain    string
	CookieSecure    bool
	AllowedOrigins  []string
	SMTPAddr        string
	SMTPUsername    string
	SMTPPassword    string
	EmailFrom       string
	VerifyBaseURL   string
	ProgressDataDir string
	CertID          string
	AuthBaseURL     string
	ClientOrigin    string
	CasbinModelPath string
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func Load() (*Config, error) {
	configFile, err := loadConfigFile(env("CONFIG_PATH", "config/config.yml"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	idTTL, err := time.ParseDuration(configFile.JWT.IDTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid ID token TTL: %w", err)
	}

	customTTL, err := time.ParseDuration(configFile.JWT.CustomTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid custom token TTL: %w", err)
	}

	verifyTTL, err := time.ParseDuration(configFile.JWT.VerificationTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid verification token TTL: %w", err)
	}

	sessionTTL, err := time.ParseDuration(configFile.Session.TTL)
	if err != nil {
		return nil, fmt.Errorf("invalid session TTL: %w", err)
	}

	cookieDomain := configFile.Cookie.Domain
	if cookieDomain != "" && !strings.HasPrefix(cookieDomain, ".") {
		// the shared cookie must be visible to every subdomain
		cookieDomain = "." + cookieDomain
	}

	return &Config{
		Port:            fmt.Sprintf("%d", configFile.App.Port),
		GinMode:         configFile.App.GinMode,
		DSN:             env("DATABASE_DSN", configFile.Database.DSN),
		RedisAddr:       configFile.Redis.Addr,
		RedisPassword:   configFile.Redis.Password,
		RedisDB:         configFile.Redis.DB,
		JWTSecret:       env("JWT_SECRET", configFile.JWT.Secret),
		JWTIssuer:       configFile.JWT.Issuer,
		IDTokenTTL:      idTTL,
		CustomTokenTTL:  customTTL,
		VerificationTTL: verifyTTL,
		SessionTTL:      sessionTTL,
		CookieName:      configFile.Cookie.Name,
		CookieDomain:    cookieDomain,
		CookieSecure:    configFile.Cookie.Secure,
		AllowedOrigins:  configFile.CORS.AllowedOrigins,
		SMTPAddr:        configFile.Email.SMTPAddr,
		SMTPUsername:    configFile.Email.SMTPUsername,
		SMTPPassword:    env("SMTP_PASSWORD", configFile.Email.SMTPPassword),
		EmailFrom:       configFile.Email.From,
		VerifyBaseURL:   configFile.Email.VerifyBaseURL,
		ProgressDataDir: env("PROGRESS_DATA_DIR", configFile.Progress.DataDir),
		CertID:          configFile.Client.CertID,
		AuthBaseURL:     configFile.Client.AuthBaseURL,
		ClientOrigin:    configFile.Client.Origin,
		CasbinModelPath: configFile.Casbin.ModelPath,
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
