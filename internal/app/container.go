package app

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/nicowave/aws-study-flashcards-app.com-sub000/domain"
	"github.com/nicowave/aws-study-flashcards-app.com-sub000/internal/config"
	"github.com/nicowave/aws-study-flashcards-app.com-sub000/internal/infrastructure/auth"
	"github.com/nicowave/aws-study-flashcards-app.com-sub000/internal/infrastructure/database"
	"github.com/nicowave/aws-study-flashcards-app.com-sub000/internal/infrastructure/notifications"
	"github.com/nicowave/aws-study-flashcards-app.com-sub000/internal/infrastructure/repositories"
	"github.com/nicowave/aws-study-flashcards-app.com-sub000/internal/services"
)

// Container holds all dependencies
type Container struct {
	// Config
	Config *config.Config

	// Infrastructure
	DB          *gorm.DB
	RedisClient *redis.Client

	// Repositories
	AccountRepo    domain.AccountRepository
	ProfileRepo    domain.ProfileRepository
	SessionRepo    domain.SessionRepository
	CredentialRepo domain.CredentialRepository

	// Services
	PasswordSvc     domain.PasswordService
	TokenSvc        domain.TokenService
	NotificationSvc domain.NotificationService
	IdentitySvc     domain.IdentityService
	ExchangeSvc     domain.ExchangeService
	ProfileSvc      domain.ProfileService
}

// NewContainer creates and initializes all dependencies
func NewContainer(cfg *config.Config) (*Container, error) {
	container := &Container{Config: cfg}

	if err := container.initDatabase(); err != nil {
		return nil, err
	}
	if err := container.initRedis(); err != nil {
		return nil, err
	}

	container.initRepositories()
	container.initServices()

	return container, nil
}

func (c *Container) initDatabase() error {
	db, err := database.Open(c.Config.DSN)
	if err != nil {
		return err
	}
	if err := database.AutoMigrate(db); err != nil {
		return err
	}
	c.DB = db
	return nil
}

func (c *Container) initRedis() error {
	c.RedisClient = database.OpenRedis(c.Config.RedisAddr, c.Config.RedisPassword, c.Config.RedisDB)
	return nil
}

func (c *Container) initRepositories() {
	c.AccountRepo = repositories.NewAccountRepository(c.DB)
	c.ProfileRepo = repositories.NewProfileRepository(c.DB)
	c.SessionRepo = repositories.NewSessionRepository(c.RedisClient, c.Config.SessionTTL)
	c.CredentialRepo = repositories.NewCredentialRepository(c.RedisClient, c.Config.CustomTokenTTL)
}

func (c *Container) initServices() {
	c.PasswordSvc = auth.NewPasswordService()
	c.TokenSvc = auth.NewJWTService(
		c.Config.JWTSecret,
		c.Config.JWTIssuer,
		c.Config.IDTokenTTL,
		c.Config.CustomTokenTTL,
		c.Config.VerificationTTL,
	)
	c.NotificationSvc = notifications.NewEmailService(
		c.Config.SMTPAddr,
		c.Config.SMTPUsername,
		c.Config.SMTPPassword,
		c.Config.EmailFrom,
	)

	c.IdentitySvc = services.NewIdentityService(
		c.AccountRepo,
		c.ProfileRepo,
		c.SessionRepo,
		c.PasswordSvc,
		c.TokenSvc,
		c.NotificationSvc,
		services.IdentityConfig{
			SessionTTL:    c.Config.SessionTTL,
			VerifyBaseURL: c.Config.VerifyBaseURL,
		},
	)

	c.ExchangeSvc = services.NewExchangeService(
		c.AccountRepo,
		c.SessionRepo,
		c.CredentialRepo,
		c.TokenSvc,
		c.Config.SessionTTL,
		c.Config.CustomTokenTTL,
	)

	c.ProfileSvc = services.NewProfileService(
		c.AccountRepo,
		c.ProfileRepo,
		c.SessionRepo,
		c.PasswordSvc,
	)
}

// Close closes all connections
func (c *Container) Close() error {
	if c.RedisClient != nil {
		c.RedisClient.Close()
	}

	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}

	return nil
}
