package app

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nicowave/aws-study-flashcards-app.com-sub000/internal/bridge"
	"github.com/nicowave/aws-study-flashcards-app.com-sub000/internal/config"
	httpx "github.com/nicowave/aws-study-flashcards-app.com-sub000/internal/http"
	"github.com/nicowave/aws-study-flashcards-app.com-sub000/internal/http/handlers"
	"github.com/nicowave/aws-study-flashcards-app.com-sub000/internal/http/middleware"
	"github.com/nicowave/aws-study-flashcards-app.com-sub000/internal/infrastructure/auth"
	"github.com/nicowave/aws-study-flashcards-app.com-sub000/internal/infrastructure/database"
	"github.com/nicowave/aws-study-flashcards-app.com-sub000/internal/services"
)

func Run(cfg *config.Config) error {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	c, err := NewContainer(cfg)
	if err != nil {
		return err
	}
	defer c.Close()

	if err := database.PingRedis(context.Background(), c.RedisClient); err != nil {
		return err
	}

	cas, err := auth.NewCasbinService(c.DB, cfg.CasbinModelPath)
	if err != nil {
		return err
	}

	// a configured cert track starts the client-side study core alongside
	// the auth server; pure auth deployments leave client.cert_id empty
	if cfg.CertID != "" {
		client, err := NewClientRuntime(cfg, c.IdentitySvc, c.ProfileSvc)
		if err != nil {
			return err
		}
		defer client.Close()
	}

	sharedCookie := bridge.SharedCookie{
		Name:   cfg.CookieName,
		Domain: cfg.CookieDomain,
		Secure: cfg.CookieSecure,
		TTL:    cfg.IDTokenTTL,
	}

	authH := handlers.NewAuthHandlers(c.IdentitySvc, sharedCookie)
	exchangeH := handlers.NewExchangeHandlers(c.ExchangeSvc)
	profileH := handlers.NewProfileHandlers(c.ProfileSvc)
	policyH := handlers.NewPolicyHandlers(services.NewPolicyService(cas.E))

	jwtMW := middleware.NewAuthMW(c.TokenSvc, c.SessionRepo)
	casbinMW := middleware.NewCasbinMW(cas.E)

	r := httpx.BuildRouter(authH, exchangeH, profileH, policyH, jwtMW, casbinMW, cfg.AllowedOrigins)

	policies := cas.E.GetPolicy()
	if len(policies) == 0 {
		cas.E.AddPolicy("role_admin", "/admin/*", "(GET|POST|PUT|DELETE)")
		cas.E.AddPolicy("role_user", "/auth/me", "GET")
		cas.E.AddPolicy("role_user", "/auth/logout", "POST")
		cas.E.AddPolicy("role_user", "/profile/*", "(GET|POST|PUT|DELETE)")
		cas.E.AddPolicy("role_user", "/profile", "DELETE")
		cas.E.AddPolicy("role_user", "/progress/*", "POST")
		cas.E.AddPolicy("role_anonymous", "/auth/me", "GET")
		cas.E.AddPolicy("role_anonymous", "/auth/logout", "POST")
		cas.E.AddPolicy("role_anonymous", "/profile/me", "GET")
		cas.E.AddPolicy("role_anonymous", "/progress/*", "POST")
		_ = cas.E.SavePolicy()
		log.Println("casbin: seeded default policies")
	}

	addr := ":" + cfg.Port
	log.Printf("listening on %s", addr)
	return http.ListenAndServe(addr, r)
}
