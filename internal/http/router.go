package httpx

import (
	"github.com/gin-gonic/gin"

	"github.com/nicowave/aws-study-flashcards-app.com-sub000/internal/http/handlers"
	"github.com/nicowave/aws-study-flashcards-app.com-sub000/internal/http/middleware"
)

func BuildRouter(
	ah *handlers.AuthHandlers,
	eh *handlers.ExchangeHandlers,
	ph *handlers.ProfileHandlers,
	polh *handlers.PolicyHandlers,
	jwtmw *middleware.AuthMW,
	cb *middleware.CasbinMW,
	allowedOrigins []string,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	auth := r.Group("/auth")
	auth.POST("/register", ah.Register)
	auth.POST("/login", ah.Login)
	auth.POST("/login/google", ah.LoginWithGoogle)
	auth.POST("/login/guest", ah.LoginAsGuest)
	auth.POST("/verify", ah.VerifyEmail)
	auth.POST("/verify/resend", ah.ResendVerification)

	// the exchange surface is unauthenticated but origin-restricted
	exchange := r.Group("/auth/token").Use(middleware.CORS(allowedOrigins))
	exchange.POST("/exchange", eh.Exchange)
	exchange.POST("/redeem", eh.Redeem)

	v := r.Group("/").Use(jwtmw.WithIDToken(), cb.Enforce())
	v.GET("/auth/me", ah.Me)
	v.POST("/auth/logout", ah.Logout)
	v.GET("/profile/me", ph.Me)
	v.PUT("/profile/display-name", ph.ChangeDisplayName)
	v.PUT("/profile/avatar", ph.UpdateAvatar)
	v.POST("/profile/password", ph.ChangePassword)
	v.DELETE("/profile", ph.DeleteAccount)
	v.POST("/progress/sync", ph.SyncProgress)

	adm := r.Group("/admin").Use(jwtmw.WithIDToken(), cb.Enforce())
	adm.GET("/policies", polh.List)
	adm.POST("/policies", polh.Add)
	adm.DELETE("/policies", polh.Remove)

	return r
}
