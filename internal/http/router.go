package httpx

import (
	"github.com/gin-gonic/gin"

	"github.com/logeshwaran0404/Albany-VSM-sub001/internal/http/handlers"
	"github.com/logeshwaran0404/Albany-VSM-sub001/internal/http/middleware"
)

// BuildRouter assembles the pipeline: recovery, token filter, access matrix,
// then route dispatch. Each stage short-circuits on failure.
func BuildRouter(ah *handlers.AuthHandlers, authmw *middleware.AuthMW, matrix *middleware.AccessMatrix) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), authmw.Filter(), matrix.Enforce())

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	auth := r.Group("/api/auth")
	auth.POST("/admin/login", ah.AdminLogin)
	auth.POST("/advisor/login", ah.AdvisorLogin)
	auth.POST("/otp/send", ah.SendOTP)
	auth.POST("/otp/verify", ah.VerifyOTP)
	auth.POST("/password", ah.ChangePassword)
	auth.GET("/me", ah.Me)

	// Thin presentation routes; real payloads live outside the auth core.
	// They exist so the matrix rules for the business surface are exercised.
	api := r.Group("/api")
	api.GET("/inventory/parts", func(c *gin.Context) {
		c.JSON(200, gin.H{"parts": []gin.H{}})
	})
	api.GET("/requests/open", func(c *gin.Context) {
		c.JSON(200, gin.H{"requests": []gin.H{}})
	})
	api.GET("/vehicles/mine", func(c *gin.Context) {
		subjectID, _, _ := middleware.Subject(c)
		c.JSON(200, gin.H{"owner": subjectID, "vehicles": []gin.H{}})
	})

	adm := r.Group("/admin")
	adm.GET("/overview", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
