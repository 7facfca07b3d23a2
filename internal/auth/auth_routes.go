package auth

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes takes the auth middleware as a plain handler func so this
// package never imports internal/middleware (which depends on auth for
// principal decoding).
func RegisterRoutes(r *gin.RouterGroup, handler *Handler, authMW gin.HandlerFunc) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/login", handler.Login)
		authGroup.POST("/register", handler.Register)
		authGroup.GET("/me", authMW, handler.GetMe)
	}
}
