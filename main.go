package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"postsapp/auth"
	"postsapp/config"
	"postsapp/controllers"
	"postsapp/database"
	"postsapp/middleware"
	"postsapp/store"
	"postsapp/tokens"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	db, err := database.Connect(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Disconnect(ctx)

	if err := db.EnsureIndexes(ctx); err != nil {
		log.Fatal(err)
	}

	users := store.NewUserStore(db.Collection("users"))
	tokenManager := tokens.NewManager(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	sessions := auth.NewSessionManager(users, tokenManager)

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	if len(cfg.AllowedOrigins) > 0 {
		allowedOrigins := map[string]bool{}
		for _, origin := range cfg.AllowedOrigins {
			allowedOrigins[origin] = true
		}
		r.Use(cors.New(cors.Config{
			AllowOriginFunc: func(origin string) bool {
				return allowedOrigins[origin]
			},
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	r.POST("/auth/register", controllers.Register(sessions))
	r.POST("/auth/login", controllers.Login(sessions))
	r.POST("/auth/refresh", controllers.Refresh(sessions))
	r.POST("/auth/logout", controllers.Logout(sessions))

	r.GET("/post", controllers.GetPosts(db))
	r.GET("/post/:id", controllers.GetPost(db))
	r.GET("/post/:id/comments", controllers.GetCommentsByPost(db))
	r.GET("/comment/:id", controllers.GetComment(db))
	r.GET("/user", controllers.GetUsers(db))
	r.GET("/user/:id", controllers.GetUser(db))

	protected := r.Group("/")
	protected.Use(middleware.AuthMiddleware(tokenManager))
	{
		protected.POST("/post", controllers.CreatePost(db))
		protected.PUT("/post/:id", controllers.UpdatePost(db))

		protected.POST("/comment", controllers.CreateComment(db))
		protected.PUT("/comment/:id", controllers.UpdateComment(db))
		protected.DELETE("/comment/:id", controllers.DeleteComment(db))

		protected.PUT("/user/:id", controllers.UpdateUser(db))
		protected.DELETE("/user/:id", controllers.DeleteUser(db))
		protected.POST("/user/:id/avatar", controllers.UploadAvatar(users, cfg))
	}

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
