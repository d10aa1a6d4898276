package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"postsapp/auth"
	"postsapp/dto"
)

func Register(sessions *auth.SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.RegisterDTO
		if err := c.ShouldBindJSON(&body); err != nil || body.Email == "" || body.Password == "" || body.Username == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Email, password and username are required"})
			return
		}

		pair, err := sessions.Register(c.Request.Context(), body.Email, body.Password, body.Username)
		if err != nil {
			if errors.Is(err, auth.ErrUserExists) {
				c.JSON(http.StatusConflict, gin.H{"message": "User already exists"})
				return
			}
			log.Println("register:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"token":        pair.AccessToken,
			"refreshToken": pair.RefreshToken,
			"_id":          pair.UserID,
		})
	}
}

func Login(sessions *auth.SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.LoginDTO
		if err := c.ShouldBindJSON(&body); err != nil || body.Email == "" || body.Password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Email and password are required"})
			return
		}

		pair, err := sessions.Login(c.Request.Context(), body.Email, body.Password)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidCredentials) {
				c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password"})
				return
			}
			log.Println("login:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"token":        pair.AccessToken,
			"refreshToken": pair.RefreshToken,
			"_id":          pair.UserID,
		})
	}
}

func Refresh(sessions *auth.SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.RefreshDTO
		if err := c.ShouldBindJSON(&body); err != nil || body.RefreshToken == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Refresh token is required"})
			return
		}

		pair, err := sessions.Refresh(c.Request.Context(), body.RefreshToken)
		if err != nil {
			// Every refresh failure looks the same to the caller.
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid refresh token"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"token":        pair.AccessToken,
			"refreshToken": pair.RefreshToken,
			"_id":          pair.UserID,
		})
	}
}

func Logout(sessions *auth.SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.RefreshDTO
		if err := c.ShouldBindJSON(&body); err != nil || body.RefreshToken == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Refresh token is required"})
			return
		}

		if err := sessions.Logout(c.Request.Context(), body.RefreshToken); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid refresh token"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
	}
}
