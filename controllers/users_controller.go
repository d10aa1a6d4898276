package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"postsapp/config"
	"postsapp/database"
	"postsapp/dto"
	"postsapp/models"
	"postsapp/store"
	"postsapp/utils"
)

// Users are created through /auth/register only; this controller covers
// read, update, delete and the avatar upload.

func GetUsers(db *database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := db.Collection("users")

		cursor, err := col.Find(ctx, bson.M{})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error retrieving users"})
			return
		}
		defer cursor.Close(ctx)

		users := make([]models.User, 0)
		if err := cursor.All(ctx, &users); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error retrieving users"})
			return
		}

		c.JSON(http.StatusOK, users)
	}
}

func GetUser(db *database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := db.Collection("users")

		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user id"})
			return
		}

		var user models.User
		if err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}

		c.JSON(http.StatusOK, user)
	}
}

func UpdateUser(db *database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := db.Collection("users")

		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user id"})
			return
		}

		var body dto.UpdateUserDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
			return
		}

		set := bson.M{}
		if body.Email != nil {
			set["email"] = *body.Email
		}
		if body.Username != nil {
			set["username"] = *body.Username
		}
		if len(set) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "No updates provided"})
			return
		}

		opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
		var user models.User
		err = col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&user)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
				return
			}
			if utils.IsDuplicateKey(err) {
				c.JSON(http.StatusConflict, gin.H{"message": "User already exists"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error updating user"})
			return
		}

		c.JSON(http.StatusOK, user)
	}
}

func DeleteUser(db *database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := db.Collection("users")

		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user id"})
			return
		}

		res, err := col.DeleteOne(ctx, bson.M{"_id": id})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error deleting user"})
			return
		}
		if res.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
	}
}

// UploadAvatar stores a profile image in GCS and records its public URL
// on the user. The previous avatar object is deleted best effort.
func UploadAvatar(users *store.UserStore, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		id := c.Param("id")
		user, err := users.FindByID(ctx, id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error retrieving user"})
			return
		}
		if user == nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}

		fileHeader, err := c.FormFile("avatar")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Avatar file is required"})
			return
		}

		gcs, err := utils.NewGCSClient(ctx, cfg.CredentialsFile)
		if err != nil {
			log.Println("gcs client:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error uploading avatar"})
			return
		}
		defer gcs.Close()

		publicURL, err := utils.UploadAvatarToGCS(ctx, gcs, cfg.GCSBucket, id, fileHeader)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}

		if err := users.UpdateAvatar(ctx, id, publicURL); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error updating user"})
			return
		}

		if user.AvatarURL != "" {
			if objectName, err := utils.ObjectNameFromGCSPublicURL(cfg.GCSBucket, user.AvatarURL); err == nil {
				_ = utils.DeleteGCSObject(ctx, gcs, cfg.GCSBucket, objectName)
			}
		}

		c.JSON(http.StatusOK, gin.H{"avatarUrl": publicURL})
	}
}
