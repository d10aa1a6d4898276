package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"postsapp/database"
	"postsapp/dto"
	"postsapp/models"
	"postsapp/utils"
)

func GetPosts(db *database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := db.Collection("posts")

		filter := bson.M{}
		if sender := strings.TrimSpace(c.Query("sender")); sender != "" {
			filter["createdBy"] = sender
		}

		// pagination (optional)
		opts := options.Find()
		if limit := utils.ParseIntDefault(c.Query("limit"), 0); limit > 0 {
			page := utils.ParseIntDefault(c.Query("page"), 1)
			if page < 1 {
				page = 1
			}
			opts.SetSkip(int64((page - 1) * limit)).SetLimit(int64(limit))
		}

		cursor, err := col.Find(ctx, filter, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error retrieving posts"})
			return
		}
		defer cursor.Close(ctx)

		posts := make([]models.Post, 0)
		if err := cursor.All(ctx, &posts); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error retrieving posts"})
			return
		}

		c.JSON(http.StatusOK, posts)
	}
}

func GetPost(db *database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := db.Collection("posts")

		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid post id"})
			return
		}

		var post models.Post
		if err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&post); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Post not found"})
			return
		}

		c.JSON(http.StatusOK, post)
	}
}

func CreatePost(db *database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := db.Collection("posts")

		var body dto.CreatePostDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Content and createdBy are required"})
			return
		}

		post := models.Post{
			Content:   body.Content,
			CreatedBy: body.CreatedBy,
			Comments:  []bson.ObjectID{},
		}

		res, err := col.InsertOne(ctx, post)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error creating post"})
			return
		}

		post.ID = res.InsertedID.(bson.ObjectID)
		c.JSON(http.StatusCreated, post)
	}
}

func UpdatePost(db *database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := db.Collection("posts")

		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid post id"})
			return
		}

		var body dto.UpdatePostDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
			return
		}

		set := bson.M{}
		if body.Content != nil {
			set["content"] = *body.Content
		}
		if body.CreatedBy != nil {
			set["createdBy"] = *body.CreatedBy
		}
		if len(set) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "No updates provided"})
			return
		}

		opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
		var post models.Post
		err = col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&post)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				c.JSON(http.StatusNotFound, gin.H{"message": "Post not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error updating post"})
			return
		}

		c.JSON(http.StatusOK, post)
	}
}
