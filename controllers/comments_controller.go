package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"postsapp/database"
	"postsapp/dto"
	"postsapp/models"
)

func CreateComment(db *database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := db.Collection("comments")

		var body dto.CreateCommentDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "PostId, content and sender are required"})
			return
		}

		postID, err := bson.ObjectIDFromHex(body.PostID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid post id"})
			return
		}

		comment := models.Comment{
			PostID:  postID,
			Content: body.Content,
			Sender:  body.Sender,
		}

		res, err := col.InsertOne(ctx, comment)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error creating comment"})
			return
		}
		comment.ID = res.InsertedID.(bson.ObjectID)

		// keep the post's comment list in sync; the comment itself is
		// the source of truth
		if _, err := db.Collection("posts").UpdateOne(ctx,
			bson.M{"_id": postID},
			bson.M{"$push": bson.M{"comments": comment.ID}},
		); err != nil {
			log.Println("sync post comments:", err)
		}

		c.JSON(http.StatusCreated, comment)
	}
}

// GetCommentsByPost lists the comments attached to one post; mounted
// under /post/:id/comments.
func GetCommentsByPost(db *database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := db.Collection("comments")

		postID, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid post id"})
			return
		}

		cursor, err := col.Find(ctx, bson.M{"postId": postID})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error retrieving comments"})
			return
		}
		defer cursor.Close(ctx)

		comments := make([]models.Comment, 0)
		if err := cursor.All(ctx, &comments); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error retrieving comments"})
			return
		}

		c.JSON(http.StatusOK, comments)
	}
}

func GetComment(db *database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := db.Collection("comments")

		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid comment id"})
			return
		}

		var comment models.Comment
		if err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&comment); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Comment not found"})
			return
		}

		c.JSON(http.StatusOK, comment)
	}
}

func UpdateComment(db *database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := db.Collection("comments")

		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid comment id"})
			return
		}

		var body dto.UpdateCommentDTO
		if err := c.ShouldBindJSON(&body); err != nil || body.Content == nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Content is required"})
			return
		}

		opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
		var comment models.Comment
		err = col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"content": *body.Content}}, opts).Decode(&comment)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				c.JSON(http.StatusNotFound, gin.H{"message": "Comment not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error updating comment"})
			return
		}

		c.JSON(http.StatusOK, comment)
	}
}

func DeleteComment(db *database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := db.Collection("comments")

		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid comment id"})
			return
		}

		var comment models.Comment
		if err := col.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&comment); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Comment not found"})
			return
		}

		if _, err := db.Collection("posts").UpdateOne(ctx,
			bson.M{"_id": comment.PostID},
			bson.M{"$pull": bson.M{"comments": comment.ID}},
		); err != nil {
			log.Println("sync post comments:", err)
		}

		c.JSON(http.StatusOK, gin.H{"message": "Comment deleted"})
	}
}
