package routes

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"lala-site-api/internal/config"
	"lala-site-api/internal/instagram"
	"lala-site-api/internal/logger"
	"lala-site-api/models"
	"lala-site-api/services"
	"lala-site-api/utils"
)

// SetupInstagramRoutes registers the feed mirror endpoint.
func SetupInstagramRoutes(router *gin.Engine, cfg *config.Config, feed *services.FeedService) {
	router.GET("/api/instagram", func(c *gin.Context) {
		if !cfg.InstagramConfigured() {
			utils.RespondWithInternalError(c, "Missing INSTAGRAM_ACCESS_TOKEN or INSTAGRAM_USER_ID.")
			return
		}

		posts, err := feed.Posts(c.Request.Context())
		if err != nil {
			var apiErr *instagram.APIError
			if errors.As(err, &apiErr) {
				// Forward the upstream status and message as-is.
				message := apiErr.Message
				if message == "" {
					message = "Failed to fetch Instagram posts."
				}
				utils.RespondWithError(c, apiErr.Status, message)
				return
			}

			logger.Error("Instagram feed fetch failed", "error", err)
			utils.RespondWithInternalError(c, "Failed to fetch Instagram posts.")
			return
		}

		if posts == nil {
			posts = []models.FeedItem{}
		}
		c.JSON(http.StatusOK, gin.H{"posts": posts})
	})
}
