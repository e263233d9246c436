package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lala-site-api/internal/config"
	"lala-site-api/internal/logger"
	"lala-site-api/models"
	"lala-site-api/services"
	"lala-site-api/utils"
)

// SetupContactRoutes registers the contact relay endpoint.
func SetupContactRoutes(router *gin.Engine, cfg *config.Config, contact *services.ContactService) {
	router.POST("/api/contact", func(c *gin.Context) {
		// Configuration is checked before the payload so a misconfigured
		// process never half-handles a submission.
		if !cfg.EmailConfigured() {
			logger.Error("Contact relay misconfigured: missing Resend key or addresses")
			utils.RespondWithInternalError(c, "Missing email configuration.")
			return
		}

		var sub models.ContactSubmission
		if err := c.ShouldBindJSON(&sub); err != nil {
			utils.RespondWithBadRequest(c, "Invalid request payload.")
			return
		}

		if err := contact.Submit(c.Request.Context(), sub); err != nil {
			// Which dispatch failed is already logged; the caller only
			// gets the collapsed generic error.
			utils.RespondWithInternalError(c, "Failed to send email.")
			return
		}

		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
}
