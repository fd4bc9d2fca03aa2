package endpoints

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/baitulaman/internal/db"
	"github.com/Nixie-Tech-LLC/baitulaman/internal/http/api"
	"github.com/Nixie-Tech-LLC/baitulaman/internal/http/api/public/packets"
	"github.com/Nixie-Tech-LLC/baitulaman/internal/model"
	"github.com/Nixie-Tech-LLC/baitulaman/internal/security"
)

type Community struct {
	store     db.Store
	sanitizer *security.TextSanitizer
}

func NewCommunity(store db.Store, sanitizer *security.TextSanitizer) *Community {
	return &Community{store: store, sanitizer: sanitizer}
}

// CommunityModule mounts announcements, Q&A and donation progress.
func CommunityModule(c *Community) api.Module {
	return api.ModuleFunc(func(ctl *api.Controller) {
		ctl.PUBLIC_GET("/announcements", c.listAnnouncements)
		ctl.PUBLIC_GET("/questions", c.listAnsweredQuestions)
		ctl.PUBLIC_POST("/questions", c.submitQuestion)
		ctl.PUBLIC_GET("/donations", c.donationSummary)
	})
}

// GET /api/public/announcements
func (c *Community) listAnnouncements(ctx *gin.Context) (any, *api.APIError) {
	return c.store.ListAnnouncements(), nil
}

// GET /api/public/questions
func (c *Community) listAnsweredQuestions(ctx *gin.Context) (any, *api.APIError) {
	return c.store.ListQuestions(db.PublicAnswered), nil
}

// POST /api/public/questions
func (c *Community) submitQuestion(ctx *gin.Context) (any, *api.APIError) {
	var request packets.SubmitQuestionRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.NewError(http.StatusBadRequest, err.Error())
	}

	text := c.sanitizer.Clean(request.Question)
	if text == "" {
		return nil, api.NewError(http.StatusBadRequest, "question is required")
	}
	category := request.Category
	if category != "" && !model.ValidCategory(category) {
		return nil, api.NewError(http.StatusBadRequest, "unknown category")
	}
	isPublic := true
	if request.IsPublic != nil {
		isPublic = *request.IsPublic
	}

	q, err := c.store.CreateQuestion(text, category, isPublic)
	if err != nil {
		log.Error().Err(err).Msg("failed to store question")
		return nil, api.NewError(http.StatusInternalServerError, "could not submit question")
	}
	log.Info().Str("id", q.ID).Str("category", q.Category).Msg("question submitted")
	return api.Created(q), nil
}

// GET /api/public/donations
func (c *Community) donationSummary(ctx *gin.Context) (any, *api.APIError) {
	return c.store.GetDonationSummary(), nil
}
