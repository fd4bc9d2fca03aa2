package endpoints

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/baitulaman/internal/db"
	"github.com/Nixie-Tech-LLC/baitulaman/internal/http/api"
	"github.com/Nixie-Tech-LLC/baitulaman/internal/http/api/admin/control/packets"
	"github.com/Nixie-Tech-LLC/baitulaman/internal/model"
)

// POST /api/admin/announcements
func (p *ControlPanel) createAnnouncement(ctx *gin.Context, admin *model.Admin) (any, *api.APIError) {
	var request packets.CreateAnnouncementRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.NewError(http.StatusBadRequest, err.Error())
	}

	title := p.sanitizer.Clean(request.Title)
	content := p.sanitizer.Clean(request.Content)
	if title == "" || content == "" {
		return nil, api.NewError(http.StatusBadRequest, "title and content are required")
	}

	a, err := p.store.CreateAnnouncement(title, content, p.now().Format(time.DateOnly))
	if err != nil {
		return nil, api.NewError(http.StatusBadRequest, err.Error())
	}
	log.Info().Str("id", a.ID).Msg("announcement created")
	return api.Created(a), nil
}

// DELETE /api/admin/announcements/:id
func (p *ControlPanel) deleteAnnouncement(ctx *gin.Context, admin *model.Admin) (any, *api.APIError) {
	id := ctx.Param("id")
	if err := p.store.DeleteAnnouncement(id); err != nil {
		return nil, storeError(err, "announcement")
	}
	log.Info().Str("id", id).Msg("announcement deleted")
	return deleted("announcement"), nil
}

// GET /api/admin/questions
func (p *ControlPanel) listPendingQuestions(ctx *gin.Context, admin *model.Admin) (any, *api.APIError) {
	pending := p.store.ListQuestions(db.Unanswered)
	return packets.PendingQuestionsResponse{Pending: len(pending), Questions: pending}, nil
}

// PUT /api/admin/questions/:id/answer
func (p *ControlPanel) answerQuestion(ctx *gin.Context, admin *model.Admin) (any, *api.APIError) {
	var request packets.AnswerQuestionRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.NewError(http.StatusBadRequest, err.Error())
	}
	answer := p.sanitizer.Clean(request.Answer)
	if answer == "" {
		return nil, api.NewError(http.StatusBadRequest, "answer is required")
	}

	q, err := p.store.AnswerQuestion(ctx.Param("id"), answer)
	if err != nil {
		return nil, storeError(err, "question")
	}
	log.Info().Str("id", q.ID).Msg("question answered")
	return q, nil
}

// DELETE /api/admin/questions/:id
func (p *ControlPanel) deleteQuestion(ctx *gin.Context, admin *model.Admin) (any, *api.APIError) {
	id := ctx.Param("id")
	if err := p.store.DeleteQuestion(id); err != nil {
		return nil, storeError(err, "question")
	}
	return deleted("question"), nil
}
