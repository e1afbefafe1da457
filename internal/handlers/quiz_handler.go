package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/studybuckets/content-service/internal/services"
	"github.com/studybuckets/content-service/internal/utils"
)

type QuizHandler struct {
	BaseHandler
	quizService services.QuizService
}

func NewQuizHandler(quizService services.QuizService, logger utils.Logger) *QuizHandler {
	return &QuizHandler{
		BaseHandler: NewBaseHandler(logger),
		quizService: quizService,
	}
}

type startSessionRequest struct {
	QuestionSetID string `json:"question_set_id" binding:"required"`
}

type answerTextRequest struct {
	Text string `json:"text"`
}

type selectChoiceRequest struct {
	Index int `json:"index"`
}

// StartSession builds a new shuffled session over a stored question set.
// @Summary Start quiz session
// @Tags quiz-sessions
// @Accept json
// @Produce json
// @Success 201 {object} SuccessResponse{data=services.SessionResponse}
// @Failure 404 {object} ErrorResponse
// @Router /quiz-sessions [post]
func (h *QuizHandler) StartSession(c *gin.Context) {
	h.LogRequest(c, "Starting quiz session")

	var req startSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	session, err := h.quizService.StartSession(c.Request.Context(), req.QuestionSetID)
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusCreated, "Session started", session)
}

// GetSession returns the current snapshot of a session.
// @Summary Get quiz session
// @Tags quiz-sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} SuccessResponse{data=services.SessionResponse}
// @Failure 404 {object} ErrorResponse
// @Router /quiz-sessions/{id} [get]
func (h *QuizHandler) GetSession(c *gin.Context) {
	h.withSession(c, func(ctx context.Context, id string) (*services.SessionResponse, error) {
		return h.quizService.GetSession(ctx, id)
	})
}

// RestartSession reshuffles the deck and resets all per-item state.
// @Summary Restart quiz session
// @Tags quiz-sessions
// @Param id path string true "Session ID"
// @Success 200 {object} SuccessResponse{data=services.SessionResponse}
// @Router /quiz-sessions/{id}/restart [post]
func (h *QuizHandler) RestartSession(c *gin.Context) {
	h.withSession(c, func(ctx context.Context, id string) (*services.SessionResponse, error) {
		return h.quizService.RestartSession(ctx, id)
	})
}

// CloseSession tears the session down and stops its timers.
// @Summary Close quiz session
// @Tags quiz-sessions
// @Param id path string true "Session ID"
// @Success 200 {object} SuccessResponse
// @Router /quiz-sessions/{id} [delete]
func (h *QuizHandler) CloseSession(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	if err := h.quizService.CloseSession(c.Request.Context(), id); err != nil {
		h.RespondWithServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Session closed", nil)
}

// GoTo jumps to an item by position.
func (h *QuizHandler) GoTo(c *gin.Context) {
	index, ok := ParseIndexParam(c, "index")
	if !ok {
		return
	}
	h.withSession(c, func(ctx context.Context, id string) (*services.SessionResponse, error) {
		return h.quizService.GoTo(ctx, id, index)
	})
}

func (h *QuizHandler) Next(c *gin.Context) {
	h.withSession(c, h.quizService.Next)
}

func (h *QuizHandler) Prev(c *gin.Context) {
	h.withSession(c, h.quizService.Prev)
}

// ===== PER-ITEM OPERATIONS =====

func (h *QuizHandler) SubmitOpenAnswer(c *gin.Context) {
	var req answerTextRequest
	if !h.bindItemBody(c, &req) {
		return
	}
	h.withSessionItem(c, func(ctx context.Context, sessionID, itemID string) (*services.SessionResponse, error) {
		return h.quizService.SubmitOpenAnswer(ctx, sessionID, itemID, req.Text)
	})
}

func (h *QuizHandler) RevealOpenAnswer(c *gin.Context) {
	h.withSessionItem(c, h.quizService.RevealOpenAnswer)
}

func (h *QuizHandler) MarkOpenCorrect(c *gin.Context) {
	h.withSessionItem(c, h.quizService.MarkOpenCorrect)
}

func (h *QuizHandler) EditOpenAnswer(c *gin.Context) {
	h.withSessionItem(c, h.quizService.EditOpenAnswer)
}

func (h *QuizHandler) SelectChoice(c *gin.Context) {
	var req selectChoiceRequest
	if !h.bindItemBody(c, &req) {
		return
	}
	h.withSessionItem(c, func(ctx context.Context, sessionID, itemID string) (*services.SessionResponse, error) {
		return h.quizService.SelectChoice(ctx, sessionID, itemID, req.Index)
	})
}

func (h *QuizHandler) SubmitChoice(c *gin.Context) {
	h.withSessionItem(c, h.quizService.SubmitChoice)
}

func (h *QuizHandler) ResetChoice(c *gin.Context) {
	h.withSessionItem(c, h.quizService.ResetChoice)
}

func (h *QuizHandler) SelectBlank(c *gin.Context) {
	var req answerTextRequest
	if !h.bindItemBody(c, &req) {
		return
	}
	h.withSessionItem(c, func(ctx context.Context, sessionID, itemID string) (*services.SessionResponse, error) {
		return h.quizService.SelectBlank(ctx, sessionID, itemID, req.Text)
	})
}

func (h *QuizHandler) SubmitBlank(c *gin.Context) {
	h.withSessionItem(c, h.quizService.SubmitBlank)
}

func (h *QuizHandler) ResetBlank(c *gin.Context) {
	h.withSessionItem(c, h.quizService.ResetBlank)
}

func (h *QuizHandler) FlipFlashcard(c *gin.Context) {
	h.withSessionItem(c, h.quizService.FlipFlashcard)
}

func (h *QuizHandler) PauseReel(c *gin.Context) {
	h.withSessionItem(c, h.quizService.PauseReel)
}

func (h *QuizHandler) ResumeReel(c *gin.Context) {
	h.withSessionItem(c, h.quizService.ResumeReel)
}

// ===== PLUMBING =====

func (h *QuizHandler) withSession(c *gin.Context, op func(context.Context, string) (*services.SessionResponse, error)) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	session, err := op(c.Request.Context(), id)
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Session updated", session)
}

func (h *QuizHandler) withSessionItem(c *gin.Context, op func(context.Context, string, string) (*services.SessionResponse, error)) {
	sessionID := ParseStringIDParam(c, "id")
	if sessionID == "" {
		return
	}
	itemID := ParseStringIDParam(c, "item_id")
	if itemID == "" {
		return
	}

	session, err := op(c.Request.Context(), sessionID, itemID)
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Session updated", session)
}

func (h *QuizHandler) bindItemBody(c *gin.Context, dest any) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return false
	}
	return true
}
