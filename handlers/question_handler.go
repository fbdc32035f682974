package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/upb/forum-api/middleware"
	"github.com/upb/forum-api/models"
	"github.com/upb/forum-api/services"
	"github.com/upb/forum-api/utils"
	"go.uber.org/zap"
)

// QuestionService defines the question operations used by the HTTP layer
type QuestionService interface {
	Create(ctx context.Context, authorID uuid.UUID, in services.CreateQuestionInput) (*models.Question, error)
	ListRecent(ctx context.Context, page int) ([]*models.Question, error)
}

// QuestionHandler handles the /questions routes
type QuestionHandler struct {
	questions QuestionService
	logger    *zap.Logger
}

// NewQuestionHandler creates a new QuestionHandler
func NewQuestionHandler(questions QuestionService, logger *zap.Logger) *QuestionHandler {
	return &QuestionHandler{
		questions: questions,
		logger:    logger,
	}
}

// HandleCreate handles POST /questions for the authenticated caller
func (h *QuestionHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	principal := middleware.GetPrincipalFromContext(ctx)
	if principal == nil {
		HandleServiceError(w, services.ErrUnauthorized, h.logger)
		return
	}

	req, ok := middleware.Payload[CreateQuestionRequest](ctx)
	if !ok {
		h.logger.Error("create question payload missing from context",
			zap.String("request_id", middleware.GetRequestIDFromContext(ctx)))
		_ = utils.WriteInternalServerError(w, "")
		return
	}

	_, err := h.questions.Create(ctx, principal.UserID, services.CreateQuestionInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	utils.WriteEmpty(w, http.StatusCreated)
}

// HandleList handles GET /questions?page=N
func (h *QuestionHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if middleware.GetPrincipalFromContext(ctx) == nil {
		HandleServiceError(w, services.ErrUnauthorized, h.logger)
		return
	}

	query, ok := middleware.Payload[ListQuestionsQuery](ctx)
	if !ok {
		h.logger.Error("list questions query missing from context",
			zap.String("request_id", middleware.GetRequestIDFromContext(ctx)))
		_ = utils.WriteInternalServerError(w, "")
		return
	}

	questions, err := h.questions.ListRecent(ctx, query.Page)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	if questions == nil {
		questions = []*models.Question{}
	}

	if err := utils.WriteJSON(w, http.StatusOK, ListQuestionsResponse{Questions: questions}); err != nil {
		h.logger.Error("failed to write questions response", zap.Error(err))
	}
}
