package handlers

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/studybuckets/content-service/internal/repositories"
	"github.com/studybuckets/content-service/internal/services"
	"github.com/studybuckets/content-service/internal/utils"
)

type QuestionSetHandler struct {
	BaseHandler
	contentService services.ContentService
	importService  services.ImportService
}

func NewQuestionSetHandler(
	contentService services.ContentService,
	importService services.ImportService,
	logger utils.Logger,
) *QuestionSetHandler {
	return &QuestionSetHandler{
		BaseHandler:    NewBaseHandler(logger),
		contentService: contentService,
		importService:  importService,
	}
}

// ValidateContent validates a raw learning content payload without storing it.
// The payload may be the request body (pasted JSON) or an uploaded file.
// @Summary Validate learning content
// @Tags question-sets
// @Accept json,mpfd
// @Produce json
// @Success 200 {object} validator.Result
// @Failure 400 {object} ErrorResponse
// @Router /question-sets/validate [post]
func (h *QuestionSetHandler) ValidateContent(c *gin.Context) {
	h.LogRequest(c, "Validating learning content")

	raw, ok := h.readPayload(c)
	if !ok {
		return
	}

	result := h.contentService.ValidateContent(c.Request.Context(), raw)
	c.JSON(http.StatusOK, result)
}

// ValidateLegacyBundle validates a standalone pre-envelope question bundle.
// @Summary Validate legacy bundle
// @Tags question-sets
// @Accept json
// @Produce json
// @Success 200 {object} validator.LegacyResult
// @Router /question-sets/validate-legacy [post]
func (h *QuestionSetHandler) ValidateLegacyBundle(c *gin.Context) {
	raw, ok := h.readPayload(c)
	if !ok {
		return
	}

	result := h.contentService.ValidateLegacyBundle(c.Request.Context(), raw)
	c.JSON(http.StatusOK, result)
}

// CreateQuestionSet validates and stores a learning content payload.
// @Summary Create question set
// @Tags question-sets
// @Accept json
// @Produce json
// @Param question_set body services.CreateQuestionSetRequest true "Question set data"
// @Success 201 {object} SuccessResponse{data=services.QuestionSetResponse}
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /question-sets [post]
func (h *QuestionSetHandler) CreateQuestionSet(c *gin.Context) {
	h.LogRequest(c, "Creating question set")

	var req services.CreateQuestionSetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	set, err := h.contentService.CreateQuestionSet(c.Request.Context(), &req)
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusCreated, "Question set created", set)
}

// UploadQuestionSet accepts a multipart file (JSON content) plus bucket_id
// and name form fields.
// @Summary Upload question set file
// @Tags question-sets
// @Accept mpfd
// @Produce json
// @Success 201 {object} SuccessResponse{data=services.QuestionSetResponse}
// @Failure 400 {object} ErrorResponse
// @Failure 413 {object} ErrorResponse
// @Router /question-sets/upload [post]
func (h *QuestionSetHandler) UploadQuestionSet(c *gin.Context) {
	h.LogRequest(c, "Uploading question set file")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Missing file upload",
			Details: err.Error(),
		})
		return
	}

	if err := h.contentService.CheckUpload(fileHeader.Filename, fileHeader.Size); err != nil {
		h.RespondWithServiceError(c, err)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Failed to open uploaded file", err)
		return
	}
	defer file.Close()

	req := &services.ImportRequest{
		BucketID: c.PostForm("bucket_id"),
		Name:     c.PostForm("name"),
		Question: c.PostForm("question"),
		Answer:   c.PostForm("answer"),
		Tips:     splitTips(c.PostForm("tips")),
	}

	// JSON uploads carry the whole envelope; spreadsheets only carry rows.
	if strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".json") {
		data, err := io.ReadAll(file)
		if err != nil {
			h.RespondWithError(c, http.StatusBadRequest, "Failed to read uploaded file", err)
			return
		}
		set, err := h.contentService.CreateQuestionSet(c.Request.Context(), &services.CreateQuestionSetRequest{
			BucketID: req.BucketID,
			Name:     req.Name,
			Raw:      data,
		})
		if err != nil {
			h.RespondWithServiceError(c, err)
			return
		}
		h.RespondWithSuccess(c, http.StatusCreated, "Question set created", set)
		return
	}

	result, err := h.importService.ImportFromFile(c.Request.Context(), file, fileHeader.Filename, req)
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}
	if len(result.RowErrors) > 0 {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Message: "Import failed",
			Details: result,
			Code:    "import_errors",
		})
		return
	}

	h.RespondWithSuccess(c, http.StatusCreated, "Question set imported", result)
}

// GetQuestionSet returns a stored question set with its document.
// @Summary Get question set
// @Tags question-sets
// @Produce json
// @Param id path string true "Question set ID"
// @Success 200 {object} SuccessResponse{data=services.QuestionSetResponse}
// @Failure 404 {object} ErrorResponse
// @Router /question-sets/{id} [get]
func (h *QuestionSetHandler) GetQuestionSet(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	set, err := h.contentService.GetQuestionSet(c.Request.Context(), id)
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Question set retrieved", set)
}

// ListQuestionSets lists question sets in a bucket.
// @Summary List question sets by bucket
// @Tags question-sets
// @Produce json
// @Param bucket_id path string true "Bucket ID"
// @Success 200 {object} SuccessResponse{data=ListResponse}
// @Router /buckets/{bucket_id}/question-sets [get]
func (h *QuestionSetHandler) ListQuestionSets(c *gin.Context) {
	bucketID := ParseStringIDParam(c, "bucket_id")
	if bucketID == "" {
		return
	}

	limit, offset := ParsePagination(c)
	filters := repositories.QuestionSetFilters{
		Name:      c.Query("name"),
		Limit:     limit,
		Offset:    offset,
		SortBy:    c.DefaultQuery("sort_by", "created_at"),
		SortOrder: c.DefaultQuery("sort_order", "desc"),
	}

	sets, total, err := h.contentService.ListByBucket(c.Request.Context(), bucketID, filters)
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Question sets retrieved", ListResponse{
		Items: sets,
		Total: total,
	})
}

// DeleteQuestionSet removes a stored question set.
// @Summary Delete question set
// @Tags question-sets
// @Param id path string true "Question set ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /question-sets/{id} [delete]
func (h *QuestionSetHandler) DeleteQuestionSet(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	h.LogRequest(c, "Deleting question set", "question_set_id", id)

	if err := h.contentService.DeleteQuestionSet(c.Request.Context(), id); err != nil {
		h.RespondWithServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Question set deleted", nil)
}

// ExportQuestionSet streams a question set as CSV or xlsx.
// @Summary Export question set
// @Tags question-sets
// @Param id path string true "Question set ID"
// @Param format query string false "csv or xlsx" default(csv)
// @Success 200 {file} binary
// @Failure 404 {object} ErrorResponse
// @Router /question-sets/{id}/export [get]
func (h *QuestionSetHandler) ExportQuestionSet(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	format := strings.ToLower(c.DefaultQuery("format", "csv"))
	var (
		data        []byte
		contentType string
		filename    string
		err         error
	)

	switch format {
	case "csv":
		data, err = h.importService.ExportToCSV(c.Request.Context(), id)
		contentType = "text/csv"
		filename = id + ".csv"
	case "xlsx":
		data, err = h.importService.ExportToExcel(c.Request.Context(), id)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		filename = id + ".xlsx"
	default:
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Unsupported export format",
			Details: format,
		})
		return
	}

	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, contentType, data)
}

// readPayload returns the raw request body for validation endpoints,
// accepting either a JSON body or a multipart file field.
func (h *QuestionSetHandler) readPayload(c *gin.Context) (any, bool) {
	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Message: "Missing file upload",
				Details: err.Error(),
			})
			return nil, false
		}
		if err := h.contentService.CheckUpload(fileHeader.Filename, fileHeader.Size); err != nil {
			h.RespondWithServiceError(c, err)
			return nil, false
		}
		file, err := fileHeader.Open()
		if err != nil {
			h.RespondWithError(c, http.StatusBadRequest, "Failed to open uploaded file", err)
			return nil, false
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			h.RespondWithError(c, http.StatusBadRequest, "Failed to read uploaded file", err)
			return nil, false
		}
		return data, true
	}

	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Failed to read request body", err)
		return nil, false
	}
	return data, true
}

func splitTips(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, "|")
	tips := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			tips = append(tips, trimmed)
		}
	}
	return tips
}
