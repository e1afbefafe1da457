package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/studybuckets/content-service/internal/repositories"
	"github.com/studybuckets/content-service/internal/services"
	"github.com/studybuckets/content-service/internal/utils"
)

type BucketHandler struct {
	BaseHandler
	bucketService services.BucketService
}

func NewBucketHandler(bucketService services.BucketService, logger utils.Logger) *BucketHandler {
	return &BucketHandler{
		BaseHandler:   NewBaseHandler(logger),
		bucketService: bucketService,
	}
}

// CreateBucket creates a new bucket
// @Summary Create bucket
// @Tags buckets
// @Accept json
// @Produce json
// @Param bucket body services.CreateBucketRequest true "Bucket data"
// @Success 201 {object} SuccessResponse{data=services.BucketResponse}
// @Failure 400 {object} ErrorResponse
// @Router /buckets [post]
func (h *BucketHandler) CreateBucket(c *gin.Context) {
	h.LogRequest(c, "Creating bucket")

	var req services.CreateBucketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	bucket, err := h.bucketService.CreateBucket(c.Request.Context(), &req)
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusCreated, "Bucket created", bucket)
}

// GetBucket returns a bucket by id
// @Summary Get bucket
// @Tags buckets
// @Produce json
// @Param bucket_id path string true "Bucket ID"
// @Success 200 {object} SuccessResponse{data=services.BucketResponse}
// @Failure 404 {object} ErrorResponse
// @Router /buckets/{bucket_id} [get]
func (h *BucketHandler) GetBucket(c *gin.Context) {
	id := ParseStringIDParam(c, "bucket_id")
	if id == "" {
		return
	}

	bucket, err := h.bucketService.GetBucket(c.Request.Context(), id)
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Bucket retrieved", bucket)
}

// ListBuckets lists buckets with optional name filtering and pagination
// @Summary List buckets
// @Tags buckets
// @Produce json
// @Param name query string false "Filter by name"
// @Success 200 {object} SuccessResponse{data=ListResponse}
// @Router /buckets [get]
func (h *BucketHandler) ListBuckets(c *gin.Context) {
	limit, offset := ParsePagination(c)
	filters := repositories.BucketFilters{
		Name:      c.Query("name"),
		Limit:     limit,
		Offset:    offset,
		SortBy:    c.DefaultQuery("sort_by", "created_at"),
		SortOrder: c.DefaultQuery("sort_order", "desc"),
	}

	buckets, total, err := h.bucketService.ListBuckets(c.Request.Context(), filters)
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Buckets retrieved", ListResponse{
		Items: buckets,
		Total: total,
	})
}

// DeleteBucket deletes a bucket and its question sets
// @Summary Delete bucket
// @Tags buckets
// @Param bucket_id path string true "Bucket ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /buckets/{bucket_id} [delete]
func (h *BucketHandler) DeleteBucket(c *gin.Context) {
	id := ParseStringIDParam(c, "bucket_id")
	if id == "" {
		return
	}

	h.LogRequest(c, "Deleting bucket", "bucket_id", id)

	if err := h.bucketService.DeleteBucket(c.Request.Context(), id); err != nil {
		h.RespondWithServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Bucket deleted", nil)
}
