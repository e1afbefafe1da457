package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/studybuckets/content-service/internal/services"
	"github.com/studybuckets/content-service/internal/utils"
)

type HandlerManager struct {
	bucketHandler      *BucketHandler
	questionSetHandler *QuestionSetHandler
	quizHandler        *QuizHandler
}

func NewHandlerManager(
	bucketService services.BucketService,
	contentService services.ContentService,
	importService services.ImportService,
	quizService services.QuizService,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		bucketHandler:      NewBucketHandler(bucketService, logger),
		questionSetHandler: NewQuestionSetHandler(contentService, importService, logger),
		quizHandler:        NewQuizHandler(quizService, logger),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Bucket routes
		buckets := v1.Group("/buckets")
		{
			buckets.POST("", hm.bucketHandler.CreateBucket)
			buckets.GET("", hm.bucketHandler.ListBuckets)
			buckets.GET("/:bucket_id", hm.bucketHandler.GetBucket)
			buckets.DELETE("/:bucket_id", hm.bucketHandler.DeleteBucket)
			buckets.GET("/:bucket_id/question-sets", hm.questionSetHandler.ListQuestionSets)
		}

		// Question set routes
		questionSets := v1.Group("/question-sets")
		{
			questionSets.POST("/validate", hm.questionSetHandler.ValidateContent)
			questionSets.POST("/validate-legacy", hm.questionSetHandler.ValidateLegacyBundle)
			questionSets.POST("", hm.questionSetHandler.CreateQuestionSet)
			questionSets.POST("/upload", hm.questionSetHandler.UploadQuestionSet)
			questionSets.GET("/:id", hm.questionSetHandler.GetQuestionSet)
			questionSets.DELETE("/:id", hm.questionSetHandler.DeleteQuestionSet)
			questionSets.GET("/:id/export", hm.questionSetHandler.ExportQuestionSet)
		}

		// Quiz session routes
		sessions := v1.Group("/quiz-sessions")
		{
			sessions.POST("", hm.quizHandler.StartSession)
			sessions.GET("/:id", hm.quizHandler.GetSession)
			sessions.DELETE("/:id", hm.quizHandler.CloseSession)
			sessions.POST("/:id/restart", hm.quizHandler.RestartSession)

			// Navigation
			sessions.POST("/:id/next", hm.quizHandler.Next)
			sessions.POST("/:id/prev", hm.quizHandler.Prev)
			sessions.POST("/:id/goto/:index", hm.quizHandler.GoTo)

			// Open questions
			sessions.POST("/:id/items/:item_id/open/submit", hm.quizHandler.SubmitOpenAnswer)
			sessions.POST("/:id/items/:item_id/open/reveal", hm.quizHandler.RevealOpenAnswer)
			sessions.POST("/:id/items/:item_id/open/mark-correct", hm.quizHandler.MarkOpenCorrect)
			sessions.POST("/:id/items/:item_id/open/edit", hm.quizHandler.EditOpenAnswer)

			// Multiple choice
			sessions.POST("/:id/items/:item_id/choice/select", hm.quizHandler.SelectChoice)
			sessions.POST("/:id/items/:item_id/choice/submit", hm.quizHandler.SubmitChoice)
			sessions.POST("/:id/items/:item_id/choice/reset", hm.quizHandler.ResetChoice)

			// Fill in the blank
			sessions.POST("/:id/items/:item_id/blank/select", hm.quizHandler.SelectBlank)
			sessions.POST("/:id/items/:item_id/blank/submit", hm.quizHandler.SubmitBlank)
			sessions.POST("/:id/items/:item_id/blank/reset", hm.quizHandler.ResetBlank)

			// Flashcards
			sessions.POST("/:id/items/:item_id/flashcard/flip", hm.quizHandler.FlipFlashcard)

			// Micro reels
			sessions.POST("/:id/items/:item_id/reel/pause", hm.quizHandler.PauseReel)
			sessions.POST("/:id/items/:item_id/reel/resume", hm.quizHandler.ResumeReel)
		}
	}
}
