package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/studybuckets/content-service/internal/models"
	"github.com/xuri/excelize/v2"
)

// ImportService builds question sets from spreadsheet rows. Each row is one
// quiz item; the assembled document goes through the same schema validation
// as a pasted JSON payload before it is stored.
type ImportService interface {
	ImportFromFile(ctx context.Context, reader io.Reader, filename string, req *ImportRequest) (*ImportResult, error)
	ImportFromCSV(ctx context.Context, reader io.Reader, req *ImportRequest) (*ImportResult, error)
	ImportFromExcel(ctx context.Context, reader io.Reader, req *ImportRequest) (*ImportResult, error)

	ExportToCSV(ctx context.Context, questionSetID string) ([]byte, error)
	ExportToExcel(ctx context.Context, questionSetID string) ([]byte, error)
}

// ImportRequest carries the envelope fields a spreadsheet cannot express.
type ImportRequest struct {
	BucketID string   `json:"bucket_id" validate:"required,uuid4"`
	Name     string   `json:"name" validate:"required,min=1,max=200"`
	Question string   `json:"question" validate:"required"`
	Answer   string   `json:"answer" validate:"required"`
	Tips     []string `json:"tips" validate:"required,min=1"`
}

// ImportResult reports per-row parse errors alongside the created set. A
// result with row errors never has a QuestionSet: imports are all-or-nothing.
type ImportResult struct {
	TotalRows   int                  `json:"total_rows"`
	ParsedRows  int                  `json:"parsed_rows"`
	RowErrors   []string             `json:"row_errors,omitempty"`
	QuestionSet *QuestionSetResponse `json:"question_set,omitempty"`
}

// optionSeparator splits multi-value cells (answer options, tips).
const optionSeparator = "|"

var importColumns = []string{"item_type", "question", "answer", "options", "correct_option"}

type importService struct {
	content ContentService
	logger  *slog.Logger
}

func NewImportService(content ContentService, logger *slog.Logger) ImportService {
	return &importService{content: content, logger: logger}
}

func (s *importService) ImportFromFile(ctx context.Context, reader io.Reader, filename string, req *ImportRequest) (*ImportResult, error) {
	s.logger.Info("starting spreadsheet import", "filename", filename, "bucket_id", req.BucketID)

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return s.ImportFromCSV(ctx, reader, req)
	case ".xlsx":
		return s.ImportFromExcel(ctx, reader, req)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedExtension, filepath.Ext(filename))
	}
}

func (s *importService) ImportFromCSV(ctx context.Context, reader io.Reader, req *ImportRequest) (*ImportResult, error) {
	csvReader := csv.NewReader(reader)
	csvReader.TrimLeadingSpace = true

	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	return s.assemble(ctx, records, req)
}

func (s *importService) ImportFromExcel(ctx context.Context, reader io.Reader, req *ImportRequest) (*ImportResult, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: Excel file has no sheets", ErrEmptyUpload)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read Excel rows: %w", err)
	}

	return s.assemble(ctx, rows, req)
}

// assemble parses spreadsheet rows into a quiz bundle, wraps it in the
// envelope from req and hands the document to the content service.
func (s *importService) assemble(ctx context.Context, records [][]string, req *ImportRequest) (*ImportResult, error) {
	if len(records) < 2 {
		return nil, fmt.Errorf("%w: need a header row and at least one data row", ErrEmptyUpload)
	}

	headerMap := make(map[string]int)
	for i, header := range records[0] {
		headerMap[strings.ToLower(strings.TrimSpace(header))] = i
	}
	for _, col := range importColumns[:2] {
		if _, exists := headerMap[col]; !exists {
			return nil, fmt.Errorf("%w: missing required column %q", ErrContentInvalid, col)
		}
	}

	result := &ImportResult{TotalRows: len(records) - 1}

	var bundle models.QuizBundle
	for rowIndex, record := range records[1:] {
		rowNum := rowIndex + 2 // 1-based, after the header
		if err := parseImportRow(record, headerMap, &bundle); err != nil {
			result.RowErrors = append(result.RowErrors, fmt.Sprintf("row %d: %v", rowNum, err))
			continue
		}
		result.ParsedRows++
	}

	if len(result.RowErrors) > 0 {
		return result, nil
	}

	doc := &models.LearningContentDocument{
		Success:            true,
		Title:              req.Name,
		Question:           req.Question,
		Answer:             req.Answer,
		Tips:               req.Tips,
		CorrectnessPercent: 100,
		Quiz:               bundle,
	}

	// Re-run the document through the schema so spreadsheet imports get the
	// same error surface as pasted JSON (notably the 4-option minimum).
	encoded, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode assembled document: %w", err)
	}
	validation := s.content.ValidateContent(ctx, encoded)
	if !validation.Valid {
		result.RowErrors = validation.Errors
		return result, nil
	}

	resp, err := s.content.CreateQuestionSet(ctx, &CreateQuestionSetRequest{
		BucketID: req.BucketID,
		Name:     req.Name,
		Document: validation.Data,
	})
	if err != nil {
		return nil, err
	}

	result.QuestionSet = resp
	s.logger.Info("spreadsheet import completed",
		"question_set_id", resp.ID,
		"total_rows", result.TotalRows,
		"parsed_rows", result.ParsedRows)
	return result, nil
}

func parseImportRow(record []string, headerMap map[string]int, bundle *models.QuizBundle) error {
	cell := func(name string) string {
		idx, ok := headerMap[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	itemType := strings.ToLower(cell("item_type"))
	question := cell("question")
	answer := cell("answer")

	switch itemType {
	case "open":
		if question == "" || answer == "" {
			return fmt.Errorf("open questions need question and answer")
		}
		bundle.OpenQuestions = append(bundle.OpenQuestions, models.OpenQuestion{
			ID:       uuid.NewString(),
			Question: question,
			Answer:   answer,
		})

	case "multiple_choice", "fill_in_blank":
		answers, err := parseOptionCells(cell("options"), cell("correct_option"))
		if err != nil {
			return err
		}
		if question == "" {
			return fmt.Errorf("%s questions need question text", itemType)
		}
		if itemType == "multiple_choice" {
			bundle.MultipleChoiceQuestions = append(bundle.MultipleChoiceQuestions, models.MultipleChoiceQuestion{
				ID:       uuid.NewString(),
				Question: question,
				Answers:  answers,
			})
		} else {
			bundle.FillInTheBlank = append(bundle.FillInTheBlank, models.FillInTheBlank{
				ID:       uuid.NewString(),
				Question: question,
				Answers:  answers,
			})
		}

	case "flashcard":
		if question == "" || answer == "" {
			return fmt.Errorf("flashcards need front (question) and back (answer)")
		}
		bundle.Flashcards = append(bundle.Flashcards, models.Flashcard{
			ID:    uuid.NewString(),
			Front: question,
			Back:  answer,
		})

	case "micro_reel":
		if question == "" {
			return fmt.Errorf("micro reels need text in the question column")
		}
		bundle.MicroReels = append(bundle.MicroReels, models.MicroReel{
			ID:   uuid.NewString(),
			Text: question,
		})

	case "":
		return fmt.Errorf("missing item_type")
	default:
		return fmt.Errorf("unknown item_type %q", itemType)
	}

	return nil
}

// parseOptionCells splits a pipe-separated options cell and flags the
// 1-based correct_option as the correct answer.
func parseOptionCells(options, correctOption string) ([]models.Answer, error) {
	if options == "" {
		return nil, fmt.Errorf("choice questions need a %q-separated options cell", optionSeparator)
	}

	correct, err := strconv.Atoi(strings.TrimSpace(correctOption))
	if err != nil {
		return nil, fmt.Errorf("correct_option must be a 1-based number: %q", correctOption)
	}

	parts := strings.Split(options, optionSeparator)
	answers := make([]models.Answer, 0, len(parts))
	for i, part := range parts {
		answers = append(answers, models.Answer{
			Text:      strings.TrimSpace(part),
			IsCorrect: i+1 == correct,
		})
	}

	if correct < 1 || correct > len(answers) {
		return nil, fmt.Errorf("correct_option %d out of range (have %d options)", correct, len(answers))
	}

	return answers, nil
}

// ===== EXPORT =====

func (s *importService) ExportToCSV(ctx context.Context, questionSetID string) ([]byte, error) {
	doc, err := s.loadDocument(ctx, questionSetID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(importColumns); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, row := range exportRows(doc) {
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *importService) ExportToExcel(ctx context.Context, questionSetID string) ([]byte, error) {
	doc, err := s.loadDocument(ctx, questionSetID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for col, header := range importColumns {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, fmt.Errorf("failed to write Excel header: %w", err)
		}
	}

	for rowIdx, row := range exportRows(doc) {
		for col, value := range row {
			cell, _ := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write Excel cell: %w", err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *importService) loadDocument(ctx context.Context, questionSetID string) (*models.LearningContentDocument, error) {
	resp, err := s.content.GetQuestionSet(ctx, questionSetID)
	if err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return nil, fmt.Errorf("question set %s has no stored document", questionSetID)
	}
	return resp.Data, nil
}

func exportRows(doc *models.LearningContentDocument) [][]string {
	var rows [][]string

	for _, q := range doc.Quiz.OpenQuestions {
		rows = append(rows, []string{"open", q.Question, q.Answer, "", ""})
	}
	for _, q := range doc.Quiz.MultipleChoiceQuestions {
		options, correct := joinOptionCells(q.Answers)
		rows = append(rows, []string{"multiple_choice", q.Question, "", options, correct})
	}
	for _, q := range doc.Quiz.FillInTheBlank {
		options, correct := joinOptionCells(q.Answers)
		rows = append(rows, []string{"fill_in_blank", q.Question, "", options, correct})
	}
	for _, card := range doc.Quiz.Flashcards {
		rows = append(rows, []string{"flashcard", card.Front, card.Back, "", ""})
	}
	for _, reel := range doc.Quiz.MicroReels {
		rows = append(rows, []string{"micro_reel", reel.Text, "", "", ""})
	}

	return rows
}

func joinOptionCells(answers []models.Answer) (options string, correct string) {
	texts := make([]string, 0, len(answers))
	for i, a := range answers {
		texts = append(texts, a.Text)
		if a.IsCorrect && correct == "" {
			correct = strconv.Itoa(i + 1)
		}
	}
	return strings.Join(texts, optionSeparator), correct
}
