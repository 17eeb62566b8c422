package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/transformellica/crm-api/pkg/ai"
	"github.com/transformellica/crm-api/pkg/db"
	"github.com/transformellica/crm-api/pkg/models"
	"github.com/transformellica/crm-api/pkg/tabular"
)

// UploadData replaces the active dataset end to end: clean up the previous
// upload, store the new blob, parse the CSV, forward it to the analytics
// service, then materialize the dynamic table. The analytics response is
// what the caller gets back, not the table creation result.
func (s *Server) UploadData(c echo.Context) error {
	ctx := c.Request().Context()

	fileHeader, err := c.FormFile("data")
	if err != nil {
		return fail(c, http.StatusBadRequest, "No CSV file uploaded")
	}

	data, err := readFormFile(fileHeader)
	if err != nil {
		return errorResponse(c, err)
	}

	existing, err := s.db.GetUploadedFile(ctx)
	if err != nil {
		return errorResponse(c, err)
	}

	if existing != nil {
		if err := s.db.RemoveActiveDataset(ctx); err != nil {
			return errorResponse(c, err)
		}
		if err := s.blobs.Delete(ctx, existing.PublicID); err != nil {
			return errorResponse(c, err)
		}
	}

	object, err := s.blobs.Upload(ctx, data, db.FilePublicID, fileHeader.Filename, "text/csv")
	if err != nil {
		return errorResponse(c, err)
	}

	if err := s.db.SaveUploadedFile(ctx, object.PublicID, object.SecureURL, fileHeader.Filename); err != nil {
		return errorResponse(c, err)
	}

	dataset, err := tabular.ParseCSV(bytes.NewReader(data))
	if err != nil {
		return errorResponse(c, err)
	}

	report, err := s.crm.Upload(ctx, data, fileHeader.Filename)
	if err != nil {
		return errorResponse(c, err)
	}

	if err := s.db.IngestDataset(ctx, dataset); err != nil {
		return errorResponse(c, err)
	}

	return success(c, http.StatusCreated, report)
}

// GetData serves one page of the dynamic table.
func (s *Server) GetData(c echo.Context) error {
	ctx := c.Request().Context()

	exists, err := s.db.TableExists(ctx, db.DataTableName)
	if err != nil {
		return errorResponse(c, err)
	}
	if !exists {
		return fail(c, http.StatusNotFound, "Data table not found. Please upload a CSV first.")
	}

	page, limit := pageParams(c)
	offset := (page - 1) * limit

	result, err := s.db.Paginate(ctx, db.DataTableName, offset, limit)
	if err != nil {
		return errorResponse(c, err)
	}

	return success(c, http.StatusOK, models.PageResponse{
		Rows:       result.Rows,
		TotalCount: result.TotalCount,
		LastPage:   db.LastPage(result.TotalCount, limit),
	})
}

// CheckTable reports whether an active dataset exists.
func (s *Server) CheckTable(c echo.Context) error {
	existing, err := s.db.GetUploadedFile(c.Request().Context())
	if err != nil {
		return errorResponse(c, err)
	}
	return success(c, http.StatusOK, models.TableStatus{Status: existing != nil})
}

// DeleteTable removes the dynamic table, the uploaded-file record and the
// backing blob.
func (s *Server) DeleteTable(c echo.Context) error {
	ctx := c.Request().Context()

	existing, err := s.db.GetUploadedFile(ctx)
	if err != nil {
		return errorResponse(c, err)
	}

	if err := s.db.RemoveActiveDataset(ctx); err != nil {
		return errorResponse(c, err)
	}

	if existing != nil {
		if err := s.blobs.Delete(ctx, existing.PublicID); err != nil {
			return errorResponse(c, err)
		}
	}

	return success(c, http.StatusOK, nil)
}

// DashboardData relays the stored CSV to the analytics dashboard endpoint.
func (s *Server) DashboardData(c echo.Context) error {
	return s.relayStoredCSV(c, s.crm.DashboardData)
}

// PatternsInitial relays the stored CSV to the first-pass pattern scan.
func (s *Server) PatternsInitial(c echo.Context) error {
	return s.relayStoredCSV(c, s.crm.PatternsInitial)
}

// SmartQuestions relays the stored CSV to the example-questions endpoint.
func (s *Server) SmartQuestions(c echo.Context) error {
	return s.relayStoredCSV(c, s.crm.SmartQuestions)
}

// DisplayCards serves the dashboard summary cards, with a placeholder
// payload when nothing has been uploaded yet.
func (s *Server) DisplayCards(c echo.Context) error {
	ctx := c.Request().Context()

	existing, err := s.db.GetUploadedFile(ctx)
	if err != nil {
		return errorResponse(c, err)
	}
	if existing == nil {
		return success(c, http.StatusOK, map[string]any{
			"domain":              "No data uploaded",
			"missing_data_ratio":  0,
			"num_numeric_columns": 0,
			"total_columns":       0,
			"total_rows":          0,
		})
	}

	csvData, err := s.blobs.Download(ctx, existing.SecureURL)
	if err != nil {
		return errorResponse(c, err)
	}

	report, err := s.crm.Upload(ctx, csvData, existing.OriginalFilename)
	if err != nil {
		return errorResponse(c, err)
	}
	return success(c, http.StatusOK, report)
}

// AnalyzePatterns runs the pattern analysis with the requested minimum
// support threshold.
func (s *Server) AnalyzePatterns(c echo.Context) error {
	ctx := c.Request().Context()

	var body struct {
		MinSupport json.Number `json:"minSupport"`
	}
	if err := c.Bind(&body); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}

	existing, csvData, err := s.activeCSV(c)
	if err != nil || existing == nil {
		return err
	}

	report, err := s.crm.AnalyzePatterns(ctx, csvData, existing.OriginalFilename, body.MinSupport.String())
	if err != nil {
		return errorResponse(c, err)
	}
	return success(c, http.StatusOK, report)
}

// AnswerQuestion answers a free-form question about the dataset.
func (s *Server) AnswerQuestion(c echo.Context) error {
	ctx := c.Request().Context()

	var body struct {
		Question string `json:"question"`
	}
	if err := c.Bind(&body); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}

	existing, csvData, err := s.activeCSV(c)
	if err != nil || existing == nil {
		return err
	}

	report, err := s.crm.AnswerQuestion(ctx, csvData, existing.OriginalFilename, body.Question)
	if err != nil {
		return errorResponse(c, err)
	}
	return success(c, http.StatusOK, report)
}

// WebsiteSWOT runs the website SWOT analysis and persists the report.
func (s *Server) WebsiteSWOT(c echo.Context) error {
	return s.runInsight(c, models.CategoryWebsiteSWOT, s.insight.WebsiteSWOT)
}

// SentimentAnalysis runs the customer sentiment analysis and persists the
// report.
func (s *Server) SentimentAnalysis(c echo.Context) error {
	return s.runInsight(c, models.CategorySentiment, s.insight.SentimentAnalysis)
}

// SocialSWOT runs the social media SWOT analysis and persists the report.
func (s *Server) SocialSWOT(c echo.Context) error {
	return s.runInsight(c, models.CategorySocialSWOT, s.insight.SocialSWOT)
}

// BrandingAudit runs the branding audit from a multipart form carrying the
// logo and the business profile fields, then persists the report.
func (s *Server) BrandingAudit(c echo.Context) error {
	ctx := c.Request().Context()

	logoHeader, err := c.FormFile("logoUpload")
	if err != nil {
		return fail(c, http.StatusBadRequest, "No logo file uploaded")
	}

	logo, err := readFormFile(logoHeader)
	if err != nil {
		return errorResponse(c, err)
	}

	profile := ai.BusinessProfile{
		BusinessDescription: c.FormValue("business_description"),
		CompanyName:         c.FormValue("company_name"),
		Country:             c.FormValue("country"),
		Goal:                c.FormValue("goal"),
		WebsiteURL:          c.FormValue("website_url"),
		InstagramLink:       c.FormValue("instagram_link"),
	}

	result, err := s.insight.BrandingAudit(ctx, logo, logoHeader.Filename, profile)
	if err != nil {
		return errorResponse(c, err)
	}

	report, err := s.db.CreateReport(ctx, models.CategoryBrandAudit, result)
	if err != nil {
		return errorResponse(c, err)
	}
	return success(c, http.StatusOK, report)
}

// GetReport fetches one persisted report.
func (s *Server) GetReport(c echo.Context) error {
	report, err := s.db.GetReport(c.Request().Context(), c.Param("id"))
	if errors.Is(err, db.ErrReportNotFound) {
		return fail(c, http.StatusNotFound, "Report not found")
	}
	if err != nil {
		return errorResponse(c, err)
	}
	return success(c, http.StatusOK, report)
}

// DeleteReport removes one persisted report.
func (s *Server) DeleteReport(c echo.Context) error {
	err := s.db.DeleteReport(c.Request().Context(), c.Param("id"))
	if errors.Is(err, db.ErrReportNotFound) {
		return fail(c, http.StatusNotFound, "Report not found")
	}
	if err != nil {
		return errorResponse(c, err)
	}
	return success(c, http.StatusOK, nil)
}

// ReportHistory lists the persisted reports for one category.
func (s *Server) ReportHistory(c echo.Context) error {
	category := c.Param("category")
	if !models.ValidCategory(category) {
		return fail(c, http.StatusBadRequest, "Unknown report category")
	}

	reports, err := s.db.ListReports(c.Request().Context(), category)
	if err != nil {
		return errorResponse(c, err)
	}
	return success(c, http.StatusOK, reports)
}

// runInsight binds the business profile, calls one insight analysis and
// persists the result as a report record.
func (s *Server) runInsight(c echo.Context, category string, analyze func(ctx context.Context, profile ai.BusinessProfile) (json.RawMessage, error)) error {
	ctx := c.Request().Context()

	var profile ai.BusinessProfile
	if err := c.Bind(&profile); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}

	result, err := analyze(ctx, profile)
	if err != nil {
		return errorResponse(c, err)
	}

	report, err := s.db.CreateReport(ctx, category, result)
	if err != nil {
		return errorResponse(c, err)
	}
	return success(c, http.StatusOK, report)
}

// relayStoredCSV downloads the active CSV and forwards it to one analytics
// endpoint, relaying the JSON response.
func (s *Server) relayStoredCSV(c echo.Context, call func(ctx context.Context, csvData []byte, filename string) (json.RawMessage, error)) error {
	existing, csvData, err := s.activeCSV(c)
	if err != nil || existing == nil {
		return err
	}

	report, err := call(c.Request().Context(), csvData, existing.OriginalFilename)
	if err != nil {
		return errorResponse(c, err)
	}
	return success(c, http.StatusOK, report)
}

// activeCSV resolves the uploaded-file record and downloads its blob. When
// no dataset exists it writes the 404 fail response itself and returns a nil
// record.
func (s *Server) activeCSV(c echo.Context) (*models.UploadedFile, []byte, error) {
	ctx := c.Request().Context()

	existing, err := s.db.GetUploadedFile(ctx)
	if err != nil {
		return nil, nil, errorResponse(c, err)
	}
	if existing == nil {
		return nil, nil, fail(c, http.StatusNotFound, "No dataset uploaded. Please upload a CSV first.")
	}

	csvData, err := s.blobs.Download(ctx, existing.SecureURL)
	if err != nil {
		return nil, nil, errorResponse(c, err)
	}
	return existing, csvData, nil
}

func pageParams(c echo.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(c.QueryParam("limit"))
	if limit < 1 {
		limit = 10
	}
	return page, limit
}

func readFormFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func success(c echo.Context, status int, data any) error {
	return c.JSON(status, models.Envelope{Status: models.StatusSuccess, Data: data})
}

func fail(c echo.Context, status int, message string) error {
	return c.JSON(status, models.Envelope{
		Status: models.StatusFail,
		Data:   map[string]string{"message": message},
	})
}

func errorResponse(c echo.Context, err error) error {
	return c.JSON(http.StatusInternalServerError, models.Envelope{
		Status:  models.StatusError,
		Message: err.Error(),
	})
}
