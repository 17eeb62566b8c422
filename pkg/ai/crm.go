package ai

import (
	"context"
	"encoding/json"
	"net/http"
)

// CRMClient calls the CSV analytics service. Every endpoint takes the stored
// CSV as a multipart form under the field name "data".
type CRMClient struct {
	baseURL string
	http    *http.Client
}

func NewCRMClient(baseURL string) *CRMClient {
	return &CRMClient{
		baseURL: baseURL,
		http:    newHTTPClient(),
	}
}

// Upload sends a freshly uploaded CSV for ingestion and returns the
// service's summary report, which is what the upload endpoint relays back to
// the frontend.
func (c *CRMClient) Upload(ctx context.Context, csvData []byte, filename string) (json.RawMessage, error) {
	return postMultipart(ctx, c.http, c.baseURL+"/upload", csvData, filename, nil)
}

// DashboardData fetches the aggregated dashboard report for the CSV.
func (c *CRMClient) DashboardData(ctx context.Context, csvData []byte, filename string) (json.RawMessage, error) {
	return postMultipart(ctx, c.http, c.baseURL+"/dashboard-data", csvData, filename, nil)
}

// PatternsInitial runs the first-pass pattern scan.
func (c *CRMClient) PatternsInitial(ctx context.Context, csvData []byte, filename string) (json.RawMessage, error) {
	return postMultipart(ctx, c.http, c.baseURL+"/pattern-analysis-initial", csvData, filename, nil)
}

// AnalyzePatterns runs the full pattern analysis with the caller-supplied
// minimum support threshold.
func (c *CRMClient) AnalyzePatterns(ctx context.Context, csvData []byte, filename, minSupport string) (json.RawMessage, error) {
	return postMultipart(ctx, c.http, c.baseURL+"/pattern-analysis-analyze", csvData, filename,
		map[string]string{"min_support": minSupport})
}

// SmartQuestions asks for example questions the dataset can answer.
func (c *CRMClient) SmartQuestions(ctx context.Context, csvData []byte, filename string) (json.RawMessage, error) {
	return postMultipart(ctx, c.http, c.baseURL+"/smart-question-examples", csvData, filename, nil)
}

// AnswerQuestion answers a free-form question about the dataset.
func (c *CRMClient) AnswerQuestion(ctx context.Context, csvData []byte, filename, question string) (json.RawMessage, error) {
	return postMultipart(ctx, c.http, c.baseURL+"/question-answer", csvData, filename,
		map[string]string{"question": question})
}
