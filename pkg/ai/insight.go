package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
)

// BusinessProfile is the common payload describing the business under
// analysis. Field names follow the analysis service's API.
type BusinessProfile struct {
	BusinessDescription string `json:"business_description"`
	CompanyName         string `json:"company_name"`
	Country             string `json:"country"`
	Goal                string `json:"goal"`
	WebsiteURL          string `json:"website_url,omitempty"`
	InstagramLink       string `json:"instagram_link,omitempty"`
	IndustryField       string `json:"industry_field,omitempty"`
}

// InsightClient calls the SWOT/sentiment/branding analysis service.
type InsightClient struct {
	baseURL string
	http    *http.Client
}

func NewInsightClient(baseURL string) *InsightClient {
	return &InsightClient{
		baseURL: baseURL,
		http:    newHTTPClient(),
	}
}

func (c *InsightClient) WebsiteSWOT(ctx context.Context, profile BusinessProfile) (json.RawMessage, error) {
	return postJSON(ctx, c.http, c.baseURL+"/website-swot-analysis", profile)
}

func (c *InsightClient) SentimentAnalysis(ctx context.Context, profile BusinessProfile) (json.RawMessage, error) {
	return postJSON(ctx, c.http, c.baseURL+"/customer-sentiment-analysis", profile)
}

func (c *InsightClient) SocialSWOT(ctx context.Context, profile BusinessProfile) (json.RawMessage, error) {
	return postJSON(ctx, c.http, c.baseURL+"/social-swot-analysis", profile)
}

// BrandingAudit uploads the logo alongside the profile fields as one
// multipart form.
func (c *InsightClient) BrandingAudit(ctx context.Context, logo []byte, logoFilename string, profile BusinessProfile) (json.RawMessage, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("logoUpload", logoFilename)
	if err != nil {
		return nil, fmt.Errorf("failed to create logo part: %w", err)
	}
	if _, err := part.Write(logo); err != nil {
		return nil, fmt.Errorf("failed to write logo payload: %w", err)
	}

	fields := map[string]string{
		"business_description": profile.BusinessDescription,
		"company_name":         profile.CompanyName,
		"country":              profile.Country,
		"goal":                 profile.Goal,
		"website_url":          profile.WebsiteURL,
		"instagram_link":       profile.InstagramLink,
	}
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return nil, fmt.Errorf("failed to write form field %s: %w", key, err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize form payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/branding-audit", &body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return do(c.http, req)
}
