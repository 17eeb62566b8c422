package models

import (
	"encoding/json"
	"time"
)

// JSend response statuses.
const (
	StatusSuccess = "success"
	StatusFail    = "fail"
	StatusError   = "error"
)

// Envelope is the JSend wrapper used by every endpoint.
type Envelope struct {
	Status  string `json:"status"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// UploadedFile is the metadata record for the single active CSV blob.
type UploadedFile struct {
	PublicID         string    `json:"publicId" db:"publicId"`
	SecureURL        string    `json:"secureUrl" db:"secureUrl"`
	OriginalFilename string    `json:"originalFilename" db:"originalFilename"`
	CreatedAt        time.Time `json:"createdAt" db:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt" db:"updatedAt"`
}

// Report categories for persisted analysis results.
const (
	CategoryWebsiteSWOT = "websiteSWOT"
	CategorySocialSWOT  = "socialSWOT"
	CategorySentiment   = "sentiment"
	CategoryBrandAudit  = "brandAudit"
	CategoryCSV         = "csv"
)

// Categories lists every valid report category.
var Categories = []string{
	CategoryWebsiteSWOT,
	CategorySocialSWOT,
	CategorySentiment,
	CategoryBrandAudit,
	CategoryCSV,
}

// ValidCategory reports whether category is one of the known report
// categories.
func ValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// Report is one persisted analysis result for a user.
type Report struct {
	ID        string          `json:"id" db:"id"`
	Category  string          `json:"category" db:"category"`
	Data      json.RawMessage `json:"data" db:"data"`
	CreatedAt time.Time       `json:"createdAt" db:"created_at"`
}

// PageResponse is the payload of a paginated dataset read.
type PageResponse struct {
	Rows       []map[string]any `json:"rows"`
	TotalCount int              `json:"totalCount"`
	LastPage   int              `json:"lastPage"`
}

// TableStatus reports whether an active dataset exists.
type TableStatus struct {
	Status bool `json:"status"`
}
