package api

import (
	"github.com/matzehuels/lbcode/pkg/buildinfo"
	"github.com/matzehuels/lbcode/pkg/lbcode"
	"github.com/matzehuels/lbcode/pkg/pipeline"
)

// ConvertRequest is the body of POST /convert.
type ConvertRequest struct {
	// FileContent is the base64-encoded LDraw model.
	FileContent string `json:"fileContent"`
	FileName    string `json:"fileName,omitempty"`
	Strict      bool   `json:"strict,omitempty"`
}

// ConvertResponse is the success body of POST /convert.
type ConvertResponse struct {
	Success      bool             `json:"success"`
	ID           string           `json:"id"`
	LBCodeBase64 string           `json:"lbcodeBase64"`
	Width        uint16           `json:"width"`
	Height       uint16           `json:"height"`
	Parts        int              `json:"parts"`
	Warnings     []lbcode.Warning `json:"warnings,omitempty"`
	Cached       bool             `json:"cached"`
}

// ErrorResponse is returned for every failed request.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Line    int    `json:"line,omitempty"`
}

// InspectResponse is the body of POST /api/v1/inspect.
type InspectResponse struct {
	Size   int           `json:"size"`
	Layout lbcode.Layout `json:"layout"`
}

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

func convertResponse(res *pipeline.Result) ConvertResponse {
	return ConvertResponse{
		Success:  true,
		ID:       res.ID,
		Width:    res.Layout.Width,
		Height:   res.Layout.Height,
		Parts:    res.Stats.Parts,
		Warnings: res.Warnings,
		Cached:   res.CacheHit,
	}
}
