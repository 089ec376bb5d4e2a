// ABOUTME: MCP resource implementations for ITB measurements.
// ABOUTME: Provides itb://recent, itb://patients, and itb://bands resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/harperreed/itb/internal/i18n"
	"github.com/harperreed/itb/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const recentLimit = 10

func (s *Server) registerResources() {
	// itb://recent - last 10 measurements across all patients
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "itb://recent",
		Name:        "Recent ITB Measurements",
		Description: "Last 10 measurements, most recent first",
		MIMEType:    "application/json",
	}, s.handleRecentResource)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "itb://patients",
		Name:        "Patients",
		Description: "Distinct patient names with stored measurements",
		MIMEType:    "application/json",
	}, s.handlePatientsResource)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "itb://bands",
		Name:        "ITB Classification Bands",
		Description: "Interpretation bands in evaluation order, first match wins",
		MIMEType:    "application/json",
	}, s.handleBandsResource)
}

// Resource handlers

func (s *Server) handleRecentResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	summaries, err := s.svc.Summaries()
	if err != nil {
		return nil, fmt.Errorf("failed to list measurements: %w", err)
	}
	if len(summaries) > recentLimit {
		summaries = summaries[:recentLimit]
	}

	return jsonResource("itb://recent", map[string]any{
		"generated_at": time.Now().Format(time.RFC3339),
		"count":        len(summaries),
		"measurements": toSummaryOutputs(summaries),
	})
}

func (s *Server) handlePatientsResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	names, err := s.svc.Patients()
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}

	return jsonResource("itb://patients", map[string]any{
		"count":    len(names),
		"patients": names,
	})
}

type bandOutput struct {
	Classification string            `json:"classification"`
	Range          string            `json:"range"`
	Interpretation map[string]string `json:"interpretation"`
}

func (s *Server) handleBandsResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	bands := models.Bands()
	out := make([]bandOutput, 0, len(bands))
	for _, b := range bands {
		interp := make(map[string]string, len(i18n.Supported))
		for _, lang := range i18n.Supported {
			interp[string(lang)] = i18n.For(lang).Classification(b.Label)
		}
		out = append(out, bandOutput{
			Classification: string(b.Label),
			Range:          b.Range,
			Interpretation: interp,
		})
	}

	return jsonResource("itb://bands", map[string]any{"bands": out})
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
