// ABOUTME: Tests for MCP server, tools, and resources.
// ABOUTME: Covers NewServer, tool handlers, and resource handlers against SQLite.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/harperreed/itb/internal/i18n"
	"github.com/harperreed/itb/internal/models"
	"github.com/harperreed/itb/internal/service"
	"github.com/harperreed/itb/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// setupTestServer creates a server over a fresh database in a temp directory.
func setupTestServer(t *testing.T) (*Server, *storage.DB) {
	t.Helper()

	db, err := storage.Open(filepath.Join(t.TempDir(), "itb.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	server, err := NewServer(service.New(db), i18n.EN, "test")
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	return server, db
}

func record(t *testing.T, server *Server, name string, arm, ankle float64) recordOutput {
	t.Helper()
	_, out, err := server.handleRecordMeasurement(context.Background(), &mcp.CallToolRequest{}, recordInput{
		PatientName:   name,
		ArmPressure:   arm,
		AnklePressure: ankle,
	})
	if err != nil {
		t.Fatalf("record %s failed: %v", name, err)
	}
	return out
}

func TestNewServer(t *testing.T) {
	server, _ := setupTestServer(t)

	if server.mcpServer == nil {
		t.Error("Expected non-nil mcpServer")
	}
	if server.svc == nil {
		t.Error("Expected non-nil service")
	}
	if server.lang != i18n.EN {
		t.Errorf("lang = %s, want en", server.lang)
	}
}

func TestHandleEvaluate(t *testing.T) {
	server, db := setupTestServer(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		input   evaluateInput
		want    models.Classification
		wantErr error
	}{
		{"normal", evaluateInput{ArmPressure: 120, AnklePressure: 120}, models.Normal, nil},
		{"stiffness", evaluateInput{ArmPressure: 100, AnklePressure: 140}, models.ArterialStiffness, nil},
		{"boundary 0.4", evaluateInput{ArmPressure: 100, AnklePressure: 40}, models.SeverePAD, nil},
		{"critical", evaluateInput{ArmPressure: 100, AnklePressure: 20}, models.CriticalIschemia, nil},
		{"zero arm", evaluateInput{ArmPressure: 0, AnklePressure: 80}, "", models.ErrDivisionByZero},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, out, err := server.handleEvaluate(ctx, &mcp.CallToolRequest{}, tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if out.Classification != string(tt.want) {
				t.Errorf("Classification = %s, want %s", out.Classification, tt.want)
			}
			if out.Interpretation == "" || out.Message == "" {
				t.Errorf("Expected interpretation and message, got %+v", out)
			}
		})
	}

	summaries, _ := db.ListSummaries()
	if len(summaries) != 0 {
		t.Errorf("evaluate_itb persisted %d rows, want 0", len(summaries))
	}
}

func TestHandleEvaluateLanguage(t *testing.T) {
	server, _ := setupTestServer(t)

	_, out, err := server.handleEvaluate(context.Background(), &mcp.CallToolRequest{},
		evaluateInput{ArmPressure: 100, AnklePressure: 80, Lang: "pt"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if want := "ITB: 0.80 - ITB 0.5 - 0.9: DAP leve a moderada."; out.Message != want {
		t.Errorf("Message = %q, want %q", out.Message, want)
	}
}

func TestHandleRecordMeasurement(t *testing.T) {
	server, db := setupTestServer(t)

	_, out, err := server.handleRecordMeasurement(context.Background(), &mcp.CallToolRequest{}, recordInput{
		PatientName:   "John Doe",
		RecordID:      "R-42",
		ArmPressure:   100,
		AnklePressure: 80,
		Phase:         "post",
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if out.ID == 0 {
		t.Error("Expected store-assigned ID")
	}
	if out.Phase != "post" {
		t.Errorf("Phase = %s, want post", out.Phase)
	}
	if out.Classification != string(models.MildModeratePAD) {
		t.Errorf("Classification = %s, want mild_moderate_pad", out.Classification)
	}
	if !strings.HasPrefix(out.Message, "ITB: 0.80") {
		t.Errorf("Message = %q", out.Message)
	}

	rows, _ := db.ListMeasurements("John Doe")
	if len(rows) != 1 || rows[0].RecordID != "R-42" {
		t.Errorf("stored rows = %+v", rows)
	}
}

func TestHandleRecordMeasurementValidation(t *testing.T) {
	server, db := setupTestServer(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		input recordInput
		want  error
	}{
		{"missing name", recordInput{PatientName: " ", ArmPressure: 100, AnklePressure: 80}, models.ErrMissingName},
		{"zero arm", recordInput{PatientName: "Ana", ArmPressure: 0, AnklePressure: 80}, models.ErrDivisionByZero},
		{"bad phase", recordInput{PatientName: "Ana", ArmPressure: 100, AnklePressure: 80, Phase: "during"}, models.ErrInvalidPhase},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := server.handleRecordMeasurement(ctx, &mcp.CallToolRequest{}, tt.input)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}

	summaries, _ := db.ListSummaries()
	if len(summaries) != 0 {
		t.Errorf("invalid input persisted %d rows", len(summaries))
	}
}

func TestHandleListMeasurements(t *testing.T) {
	server, _ := setupTestServer(t)
	ctx := context.Background()

	record(t, server, "First", 100, 100)
	record(t, server, "Second", 100, 90)
	record(t, server, "Third", 100, 45)

	_, out, err := server.handleListMeasurements(ctx, &mcp.CallToolRequest{}, listInput{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if out.Count != 3 {
		t.Fatalf("Count = %d, want 3", out.Count)
	}
	if out.Measurements[0].PatientName != "Third" {
		t.Errorf("first = %s, want Third (most recent)", out.Measurements[0].PatientName)
	}
	if out.Measurements[0].Classification != string(models.SeverePAD) {
		t.Errorf("Classification = %s, want severe_pad", out.Measurements[0].Classification)
	}

	_, out, _ = server.handleListMeasurements(ctx, &mcp.CallToolRequest{}, listInput{Limit: 2})
	if out.Count != 2 {
		t.Errorf("Count with limit = %d, want 2", out.Count)
	}
}

func TestHandleListMeasurementsEmpty(t *testing.T) {
	server, _ := setupTestServer(t)

	_, out, err := server.handleListMeasurements(context.Background(), &mcp.CallToolRequest{}, listInput{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if out.Count != 0 || out.Measurements == nil {
		t.Errorf("expected empty non-nil list, got %+v", out)
	}
	if out.Message == "" {
		t.Error("Expected a no-data message")
	}
}

func TestHandlePatientHistory(t *testing.T) {
	server, _ := setupTestServer(t)
	ctx := context.Background()

	record(t, server, "John", 100, 80)
	record(t, server, "Jane", 100, 95)
	record(t, server, "John", 100, 90)

	_, out, err := server.handlePatientHistory(ctx, &mcp.CallToolRequest{}, historyInput{PatientName: "John"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if out.Count != 2 {
		t.Fatalf("Count = %d, want 2", out.Count)
	}
	if out.Measurements[0].ID >= out.Measurements[1].ID {
		t.Error("history should be oldest first")
	}

	_, out, err = server.handlePatientHistory(ctx, &mcp.CallToolRequest{}, historyInput{PatientName: "Nobody"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if out.Count != 0 || out.Measurements == nil {
		t.Errorf("expected empty non-nil history, got %+v", out)
	}

	if _, _, err := server.handlePatientHistory(ctx, &mcp.CallToolRequest{}, historyInput{}); !errors.Is(err, models.ErrMissingName) {
		t.Errorf("empty name err = %v, want ErrMissingName", err)
	}
}

func TestHandleExportMeasurements(t *testing.T) {
	server, _ := setupTestServer(t)
	ctx := context.Background()

	record(t, server, "John", 100, 80)
	record(t, server, "Jane", 100, 95)

	_, out, err := server.handleExportMeasurements(ctx, &mcp.CallToolRequest{}, exportInput{Format: "json", PatientName: "Jane"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if out.Filename != "itb_export.json" {
		t.Errorf("Filename = %s", out.Filename)
	}

	var doc struct {
		Measurements []map[string]any `json:"measurements"`
	}
	if err := json.Unmarshal([]byte(out.Content), &doc); err != nil {
		t.Fatalf("content is not JSON: %v", err)
	}
	if len(doc.Measurements) != 1 || doc.Measurements[0]["patient_name"] != "Jane" {
		t.Errorf("measurements = %+v", doc.Measurements)
	}

	_, out, err = server.handleExportMeasurements(ctx, &mcp.CallToolRequest{}, exportInput{Format: "md", Lang: "pt"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(out.Content, "| Nome |") {
		t.Errorf("markdown should use Portuguese headers:\n%s", out.Content)
	}
}

func TestHandleExportMeasurementsNoData(t *testing.T) {
	server, _ := setupTestServer(t)

	_, out, err := server.handleExportMeasurements(context.Background(), &mcp.CallToolRequest{}, exportInput{Format: "csv"})
	if err != nil {
		t.Fatalf("no data should not be an error: %v", err)
	}
	if out.Message != "No data to export." || out.Content != "" {
		t.Errorf("unexpected output %+v", out)
	}
}

func TestHandleExportMeasurementsRejectsBinaryAndUnknown(t *testing.T) {
	server, _ := setupTestServer(t)
	record(t, server, "John", 100, 80)

	for _, format := range []string{"xlsx", "pdf", "docx"} {
		if _, _, err := server.handleExportMeasurements(context.Background(), &mcp.CallToolRequest{}, exportInput{Format: format}); err == nil {
			t.Errorf("format %s: expected error", format)
		}
	}
}

func TestHandleRecentResource(t *testing.T) {
	server, _ := setupTestServer(t)
	for i := 0; i < 12; i++ {
		record(t, server, "John", 100, 80)
	}

	result, err := server.handleRecentResource(context.Background(), &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(result.Contents) == 0 {
		t.Fatal("Expected non-empty contents")
	}
	if result.Contents[0].URI != "itb://recent" {
		t.Errorf("URI = %s, want itb://recent", result.Contents[0].URI)
	}
	if result.Contents[0].MIMEType != "application/json" {
		t.Errorf("MIMEType = %s, want application/json", result.Contents[0].MIMEType)
	}

	var doc struct {
		Count        int             `json:"count"`
		Measurements []summaryOutput `json:"measurements"`
	}
	if err := json.Unmarshal([]byte(result.Contents[0].Text), &doc); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if doc.Count != 10 || len(doc.Measurements) != 10 {
		t.Errorf("count = %d/%d, want 10", doc.Count, len(doc.Measurements))
	}
}

func TestHandlePatientsResource(t *testing.T) {
	server, _ := setupTestServer(t)
	record(t, server, "Zoe", 100, 80)
	record(t, server, "Ana", 100, 80)
	record(t, server, "Zoe", 100, 90)

	result, err := server.handlePatientsResource(context.Background(), &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	var doc struct {
		Patients []string `json:"patients"`
	}
	if err := json.Unmarshal([]byte(result.Contents[0].Text), &doc); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(doc.Patients) != 2 || doc.Patients[0] != "Ana" || doc.Patients[1] != "Zoe" {
		t.Errorf("patients = %v, want [Ana Zoe]", doc.Patients)
	}
}

func TestHandleBandsResource(t *testing.T) {
	server, _ := setupTestServer(t)

	result, err := server.handleBandsResource(context.Background(), &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	var doc struct {
		Bands []bandOutput `json:"bands"`
	}
	if err := json.Unmarshal([]byte(result.Contents[0].Text), &doc); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(doc.Bands) != 5 {
		t.Fatalf("got %d bands, want 5", len(doc.Bands))
	}
	if doc.Bands[0].Classification != string(models.ArterialStiffness) {
		t.Errorf("first band = %s, want arterial_stiffness", doc.Bands[0].Classification)
	}
	if doc.Bands[4].Interpretation["en"] != "ITB < 0.4: Critical ischemia." {
		t.Errorf("en interpretation = %q", doc.Bands[4].Interpretation["en"])
	}
}

func TestResourcesFailWhenStorageClosed(t *testing.T) {
	server, db := setupTestServer(t)
	db.Close()

	if _, err := server.handleRecentResource(context.Background(), &mcp.ReadResourceRequest{}); !errors.Is(err, storage.ErrUnavailable) {
		t.Errorf("recent err = %v, want ErrUnavailable", err)
	}
	if _, err := server.handlePatientsResource(context.Background(), &mcp.ReadResourceRequest{}); !errors.Is(err, storage.ErrUnavailable) {
		t.Errorf("patients err = %v, want ErrUnavailable", err)
	}
}
