// ABOUTME: MCP tool implementations for ITB measurements.
// ABOUTME: Evaluate, record, list, per-patient history, and text exports.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/harperreed/itb/internal/export"
	"github.com/harperreed/itb/internal/models"
	"github.com/harperreed/itb/internal/service"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "evaluate_itb",
		Description: "Compute and classify an ankle-brachial index without saving it",
	}, s.handleEvaluate)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "record_measurement",
		Description: "Validate, classify, and store a patient's arm and ankle pressures",
	}, s.handleRecordMeasurement)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_measurements",
		Description: "List recent measurements, most recent first",
	}, s.handleListMeasurements)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "patient_history",
		Description: "Get every measurement for one patient, oldest first",
	}, s.handlePatientHistory)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "export_measurements",
		Description: "Export measurements as json, yaml, markdown, or csv text",
	}, s.handleExportMeasurements)
}

// Tool input/output types

type evaluateInput struct {
	ArmPressure   float64 `json:"arm_pressure" jsonschema:"Arm systolic pressure in mmHg"`
	AnklePressure float64 `json:"ankle_pressure" jsonschema:"Ankle systolic pressure in mmHg"`
	Lang          string  `json:"lang,omitempty" jsonschema:"Language for the interpretation text: pt or en"`
}

type evaluationOutput struct {
	ITB            float64 `json:"itb"`
	Classification string  `json:"classification"`
	Interpretation string  `json:"interpretation"`
	Message        string  `json:"message"`
}

type recordInput struct {
	PatientName   string  `json:"patient_name" jsonschema:"Patient name"`
	RecordID      string  `json:"record_id,omitempty" jsonschema:"Optional chart or record identifier"`
	ArmPressure   float64 `json:"arm_pressure" jsonschema:"Arm systolic pressure in mmHg"`
	AnklePressure float64 `json:"ankle_pressure" jsonschema:"Ankle systolic pressure in mmHg"`
	Phase         string  `json:"phase,omitempty" jsonschema:"pre or post treatment, defaults to pre"`
	Lang          string  `json:"lang,omitempty" jsonschema:"Language for the interpretation text: pt or en"`
}

type recordOutput struct {
	ID             int64   `json:"id"`
	PatientName    string  `json:"patient_name"`
	RecordedAt     string  `json:"recorded_at"`
	ITB            float64 `json:"itb"`
	Phase          string  `json:"phase"`
	Classification string  `json:"classification"`
	Interpretation string  `json:"interpretation"`
	Message        string  `json:"message"`
}

type listInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Max results (default 20)"`
}

type summaryOutput struct {
	PatientName    string  `json:"patient_name"`
	RecordID       string  `json:"record_id"`
	RecordedAt     string  `json:"recorded_at"`
	ITB            float64 `json:"itb"`
	Phase          string  `json:"phase"`
	Classification string  `json:"classification"`
}

type listOutput struct {
	Count        int             `json:"count"`
	Measurements []summaryOutput `json:"measurements"`
	Message      string          `json:"message,omitempty"`
}

type historyInput struct {
	PatientName string `json:"patient_name" jsonschema:"Exact patient name"`
}

type measurementOutput struct {
	ID             int64   `json:"id"`
	PatientName    string  `json:"patient_name"`
	RecordID       string  `json:"record_id"`
	RecordedAt     string  `json:"recorded_at"`
	ArmPressure    float64 `json:"arm_pressure"`
	AnklePressure  float64 `json:"ankle_pressure"`
	ITB            float64 `json:"itb"`
	Phase          string  `json:"phase"`
	Classification string  `json:"classification"`
}

type historyOutput struct {
	PatientName  string              `json:"patient_name"`
	Count        int                 `json:"count"`
	Measurements []measurementOutput `json:"measurements"`
}

type exportInput struct {
	Format      string `json:"format" jsonschema:"json, yaml, markdown, or csv"`
	PatientName string `json:"patient_name,omitempty" jsonschema:"Only export this patient"`
	Lang        string `json:"lang,omitempty" jsonschema:"Language for headers: pt or en"`
}

type exportOutput struct {
	Format   string `json:"format"`
	Filename string `json:"filename,omitempty"`
	Content  string `json:"content"`
	Message  string `json:"message,omitempty"`
}

// Tool handlers

func (s *Server) handleEvaluate(ctx context.Context, req *mcp.CallToolRequest, input evaluateInput) (*mcp.CallToolResult, evaluationOutput, error) {
	t := s.table(input.Lang)

	e, err := models.EvaluatePressures(formatPressure(input.ArmPressure), formatPressure(input.AnklePressure))
	if err != nil {
		return nil, evaluationOutput{}, fmt.Errorf("%s: %w", t.ErrorMessage(err), err)
	}

	interp := t.Classification(e.Classification)
	return nil, evaluationOutput{
		ITB:            e.ITB,
		Classification: string(e.Classification),
		Interpretation: interp,
		Message:        fmt.Sprintf("ITB: %.2f - %s", e.ITB, interp),
	}, nil
}

func (s *Server) handleRecordMeasurement(ctx context.Context, req *mcp.CallToolRequest, input recordInput) (*mcp.CallToolResult, recordOutput, error) {
	t := s.table(input.Lang)

	res, err := s.svc.Submit(service.SubmitInput{
		Name:          input.PatientName,
		RecordID:      input.RecordID,
		ArmPressure:   formatPressure(input.ArmPressure),
		AnklePressure: formatPressure(input.AnklePressure),
		Phase:         input.Phase,
	})
	if err != nil {
		return nil, recordOutput{}, fmt.Errorf("%s: %w", t.ErrorMessage(err), err)
	}

	m := res.Record
	return nil, recordOutput{
		ID:             m.ID,
		PatientName:    m.PatientName,
		RecordedAt:     m.RecordedAt.Format(time.RFC3339Nano),
		ITB:            m.ITB,
		Phase:          string(m.Phase),
		Classification: string(m.Classification()),
		Interpretation: t.Classification(m.Classification()),
		Message:        t.ResultMessage(res.Evaluation),
	}, nil
}

func (s *Server) handleListMeasurements(ctx context.Context, req *mcp.CallToolRequest, input listInput) (*mcp.CallToolResult, listOutput, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}

	summaries, err := s.svc.Summaries()
	if err != nil {
		return nil, listOutput{}, fmt.Errorf("failed to list measurements: %w", err)
	}
	if len(summaries) > input.Limit {
		summaries = summaries[:input.Limit]
	}

	out := listOutput{
		Count:        len(summaries),
		Measurements: toSummaryOutputs(summaries),
	}
	if out.Count == 0 {
		out.Message = "No measurements found."
	}
	return nil, out, nil
}

func (s *Server) handlePatientHistory(ctx context.Context, req *mcp.CallToolRequest, input historyInput) (*mcp.CallToolResult, historyOutput, error) {
	if input.PatientName == "" {
		return nil, historyOutput{}, models.ErrMissingName
	}

	rows, err := s.svc.History(input.PatientName)
	if err != nil {
		return nil, historyOutput{}, fmt.Errorf("failed to get history: %w", err)
	}

	out := historyOutput{
		PatientName:  input.PatientName,
		Count:        len(rows),
		Measurements: make([]measurementOutput, 0, len(rows)),
	}
	for _, m := range rows {
		out.Measurements = append(out.Measurements, measurementOutput{
			ID:             m.ID,
			PatientName:    m.PatientName,
			RecordID:       m.RecordID,
			RecordedAt:     m.RecordedAt.Format(time.RFC3339Nano),
			ArmPressure:    m.ArmPressure,
			AnklePressure:  m.AnklePressure,
			ITB:            m.ITB,
			Phase:          string(m.Phase),
			Classification: string(m.Classification()),
		})
	}
	return nil, out, nil
}

func (s *Server) handleExportMeasurements(ctx context.Context, req *mcp.CallToolRequest, input exportInput) (*mcp.CallToolResult, exportOutput, error) {
	t := s.table(input.Lang)

	format, err := export.ParseFormat(input.Format)
	if err != nil {
		return nil, exportOutput{}, err
	}
	if format.Binary() {
		return nil, exportOutput{}, fmt.Errorf("%s is a binary format; use `itb export %s` instead", format, format)
	}

	data, err := s.svc.Export(format, input.PatientName, export.Options{Lang: t.Lang})
	if errors.Is(err, export.ErrNoDataToExport) {
		return nil, exportOutput{Format: string(format), Message: t.NoData}, nil
	}
	if err != nil {
		return nil, exportOutput{}, fmt.Errorf("failed to export: %w", err)
	}

	return nil, exportOutput{
		Format:   string(format),
		Filename: format.Filename(),
		Content:  string(data),
	}, nil
}

func toSummaryOutputs(summaries []*models.Summary) []summaryOutput {
	out := make([]summaryOutput, 0, len(summaries))
	for _, sm := range summaries {
		out = append(out, summaryOutput{
			PatientName:    sm.PatientName,
			RecordID:       sm.RecordID,
			RecordedAt:     sm.RecordedAt.Format(time.RFC3339Nano),
			ITB:            sm.ITB,
			Phase:          string(sm.Phase),
			Classification: string(sm.Classification()),
		})
	}
	return out
}

func formatPressure(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
