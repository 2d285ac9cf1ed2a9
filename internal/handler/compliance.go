// Package handler 提供API处理器
package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/anasbendaikha-blip/pharmaplanning-sub003/internal/metrics"
	"github.com/anasbendaikha-blip/pharmaplanning-sub003/pkg/compliance"
	"github.com/anasbendaikha-blip/pharmaplanning-sub003/pkg/compliance/rules"
	"github.com/anasbendaikha-blip/pharmaplanning-sub003/pkg/errors"
	"github.com/anasbendaikha-blip/pharmaplanning-sub003/pkg/logger"
	"github.com/anasbendaikha-blip/pharmaplanning-sub003/pkg/model"
	"github.com/anasbendaikha-blip/pharmaplanning-sub003/pkg/timeutil"
	"github.com/anasbendaikha-blip/pharmaplanning-sub003/pkg/validator"
)

// ComplianceRequest 合规校验请求
// 调用方提供完整数据快照；limits 可选，仅覆盖非零项
type ComplianceRequest struct {
	OrgID     string               `json:"org_id"`
	StartDate string               `json:"start_date"`
	EndDate   string               `json:"end_date"`
	Employees []*model.Employee    `json:"employees"`
	Shifts    []*model.Shift       `json:"shifts"`
	Openings  []model.OpeningHours `json:"openings,omitempty"`
	Limits    *model.LegalLimits   `json:"limits,omitempty"`
}

// CheckResponse 快速检查响应
type CheckResponse struct {
	Success bool                        `json:"success"`
	Data    *compliance.ComplianceScore `json:"data,omitempty"`
	Error   string                      `json:"error,omitempty"`
}

// ReportResponse 完整报告响应
type ReportResponse struct {
	Success bool               `json:"success"`
	Data    *compliance.Report `json:"data,omitempty"`
	Error   string             `json:"error,omitempty"`
}

// validatePeriod 校验评估窗口
func validatePeriod(startDate, endDate string) *errors.AppError {
	if startDate == "" || endDate == "" {
		return errors.InvalidPeriod(startDate, endDate, "起止日期不能为空")
	}
	if !timeutil.ValidDate(startDate) {
		return errors.InvalidPeriod(startDate, endDate, "起始日期格式错误")
	}
	if !timeutil.ValidDate(endDate) {
		return errors.InvalidPeriod(startDate, endDate, "结束日期格式错误")
	}
	if endDate < startDate {
		return errors.InvalidPeriod(startDate, endDate, "结束日期早于起始日期")
	}
	return nil
}

// buildContext 从请求构造评估上下文
func buildContext(req *ComplianceRequest) *compliance.Context {
	limits := model.DefaultLegalLimits()
	if req.Limits != nil {
		limits = limits.Merge(*req.Limits)
	}

	ctx := compliance.NewContext(req.StartDate, req.EndDate, req.Employees, req.Shifts, limits)
	if len(req.Openings) > 0 {
		ctx.SetOpenings(req.Openings)
	}
	return ctx
}

// ComplianceCheckHandler 快速合规检查API
func ComplianceCheckHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req ComplianceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendJSONError(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if appErr := validatePeriod(req.StartDate, req.EndDate); appErr != nil {
		sendJSONError(w, appErr.Message, appErr.HTTPStatus)
		return
	}
	if issues := validator.ValidateSnapshot(req.Employees, req.Shifts); len(issues) > 0 {
		sendJSONIssues(w, issues)
		return
	}

	logger.Info().
		Str("org_id", req.OrgID).
		Str("period", req.StartDate+"/"+req.EndDate).
		Int("employees", len(req.Employees)).
		Int("shifts", len(req.Shifts)).
		Msg("接收快速合规检查请求")

	start := time.Now()
	ctx := buildContext(&req)
	checker := compliance.NewChecker(rules.Defaults(ctx.Limits)...)
	score := checker.QuickCheck(ctx)

	metrics.RecordComplianceReport("quick", true, time.Since(start))
	metrics.SetComplianceScore(req.OrgID, score.Global)

	sendJSON(w, CheckResponse{Success: true, Data: &score})
}

// ComplianceReportHandler 完整合规报告API
func ComplianceReportHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req ComplianceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendJSONError(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if appErr := validatePeriod(req.StartDate, req.EndDate); appErr != nil {
		sendJSONError(w, appErr.Message, appErr.HTTPStatus)
		return
	}
	if issues := validator.ValidateSnapshot(req.Employees, req.Shifts); len(issues) > 0 {
		sendJSONIssues(w, issues)
		return
	}

	logger.Info().
		Str("org_id", req.OrgID).
		Str("period", req.StartDate+"/"+req.EndDate).
		Int("employees", len(req.Employees)).
		Int("shifts", len(req.Shifts)).
		Msg("接收完整合规报告请求")

	start := time.Now()
	ctx := buildContext(&req)
	checker := compliance.NewChecker(rules.Defaults(ctx.Limits)...)
	report := checker.FullReport(ctx)

	for _, v := range report.Violations {
		metrics.RecordViolation(string(v.Rule), string(v.Severity))
	}
	metrics.RecordComplianceReport("full", true, time.Since(start))
	metrics.SetComplianceScore(req.OrgID, report.Score.Global)

	sendJSON(w, ReportResponse{Success: true, Data: report})
}
