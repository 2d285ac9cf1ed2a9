package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/anasbendaikha-blip/pharmaplanning-sub003/internal/metrics"
	"github.com/anasbendaikha-blip/pharmaplanning-sub003/pkg/errors"
	"github.com/anasbendaikha-blip/pharmaplanning-sub003/pkg/logger"
	"github.com/anasbendaikha-blip/pharmaplanning-sub003/pkg/model"
	"github.com/anasbendaikha-blip/pharmaplanning-sub003/pkg/rotation"
	"github.com/anasbendaikha-blip/pharmaplanning-sub003/pkg/timeutil"
	"github.com/anasbendaikha-blip/pharmaplanning-sub003/pkg/validator"
)

// RotationRequest 轮值生成请求
// as_of 缺省取当天，统计的最近/下次值班以其为参照
type RotationRequest struct {
	OrgID     string                `json:"org_id"`
	Config    *rotation.Config      `json:"config"`
	Employees []*model.Employee     `json:"employees"`
	Shifts    []*model.Shift        `json:"shifts,omitempty"`
	History   []rotation.Assignment `json:"history,omitempty"`
	AsOf      string                `json:"as_of,omitempty"`
}

// RotationResponse 轮值生成响应
type RotationResponse struct {
	Success  bool                     `json:"success"`
	Data     *rotation.Result         `json:"data,omitempty"`
	Fairness rotation.FairnessMetrics `json:"fairness"`
	Error    string                   `json:"error,omitempty"`
}

// StatsRequest 值班统计请求
type StatsRequest struct {
	OrgID       string                `json:"org_id"`
	Employees   []*model.Employee     `json:"employees"`
	Assignments []rotation.Assignment `json:"assignments"`
	AsOf        string                `json:"as_of,omitempty"`
}

// StatsResponse 值班统计响应
type StatsResponse struct {
	Success  bool                       `json:"success"`
	Data     []rotation.PharmacienStats `json:"data,omitempty"`
	Fairness rotation.FairnessMetrics   `json:"fairness"`
	Error    string                     `json:"error,omitempty"`
}

// validateRotationConfig 校验轮值配置
func validateRotationConfig(cfg *rotation.Config) *errors.AppError {
	if cfg == nil {
		return errors.InvalidRotationConfig("缺少轮值配置")
	}
	if appErr := validatePeriod(cfg.StartDate, cfg.EndDate); appErr != nil {
		return appErr
	}
	for _, h := range cfg.Holidays {
		if !timeutil.ValidDate(h) {
			return errors.InvalidRotationConfig("节假日日期格式错误: " + h)
		}
	}
	return nil
}

// resolveAsOf 统计参照日期，缺省为当天
func resolveAsOf(asOf string) string {
	if asOf == "" {
		return time.Now().Format(timeutil.DateLayout)
	}
	return asOf
}

// RotationGenerateHandler 轮值生成API
func RotationGenerateHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req RotationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendJSONError(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if appErr := validateRotationConfig(req.Config); appErr != nil {
		metrics.RecordRotationRun(false)
		sendJSONError(w, appErr.Message, appErr.HTTPStatus)
		return
	}
	if issues := validator.ValidateSnapshot(req.Employees, req.Shifts); len(issues) > 0 {
		metrics.RecordRotationRun(false)
		sendJSONIssues(w, issues)
		return
	}

	logger.Info().
		Str("org_id", req.OrgID).
		Str("period", req.Config.StartDate+"/"+req.Config.EndDate).
		Int("employees", len(req.Employees)).
		Int("history", len(req.History)).
		Msg("接收轮值生成请求")

	engine := rotation.NewEngine()
	result := engine.Generate(*req.Config, req.Employees, req.Shifts, req.History, resolveAsOf(req.AsOf))

	for _, c := range result.Conflicts {
		metrics.RecordRotationConflict(c.Category)
	}
	metrics.RecordRotationRun(true)

	fairness := rotation.AnalyzeFairness(result.Stats)
	metrics.SetRotationFairnessGini(req.OrgID, fairness.Gini)

	sendJSON(w, RotationResponse{Success: true, Data: result, Fairness: fairness})
}

// RotationStatsHandler 值班统计API
func RotationStatsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req StatsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendJSONError(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	var eligible []*model.Employee
	for _, e := range req.Employees {
		if e.EligibleForGuard() {
			eligible = append(eligible, e)
		}
	}

	stats := rotation.ComputeStats(eligible, req.Assignments, resolveAsOf(req.AsOf))
	sendJSON(w, StatsResponse{Success: true, Data: stats, Fairness: rotation.AnalyzeFairness(stats)})
}
