package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/anasbendaikha-blip/pharmaplanning-sub003/internal/metrics"
	"github.com/anasbendaikha-blip/pharmaplanning-sub003/internal/repository"
	"github.com/anasbendaikha-blip/pharmaplanning-sub003/pkg/compliance"
	"github.com/anasbendaikha-blip/pharmaplanning-sub003/pkg/compliance/rules"
	"github.com/anasbendaikha-blip/pharmaplanning-sub003/pkg/errors"
	"github.com/anasbendaikha-blip/pharmaplanning-sub003/pkg/logger"
	"github.com/anasbendaikha-blip/pharmaplanning-sub003/pkg/model"
	"github.com/anasbendaikha-blip/pharmaplanning-sub003/pkg/rotation"
)

// OrgHandler 数据库支撑的组织级API
// 快照由仓储层取出后交给纯计算引擎，引擎本身不触碰数据库
type OrgHandler struct {
	pharmacies *repository.PharmacyRepository
	employees  *repository.EmployeeRepository
	shifts     *repository.ShiftRepository
	rotations  *repository.RotationRepository
	limits     model.LegalLimits
	rotationCfg rotation.Config
}

// NewOrgHandler 创建组织级API处理器
func NewOrgHandler(
	pharmacies *repository.PharmacyRepository,
	employees *repository.EmployeeRepository,
	shifts *repository.ShiftRepository,
	rotations *repository.RotationRepository,
	limits model.LegalLimits,
	rotationCfg rotation.Config,
) *OrgHandler {
	return &OrgHandler{
		pharmacies:  pharmacies,
		employees:   employees,
		shifts:      shifts,
		rotations:   rotations,
		limits:      limits,
		rotationCfg: rotationCfg,
	}
}

// OrgPeriodRequest 组织级请求
type OrgPeriodRequest struct {
	OrgID     string `json:"org_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	AsOf      string `json:"as_of,omitempty"`
}

// resolveOrg 解析并校验组织
func (h *OrgHandler) resolveOrg(r *http.Request, req *OrgPeriodRequest) (uuid.UUID, *errors.AppError) {
	if appErr := validatePeriod(req.StartDate, req.EndDate); appErr != nil {
		return uuid.Nil, appErr
	}

	orgID, err := uuid.Parse(req.OrgID)
	if err != nil {
		return uuid.Nil, errors.InvalidInput("org_id", "不是合法的UUID")
	}

	pharmacy, err := h.pharmacies.GetByID(r.Context(), orgID)
	if err != nil {
		return uuid.Nil, errors.Wrap(err, errors.CodeDatabaseError, "查询药房失败")
	}
	if pharmacy == nil {
		return uuid.Nil, errors.UnknownOrganization(req.OrgID)
	}

	return orgID, nil
}

// ReportHandler 组织级完整合规报告API
// 快照从数据库取出：在职员工、窗口内班次、营业时间
func (h *OrgHandler) ReportHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req OrgPeriodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendJSONError(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	orgID, appErr := h.resolveOrg(r, &req)
	if appErr != nil {
		sendJSONError(w, appErr.Message, appErr.HTTPStatus)
		return
	}

	employees, err := h.employees.ListActive(r.Context(), orgID)
	if err != nil {
		sendJSONError(w, "查询员工失败", http.StatusInternalServerError)
		return
	}
	shifts, err := h.shifts.ListByPeriod(r.Context(), orgID, req.StartDate, req.EndDate)
	if err != nil {
		sendJSONError(w, "查询班次失败", http.StatusInternalServerError)
		return
	}
	openings, err := h.pharmacies.ListOpeningHours(r.Context(), orgID, req.StartDate, req.EndDate)
	if err != nil {
		sendJSONError(w, "查询营业时间失败", http.StatusInternalServerError)
		return
	}

	logger.Info().
		Str("org_id", req.OrgID).
		Int("employees", len(employees)).
		Int("shifts", len(shifts)).
		Msg("生成组织级合规报告")

	start := time.Now()
	ctx := compliance.NewContext(req.StartDate, req.EndDate, employees, shifts, h.limits)
	ctx.SetOpenings(openings)

	checker := compliance.NewChecker(rules.Defaults(h.limits)...)
	report := checker.FullReport(ctx)

	for _, v := range report.Violations {
		metrics.RecordViolation(string(v.Rule), string(v.Severity))
	}
	metrics.RecordComplianceReport("full", true, time.Since(start))
	metrics.SetComplianceScore(req.OrgID, report.Score.Global)

	sendJSON(w, ReportResponse{Success: true, Data: report})
}

// RotationHandler 组织级轮值生成API
// 节假日与值班历史从数据库取出，结果由调用方自行持久化
func (h *OrgHandler) RotationHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req OrgPeriodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendJSONError(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	orgID, appErr := h.resolveOrg(r, &req)
	if appErr != nil {
		metrics.RecordRotationRun(false)
		sendJSONError(w, appErr.Message, appErr.HTTPStatus)
		return
	}

	employees, err := h.employees.ListActive(r.Context(), orgID)
	if err != nil {
		sendJSONError(w, "查询员工失败", http.StatusInternalServerError)
		return
	}
	shifts, err := h.shifts.ListByPeriod(r.Context(), orgID, req.StartDate, req.EndDate)
	if err != nil {
		sendJSONError(w, "查询班次失败", http.StatusInternalServerError)
		return
	}
	history, err := h.rotations.ListHistory(r.Context(), orgID)
	if err != nil {
		sendJSONError(w, "查询值班历史失败", http.StatusInternalServerError)
		return
	}
	holidays, err := h.rotations.ListHolidays(r.Context(), req.StartDate, req.EndDate)
	if err != nil {
		sendJSONError(w, "查询节假日失败", http.StatusInternalServerError)
		return
	}

	cfg := h.rotationCfg
	cfg.StartDate = req.StartDate
	cfg.EndDate = req.EndDate
	cfg.Holidays = holidays

	logger.Info().
		Str("org_id", req.OrgID).
		Int("employees", len(employees)).
		Int("history", len(history)).
		Msg("生成组织级值班轮值")

	engine := rotation.NewEngine()
	result := engine.Generate(cfg, employees, shifts, history, resolveAsOf(req.AsOf))

	for _, c := range result.Conflicts {
		metrics.RecordRotationConflict(c.Category)
	}
	metrics.RecordRotationRun(true)

	fairness := rotation.AnalyzeFairness(result.Stats)
	metrics.SetRotationFairnessGini(req.OrgID, fairness.Gini)

	sendJSON(w, RotationResponse{Success: true, Data: result, Fairness: fairness})
}
