package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/itamarh/voicedca/internal/models"
	"github.com/itamarh/voicedca/internal/services"
)

// defaultIntervalDays is the recurring deposit interval when the IVR flow
// does not send one.
const defaultIntervalDays = 30

// PipelineRunner runs one voice request to a terminal outcome.
type PipelineRunner interface {
	Process(ctx context.Context, req services.PipelineRequest) *models.Outcome
}

// IVRHandler handles the inbound telephony webhook.
type IVRHandler struct {
	pipeline    PipelineRunner
	responseExt string
	logger      *logrus.Logger
}

// NewIVRHandler creates a new IVR webhook handler.
func NewIVRHandler(pipeline PipelineRunner, responseExt string, logger *logrus.Logger) *IVRHandler {
	return &IVRHandler{
		pipeline:    pipeline,
		responseExt: responseExt,
		logger:      logger,
	}
}

// IVRSuccessResponse is the JSON body returned for a successful query.
type IVRSuccessResponse struct {
	Result         *models.SimulationResult `json:"result"`
	RecognizedText string                   `json:"recognized_text"`
	Ticker         string                   `json:"ticker"`
	DisplayName    string                   `json:"display_name"`
	Audio          *string                  `json:"audio"`
	NextExt        string                   `json:"next_ext"`
}

// IVRErrorResponse is the JSON body returned for every non-success outcome.
// Audio and NextExt appear only when a spoken error was delivered.
type IVRErrorResponse struct {
	Error   string `json:"error"`
	Audio   string `json:"audio,omitempty"`
	NextExt string `json:"next_ext,omitempty"`
}

// ProcessInvestmentQuery handles GET /ivr. Query parameters come from the
// Yemot API bridge: ApiPhone (optional callback), stock_name (recording
// path), Starting_date, Starting_amount, Monthly_amount and throb (interval
// days). Starting_date falls back to the misspelled Startig_date key because
// the deployed IVR flow still sends the typo.
func (h *IVRHandler) ProcessInvestmentQuery(c *gin.Context) {
	startDate := c.Query("Starting_date")
	if startDate == "" {
		startDate = c.Query("Startig_date")
	}

	req := services.PipelineRequest{
		CallbackPhone: strings.TrimSpace(c.Query("ApiPhone")),
		RecordingPath: c.Query("stock_name"),
		StartDate:     startDate,
		StartAmount:   parseFloat(c.Query("Starting_amount"), 0),
		MonthlyAmount: parseFloat(c.Query("Monthly_amount"), 0),
		IntervalDays:  parseInt(c.Query("throb"), defaultIntervalDays),
	}

	h.logger.WithFields(logrus.Fields{
		"recording":     req.RecordingPath,
		"start_date":    req.StartDate,
		"interval_days": req.IntervalDays,
	}).Info("investment query received")

	outcome := h.pipeline.Process(c.Request.Context(), req)
	c.JSON(h.statusFor(outcome.Kind), h.bodyFor(outcome))
}

// statusFor maps a terminal outcome to an HTTP status. Recognition and
// matching misses are expected occurrences, not faults, so they return 200
// like a success; only caller-input and transport problems map to 4xx/5xx.
func (h *IVRHandler) statusFor(kind models.OutcomeKind) int {
	switch kind {
	case models.OutcomeMissingParameters:
		return http.StatusBadRequest
	case models.OutcomeDownloadFailed:
		return http.StatusInternalServerError
	default:
		return http.StatusOK
	}
}

func (h *IVRHandler) bodyFor(outcome *models.Outcome) any {
	if outcome.IsSuccess() {
		var audio *string
		if outcome.AudioPath != "" {
			audio = &outcome.AudioPath
		}
		return IVRSuccessResponse{
			Result:         outcome.Result,
			RecognizedText: outcome.RecognizedText,
			Ticker:         outcome.Ticker,
			DisplayName:    outcome.DisplayName,
			Audio:          audio,
			NextExt:        h.responseExt,
		}
	}

	body := IVRErrorResponse{Error: outcome.ErrorMessage}
	if outcome.AudioPath != "" {
		body.Audio = outcome.AudioPath
		body.NextExt = h.responseExt
	}
	return body
}

func parseFloat(s string, fallback float64) float64 {
	if s == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fallback
	}
	return v
}

func parseInt(s string, fallback int) int {
	if s == "" {
		return fallback
	}
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fallback
	}
	return v
}
