package handlers

import (
	"net/http"

	"turn_queue/internal/response"
	"turn_queue/internal/rollover"

	"github.com/gin-gonic/gin"
)

type RolloverRequest struct {
	Confirmation string `json:"confirmation" binding:"required" example:"I confirm the daily reset."`
	// ARCHIVE (default) or PURGE
	Mode string `json:"mode" example:"ARCHIVE"`
	// Defaults to today
	ServiceDay string `json:"serviceDay" example:"2026-10-17"`
}

type PurgeRequest struct {
	Confirmation string `json:"confirmation" binding:"required" example:"I confirm the daily reset."`
}

// RolloverHandler godoc
// @Summary		Run the daily rollover now
// @Description	Archives (or purges) the day's tickets, closes all sessions and restarts numbering
// @Tags			admin
// @Accept			json
// @Produce		json
// @Param			request	body		RolloverRequest			true	"Confirmation phrase and mode"
// @Security		BearerAuth
// @Success		200		{object}	rollover.Result
// @Failure		400		{object}	response.ErrorResponse	"CONFIRMATION_MISMATCH, INVALID_ROLLOVER_MODE, INVALID_SERVICE_DAY"
// @Failure		403		{object}	response.ErrorResponse	"ROLE_REQUIRED"
// @Router			/admin/rollover [post]
func (h *Handler) RolloverHandler(c *gin.Context) {
	var req RolloverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "VALIDATION_ERROR", "invalid request body", err)
		return
	}
	mode, err := rollover.ParseMode(req.Mode)
	if err != nil {
		response.Error(c, err)
		return
	}
	res, err := h.Rollover.RunManual(c.Request.Context(), req.Confirmation, mode, req.ServiceDay)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// PurgeNowHandler godoc
// @Summary		Delete every live ticket
// @Description	Purge without archiving. Sessions are closed and today's numbering restarts.
// @Tags			admin
// @Accept			json
// @Produce		json
// @Param			request	body		PurgeRequest			true	"Confirmation phrase"
// @Security		BearerAuth
// @Success		200		{object}	rollover.Result
// @Failure		400		{object}	response.ErrorResponse	"CONFIRMATION_MISMATCH"
// @Failure		403		{object}	response.ErrorResponse	"ROLE_REQUIRED"
// @Router			/admin/turns/purge-now [post]
func (h *Handler) PurgeNowHandler(c *gin.Context) {
	var req PurgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "VALIDATION_ERROR", "invalid request body", err)
		return
	}
	res, err := h.Rollover.RunManual(c.Request.Context(), req.Confirmation, rollover.ModePurge, "")
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GetLastRolloverHandler godoc
// @Summary		Last rollover
// @Tags			admin
// @Produce		json
// @Security		BearerAuth
// @Success		200	{object}	models.SystemState
// @Failure		404	{object}	response.ErrorResponse	"NO_ROLLOVER"
// @Router			/admin/rollover/last [get]
func (h *Handler) GetLastRolloverHandler(c *gin.Context) {
	state, err := h.Rollover.LastRun(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	if state == nil {
		c.JSON(http.StatusNotFound, response.ErrorResponse{Code: "NO_ROLLOVER", Message: "no rollover has run yet"})
		return
	}
	c.JSON(http.StatusOK, state)
}

// GetOperatorStatsHandler godoc
// @Summary		Operator statistics
// @Description	Archived per-operator aggregates of a service day
// @Tags			admin
// @Produce		json
// @Param			day	query	string	false	"YYYY-MM-DD, defaults to today"
// @Security		BearerAuth
// @Success		200	{array}		models.OperatorDailyAggregate
// @Failure		400	{object}	response.ErrorResponse	"INVALID_SERVICE_DAY"
// @Router			/admin/stats/operators [get]
func (h *Handler) GetOperatorStatsHandler(c *gin.Context) {
	day := c.DefaultQuery("day", h.Rollover.Today())
	stats, err := h.Rollover.OperatorStats(c.Request.Context(), day)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
