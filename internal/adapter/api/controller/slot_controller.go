package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/parrillasur/reservabot/internal/adapter/api/dto"
	"github.com/parrillasur/reservabot/internal/domain/availability"
	"github.com/parrillasur/reservabot/pkg/rules"
)

// SlotController gestiona la administración de slots de disponibilidad
type SlotController struct {
	slots availability.Repository
	rules *rules.Rules
}

// NewSlotController crea una nueva instancia de SlotController
func NewSlotController(slots availability.Repository, r *rules.Rules) *SlotController {
	return &SlotController{
		slots: slots,
		rules: r,
	}
}

// Create crea un nuevo slot de disponibilidad
// @Summary Crea un slot
// @Description Agrega una combinación de fecha, hora y sector reservable
// @Tags slots
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param slot body dto.SlotRequest true "Datos del slot"
// @Success 201 {object} dto.SlotResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /slots [post]
func (c *SlotController) Create(ctx *gin.Context) {
	var request dto.SlotRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "requisición inválida", err.Error()))
		return
	}

	if !c.rules.IsValidSector(request.Sector) {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "sector inválido", request.Sector))
		return
	}

	slot := &availability.Slot{
		Date:     request.Date,
		Time:     request.Time,
		Sector:   request.Sector,
		Capacity: request.Capacity,
	}

	if err := c.slots.Create(ctx, slot); err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "error al crear slot", err.Error()))
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToSlotResponse(*slot))
}

// List lista los slots de una fecha
// @Summary Lista los slots de una fecha
// @Description Retorna todos los slots de la fecha, reservados incluidos
// @Tags slots
// @Produce json
// @Security BearerAuth
// @Param date query string true "Fecha en formato YYYY-MM-DD"
// @Success 200 {array} dto.SlotResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /slots [get]
func (c *SlotController) List(ctx *gin.Context) {
	date := ctx.Query("date")
	if date == "" {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "falta el parámetro date", ""))
		return
	}

	slots, err := c.slots.ListByDate(ctx, date)
	if err != nil {
		if errors.Is(err, availability.ErrSlotNotFound) {
			ctx.JSON(http.StatusOK, []dto.SlotResponse{})
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "error al listar slots", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSlotResponses(slots))
}

// Summary resume la ocupación de una fecha
// @Summary Resume la ocupación de una fecha
// @Description Retorna totales de slots libres y reservados de la fecha
// @Tags slots
// @Produce json
// @Security BearerAuth
// @Param date query string true "Fecha en formato YYYY-MM-DD"
// @Success 200 {object} dto.DaySummaryResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /slots/summary [get]
func (c *SlotController) Summary(ctx *gin.Context) {
	date := ctx.Query("date")
	if date == "" {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "falta el parámetro date", ""))
		return
	}

	slots, err := c.slots.ListByDate(ctx, date)
	if err != nil && !errors.Is(err, availability.ErrSlotNotFound) {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "error al resumir la fecha", err.Error()))
		return
	}

	summary := dto.DaySummaryResponse{
		Date:  date,
		Total: len(slots),
		Slots: dto.ToSlotResponses(slots),
	}
	for _, s := range slots {
		if s.Free() {
			summary.Free++
		} else {
			summary.Reserved++
		}
	}

	ctx.JSON(http.StatusOK, summary)
}
