package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/festflow/festflow-api/internal/api/handler/v1/request"
	"github.com/festflow/festflow-api/internal/api/handler/v1/response"
	"github.com/festflow/festflow-api/internal/domain"
	"github.com/festflow/festflow-api/internal/service"
)

var (
	errInvalidEventID = errors.New("invalid event id")
	errUpdateDenied   = errors.New("Not authorized to update this event")
	errDeleteDenied   = errors.New("Not authorized to delete this event")
)

type EventService interface {
	ListEvents(ctx context.Context, filter domain.EventFilter) ([]domain.Event, error)
	GetEvent(ctx context.Context, id uint) (domain.Event, error)
	CreateEvent(ctx context.Context, organizerID uint, fields domain.EventPatch) (domain.Event, error)
	UpdateEvent(ctx context.Context, id, callerID uint, patch domain.EventPatch) (domain.Event, error)
	DeleteEvent(ctx context.Context, id, callerID uint) error
}

type RegistrationService interface {
	Join(ctx context.Context, eventID, userID uint) (domain.Event, error)
	Leave(ctx context.Context, eventID, userID uint) (domain.Event, error)
}

type EventHandler struct {
	svc    EventService
	regSvc RegistrationService
}

func NewEventHandler(svc EventService, regSvc RegistrationService) *EventHandler {
	return &EventHandler{
		svc:    svc,
		regSvc: regSvc,
	}
}

// HandleListEvents godoc
// @Summary      List events
// @Description  Lists events by ascending date. Every filter is optional.
// @Tags         events
// @Produce      json
// @Param        category  query     string  false  "exact category"  Enums(Technical, Cultural, Sports, Workshop, Seminar, Competition, Other)
// @Param        status    query     string  false  "exact status"    Enums(upcoming, ongoing, completed, cancelled)
// @Param        search    query     string  false  "case-insensitive match on title or description"
// @Success      200  {object}  response.List[response.Event]
// @Failure      500  {object}  response.Err
// @Router       /events [get]
func (h *EventHandler) HandleListEvents(ctx *gin.Context) {
	var query request.EventQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	events, err := h.svc.ListEvents(ctx.Request.Context(), query.Filter())
	if err != nil {
		err = fmt.Errorf("v1.HandleListEvents -> h.svc.ListEvents -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.OKList(response.NewEvents(events)))
}

// HandleGetEvent godoc
// @Summary      Get an event
// @Description  Returns the event with its organizer and registrants resolved.
// @Tags         events
// @Produce      json
// @Param        id   path      int  true  "event id"
// @Success      200  {object}  response.Data[response.Event]
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events/{id} [get]
func (h *EventHandler) HandleGetEvent(ctx *gin.Context) {
	eventID, respErr := parseEventID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	event, err := h.svc.GetEvent(ctx.Request.Context(), eventID)
	if err != nil {
		response.RenderErr(ctx, eventErr(err, eventID, "v1.HandleGetEvent -> h.svc.GetEvent"))
		return
	}

	ctx.JSON(http.StatusOK, response.OK(response.NewEvent(event)))
}

// HandleCreateEvent godoc
// @Summary      Create an event
// @Description  The caller becomes the organizer. Any organizer in the body is ignored.
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        input  body      request.EventRequest  true  "event fields"
// @Success      201    {object}  response.Data[response.Event]
// @Failure      400    {object}  response.Err
// @Failure      401    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /events [post]
// @Security BearerAuth
func (h *EventHandler) HandleCreateEvent(ctx *gin.Context) {
	userID, respErr := callerID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var input request.EventRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	event, err := h.svc.CreateEvent(ctx.Request.Context(), userID, input.Patch())
	if err != nil {
		var vErr *service.ValidationError
		if errors.As(err, &vErr) {
			response.RenderErr(ctx, response.ErrBadRequest(vErr))
			return
		}

		err = fmt.Errorf("v1.HandleCreateEvent -> h.svc.CreateEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, response.OKWithMessage("Event created successfully", response.NewEvent(event)))
}

// HandleUpdateEvent godoc
// @Summary      Update an event
// @Description  Only the organizer may update. Omitted fields keep their value.
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        id     path      int                   true  "event id"
// @Param        input  body      request.EventRequest  true  "fields to change"
// @Success      200    {object}  response.Data[response.Event]
// @Failure      400    {object}  response.Err
// @Failure      401    {object}  response.Err
// @Failure      403    {object}  response.Err
// @Failure      404    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /events/{id} [put]
// @Security BearerAuth
func (h *EventHandler) HandleUpdateEvent(ctx *gin.Context) {
	userID, respErr := callerID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	eventID, respErr := parseEventID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var input request.EventRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	event, err := h.svc.UpdateEvent(ctx.Request.Context(), eventID, userID, input.Patch())
	if err != nil {
		var vErr *service.ValidationError
		switch {
		case errors.As(err, &vErr):
			response.RenderErr(ctx, response.ErrBadRequest(vErr))
		case errors.Is(err, service.ErrNotOrganizer):
			response.RenderErr(ctx, response.ErrPermissionDenied(errUpdateDenied))
		default:
			response.RenderErr(ctx, eventErr(err, eventID, "v1.HandleUpdateEvent -> h.svc.UpdateEvent"))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.OKWithMessage("Event updated successfully", response.NewEvent(event)))
}

// HandleDeleteEvent godoc
// @Summary      Delete an event
// @Description  Only the organizer may delete. Registrations go with the event.
// @Tags         events
// @Produce      json
// @Param        id   path      int  true  "event id"
// @Success      200  {object}  response.Data[response.Empty]
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events/{id} [delete]
// @Security BearerAuth
func (h *EventHandler) HandleDeleteEvent(ctx *gin.Context) {
	userID, respErr := callerID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	eventID, respErr := parseEventID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := h.svc.DeleteEvent(ctx.Request.Context(), eventID, userID); err != nil {
		if errors.Is(err, service.ErrNotOrganizer) {
			response.RenderErr(ctx, response.ErrPermissionDenied(errDeleteDenied))
			return
		}

		response.RenderErr(ctx, eventErr(err, eventID, "v1.HandleDeleteEvent -> h.svc.DeleteEvent"))
		return
	}

	ctx.JSON(http.StatusOK, response.OKWithMessage("Event deleted successfully", response.Empty{}))
}

// HandleJoinEvent godoc
// @Summary      Register for an event
// @Tags         registrations
// @Produce      json
// @Param        id   path      int  true  "event id"
// @Success      200  {object}  response.Data[response.Event]
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events/{id}/register [post]
// @Security BearerAuth
func (h *EventHandler) HandleJoinEvent(ctx *gin.Context) {
	userID, respErr := callerID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	eventID, respErr := parseEventID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	event, err := h.regSvc.Join(ctx.Request.Context(), eventID, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAlreadyRegistered):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrAlreadyRegistered))
		case errors.Is(err, service.ErrEventFull):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrEventFull))
		default:
			response.RenderErr(ctx, eventErr(err, eventID, "v1.HandleJoinEvent -> h.regSvc.Join"))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.OKWithMessage("Successfully registered for event", response.NewEvent(event)))
}

// HandleLeaveEvent godoc
// @Summary      Cancel a registration
// @Tags         registrations
// @Produce      json
// @Param        id   path      int  true  "event id"
// @Success      200  {object}  response.Data[response.Event]
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events/{id}/register [delete]
// @Security BearerAuth
func (h *EventHandler) HandleLeaveEvent(ctx *gin.Context) {
	userID, respErr := callerID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	eventID, respErr := parseEventID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	event, err := h.regSvc.Leave(ctx.Request.Context(), eventID, userID)
	if err != nil {
		if errors.Is(err, service.ErrNotRegistered) {
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrNotRegistered))
			return
		}

		response.RenderErr(ctx, eventErr(err, eventID, "v1.HandleLeaveEvent -> h.regSvc.Leave"))
		return
	}

	ctx.JSON(http.StatusOK, response.OKWithMessage("Successfully unregistered from event", response.NewEvent(event)))
}

func parseEventID(ctx *gin.Context) (uint, *response.Err) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, response.ErrBadRequest(errInvalidEventID)
	}

	return uint(id), nil
}

// eventErr maps a missing event to 404 and anything else to 500.
func eventErr(err error, eventID uint, where string) *response.Err {
	if errors.Is(err, service.ErrEventNotFound) {
		return response.ErrNotFound("event", "id", eventID)
	}

	return response.ErrInternalServerError(fmt.Errorf("%s -> %w", where, err))
}
