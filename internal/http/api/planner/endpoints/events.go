package endpoints

import (
	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/planner/internal/http/api"
	"github.com/Nixie-Tech-LLC/planner/internal/http/api/planner/packets"
	"github.com/Nixie-Tech-LLC/planner/internal/model"
	"github.com/Nixie-Tech-LLC/planner/internal/service"
)

type EventController struct{ svc *service.CalendarService }

func EventModule(svc *service.CalendarService) api.Module {
	ctl := &EventController{svc: svc}
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/events", ctl.listEvents)
		c.POST("/events", ctl.createEvent)
		c.DELETE("/events/:id", ctl.deleteEvent)
	})
}

// GET /api/events
func (e *EventController) listEvents(ctx *gin.Context) (any, *api.APIError) {
	events, err := e.svc.ListEvents(ctx.Request.Context())
	if err != nil {
		return nil, apiError(err, "Event")
	}
	out := make([]packets.EventResponse, 0, len(events))
	for _, ev := range events {
		out = append(out, packets.NewEventResponse(ev))
	}
	return out, nil
}

// POST /api/events
func (e *EventController) createEvent(ctx *gin.Context) (any, *api.APIError) {
	var req packets.CreateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, api.BadRequest(err.Error())
	}

	ev, err := e.svc.CreateEvent(ctx.Request.Context(), model.Event{
		Title:   req.Title,
		Start:   req.Start,
		End:     req.End,
		Color:   req.Color,
		GroupID: req.GroupID,
	})
	if err != nil {
		return nil, apiError(err, "Event")
	}
	return api.Created(packets.NewEventResponse(ev)), nil
}

// DELETE /api/events/:id
func (e *EventController) deleteEvent(ctx *gin.Context) (any, *api.APIError) {
	if err := e.svc.DeleteEvent(ctx.Request.Context(), ctx.Param("id")); err != nil {
		return nil, apiError(err, "Event")
	}
	return api.Message{Message: "Event deleted successfully"}, nil
}
