package endpoints

import (
	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/planner/internal/http/api"
	"github.com/Nixie-Tech-LLC/planner/internal/http/api/planner/packets"
	"github.com/Nixie-Tech-LLC/planner/internal/model"
	"github.com/Nixie-Tech-LLC/planner/internal/service"
)

type RecurringEventController struct{ svc *service.CalendarService }

func RecurringEventModule(svc *service.CalendarService) api.Module {
	ctl := &RecurringEventController{svc: svc}
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/recurring-events", ctl.listRecurringEvents)
		c.POST("/recurring-events", ctl.createRecurringEvent)
		c.DELETE("/recurring-events/:id", ctl.deleteRecurringEvent)
		c.PATCH("/recurring-events/:id/exclude", ctl.excludeInstance) // body: {date}
	})
}

// GET /api/recurring-events
func (r *RecurringEventController) listRecurringEvents(ctx *gin.Context) (any, *api.APIError) {
	recs, err := r.svc.ListRecurringEvents(ctx.Request.Context())
	if err != nil {
		return nil, apiError(err, "Recurring event")
	}
	out := make([]packets.RecurringEventResponse, 0, len(recs))
	for _, rec := range recs {
		out = append(out, packets.NewRecurringEventResponse(rec))
	}
	return out, nil
}

// POST /api/recurring-events
func (r *RecurringEventController) createRecurringEvent(ctx *gin.Context) (any, *api.APIError) {
	var req packets.CreateRecurringEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, api.BadRequest(err.Error())
	}

	rec, err := r.svc.CreateRecurringEvent(ctx.Request.Context(), model.RecurringEvent{
		Title:     req.Title,
		Color:     req.Color,
		GroupID:   req.GroupID,
		RuleStart: *req.RRuleStart,
		RuleEnd:   *req.RRuleEnd,
	})
	if err != nil {
		return nil, apiError(err, "Recurring event")
	}
	return api.Created(packets.NewRecurringEventResponse(rec)), nil
}

// DELETE /api/recurring-events/:id
func (r *RecurringEventController) deleteRecurringEvent(ctx *gin.Context) (any, *api.APIError) {
	if err := r.svc.DeleteRecurringEvent(ctx.Request.Context(), ctx.Param("id")); err != nil {
		return nil, apiError(err, "Recurring event")
	}
	return api.Message{Message: "Recurring event deleted successfully"}, nil
}

// PATCH /api/recurring-events/:id/exclude
func (r *RecurringEventController) excludeInstance(ctx *gin.Context) (any, *api.APIError) {
	var req packets.ExcludeInstanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, api.BadRequest("Date to exclude is required")
	}

	rec, err := r.svc.ExcludeInstance(ctx.Request.Context(), ctx.Param("id"), req.Date)
	if err != nil {
		return nil, apiError(err, "Recurring event")
	}
	return packets.NewRecurringEventResponse(rec), nil
}
