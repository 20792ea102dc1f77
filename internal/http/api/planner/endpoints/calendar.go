package endpoints

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/planner/internal/http/api"
	"github.com/Nixie-Tech-LLC/planner/internal/http/api/planner/packets"
	"github.com/Nixie-Tech-LLC/planner/internal/publish"
	"github.com/Nixie-Tech-LLC/planner/internal/service"
)

const icsContentType = "text/calendar; charset=utf-8"

type CalendarController struct {
	svc       *service.CalendarService
	publisher *publish.Publisher
}

// CalendarModule serves the merged window and the iCalendar feed. publisher
// may be nil, in which case publishing answers 503.
func CalendarModule(svc *service.CalendarService, publisher *publish.Publisher) api.Module {
	ctl := &CalendarController{svc: svc, publisher: publisher}
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/calendar", ctl.window) // ?from=YYYY-MM-DD&to=YYYY-MM-DD
		c.GET("/calendar.ics", ctl.exportICS)
		c.POST("/calendar/publish", ctl.publish)
	})
}

// GET /api/calendar
func (c *CalendarController) window(ctx *gin.Context) (any, *api.APIError) {
	var q packets.CalendarQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		return nil, api.BadRequest("from and to must be dates in YYYY-MM-DD form")
	}

	occurrences, err := c.svc.Window(ctx.Request.Context(), q.From, q.To)
	if err != nil {
		return nil, apiError(err, "Calendar")
	}
	return occurrences, nil
}

// GET /api/calendar.ics
func (c *CalendarController) exportICS(ctx *gin.Context) (any, *api.APIError) {
	doc, err := c.svc.ExportICS(ctx.Request.Context())
	if err != nil {
		return nil, apiError(err, "Calendar")
	}
	return api.Data{ContentType: icsContentType, Body: []byte(doc)}, nil
}

// POST /api/calendar/publish
func (c *CalendarController) publish(ctx *gin.Context) (any, *api.APIError) {
	if c.publisher == nil {
		return nil, &api.APIError{Code: http.StatusServiceUnavailable, Message: "feed publication is not configured"}
	}
	url, err := c.publisher.Publish(ctx.Request.Context())
	if err != nil {
		return nil, apiError(err, "Calendar")
	}
	return packets.PublishResponse{URL: url}, nil
}
