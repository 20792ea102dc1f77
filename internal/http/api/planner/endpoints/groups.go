package endpoints

import (
	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/planner/internal/db"
	"github.com/Nixie-Tech-LLC/planner/internal/http/api"
	"github.com/Nixie-Tech-LLC/planner/internal/http/api/planner/packets"
	"github.com/Nixie-Tech-LLC/planner/internal/model"
	"github.com/Nixie-Tech-LLC/planner/internal/service"
)

type GroupController struct{ svc *service.CalendarService }

func GroupModule(svc *service.CalendarService) api.Module {
	ctl := &GroupController{svc: svc}
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/groups", ctl.listGroups)
		c.POST("/groups", ctl.createGroup)
		c.PUT("/groups/:id", ctl.updateGroup)
		c.DELETE("/groups/:id", ctl.deleteGroup)
	})
}

// GET /api/groups
func (g *GroupController) listGroups(ctx *gin.Context) (any, *api.APIError) {
	groups, err := g.svc.ListGroups(ctx.Request.Context())
	if err != nil {
		return nil, apiError(err, "Group")
	}
	out := make([]packets.GroupResponse, 0, len(groups))
	for _, gr := range groups {
		out = append(out, packets.NewGroupResponse(gr))
	}
	return out, nil
}

// POST /api/groups
func (g *GroupController) createGroup(ctx *gin.Context) (any, *api.APIError) {
	var req packets.CreateGroupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, api.BadRequest(err.Error())
	}
	grp, err := g.svc.CreateGroup(ctx.Request.Context(), model.Group{Name: req.Name, Color: req.Color})
	if err != nil {
		return nil, apiError(err, "Group")
	}
	return api.Created(packets.NewGroupResponse(grp)), nil
}

// PUT /api/groups/:id
func (g *GroupController) updateGroup(ctx *gin.Context) (any, *api.APIError) {
	var req packets.UpdateGroupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, api.BadRequest(err.Error())
	}
	grp, err := g.svc.UpdateGroup(ctx.Request.Context(), ctx.Param("id"), db.GroupPatch{
		Name:  req.Name,
		Color: req.Color,
	})
	if err != nil {
		return nil, apiError(err, "Group")
	}
	return packets.NewGroupResponse(grp), nil
}

// DELETE /api/groups/:id
func (g *GroupController) deleteGroup(ctx *gin.Context) (any, *api.APIError) {
	if err := g.svc.DeleteGroup(ctx.Request.Context(), ctx.Param("id")); err != nil {
		return nil, apiError(err, "Group")
	}
	return api.Message{Message: "Group deleted successfully"}, nil
}
