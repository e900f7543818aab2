package api_router

import (
	"github.com/zachlandes/2ml-crm/internal/app"
	"github.com/zachlandes/2ml-crm/internal/dto"
	"github.com/zachlandes/2ml-crm/pkg/code"
	apperrors "github.com/zachlandes/2ml-crm/pkg/errors"

	"github.com/gin-gonic/gin"
)

// PipelineHandler 商机与推荐 API 路由处理器
type PipelineHandler struct {
	*Handler
}

// NewPipelineHandler 创建 PipelineHandler 实例
func NewPipelineHandler(a *app.App) *PipelineHandler {
	return &PipelineHandler{Handler: NewHandler(a)}
}

// ListOpportunities 获取联系人的商机
// @Router /api/connections/{id}/opportunities [get]
func (h *PipelineHandler) ListOpportunities(c *gin.Context) {
	list, err := h.App.PipelineService.ListOpportunities(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "PipelineHandler.ListOpportunities", err)
		return
	}
	ok(c, gin.H{"opportunities": dto.NewOpportunityDTOs(list)})
}

// CreateOpportunity 创建商机
// @Router /api/connections/{id}/opportunities [post]
func (h *PipelineHandler) CreateOpportunity(c *gin.Context) {
	params := &dto.OpportunityCreateRequest{}
	if !h.bind(c, "PipelineHandler.CreateOpportunity", params) {
		return
	}
	o, err := params.ToDomain(c.Param("id"))
	if err != nil {
		apperrors.ErrorResponse(c, code.ErrorInvalidParams.WithDetails("expectedCloseDate: "+err.Error()))
		return
	}
	created, err := h.App.PipelineService.CreateOpportunity(c.Request.Context(), o)
	if err != nil {
		h.fail(c, "PipelineHandler.CreateOpportunity", err)
		return
	}
	ok(c, gin.H{"opportunity": dto.NewOpportunityDTO(created)})
}

// UpdateOpportunity 部分更新商机
// @Router /api/opportunities/update [put]
func (h *PipelineHandler) UpdateOpportunity(c *gin.Context) {
	params := &dto.OpportunityUpdateRequest{}
	if !h.bind(c, "PipelineHandler.UpdateOpportunity", params) {
		return
	}
	u, err := params.Updates.ToDomain()
	if err != nil {
		apperrors.ErrorResponse(c, code.ErrorInvalidParams.WithDetails("expectedCloseDate: "+err.Error()))
		return
	}
	o, err := h.App.PipelineService.UpdateOpportunity(c.Request.Context(), params.ID, u)
	if err != nil {
		h.fail(c, "PipelineHandler.UpdateOpportunity", err)
		return
	}
	ok(c, gin.H{"opportunity": dto.NewOpportunityDTO(o)})
}

// DeleteOpportunity 删除商机
// @Router /api/opportunities/delete [delete]
func (h *PipelineHandler) DeleteOpportunity(c *gin.Context) {
	params := &dto.IDRequest{}
	if !h.bind(c, "PipelineHandler.DeleteOpportunity", params) {
		return
	}
	if err := h.App.PipelineService.DeleteOpportunity(c.Request.Context(), params.ID); err != nil {
		h.fail(c, "PipelineHandler.DeleteOpportunity", err)
		return
	}
	ok(c, nil)
}

// ListReferrals 获取联系人的推荐
// @Router /api/connections/{id}/referrals [get]
func (h *PipelineHandler) ListReferrals(c *gin.Context) {
	list, err := h.App.PipelineService.ListReferrals(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "PipelineHandler.ListReferrals", err)
		return
	}
	ok(c, gin.H{"referrals": dto.NewReferralDTOs(list)})
}

// CreateReferral 创建推荐
// @Router /api/connections/{id}/referrals [post]
func (h *PipelineHandler) CreateReferral(c *gin.Context) {
	params := &dto.ReferralCreateRequest{}
	if !h.bind(c, "PipelineHandler.CreateReferral", params) {
		return
	}
	r, err := h.App.PipelineService.CreateReferral(c.Request.Context(), params.ToDomain(c.Param("id")))
	if err != nil {
		h.fail(c, "PipelineHandler.CreateReferral", err)
		return
	}
	ok(c, gin.H{"referral": dto.NewReferralDTO(r)})
}
