package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/damoang/rokn-storefront/internal/common"
	"github.com/damoang/rokn-storefront/internal/plugins/storefront/domain"
	"github.com/damoang/rokn-storefront/internal/plugins/storefront/service"
	"github.com/damoang/rokn-storefront/pkg/ginutil"
)

const maxImageBytes = 5 << 20

// AdvisorHandler 레시피/상담 어드바이저 HTTP 핸들러
type AdvisorHandler struct {
	storefront *service.StorefrontService
	advisor    *service.AdvisorService
	wait       time.Duration
}

// NewAdvisorHandler 생성자. wait는 응답을 붙잡고 기다리는 최대 시간.
func NewAdvisorHandler(storefront *service.StorefrontService, adv *service.AdvisorService, wait time.Duration) *AdvisorHandler {
	return &AdvisorHandler{storefront: storefront, advisor: adv, wait: wait}
}

// SuggestRecipe godoc
// @Summary      상품 레시피 제안
// @Description  같은 세션에서 더 최근 요청이 있으면 이 응답은 상태에 반영되지 않는다 (applied=false)
// @Tags         storefront-advisor
// @Produce      json
// @Param        productId  path      string  true   "상품 ID"
// @Param        wait       query     bool    false  "false면 바로 202 반환"
// @Success      200  {object}  common.APIResponse{data=domain.AdvisorReply}
// @Success      202  {object}  common.APIResponse{data=domain.AdvisorReply}
// @Failure      404  {object}  common.APIResponse
// @Failure      429  {object}  common.APIResponse
// @Router       /storefront/advisor/recipe/{productId} [post]
func (h *AdvisorHandler) SuggestRecipe(c *gin.Context) {
	_, sess := clientSession(c, h.storefront)
	ticket, err := h.advisor.SuggestRecipe(c.Request.Context(), sess, c.Param("productId"))
	if err != nil {
		respondError(c, "Failed to request recipe", err)
		return
	}
	h.respond(c, ticket)
}

// Chat godoc
// @Summary      일반 상담
// @Tags         storefront-advisor
// @Accept       json
// @Produce      json
// @Param        request  body      domain.ChatRequest  true  "질문"
// @Success      200  {object}  common.APIResponse{data=domain.AdvisorReply}
// @Success      202  {object}  common.APIResponse{data=domain.AdvisorReply}
// @Failure      400  {object}  common.APIResponse
// @Router       /storefront/advisor/chat [post]
func (h *AdvisorHandler) Chat(c *gin.Context) {
	var req domain.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	message := strings.TrimSpace(req.Message)
	if message == "" {
		common.ErrorResponse(c, http.StatusBadRequest, "Message is required", nil)
		return
	}
	_, sess := clientSession(c, h.storefront)
	h.respond(c, h.advisor.Chat(sess, message))
}

// AnalyzeFridge godoc
// @Summary      냉장고 사진 분석
// @Tags         storefront-advisor
// @Accept       mpfd
// @Produce      json
// @Param        image  formData  file  true  "이미지 (최대 5MB)"
// @Success      200  {object}  common.APIResponse{data=domain.AdvisorReply}
// @Success      202  {object}  common.APIResponse{data=domain.AdvisorReply}
// @Failure      400  {object}  common.APIResponse
// @Router       /storefront/advisor/fridge [post]
func (h *AdvisorHandler) AnalyzeFridge(c *gin.Context) {
	data, mimeType, err := readImage(c)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid image", err)
		return
	}
	_, sess := clientSession(c, h.storefront)
	h.respond(c, h.advisor.AnalyzeFridge(sess, data, mimeType))
}

// GenerateDescription godoc
// @Summary      상품 설명 생성 (관리자)
// @Description  실패 시 빈 문자열
// @Tags         storefront-admin
// @Accept       json
// @Produce      json
// @Param        request  body      domain.DescriptionRequest  true  "상품명/브랜드"
// @Success      200  {object}  common.APIResponse{data=domain.AdvisorReply}
// @Failure      400  {object}  common.APIResponse
// @Router       /storefront/admin/advisor/description [post]
func (h *AdvisorHandler) GenerateDescription(c *gin.Context) {
	var req domain.DescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	_, sess := clientSession(c, h.storefront)
	h.respond(c, h.advisor.Describe(sess, strings.TrimSpace(req.Name), strings.TrimSpace(req.Brand)))
}

// GetSite godoc
// @Summary      어드바이저 사이트 상태
// @Tags         storefront-advisor
// @Produce      json
// @Param        site  path      string  true  "recipe | chat | fridge | description"
// @Success      200  {object}  common.APIResponse{data=domain.SiteState}
// @Failure      400  {object}  common.APIResponse
// @Router       /storefront/advisor/{site} [get]
func (h *AdvisorHandler) GetSite(c *gin.Context) {
	site := domain.AdvisorSite(c.Param("site"))
	if !site.Valid() {
		common.ErrorResponse(c, http.StatusBadRequest, "Unknown advisor site", nil)
		return
	}
	_, sess := clientSession(c, h.storefront)
	common.SuccessResponse(c, h.advisor.State(sess, site), nil)
}

// respond wait=false이거나 제한 시간 안에 끝나지 않으면 202와 요청 번호를 돌려준다
func (h *AdvisorHandler) respond(c *gin.Context, ticket *service.AdviceTicket) {
	pending := domain.AdvisorReply{Site: ticket.Site, Seq: ticket.Seq}
	if !ginutil.QueryBool(c, "wait", true) {
		c.JSON(http.StatusAccepted, common.APIResponse{Data: pending})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.wait)
	defer cancel()
	reply, done := ticket.Wait(ctx)
	if !done {
		c.JSON(http.StatusAccepted, common.APIResponse{Data: pending})
		return
	}
	common.SuccessResponse(c, reply, nil)
}

// readImage multipart "image" 파일을 읽고 MIME 타입을 판별한다
func readImage(c *gin.Context) ([]byte, string, error) {
	fh, err := c.FormFile("image")
	if err != nil {
		return nil, "", err
	}
	if fh.Size > maxImageBytes {
		return nil, "", errors.New("image too large")
	}
	f, err := fh.Open()
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxImageBytes+1))
	if err != nil {
		return nil, "", err
	}
	if len(data) == 0 {
		return nil, "", errors.New("empty image")
	}
	if len(data) > maxImageBytes {
		return nil, "", errors.New("image too large")
	}

	mimeType := http.DetectContentType(data)
	if !strings.HasPrefix(mimeType, "image/") {
		return nil, "", errors.New("unsupported content type " + mimeType)
	}
	return data, mimeType, nil
}
