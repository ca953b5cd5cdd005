package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/damoang/rokn-storefront/internal/common"
	"github.com/damoang/rokn-storefront/internal/middleware"
	"github.com/damoang/rokn-storefront/internal/plugins/storefront/domain"
	"github.com/damoang/rokn-storefront/internal/plugins/storefront/service"
)

// SessionHandler 세션(즐겨찾기, 테마, 알림) HTTP 핸들러
type SessionHandler struct {
	storefront *service.StorefrontService
}

// NewSessionHandler 생성자
func NewSessionHandler(storefront *service.StorefrontService) *SessionHandler {
	return &SessionHandler{storefront: storefront}
}

// GetSession godoc
// @Summary      세션 요약
// @Description  포인트 잔액, 테마, 언어, 장바구니/즐겨찾기 개수
// @Tags         storefront-session
// @Produce      json
// @Success      200  {object}  common.APIResponse{data=domain.SessionView}
// @Router       /storefront/session [get]
func (h *SessionHandler) GetSession(c *gin.Context) {
	_, sess := clientSession(c, h.storefront)
	common.SuccessResponse(c, sess.View(), nil)
}

// SetTheme godoc
// @Summary      테마 변경
// @Tags         storefront-session
// @Accept       json
// @Produce      json
// @Param        request  body      domain.ThemeRequest  true  "light | dark"
// @Success      200  {object}  common.APIResponse{data=domain.SessionView}
// @Failure      400  {object}  common.APIResponse
// @Router       /storefront/session/theme [put]
func (h *SessionHandler) SetTheme(c *gin.Context) {
	var req domain.ThemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	view, err := h.storefront.SetTheme(c.Request.Context(), middleware.GetSessionID(c), req.Theme)
	if err != nil {
		respondError(c, "Invalid theme", err)
		return
	}
	common.SuccessResponse(c, view, nil)
}

// Notifications godoc
// @Summary      알림 가져오기
// @Description  쌓인 토스트 알림을 반환하고 비운다
// @Tags         storefront-session
// @Produce      json
// @Success      200  {object}  common.APIResponse{data=[]domain.Notification}
// @Router       /storefront/session/notifications [get]
func (h *SessionHandler) Notifications(c *gin.Context) {
	common.SuccessResponse(c, h.storefront.Notifications(middleware.GetSessionID(c)), nil)
}

// ListFavorites godoc
// @Summary      즐겨찾기 목록
// @Description  현재 카탈로그와 조인한 목록. 삭제된 상품은 보이지 않는다.
// @Tags         storefront-favorites
// @Produce      json
// @Success      200  {object}  common.APIResponse{data=[]domain.ProductResponse}
// @Router       /storefront/favorites [get]
func (h *SessionHandler) ListFavorites(c *gin.Context) {
	products, err := h.storefront.Favorites(c.Request.Context(), middleware.GetSessionID(c))
	if err != nil {
		respondError(c, "Failed to fetch favorites", err)
		return
	}
	common.SuccessResponse(c, products, &common.Meta{Total: int64(len(products))})
}

// ToggleFavorite godoc
// @Summary      즐겨찾기 토글
// @Tags         storefront-favorites
// @Produce      json
// @Param        productId  path      string  true  "상품 ID"
// @Success      200  {object}  common.APIResponse
// @Failure      404  {object}  common.APIResponse
// @Router       /storefront/favorites/{productId}/toggle [post]
func (h *SessionHandler) ToggleFavorite(c *gin.Context) {
	clientID, _ := clientSession(c, h.storefront)
	productID := c.Param("productId")
	added, err := h.storefront.ToggleFavorite(c.Request.Context(), clientID, productID)
	if err != nil {
		respondError(c, "Failed to toggle favorite", err)
		return
	}
	common.SuccessResponse(c, gin.H{"product_id": productID, "is_favorite": added}, nil)
}
