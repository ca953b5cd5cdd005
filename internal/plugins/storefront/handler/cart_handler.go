package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/damoang/rokn-storefront/internal/common"
	"github.com/damoang/rokn-storefront/internal/middleware"
	"github.com/damoang/rokn-storefront/internal/plugins/storefront/domain"
	"github.com/damoang/rokn-storefront/internal/plugins/storefront/service"
)

// QuantityQuery 수량 조회 파라미터
type QuantityQuery struct {
	ProductID string `form:"product_id" binding:"required"`
	Unit      string `form:"unit"`
}

// CartHandler 장바구니/주문 HTTP 핸들러
type CartHandler struct {
	storefront *service.StorefrontService
	checkout   *service.CheckoutService
}

// NewCartHandler 생성자
func NewCartHandler(storefront *service.StorefrontService, checkout *service.CheckoutService) *CartHandler {
	return &CartHandler{storefront: storefront, checkout: checkout}
}

// GetCart godoc
// @Summary      장바구니 조회
// @Description  라인별 유효 단가/소계와 합계(배송비 포함), 적립 예정 포인트
// @Tags         storefront-cart
// @Produce      json
// @Success      200  {object}  common.APIResponse{data=domain.CartView}
// @Router       /storefront/cart [get]
func (h *CartHandler) GetCart(c *gin.Context) {
	common.SuccessResponse(c, h.storefront.Cart(c.Request.Context(), middleware.GetSessionID(c)), nil)
}

// AddItem godoc
// @Summary      장바구니 담기
// @Description  같은 상품/단위 라인이 있으면 수량을 1 늘리고, 없으면 현재 가격으로 새 라인을 만든다
// @Tags         storefront-cart
// @Accept       json
// @Produce      json
// @Param        request  body      domain.AddToCartRequest  true  "상품/단위"
// @Success      200  {object}  common.APIResponse{data=domain.AddToCartResult}
// @Success      201  {object}  common.APIResponse{data=domain.AddToCartResult}
// @Failure      400  {object}  common.APIResponse
// @Failure      404  {object}  common.APIResponse
// @Router       /storefront/cart/items [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	var req domain.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	clientID, _ := clientSession(c, h.storefront)
	result, err := h.storefront.AddToCart(c.Request.Context(), clientID, req)
	if err != nil {
		respondError(c, "Failed to add to cart", err)
		return
	}

	if result.Created {
		common.CreatedResponse(c, result)
		return
	}
	common.SuccessResponse(c, result, nil)
}

// ChangeQuantity godoc
// @Summary      라인 수량 증감
// @Description  수량이 0 이하가 되면 라인을 제거한다. 없는 라인은 변화 없음.
// @Tags         storefront-cart
// @Accept       json
// @Produce      json
// @Param        lineId   path      string                         true  "라인 ID"
// @Param        request  body      domain.ChangeQuantityRequest   true  "증감값"
// @Success      200  {object}  common.APIResponse{data=domain.CartView}
// @Failure      400  {object}  common.APIResponse
// @Router       /storefront/cart/items/{lineId} [patch]
func (h *CartHandler) ChangeQuantity(c *gin.Context) {
	var req domain.ChangeQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	view := h.storefront.ChangeQuantity(c.Request.Context(), middleware.GetSessionID(c), c.Param("lineId"), req.Delta)
	common.SuccessResponse(c, view, nil)
}

// RemoveItem godoc
// @Summary      라인 제거
// @Tags         storefront-cart
// @Produce      json
// @Param        lineId   path      string  true  "라인 ID"
// @Success      200  {object}  common.APIResponse{data=domain.CartView}
// @Router       /storefront/cart/items/{lineId} [delete]
func (h *CartHandler) RemoveItem(c *gin.Context) {
	view := h.storefront.RemoveLine(c.Request.Context(), middleware.GetSessionID(c), c.Param("lineId"))
	common.SuccessResponse(c, view, nil)
}

// Quantity godoc
// @Summary      상품/단위 수량 조회
// @Tags         storefront-cart
// @Produce      json
// @Param        product_id  query     string  true   "상품 ID"
// @Param        unit        query     string  false  "primary | secondary"
// @Success      200  {object}  common.APIResponse
// @Failure      400  {object}  common.APIResponse
// @Router       /storefront/cart/quantity [get]
func (h *CartHandler) Quantity(c *gin.Context) {
	var q QuantityQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request parameters", err)
		return
	}
	qty, err := h.storefront.QuantityFor(c.Request.Context(), middleware.GetSessionID(c), q.ProductID, q.Unit)
	if err != nil {
		respondError(c, "Failed to fetch quantity", err)
		return
	}
	common.SuccessResponse(c, gin.H{"product_id": q.ProductID, "quantity": qty}, nil)
}

// Checkout godoc
// @Summary      주문 전송
// @Description  주문 요약을 외부 채널로 보낸 뒤 포인트를 적립하고 장바구니를 비운다. 빈 장바구니는 아무것도 하지 않는다.
// @Tags         storefront-cart
// @Produce      json
// @Success      200  {object}  common.APIResponse{data=domain.CheckoutResult}
// @Failure      502  {object}  common.APIResponse
// @Router       /storefront/checkout [post]
func (h *CartHandler) Checkout(c *gin.Context) {
	_, sess := clientSession(c, h.storefront)
	result, err := h.checkout.Checkout(c.Request.Context(), sess)
	if err != nil {
		respondError(c, "Failed to export order", err)
		return
	}
	common.SuccessResponse(c, result, nil)
}

// Preview godoc
// @Summary      주문 요약 미리보기
// @Description  장바구니를 바꾸지 않고 전송될 주문 요약을 만든다
// @Tags         storefront-cart
// @Produce      json
// @Success      200  {object}  common.APIResponse{data=domain.OrderSummary}
// @Router       /storefront/checkout/preview [get]
func (h *CartHandler) Preview(c *gin.Context) {
	_, sess := clientSession(c, h.storefront)
	common.SuccessResponse(c, h.checkout.Preview(sess), nil)
}
