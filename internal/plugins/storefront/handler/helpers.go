package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/damoang/rokn-storefront/internal/common"
	"github.com/damoang/rokn-storefront/internal/middleware"
	"github.com/damoang/rokn-storefront/internal/plugins/storefront/advisor"
	"github.com/damoang/rokn-storefront/internal/plugins/storefront/domain"
	"github.com/damoang/rokn-storefront/internal/plugins/storefront/exporter"
	"github.com/damoang/rokn-storefront/internal/plugins/storefront/service"
)

// clientSession 요청의 세션을 가져오고, 클라이언트가 Accept-Language를 보냈으면 세션 언어를 맞춘다
func clientSession(c *gin.Context, svc *service.StorefrontService) (string, *service.Session) {
	clientID := middleware.GetSessionID(c)
	sess := svc.Session(c.Request.Context(), clientID)
	if locale, explicit := middleware.GetLocale(c); explicit {
		sess.SetLocale(locale)
	}
	return clientID, sess
}

// respondError 도메인 에러를 HTTP 상태로 변환
func respondError(c *gin.Context, message string, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidSelection),
		errors.Is(err, domain.ErrInvalidProduct),
		errors.Is(err, domain.ErrInvalidTheme):
		common.ErrorResponse(c, http.StatusBadRequest, message, err)
	case errors.Is(err, domain.ErrProductNotFound):
		common.ErrorResponse(c, http.StatusNotFound, "Product not found", err)
	case errors.Is(err, exporter.ErrExportFailed),
		errors.Is(err, advisor.ErrAdvisorUnavailable):
		common.ErrorResponse(c, http.StatusBadGateway, message, err)
	default:
		common.ErrorResponse(c, http.StatusInternalServerError, message, err)
	}
}
