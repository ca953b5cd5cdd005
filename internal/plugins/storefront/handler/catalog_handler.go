package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/damoang/rokn-storefront/internal/common"
	"github.com/damoang/rokn-storefront/internal/middleware"
	"github.com/damoang/rokn-storefront/internal/plugins/storefront/domain"
	"github.com/damoang/rokn-storefront/internal/plugins/storefront/security"
	"github.com/damoang/rokn-storefront/internal/plugins/storefront/service"
	"github.com/damoang/rokn-storefront/pkg/ginutil"
	pkglogger "github.com/damoang/rokn-storefront/pkg/logger"
)

const maxImportBytes = 5 << 20

// ImportRequest JSON 일괄 가져오기 요청
type ImportRequest struct {
	Rows []domain.ImportRow `json:"rows" binding:"required,min=1,max=1000,dive"`
}

// ImportResponse 가져오기 결과
type ImportResponse struct {
	Imported int `json:"imported"`
}

// CatalogHandler 카탈로그 HTTP 핸들러 (손님용 조회 + 관리자 편집)
type CatalogHandler struct {
	storefront *service.StorefrontService
	catalog    service.CatalogService
	sanitizer  *security.Sanitizer
	currency   string
}

// NewCatalogHandler 생성자
func NewCatalogHandler(storefront *service.StorefrontService, catalog service.CatalogService, sanitizer *security.Sanitizer, currency string) *CatalogHandler {
	return &CatalogHandler{
		storefront: storefront,
		catalog:    catalog,
		sanitizer:  sanitizer,
		currency:   currency,
	}
}

// ListProducts godoc
// @Summary      상품 목록
// @Description  카테고리/브랜드 필터를 적용한 카탈로그 (할인가, 묶음 할인 배지, 즐겨찾기 여부 포함)
// @Tags         storefront-catalog
// @Produce      json
// @Param        category  query     string  false  "카테고리 (الكل 또는 빈 값은 전체)"
// @Param        brand     query     string  false  "브랜드 (الكل 또는 빈 값은 전체)"
// @Success      200  {object}  common.APIResponse{data=[]domain.ProductResponse}
// @Failure      500  {object}  common.APIResponse
// @Router       /storefront/products [get]
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	var filter domain.ProductFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request parameters", err)
		return
	}

	clientID := middleware.GetSessionID(c)
	products, err := h.storefront.ListProducts(c.Request.Context(), clientID, filter)
	if err != nil {
		respondError(c, "Failed to fetch products", err)
		return
	}

	common.SuccessResponse(c, products, &common.Meta{
		Total:    int64(len(products)),
		Category: filter.Category,
		Brand:    filter.Brand,
		Currency: h.currency,
	})
}

// GetProduct godoc
// @Summary      상품 상세
// @Tags         storefront-catalog
// @Produce      json
// @Param        id   path      string  true  "상품 ID"
// @Success      200  {object}  common.APIResponse{data=domain.ProductResponse}
// @Failure      404  {object}  common.APIResponse
// @Router       /storefront/products/{id} [get]
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	product, err := h.storefront.GetProduct(c.Request.Context(), middleware.GetSessionID(c), c.Param("id"))
	if err != nil {
		respondError(c, "Failed to fetch product", err)
		return
	}
	common.SuccessResponse(c, product, nil)
}

// Taxonomy godoc
// @Summary      카테고리/브랜드 목록
// @Description  category가 주어지면 해당 카테고리 상품에 실제로 있는 브랜드를 available_brands로 함께 반환
// @Tags         storefront-catalog
// @Produce      json
// @Param        category  query     string  false  "카테고리"
// @Success      200  {object}  common.APIResponse{data=domain.Taxonomy}
// @Router       /storefront/taxonomy [get]
func (h *CatalogHandler) Taxonomy(c *gin.Context) {
	taxonomy, err := h.catalog.Taxonomy(c.Request.Context(), c.Query("category"))
	if err != nil {
		respondError(c, "Failed to fetch taxonomy", err)
		return
	}
	common.SuccessResponse(c, taxonomy, nil)
}

// UpsertProduct godoc
// @Summary      상품 등록/수정
// @Description  ID가 없거나 존재하지 않으면 신규 상품으로 목록 맨 앞에 추가한다
// @Tags         storefront-admin
// @Accept       json
// @Produce      json
// @Param        request  body      domain.ProductRequest  true  "상품"
// @Success      200  {object}  common.APIResponse{data=domain.ProductResponse}
// @Success      201  {object}  common.APIResponse{data=domain.ProductResponse}
// @Failure      400  {object}  common.APIResponse
// @Router       /storefront/admin/products [post]
func (h *CatalogHandler) UpsertProduct(c *gin.Context) {
	var req domain.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	product := req.ToProduct()
	h.sanitizer.Product(product)

	saved, created, err := h.catalog.Upsert(c.Request.Context(), product)
	if err != nil {
		respondError(c, "Failed to save product", err)
		return
	}

	resp := saved.ToResponse(false)
	if created {
		common.CreatedResponse(c, resp)
		return
	}
	common.SuccessResponse(c, resp, nil)
}

// DeleteProduct godoc
// @Summary      상품 삭제
// @Description  장바구니에 담긴 라인은 고정된 가격으로 남는다
// @Tags         storefront-admin
// @Param        id   path      string  true  "상품 ID"
// @Success      204
// @Router       /storefront/admin/products/{id} [delete]
func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	if err := h.catalog.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, "Failed to delete product", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ImportProducts godoc
// @Summary      상품 일괄 가져오기
// @Description  JSON {"rows": [...]} 또는 multipart "file" xlsx/CSV (첫 시트, 첫 줄은 컬럼명)
// @Tags         storefront-admin
// @Accept       json,mpfd
// @Produce      json
// @Param        request  body      ImportRequest  false  "가져오기 행"
// @Param        file     formData  file           false  "xlsx 또는 CSV 파일"
// @Success      201  {object}  common.APIResponse{data=ImportResponse}
// @Failure      400  {object}  common.APIResponse
// @Router       /storefront/admin/products/import [post]
func (h *CatalogHandler) ImportProducts(c *gin.Context) {
	var rows []domain.ImportRow
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		fh, err := c.FormFile("file")
		if err != nil {
			common.ErrorResponse(c, http.StatusBadRequest, "Import file required", err)
			return
		}
		parsed, err := readSpreadsheet(fh)
		if err != nil {
			common.ErrorResponse(c, http.StatusBadRequest, "Invalid import file", err)
			return
		}
		rows = parsed
	} else {
		var req ImportRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
			return
		}
		rows = req.Rows
	}

	products := make([]domain.Product, len(rows))
	for i, row := range rows {
		products[i] = row.ToProduct()
		h.sanitizer.Product(&products[i])
	}

	n, err := h.catalog.ImportMany(c.Request.Context(), products)
	if err != nil {
		respondError(c, "Failed to import products", err)
		return
	}
	common.CreatedResponse(c, ImportResponse{Imported: n})
}

// ImportTemplate godoc
// @Summary      가져오기 템플릿
// @Description  기본은 xlsx, format=csv이면 CSV
// @Tags         storefront-admin
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce      text/csv
// @Param        format  query  string  false  "xlsx (기본) 또는 csv"
// @Success      200
// @Failure      500  {object}  common.APIResponse
// @Router       /storefront/admin/products/import/template [get]
func (h *CatalogHandler) ImportTemplate(c *gin.Context) {
	build, contentType, filename := xlsxTemplate, contentTypeXLSX, "products_template.xlsx"
	if strings.EqualFold(c.Query("format"), "csv") {
		build, contentType, filename = csvTemplate, contentTypeCSV, "products_template.csv"
	}

	data, err := build()
	if err != nil {
		pkglogger.GetLogger().Error().Err(err).Str("file", filename).Msg("import template build failed")
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to build template", err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, data)
}

// AddCategory godoc
// @Summary      카테고리 추가
// @Tags         storefront-admin
// @Accept       json
// @Param        request  body      domain.TaxonomyRequest  true  "이름"
// @Success      201  {object}  common.APIResponse
// @Router       /storefront/admin/categories [post]
func (h *CatalogHandler) AddCategory(c *gin.Context) {
	h.addTaxonomy(c, domain.TaxonomyCategory)
}

// RemoveCategory godoc
// @Summary      카테고리 삭제 (상품은 변경하지 않음)
// @Tags         storefront-admin
// @Param        name  path  string  true  "이름"
// @Success      204
// @Router       /storefront/admin/categories/{name} [delete]
func (h *CatalogHandler) RemoveCategory(c *gin.Context) {
	h.removeTaxonomy(c, domain.TaxonomyCategory)
}

// AddBrand godoc
// @Summary      브랜드 추가
// @Tags         storefront-admin
// @Accept       json
// @Param        request  body      domain.TaxonomyRequest  true  "이름"
// @Success      201  {object}  common.APIResponse
// @Router       /storefront/admin/brands [post]
func (h *CatalogHandler) AddBrand(c *gin.Context) {
	h.addTaxonomy(c, domain.TaxonomyBrand)
}

// RemoveBrand godoc
// @Summary      브랜드 삭제 (상품은 변경하지 않음)
// @Tags         storefront-admin
// @Param        name  path  string  true  "이름"
// @Success      204
// @Router       /storefront/admin/brands/{name} [delete]
func (h *CatalogHandler) RemoveBrand(c *gin.Context) {
	h.removeTaxonomy(c, domain.TaxonomyBrand)
}

func (h *CatalogHandler) addTaxonomy(c *gin.Context, kind domain.TaxonomyKind) {
	var req domain.TaxonomyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	name := h.sanitizer.Text(req.Name)
	if name == "" {
		common.ErrorResponse(c, http.StatusBadRequest, "Name is required", nil)
		return
	}

	added, err := h.catalog.AddTaxonomy(c.Request.Context(), kind, name)
	if err != nil {
		respondError(c, "Failed to add "+string(kind), err)
		return
	}
	body := gin.H{"kind": kind, "name": name, "added": added}
	if !added {
		common.SuccessResponse(c, body, nil)
		return
	}
	common.CreatedResponse(c, body)
}

func (h *CatalogHandler) removeTaxonomy(c *gin.Context, kind domain.TaxonomyKind) {
	if err := h.catalog.RemoveTaxonomy(c.Request.Context(), kind, ginutil.ParamTrimmed(c, "name")); err != nil {
		respondError(c, "Failed to remove "+string(kind), err)
		return
	}
	c.Status(http.StatusNoContent)
}

