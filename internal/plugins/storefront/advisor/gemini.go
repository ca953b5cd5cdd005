package advisor

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/damoang/rokn-storefront/internal/plugin"
	"github.com/damoang/rokn-storefront/pkg/i18n"
)

// ErrAdvisorUnavailable 어드바이저 호출 실패 (키 없음, 전송 오류, 비정상 응답, 빈 응답)
var ErrAdvisorUnavailable = errors.New("recipe advisor unavailable")

// ProductDisplay 레시피 요청에 쓰이는 상품 표시 정보
type ProductDisplay struct {
	Name        string
	Description string
}

// RecipeAdvisor 생성형 AI 어드바이저.
// 모든 메서드는 실패 시 로케일별 대체 문구를 반환하며 에러를 돌려주지 않는다.
type RecipeAdvisor interface {
	SuggestRecipe(ctx context.Context, locale i18n.Locale, product ProductDisplay) string
	GeneralAdvice(ctx context.Context, locale i18n.Locale, query string) string
	AnalyzeImage(ctx context.Context, locale i18n.Locale, data []byte, mimeType string) string
	GenerateDescription(ctx context.Context, locale i18n.Locale, name, brand string) string
}

// Config Gemini 클라이언트 설정
type Config struct {
	BaseURL string
	Model   string
	APIKey  string
	Timeout time.Duration
}

// GeminiClient Gemini generateContent REST 호출 구현체
type GeminiClient struct {
	cfg        Config
	messages   *i18n.Bundle
	logger     plugin.Logger
	httpClient *http.Client
}

// NewGeminiClient 생성자
func NewGeminiClient(cfg Config, messages *i18n.Bundle, logger plugin.Logger) *GeminiClient {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &GeminiClient{
		cfg:      cfg,
		messages: messages,
		logger:   logger,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// Available API 키 설정 여부
func (c *GeminiClient) Available() bool {
	return c.cfg.APIKey != ""
}

// SuggestRecipe 상품으로 만들 수 있는 레시피 제안
func (c *GeminiClient) SuggestRecipe(ctx context.Context, locale i18n.Locale, product ProductDisplay) string {
	if !c.Available() {
		return c.messages.T(locale, "advisor.missing_key")
	}
	text, err := c.generate(ctx, []part{{Text: recipePrompt(product)}})
	if err != nil {
		c.logger.Warn("recipe suggestion for %q failed: %v", product.Name, err)
		return c.messages.T(locale, "advisor.recipe_failed")
	}
	return text
}

// GeneralAdvice 상점 도우미 질의응답
func (c *GeminiClient) GeneralAdvice(ctx context.Context, locale i18n.Locale, query string) string {
	if !c.Available() {
		return c.messages.T(locale, "advisor.missing_key")
	}
	text, err := c.generate(ctx, []part{{Text: advicePrompt(query)}})
	if err != nil {
		c.logger.Warn("general advice failed: %v", err)
		return c.messages.T(locale, "advisor.general_failed")
	}
	return text
}

// AnalyzeImage 냉장고 사진을 보고 조리 아이디어 제안
func (c *GeminiClient) AnalyzeImage(ctx context.Context, locale i18n.Locale, data []byte, mimeType string) string {
	if !c.Available() {
		return c.messages.T(locale, "advisor.missing_key")
	}
	if len(data) == 0 {
		return c.messages.T(locale, "advisor.image_failed")
	}
	parts := []part{
		{InlineData: &inlineData{MimeType: mimeType, Data: base64.StdEncoding.EncodeToString(data)}},
		{Text: fridgePrompt()},
	}
	text, err := c.generate(ctx, parts)
	if err != nil {
		c.logger.Warn("image analysis failed (%s, %d bytes): %v", mimeType, len(data), err)
		return c.messages.T(locale, "advisor.image_failed")
	}
	return text
}

// GenerateDescription 관리자용 2줄 마케팅 문구. 실패 시 빈 문자열.
func (c *GeminiClient) GenerateDescription(ctx context.Context, locale i18n.Locale, name, brand string) string {
	if !c.Available() {
		return c.messages.T(locale, "advisor.description_no_key")
	}
	text, err := c.generate(ctx, []part{{Text: descriptionPrompt(name, brand)}})
	if err != nil {
		c.logger.Warn("description for %q failed: %v", name, err)
		return ""
	}
	return text
}

// ============================================
// Gemini REST 포맷
// ============================================

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// generate generateContent 호출 후 첫 후보의 텍스트 반환
func (c *GeminiClient) generate(ctx context.Context, parts []part) (string, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []content{{Role: "user", Parts: parts}},
	})
	if err != nil {
		return "", fmt.Errorf("%w: encode request: %v", ErrAdvisorUnavailable, err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		c.cfg.BaseURL, url.PathEscape(c.cfg.Model), url.QueryEscape(c.cfg.APIKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAdvisorUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: request: %v", ErrAdvisorUnavailable, redactKey(err, c.cfg.APIKey))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("%w: read response: %v", ErrAdvisorUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d: %s", ErrAdvisorUnavailable, resp.StatusCode, truncate(string(respBody), 200))
	}

	var result generateResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", ErrAdvisorUnavailable, err)
	}
	if len(result.Candidates) == 0 {
		return "", fmt.Errorf("%w: no candidates", ErrAdvisorUnavailable)
	}

	var sb strings.Builder
	for _, p := range result.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", fmt.Errorf("%w: empty reply", ErrAdvisorUnavailable)
	}
	return text, nil
}

// redactKey 전송 오류 메시지의 URL에 포함된 API 키 제거
func redactKey(err error, key string) string {
	if key == "" {
		return err.Error()
	}
	msg := strings.ReplaceAll(err.Error(), url.QueryEscape(key), "***")
	return strings.ReplaceAll(msg, key, "***")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
