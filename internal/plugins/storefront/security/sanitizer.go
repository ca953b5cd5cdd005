package security

import (
	"html"
	"regexp"
	"strings"

	"github.com/damoang/rokn-storefront/internal/plugins/storefront/domain"
)

var (
	tagPattern       = regexp.MustCompile(`<[^>]*>`)
	dangerousBlock   = regexp.MustCompile(`(?is)<(script|style|iframe|object|embed)[^>]*>.*?</(script|style|iframe|object|embed)>`)
	controlCharacter = regexp.MustCompile(`[\x00-\x08\x0B\x0C\x0E-\x1F\x7F]`)
)

// Sanitizer 관리자 입력 살균화 도구 (상품 텍스트는 일반 텍스트로만 저장)
type Sanitizer struct {
	allowedSchemes []string
}

// NewSanitizer 생성자
func NewSanitizer() *Sanitizer {
	return &Sanitizer{allowedSchemes: []string{"https://", "http://"}}
}

// Text HTML 태그와 제어 문자를 제거한 일반 텍스트
func (s *Sanitizer) Text(input string) string {
	if input == "" {
		return ""
	}
	// 위험한 태그는 내용까지 제거
	result := dangerousBlock.ReplaceAllString(input, "")
	result = tagPattern.ReplaceAllString(result, "")
	result = html.UnescapeString(result)
	result = controlCharacter.ReplaceAllString(result, "")
	return strings.TrimSpace(result)
}

// URL 이미지 URL 살균화. http(s) 절대 경로와 루트 상대 경로만 허용, 나머지는 "".
func (s *Sanitizer) URL(input string) string {
	input = strings.TrimSpace(input)
	if input == "" {
		return ""
	}
	lower := strings.ToLower(input)
	for _, scheme := range s.allowedSchemes {
		if strings.HasPrefix(lower, scheme) {
			return input
		}
	}
	if strings.HasPrefix(input, "/") && !strings.HasPrefix(input, "//") {
		return input
	}
	return ""
}

// Product 상품의 텍스트 필드와 이미지 URL을 살균화한다
func (s *Sanitizer) Product(p *domain.Product) {
	p.Name = s.Text(p.Name)
	p.Description = s.Text(p.Description)
	p.Category = s.Text(p.Category)
	p.Brand = s.Text(p.Brand)
	p.Unit = s.Text(p.Unit)
	p.SecondaryUnit = s.Text(p.SecondaryUnit)
	p.Image = s.URL(p.Image)
}
