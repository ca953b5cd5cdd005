package domain

import "time"

// AdvisorSite 어드바이저 요청 위치 (사이트별로 최신 요청만 반영)
type AdvisorSite string

const (
	SiteRecipe      AdvisorSite = "recipe"
	SiteChat        AdvisorSite = "chat"
	SiteFridge      AdvisorSite = "fridge"
	SiteDescription AdvisorSite = "description"
)

// Valid 지원하는 사이트인지 확인
func (s AdvisorSite) Valid() bool {
	switch s {
	case SiteRecipe, SiteChat, SiteFridge, SiteDescription:
		return true
	}
	return false
}

// ChatRole 대화 발화자
type ChatRole string

const (
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "model"
)

// ChatMessage 대화 메시지
type ChatMessage struct {
	Role ChatRole `json:"role"`
	Text string   `json:"text"`
}

// SiteState 사이트별 어드바이저 상태
type SiteState struct {
	Site       AdvisorSite   `json:"site"`
	Seq        uint64        `json:"seq"`
	Pending    bool          `json:"pending"`
	Content    string        `json:"content"`
	Subject    string        `json:"subject,omitempty"`
	Transcript []ChatMessage `json:"transcript,omitempty"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

// ChatRequest 일반 질문 요청
type ChatRequest struct {
	Message string `json:"message" binding:"required,max=2000"`
}

// DescriptionRequest 상품 설명 생성 요청
type DescriptionRequest struct {
	Name  string `json:"name" binding:"required,max=255"`
	Brand string `json:"brand" binding:"max=100"`
}

// AdvisorReply 어드바이저 응답
type AdvisorReply struct {
	Site    AdvisorSite `json:"site"`
	Seq     uint64      `json:"seq"`
	Content string      `json:"content"`
	Applied bool        `json:"applied"`
}
