package domain

import "time"

// Theme 화면 테마
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Valid 지원 테마 여부
func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}

// Notification 토스트 알림
type Notification struct {
	Topic     string    `json:"topic"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionView 세션 상태 응답
type SessionView struct {
	ClientID      string `json:"client_id"`
	PointsBalance int64  `json:"points_balance"`
	Theme         Theme  `json:"theme"`
	Locale        string `json:"locale"`
	ItemCount     int    `json:"item_count"`
	FavoriteCount int    `json:"favorite_count"`
}

// ThemeRequest 테마 변경 요청
type ThemeRequest struct {
	Theme Theme `json:"theme" binding:"required,oneof=light dark"`
}
