package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// SessionHeader 클라이언트 세션 ID 헤더
	SessionHeader = "X-Session-ID"
	// SessionCookie 클라이언트 세션 ID 쿠키
	SessionCookie = "sf_session"

	sessionKey       = "session_id"
	maxSessionIDLen  = 64
	sessionCookieAge = 60 * 60 * 24 * 365
)

// Session 클라이언트 세션 식별 미들웨어.
// X-Session-ID 헤더, sf_session 쿠키 순으로 찾고 없으면 새 ID를 발급해 쿠키로 내려준다.
func Session(secureCookie bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := validSessionID(c.GetHeader(SessionHeader))
		if id == "" {
			if cookie, err := c.Cookie(SessionCookie); err == nil {
				id = validSessionID(cookie)
			}
		}
		if id == "" {
			id = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(SessionCookie, id, sessionCookieAge, "/", "", secureCookie, true)
		}

		c.Set(sessionKey, id)
		c.Header(SessionHeader, id)
		c.Next()
	}
}

// GetSessionID 현재 요청의 세션 ID (Session 미들웨어 이후에만 유효)
func GetSessionID(c *gin.Context) string {
	return c.GetString(sessionKey)
}

// validSessionID 저장소 키로 쓰기 안전한 ID만 허용 (영숫자, '-', '_')
func validSessionID(id string) string {
	id = strings.TrimSpace(id)
	if id == "" || len(id) > maxSessionIDLen {
		return ""
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return ""
		}
	}
	return id
}
