package plugin

import (
	"fmt"

	"github.com/rs/zerolog"

	pkglogger "github.com/damoang/rokn-storefront/pkg/logger"
)

// ZerologLogger zerolog 기반 플러그인 로거
type ZerologLogger struct {
	log zerolog.Logger
}

// NewLogger component 필드가 붙은 플러그인 로거 생성
func NewLogger(component string) *ZerologLogger {
	return &ZerologLogger{
		log: pkglogger.GetLogger().With().Str("component", component).Logger(),
	}
}

// NewNopLogger 아무것도 출력하지 않는 로거 (테스트용)
func NewNopLogger() *ZerologLogger {
	return &ZerologLogger{log: zerolog.Nop()}
}

// Debug 디버그 로그
func (l *ZerologLogger) Debug(msg string, args ...interface{}) {
	l.log.Debug().Msg(fmt.Sprintf(msg, args...))
}

// Info 정보 로그
func (l *ZerologLogger) Info(msg string, args ...interface{}) {
	l.log.Info().Msg(fmt.Sprintf(msg, args...))
}

// Warn 경고 로그
func (l *ZerologLogger) Warn(msg string, args ...interface{}) {
	l.log.Warn().Msg(fmt.Sprintf(msg, args...))
}

// Error 에러 로그
func (l *ZerologLogger) Error(msg string, args ...interface{}) {
	l.log.Error().Msg(fmt.Sprintf(msg, args...))
}
