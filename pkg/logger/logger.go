package logger

import (
	"fmt"
)

// Info printf 스타일 정보 로그 (부트스트랩 단계용)
func Info(format string, args ...interface{}) {
	zlog.Info().Msg(fmt.Sprintf(format, args...))
}

// Warn printf 스타일 경고 로그
func Warn(format string, args ...interface{}) {
	zlog.Warn().Msg(fmt.Sprintf(format, args...))
}

// Error printf 스타일 에러 로그
func Error(format string, args ...interface{}) {
	zlog.Error().Msg(fmt.Sprintf(format, args...))
}

// Debug printf 스타일 디버그 로그
func Debug(format string, args ...interface{}) {
	zlog.Debug().Msg(fmt.Sprintf(format, args...))
}
