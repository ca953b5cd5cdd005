package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// LoadDotEnv dir의 .env 파일을 읽는다.
// 우선순위: OS 환경변수 > .env.local > .env.<APP_ENV> > .env
// (godotenv.Load는 이미 설정된 값을 덮어쓰지 않으므로 앞의 파일이 이긴다)
// 실제로 읽은 파일 목록을 반환하며, 형식이 잘못된 파일이 있으면 에러를 함께 반환한다.
func LoadDotEnv(dir string) ([]string, error) {
	candidates := []string{".env.local"}
	if env := os.Getenv("APP_ENV"); env != "" {
		candidates = append(candidates, ".env."+env)
	}
	candidates = append(candidates, ".env")

	var loaded []string
	for _, name := range candidates {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return loaded, fmt.Errorf("load %s: %w", name, err)
		}
		loaded = append(loaded, name)
	}
	return loaded, nil
}
