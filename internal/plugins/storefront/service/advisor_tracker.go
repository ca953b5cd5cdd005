package service

import (
	"time"

	"github.com/damoang/rokn-storefront/internal/plugins/storefront/domain"
)

// AdvisorTracker 요청 위치별 최신 요청만 반영하는 상태 추적기 (last-call-wins).
// 동시성 보호는 소유자(Session)의 책임이다.
type AdvisorTracker struct {
	sites    map[domain.AdvisorSite]*domain.SiteState
	greeting string
	now      func() time.Time
}

// NewAdvisorTracker greeting은 대화 기록의 첫 메시지
func NewAdvisorTracker(greeting string) *AdvisorTracker {
	return &AdvisorTracker{
		sites:    make(map[domain.AdvisorSite]*domain.SiteState),
		greeting: greeting,
		now:      time.Now,
	}
}

func (t *AdvisorTracker) site(site domain.AdvisorSite) *domain.SiteState {
	st, ok := t.sites[site]
	if !ok {
		st = &domain.SiteState{Site: site}
		if site == domain.SiteChat && t.greeting != "" {
			st.Transcript = []domain.ChatMessage{{Role: domain.RoleAssistant, Text: t.greeting}}
		}
		t.sites[site] = st
	}
	return st
}

// Begin 새 요청 시작. 이전 요청의 응답은 이후 무시된다.
// 채팅은 사용자 메시지를 즉시 대화 기록에 추가한다.
func (t *AdvisorTracker) Begin(site domain.AdvisorSite, subject string) uint64 {
	st := t.site(site)
	st.Seq++
	st.Pending = true
	st.Subject = subject
	st.UpdatedAt = t.now()
	if site == domain.SiteChat {
		st.Transcript = append(st.Transcript, domain.ChatMessage{Role: domain.RoleUser, Text: subject})
	}
	return st.Seq
}

// Complete seq가 최신 요청일 때만 결과를 반영하고 true를 반환한다
func (t *AdvisorTracker) Complete(site domain.AdvisorSite, seq uint64, content string) bool {
	st := t.site(site)
	if seq != st.Seq {
		return false
	}
	st.Pending = false
	st.Content = content
	st.UpdatedAt = t.now()
	if site == domain.SiteChat {
		st.Transcript = append(st.Transcript, domain.ChatMessage{Role: domain.RoleAssistant, Text: content})
	}
	return true
}

// State 사이트 상태 복사본
func (t *AdvisorTracker) State(site domain.AdvisorSite) domain.SiteState {
	st := *t.site(site)
	st.Transcript = append([]domain.ChatMessage(nil), st.Transcript...)
	return st
}
