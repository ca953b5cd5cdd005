package service

import (
	"context"
	"strconv"
	"time"

	"github.com/damoang/rokn-storefront/internal/plugin"
	"github.com/damoang/rokn-storefront/internal/plugins/storefront/advisor"
	"github.com/damoang/rokn-storefront/internal/plugins/storefront/domain"
	"github.com/damoang/rokn-storefront/internal/ws"
)

// AdviceTicket 진행 중인 어드바이저 요청
type AdviceTicket struct {
	Site  domain.AdvisorSite
	Seq   uint64
	done  chan struct{}
	reply domain.AdvisorReply
}

// Done 응답 완료 채널
func (t *AdviceTicket) Done() <-chan struct{} {
	return t.done
}

// Wait 응답을 기다린다. ctx가 먼저 끝나면 대기 중 상태를 반환한다.
func (t *AdviceTicket) Wait(ctx context.Context) (domain.AdvisorReply, bool) {
	select {
	case <-t.done:
		return t.reply, true
	case <-ctx.Done():
		return domain.AdvisorReply{Site: t.Site, Seq: t.Seq}, false
	}
}

// AdvisorService 어드바이저 호출을 비동기로 실행하고 사이트별 최신 응답만 세션에 반영한다
type AdvisorService struct {
	advisor advisor.RecipeAdvisor
	catalog CatalogService
	logger  plugin.Logger
	pusher  Pusher
	timeout time.Duration
}

// NewAdvisorService 생성자
func NewAdvisorService(adv advisor.RecipeAdvisor, catalog CatalogService, logger plugin.Logger, timeout time.Duration) *AdvisorService {
	if timeout <= 0 {
		timeout = 45 * time.Second
	}
	return &AdvisorService{advisor: adv, catalog: catalog, logger: logger, timeout: timeout}
}

// WithPusher 반영된 응답을 세션에 실시간으로 보낸다
func (a *AdvisorService) WithPusher(p Pusher) *AdvisorService {
	a.pusher = p
	return a
}

// SuggestRecipe 상품 레시피 요청
func (a *AdvisorService) SuggestRecipe(ctx context.Context, sess *Session, productID string) (*AdviceTicket, error) {
	product, err := a.catalog.Get(ctx, productID)
	if err != nil {
		return nil, err
	}
	display := advisor.ProductDisplay{Name: product.Name, Description: product.Description}
	locale := sess.Locale()
	return a.start(sess, domain.SiteRecipe, product.ID, func(ctx context.Context) string {
		return a.advisor.SuggestRecipe(ctx, locale, display)
	}), nil
}

// Chat 일반 질문. 사용자 메시지는 즉시 대화 기록에 추가된다.
func (a *AdvisorService) Chat(sess *Session, message string) *AdviceTicket {
	locale := sess.Locale()
	return a.start(sess, domain.SiteChat, message, func(ctx context.Context) string {
		return a.advisor.GeneralAdvice(ctx, locale, message)
	})
}

// AnalyzeFridge 냉장고 사진 분석
func (a *AdvisorService) AnalyzeFridge(sess *Session, data []byte, mimeType string) *AdviceTicket {
	locale := sess.Locale()
	subject := mimeType + ":" + strconv.Itoa(len(data))
	return a.start(sess, domain.SiteFridge, subject, func(ctx context.Context) string {
		return a.advisor.AnalyzeImage(ctx, locale, data, mimeType)
	})
}

// Describe 관리자 상품 설명 생성
func (a *AdvisorService) Describe(sess *Session, name, brand string) *AdviceTicket {
	locale := sess.Locale()
	return a.start(sess, domain.SiteDescription, name, func(ctx context.Context) string {
		return a.advisor.GenerateDescription(ctx, locale, name, brand)
	})
}

// State 사이트 상태
func (a *AdvisorService) State(sess *Session, site domain.AdvisorSite) domain.SiteState {
	return sess.AdviceState(site)
}

// start 요청 번호를 발급하고 고루틴에서 호출한다.
// 호출은 요청 컨텍스트와 분리되어 클라이언트가 끊겨도 결과가 상태에 남는다.
func (a *AdvisorService) start(sess *Session, site domain.AdvisorSite, subject string, call func(ctx context.Context) string) *AdviceTicket {
	seq := sess.BeginAdvice(site, subject)
	t := &AdviceTicket{Site: site, Seq: seq, done: make(chan struct{})}

	go func() {
		defer close(t.done)
		ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
		defer cancel()

		content := call(ctx)
		applied := sess.CompleteAdvice(site, seq, content)
		advisorRequests.WithLabelValues(string(site), strconv.FormatBool(applied)).Inc()
		if !applied {
			a.logger.Debug("stale %s reply dropped for %s (seq=%d)", site, sess.ClientID(), seq)
		}
		t.reply = domain.AdvisorReply{Site: site, Seq: seq, Content: content, Applied: applied}
		if applied && a.pusher != nil {
			a.pusher.SendToSession(sess.ClientID(), &ws.Event{Type: ws.EventAdvisor, Payload: t.reply})
		}
	}()
	return t
}
