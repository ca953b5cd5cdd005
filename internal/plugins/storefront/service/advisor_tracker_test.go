package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/damoang/rokn-storefront/internal/plugins/storefront/domain"
)

func TestAdvisorTracker_LastCallWins(t *testing.T) {
	tr := NewAdvisorTracker("")

	first := tr.Begin(domain.SiteRecipe, "برجر")
	second := tr.Begin(domain.SiteRecipe, "دجاج")
	assert.True(t, tr.State(domain.SiteRecipe).Pending)

	// 늦게 도착한 첫 번째 응답은 무시
	assert.True(t, tr.Complete(domain.SiteRecipe, second, "وصفة دجاج"))
	assert.False(t, tr.Complete(domain.SiteRecipe, first, "وصفة برجر"))

	st := tr.State(domain.SiteRecipe)
	assert.False(t, st.Pending)
	assert.Equal(t, "وصفة دجاج", st.Content)
	assert.Equal(t, "دجاج", st.Subject)
	assert.Equal(t, second, st.Seq)
}

func TestAdvisorTracker_StaleReplyKeepsPending(t *testing.T) {
	tr := NewAdvisorTracker("")
	first := tr.Begin(domain.SiteFridge, "")
	tr.Begin(domain.SiteFridge, "")

	assert.False(t, tr.Complete(domain.SiteFridge, first, "old"))
	st := tr.State(domain.SiteFridge)
	assert.True(t, st.Pending)
	assert.Empty(t, st.Content)
}

func TestAdvisorTracker_SitesIndependent(t *testing.T) {
	tr := NewAdvisorTracker("")
	r := tr.Begin(domain.SiteRecipe, "a")
	c := tr.Begin(domain.SiteChat, "b")

	assert.True(t, tr.Complete(domain.SiteRecipe, r, "recipe"))
	assert.True(t, tr.Complete(domain.SiteChat, c, "chat"))
}

func TestAdvisorTracker_ChatTranscript(t *testing.T) {
	tr := NewAdvisorTracker("هلا بك")

	assert.Equal(t, []domain.ChatMessage{{Role: domain.RoleAssistant, Text: "هلا بك"}}, tr.State(domain.SiteChat).Transcript)

	first := tr.Begin(domain.SiteChat, "سؤال 1")
	second := tr.Begin(domain.SiteChat, "سؤال 2")
	tr.Complete(domain.SiteChat, second, "جواب 2")
	tr.Complete(domain.SiteChat, first, "جواب 1")

	transcript := tr.State(domain.SiteChat).Transcript
	assert.Equal(t, []domain.ChatMessage{
		{Role: domain.RoleAssistant, Text: "هلا بك"},
		{Role: domain.RoleUser, Text: "سؤال 1"},
		{Role: domain.RoleUser, Text: "سؤال 2"},
		{Role: domain.RoleAssistant, Text: "جواب 2"},
	}, transcript)

	// 복사본 수정은 상태에 영향 없음
	transcript[0].Text = "changed"
	assert.Equal(t, "هلا بك", tr.State(domain.SiteChat).Transcript[0].Text)
}
