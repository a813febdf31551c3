package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conferencecfp/internal/domain"
)

func TestTemplateRenderer_SpeakerWelcome(t *testing.T) {
	r := NewTemplateRenderer()
	subject, html, text, err := r.Render("speaker_welcome", &domain.SpeakerWelcomeEmailData{
		Email:     "frodo@shire.example",
		FirstName: "Frodo",
		SpeakerID: "sp-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "Welcome to the call for papers, Frodo", subject)
	assert.Contains(t, html, "Hi Frodo,")
	assert.Contains(t, text, "Speaker ID: sp-1")
}

func TestTemplateRenderer_SessionDecision(t *testing.T) {
	r := NewTemplateRenderer()

	subject, html, text, err := r.Render("session_decision", &domain.SessionDecisionEmailData{
		FirstName:    "Frodo",
		SessionTitle: "The <One> Ring",
		Status:       "ACCEPTED",
		Accepted:     true,
	})
	require.NoError(t, err)
	assert.Equal(t, `Your session "The <One> Ring" was accepted`, subject)
	assert.Contains(t, html, "The &lt;One&gt; Ring")
	assert.Contains(t, text, "has been accepted")

	subject, _, text, err = r.Render("session_decision", &domain.SessionDecisionEmailData{
		FirstName:    "Frodo",
		SessionTitle: "The One Ring",
		Status:       "REJECTED",
	})
	require.NoError(t, err)
	assert.Equal(t, `Update on your session "The One Ring"`, subject)
	assert.Contains(t, text, "not selected")
}

func TestTemplateRenderer_UnknownTemplate(t *testing.T) {
	_, _, _, err := NewTemplateRenderer().Render("missing", nil)
	require.Error(t, err)
}
