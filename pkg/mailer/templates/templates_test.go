package templates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_Welcome(t *testing.T) {
	data := NewWelcomeData("Votiy", "Ada", "Lovelace", "ada@x.com", WithAppURL("https://votiy.app"))

	subject, text, html, err := Render(Welcome, data)
	require.NoError(t, err)
	assert.Equal(t, "Welcome to Votiy", subject)
	assert.Contains(t, text, "Hi Ada Lovelace,")
	assert.Contains(t, text, "https://votiy.app")
	assert.Contains(t, html, "<strong>ada@x.com</strong>")
}

func TestRender_PasswordChangedEscapesHTML(t *testing.T) {
	at := time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)
	data := NewPasswordChangedData("", "", "", "a@x.com",
		WithTime(at), WithIP("10.0.0.1"), WithUserAgent("<script>"))

	subject, text, html, err := Render(PasswordChanged, data)
	require.NoError(t, err)
	assert.Equal(t, "Your Votiy password was changed", subject)
	assert.Contains(t, text, "Hi there,")
	assert.Contains(t, text, "18 October 2026, 09:30 UTC")
	assert.Contains(t, text, "(<script>)")
	assert.NotContains(t, html, "<script>")
}

func TestRender_Unknown(t *testing.T) {
	_, _, _, err := Render("login_otp", nil)
	assert.Error(t, err)
}
