package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/todolist-auth/pkg/mailer"
	mailtpl "github.com/oksasatya/todolist-auth/pkg/mailer/templates"
)

func TestRenderJob_Template(t *testing.T) {
	job := &mailer.EmailJob{
		To:       "user@todo.list",
		Template: mailtpl.Activation,
		Data:     map[string]any{"ActivationURL": "http://localhost:8080/validate/tok"},
	}

	subject, text, html, err := RenderJob(job)

	require.NoError(t, err)
	assert.Equal(t, "Welcome by todo.list !", subject)
	assert.Contains(t, text, "Hello user@todo.list")
	assert.Contains(t, html, "/validate/tok")
	assert.Equal(t, "user@todo.list", job.Data["Email"])
}

func TestRenderJob_Raw(t *testing.T) {
	job := &mailer.EmailJob{To: "user@todo.list", Subject: "hi", Text: "body"}

	subject, text, html, err := RenderJob(job)

	require.NoError(t, err)
	assert.Equal(t, "hi", subject)
	assert.Equal(t, "body", text)
	assert.Empty(t, html)
}

func TestRenderJob_Empty(t *testing.T) {
	_, _, _, err := RenderJob(&mailer.EmailJob{To: "user@todo.list"})

	assert.Error(t, err)
}
