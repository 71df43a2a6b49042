package templates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_Activation(t *testing.T) {
	exp := time.Date(2024, 5, 12, 14, 30, 0, 0, time.UTC)
	data := NewActivationData("user@todo.list", "http://localhost:8080/validate/abc",
		WithAppName("todo.list"), WithExpiresAt(exp))

	subject, text, html, err := Render(Activation, data)

	require.NoError(t, err)
	assert.Equal(t, "Welcome by todo.list !", subject)
	assert.Contains(t, text, "http://localhost:8080/validate/abc")
	assert.Contains(t, text, "12 May 2024, 14:30")
	assert.Contains(t, html, `href="http://localhost:8080/validate/abc"`)
	assert.Contains(t, html, "user@todo.list")
}

func TestRender_DefaultAppName(t *testing.T) {
	subject, _, _, err := Render(Activation, NewActivationData("user@todo.list", "http://x/validate/t"))

	require.NoError(t, err)
	assert.Equal(t, "Welcome by todo.list !", subject)
}

func TestRender_UnknownTemplate(t *testing.T) {
	_, _, _, err := Render("missing", map[string]any{})

	assert.Error(t, err)
}

func TestNewActivationData_Map(t *testing.T) {
	m := NewActivationData("user@todo.list", "http://x/validate/t")

	assert.Equal(t, "user@todo.list", m["Email"])
	assert.Equal(t, Activation, m["Type"])
	assert.Equal(t, "http://x/validate/t", m["ActivationURL"])
}
