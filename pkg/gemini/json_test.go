package gemini

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripFences(t *testing.T) {
	assert.Equal(t, `{"a":1}`, StripFences("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, StripFences("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, StripFences(`{"a":1}`))
}

func TestUnmarshalResponse(t *testing.T) {
	t.Run("plain JSON", func(t *testing.T) {
		var out []string
		require.NoError(t, UnmarshalResponse(`["go", "postgres"]`, &out))
		assert.Equal(t, []string{"go", "postgres"}, out)
	})

	t.Run("fenced JSON", func(t *testing.T) {
		var out map[string]string
		require.NoError(t, UnmarshalResponse("```json\n{\"k\":\"v\"}\n```", &out))
		assert.Equal(t, "v", out["k"])
	})

	t.Run("JSON with leading prose", func(t *testing.T) {
		var out []string
		err := UnmarshalResponse(`Here are the skills: ["python", "docker"]`, &out)
		require.NoError(t, err)
		assert.Equal(t, []string{"python", "docker"}, out)
	})

	t.Run("no JSON at all", func(t *testing.T) {
		var out map[string]string
		assert.Error(t, UnmarshalResponse("I cannot help with that.", &out))
	})
}
