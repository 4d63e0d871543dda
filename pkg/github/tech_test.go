package github

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePackageJSON(t *testing.T) {
	t.Run("maps known dependencies to canonical names", func(t *testing.T) {
		content := `{
			"dependencies": {"react": "^18.0.0", "next": "14.0.0", "left-pad": "1.0.0"},
			"devDependencies": {"typescript": "^5.0.0", "jest": "^29.0.0"}
		}`

		tech := parsePackageJSON(content)

		assert.Contains(t, tech, "React")
		assert.Contains(t, tech, "Next.js")
		assert.Contains(t, tech, "TypeScript")
		assert.Contains(t, tech, "Jest")
		assert.Contains(t, tech, "Node.js")
		assert.NotContains(t, tech, "left-pad")
	})

	t.Run("invalid JSON yields nothing", func(t *testing.T) {
		assert.Nil(t, parsePackageJSON("not json"))
	})
}

func TestParseRequirementsTxt(t *testing.T) {
	content := `# web framework
fastapi==0.104.0
sqlalchemy>=2.0
pydantic[email]~=2.4
uvicorn

pytest==7.4.0`

	tech := parseRequirementsTxt(content)

	assert.Contains(t, tech, "Python")
	assert.Contains(t, tech, "FastAPI")
	assert.Contains(t, tech, "SQLAlchemy")
	assert.Contains(t, tech, "Pydantic")
	assert.Contains(t, tech, "Pytest")
	assert.NotContains(t, tech, "uvicorn")
}

func TestParseRepoURL(t *testing.T) {
	t.Run("https URL", func(t *testing.T) {
		full, err := ParseRepoURL("https://github.com/octocat/hello-world")
		require.NoError(t, err)
		assert.Equal(t, "octocat/hello-world", full)
	})

	t.Run("trailing slash and .git suffix", func(t *testing.T) {
		full, err := ParseRepoURL("https://github.com/octocat/hello-world.git/")
		require.NoError(t, err)
		assert.Equal(t, "octocat/hello-world", full)
	})

	t.Run("rejects non-github URLs", func(t *testing.T) {
		_, err := ParseRepoURL("https://gitlab.com/octocat/hello-world")
		assert.Error(t, err)
	})

	t.Run("rejects URLs without a repo name", func(t *testing.T) {
		_, err := ParseRepoURL("https://github.com/octocat")
		assert.Error(t, err)
	})
}
