package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResume(t *testing.T) {
	t.Parallel()

	t.Run("valid document", func(t *testing.T) {
		t.Parallel()

		data := `{
			"personal_info": {"name": "Ada Lovelace", "email": "ada@example.com"},
			"summary": "Engineer.",
			"skills": {"frontend": ["react"], "backend": ["go"], "devops": [], "cloud": ["aws"], "ai_ml": [], "tools": ["git"]},
			"experience": [{"title": "Engineer", "company": "Analytical Engines", "duration": "2018-2024", "location": "Remote", "bullets": ["built things"]}],
			"education": ["BSc Mathematics"],
			"projects": [{"name": "notes", "commits": 42, "description": "a project", "bullets": ["wrote it"]}],
			"keywords": ["go", "aws"]
		}`

		resume, err := ParseResume(data)

		require.NoError(t, err)
		assert.Equal(t, "Ada Lovelace", resume.PersonalInfo["name"])
		assert.Equal(t, []string{"go"}, resume.Skills.Backend)
		require.Len(t, resume.Projects, 1)
		assert.Equal(t, 42, resume.Projects[0].Commits)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		t.Parallel()

		_, err := ParseResume("{not json")

		assert.ErrorIs(t, err, ErrInvalidFormat)
	})
}
