package ingestion

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadJobs_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.json")
	jobs := []Job{
		{
			ID:       "job-1",
			Title:    "Journeyman Welder",
			Company:  "Acme Fabrication",
			Location: "Hamilton, ON",
			Skills:   []string{"MIG welding", "blueprint reading"},
		},
		{ID: "job-2", Title: "Apprentice Electrician"},
	}

	require.NoError(t, SaveJobs(path, jobs))

	loaded, err := LoadJobs(path)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "Journeyman Welder", loaded[0].Title)
	assert.Equal(t, []string{"MIG welding", "blueprint reading"}, loaded[0].Skills)
	assert.Empty(t, loaded[1].Skills)
}

func TestLoadJobs_MissingFile(t *testing.T) {
	_, err := LoadJobs(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
}

func TestLoadJobs_MalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("[{"), 0o644))

	_, err := LoadJobs(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse")
}

func TestExtractSkills_HeadingWithList(t *testing.T) {
	html := `
	<html><body>
		<h2>About the role</h2>
		<p>We build things.</p>
		<h2>Required Skills</h2>
		<ul>
			<li>MIG and TIG welding</li>
			<li>Blueprint reading</li>
			<li>  Forklift operation  </li>
		</ul>
		<h2>Benefits</h2>
		<ul><li>Dental coverage</li></ul>
	</body></html>`

	skills, err := ExtractSkills(html)
	require.NoError(t, err)
	assert.Equal(t, []string{"MIG and TIG welding", "Blueprint reading", "Forklift operation"}, skills)
}

func TestExtractSkills_QualificationsHeading(t *testing.T) {
	html := `
	<html><body>
		<h3>Qualifications</h3>
		<p>The ideal candidate has:</p>
		<ul>
			<li>Red Seal certification</li>
			<li>Valid driver's licence</li>
		</ul>
	</body></html>`

	skills, err := ExtractSkills(html)
	require.NoError(t, err)
	assert.Equal(t, []string{"Red Seal certification", "Valid driver's licence"}, skills)
}

func TestExtractSkills_InlineStrongHeading(t *testing.T) {
	html := `
	<html><body>
		<p><strong>Skills:</strong></p>
		<ul><li>Carpentry</li></ul>
	</body></html>`

	skills, err := ExtractSkills(html)
	require.NoError(t, err)
	assert.Equal(t, []string{"Carpentry"}, skills)
}

func TestExtractSkills_NoSkillSection(t *testing.T) {
	html := `<html><body><h2>About us</h2><ul><li>Founded 1990</li></ul></body></html>`

	skills, err := ExtractSkills(html)
	require.NoError(t, err)
	assert.Empty(t, skills)
}
