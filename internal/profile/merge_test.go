package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testNow = "2026-01-15T10:00:00Z"

func sampleExtraction() *Extraction {
	return &Extraction{
		PersonalInfo: map[string]string{
			"name":  "Jane Doe",
			"email": "jane@example.com",
		},
		WorkExperience: []WorkExperience{
			{
				Company:          "Acme Corp",
				Role:             "Software Engineer",
				StartDate:        "2021-03",
				Responsibilities: []string{"Built ingestion pipeline"},
				Technologies:     []string{"Go", "Postgres"},
			},
		},
		Education: []Education{
			{School: "Stanford University", Degree: "BS", FieldOfStudy: "Computer Science"},
		},
		Skills: &Skills{
			Technical:  map[string][]string{"languages": {"Go", "Python"}},
			SoftSkills: []string{"Communication"},
		},
		Projects: []Project{
			{Name: "careerscan", Description: "Document pipeline", Technologies: []string{"Go"}},
		},
		JobApplications: []JobApplication{
			{Company: "Globex", Position: "Backend Engineer", Status: "applied"},
		},
	}
}

func TestMergeExtractionIntoEmptyProfile(t *testing.T) {
	p := NewEmptyProfile()
	res := mergeExtraction(p, sampleExtraction(), testNow)

	assert.Equal(t, 1, res.Added["work_experience"])
	assert.Equal(t, 1, res.Added["education"])
	assert.Equal(t, 1, res.Added["projects"])
	assert.Equal(t, 1, res.Added["job_applications"])
	assert.Empty(t, res.Merged)

	require.Len(t, p.WorkExperience, 1)
	exp := p.WorkExperience[0]
	assert.NotEmpty(t, exp.ID, "appended records get ids")
	assert.Equal(t, testNow, exp.ExtractedDate)

	assert.Equal(t, "Jane Doe", p.PersonalInfo["name"])
	assert.Equal(t, 1, p.Metadata.TotalDocumentsProcessed)
	assert.Equal(t, testNow, p.Metadata.LastUpdated)
}

func TestMergeExtractionIsIdempotent(t *testing.T) {
	p := NewEmptyProfile()
	mergeExtraction(p, sampleExtraction(), testNow)

	// Snapshot the ids so we can prove nothing was re-appended.
	firstID := p.WorkExperience[0].ID

	res := mergeExtraction(p, sampleExtraction(), "2026-01-16T10:00:00Z")

	assert.Empty(t, res.Added["work_experience"])
	assert.Equal(t, 1, res.Merged["work_experience"])

	require.Len(t, p.WorkExperience, 1)
	require.Len(t, p.Education, 1)
	require.Len(t, p.Projects, 1)
	require.Len(t, p.JobApplications, 1)
	assert.Equal(t, firstID, p.WorkExperience[0].ID)
	assert.Equal(t, []string{"Built ingestion pipeline"}, p.WorkExperience[0].Responsibilities)
	assert.Equal(t, []string{"Go", "Postgres"}, p.WorkExperience[0].Technologies)
	assert.Equal(t, []string{"Go", "Python"}, p.Skills.Technical["languages"])
}

func TestMergeWorkExperienceFuzzyCompanyVariant(t *testing.T) {
	p := NewEmptyProfile()
	mergeExtraction(p, sampleExtraction(), testNow)

	variant := &Extraction{
		WorkExperience: []WorkExperience{
			{
				Company:          "ACME CORP.",
				Role:             "software engineer",
				StartDate:        "2021-03-01",
				EndDate:          "2023-06",
				Location:         "Remote",
				Responsibilities: []string{"Built ingestion pipeline", "Mentored juniors"},
				Technologies:     []string{"go", "Kubernetes"},
			},
		},
	}
	res := mergeExtraction(p, variant, testNow)

	assert.Equal(t, 1, res.Merged["work_experience"])
	require.Len(t, p.WorkExperience, 1, "variant spellings must not create a second record")

	exp := p.WorkExperience[0]
	assert.Equal(t, "2023-06", exp.EndDate)
	assert.Equal(t, "Remote", exp.Location)
	assert.Equal(t, []string{"Built ingestion pipeline", "Mentored juniors"}, exp.Responsibilities)
	// "go" folds into the existing "Go"; Kubernetes is new.
	assert.Equal(t, []string{"Go", "Postgres", "Kubernetes"}, exp.Technologies)
}

func TestMergeDoesNotEraseWithEmptyFields(t *testing.T) {
	p := NewEmptyProfile()
	mergeExtraction(p, sampleExtraction(), testNow)

	sparse := &Extraction{
		WorkExperience: []WorkExperience{
			{Company: "Acme Corp", Role: "Software Engineer", StartDate: "2021-03"},
		},
	}
	mergeExtraction(p, sparse, testNow)

	exp := p.WorkExperience[0]
	assert.Equal(t, []string{"Built ingestion pipeline"}, exp.Responsibilities)
	assert.Equal(t, []string{"Go", "Postgres"}, exp.Technologies)
}

func TestMergeIsCurrentTransition(t *testing.T) {
	p := NewEmptyProfile()
	mergeExtraction(p, &Extraction{
		WorkExperience: []WorkExperience{
			{Company: "Acme", Role: "Engineer", StartDate: "2021-03", IsCurrent: true},
		},
	}, testNow)

	// A later document reports the role as ended.
	mergeExtraction(p, &Extraction{
		WorkExperience: []WorkExperience{
			{Company: "Acme", Role: "Engineer", StartDate: "2021-03", EndDate: "2024-01"},
		},
	}, testNow)

	exp := p.WorkExperience[0]
	assert.False(t, exp.IsCurrent)
	assert.Equal(t, "2024-01", exp.EndDate)
}

func TestMergeDistinctExperiencesAppend(t *testing.T) {
	p := NewEmptyProfile()
	mergeExtraction(p, sampleExtraction(), testNow)

	other := &Extraction{
		WorkExperience: []WorkExperience{
			{Company: "Acme Corp", Role: "Staff Engineer", StartDate: "2023-07"},
		},
	}
	res := mergeExtraction(p, other, testNow)

	assert.Equal(t, 1, res.Added["work_experience"])
	assert.Len(t, p.WorkExperience, 2)
	assert.NotEqual(t, p.WorkExperience[0].ID, p.WorkExperience[1].ID)
}

func TestMergeSkillsCaseInsensitive(t *testing.T) {
	p := NewEmptyProfile()
	mergeExtraction(p, &Extraction{
		Skills: &Skills{Technical: map[string][]string{"languages": {"Go", "Python"}}},
	}, testNow)

	res := mergeExtraction(p, &Extraction{
		Skills: &Skills{Technical: map[string][]string{"languages": {"GO", "Rust"}}},
	}, testNow)

	assert.Equal(t, []string{"Go", "Python", "Rust"}, p.Skills.Technical["languages"])
	assert.Equal(t, 1, res.Added["skills"])
}

func TestMergeLanguagesAndCertifications(t *testing.T) {
	p := NewEmptyProfile()
	mergeExtraction(p, &Extraction{
		Skills: &Skills{
			Languages:      []Language{{Language: "Spanish", Proficiency: "fluent"}},
			Certifications: []Certification{{Name: "CKA", Issuer: "CNCF"}},
		},
	}, testNow)
	mergeExtraction(p, &Extraction{
		Skills: &Skills{
			Languages:      []Language{{Language: "spanish"}, {Language: "French"}},
			Certifications: []Certification{{Name: "cka"}},
		},
	}, testNow)

	require.Len(t, p.Skills.Languages, 2)
	assert.Equal(t, "Spanish", p.Skills.Languages[0].Language)
	require.Len(t, p.Skills.Certifications, 1)
	assert.Equal(t, "CKA", p.Skills.Certifications[0].Name)
}

func TestMergePersonalInfoSkipsNullAndEmpty(t *testing.T) {
	p := NewEmptyProfile()
	p.PersonalInfo["name"] = "Jane Doe"

	mergeExtraction(p, &Extraction{
		PersonalInfo: map[string]string{
			"name":     "null",
			"location": "",
			"phone":    "555-0100",
		},
	}, testNow)

	assert.Equal(t, "Jane Doe", p.PersonalInfo["name"])
	assert.NotContains(t, p.PersonalInfo, "location")
	assert.Equal(t, "555-0100", p.PersonalInfo["phone"])
}

func TestUnionStrings(t *testing.T) {
	got := unionStrings([]string{"a", "b"}, []string{"b", "c", "", "a"})
	assert.Equal(t, []string{"a", "b", "c"}, got)
}

func TestUnionStringsFold(t *testing.T) {
	got := unionStringsFold([]string{"Go"}, []string{"go", "GO", "Rust"})
	assert.Equal(t, []string{"Go", "Rust"}, got)
}
