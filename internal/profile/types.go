// Package profile owns the canonical career profile: its schema, the
// category merge/dedup rules, and the lock-guarded atomic store.
package profile

// SchemaVersion is written into new profiles' metadata.
const SchemaVersion = "1.0"

// Profile is the single mutable aggregate: the canonical structured record
// of a person's career history, persisted as profile.json.
type Profile struct {
	Metadata        Metadata          `json:"metadata"`
	PersonalInfo    map[string]string `json:"personal_info"`
	WorkExperience  []WorkExperience  `json:"work_experience"`
	Education       []Education       `json:"education"`
	Skills          Skills            `json:"skills"`
	Projects        []Project         `json:"projects"`
	JobApplications []JobApplication  `json:"job_applications"`
}

// Metadata is mutated on every successful merge.
type Metadata struct {
	Version                 string `json:"version"`
	LastUpdated             string `json:"last_updated,omitempty"`
	TotalDocumentsProcessed int    `json:"total_documents_processed"`
}

// WorkExperience is one employment record. Identity for dedup is
// fuzzy-matched company + role + start month.
type WorkExperience struct {
	ID               string   `json:"id,omitempty"`
	Company          string   `json:"company"`
	Role             string   `json:"role"`
	StartDate        string   `json:"start_date,omitempty"` // YYYY-MM or YYYY
	EndDate          string   `json:"end_date,omitempty"`
	IsCurrent        bool     `json:"is_current"`
	Location         string   `json:"location,omitempty"`
	Responsibilities []string `json:"responsibilities,omitempty"`
	Achievements     []string `json:"achievements,omitempty"`
	Technologies     []string `json:"technologies,omitempty"`
	ExtractedDate    string   `json:"extracted_date,omitempty"`
}

// Education is one degree record, keyed by school + degree.
type Education struct {
	ID                 string   `json:"id,omitempty"`
	Degree             string   `json:"degree"`
	FieldOfStudy       string   `json:"field_of_study,omitempty"`
	School             string   `json:"school"`
	Location           string   `json:"location,omitempty"`
	StartDate          string   `json:"start_date,omitempty"`
	EndDate            string   `json:"end_date,omitempty"`
	GPA                string   `json:"gpa,omitempty"`
	Honors             []string `json:"honors,omitempty"`
	RelevantCoursework []string `json:"relevant_coursework,omitempty"`
	ExtractedDate      string   `json:"extracted_date,omitempty"`
}

// Skills groups all skill categories. Technical skills are bucketed by
// category name; every list is case-insensitively unique.
type Skills struct {
	Technical      map[string][]string `json:"technical"`
	SoftSkills     []string            `json:"soft_skills"`
	Languages      []Language          `json:"languages"`
	Certifications []Certification     `json:"certifications"`
}

// Language is a spoken-language entry, keyed by language name.
type Language struct {
	Language    string `json:"language"`
	Proficiency string `json:"proficiency,omitempty"`
}

// Certification is keyed by certification name.
type Certification struct {
	Name         string `json:"name"`
	Issuer       string `json:"issuer,omitempty"`
	DateObtained string `json:"date_obtained,omitempty"`
	ExpiryDate   string `json:"expiry_date,omitempty"`
}

// Project is keyed by normalized project name.
type Project struct {
	ID            string   `json:"id,omitempty"`
	Name          string   `json:"name"`
	Description   string   `json:"description,omitempty"`
	Role          string   `json:"role,omitempty"`
	StartDate     string   `json:"start_date,omitempty"`
	EndDate       string   `json:"end_date,omitempty"`
	Technologies  []string `json:"technologies,omitempty"`
	Outcomes      []string `json:"outcomes,omitempty"`
	GithubURL     string   `json:"github_url,omitempty"`
	DemoURL       string   `json:"demo_url,omitempty"`
	ExtractedDate string   `json:"extracted_date,omitempty"`
}

// JobApplication is keyed by company + position; its id is referenced by the
// interview endpoint for job context.
type JobApplication struct {
	ID                  string `json:"id,omitempty"`
	Company             string `json:"company"`
	Position            string `json:"position"`
	DateApplied         string `json:"date_applied,omitempty"`
	Status              string `json:"status,omitempty"`
	JobURL              string `json:"job_url,omitempty"`
	ApplicationDeadline string `json:"application_deadline,omitempty"`
	Notes               string `json:"notes,omitempty"`
	ExtractedDate       string `json:"extracted_date,omitempty"`
}

// Extraction is the JSON-shaped output of AI extraction for one document,
// prior to merging. Same category shapes as Profile; ids and extraction
// timestamps are assigned during the merge.
type Extraction struct {
	PersonalInfo    map[string]string `json:"personal_info,omitempty"`
	WorkExperience  []WorkExperience  `json:"work_experience,omitempty"`
	Education       []Education       `json:"education,omitempty"`
	Skills          *Skills           `json:"skills,omitempty"`
	Projects        []Project         `json:"projects,omitempty"`
	JobApplications []JobApplication  `json:"job_applications,omitempty"`
}

// ItemCounts returns how many records the extraction carries per category,
// recorded in the ledger for diagnostics.
func (e *Extraction) ItemCounts() map[string]int {
	return map[string]int{
		"work_experience":  len(e.WorkExperience),
		"education":        len(e.Education),
		"projects":         len(e.Projects),
		"job_applications": len(e.JobApplications),
	}
}

// NewEmptyProfile creates the initial profile structure written on first run.
func NewEmptyProfile() *Profile {
	return &Profile{
		Metadata:     Metadata{Version: SchemaVersion},
		PersonalInfo: map[string]string{},
		Skills: Skills{
			Technical: map[string][]string{},
		},
	}
}

// MergeResult summarizes what one merge changed per category.
type MergeResult struct {
	Added  map[string]int `json:"added"`
	Merged map[string]int `json:"merged"`
}

func newMergeResult() *MergeResult {
	return &MergeResult{
		Added:  map[string]int{},
		Merged: map[string]int{},
	}
}
