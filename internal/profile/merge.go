package profile

import (
	"strings"

	"github.com/google/uuid"
)

// mergeExtraction folds one document's structured fields into the profile
// in place. For each category, incoming records are matched against existing
// ones under the category's identity rule; matches merge field-by-field
// (non-empty scalars overwrite, lists union), misses append with a fresh id.
// The operation is idempotent: re-applying the same extraction changes
// nothing but metadata bookkeeping.
func mergeExtraction(p *Profile, ext *Extraction, now string) *MergeResult {
	res := newMergeResult()

	mergeWorkExperience(p, ext.WorkExperience, now, res)
	mergeEducation(p, ext.Education, now, res)
	mergeProjects(p, ext.Projects, now, res)
	mergeJobApplications(p, ext.JobApplications, now, res)
	if ext.Skills != nil {
		mergeSkills(&p.Skills, ext.Skills, res)
	}
	mergePersonalInfo(p, ext.PersonalInfo)

	p.Metadata.TotalDocumentsProcessed++
	p.Metadata.LastUpdated = now
	if p.Metadata.Version == "" {
		p.Metadata.Version = SchemaVersion
	}

	return res
}

func mergeWorkExperience(p *Profile, incoming []WorkExperience, now string, res *MergeResult) {
	for _, in := range incoming {
		matched := false
		for i := range p.WorkExperience {
			existing := &p.WorkExperience[i]
			if !sameExperience(existing, &in) {
				continue
			}

			overwrite(&existing.Company, in.Company)
			overwrite(&existing.Role, in.Role)
			overwrite(&existing.StartDate, in.StartDate)
			overwrite(&existing.EndDate, in.EndDate)
			overwrite(&existing.Location, in.Location)
			if in.EndDate != "" || in.IsCurrent {
				existing.IsCurrent = in.IsCurrent
			}
			existing.Responsibilities = unionStrings(existing.Responsibilities, in.Responsibilities)
			existing.Achievements = unionStrings(existing.Achievements, in.Achievements)
			existing.Technologies = unionStringsFold(existing.Technologies, in.Technologies)

			res.Merged["work_experience"]++
			matched = true
			break
		}
		if !matched {
			in.ID = freshID(in.ID)
			in.ExtractedDate = now
			p.WorkExperience = append(p.WorkExperience, in)
			res.Added["work_experience"]++
		}
	}
}

func mergeEducation(p *Profile, incoming []Education, now string, res *MergeResult) {
	for _, in := range incoming {
		matched := false
		for i := range p.Education {
			existing := &p.Education[i]
			if !sameEducation(existing, &in) {
				continue
			}

			overwrite(&existing.Degree, in.Degree)
			overwrite(&existing.FieldOfStudy, in.FieldOfStudy)
			overwrite(&existing.Location, in.Location)
			overwrite(&existing.StartDate, in.StartDate)
			overwrite(&existing.EndDate, in.EndDate)
			overwrite(&existing.GPA, in.GPA)
			existing.Honors = unionStrings(existing.Honors, in.Honors)
			existing.RelevantCoursework = unionStrings(existing.RelevantCoursework, in.RelevantCoursework)

			res.Merged["education"]++
			matched = true
			break
		}
		if !matched {
			in.ID = freshID(in.ID)
			in.ExtractedDate = now
			p.Education = append(p.Education, in)
			res.Added["education"]++
		}
	}
}

func mergeProjects(p *Profile, incoming []Project, now string, res *MergeResult) {
	for _, in := range incoming {
		matched := false
		for i := range p.Projects {
			existing := &p.Projects[i]
			if !strings.EqualFold(strings.TrimSpace(existing.Name), strings.TrimSpace(in.Name)) {
				continue
			}

			overwrite(&existing.Description, in.Description)
			overwrite(&existing.Role, in.Role)
			overwrite(&existing.StartDate, in.StartDate)
			overwrite(&existing.EndDate, in.EndDate)
			overwrite(&existing.GithubURL, in.GithubURL)
			overwrite(&existing.DemoURL, in.DemoURL)
			existing.Technologies = unionStringsFold(existing.Technologies, in.Technologies)
			existing.Outcomes = unionStrings(existing.Outcomes, in.Outcomes)

			res.Merged["projects"]++
			matched = true
			break
		}
		if !matched {
			in.ID = freshID(in.ID)
			in.ExtractedDate = now
			p.Projects = append(p.Projects, in)
			res.Added["projects"]++
		}
	}
}

func mergeJobApplications(p *Profile, incoming []JobApplication, now string, res *MergeResult) {
	for _, in := range incoming {
		matched := false
		for i := range p.JobApplications {
			existing := &p.JobApplications[i]
			if !CompaniesMatch(existing.Company, in.Company) {
				continue
			}
			if !strings.EqualFold(strings.TrimSpace(existing.Position), strings.TrimSpace(in.Position)) {
				continue
			}

			overwrite(&existing.DateApplied, in.DateApplied)
			overwrite(&existing.Status, in.Status)
			overwrite(&existing.JobURL, in.JobURL)
			overwrite(&existing.ApplicationDeadline, in.ApplicationDeadline)
			overwrite(&existing.Notes, in.Notes)

			res.Merged["job_applications"]++
			matched = true
			break
		}
		if !matched {
			in.ID = freshID(in.ID)
			in.ExtractedDate = now
			p.JobApplications = append(p.JobApplications, in)
			res.Added["job_applications"]++
		}
	}
}

func mergeSkills(dst *Skills, in *Skills, res *MergeResult) {
	if dst.Technical == nil {
		dst.Technical = map[string][]string{}
	}
	for category, items := range in.Technical {
		before := len(dst.Technical[category])
		dst.Technical[category] = unionStringsFold(dst.Technical[category], items)
		res.Added["skills"] += len(dst.Technical[category]) - before
	}

	before := len(dst.SoftSkills)
	dst.SoftSkills = unionStringsFold(dst.SoftSkills, in.SoftSkills)
	res.Added["skills"] += len(dst.SoftSkills) - before

	for _, lang := range in.Languages {
		if lang.Language == "" {
			continue
		}
		exists := false
		for _, have := range dst.Languages {
			if strings.EqualFold(have.Language, lang.Language) {
				exists = true
				break
			}
		}
		if !exists {
			dst.Languages = append(dst.Languages, lang)
			res.Added["skills"]++
		}
	}

	for _, cert := range in.Certifications {
		if cert.Name == "" {
			continue
		}
		exists := false
		for _, have := range dst.Certifications {
			if strings.EqualFold(have.Name, cert.Name) {
				exists = true
				break
			}
		}
		if !exists {
			dst.Certifications = append(dst.Certifications, cert)
			res.Added["skills"]++
		}
	}
}

// mergePersonalInfo overwrites fields with later non-empty values; no
// history is kept.
func mergePersonalInfo(p *Profile, in map[string]string) {
	if len(in) == 0 {
		return
	}
	if p.PersonalInfo == nil {
		p.PersonalInfo = map[string]string{}
	}
	for key, value := range in {
		value = strings.TrimSpace(value)
		if value == "" || value == "null" {
			continue
		}
		p.PersonalInfo[key] = value
	}
}

// overwrite replaces *dst with src when src is non-empty.
func overwrite(dst *string, src string) {
	if strings.TrimSpace(src) != "" {
		*dst = src
	}
}

// unionStrings appends items not already present, preserving first-seen
// order and dropping exact duplicates.
func unionStrings(existing, incoming []string) []string {
	seen := make(map[string]struct{}, len(existing))
	for _, s := range existing {
		seen[s] = struct{}{}
	}
	for _, s := range incoming {
		if strings.TrimSpace(s) == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		existing = append(existing, s)
		seen[s] = struct{}{}
	}
	return existing
}

// unionStringsFold is unionStrings with case-insensitive uniqueness, used
// for set-like fields (technologies, skills).
func unionStringsFold(existing, incoming []string) []string {
	seen := make(map[string]struct{}, len(existing))
	for _, s := range existing {
		seen[strings.ToLower(s)] = struct{}{}
	}
	for _, s := range incoming {
		if strings.TrimSpace(s) == "" {
			continue
		}
		key := strings.ToLower(s)
		if _, ok := seen[key]; ok {
			continue
		}
		existing = append(existing, s)
		seen[key] = struct{}{}
	}
	return existing
}

func freshID(id string) string {
	if id != "" {
		return id
	}
	return uuid.NewString()
}
