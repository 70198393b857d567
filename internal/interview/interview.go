// Package interview builds interview-coach prompts from the stored profile
// and post-processes generated answers.
package interview

import (
	"fmt"
	"sort"
	"strings"

	"github.com/chays/careerscan/internal/profile"
	"github.com/chays/careerscan/internal/prompts"
)

const (
	maxResponsibilities = 3
	maxSkills           = 15
)

// FindJobContext resolves an optional job application id against the
// profile. An empty id or an unknown id yields nil.
func FindJobContext(p *profile.Profile, jobID string) *profile.JobApplication {
	if jobID == "" {
		return nil
	}
	for i := range p.JobApplications {
		if p.JobApplications[i].ID == jobID {
			return &p.JobApplications[i]
		}
	}
	return nil
}

// BuildPrompt assembles the interview-coach prompt from the candidate's
// profile, the question, and an optional target job. Only a condensed view
// of the profile goes into the prompt: the top responsibilities per role and
// the first skills across technical categories.
func BuildPrompt(p *profile.Profile, question string, jobContext *profile.JobApplication) string {
	name := p.PersonalInfo["name"]
	if name == "" {
		name = "the candidate"
	}

	template := prompts.MustGet("interview.json", "generate-answer")
	return prompts.Format(template, map[string]string{
		"Name":           name,
		"Location":       orNotSpecified(p.PersonalInfo["location"]),
		"Email":          orNotSpecified(p.PersonalInfo["email"]),
		"WorkExperience": formatWorkExperience(p.WorkExperience),
		"Skills":         formatSkills(&p.Skills),
		"Projects":       formatProjects(p.Projects),
		"JobContext":     formatJobContext(jobContext),
		"Question":       question,
	})
}

// ReferencedExperiences lists the work experiences an answer appears to draw
// on, formatted "Role at Company". The match is a case-insensitive substring
// check against the answer text.
func ReferencedExperiences(p *profile.Profile, answer string) []string {
	lower := strings.ToLower(answer)
	var referenced []string
	for _, exp := range p.WorkExperience {
		company := strings.ToLower(exp.Company)
		role := strings.ToLower(exp.Role)
		if (company != "" && strings.Contains(lower, company)) ||
			(role != "" && strings.Contains(lower, role)) {
			referenced = append(referenced, fmt.Sprintf("%s at %s", exp.Role, exp.Company))
		}
	}
	return referenced
}

func formatWorkExperience(experiences []profile.WorkExperience) string {
	var sb strings.Builder
	for _, exp := range experiences {
		end := exp.EndDate
		if end == "" {
			end = "Present"
		}
		fmt.Fprintf(&sb, "\n• %s at %s\n", exp.Role, exp.Company)
		fmt.Fprintf(&sb, "  %s - %s\n", exp.StartDate, end)
		for i, resp := range exp.Responsibilities {
			if i >= maxResponsibilities {
				break
			}
			fmt.Fprintf(&sb, "  - %s\n", resp)
		}
		if len(exp.Technologies) > 0 {
			fmt.Fprintf(&sb, "  Technologies: %s\n", strings.Join(exp.Technologies, ", "))
		}
	}
	return sb.String()
}

func formatSkills(skills *profile.Skills) string {
	categories := make([]string, 0, len(skills.Technical))
	for category := range skills.Technical {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	var all []string
	for _, category := range categories {
		all = append(all, skills.Technical[category]...)
	}
	if len(all) == 0 {
		return "Not specified"
	}
	if len(all) > maxSkills {
		all = all[:maxSkills]
	}
	return strings.Join(all, ", ")
}

func formatProjects(projects []profile.Project) string {
	var sb strings.Builder
	for _, proj := range projects {
		fmt.Fprintf(&sb, "\n• %s: %s\n", proj.Name, proj.Description)
		if len(proj.Technologies) > 0 {
			fmt.Fprintf(&sb, "  Technologies: %s\n", strings.Join(proj.Technologies, ", "))
		}
	}
	return sb.String()
}

func formatJobContext(job *profile.JobApplication) string {
	if job == nil {
		return ""
	}
	return fmt.Sprintf("\nTARGET POSITION: %s at %s\nTailor the response to demonstrate relevant skills for this specific role.\n",
		job.Position, job.Company)
}

func orNotSpecified(v string) string {
	if v == "" {
		return "Not specified"
	}
	return v
}
