package profile

import (
	"strings"
	"unicode"
)

// Tunables for the work-experience identity heuristic. Company similarity is
// normalized-containment or token-overlap Jaccard at or above the threshold;
// start dates match on their YYYY-MM prefix.
const (
	companyMatchThreshold = 0.8
	startDatePrecision    = 7
)

// corporateSuffixes are dropped from company names before comparison.
var corporateSuffixes = []string{"inc", "llc", "ltd", "corp", "co", "company", "gmbh"}

// NormalizeCompany lowercases a company name, strips punctuation, and drops
// trailing corporate suffixes, so "ACME Corp." and "Acme corp" compare equal.
func NormalizeCompany(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))

	var sb strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			sb.WriteRune(r)
		}
	}
	tokens := strings.Fields(sb.String())

	for len(tokens) > 1 {
		last := tokens[len(tokens)-1]
		if !isCorporateSuffix(last) {
			break
		}
		tokens = tokens[:len(tokens)-1]
	}
	return strings.Join(tokens, " ")
}

func isCorporateSuffix(token string) bool {
	for _, s := range corporateSuffixes {
		if token == s {
			return true
		}
	}
	return false
}

// CompaniesMatch reports whether two company names likely refer to the same
// employer: equal or containment after normalization, or token-overlap
// Jaccard similarity at or above companyMatchThreshold.
func CompaniesMatch(a, b string) bool {
	na, nb := NormalizeCompany(a), NormalizeCompany(b)
	if na == "" || nb == "" {
		return false
	}
	if na == nb {
		return true
	}
	if strings.Contains(na, nb) || strings.Contains(nb, na) {
		return true
	}
	return tokenJaccard(na, nb) >= companyMatchThreshold
}

// tokenJaccard computes |intersection| / |union| over whitespace tokens.
func tokenJaccard(a, b string) float64 {
	setA := map[string]struct{}{}
	for _, tok := range strings.Fields(a) {
		setA[tok] = struct{}{}
	}
	setB := map[string]struct{}{}
	for _, tok := range strings.Fields(b) {
		setB[tok] = struct{}{}
	}
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	intersection := 0
	for tok := range setA {
		if _, ok := setB[tok]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	return float64(intersection) / float64(union)
}

// sameStartMonth compares dates on their YYYY-MM prefix. Two empty dates
// match; one empty and one set do not.
func sameStartMonth(a, b string) bool {
	if a == "" && b == "" {
		return true
	}
	if a == "" || b == "" {
		return false
	}
	return truncate(a, startDatePrecision) == truncate(b, startDatePrecision)
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

// sameExperience is the work-experience identity rule: fuzzy company match,
// exact case-insensitive role, and same start month.
func sameExperience(a, b *WorkExperience) bool {
	if !CompaniesMatch(a.Company, b.Company) {
		return false
	}
	if !strings.EqualFold(strings.TrimSpace(a.Role), strings.TrimSpace(b.Role)) {
		return false
	}
	return sameStartMonth(a.StartDate, b.StartDate)
}

// sameEducation keys education records by school containment plus degree.
// A missing degree on either side does not break the match.
func sameEducation(a, b *Education) bool {
	sa := strings.ToLower(strings.TrimSpace(a.School))
	sb := strings.ToLower(strings.TrimSpace(b.School))
	if sa == "" || sb == "" {
		return false
	}
	if !strings.Contains(sa, sb) && !strings.Contains(sb, sa) {
		return false
	}

	da := strings.ToLower(strings.TrimSpace(a.Degree))
	db := strings.ToLower(strings.TrimSpace(b.Degree))
	if da != "" && db != "" && da != db {
		return false
	}
	return true
}
