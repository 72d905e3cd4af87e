package search

import "strings"

// KnownSkills is the vocabulary scanned for in free-text resume feedback.
var KnownSkills = []string{
	"Go", "Golang", "Python", "Java", "JavaScript", "TypeScript", "C#", "C++", "Ruby", "PHP", "Rust", "Kotlin", "Swift", "Scala",
	"React", "Angular", "Vue", "Next.js", "Node.js", "Django", "Flask", "Spring", "Rails", ".NET", "GraphQL",
	"SQL", "PostgreSQL", "MySQL", "MongoDB", "Redis", "Elasticsearch", "Kafka", "RabbitMQ",
	"Docker", "Kubernetes", "Terraform", "AWS", "GCP", "Azure", "Linux", "CI/CD", "Git",
	"Machine Learning", "Data Analysis", "Pandas", "TensorFlow", "PyTorch", "Tableau",
	"Figma", "UX", "Agile", "Scrum", "Project Management", "Leadership", "Communication",
}

// ExtractSkills returns the KnownSkills mentioned in any of the texts, in
// vocabulary order, each at most once.
func ExtractSkills(texts ...string) []string {
	lower := make([]string, 0, len(texts))
	for _, t := range texts {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			lower = append(lower, t)
		}
	}

	out := make([]string, 0)
	if len(lower) == 0 {
		return out
	}
	for _, skill := range KnownSkills {
		k := strings.ToLower(skill)
		for _, t := range lower {
			if ContainsWord(t, k) {
				out = append(out, skill)
				break
			}
		}
	}
	return out
}

// MergeTerms concatenates term lists, dropping blanks and case-insensitive
// duplicates while keeping first-seen order.
func MergeTerms(lists ...[]string) []string {
	out := make([]string, 0)
	seen := make(map[string]struct{})
	for _, l := range lists {
		for _, t := range l {
			t = strings.TrimSpace(t)
			if t == "" {
				continue
			}
			k := strings.ToLower(t)
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			out = append(out, t)
		}
	}
	return out
}
