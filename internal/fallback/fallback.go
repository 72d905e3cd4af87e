// Package fallback holds the static payloads served when the AI provider or
// the job-search API is unavailable.
package fallback

import (
	"fmt"
	"strings"
	"time"

	"resume-coach/internal/domain/job"
	"resume-coach/internal/domain/resume"
)

// Analysis is returned in place of a provider analysis.
func Analysis() resume.Analysis {
	return resume.Analysis{
		Score: 72,
		Strengths: []string{
			"Clear and professional formatting",
			"Relevant work experience is listed in reverse chronological order",
			"Technical skills are easy to find",
		},
		Weaknesses: []string{
			"Achievements are described as duties rather than measurable results",
			"Professional summary is generic",
			"Some bullet points are too long to scan quickly",
		},
		Suggestions: []string{
			"Quantify achievements with numbers, percentages or timeframes",
			"Tailor the summary to the role you are applying for",
			"Start each bullet point with a strong action verb",
			"Mirror keywords from the job description to pass applicant tracking systems",
		},
		Sections: resume.Sections{
			Contact:    resume.SectionFeedback{Score: 90, Feedback: "Contact details are complete. Consider adding a LinkedIn or portfolio link."},
			Summary:    resume.SectionFeedback{Score: 65, Feedback: "The summary reads as generic. Highlight two or three strengths that match your target role."},
			Experience: resume.SectionFeedback{Score: 75, Feedback: "Experience is relevant. Add measurable outcomes to show impact."},
			Education:  resume.SectionFeedback{Score: 80, Feedback: "Education is clearly presented. Certifications could be listed here too."},
			Skills:     resume.SectionFeedback{Score: 70, Feedback: "Group skills by category and remove outdated tools."},
		},
		Skills: []string{},
	}
}

type mockJob struct {
	title        string
	company      string
	location     string
	description  string
	requirements []string
	salary       string
	kind         string
	remote       bool
	ageDays      int
}

var mockJobs = []mockJob{
	{
		title:        "Senior Frontend Developer",
		company:      "Brightline Labs",
		location:     "San Francisco, CA",
		description:  "Build responsive web applications with React and TypeScript, working closely with design and backend teams.",
		requirements: []string{"React", "TypeScript", "JavaScript", "CSS", "Git"},
		salary:       "130,000 - 160,000",
		kind:         "Full-time",
		ageDays:      1,
	},
	{
		title:        "Backend Engineer",
		company:      "Northwind Systems",
		location:     "Remote",
		description:  "Design and operate APIs and data pipelines in Go and PostgreSQL on AWS.",
		requirements: []string{"Go", "PostgreSQL", "Docker", "AWS", "Redis"},
		salary:       "120,000 - 150,000",
		kind:         "Full-time",
		remote:       true,
		ageDays:      2,
	},
	{
		title:        "Full Stack Developer",
		company:      "Cedar Health",
		location:     "Austin, TX",
		description:  "Own features end to end across a Node.js API and a React front end.",
		requirements: []string{"Node.js", "React", "MongoDB", "JavaScript", "Agile"},
		salary:       "105,000 - 130,000",
		kind:         "Full-time",
		ageDays:      4,
	},
	{
		title:        "Data Scientist",
		company:      "Quantis Analytics",
		location:     "New York, NY",
		description:  "Build machine learning models and dashboards that inform product decisions.",
		requirements: []string{"Python", "Machine Learning", "SQL", "Pandas", "Tableau"},
		salary:       "125,000 - 155,000",
		kind:         "Full-time",
		ageDays:      6,
	},
	{
		title:        "DevOps Engineer",
		company:      "Stackforge",
		location:     "Remote",
		description:  "Automate infrastructure and CI/CD pipelines for a growing SaaS platform.",
		requirements: []string{"Kubernetes", "Terraform", "AWS", "CI/CD", "Linux"},
		salary:       "115,000 - 145,000",
		kind:         "Contract",
		remote:       true,
		ageDays:      3,
	},
	{
		title:        "UX Designer",
		company:      "Pixel & Co",
		location:     "Seattle, WA",
		description:  "Research user needs and design intuitive flows for web and mobile products.",
		requirements: []string{"Figma", "UX", "Communication"},
		salary:       "95,000 - 120,000",
		kind:         "Full-time",
		ageDays:      9,
	},
	{
		title:        "Product Manager",
		company:      "Lumen Commerce",
		location:     "Chicago, IL",
		description:  "Lead a cross-functional team shipping checkout and payments features.",
		requirements: []string{"Project Management", "Agile", "Data Analysis", "Leadership"},
		salary:       "135,000 - 165,000",
		kind:         "Full-time",
		ageDays:      12,
	},
	{
		title:        "Junior Python Developer",
		company:      "Greenleaf Software",
		location:     "Boston, MA",
		description:  "Maintain Django services and write automated tests alongside senior engineers.",
		requirements: []string{"Python", "Django", "SQL", "Git"},
		salary:       "75,000 - 90,000",
		kind:         "Part-time",
		ageDays:      20,
	},
}

// Jobs returns the mock job list with posted dates relative to now.
func Jobs(now time.Time) []job.Posting {
	out := make([]job.Posting, 0, len(mockJobs))
	for i, m := range mockJobs {
		reqs := make([]string, len(m.requirements))
		copy(reqs, m.requirements)
		out = append(out, job.Posting{
			ID:           fmt.Sprintf("mock-%d", i+1),
			Title:        m.title,
			Company:      m.company,
			Location:     m.location,
			Description:  m.description,
			Requirements: reqs,
			Salary:       m.salary,
			Type:         m.kind,
			Remote:       m.remote,
			PostedDate:   now.AddDate(0, 0, -m.ageDays).UTC().Format("2006-01-02"),
			ApplyURL:     "https://example.com/jobs/" + slug(m.title),
		})
	}
	return out
}

// ResumeContent fills the static resume template with the caller's input.
func ResumeContent(jobTitle, experience string, skills []string) string {
	jobTitle = strings.TrimSpace(jobTitle)
	experience = strings.TrimSpace(experience)
	if experience == "" {
		experience = "several years of"
	}

	clean := make([]string, 0, len(skills))
	for _, s := range skills {
		if s = strings.TrimSpace(s); s != "" {
			clean = append(clean, s)
		}
	}
	skillLine := "problem solving, collaboration and continuous learning"
	if len(clean) > 0 {
		skillLine = strings.Join(clean, ", ")
	}

	var b strings.Builder
	b.WriteString("PROFESSIONAL SUMMARY\n")
	fmt.Fprintf(&b, "Results-driven %s with %s experience delivering high-quality work in fast-paced environments. ", jobTitle, experience)
	fmt.Fprintf(&b, "Skilled in %s, with a track record of turning requirements into measurable outcomes.\n\n", skillLine)

	b.WriteString("KEY ACHIEVEMENTS\n")
	fmt.Fprintf(&b, "- Delivered projects as a %s on schedule while improving quality and team velocity\n", jobTitle)
	b.WriteString("- Collaborated with cross-functional stakeholders to define priorities and ship features\n")
	b.WriteString("- Identified process improvements that reduced manual effort and operating cost\n\n")

	b.WriteString("CORE SKILLS\n")
	if len(clean) == 0 {
		b.WriteString("- Problem solving\n- Collaboration\n- Continuous learning\n")
	}
	for _, s := range clean {
		fmt.Fprintf(&b, "- %s\n", s)
	}
	return strings.TrimRight(b.String(), "\n")
}

func slug(s string) string {
	s = strings.ToLower(s)
	var b strings.Builder
	dash := false
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
