package chatbot

import (
	"math/rand/v2"
	"strings"
	"unicode"
)

type Category string

const (
	CategoryGreeting  Category = "greeting"
	CategoryResume    Category = "resume"
	CategoryJobSearch Category = "job_search"
	CategoryInterview Category = "interview"
	CategorySkills    Category = "skills"
	CategorySalary    Category = "salary"
	CategoryDefault   Category = "default"
)

// Priority is the order categories are tested in. The first hit wins.
var Priority = []Category{
	CategoryGreeting,
	CategoryResume,
	CategoryJobSearch,
	CategoryInterview,
	CategorySkills,
	CategorySalary,
}

var Keywords = map[Category][]string{
	CategoryGreeting:  {"hello", "hi", "hey", "hiya", "greetings", "good morning", "good afternoon", "good evening"},
	CategoryResume:    {"resume", "resumes", "cv", "curriculum vitae", "cover letter", "portfolio"},
	CategoryJobSearch: {"job", "jobs", "position", "positions", "opening", "openings", "vacancy", "hiring", "apply", "job search", "career change"},
	CategoryInterview: {"interview", "interviews", "interviewer", "behavioral question", "star method", "recruiter call"},
	CategorySkills:    {"skill", "skills", "learn", "learning", "certification", "course", "courses", "upskill", "training"},
	CategorySalary:    {"salary", "pay", "compensation", "negotiate", "negotiation", "raise", "wage", "benefits", "offer letter"},
}

var Responses = map[Category][]string{
	CategoryGreeting: {
		"Hello! I'm your career assistant. I can help with your resume, job search, interview prep and more. What would you like to work on?",
		"Hi there! Ask me anything about resumes, interviews, skills or salary negotiation.",
		"Hey! Ready to move your career forward? Tell me what you need help with.",
	},
	CategoryResume: {
		"A strong resume leads with a short summary, then lists achievements with measurable results. Start each bullet with an action verb.",
		"Tailor your resume to each role: mirror the keywords in the job description and move the most relevant experience to the top.",
		"Keep your resume to one or two pages, use a clean layout and quantify your impact wherever you can, for example 'cut build time by 40%'.",
	},
	CategoryJobSearch: {
		"Try searching with specific job titles plus a location, and set up alerts so you hear about new openings early.",
		"Networking fills many roles before they are posted. Reach out to people at companies you like and ask about their team.",
		"Focus on quality over quantity: a tailored application to ten good-fit roles beats a generic one sent to a hundred.",
	},
	CategoryInterview: {
		"Prepare stories using the STAR method: Situation, Task, Action, Result. Have one ready for conflict, failure and leadership.",
		"Research the company before the interview and prepare two or three thoughtful questions to ask at the end.",
		"Practice answering out loud. Mock interviews with a friend help you sound confident and concise.",
	},
	CategorySkills: {
		"Look at ten postings for your target role and note the skills that appear most often. Those are the ones to learn first.",
		"Short projects you can show off often count for more than certificates. Build something small with the skill you're learning.",
		"Online courses are a good start, but pair them with hands-on practice so you can talk about real results.",
	},
	CategorySalary: {
		"Research the market rate for your role and location before negotiating, and anchor your ask at the top of that range.",
		"When an offer arrives, thank them, ask for time to review and consider the whole package: base, bonus, equity and benefits.",
		"Let the employer name a number first when possible, and always negotiate politely with data to back up your request.",
	},
	CategoryDefault: {
		"I can help with resumes, job searching, interview preparation, skill development and salary negotiation. What would you like to know?",
		"That's a good question. Could you tell me a bit more about your situation so I can point you in the right direction?",
		"I'm here to help with your career. Try asking about your resume, interviews or finding a job.",
	},
}

type Reply struct {
	Category Category
	Text     string
}

// Responder answers free text from fixed keyword tables.
type Responder struct {
	intn func(n int) int
}

// NewResponder builds a responder. A nil intn uses math/rand/v2.
func NewResponder(intn func(n int) int) *Responder {
	if intn == nil {
		intn = rand.IntN
	}
	return &Responder{intn: intn}
}

// Match returns the first category in Priority whose keyword set hits the text,
// or CategoryDefault.
func Match(text string) Category {
	lower := strings.ToLower(strings.TrimSpace(text))
	if lower == "" {
		return CategoryDefault
	}

	words := make(map[string]struct{})
	for _, w := range strings.FieldsFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	}) {
		words[w] = struct{}{}
	}

	for _, cat := range Priority {
		for _, kw := range Keywords[cat] {
			if strings.Contains(kw, " ") {
				if strings.Contains(lower, kw) {
					return cat
				}
				continue
			}
			if _, ok := words[kw]; ok {
				return cat
			}
		}
	}
	return CategoryDefault
}

func (r *Responder) Respond(text string) Reply {
	cat := Match(text)
	list := Responses[cat]
	if len(list) == 0 {
		cat = CategoryDefault
		list = Responses[CategoryDefault]
	}

	i := r.intn(len(list))
	if i < 0 || i >= len(list) {
		i = 0
	}
	return Reply{Category: cat, Text: list[i]}
}
