package chatbot

import "testing"

func TestMatch_EachCategory(t *testing.T) {
	cases := []struct {
		text string
		want Category
	}{
		{"Hello there", CategoryGreeting},
		{"good morning!", CategoryGreeting},
		{"Can you review my CV?", CategoryResume},
		{"how do I write a cover letter", CategoryResume},
		{"Any openings in Berlin?", CategoryJobSearch},
		{"I want to find a new job", CategoryJobSearch},
		{"tips for my interview tomorrow", CategoryInterview},
		{"explain the STAR method", CategoryInterview},
		{"which skills should I learn", CategorySkills},
		{"is a certification worth it", CategorySkills},
		{"how to negotiate my salary", CategorySalary},
		{"they sent an offer letter", CategorySalary},
		{"what is the weather like", CategoryDefault},
		{"", CategoryDefault},
	}

	for _, tc := range cases {
		if got := Match(tc.text); got != tc.want {
			t.Fatalf("Match(%q): expected %s, got %s", tc.text, tc.want, got)
		}
	}
}

func TestMatch_PriorityOrder(t *testing.T) {
	if got := Match("hi, can you check my resume before the interview?"); got != CategoryGreeting {
		t.Fatalf("expected greeting to win, got %s", got)
	}
	if got := Match("resume tips for a job interview"); got != CategoryResume {
		t.Fatalf("expected resume to win, got %s", got)
	}
	if got := Match("interview questions about salary"); got != CategoryInterview {
		t.Fatalf("expected interview to win, got %s", got)
	}
}

func TestMatch_WholeWords(t *testing.T) {
	// "this" and "which" contain "hi" but are not greetings.
	if got := Match("which of this is better"); got != CategoryDefault {
		t.Fatalf("expected default, got %s", got)
	}
	if got := Match("PAYMENT terms"); got != CategoryDefault {
		t.Fatalf("expected default for partial word, got %s", got)
	}
}

func TestResponder_PicksFromMatchedCategory(t *testing.T) {
	cats := make([]Category, 0, len(Priority)+1)
	cats = append(cats, Priority...)
	cats = append(cats, CategoryDefault)

	for _, cat := range cats {
		list := Responses[cat]
		for i := range list {
			r := NewResponder(func(int) int { return i })
			text := Keywords[cat]
			input := "nothing relevant"
			if len(text) > 0 {
				input = text[0]
			}

			got := r.Respond(input)
			if got.Category != cat {
				t.Fatalf("expected category %s, got %s", cat, got.Category)
			}
			if got.Text != list[i] {
				t.Fatalf("expected response %d of %s, got %q", i, cat, got.Text)
			}
		}
	}
}

func TestResponder_OutOfRangeIndex(t *testing.T) {
	r := NewResponder(func(int) int { return 99 })
	got := r.Respond("hello")
	if got.Text != Responses[CategoryGreeting][0] {
		t.Fatalf("expected first greeting, got %q", got.Text)
	}
}

func TestResponder_DefaultRandom(t *testing.T) {
	r := NewResponder(nil)
	got := r.Respond("salary")
	found := false
	for _, s := range Responses[CategorySalary] {
		if s == got.Text {
			found = true
		}
	}
	if !found {
		t.Fatalf("response %q not in salary list", got.Text)
	}
}
