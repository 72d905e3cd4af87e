package search

import "sort"

var Synonyms = map[string][]string{
	"frontend":        {"front end", "frontend developer", "ui developer", "react developer"},
	"backend":         {"back end", "backend developer", "server developer"},
	"full stack":      {"fullstack developer", "full stack developer", "software engineer"},
	"devops":          {"site reliability engineer", "platform engineer", "cloud engineer"},
	"data scientist":  {"machine learning engineer", "data analyst"},
	"designer":        {"ui designer", "ux designer", "product designer"},
	"product manager": {"product owner", "pm"},
	"qa":              {"quality assurance", "test engineer", "sdet"},
}

func GetSynonyms(query string) []string {
	if query == "" {
		return []string{}
	}
	v, ok := Synonyms[query]
	if !ok {
		return []string{}
	}
	out := make([]string, len(v))
	copy(out, v)
	return out
}

// synonymKeys returns the keys sorted so expansion is deterministic.
func synonymKeys() []string {
	keys := make([]string, 0, len(Synonyms))
	for k := range Synonyms {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
