package aitools

import "strings"

// skillNormalizations maps common skill name variants to canonical names
var skillNormalizations = map[string]string{
	"golang":     "Go",
	"go lang":    "Go",
	"javascript": "JavaScript",
	"js":         "JavaScript",
	"typescript": "TypeScript",
	"ts":         "TypeScript",
	"k8s":        "Kubernetes",
	"kubernetes": "Kubernetes",
	"react.js":   "React",
	"reactjs":    "React",
	"vue.js":     "Vue",
	"vuejs":      "Vue",
	"node.js":    "Node.js",
	"nodejs":     "Node.js",
	"postgres":   "PostgreSQL",
	"postgresql": "PostgreSQL",
	"aws":        "AWS",
	"gcp":        "GCP",
	"sql":        "SQL",
}

// NormalizeSkillName normalizes a skill name to its canonical form
func NormalizeSkillName(skill string) string {
	normalized := strings.Join(strings.Fields(skill), " ")
	if normalized == "" {
		return ""
	}

	lower := strings.ToLower(normalized)
	if canonical, ok := skillNormalizations[lower]; ok {
		return canonical
	}

	// Mixed case is left alone
	if normalized != strings.ToUpper(normalized) && normalized != lower {
		return normalized
	}

	// Single lowercase word
	if normalized == lower && !strings.Contains(normalized, " ") {
		return strings.ToUpper(normalized[:1]) + normalized[1:]
	}
	return normalized
}

// normalizeSkills canonicalizes names and drops empties and case-insensitive duplicates,
// keeping first-seen order
func normalizeSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	seen := make(map[string]bool, len(skills))
	for _, s := range skills {
		name := NormalizeSkillName(s)
		key := strings.ToLower(name)
		if name == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, name)
	}
	return out
}

// cleanList trims entries and drops empty ones
func cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, s := range items {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
