// Package prompts holds the model prompts of the AI tools. Prompts live in an
// embedded JSON file keyed by tool name and use {{.Key}} placeholders.
package prompts

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"sync"
)

//go:embed tools.json
var toolsJSON []byte

var placeholder = regexp.MustCompile(`\{\{\.(\w+)\}\}`)

var loadTools = sync.OnceValues(func() (map[string]string, error) {
	var prompts map[string]string
	if err := json.Unmarshal(toolsJSON, &prompts); err != nil {
		return nil, fmt.Errorf("failed to parse tools.json: %w", err)
	}
	return prompts, nil
})

// Get returns the raw prompt template of a tool
func Get(tool string) (string, error) {
	prompts, err := loadTools()
	if err != nil {
		return "", err
	}
	prompt, ok := prompts[tool]
	if !ok {
		return "", fmt.Errorf("no prompt for tool %q", tool)
	}
	return prompt, nil
}

// Names lists the tools that have a prompt, sorted
func Names() ([]string, error) {
	prompts, err := loadTools()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(prompts))
	for name := range prompts {
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}

// Placeholders returns the keys a template expects, in order of first use
func Placeholders(template string) []string {
	var keys []string
	for _, m := range placeholder.FindAllStringSubmatch(template, -1) {
		if !slices.Contains(keys, m[1]) {
			keys = append(keys, m[1])
		}
	}
	return keys
}

// Format replaces {{.Key}} placeholders with values from data.
// Unknown placeholders are left in place. Substituted values are never rescanned.
func Format(template string, data map[string]string) string {
	pairs := make([]string, 0, 2*len(data))
	for key, value := range data {
		pairs = append(pairs, "{{."+key+"}}", value)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// Render fills the prompt of a tool. Every placeholder of the prompt needs a key in data.
func Render(tool string, data map[string]string) (string, error) {
	prompt, err := Get(tool)
	if err != nil {
		return "", err
	}
	var missing []string
	for _, key := range Placeholders(prompt) {
		if _, ok := data[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return "", fmt.Errorf("prompt %q: missing values for %s", tool, strings.Join(missing, ", "))
	}
	return Format(prompt, data), nil
}
