package agent

import (
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/haivivi/agentpatterns/pkg/tool"
	"gopkg.in/yaml.v3"
)

// ReActPrompts configures a ReActAgent. System is a template over
// {{ .Tools }}.
type ReActPrompts struct {
	System string `yaml:"system"`
}

// ToolPrompts configures a ToolAgent. System is a template over
// {{ .Tools }}.
type ToolPrompts struct {
	System string `yaml:"system"`
}

// ReflectionPrompts configures a ReflectionAgent.
type ReflectionPrompts struct {
	Generation string `yaml:"generation"`
	Reflection string `yaml:"reflection"`
}

// Prompts groups the prompts of every loop, as stored in a prompts file.
type Prompts struct {
	ReAct      ReActPrompts      `yaml:"react"`
	Tool       ToolPrompts       `yaml:"tool"`
	Reflection ReflectionPrompts `yaml:"reflection"`
}

// ParsePrompts decodes a YAML prompts document.
func ParsePrompts(data []byte) (*Prompts, error) {
	var p Prompts
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("agent: parse prompts: %w", err)
	}
	return &p, nil
}

// LoadPrompts reads a YAML prompts file.
func LoadPrompts(path string) (*Prompts, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParsePrompts(data)
}

// Merge returns p with every empty prompt taken from base.
func (p Prompts) Merge(base Prompts) Prompts {
	pick := func(v, def string) string {
		if strings.TrimSpace(v) == "" {
			return def
		}
		return v
	}
	return Prompts{
		ReAct: ReActPrompts{System: pick(p.ReAct.System, base.ReAct.System)},
		Tool:  ToolPrompts{System: pick(p.Tool.System, base.Tool.System)},
		Reflection: ReflectionPrompts{
			Generation: pick(p.Reflection.Generation, base.Reflection.Generation),
			Reflection: pick(p.Reflection.Reflection, base.Reflection.Reflection),
		},
	}
}

// renderToolPrompt executes a system prompt template with the tool
// signatures of r.
func renderToolPrompt(name, src string, r *tool.Registry) (string, error) {
	if strings.TrimSpace(src) == "" {
		return "", fmt.Errorf("%w: %s", ErrEmptyPrompt, name)
	}
	tpl, err := template.New(name).Option("missingkey=error").Parse(src)
	if err != nil {
		return "", fmt.Errorf("agent: parse %s prompt: %w", name, err)
	}
	var sb strings.Builder
	if err := tpl.Execute(&sb, struct{ Tools string }{Tools: r.DescribeAll()}); err != nil {
		return "", fmt.Errorf("agent: render %s prompt: %w", name, err)
	}
	return sb.String(), nil
}
