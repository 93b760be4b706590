package template

import (
	"fmt"
	"sort"
	"strings"
)

var builtInTemplates = map[string]Generator{
	"README.md": func(name, niche string) string {
		var b strings.Builder
		fmt.Fprintf(&b, "# 📁 VA Client Project: %s (%s)\n\n", name, niche)
		b.WriteString("--- \n\n")
		b.WriteString("## 📋 Quick Links & Logins \n\n")
		b.WriteString("**Master SOP:** [Link to Niche SOP]\n\n")
		b.WriteString("**Client CRM:** [Link to CRM]\n\n")
		b.WriteString("## ✅ Monthly/Weekly Checklists \n\n")
		b.WriteString("- [ ] Monthly Invoicing\n")
		b.WriteString("- [ ] Weekly Report Generation\n")
		return b.String()
	},
	"0_Client_Logins_SECURE.txt": func(_, _ string) string {
		return "# IMPORTANT: Store sensitive data in a secure Password Manager (e.g., LastPass, 1Password) ONLY.\n" +
			"# Use this file only for non-sensitive notes or temporary links.\n"
	},
	"0_Niche_SOP.md": func(_, niche string) string {
		var b strings.Builder
		fmt.Fprintf(&b, "## Standard Operating Procedure for %s Clients\n\n", niche)
		b.WriteString("1. **Start of Day:** Check the 'CRITICAL' task list in project management tool.\n")
		b.WriteString("2. **Real Estate Example:** Every Monday, review Transaction Coordination deadlines.\n")
		b.WriteString("3. **Bookkeeping Example:** Every 1st-5th of the month, begin the **Monthly Close** process.\n")
		return b.String()
	},
}

type Engine struct {
	specs []Spec
}

// NewEngine returns an engine over the built-in templates, ordered by
// filename so every run renders them in the same sequence.
func NewEngine() *Engine {
	names := make([]string, 0, len(builtInTemplates))
	for name := range builtInTemplates {
		names = append(names, name)
	}
	sort.Strings(names)

	specs := make([]Spec, 0, len(names))
	for _, name := range names {
		specs = append(specs, Spec{Filename: name, Generate: builtInTemplates[name]})
	}
	return &Engine{specs: specs}
}

// NewEngineWithSpecs keeps the given order.
func NewEngineWithSpecs(specs []Spec) *Engine {
	return &Engine{specs: append([]Spec(nil), specs...)}
}

// Render evaluates every generator for this project. Nothing is cached, the
// output always reflects the arguments of this call.
func (e *Engine) Render(projectName, nicheName string) []File {
	files := make([]File, 0, len(e.specs))
	for _, s := range e.specs {
		files = append(files, File{Name: s.Filename, Content: s.Generate(projectName, nicheName)})
	}
	return files
}

func (e *Engine) Filenames() []string {
	names := make([]string, len(e.specs))
	for i, s := range e.specs {
		names[i] = s.Filename
	}
	return names
}
