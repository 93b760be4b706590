package template

// Generator produces the content of one boilerplate file for a client
// project of the given niche.
type Generator func(projectName, nicheName string) string

type Spec struct {
	Filename string
	Generate Generator
}

// File is a rendered template, ready to be written under the project root.
type File struct {
	Name    string
	Content string
}

type TemplateEngine interface {
	Render(projectName, nicheName string) []File
	Filenames() []string
}
