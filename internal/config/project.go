package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Project is the tool's own configuration file (fledermaus.yml),
// as opposed to the site configs templates consume.
type Project struct {
	ContentDir  string   `yaml:"content_dir"`
	ConfigDir   string   `yaml:"config_dir"`
	LayoutsDir  string   `yaml:"layouts_dir"`
	OutputDir   string   `yaml:"output_dir"`
	Extensions  []string `yaml:"extensions"`
	CutTag      string   `yaml:"cut_tag"`
	TemplateExt string   `yaml:"template_ext"`

	Collections []Collection `yaml:"collections,omitempty"`
}

// Collection declares a derived output set: documents selected by
// filter, ordered, optionally grouped into taxonomy listings, and
// paginated into listing pages.
type Collection struct {
	Name    string         `yaml:"name"`
	Filter  map[string]any `yaml:"filter,omitempty"`
	Order   []string       `yaml:"order,omitempty"`
	GroupBy string         `yaml:"group_by,omitempty"`

	// Paginate is required: listing pages take their URL prefix and
	// layout from it.
	Paginate *PaginateSpec `yaml:"paginate"`
}

// PaginateSpec configures listing-page pagination for a collection.
type PaginateSpec struct {
	URLPrefix string `yaml:"url_prefix"`
	PerPage   int    `yaml:"per_page"`
	Layout    string `yaml:"layout"`
}

// DefaultProject returns the project configuration used when no
// project file exists.
func DefaultProject() *Project {
	return &Project{
		ContentDir:  "content",
		ConfigDir:   "config",
		LayoutsDir:  "layouts",
		OutputDir:   "public",
		Extensions:  []string{"md", "html"},
		CutTag:      "<!--more-->",
		TemplateExt: ".html",
	}
}

// LoadProject reads the project file at path, falling back to defaults
// when the file does not exist. Unset fields take their default values.
func LoadProject(path string) (*Project, error) {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultProject(), nil
	}
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	p := DefaultProject()
	if err := yaml.Unmarshal(raw, p); err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	if err := p.validate(); err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return p, nil
}

func (p *Project) validate() error {
	for _, c := range p.Collections {
		if c.Name == "" {
			return fmt.Errorf("collection without a name")
		}
		if c.Paginate == nil {
			return fmt.Errorf("collection %s: paginate is required", c.Name)
		}
		if c.Paginate.PerPage <= 0 {
			return fmt.Errorf("collection %s: per_page must be positive", c.Name)
		}
	}
	return nil
}
