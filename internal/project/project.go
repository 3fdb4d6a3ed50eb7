// Package project models a playground project: a set of files plus the
// type definitions, modules and editor options that travel with it.
package project

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"playpen/internal/editorconf"
	"playpen/internal/gist"
)

// Kind tells where a project lives.
type Kind string

const (
	Local Kind = "local"
	Gist  Kind = "gist"
)

// DefaultDescription names new projects.
const DefaultDescription = "TypeScript Playground Project"

// Default file paths of a new project, in display order.
const (
	TesterFile = "./test/tester.ts"
	TestFile   = "./test/test.ts"
	CodeFile   = "./index.tsx"
	HTMLFile   = "./index.html"
	StyleFile  = "./style.css"
)

// Definitions maps a type definition path to its content or URL.
type Definitions map[string]string

// Modules maps a module name to a version.
type Modules map[string]string

// Files maps a relative path ("./index.tsx") to its content.
type Files map[string]string

// Sorted returns the file paths in lexical order.
func (f Files) Sorted() []string {
	paths := make([]string, 0, len(f))
	for p := range f {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Project is one playground workspace.
type Project struct {
	Kind          Kind               `json:"type"`
	ID            string             `json:"id,omitempty"`
	OwnerID       string             `json:"ownerId,omitempty"`
	Description   string             `json:"description"`
	Public        bool               `json:"public"`
	Definitions   Definitions        `json:"definitions"`
	Modules       Modules            `json:"modules"`
	Files         Files              `json:"files"`
	EditorOptions editorconf.Options `json:"editorOptions"`
}

// DefaultDefinitions returns the definitions new projects start with.
func DefaultDefinitions() Definitions { return Definitions{} }

// New returns a local, public project with the default file set.
func New(code, html, css string, opts editorconf.Options) *Project {
	return &Project{
		Kind:        Local,
		Description: DefaultDescription,
		Public:      true,
		Definitions: DefaultDefinitions(),
		Modules:     Modules{},
		Files: Files{
			TesterFile: "",
			TestFile:   "",
			CodeFile:   code,
			HTMLFile:   html,
			StyleFile:  css,
		},
		EditorOptions: opts,
	}
}

// FromGist builds a project from a fetched gist. Missing reserved files fall
// back to the defaults.
func FromGist(g *gist.Gist, opts editorconf.Options) (*Project, error) {
	p := &Project{
		Kind:          Gist,
		ID:            g.ID,
		Description:   g.Description,
		Public:        g.Public,
		Definitions:   DefaultDefinitions(),
		Modules:       Modules{},
		Files:         Files{},
		EditorOptions: opts,
	}
	if g.Owner != nil && g.Owner.ID != 0 {
		p.OwnerID = strconv.FormatInt(g.Owner.ID, 10)
	}
	if f, ok := g.Files[gist.DefinitionsFile]; ok {
		if err := json.Unmarshal([]byte(f.Content), &p.Definitions); err != nil {
			return nil, fmt.Errorf("parse %s: %w", gist.DefinitionsFile, err)
		}
	}
	if f, ok := g.Files[gist.ModulesFile]; ok {
		if err := json.Unmarshal([]byte(f.Content), &p.Modules); err != nil {
			return nil, fmt.Errorf("parse %s: %w", gist.ModulesFile, err)
		}
	}
	for name, f := range g.Files {
		if gist.IsReserved(name) {
			continue
		}
		p.Files[gist.DecodeName(name)] = f.Content
	}
	return p, nil
}

// Clone returns a deep copy.
func (p *Project) Clone() *Project {
	out := *p
	out.Definitions = cloneMap(p.Definitions)
	out.Modules = cloneMap(p.Modules)
	out.Files = cloneMap(p.Files)
	return &out
}

func cloneMap[M ~map[string]string](m M) M {
	if m == nil {
		return nil
	}
	out := make(M, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// OwnedBy reports whether the project is a gist owned by userID.
func (p *Project) OwnedBy(userID int64) bool {
	return p.Kind == Gist && p.OwnerID != "" && p.OwnerID == strconv.FormatInt(userID, 10)
}

// StoreKey is the local store key of the project.
func (p *Project) StoreKey() string {
	if p.Kind == Gist && p.ID != "" {
		return "gist:" + p.ID
	}
	if p.ID != "" {
		return "local:" + p.ID
	}
	return "local:scratch"
}

// Marshal encodes the project for the local store.
func (p *Project) Marshal() ([]byte, error) { return json.Marshal(p) }

// Unmarshal decodes a project written by Marshal.
func Unmarshal(data []byte) (*Project, error) {
	var p Project
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode project: %w", err)
	}
	if p.Files == nil {
		p.Files = Files{}
	}
	return &p, nil
}
