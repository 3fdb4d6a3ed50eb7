package gist

import (
	"strings"
	"time"
)

// Reserved gist files carrying project metadata as JSON.
const (
	DefinitionsFile = "definitions.json"
	ModulesFile     = "modules.json"
)

// pathSeparator replaces "/" in gist file names; gists are flat.
const pathSeparator = "___"

// User is the subset of the GitHub user payload the playground reads.
type User struct {
	Login     string `json:"login"`
	ID        int64  `json:"id"`
	Name      string `json:"name,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
	HTMLURL   string `json:"html_url,omitempty"`
}

// File is one gist file. Truncated files carry only RawURL until fetched.
type File struct {
	Filename  string `json:"filename,omitempty"`
	Language  string `json:"language,omitempty"`
	RawURL    string `json:"raw_url,omitempty"`
	Size      int    `json:"size,omitempty"`
	Truncated bool   `json:"truncated,omitempty"`
	Content   string `json:"content"`
}

// Gist is the subset of the gist payload the playground reads.
type Gist struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Public      bool            `json:"public"`
	HTMLURL     string          `json:"html_url,omitempty"`
	Owner       *User           `json:"owner,omitempty"`
	Files       map[string]File `json:"files"`
	Comments    int             `json:"comments,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// Comment is a created gist comment.
type Comment struct {
	ID   int64  `json:"id"`
	Body string `json:"body"`
}

// EncodeName maps a project path ("./src/a.ts") to a gist file name
// ("src___a.ts").
func EncodeName(path string) string {
	return strings.ReplaceAll(strings.TrimPrefix(path, "./"), "/", pathSeparator)
}

// DecodeName is the inverse of EncodeName ("src___a.ts" -> "./src/a.ts").
func DecodeName(name string) string {
	return "./" + strings.ReplaceAll(name, pathSeparator, "/")
}

// IsReserved reports whether name is one of the metadata files.
func IsReserved(name string) bool {
	return name == DefinitionsFile || name == ModulesFile
}

// FilesBuilder assembles the flat file set sent to the gists API.
type FilesBuilder struct {
	files map[string]File
}

// NewFilesBuilder starts from project files keyed by relative path.
func NewFilesBuilder(files map[string]string) *FilesBuilder {
	b := &FilesBuilder{files: make(map[string]File, len(files)+2)}
	for path, content := range files {
		b.files[EncodeName(path)] = File{Content: content}
	}
	return b
}

// Add sets a file by gist name. Empty content is ignored.
func (b *FilesBuilder) Add(name, content string) *FilesBuilder {
	if content != "" {
		b.files[name] = File{Content: content}
	}
	return b
}

// DropEmpty removes every file without content.
func (b *FilesBuilder) DropEmpty() *FilesBuilder {
	for name, f := range b.files {
		if f.Content == "" {
			delete(b.files, name)
		}
	}
	return b
}

// Files returns the assembled set.
func (b *FilesBuilder) Files() map[string]File { return b.files }
