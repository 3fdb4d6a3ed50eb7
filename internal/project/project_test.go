package project

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"playpen/internal/editorconf"
	"playpen/internal/gist"
)

func TestNew(t *testing.T) {
	p := New("let a = 1", "<div></div>", "", editorconf.DefaultOptions(editorconf.Desktop))
	assert.Equal(t, Local, p.Kind)
	assert.Equal(t, DefaultDescription, p.Description)
	assert.True(t, p.Public)
	assert.Equal(t, []string{CodeFile, HTMLFile, StyleFile, TestFile, TesterFile}, p.Files.Sorted())
	assert.Equal(t, "let a = 1", p.Files[CodeFile])
	assert.Equal(t, 14, p.EditorOptions.FontSize)
	assert.Equal(t, "local:scratch", p.StoreKey())
}

func TestFromGist(t *testing.T) {
	g := &gist.Gist{
		ID:          "abc",
		Description: "demo",
		Owner:       &gist.User{ID: 42},
		Files: map[string]gist.File{
			"index.tsx":          {Content: "x"},
			"test___test.ts":     {Content: "t"},
			gist.ModulesFile:     {Content: `{"lodash":"4"}`},
			gist.DefinitionsFile: {Content: `{"a.d.ts":"declare const a: number"}`},
		},
	}
	p, err := FromGist(g, editorconf.DefaultOptions(editorconf.Mobile))
	require.NoError(t, err)
	assert.Equal(t, Gist, p.Kind)
	assert.Equal(t, "42", p.OwnerID)
	assert.Equal(t, Files{"./index.tsx": "x", "./test/test.ts": "t"}, p.Files)
	assert.Equal(t, Modules{"lodash": "4"}, p.Modules)
	assert.Equal(t, "declare const a: number", p.Definitions["a.d.ts"])
	assert.True(t, p.OwnedBy(42))
	assert.False(t, p.OwnedBy(7))
	assert.Equal(t, "gist:abc", p.StoreKey())

	noMeta, err := FromGist(&gist.Gist{ID: "x", Files: map[string]gist.File{"a.ts": {}}}, editorconf.Options{})
	require.NoError(t, err)
	assert.Equal(t, Modules{}, noMeta.Modules)
	assert.Equal(t, DefaultDefinitions(), noMeta.Definitions)
	assert.Empty(t, noMeta.OwnerID)

	_, err = FromGist(&gist.Gist{Files: map[string]gist.File{gist.ModulesFile: {Content: "{"}}}, editorconf.Options{})
	assert.Error(t, err)
}

func TestCloneAndMarshal(t *testing.T) {
	p := New("a", "", "", editorconf.Options{})
	c := p.Clone()
	c.Files[CodeFile] = "b"
	c.Modules["x"] = "1"
	assert.Equal(t, "a", p.Files[CodeFile])
	assert.Empty(t, p.Modules)

	data, err := p.Marshal()
	require.NoError(t, err)
	back, err := Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, p, back)
}

type fakePublisher struct {
	user    *gist.User
	err     error
	created int
	updated int
}

func (f *fakePublisher) User(context.Context) (*gist.User, error) { return f.user, f.err }

func (f *fakePublisher) Create(_ context.Context, _ string, _, _, _ map[string]string, _ bool) (*gist.Gist, error) {
	f.created++
	return &gist.Gist{ID: "new"}, f.err
}

func (f *fakePublisher) Update(_ context.Context, id, _ string, _, _, _ map[string]string) (*gist.Gist, error) {
	f.updated++
	return &gist.Gist{ID: id}, f.err
}

func TestPublish(t *testing.T) {
	ctx := context.Background()
	pub := &fakePublisher{user: &gist.User{ID: 42}}

	local := New("a", "", "", editorconf.Options{})
	out, err := Publish(ctx, pub, local)
	require.NoError(t, err)
	assert.Equal(t, 1, pub.created)
	assert.Equal(t, Gist, out.Kind)
	assert.Equal(t, "new", out.ID)
	assert.Equal(t, "42", out.OwnerID)
	assert.Equal(t, Local, local.Kind, "input untouched")

	_, err = Publish(ctx, pub, out)
	require.NoError(t, err)
	assert.Equal(t, 1, pub.updated)

	foreign := out.Clone()
	foreign.OwnerID = "7"
	forked, err := Publish(ctx, pub, foreign)
	require.NoError(t, err)
	assert.Equal(t, 2, pub.created)
	assert.Equal(t, "42", forked.OwnerID)

	_, err = Publish(ctx, &fakePublisher{err: gist.ErrNotAuthenticated}, local)
	assert.True(t, errors.Is(err, gist.ErrNotAuthenticated))
}
