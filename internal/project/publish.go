package project

import (
	"context"
	"errors"
	"strconv"

	"playpen/internal/gist"
)

// Publisher is the part of the gist client publishing needs.
type Publisher interface {
	User(ctx context.Context) (*gist.User, error)
	Create(ctx context.Context, description string, files, definitions, modules map[string]string, public bool) (*gist.Gist, error)
	Update(ctx context.Context, id, description string, files, definitions, modules map[string]string) (*gist.Gist, error)
}

// Publish saves p as a gist: an update when the authenticated user owns it,
// otherwise a new gist (a fork, for someone else's gist). p is never
// modified; on success the returned copy carries the gist identity.
func Publish(ctx context.Context, pub Publisher, p *Project) (*Project, error) {
	user, err := pub.User(ctx)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, gist.ErrNotAuthenticated
	}
	var g *gist.Gist
	if p.OwnedBy(user.ID) && p.ID != "" {
		g, err = pub.Update(ctx, p.ID, p.Description, p.Files, p.Definitions, p.Modules)
	} else {
		g, err = pub.Create(ctx, p.Description, p.Files, p.Definitions, p.Modules, p.Public)
	}
	if err != nil {
		return nil, err
	}
	if g == nil || g.ID == "" {
		return nil, errors.New("gist api returned no id")
	}
	out := p.Clone()
	out.Kind = Gist
	out.ID = g.ID
	out.OwnerID = strconv.FormatInt(user.ID, 10)
	return out, nil
}
