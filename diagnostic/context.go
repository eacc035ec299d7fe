package diagnostic

import (
	"context"

	"github.com/logrusorgru/aurora"
)

type (
	sourcesKey struct{}
	colorKey   struct{}
)

// WithSources attaches a Sources registry to ctx, for Pretty to look up
// the source lines an error is anchored in.
func WithSources(ctx context.Context, sources *Sources) context.Context {
	return context.WithValue(ctx, sourcesKey{}, sources)
}

func Sources(ctx context.Context) *Sources {
	sources, ok := ctx.Value(sourcesKey{}).(*Sources)
	if !ok {
		return NewSources()
	}
	return sources
}

// WithColor attaches a color profile to ctx.
func WithColor(ctx context.Context, color aurora.Aurora) context.Context {
	return context.WithValue(ctx, colorKey{}, color)
}

func Color(ctx context.Context) aurora.Aurora {
	color, ok := ctx.Value(colorKey{}).(aurora.Aurora)
	if !ok {
		return aurora.NewAurora(false)
	}
	return color
}
