package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/ifscope/pkg/errors"
	"github.com/matzehuels/ifscope/pkg/ifs"
	"github.com/matzehuels/ifscope/pkg/observability"
	"github.com/matzehuels/ifscope/pkg/render"
)

// Render encodes points in each of opts.Formats.
func Render(ctx context.Context, points []ifs.Point, sys *ifs.System, seed uint64, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		observability.Render().OnRenderStart(ctx, format)
		start := time.Now()
		data, err := renderFormat(format, points, sys, seed, opts)
		observability.Render().OnRenderComplete(ctx, format, len(data), time.Since(start), err)
		if err != nil {
			return nil, err
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func renderFormat(format string, points []ifs.Point, sys *ifs.System, seed uint64, opts Options) ([]byte, error) {
	switch format {
	case FormatPNG:
		return render.RenderPNG(points, sinkOptions(opts)...)
	case FormatSVG:
		return render.RenderSVG(points, sinkOptions(opts)...), nil
	case FormatJSON:
		return render.RenderJSON(points, render.Meta{System: sys.Name(), Seed: seed})
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %q", format)
}

func sinkOptions(opts Options) []render.Option {
	ropts := []render.Option{render.WithSize(opts.Width, opts.Height)}
	if opts.Viewport != nil {
		ropts = append(ropts, render.WithViewport(*opts.Viewport))
	}
	if opts.Caption != "" {
		ropts = append(ropts, render.WithCaption(opts.Caption))
	}
	return ropts
}
