package render

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"

	"github.com/stewi1014/gldemos/programs"
)

type SaveOptions struct {
	Name          string
	Width, Height int
	Antialias     float32
	Multithread   bool
}

// ProgressFunc is told about each stage of a render as it starts, along
// with a function reporting how far through the stage it is.
type ProgressFunc func(stage string, progress func() float64)

// Image renders program at the size in opts.
func Image(
	ctx context.Context,
	opts SaveOptions,
	program programs.Program,
	frame programs.Frame,
	report ProgressFunc,
) (image.Image, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("invalid image size %vx%v", opts.Width, opts.Height)
	}
	if report == nil {
		report = func(string, func() float64) {}
	}

	img, err := program.GetImage(frame, opts.Width, opts.Height)
	if err != nil {
		return nil, err
	}

	if opts.Antialias > 0 {
		img = AntiAlias9x(img, opts.Antialias)
	}

	imageImage := ToImage(img)
	if !opts.Multithread {
		// Pixels are rendered as the encoder reads them.
		imageImage = StopOnDone(ctx, imageImage)
		report("Rendering", WrapWithProgress(&imageImage))
		return imageImage, nil
	}

	report("Rendering to Buffer", WrapWithProgress(&imageImage))
	buff := BufferImage(imageImage)
	if err := buff.Buffer(ctx); err != nil {
		return nil, err
	}
	return buff, nil
}

// Encode renders program as a PNG to w.
func Encode(
	ctx context.Context,
	w io.Writer,
	opts SaveOptions,
	program programs.Program,
	frame programs.Frame,
	report ProgressFunc,
) error {
	img, err := Image(ctx, opts, program, frame, report)
	if err != nil {
		return err
	}

	if report != nil {
		report("Encoding PNG", WrapWithProgress(&img))
	}

	err = png.Encode(w, img)
	if err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return context.Cause(ctx)
}

// Save renders program to the PNG file opts.Name. Nothing is left behind
// if it fails.
func Save(
	ctx context.Context,
	opts SaveOptions,
	program programs.Program,
	frame programs.Frame,
	report ProgressFunc,
) (err error) {
	file, err := os.Create(opts.Name)
	if err != nil {
		return err
	}

	defer func() {
		err = errors.Join(err, file.Close())
		if err != nil {
			os.Remove(file.Name())
		}
	}()

	return Encode(ctx, file, opts, program, frame, report)
}
