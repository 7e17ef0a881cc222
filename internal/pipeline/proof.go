package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"strings"

	"github.com/sant0-9/alibi/internal/catalog"
	"github.com/sant0-9/alibi/internal/imagegen"
	"github.com/sant0-9/alibi/internal/prompts"
)

type ProofImageRequest struct {
	Type   catalog.ProofType
	Name   string
	Reason string
}

// ProofImage is a rendered proof document. PNG holds the encoded Image.
type ProofImage struct {
	Type  catalog.ProofType
	Image image.Image
	PNG   []byte
}

// ProofImage renders a 1024x1024 proof picture. Name and reason are checked
// before the image client is built, so invalid input costs no request.
func (o *Orchestrator) ProofImage(ctx context.Context, req ProofImageRequest) (*ProofImage, error) {
	name := strings.TrimSpace(req.Name)
	reason := strings.TrimSpace(req.Reason)
	if name == "" || reason == "" {
		return nil, fmt.Errorf("%w: name and reason are required", ErrValidation)
	}
	if o.deps.Images == nil {
		return nil, errors.New("no image service configured")
	}

	gen, err := o.deps.Images()
	if err != nil {
		return nil, err
	}

	o.progress(StageRendering, 0, 2, fmt.Sprintf("Rendering %s...", req.Type))
	img, err := gen.Generate(ctx, imagegen.Request{
		Prompt: prompts.ProofImage(req.Type, name, reason),
		Width:  1024,
		Height: 1024,
	})
	if err != nil {
		return nil, fmt.Errorf("generating proof image: %w", err)
	}

	o.progress(StageEncoding, 1, 2, "Encoding PNG...")
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encoding proof image: %w", err)
	}

	o.progress(StageDone, 2, 2, "Done")
	o.log.Info("proof generated", "type", string(req.Type), "bytes", buf.Len())
	return &ProofImage{Type: req.Type, Image: img, PNG: buf.Bytes()}, nil
}
