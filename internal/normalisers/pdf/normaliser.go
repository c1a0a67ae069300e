// Package pdf extracts per-page text from PDF files with pdfcpu.
package pdf

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/0M-3/synaptext/internal/core/domain"
	"github.com/0M-3/synaptext/internal/core/ports/driven"
	"github.com/0M-3/synaptext/internal/logger"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles PDF documents.
type Normaliser struct {
	conf *model.Configuration
}

// New creates a new PDF normaliser with pdfcpu's default (relaxed) validation.
func New() *Normaliser {
	return &Normaliser{conf: model.NewDefaultConfiguration()}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{"application/pdf"}
}

// Normalise reads the PDF at path and returns the text of every page.
// Pages whose content cannot be decoded yield empty strings; a file pdfcpu
// cannot parse at all fails with domain.ErrExtractionFailed.
func (n *Normaliser) Normalise(ctx context.Context, path string) (*driven.NormaliseResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	pdfCtx, err := api.ReadValidateAndOptimize(f, n.conf)
	if err != nil {
		return nil, fmt.Errorf("%w: reading pdf: %w", domain.ErrExtractionFailed, err)
	}

	pages := make([]string, pdfCtx.PageCount)
	for pageNr := 1; pageNr <= pdfCtx.PageCount; pageNr++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		pages[pageNr-1] = pageText(pdfCtx, pageNr)
	}

	logger.Debug("pdf: extracted %d pages from %s", pdfCtx.PageCount, path)
	return &driven.NormaliseResult{Pages: pages}, nil
}

// pageText returns the decoded text of one page, or "" if it has none.
func pageText(pdfCtx *model.Context, pageNr int) string {
	r, err := pdfcpu.ExtractPageContent(pdfCtx, pageNr)
	if err != nil || r == nil {
		logger.Warn("pdf: page %d has no readable content: %v", pageNr, err)
		return ""
	}
	data, err := io.ReadAll(r)
	if err != nil || len(data) == 0 {
		return ""
	}
	return extractTextFromStream(data)
}
