package render

import (
	"context"
	"time"

	"github.com/kojoasante/estimates-backend/pkg/config"
	pkgerrors "github.com/kojoasante/estimates-backend/pkg/errors"
	"github.com/kojoasante/estimates-backend/pkg/logger"
)

// Service turns estimate documents into PDF byte streams. Rendering is
// bounded by the configured timeout so a stuck render never hangs the
// request.
type Service struct {
	timeout       time.Duration
	letterheadDir string
	logg          *logger.Logger
}

// NewService builds a renderer from configuration.
func NewService(cfg config.RenderConfig, logg *logger.Logger) *Service {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Service{timeout: timeout, letterheadDir: cfg.LetterheadDir, logg: logg}
}

type renderResult struct {
	payload []byte
	err     error
}

// Render produces the PDF for the document or a render failure when the
// build errors or exceeds the timeout.
func (s *Service) Render(ctx context.Context, doc Document) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	results := make(chan renderResult, 1)
	go func() {
		payload, err := buildPDF(doc, s.letterheadDir)
		results <- renderResult{payload: payload, err: err}
	}()

	select {
	case res := <-results:
		if res.err != nil {
			if s.logg != nil {
				s.logg.Error(ctx, "estimate render failed", res.err)
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeRenderFailure, res.err, "render estimate")
		}
		return res.payload, nil
	case <-ctx.Done():
		if s.logg != nil {
			s.logg.Error(ctx, "estimate render timed out", ctx.Err())
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeRenderFailure, ctx.Err(), "render estimate")
	}
}
