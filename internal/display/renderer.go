package display

import (
	"fmt"

	"github.com/mwiater/docchat/internal/citation"
	"github.com/mwiater/docchat/internal/icons"
)

const (
	// DefaultNoDocMatchAnswer is the answer the backend returns in search mode when no document matched.
	DefaultNoDocMatchAnswer = "該当資料なし"
	// DefaultInquiryNoMatchAnswer is the answer the backend returns in inquiry mode when nothing could be cited.
	DefaultInquiryNoMatchAnswer = "回答に必要な情報が見つかりませんでした。"
	// DefaultSourcesHeading titles the list of cited sources.
	DefaultSourcesHeading = "情報源"
)

// Options holds the sentinel answers and labels the renderers compare against.
type Options struct {
	NoDocMatchAnswer     string
	InquiryNoMatchAnswer string
	SourcesHeading       string
}

// DefaultOptions returns the built-in sentinels and heading.
func DefaultOptions() Options {
	return Options{
		NoDocMatchAnswer:     DefaultNoDocMatchAnswer,
		InquiryNoMatchAnswer: DefaultInquiryNoMatchAnswer,
		SourcesHeading:       DefaultSourcesHeading,
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.NoDocMatchAnswer == "" {
		o.NoDocMatchAnswer = def.NoDocMatchAnswer
	}
	if o.InquiryNoMatchAnswer == "" {
		o.InquiryNoMatchAnswer = def.InquiryNoMatchAnswer
	}
	if o.SourcesHeading == "" {
		o.SourcesHeading = def.SourcesHeading
	}
	return o
}

// Renderer draws backend responses onto a Surface and returns the record to
// store in the conversation log.
type Renderer struct {
	surface Surface
	opts    Options
}

// NewRenderer returns a Renderer drawing on s. Empty options fall back to the defaults.
func NewRenderer(s Surface, opts Options) *Renderer {
	return &Renderer{surface: s, opts: opts.withDefaults()}
}

// Options returns the effective options.
func (r *Renderer) Options() Options {
	return r.opts
}

// Render dispatches to the renderer for mode.
func (r *Renderer) Render(mode Mode, resp Response) (Content, error) {
	switch mode {
	case ModeSearch:
		return r.RenderSearch(resp), nil
	case ModeInquiry:
		rec, err := r.RenderInquiry(resp)
		if err != nil {
			return nil, err
		}
		return rec, nil
	}
	return nil, fmt.Errorf("unknown mode %q", mode)
}

// RenderSearch draws a search-mode answer followed by its deduplicated sources.
// Documents without a source are skipped.
func (r *Renderer) RenderSearch(resp Response) SearchRecord {
	rec := SearchRecord{Answer: resp.Answer}

	r.surface.Markdown(resp.Answer)

	if len(resp.Context) == 0 || resp.Answer == r.opts.NoDocMatchAnswer {
		rec.NoFilePathFlg = true
		return rec
	}

	r.surface.Divider()
	r.surface.Heading(r.opts.SourcesHeading)

	items := citation.Collect(resp.Context)
	if len(items) == 0 {
		rec.NoFilePathFlg = true
		return rec
	}

	rec.FileInfoList = citation.Labels(items)
	for _, it := range items {
		r.surface.Info(it.Label, icons.ForSource(it.Source))
	}
	return rec
}

// RenderInquiry draws an inquiry-mode answer followed by its deduplicated
// sources. Every document must carry a source.
func (r *Renderer) RenderInquiry(resp Response) (InquiryRecord, error) {
	rec := InquiryRecord{Answer: resp.Answer}

	r.surface.Markdown(resp.Answer)

	if resp.Answer == r.opts.InquiryNoMatchAnswer {
		return rec, nil
	}

	items, err := citation.CollectStrict(resp.Context)
	if err != nil {
		return InquiryRecord{}, fmt.Errorf("render inquiry sources: %w", err)
	}

	r.surface.Divider()
	r.surface.Heading(r.opts.SourcesHeading)
	for _, it := range items {
		r.surface.Info(it.Label, icons.ForSource(it.Source))
	}

	rec.Message = StringPtr(r.opts.SourcesHeading)
	rec.FileInfoList = citation.Labels(items)
	return rec, nil
}
