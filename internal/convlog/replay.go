package convlog

import (
	"github.com/mwiater/docchat/internal/display"
	"github.com/mwiater/docchat/internal/icons"
)

// Replay draws every turn of entries onto s. It never modifies the entries
// and never fails, so it can run on every redraw.
func Replay(entries []Entry, s display.Surface, opts display.Options) {
	heading := opts.SourcesHeading
	if heading == "" {
		heading = display.DefaultSourcesHeading
	}

	for _, e := range entries {
		s.BeginMessage(e.Role)

		if e.Role == display.RoleUser || e.Content == nil {
			s.Markdown(contentText(e.Content))
			continue
		}

		switch c := e.Content.(type) {
		case display.SearchRecord:
			replaySearch(c, s, heading)
		case display.InquiryRecord:
			replayInquiry(c, s, heading)
		case display.Text:
			s.Markdown(string(c))
		case display.Raw:
			s.Markdown(c.String())
		}
	}
}

func contentText(c display.Content) string {
	if c == nil {
		return ""
	}
	return c.String()
}

func replaySearch(r display.SearchRecord, s display.Surface, heading string) {
	if r.NoFilePathFlg {
		s.Markdown(r.Answer)
		return
	}

	if !r.HasFeatured() {
		s.Markdown(r.Answer)
		if len(r.FileInfoList) > 0 {
			s.Divider()
			s.Heading(heading)
			for _, label := range r.FileInfoList {
				s.Info(label, icons.ForSource(label))
			}
		}
		return
	}

	s.Markdown(r.MainMessage)
	if r.MainFilePath != "" {
		s.Success(r.MainFilePath, icons.ForSource(r.MainFilePath))
	}
	if r.SubMessage != "" && len(r.SubChoices) > 0 {
		s.Markdown(r.SubMessage)
		for _, choice := range r.SubChoices {
			if choice.Source == "" {
				continue
			}
			s.Info(choice.Source, icons.ForSource(choice.Source))
		}
	}
}

func replayInquiry(r display.InquiryRecord, s display.Surface, heading string) {
	s.Markdown(r.Answer)
	if len(r.FileInfoList) == 0 {
		return
	}
	s.Divider()
	if r.Message != nil {
		heading = *r.Message
	}
	s.Heading(heading)
	for _, label := range r.FileInfoList {
		s.Info(label, icons.ForSource(label))
	}
}
