package display

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/mwiater/docchat/internal/citation"
)

func docs(metas ...map[string]any) []citation.Document {
	out := make([]citation.Document, len(metas))
	for i, m := range metas {
		out[i] = citation.Document{Metadata: m}
	}
	return out
}

func TestRenderSearchDeduplicatesLabels(t *testing.T) {
	rec := NewRecorder()
	r := NewRenderer(rec, Options{})

	got := r.RenderSearch(Response{
		Answer: "hello",
		Context: docs(
			map[string]any{"source": "a.pdf", "page": 0},
			map[string]any{"source": "a.pdf", "page": 0},
			map[string]any{"source": "b.txt"},
		),
	})

	want := []string{"a.pdf（ページNo.1）", "b.txt"}
	if !reflect.DeepEqual(got.FileInfoList, want) {
		t.Fatalf("FileInfoList=%v want %v", got.FileInfoList, want)
	}
	if got.NoFilePathFlg {
		t.Fatalf("expected no_file_path_flg to be false")
	}

	wantLines := []string{
		"markdown: hello",
		"---",
		"heading: 情報源",
		"info[📄]: a.pdf（ページNo.1）",
		"info[📄]: b.txt",
	}
	if !reflect.DeepEqual(rec.Lines(), wantLines) {
		t.Fatalf("rendered lines mismatch\nwant:\n%s\n\ngot:\n%s", strings.Join(wantLines, "\n"), rec.String())
	}
}

func TestRenderSearchNoSources(t *testing.T) {
	tests := []struct {
		name      string
		resp      Response
		wantLines int
	}{
		{name: "empty context", resp: Response{Answer: "hi"}, wantLines: 1},
		{
			name:      "sentinel answer",
			resp:      Response{Answer: DefaultNoDocMatchAnswer, Context: docs(map[string]any{"source": "a.txt"})},
			wantLines: 1,
		},
		{
			name:      "no usable source",
			resp:      Response{Answer: "hi", Context: docs(map[string]any{"page": 1}, map[string]any{"source": ""})},
			wantLines: 3,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			rec := NewRecorder()
			got := NewRenderer(rec, Options{}).RenderSearch(tt.resp)
			if !got.NoFilePathFlg {
				t.Fatalf("expected no_file_path_flg")
			}
			if got.FileInfoList != nil {
				t.Fatalf("expected no file_info_list, got %v", got.FileInfoList)
			}
			if n := len(rec.Lines()); n != tt.wantLines {
				t.Fatalf("expected %d rendered lines, got %d:\n%s", tt.wantLines, n, rec.String())
			}
			data, err := json.Marshal(got)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			if strings.Contains(string(data), "file_info_list") {
				t.Fatalf("unexpected file_info_list key: %s", data)
			}
		})
	}
}

func TestRenderSearchCustomSentinel(t *testing.T) {
	r := NewRenderer(NewRecorder(), Options{NoDocMatchAnswer: "nothing found"})
	got := r.RenderSearch(Response{Answer: "nothing found", Context: docs(map[string]any{"source": "a.txt"})})
	if !got.NoFilePathFlg {
		t.Fatalf("expected custom sentinel to suppress sources")
	}
}

func TestRenderSearchLinkIcon(t *testing.T) {
	rec := NewRecorder()
	NewRenderer(rec, Options{}).RenderSearch(Response{
		Answer:  "see link",
		Context: docs(map[string]any{"source": "https://intra.example/faq"}),
	})
	lines := rec.Lines()
	if last := lines[len(lines)-1]; last != "info[🔗]: https://intra.example/faq" {
		t.Fatalf("unexpected citation line %q", last)
	}
}

func TestRenderInquiry(t *testing.T) {
	rec := NewRecorder()
	got, err := NewRenderer(rec, Options{}).RenderInquiry(Response{
		Answer: "answer",
		Context: docs(
			map[string]any{"source": "rules.pdf", "page": 2},
			map[string]any{"source": "rules.pdf", "page": 2},
			map[string]any{"source": "rules.pdf", "page": "x"},
			map[string]any{"source": "staff.csv", "page": 9},
		),
	})
	if err != nil {
		t.Fatalf("RenderInquiry error: %v", err)
	}
	if got.Message == nil || *got.Message != DefaultSourcesHeading {
		t.Fatalf("expected message %q, got %v", DefaultSourcesHeading, got.Message)
	}
	want := []string{"rules.pdf（ページNo.3）", "rules.pdf", "staff.csv"}
	if !reflect.DeepEqual(got.FileInfoList, want) {
		t.Fatalf("FileInfoList=%v want %v", got.FileInfoList, want)
	}
	if err := got.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestRenderInquirySentinelOmitsKeys(t *testing.T) {
	rec := NewRecorder()
	got, err := NewRenderer(rec, Options{}).RenderInquiry(Response{
		Answer:  DefaultInquiryNoMatchAnswer,
		Context: docs(map[string]any{"source": "a.txt"}),
	})
	if err != nil {
		t.Fatalf("RenderInquiry error: %v", err)
	}
	data, err := json.Marshal(got)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var keys map[string]any
	if err := json.Unmarshal(data, &keys); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, k := range []string{"message", "file_info_list"} {
		if _, ok := keys[k]; ok {
			t.Fatalf("unexpected key %q in %s", k, data)
		}
	}
	if keys["mode"] != string(ModeInquiry) {
		t.Fatalf("unexpected mode in %s", data)
	}
	if len(rec.Lines()) != 1 {
		t.Fatalf("expected answer only, got:\n%s", rec.String())
	}
}

func TestRenderInquiryEmptyContextKeepsKeys(t *testing.T) {
	got, err := NewRenderer(NewRecorder(), Options{}).RenderInquiry(Response{Answer: "ok"})
	if err != nil {
		t.Fatalf("RenderInquiry error: %v", err)
	}
	data, _ := json.Marshal(got)
	if !strings.Contains(string(data), `"file_info_list":[]`) || !strings.Contains(string(data), `"message":"情報源"`) {
		t.Fatalf("expected message and empty file_info_list, got %s", data)
	}
}

func TestRenderInquiryMissingSource(t *testing.T) {
	_, err := NewRenderer(NewRecorder(), Options{}).RenderInquiry(Response{
		Answer:  "answer",
		Context: docs(map[string]any{"page": 1}),
	})
	if !errors.Is(err, citation.ErrMissingSource) {
		t.Fatalf("expected ErrMissingSource, got %v", err)
	}
}

func TestRenderDispatch(t *testing.T) {
	r := NewRenderer(NewRecorder(), Options{})
	content, err := r.Render(ModeSearch, Response{Answer: "x"})
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if _, ok := content.(SearchRecord); !ok {
		t.Fatalf("expected SearchRecord, got %T", content)
	}
	if _, err := r.Render(Mode("other"), Response{}); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}
