// Package display renders answers with their sources and defines the
// display-ready records kept in the conversation log.
package display

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mwiater/docchat/internal/citation"
)

// Role identifies the author of a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Response is an answer computed by the retrieval backend together with the
// documents it was grounded on.
type Response struct {
	Answer  string              `json:"answer"`
	Context []citation.Document `json:"context"`
}

// Content is the body of a conversation turn. The set of implementations is closed.
type Content interface {
	String() string
	content()
}

// Text is plain message content.
type Text string

// Raw holds assistant content that matched no known record shape. It is kept
// verbatim and shown as its JSON text.
type Raw struct {
	JSON json.RawMessage
}

// SubChoice is a secondary source suggested next to the primary one.
type SubChoice struct {
	Source string `json:"source"`
}

// SearchRecord is what a search-mode turn leaves in the log. The renderer fills
// Answer, NoFilePathFlg and FileInfoList; the Main* and Sub* fields are set by
// callers that pick a primary document themselves.
type SearchRecord struct {
	Answer        string      `json:"answer"`
	NoFilePathFlg bool        `json:"no_file_path_flg,omitempty"`
	FileInfoList  []string    `json:"file_info_list,omitempty"`
	MainMessage   string      `json:"main_message,omitempty"`
	MainFilePath  string      `json:"main_file_path,omitempty"`
	SubMessage    string      `json:"sub_message,omitempty"`
	SubChoices    []SubChoice `json:"sub_choices,omitempty"`
}

// InquiryRecord is what an inquiry-mode turn leaves in the log. Message is nil
// when the backend found nothing to cite.
type InquiryRecord struct {
	Answer       string
	Message      *string
	FileInfoList []string
}

func (Text) content()          {}
func (Raw) content()           {}
func (SearchRecord) content()  {}
func (InquiryRecord) content() {}

func (t Text) String() string { return string(t) }

func (r Raw) String() string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, r.JSON); err != nil {
		return string(r.JSON)
	}
	return buf.String()
}

// MarshalJSON writes the stored value unchanged.
func (r Raw) MarshalJSON() ([]byte, error) {
	if len(r.JSON) == 0 {
		return []byte("null"), nil
	}
	return r.JSON, nil
}

func (r SearchRecord) String() string {
	data, err := json.Marshal(r)
	if err != nil {
		return r.Answer
	}
	return string(data)
}

func (r InquiryRecord) String() string {
	data, err := json.Marshal(r)
	if err != nil {
		return r.Answer
	}
	return string(data)
}

// Mode returns ModeSearch.
func (SearchRecord) Mode() Mode { return ModeSearch }

// Mode returns ModeInquiry.
func (InquiryRecord) Mode() Mode { return ModeInquiry }

// HasFeatured reports whether the record carries a primary document or secondary choices.
func (r SearchRecord) HasFeatured() bool {
	return r.MainMessage != "" || r.MainFilePath != "" || r.SubMessage != "" || len(r.SubChoices) > 0
}

// MarshalJSON adds the mode discriminator.
func (r SearchRecord) MarshalJSON() ([]byte, error) {
	type plain SearchRecord
	return json.Marshal(struct {
		Mode Mode `json:"mode"`
		plain
	}{Mode: ModeSearch, plain: plain(r)})
}

// MarshalJSON adds the mode discriminator. file_info_list is written whenever
// there is a message or at least one label.
func (r InquiryRecord) MarshalJSON() ([]byte, error) {
	out := struct {
		Mode         Mode      `json:"mode"`
		Answer       string    `json:"answer"`
		Message      *string   `json:"message,omitempty"`
		FileInfoList *[]string `json:"file_info_list,omitempty"`
	}{Mode: ModeInquiry, Answer: r.Answer, Message: r.Message}
	if r.Message != nil || len(r.FileInfoList) > 0 {
		list := r.FileInfoList
		if list == nil {
			list = []string{}
		}
		out.FileInfoList = &list
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads the wire shape written by MarshalJSON.
func (r *InquiryRecord) UnmarshalJSON(data []byte) error {
	var in struct {
		Answer       string   `json:"answer"`
		Message      *string  `json:"message"`
		FileInfoList []string `json:"file_info_list"`
	}
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*r = InquiryRecord{Answer: in.Answer, Message: in.Message, FileInfoList: in.FileInfoList}
	return nil
}

// Validate checks the record invariants.
func (r SearchRecord) Validate() error {
	if r.NoFilePathFlg && len(r.FileInfoList) > 0 {
		return errors.New("search record: no_file_path_flg set together with file_info_list")
	}
	return checkUnique(r.FileInfoList)
}

// Validate checks the record invariants. A list without a message is shown
// under the default sources heading.
func (r InquiryRecord) Validate() error {
	return checkUnique(r.FileInfoList)
}

func checkUnique(labels []string) error {
	seen := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		if _, ok := seen[l]; ok {
			return fmt.Errorf("duplicate source label %q", l)
		}
		seen[l] = struct{}{}
	}
	return nil
}

// DecodeContent turns a stored content value back into Content. Strings become
// Text, objects are dispatched on their "mode" field and anything else is Raw.
func DecodeContent(data json.RawMessage) (Content, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return Text(""), nil
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return nil, err
		}
		return Text(s), nil
	case '{':
		var head struct {
			Mode Mode `json:"mode"`
		}
		if err := json.Unmarshal(trimmed, &head); err != nil {
			return Raw{JSON: append(json.RawMessage(nil), trimmed...)}, nil
		}
		switch head.Mode {
		case ModeSearch:
			var r SearchRecord
			if err := json.Unmarshal(trimmed, &r); err != nil {
				return nil, fmt.Errorf("decode search record: %w", err)
			}
			return r, nil
		case ModeInquiry:
			var r InquiryRecord
			if err := json.Unmarshal(trimmed, &r); err != nil {
				return nil, fmt.Errorf("decode inquiry record: %w", err)
			}
			return r, nil
		}
	}
	return Raw{JSON: append(json.RawMessage(nil), trimmed...)}, nil
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string { return &s }
