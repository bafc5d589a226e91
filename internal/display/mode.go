package display

import (
	"fmt"
	"strings"
)

// Mode selects how an answer and its sources are presented.
type Mode string

const (
	// ModeSearch locates internal documents related to the question.
	ModeSearch Mode = "社内文書検索"
	// ModeInquiry answers the question from the content of internal documents.
	ModeInquiry Mode = "社内問い合わせ"
)

// Modes lists the selectable modes in display order.
var Modes = []Mode{ModeSearch, ModeInquiry}

// ParseMode accepts either the display value of a mode or its short alias.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(ModeSearch), "search":
		return ModeSearch, nil
	case string(ModeInquiry), "inquiry":
		return ModeInquiry, nil
	}
	return "", fmt.Errorf("unknown mode %q (expected search or inquiry)", s)
}

// Alias returns the ASCII name used on the command line.
func (m Mode) Alias() string {
	switch m {
	case ModeSearch:
		return "search"
	case ModeInquiry:
		return "inquiry"
	}
	return string(m)
}

// Next returns the other mode.
func (m Mode) Next() Mode {
	if m == ModeSearch {
		return ModeInquiry
	}
	return ModeSearch
}

// Description returns the help text and an example question for the mode.
func (m Mode) Description() (summary, example string) {
	switch m {
	case ModeSearch:
		return "入力内容と関連性が高い社内文書のありかを検索できます。", "社員の育成方針に関するMTGの議事録"
	case ModeInquiry:
		return "質問・要望に対して、社内文書の情報をもとに回答を得られます。", "人事部に所属している従業員情報を一覧化して"
	}
	return "", ""
}

// DescribeModes renders the description of every mode.
func DescribeModes(s Surface) {
	s.Divider()
	for _, m := range Modes {
		summary, example := m.Description()
		s.Markdown(fmt.Sprintf("【「%s」を選択した場合】", m))
		s.Info(summary, "")
		s.Markdown("【入力例】\n" + example)
	}
}
