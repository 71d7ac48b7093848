package tui

import "testing"

func TestParseCommand(t *testing.T) {
	cases := []struct {
		in   string
		want Command
	}{
		{"Backend engineer", Command{Kind: CmdNone}},
		{"  /reset ", Command{Kind: CmdReset}},
		{"/RESET", Command{Kind: CmdReset}},
		{"/load ~/cv.pdf", Command{Kind: CmdLoad, Arg: "~/cv.pdf"}},
		{"/load   r2://users/1/cv.docx  ", Command{Kind: CmdLoad, Arg: "r2://users/1/cv.docx"}},
		{"/load", Command{Kind: CmdLoad}},
		{"/next", Command{Kind: CmdNext}},
		{"/help", Command{Kind: CmdHelp}},
		{"/exit", Command{Kind: CmdQuit}},
		{"/bogus x", Command{Kind: CmdUnknown, Arg: "/bogus"}},
	}
	for _, tc := range cases {
		got := ParseCommand(tc.in)
		if got != tc.want {
			t.Fatalf("input=%q got=%+v want=%+v", tc.in, got, tc.want)
		}
	}
}
