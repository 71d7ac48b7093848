package tui

import "strings"

type CommandKind int

const (
	CmdNone CommandKind = iota
	CmdReset
	CmdLoad
	CmdNext
	CmdHelp
	CmdQuit
	CmdUnknown
)

// Command is a slash command typed into the chat input. CmdNone means the
// input is an ordinary chat message.
type Command struct {
	Kind CommandKind
	Arg  string
}

const HelpText = "/reset clears bullets · /load <file|r2://key> queues rough points from a resume · /next sends the next one · /quit exits"

func ParseCommand(input string) Command {
	input = strings.TrimSpace(input)
	if !strings.HasPrefix(input, "/") {
		return Command{Kind: CmdNone}
	}
	name, arg, _ := strings.Cut(input, " ")
	arg = strings.TrimSpace(arg)
	switch strings.ToLower(name) {
	case "/reset":
		return Command{Kind: CmdReset}
	case "/load":
		return Command{Kind: CmdLoad, Arg: arg}
	case "/next":
		return Command{Kind: CmdNext}
	case "/help", "/?":
		return Command{Kind: CmdHelp}
	case "/quit", "/exit":
		return Command{Kind: CmdQuit}
	default:
		return Command{Kind: CmdUnknown, Arg: name}
	}
}
