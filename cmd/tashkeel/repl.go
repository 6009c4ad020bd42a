package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/hazyhaar/tashkeel/pkg/diacritics"
	"github.com/pterm/pterm"
)

type replOp int

const (
	opSearch replOp = iota
	opContent
	opShow
	opLeadMark
	opHelp
	opQuit
)

type replCommand struct {
	op  replOp
	arg string
}

var replOps = map[string]replOp{
	"content": opContent,
	"c":       opContent,
	"show":    opShow,
	"lead":    opLeadMark,
	"help":    opHelp,
	"quit":    opQuit,
	"q":       opQuit,
}

var errUnknownCommand = errors.New("unknown command")

// parseLine turns one input line into a command. Lines starting with ':'
// are commands, anything else is a search term.
func parseLine(line string) (replCommand, error) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, ":") {
		return replCommand{op: opSearch, arg: line}, nil
	}
	name, arg, _ := strings.Cut(line[1:], " ")
	op, ok := replOps[strings.ToLower(name)]
	if !ok {
		return replCommand{}, fmt.Errorf("%w: %s", errUnknownCommand, name)
	}
	return replCommand{op: op, arg: strings.TrimSpace(arg)}, nil
}

type repl struct {
	rl       *readline.Instance
	content  string
	leadMark bool
}

var (
	matchStyle = pterm.NewStyle(pterm.FgRed, pterm.Bold)
	labelStyle = pterm.NewStyle(pterm.FgCyan)
)

func cmdRepl(args []string) {
	fs := flag.NewFlagSet("repl", flag.ExitOnError)
	content := fs.String("content", "", "initial text to search in")
	leadMark := fs.Bool("lead-mark", false, "include diacritics just before the match")
	fs.Parse(args)

	rl, err := readline.New("tashkeel > ")
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(3)
	}
	defer rl.Close()

	r := &repl{rl: rl, content: *content, leadMark: *leadMark}
	pterm.Info.Println("Set the text with :content <text>, then type terms. Quit with :quit or <ctrl>D")
	r.loop()
}

func (r *repl) loop() {
	for {
		line, err := r.rl.Readline()
		if err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, readline.ErrInterrupt) {
				pterm.Error.Println(err)
			}
			break
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		cmd, err := parseLine(line)
		if err != nil {
			pterm.Error.Println(err)
			continue
		}
		if r.execute(cmd) {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

// execute runs cmd and reports whether the loop should stop.
func (r *repl) execute(cmd replCommand) bool {
	switch cmd.op {
	case opQuit:
		return true
	case opHelp:
		printHelp()
	case opContent:
		r.content = cmd.arg
		r.printContent()
	case opShow:
		r.printContent()
	case opLeadMark:
		switch cmd.arg {
		case "on":
			r.leadMark = true
		case "off":
			r.leadMark = false
		default:
			r.leadMark = !r.leadMark
		}
		pterm.Printf("%s %v\n", labelStyle.Sprint("lead-mark:"), r.leadMark)
	case opSearch:
		if r.content == "" {
			pterm.Warning.Println("no text set, use :content <text>")
			return false
		}
		r.printResult(find(r.content, cmd.arg, r.leadMark))
	}
	return false
}

func (r *repl) printContent() {
	pterm.Printf("%s %s\n", labelStyle.Sprint("Content:"), r.content)
	pterm.Printf("%s %d\n", labelStyle.Sprint("Length:"), len([]rune(r.content)))
}

func (r *repl) printResult(res findResult) {
	found := "No"
	if res.Found {
		found = "Yes"
	}
	pterm.Printf("%s %s\n", labelStyle.Sprint("Found:"), found)
	pterm.Printf("%s %d\n", labelStyle.Sprint("Start:"), res.Start)
	pterm.Printf("%s %d\n", labelStyle.Sprint("End:"), res.End)
	if !res.Found {
		return
	}
	before, match, after := diacritics.Split(r.content, res.MatchResult)
	pterm.Println(before + matchStyle.Sprint(match) + after)
}

func printHelp() {
	pterm.DefaultTable.WithHasHeader().WithData([][]string{
		{"Command", "Effect"},
		{":content <text>", "set the text to search in"},
		{":show", "print the current text"},
		{":lead [on|off]", "include diacritics just before the match"},
		{"<term>", "search the term, ignoring diacritics"},
		{":quit", "leave"},
	}).Render()
}
