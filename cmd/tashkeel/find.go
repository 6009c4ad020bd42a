package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/hazyhaar/tashkeel/pkg/diacritics"
)

type findResult struct {
	diacritics.MatchResult
	Matched string `json:"matched,omitempty"`
}

func find(content, term string, leadMark bool) findResult {
	m := diacritics.Search(content, term)
	if leadMark {
		m = diacritics.ExtendLeadingMarks(content, m)
	}
	_, matched, _ := diacritics.Split(content, m)
	return findResult{MatchResult: m, Matched: matched}
}

func cmdFind(args []string) {
	fs := flag.NewFlagSet("find", flag.ExitOnError)
	content := fs.String("content", "", "text to search in")
	term := fs.String("term", "", "term to search for")
	leadMark := fs.Bool("lead-mark", false, "include diacritics just before the match")
	fs.Parse(args)

	if *content == "" && fs.NArg() > 0 {
		*content = fs.Arg(0)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(find(*content, *term, *leadMark)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
