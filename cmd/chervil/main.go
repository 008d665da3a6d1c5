package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mgutz/ansi"
	"github.com/pkg/errors"
	"github.com/rgardiner/chervil"
	kingpin "gopkg.in/alecthomas/kingpin.v2"
)

var (
	app = kingpin.New("chervil", "Compile EBNF-style grammar descriptions and match input against them.")

	rulesCmd     = app.Command("rules", "List the rules declared in a grammar file.")
	rulesGrammar = rulesCmd.Arg("grammar", "Grammar file.").Required().String()

	matchCmd     = app.Command("match", "Match input against a grammar and print the parse tree.")
	matchGrammar = matchCmd.Arg("grammar", "Grammar file.").Required().String()
	matchInput   = matchCmd.Arg("input", "Input file. Reads stdin when omitted.").String()
	matchRule    = matchCmd.Flag("rule", "Start rule. Defaults to the first declared rule.").String()
	matchDepth   = matchCmd.Flag("max-depth", "Recursion ceiling for matching.").Default("10000").Int()
	matchMark    = matchCmd.Flag("highlight", "Print the input with the span of the first node of this type highlighted.").String()
)

func main() {
	switch kingpin.MustParse(app.Parse(os.Args[1:])) {
	case rulesCmd.FullCommand():
		app.FatalIfError(listRules(*rulesGrammar), "rules")
	case matchCmd.FullCommand():
		app.FatalIfError(runMatch(), "match")
	}
}

func loadGrammar(path string) (*chervil.Grammar, error) {
	contents, err := os.ReadFile(path)

	if err != nil {
		return nil, errors.Wrapf(err, "reading grammar %s", path)
	}

	return chervil.Compile(string(contents))
}

func listRules(path string) error {
	g, err := loadGrammar(path)

	if err != nil {
		return err
	}

	for _, name := range g.Rules() {
		if name == g.StartRule() {
			fmt.Printf("%s (start)\n", name)
		} else {
			fmt.Println(name)
		}
	}

	return nil
}

func readInput(path string) (string, error) {
	if path == "" {
		contents, err := io.ReadAll(os.Stdin)
		return string(contents), errors.Wrap(err, "reading stdin")
	}

	contents, err := os.ReadFile(path)

	if err != nil {
		return "", errors.Wrapf(err, "reading input %s", path)
	}

	return string(contents), nil
}

func runMatch() error {
	g, err := loadGrammar(*matchGrammar)

	if err != nil {
		return err
	}

	input, err := readInput(*matchInput)

	if err != nil {
		return err
	}

	// A trailing newline from a file or the terminal is almost never part
	// of what the grammar describes.
	input = strings.TrimRight(input, "\r\n")

	rule := *matchRule

	if rule == "" {
		rule = g.StartRule()
	}

	node, err := g.MatchRule(rule, input, chervil.WithMaxDepth(*matchDepth))

	if err != nil {
		var incomplete *chervil.IncompleteParseError

		if errors.As(err, &incomplete) {
			fmt.Fprint(os.Stderr, chervil.FormatContext(input, incomplete.Offset, 2))
		}

		return err
	}

	fmt.Print(node.Dump())

	if *matchMark != "" {
		if target := node.Find(*matchMark); target != nil {
			fmt.Println(highlight(input, target))
		} else {
			fmt.Fprintf(os.Stderr, "no %s node in the parse tree\n", *matchMark)
		}
	}

	return nil
}

func highlight(input string, node *chervil.Node) string {
	runes := []rune(input)

	return string(runes[:node.Start]) + ansi.Color(string(runes[node.Start:node.End]), "black:white") + string(runes[node.End:])
}
