// Command parsedoc parses a local .docx practice test and prints the quiz as JSON.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"word-quiz/internal/config"
	"word-quiz/internal/logger"
	"word-quiz/internal/parser"
	"word-quiz/internal/validation"
)

func main() {
	title := flag.String("title", "", "title to use instead of the document's first paragraph")
	debug := flag.Bool("debug", false, "log parser decisions to stdout")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] <file.docx>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	path := flag.Arg(0)

	if *debug {
		_ = logger.Initialize(config.LoggerConfig{Level: "debug", Env: "development"})
		defer logger.Sync()
	}

	if err := validation.NewValidator().ValidateDocxUpload(path); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read %s: %v\n", path, err)
		os.Exit(1)
	}

	var titleHint *string
	if *title != "" {
		titleHint = title
	}

	doc, err := parser.NewDocxParser().ParseDocument(data, titleHint)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		fmt.Fprintf(os.Stderr, "encode: %v\n", err)
		os.Exit(1)
	}
}
