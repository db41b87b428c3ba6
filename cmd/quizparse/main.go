// Command quizparse parses a question file locally and prints the result,
// useful for checking a file before uploading it.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	format := flag.String("format", "json", "Output format: json or yaml")
	quiz := flag.Bool("quiz", false, "Print the quiz delivery shape instead of raw records")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: quizparse [-format json|yaml] [-quiz] <file|->\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	in, closeFn, err := openInput(flag.Arg(0))
	if err != nil {
		log.Fatal().Err(err).Str("file", flag.Arg(0)).Msg("failed to open input")
	}
	defer closeFn()

	if err := run(in, os.Stdout, *format, *quiz); err != nil {
		log.Fatal().Err(err).Msg("quizparse failed")
	}
}

func openInput(name string) (io.Reader, func(), error) {
	if name == "-" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}
