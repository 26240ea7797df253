// The command "pinyinchart" compiles the pronunciation tables of the deck.
//
// It scrapes the Pinyin chart, the Yale romanization table and the English
// Wikipedia API, then writes two JSON files to the output directory:
// syllables.json (one entry per chart syllable, in chart order) and
// ipa.json (one entry per IPA symbol, sorted). Every HTTP response is kept
// in an encrypted SQLite cache so that later runs work offline.
//
// Example usages:
//
//   # Compile both tables (same as "pinyinchart compile"):
//   pinyinchart
//
//   # Print one syllable from the compiled tables:
//   pinyinchart show --output txt zhi
//
//   # Print a Wikipedia section while exploring new sources:
//   pinyinchart section --page-id 21727674 --section 6
//
// Settings come from ./config.yaml (or CONFIG_PATH) and the environment;
// see the help text for the variables.

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ribbanya/pinyin-beginners-anki-deck/internal/app"
	"github.com/ribbanya/pinyin-beginners-anki-deck/internal/config"
)

// Page and section of the "Syllabic consonants" part of the Standard
// Chinese phonology article.
const (
	defaultPageID  = 21727674
	defaultSection = 6
)

// --- CLI help / usage -------------------------------------------------------

const helpText = `pinyinchart - Pinyin chart and IPA glossary compiler

Usage:
  pinyinchart
  pinyinchart compile
      Scrape every source and write syllables.json and ipa.json to the
      output directory. Takes no flags. Nothing is written if any step fails.

  pinyinchart show [--output json|txt] <pinyin>
      Print one syllable of the compiled tables together with the
      description of each of its IPA symbols.

  pinyinchart section [--page-id N] [--section N]
      Print the rendered HTML of one section of a Wikipedia page.
      Defaults to the "Syllabic consonants" section of the Standard
      Chinese phonology article.

  pinyinchart help
      Print this help message.

Flags for "show":
  --output json
      Indented JSON (default).
  --output txt
      One header line, then one line per IPA symbol.

Flags for "section":
  --page-id N
      Wikipedia page id (default 21727674).
  --section N
      Section index (default 6).

Files:
  secrets.json
      Must exist before the first run:
          {
              "httpCache": "<arbitrarily generated string>"
          }
      The string keys the encryption of the HTTP cache; changing it
      discards every cached response.

Configuration (config.yaml at CONFIG_PATH, or environment):
  CHART_SECRETS_PATH    secret file (default secrets.json)
  CHART_HTTP_CACHE_KEY  overrides the secret file value
  CHART_CACHE_PATH      HTTP cache database (default .http_cache.sqlite)
  CHART_OUTPUT_DIR      output directory (default recordings)
  CHART_SOURCE_URL      Pinyin chart page
  CHART_YALE_URL        Yale romanization table
  CHART_WIKI_API_URL    MediaWiki API endpoint
  CHART_USER_AGENT      User-Agent header
  CHART_HTTP_TIMEOUT    per-request timeout, e.g. 30s (default none)
  LOG_LEVEL             debug, info, warn or error (default info)
  LOG_FORMAT            text or json (default text)

Examples:
  # First run
  echo '{"httpCache": "'$(openssl rand -hex 16)'"}' > secrets.json
  pinyinchart

  # Inspect the result
  pinyinchart show --output txt lüe
`

// printUsage writes the CLI help text to the given writer.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, helpText)
}

// --- Subcommands ------------------------------------------------------------

// runCompileFromArgs runs a full compilation. It accepts no arguments.
func runCompileFromArgs(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return fmt.Errorf(`"compile" takes no arguments, got %q`, args)
	}
	logger := app.NewLogger(os.Stderr, cfg.Log)
	return app.Compile(ctx, cfg, logger)
}

// runShowFromArgs prints one syllable of the compiled tables.
func runShowFromArgs(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("show", flag.ContinueOnError)
	output := fs.String("output", app.OutputJSON, "output format: json or txt")
	fs.SetOutput(os.Stderr)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printUsage(os.Stdout)
			return nil
		}
		return err
	}

	remaining := fs.Args()
	if len(remaining) != 1 {
		return errors.New(`"show" expects exactly one <pinyin> argument`)
	}

	mode := strings.ToLower(strings.TrimSpace(*output))
	return app.Show(os.Stdout, cfg.Paths.Output, strings.TrimSpace(remaining[0]), mode)
}

// runSectionFromArgs prints the HTML of one Wikipedia section.
func runSectionFromArgs(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("section", flag.ContinueOnError)
	pageID := fs.Int64("page-id", defaultPageID, "Wikipedia page id")
	section := fs.Int("section", defaultSection, "section index")
	fs.SetOutput(os.Stderr)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printUsage(os.Stdout)
			return nil
		}
		return err
	}
	if fs.NArg() != 0 {
		return fmt.Errorf(`"section" takes no positional arguments, got %q`, fs.Args())
	}

	logger := app.NewLogger(os.Stderr, cfg.Log)
	html, err := app.Section(ctx, cfg, logger, *pageID, *section)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(os.Stdout, html)
	return err
}

// --- main -------------------------------------------------------------------

func main() {
	cmd, args := "compile", []string(nil)
	if len(os.Args) >= 2 {
		cmd, args = os.Args[1], os.Args[2:]
	}

	switch cmd {
	case "help", "-h", "--help":
		printUsage(os.Stdout)
		return
	case "compile", "show", "section":
	default:
		log.Printf("Unknown subcommand %q\n\n", cmd)
		printUsage(os.Stderr)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch cmd {
	case "compile":
		err = runCompileFromArgs(ctx, cfg, args)
	case "show":
		err = runShowFromArgs(cfg, args)
	case "section":
		err = runSectionFromArgs(ctx, cfg, args)
	}
	if err != nil {
		stop()
		log.Fatal(err)
	}
}
