// Command vktorcat drives vktor.Parser over newline-delimited JSON read
// from a file or stdin, one Parser per non-blank line, and prints the
// resulting token stream, one line per token. It exists to exercise
// the library from the outside — the host-binding-equivalent the core
// package deliberately has no opinion about.
package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/shevron/vktor"
	"github.com/shevron/vktor/internal/config"
	"github.com/shevron/vktor/internal/fingerprint"
	"github.com/shevron/vktor/internal/intern"
	"github.com/shevron/vktor/internal/source"
)

func main() {
	var (
		configPath string
		maxDepth   int
		chunkSize  int
		dedup      bool
		internKeys bool
		quiet      bool
	)

	rootCmd := &cobra.Command{
		Use:           "vktorcat [file]",
		Short:         "Tokenize a JSON document and print its token stream",
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if configPath != "" {
				loaded, err := config.Load(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			if cmd.Flags().Changed("max-depth") {
				cfg.MaxDepth = maxDepth
			}
			if cmd.Flags().Changed("chunk-size") {
				cfg.ChunkSize = chunkSize
			}
			if cmd.Flags().Changed("dedup") {
				cfg.Dedup = dedup
			}

			var file string
			if len(args) == 1 {
				file = args[0]
			}
			return run(cfg, file, internKeys, quiet, os.Stdout)
		},
	}

	rootCmd.Flags().StringVar(&configPath, "config", "", "path to a YAML config file")
	rootCmd.Flags().IntVar(&maxDepth, "max-depth", 0, "maximum container nesting depth (0 = unlimited)")
	rootCmd.Flags().IntVar(&chunkSize, "chunk-size", 0, "read buffer size in bytes")
	rootCmd.Flags().BoolVar(&dedup, "dedup", false, "skip re-printing byte-identical documents")
	rootCmd.Flags().BoolVar(&internKeys, "intern-keys", false, "intern object keys before printing")
	rootCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress per-token output, just report errors")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "vktorcat: %v\n", err)
		os.Exit(1)
	}
}

// run tokenizes file (or stdin) as newline-delimited JSON: each non-blank
// line is fed through its own Parser. This lets --dedup fingerprint each
// document independently and skip re-printing one already seen in this
// run, and lets a single invocation tokenize a batch instead of only one
// top-level value. Token output goes to out (os.Stdout from main; a
// buffer in tests).
func run(cfg config.Config, file string, internKeys, quiet bool, out io.Writer) error {
	sessionID := uuid.New()
	logger := log.New(os.Stderr, "", 0)

	var r *os.File
	if file == "" {
		r = os.Stdin
	} else {
		f, err := os.Open(file)
		if err != nil {
			return fmt.Errorf("open %s: %w", file, err)
		}
		defer f.Close()
		r = f
	}

	reader, closeReader, err := source.Open(r)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer closeReader()

	keys := intern.New()
	var seen *fingerprint.Seen
	if cfg.Dedup {
		seen = fingerprint.NewSeen()
	}

	logger.Printf("session=%s event=start file=%q max_depth=%d", sessionID, displayName(file), cfg.MaxDepth)

	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, cfg.ChunkSize), 16*cfg.ChunkSize)

	docCount, tokenCount, skipped := 0, 0, 0
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(trimSpace(line)) == 0 {
			continue
		}
		docCount++

		if seen != nil && seen.Add(line) {
			skipped++
			continue
		}

		n, err := tokenizeDocument(line, cfg.MaxDepth, keys, internKeys, quiet, out)
		tokenCount += n
		if err != nil {
			logger.Printf("session=%s event=error doc=%d error=%q", sessionID, docCount, err)
			return fmt.Errorf("document %d: %w", docCount, err)
		}
	}
	if err := scanner.Err(); err != nil {
		logger.Printf("session=%s event=read_error error=%q", sessionID, err)
		return fmt.Errorf("read input: %w", err)
	}

	logger.Printf("session=%s event=complete documents=%d tokens=%d skipped=%d", sessionID, docCount, tokenCount, skipped)
	return nil
}

// tokenizeDocument feeds a single complete JSON document through a fresh
// Parser and prints its tokens, returning how many were produced.
func tokenizeDocument(doc []byte, maxDepth int, keys *intern.Table, internKeys, quiet bool, out io.Writer) (int, error) {
	p := vktor.NewParser(maxDepth)
	if err := p.Feed(doc); err != nil {
		return 0, err
	}
	p.Close()

	n := 0
	for {
		status, err := p.Parse()
		switch status {
		case vktor.StatusToken:
			n++
			if !quiet {
				if err := printToken(out, p, keys, internKeys); err != nil {
					return n, err
				}
			}
		case vktor.StatusNeedMore:
			return n, vktor.ErrIncompleteData
		case vktor.StatusComplete:
			return n, nil
		case vktor.StatusError:
			return n, err
		}
	}
}

func trimSpace(b []byte) []byte {
	start := 0
	for start < len(b) && isASCIISpace(b[start]) {
		start++
	}
	end := len(b)
	for end > start && isASCIISpace(b[end-1]) {
		end--
	}
	return b[start:end]
}

func isASCIISpace(b byte) bool {
	switch b {
	case ' ', '\t', '\r', '\n':
		return true
	default:
		return false
	}
}

func printToken(w io.Writer, p *vktor.Parser, keys *intern.Table, internKeys bool) error {
	kind := p.TokenKind()
	switch kind {
	case vktor.KindString, vktor.KindObjectKey:
		s, err := p.ValueStringCopy()
		if err != nil {
			return err
		}
		if internKeys && kind == vktor.KindObjectKey {
			s = keys.Intern(s)
		}
		_, err = fmt.Fprintf(w, "%s depth=%d container=%s value=%q\n", kind, p.Depth(), p.CurrentContainer(), s)
		return err
	case vktor.KindInt:
		n, err := p.ValueLong()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s depth=%d container=%s value=%d\n", kind, p.Depth(), p.CurrentContainer(), n)
		return err
	case vktor.KindFloat:
		f, err := p.ValueDouble()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s depth=%d container=%s value=%g\n", kind, p.Depth(), p.CurrentContainer(), f)
		return err
	default:
		_, err := fmt.Fprintf(w, "%s depth=%d container=%s\n", kind, p.Depth(), p.CurrentContainer())
		return err
	}
}

func displayName(file string) string {
	if file == "" {
		return "<stdin>"
	}
	return file
}
