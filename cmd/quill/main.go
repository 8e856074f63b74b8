package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	stlog "log" // for fatal errors before the logger is ready
	"os"
	"strconv"
	"strings"

	"github.com/averill/quill/internal/assistant"
	"github.com/averill/quill/internal/config"
	"github.com/averill/quill/internal/logger"
	"github.com/averill/quill/internal/mutate"
	"github.com/averill/quill/internal/provider"
)

var (
	command      string
	prompt       string
	title        string
	responsePath string
	selRange     string
	replaceAll   bool
	replaceSel   bool
	showStats    bool
)

func main() {
	flags := config.DefineFlags(flag.CommandLine)
	flag.StringVar(&command, "command", "continue", "assistant command to run")
	flag.StringVar(&prompt, "prompt", "", "free-form instruction forwarded to the model")
	flag.StringVar(&title, "title", "", "document title")
	flag.StringVar(&responsePath, "response", "-", "model response file (\"-\" for stdin)")
	flag.StringVar(&selRange, "sel", "", "selection byte range as start:end")
	flag.BoolVar(&replaceAll, "replace-all", false, "force full-content replacement")
	flag.BoolVar(&replaceSel, "replace-selection", false, "force replacing the selection")
	flag.BoolVar(&showStats, "stats", false, "print document statistics to stderr")
	if err := flags.ParseFlags(flag.CommandLine, os.Args[1:]); err != nil {
		stlog.Fatalf("parse flags: %v", err)
	}

	cfg, err := config.Load(*flags.ConfigPath, flags)
	if err != nil {
		stlog.Fatalf("load config: %v", err)
	}

	logOut, logClose, err := logger.OpenOutput(cfg.Logger)
	if err != nil {
		stlog.Fatalf("open log output: %v", err)
	}
	if logClose != nil {
		defer logClose.Close()
	}
	logger.Init(cfg.Logger, logOut)
	logger.Infof("quill starting, command %q", command)

	if err := run(cfg); err != nil {
		logger.Errorf("quill failed: %v", err)
		fmt.Fprintln(os.Stderr, "quill:", err)
		os.Exit(1)
	}
	logger.Infof("quill finished")
}

// run feeds one model response through the pipeline against the document
// given as the first positional argument (empty document if omitted). The
// mutated document goes to stdout; reasoning and suggestions to stderr.
func run(cfg *config.Config) error {
	content, err := readDocument(flag.Arg(0))
	if err != nil {
		return err
	}
	raw, err := readResponse(responsePath)
	if err != nil {
		return err
	}

	sess := assistant.NewSession(assistant.Options{
		Title:    title,
		Content:  content,
		Config:   cfg,
		Provider: provider.NewScripted(raw),
	})
	defer sess.Close()

	if selRange != "" {
		start, end, err := parseRange(selRange)
		if err != nil {
			return err
		}
		sess.Select(start, end)
	}

	parsed, res, err := sess.Run(context.Background(), command, prompt, mutate.Flags{
		ReplaceEntireContent: replaceAll,
		ReplaceSelection:     replaceSel,
	})
	if err != nil {
		return err
	}
	logger.Infof("command %q resolved to %v, applied=%v", command, parsed.Strategy, res.Applied)

	if parsed.HasThinking && parsed.Thinking != "" {
		fmt.Fprintf(os.Stderr, "reasoning:\n%s\n\n", parsed.Thinking)
	}
	for i, sug := range sess.Suggestions() {
		fmt.Fprintf(os.Stderr, "suggestion %d: %s\n", i+1, sug)
	}
	if parsed.Truncated {
		fmt.Fprintln(os.Stderr, "note: response content was truncated")
	}
	if showStats {
		graphemes, words := sess.Stats()
		fmt.Fprintf(os.Stderr, "document: %d characters, %d words\n", graphemes, words)
	}

	out := sess.Content()
	if _, err := io.WriteString(os.Stdout, out); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if out != "" && !strings.HasSuffix(out, "\n") {
		fmt.Println()
	}
	return nil
}

func readDocument(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read document %q: %w", path, err)
	}
	return string(data), nil
}

func readResponse(path string) (string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read response from stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read response %q: %w", path, err)
	}
	return string(data), nil
}

func parseRange(s string) (int, int, error) {
	startStr, endStr, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, fmt.Errorf("invalid selection range %q, want start:end", s)
	}
	start, err := strconv.Atoi(strings.TrimSpace(startStr))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid selection start %q: %w", startStr, err)
	}
	end, err := strconv.Atoi(strings.TrimSpace(endStr))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid selection end %q: %w", endStr, err)
	}
	return start, end, nil
}
