package processor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"codeberg.org/snonux/jsonlingo/internal"
	"codeberg.org/snonux/jsonlingo/internal/archive"
	"codeberg.org/snonux/jsonlingo/internal/batch"
	"codeberg.org/snonux/jsonlingo/internal/cli"
	apperrors "codeberg.org/snonux/jsonlingo/internal/errors"
	"codeberg.org/snonux/jsonlingo/internal/jsonvalue"
	"codeberg.org/snonux/jsonlingo/internal/translation"
	"codeberg.org/snonux/jsonlingo/internal/tree"
)

// Processor handles the document translation workflows
type Processor struct {
	flags  *cli.Flags
	config *cli.Config
	trees  *tree.TreeTranslator

	// Stdin, Stdout and Stderr default to the process streams
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewProcessor creates a processor backed by the configured provider
func NewProcessor(ctx context.Context, flags *cli.Flags, config *cli.Config, logger *slog.Logger) (*Processor, error) {
	gen, err := translation.NewGenerator(ctx, &config.Generator)
	if err != nil {
		return nil, err
	}

	return newProcessor(flags, config, NewTreeTranslator(translation.NewTranslator(gen), config, logger)), nil
}

// NewTreeTranslator builds the tree translator described by config
func NewTreeTranslator(tr tree.StringTranslator, config *cli.Config, logger *slog.Logger) *tree.TreeTranslator {
	policy := tree.PolicyDegrade
	if config.Strict {
		policy = tree.PolicyStrict
	}

	return tree.New(tr, tree.Options{
		Concurrency:     config.Concurrency,
		Policy:          policy,
		DefaultLanguage: config.Language,
		Logger:          logger,
	})
}

func newProcessor(flags *cli.Flags, config *cli.Config, trees *tree.TreeTranslator) *Processor {
	return &Processor{
		flags:  flags,
		config: config,
		trees:  trees,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// ProcessFile translates one document. An empty path or "-" reads stdin.
// The result goes to the --output file, or stdout.
func (p *Processor) ProcessFile(ctx context.Context, path string) error {
	doc, err := p.readDocument(path)
	if err != nil {
		return err
	}

	language := p.language("")
	out, report, err := p.translate(ctx, doc, language)
	if err != nil {
		return err
	}

	data, err := encode(out)
	if err != nil {
		return err
	}

	if p.flags.Output != "" {
		if err := writeFile(p.flags.Output, data); err != nil {
			return err
		}
	} else if _, err := p.Stdout.Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	fmt.Fprintln(p.Stderr, summaryLine(report, language))
	return nil
}

// ProcessBatch translates every document listed in the --batch file. A
// failing document is reported and skipped; only a rejected API key or an
// interrupted run stops the batch.
func (p *Processor) ProcessBatch(ctx context.Context) error {
	entries, err := batch.ReadBatchFile(p.flags.BatchFile)
	if err != nil {
		return err
	}

	if p.flags.Archive && p.flags.OutputDir != "" {
		if _, err := os.Stat(p.flags.OutputDir); err == nil {
			archivePath, err := archive.ArchiveDir(p.flags.OutputDir)
			if err != nil {
				return err
			}
			fmt.Fprintf(p.Stdout, "Previous translations archived to: %s\n", archivePath)
		}
	}

	if p.flags.OutputDir != "" {
		// Create output directory (including parent directories)
		if err := os.MkdirAll(p.flags.OutputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	// Track statistics
	skippedCount := 0
	processedCount := 0
	errorCount := 0

	for i, entry := range entries {
		language := p.language(entry.Language)
		outPath := p.batchOutputPath(entry.Path, language)

		fmt.Fprintf(p.Stdout, "Processing %d/%d: %s -> %s\n", i+1, len(entries), entry.Path, filepath.Base(outPath))

		if !p.flags.Force {
			if _, err := os.Stat(outPath); err == nil {
				fmt.Fprintf(p.Stdout, "  ✓ Skipping - %s already exists\n", filepath.Base(outPath))
				skippedCount++
				continue
			}
		}

		report, err := p.processEntry(ctx, entry.Path, outPath, language)
		if err != nil {
			if apperrors.IsFatal(err) || ctx.Err() != nil {
				return err
			}
			fmt.Fprintf(p.Stderr, "Error processing '%s': %s\n", entry.Path, apperrors.UserFriendlyError(err))
			errorCount++
			continue
		}

		fmt.Fprintf(p.Stdout, "  %s\n", summaryLine(report, language))
		processedCount++
	}

	// Print summary
	fmt.Fprintf(p.Stdout, "\n=== Batch Translation Summary ===\n")
	fmt.Fprintf(p.Stdout, "Total documents: %d\n", len(entries))
	fmt.Fprintf(p.Stdout, "Translated: %d\n", processedCount)
	fmt.Fprintf(p.Stdout, "Skipped (already translated): %d\n", skippedCount)
	if errorCount > 0 {
		fmt.Fprintf(p.Stdout, "Errors: %d\n", errorCount)
	}
	fmt.Fprintf(p.Stdout, "=================================\n")

	return nil
}

func (p *Processor) processEntry(ctx context.Context, inPath, outPath, language string) (tree.Report, error) {
	doc, err := p.readDocument(inPath)
	if err != nil {
		return tree.Report{}, err
	}

	out, report, err := p.translate(ctx, doc, language)
	if err != nil {
		return tree.Report{}, err
	}

	data, err := encode(out)
	if err != nil {
		return tree.Report{}, err
	}
	return report, writeFile(outPath, data)
}

// language returns override, else the configured language, else the default
func (p *Processor) language(override string) string {
	switch {
	case override != "":
		return override
	case p.config.Language != "":
		return p.config.Language
	default:
		return translation.DefaultLanguage
	}
}

func (p *Processor) translate(ctx context.Context, doc jsonvalue.Value, language string) (jsonvalue.Value, tree.Report, error) {
	if p.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.config.Timeout)
		defer cancel()
	}
	return p.trees.TranslateWithReport(ctx, doc, language)
}

func (p *Processor) readDocument(path string) (jsonvalue.Value, error) {
	var r io.Reader = p.Stdin
	name := "stdin"

	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return jsonvalue.Value{}, apperrors.NewInputError(fmt.Sprintf("cannot open %s", path), err)
		}
		defer f.Close()
		r, name = f, path
	}

	doc, err := jsonvalue.Read(r)
	if err != nil {
		return jsonvalue.Value{}, apperrors.NewInputError(fmt.Sprintf("%s is not valid JSON", name), err)
	}
	return doc, nil
}

// batchOutputPath names the translation of inPath "<name>.<code>.json"
func (p *Processor) batchOutputPath(inPath, language string) string {
	dir := p.flags.OutputDir
	if dir == "" {
		dir = filepath.Dir(inPath)
	}

	base := strings.TrimSuffix(filepath.Base(inPath), filepath.Ext(inPath))
	code := internal.SanitizeFilename(translation.LanguageCode(language))
	return filepath.Join(dir, fmt.Sprintf("%s.%s.json", base, code))
}

// encode renders v indented, without HTML escaping
func encode(v jsonvalue.Value) ([]byte, error) {
	compact, err := v.MarshalJSON()
	if err != nil {
		return nil, apperrors.NewUnexpectedError("failed to encode document", err)
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, "", "  "); err != nil {
		return nil, apperrors.NewUnexpectedError("failed to encode document", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func summaryLine(report tree.Report, language string) string {
	line := fmt.Sprintf("Translated %d strings into %s (structured %d, raw %d)",
		report.Leaves, language, report.Structured, report.Raw)
	if report.Original > 0 {
		line += fmt.Sprintf(", %d kept their original text", report.Original)
	}
	return line
}
