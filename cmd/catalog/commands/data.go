// cmd/catalog/commands/data.go
package commands

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/javajoker/catalog-manager/internal/i18n"
	"github.com/javajoker/catalog-manager/internal/services"
)

// ImportAction merges a JSON export file (or stdin with "-") into the
// catalog.
func ImportAction(ctx context.Context, cmd *cli.Command) error {
	path := cmd.Args().First()
	if path == "" {
		return errors.New("import file is required (use - for stdin)")
	}

	data, err := readInput(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	records, err := services.ParseImport(data)
	if err != nil {
		return err
	}

	a, err := NewApp(ctx, cmd.String("env"))
	if err != nil {
		return err
	}
	defer a.Close()

	result, err := a.Product.ImportMerge(ctx, records)
	if err != nil {
		return err
	}

	successColor.Fprintf(output(cmd), "✓ %s\n", i18n.T(i18n.DefaultLanguage(), i18n.KeyDataImported, result.Added, result.Merged))
	return nil
}

// ExportAction writes the catalog to a file, stdout or the export archive.
func ExportAction(ctx context.Context, cmd *cli.Command) error {
	a, err := NewApp(ctx, cmd.String("env"))
	if err != nil {
		return err
	}
	defer a.Close()

	var buf bytes.Buffer
	if err := a.Product.Export(&buf); err != nil {
		return err
	}

	w := output(cmd)
	switch {
	case cmd.Bool("stdout"):
		_, err := w.Write(buf.Bytes())
		return err
	case cmd.Bool("archive"):
		result, err := a.Storage.SaveExport(ctx, buf.Bytes())
		if err != nil {
			return err
		}
		successColor.Fprintf(w, "✓ %s %s\n", i18n.T(i18n.DefaultLanguage(), i18n.KeyDataArchived), mutedColor.Sprint(result.URL))
		return nil
	}

	out := cmd.String("out")
	if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}
	successColor.Fprintf(w, "✓ %s %s\n", i18n.T(i18n.DefaultLanguage(), i18n.KeyDataExported), mutedColor.Sprint(out))
	return nil
}

// DemoAction replaces the catalog with the demo product set.
func DemoAction(ctx context.Context, cmd *cli.Command) error {
	a, err := NewApp(ctx, cmd.String("env"))
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.Product.LoadDemoData(ctx); err != nil {
		return err
	}

	lang := i18n.DefaultLanguage()
	successColor.Fprintf(output(cmd), "✓ %s %s\n", i18n.T(lang, i18n.KeyDataDemoLoaded),
		mutedColor.Sprint(i18n.T(lang, i18n.KeySearchResultsFound, a.Product.Count())))
	return nil
}

// ClearAction empties the catalog. Requires --yes.
func ClearAction(ctx context.Context, cmd *cli.Command) error {
	if !cmd.Bool("yes") {
		return errors.New("refusing to clear the catalog without --yes")
	}

	a, err := NewApp(ctx, cmd.String("env"))
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.Product.ClearAll(ctx); err != nil {
		return err
	}

	successColor.Fprintf(output(cmd), "✓ %s\n", i18n.T(i18n.DefaultLanguage(), i18n.KeyDataCleared))
	return nil
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}
