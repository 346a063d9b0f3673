// cmd/catalog/commands/common.go
package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/javajoker/catalog-manager/internal/app"
	"github.com/javajoker/catalog-manager/internal/config"
)

// NewApp loads envFile and opens the catalog.
func NewApp(ctx context.Context, envFile string) (*app.App, error) {
	cfg, err := config.LoadFile(envFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	a, err := app.New(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func output(cmd *cli.Command) io.Writer {
	if root := cmd.Root(); root != nil && root.Writer != nil {
		return root.Writer
	}
	return os.Stdout
}
