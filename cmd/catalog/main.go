// cmd/catalog/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/urfave/cli/v3"

	"github.com/javajoker/catalog-manager/cmd/catalog/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().Run(ctx, os.Args); err != nil {
		color.New(color.FgRed, color.Bold).Fprintf(os.Stderr, "✗ %v\n", err)
		os.Exit(1)
	}
}

func envFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "env",
		Usage: "path to the environment file",
		Value: ".env",
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "catalog",
		Usage: "manage the product catalog",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "list all products sorted by name",
				Flags:  []cli.Flag{envFlag()},
				Action: commands.ListAction,
			},
			{
				Name:      "search",
				Usage:     "search products ignoring case and accents",
				ArgsUsage: "<term>",
				Flags: []cli.Flag{
					envFlag(),
					&cli.StringFlag{
						Name:  "by",
						Usage: "field to search: name, category or details",
						Value: "name",
					},
				},
				Action: commands.SearchAction,
			},
			{
				Name:      "show",
				Usage:     "show one product",
				ArgsUsage: "<id>",
				Flags:     []cli.Flag{envFlag()},
				Action:    commands.ShowAction,
			},
			{
				Name:  "save",
				Usage: "add a product or update an existing one by id or name",
				Flags: []cli.Flag{
					envFlag(),
					&cli.StringFlag{Name: "id", Usage: "id of the product to update"},
					&cli.StringFlag{Name: "name", Usage: "product name", Required: true},
					&cli.StringFlag{Name: "category", Usage: "category"},
					&cli.StringFlag{Name: "brand", Usage: "brand"},
					&cli.StringFlag{Name: "details", Usage: "details"},
					&cli.StringFlag{Name: "measure", Usage: "unit of measure"},
					&cli.FloatFlag{Name: "price", Usage: "price", Required: true},
				},
				Action: commands.SaveAction,
			},
			{
				Name:      "delete",
				Usage:     "delete a product",
				ArgsUsage: "<id>",
				Flags:     []cli.Flag{envFlag()},
				Action:    commands.DeleteAction,
			},
			{
				Name:      "import",
				Usage:     "merge a JSON export into the catalog",
				ArgsUsage: "<file|->",
				Flags:     []cli.Flag{envFlag()},
				Action:    commands.ImportAction,
			},
			{
				Name:  "export",
				Usage: "export the catalog as JSON",
				Flags: []cli.Flag{
					envFlag(),
					&cli.StringFlag{
						Name:  "out",
						Usage: "output file",
						Value: "produtos.json",
					},
					&cli.BoolFlag{Name: "stdout", Usage: "write to standard output"},
					&cli.BoolFlag{Name: "archive", Usage: "store in the export archive (S3 or EXPORT_DIR)"},
				},
				Action: commands.ExportAction,
			},
			{
				Name:   "demo",
				Usage:  "replace the catalog with the demo product set",
				Flags:  []cli.Flag{envFlag()},
				Action: commands.DemoAction,
			},
			{
				Name:  "clear",
				Usage: "delete every product",
				Flags: []cli.Flag{
					envFlag(),
					&cli.BoolFlag{Name: "yes", Usage: "confirm"},
				},
				Action: commands.ClearAction,
			},
			{
				Name:      "hash-password",
				Usage:     "print a bcrypt hash for ADMIN_PASSWORD_HASH",
				ArgsUsage: "<password>",
				Action:    commands.HashPasswordAction,
			},
		},
	}
}
