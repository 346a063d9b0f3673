// cmd/catalog/commands/auth.go
package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/javajoker/catalog-manager/internal/utils"
)

// HashPasswordAction prints a bcrypt hash for ADMIN_PASSWORD_HASH.
func HashPasswordAction(ctx context.Context, cmd *cli.Command) error {
	password := cmd.Args().First()
	if password == "" {
		return errors.New("password is required")
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	fmt.Fprintln(output(cmd), hash)
	return nil
}
