// cmd/catalog/commands/product.go
package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/javajoker/catalog-manager/internal/i18n"
	"github.com/javajoker/catalog-manager/internal/models"
	"github.com/javajoker/catalog-manager/internal/services"
	"github.com/javajoker/catalog-manager/internal/utils"
)

// ListAction prints every product sorted by name.
func ListAction(ctx context.Context, cmd *cli.Command) error {
	a, err := NewApp(ctx, cmd.String("env"))
	if err != nil {
		return err
	}
	defer a.Close()

	products := a.Product.Products()
	services.SortByName(products)
	renderProductsTable(output(cmd), products, a.Product.Now())
	return nil
}

// SearchAction prints the products matching the first argument.
func SearchAction(ctx context.Context, cmd *cli.Command) error {
	field := models.SearchField(cmd.String("by"))
	if !field.Valid() {
		return fmt.Errorf("invalid search field %q (use name, category or details)", field)
	}

	a, err := NewApp(ctx, cmd.String("env"))
	if err != nil {
		return err
	}
	defer a.Close()

	products := a.Product.Search(cmd.Args().First(), field)
	services.SortByName(products)
	renderProductsTable(output(cmd), products, a.Product.Now())
	return nil
}

// ShowAction prints one product by id.
func ShowAction(ctx context.Context, cmd *cli.Command) error {
	id := cmd.Args().First()
	if id == "" {
		return errors.New("product id is required")
	}

	a, err := NewApp(ctx, cmd.String("env"))
	if err != nil {
		return err
	}
	defer a.Close()

	product, ok := a.Product.GetByID(id)
	if !ok {
		return fmt.Errorf("product %s not found", id)
	}

	renderProductDetail(output(cmd), product, a.Product.Now())
	return nil
}

// SaveAction creates or updates a product from flags.
func SaveAction(ctx context.Context, cmd *cli.Command) error {
	req := saveRequestFromFlags(cmd)

	a, err := NewApp(ctx, cmd.String("env"))
	if err != nil {
		return err
	}
	defer a.Close()

	product, err := a.Product.Save(ctx, req)
	if err != nil {
		var validationErr *services.ValidationError
		if errors.As(err, &validationErr) {
			for _, e := range utils.GetValidationErrors(validationErr.Err) {
				errorColor.Fprintf(output(cmd), "✗ %s: %s\n", e.Field, fieldMessage(e))
			}
		}
		return err
	}

	w := output(cmd)
	if product.UpdatedAt == nil {
		successColor.Fprintf(w, "✓ %s\n", i18n.T(i18n.DefaultLanguage(), i18n.KeyProductCreated))
	} else {
		successColor.Fprintf(w, "✓ %s\n", i18n.T(i18n.DefaultLanguage(), i18n.KeyProductUpdated))
	}
	renderProductDetail(w, product, a.Product.Now())
	return nil
}

// DeleteAction removes a product by id. A missing id is not an error.
func DeleteAction(ctx context.Context, cmd *cli.Command) error {
	id := cmd.Args().First()
	if id == "" {
		return errors.New("product id is required")
	}

	a, err := NewApp(ctx, cmd.String("env"))
	if err != nil {
		return err
	}
	defer a.Close()

	removed, err := a.Product.Delete(ctx, id)
	if err != nil {
		return err
	}

	lang := i18n.DefaultLanguage()
	if removed {
		successColor.Fprintf(output(cmd), "✓ %s %s\n", i18n.T(lang, i18n.KeyProductDeleted), mutedColor.Sprint(id))
	} else {
		warnColor.Fprintf(output(cmd), "! %s %s\n", i18n.T(lang, i18n.KeyProductNotFound), mutedColor.Sprint(id))
	}
	return nil
}

// fieldMessage localises the messages the product form shows for name and
// price.
func fieldMessage(e utils.ValidationError) string {
	switch e.Field {
	case "name":
		return i18n.T(i18n.DefaultLanguage(), i18n.KeyValidationNameReq)
	case "price":
		return i18n.T(i18n.DefaultLanguage(), i18n.KeyValidationPriceNum)
	}
	return e.Message
}

// saveRequestFromFlags maps flags to a request. Like the product form, an
// update clears every optional field whose flag is not given.
func saveRequestFromFlags(cmd *cli.Command) *services.SaveProductRequest {
	req := &services.SaveProductRequest{
		ID:   cmd.String("id"),
		Name: cmd.String("name"),
	}

	optional := map[string]**string{
		"category": &req.Category,
		"brand":    &req.Brand,
		"details":  &req.Details,
		"measure":  &req.Measure,
	}
	for name, target := range optional {
		if cmd.IsSet(name) {
			*target = models.StringPtr(cmd.String(name))
		}
	}

	if cmd.IsSet("price") {
		req.Price = models.Float64Ptr(cmd.Float("price"))
	}
	return req
}
