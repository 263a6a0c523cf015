package executor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/rshoplabs/shopbot/internal/catalog"
	"github.com/rshoplabs/shopbot/internal/intent"
)

// Executor runs a resolved Command against the catalog store. Execute
// always returns a result, never an error: validation and store failures
// become user-facing messages.
type Executor struct {
	store  Catalog
	logger *slog.Logger
}

// NewExecutor creates an Executor over the given catalog.
func NewExecutor(log *slog.Logger, store Catalog) *Executor {
	if log == nil {
		log = slog.Default()
	}
	return &Executor{
		store:  store,
		logger: log.With(slog.String("service", "executor")),
	}
}

// Execute dispatches on the command's action. Unknown and error actions
// echo the command's display message as a failure without touching the
// store.
func (e *Executor) Execute(ctx context.Context, cmd intent.Command) ActionResult {
	opID := uuid.NewString()

	var result ActionResult
	switch cmd.Action {
	case intent.ActionAddProduct:
		result = e.addProduct(ctx, cmd)
	case intent.ActionUpdateProduct:
		result = e.updateProduct(ctx, cmd)
	case intent.ActionDeleteProduct:
		result = e.deleteProduct(ctx, cmd)
	case intent.ActionListProducts:
		result = e.listProducts(ctx)
	case intent.ActionSearchProduct:
		result = e.searchProduct(ctx, cmd)
	case intent.ActionViewProduct:
		result = e.viewProduct(ctx, cmd)
	case intent.ActionAddCategory:
		result = e.addCategory(ctx, cmd)
	case intent.ActionListCategories:
		result = e.listCategories(ctx)
	case intent.ActionAddBrand:
		result = e.addBrand(ctx, cmd)
	case intent.ActionListBrands:
		result = e.listBrands(ctx)
	default:
		message := cmd.DisplayMessage
		if message == "" {
			message = "unknown operation"
		}
		result = ActionResult{Success: false, Message: message}
	}

	result.OperationID = opID
	if result.Success {
		e.logger.Info("action executed", slog.String("action", string(cmd.Action)), slog.String("operation_id", opID))
	} else {
		e.logger.Warn("action failed", slog.String("action", string(cmd.Action)), slog.String("message", result.Message))
	}
	return result
}

func (e *Executor) addProduct(ctx context.Context, cmd intent.Command) ActionResult {
	params, err := productParamsFromFields(cmd.Fields)
	if err != nil {
		return fail(err.Error())
	}
	if params.CategoryID != nil {
		if _, err := e.store.GetCategoryByID(ctx, *params.CategoryID); err != nil {
			if errors.Is(err, catalog.ErrNotFound) {
				return fail("❌ category not found")
			}
			return fail(err.Error())
		}
	}
	id, err := e.store.InsertProduct(ctx, params)
	if err != nil {
		return fail(err.Error())
	}
	return ActionResult{
		Success:   true,
		Message:   fmt.Sprintf("✅ %s\n🆔 ID: %d", displayOr(cmd, "product added"), id),
		CreatedID: id,
	}
}

func (e *Executor) updateProduct(ctx context.Context, cmd intent.Command) ActionResult {
	product, result := e.resolveProduct(ctx, cmd)
	if !result.Success {
		return result
	}
	updates, dropped, err := productUpdatesFromFields(cmd.Fields)
	if err != nil {
		return fail(err.Error())
	}
	if len(dropped) > 0 {
		e.logger.Debug("dropped unknown update fields", slog.Any("fields", dropped))
	}
	if err := e.store.UpdateProduct(ctx, product.ID, updates); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return fail("❌ product not found")
		}
		return fail(err.Error())
	}
	return ok(fmt.Sprintf("✅ %s", displayOr(cmd, "product updated")))
}

func (e *Executor) deleteProduct(ctx context.Context, cmd intent.Command) ActionResult {
	product, result := e.resolveProduct(ctx, cmd)
	if !result.Success {
		return result
	}
	if err := e.store.DeleteProduct(ctx, product.ID); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return fail("❌ product not found")
		}
		return fail(err.Error())
	}
	return ok(fmt.Sprintf("✅ product %q deleted", product.Name))
}

func (e *Executor) listProducts(ctx context.Context) ActionResult {
	products, err := e.store.ListProducts(ctx, catalog.DefaultListLimit)
	if err != nil {
		return fail(err.Error())
	}
	if len(products) == 0 {
		return ok("📋 no products yet")
	}
	var b strings.Builder
	b.WriteString("📋 Products:\n\n")
	for i, p := range products {
		fmt.Fprintf(&b, "%d. %s %s\n   💰 %d | 📦 %d\n\n", i+1, activeMark(p.IsActive), p.Name, p.Price, p.Stock)
	}
	return ok(b.String())
}

func (e *Executor) searchProduct(ctx context.Context, cmd intent.Command) ActionResult {
	term := strings.TrimSpace(cmd.SearchTerm)
	products, err := e.store.SearchProducts(ctx, term, catalog.DefaultSearchLimit)
	if err != nil {
		return fail(err.Error())
	}
	if len(products) == 0 {
		return ok(fmt.Sprintf("🔍 no results for %q", term))
	}
	var b strings.Builder
	fmt.Fprintf(&b, "🔍 Results for %q:\n\n", term)
	for i, p := range products {
		fmt.Fprintf(&b, "%d. %s\n   💰 %d\n\n", i+1, p.Name, p.Price)
	}
	return ok(b.String())
}

func (e *Executor) viewProduct(ctx context.Context, cmd intent.Command) ActionResult {
	product, result := e.resolveProduct(ctx, cmd)
	if !result.Success {
		return result
	}
	var b strings.Builder
	fmt.Fprintf(&b, "📦 %s\n", product.Name)
	fmt.Fprintf(&b, "💰 %d\n", product.Price)
	fmt.Fprintf(&b, "📦 stock: %d\n", product.Stock)
	fmt.Fprintf(&b, "🆔 %s\n", product.SKU)
	if product.CategoryName != "" {
		fmt.Fprintf(&b, "📂 %s\n", product.CategoryName)
	}
	if product.BrandName != "" {
		fmt.Fprintf(&b, "🔖 %s\n", product.BrandName)
	}
	if product.Description != "" {
		fmt.Fprintf(&b, "📝 %s\n", product.Description)
	}
	return ok(b.String())
}

func (e *Executor) addCategory(ctx context.Context, cmd intent.Command) ActionResult {
	params, err := categoryParamsFromFields(cmd.Fields)
	if err != nil {
		return fail(err.Error())
	}
	id, err := e.store.InsertCategory(ctx, params)
	if err != nil {
		return fail(err.Error())
	}
	return ActionResult{
		Success:   true,
		Message:   fmt.Sprintf("✅ %s\n🆔 ID: %d", displayOr(cmd, "category added"), id),
		CreatedID: id,
	}
}

func (e *Executor) listCategories(ctx context.Context) ActionResult {
	categories, err := e.store.ListCategories(ctx)
	if err != nil {
		return fail(err.Error())
	}
	if len(categories) == 0 {
		return ok("📋 no categories yet")
	}
	var b strings.Builder
	b.WriteString("📂 Categories:\n\n")
	for i, c := range categories {
		fmt.Fprintf(&b, "%d. %s %s\n", i+1, activeMark(c.IsActive), c.Title)
	}
	return ok(b.String())
}

func (e *Executor) addBrand(ctx context.Context, cmd intent.Command) ActionResult {
	params, err := brandParamsFromFields(cmd.Fields)
	if err != nil {
		return fail(err.Error())
	}
	id, err := e.store.InsertBrand(ctx, params)
	if err != nil {
		return fail(err.Error())
	}
	return ActionResult{
		Success:   true,
		Message:   fmt.Sprintf("✅ %s\n🆔 ID: %d", displayOr(cmd, "brand added"), id),
		CreatedID: id,
	}
}

func (e *Executor) listBrands(ctx context.Context) ActionResult {
	brands, err := e.store.ListBrands(ctx)
	if err != nil {
		return fail(err.Error())
	}
	if len(brands) == 0 {
		return ok("📋 no brands yet")
	}
	var b strings.Builder
	b.WriteString("🔖 Brands:\n\n")
	for i, br := range brands {
		fmt.Fprintf(&b, "%d. %s %s\n", i+1, activeMark(br.IsActive), br.Name)
	}
	return ok(b.String())
}

// resolveProduct turns the target identifier into a product: numeric
// identifiers look up by id, anything else is a partial name match with
// the most recently created product winning ties.
func (e *Executor) resolveProduct(ctx context.Context, cmd intent.Command) (catalog.Product, ActionResult) {
	identifier := strings.TrimSpace(cmd.TargetIdentifier)
	if identifier == "" {
		return catalog.Product{}, fail("❌ which product? give me a name or an id")
	}

	var (
		product catalog.Product
		err     error
	)
	if id, numeric := cmd.TargetID(); numeric {
		product, err = e.store.GetProductByID(ctx, id)
	} else {
		product, err = e.store.GetProductByName(ctx, identifier)
	}
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return catalog.Product{}, fail("❌ product not found")
		}
		return catalog.Product{}, fail(err.Error())
	}
	return product, ActionResult{Success: true}
}

func displayOr(cmd intent.Command, fallback string) string {
	if strings.TrimSpace(cmd.DisplayMessage) != "" {
		return cmd.DisplayMessage
	}
	return fallback
}

func activeMark(active bool) string {
	if active {
		return "✅"
	}
	return "❌"
}

func ok(message string) ActionResult {
	return ActionResult{Success: true, Message: message}
}

func fail(message string) ActionResult {
	return ActionResult{Success: false, Message: message}
}
