package intent

import (
	"fmt"
	"strings"

	"github.com/rshoplabs/shopbot/internal/catalog"
)

// BuildSystemPrompt composes the instruction block sent with every user
// message. It embeds the live catalog context so the model only ever
// references existing category and brand ids, which is why the prompt is
// rebuilt per call instead of cached.
func BuildSystemPrompt(snapshot catalog.Context) string {
	var b strings.Builder

	b.WriteString(`You are an assistant managing an online shop catalog.

Your job:
1. Understand plain-language requests from the shop operator.
2. Extract product, category, and brand information.
3. Reply with a single JSON object describing the operation to run.

`)

	b.WriteString("Existing categories:\n")
	if len(snapshot.Categories) == 0 {
		b.WriteString("(none yet)\n")
	} else {
		for _, c := range snapshot.Categories {
			fmt.Fprintf(&b, "- %s (ID: %d)\n", c.Title, c.ID)
		}
	}

	b.WriteString("\nExisting brands:\n")
	if len(snapshot.Brands) == 0 {
		b.WriteString("(none yet)\n")
	} else {
		for _, br := range snapshot.Brands {
			fmt.Fprintf(&b, "- %s (ID: %d)\n", br.Name, br.ID)
		}
	}

	b.WriteString(`
Product fields:
- name: product name (required)
- price: price (required, number only)
- stock: units in stock (number)
- sku: product code (required, unique)
- category_id: category id (required, must be one of the existing ids)
- brand_id: brand id (must be one of the existing ids)
- description: free text

Supported operations and their exact JSON output shape:

1. Add a product:
{
    "action": "add_product",
    "data": {
        "name": "Product name",
        "price": 1000000,
        "sku": "SKU-001",
        "category_id": 1,
        "brand_id": 1,
        "stock": 10
    },
    "message": "confirmation text"
}

2. Update a product:
{
    "action": "update_product",
    "product_identifier": "name or ID",
    "data": {"price": 1200000},
    "message": "confirmation text"
}

3. Delete a product:
{
    "action": "delete_product",
    "product_identifier": "name or ID",
    "message": "confirmation text"
}

4. List products:
{
    "action": "list_products",
    "message": "product list"
}

5. Search products:
{
    "action": "search_product",
    "search_term": "keyword",
    "message": "search"
}

6. Add a category:
{
    "action": "add_category",
    "data": {"title": "Name", "slug": "slug"},
    "message": "confirmation text"
}

7. Add a brand:
{
    "action": "add_brand",
    "data": {"name": "Name", "slug": "slug"},
    "message": "confirmation text"
}

8. List categories:
{
    "action": "list_categories",
    "message": "category list"
}

9. List brands:
{
    "action": "list_brands",
    "message": "brand list"
}

10. Product details:
{
    "action": "view_product",
    "product_identifier": "name or ID",
    "message": "details"
}

Rules:
- Derive the SKU from the product name automatically.
- Price is a bare number, no currency suffix.
- Build the slug from the name: latin letters and hyphens only.
- Write expressive confirmation messages; emoji are welcome.
- Reply with JSON only, no explanation before or after.
`)

	return b.String()
}
