package executor

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/rshoplabs/shopbot/internal/catalog"
)

// The model hands back a schema-less field map. Nothing from it reaches
// a SQL statement unfiltered: each entity has an allow-list, unknown
// keys are dropped, and values are coerced to the column's type or the
// command is rejected.

func productParamsFromFields(fields map[string]any) (catalog.ProductParams, error) {
	name, ok := stringField(fields, "name")
	if !ok || name == "" {
		return catalog.ProductParams{}, fmt.Errorf("product name is required")
	}
	price, ok := intField(fields, "price")
	if !ok {
		return catalog.ProductParams{}, fmt.Errorf("product price is required and must be a number")
	}

	params := catalog.ProductParams{
		Name:  name,
		Price: price,
	}
	if sku, ok := stringField(fields, "sku"); ok {
		params.SKU = sku
	}
	if params.SKU == "" {
		params.SKU = deriveSKU(name)
	}
	if stock, ok := intField(fields, "stock"); ok {
		params.Stock = int32(stock)
	}
	if categoryID, ok := intField(fields, "category_id"); ok {
		params.CategoryID = &categoryID
	}
	if brandID, ok := intField(fields, "brand_id"); ok {
		params.BrandID = &brandID
	}
	if description, ok := stringField(fields, "description"); ok {
		params.Description = description
	}
	return params, nil
}

func categoryParamsFromFields(fields map[string]any) (catalog.CategoryParams, error) {
	title, ok := stringField(fields, "title")
	if !ok || title == "" {
		return catalog.CategoryParams{}, fmt.Errorf("category title is required")
	}
	params := catalog.CategoryParams{Title: title}
	if slug, ok := stringField(fields, "slug"); ok {
		params.Slug = slug
	}
	if params.Slug == "" {
		params.Slug = slugify(title)
	}
	if description, ok := stringField(fields, "description"); ok {
		params.Description = description
	}
	if parentID, ok := intField(fields, "parent_id"); ok {
		params.ParentID = &parentID
	}
	return params, nil
}

func brandParamsFromFields(fields map[string]any) (catalog.BrandParams, error) {
	name, ok := stringField(fields, "name")
	if !ok || name == "" {
		return catalog.BrandParams{}, fmt.Errorf("brand name is required")
	}
	params := catalog.BrandParams{Name: name}
	if slug, ok := stringField(fields, "slug"); ok {
		params.Slug = slug
	}
	if params.Slug == "" {
		params.Slug = slugify(name)
	}
	if logo, ok := stringField(fields, "logo"); ok {
		params.Logo = logo
	}
	return params, nil
}

// productUpdatesFromFields maps update fields to typed column values,
// dropping unknown keys.
func productUpdatesFromFields(fields map[string]any) (map[string]any, []string, error) {
	updates := make(map[string]any, len(fields))
	var dropped []string
	for key, value := range fields {
		switch key {
		case "name", "sku", "description":
			s, ok := asString(value)
			if !ok {
				return nil, nil, fmt.Errorf("field %q must be text", key)
			}
			updates[key] = s
		case "price", "stock", "category_id", "brand_id":
			n, ok := asInt64(value)
			if !ok {
				return nil, nil, fmt.Errorf("field %q must be a number", key)
			}
			updates[key] = n
		case "is_active":
			b, ok := asBool(value)
			if !ok {
				return nil, nil, fmt.Errorf("field %q must be true or false", key)
			}
			updates[key] = b
		default:
			dropped = append(dropped, key)
		}
	}
	if len(updates) == 0 {
		return nil, dropped, fmt.Errorf("nothing to update")
	}
	return updates, dropped, nil
}

func stringField(fields map[string]any, key string) (string, bool) {
	value, ok := fields[key]
	if !ok {
		return "", false
	}
	return asString(value)
}

func intField(fields map[string]any, key string) (int64, bool) {
	value, ok := fields[key]
	if !ok {
		return 0, false
	}
	return asInt64(value)
}

func asString(value any) (string, bool) {
	s, ok := value.(string)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(s), true
}

func asInt64(value any) (int64, bool) {
	switch v := value.(type) {
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n, true
		}
		if f, err := v.Float64(); err == nil {
			return int64(f), true
		}
		return 0, false
	case float64:
		return int64(v), true
	case int:
		return int64(v), true
	case int64:
		return v, true
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

func asBool(value any) (bool, bool) {
	switch v := value.(type) {
	case bool:
		return v, true
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return false, false
		}
		return b, true
	default:
		return false, false
	}
}

// deriveSKU builds a fallback product code from the name, used when the
// model forgets to generate one.
func deriveSKU(name string) string {
	return "SKU-" + strings.ToUpper(slugify(name))
}

func slugify(s string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}
