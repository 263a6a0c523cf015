package intent

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Action is the closed set of operations the interpreter may emit.
type Action string

const (
	ActionAddProduct     Action = "add_product"
	ActionUpdateProduct  Action = "update_product"
	ActionDeleteProduct  Action = "delete_product"
	ActionListProducts   Action = "list_products"
	ActionSearchProduct  Action = "search_product"
	ActionViewProduct    Action = "view_product"
	ActionAddCategory    Action = "add_category"
	ActionListCategories Action = "list_categories"
	ActionAddBrand       Action = "add_brand"
	ActionListBrands     Action = "list_brands"
	ActionError          Action = "error"
)

var knownActions = map[Action]struct{}{
	ActionAddProduct:     {},
	ActionUpdateProduct:  {},
	ActionDeleteProduct:  {},
	ActionListProducts:   {},
	ActionSearchProduct:  {},
	ActionViewProduct:    {},
	ActionAddCategory:    {},
	ActionListCategories: {},
	ActionAddBrand:       {},
	ActionListBrands:     {},
	ActionError:          {},
}

// Known reports whether a is part of the closed action set.
func (a Action) Known() bool {
	_, ok := knownActions[a]
	return ok
}

// Command is the structured intent resolved from a user message. Action
// is never empty: unparseable or refused model output yields an error
// command with a user-facing message.
type Command struct {
	Action           Action         `json:"action"`
	TargetIdentifier string         `json:"target_identifier,omitempty"`
	Fields           map[string]any `json:"fields,omitempty"`
	SearchTerm       string         `json:"search_term,omitempty"`
	DisplayMessage   string         `json:"display_message"`
}

// TargetID returns the numeric form of the target identifier, if it is
// numeric. Non-numeric identifiers resolve by name instead.
func (c Command) TargetID() (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.TargetIdentifier), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// ErrorCommand builds the uniform error command the interpreter returns
// for any failure.
func ErrorCommand(message string) Command {
	return Command{Action: ActionError, DisplayMessage: message}
}

// wireCommand is the JSON protocol between the interpreter and the
// completion service. product_identifier may arrive as string or number.
type wireCommand struct {
	Action            string          `json:"action"`
	Data              map[string]any  `json:"data,omitempty"`
	ProductIdentifier json.RawMessage `json:"product_identifier,omitempty"`
	SearchTerm        string          `json:"search_term,omitempty"`
	Message           string          `json:"message,omitempty"`
}

func (w wireCommand) toCommand() (Command, error) {
	action := Action(strings.TrimSpace(w.Action))
	if action == "" {
		return Command{}, fmt.Errorf("action is missing")
	}

	cmd := Command{
		Action:         action,
		Fields:         w.Data,
		SearchTerm:     strings.TrimSpace(w.SearchTerm),
		DisplayMessage: strings.TrimSpace(w.Message),
	}

	if len(w.ProductIdentifier) > 0 {
		var asString string
		if err := json.Unmarshal(w.ProductIdentifier, &asString); err == nil {
			cmd.TargetIdentifier = strings.TrimSpace(asString)
		} else {
			var asNumber json.Number
			if err := json.Unmarshal(w.ProductIdentifier, &asNumber); err != nil {
				return Command{}, fmt.Errorf("product_identifier is neither string nor number")
			}
			cmd.TargetIdentifier = asNumber.String()
		}
	}
	return cmd, nil
}
