package intent

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rshoplabs/shopbot/internal/catalog"
)

func mustNumber(s string) json.Number { return json.Number(s) }

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     string
		want    Command
		wantErr bool
	}{
		{
			name: "add product",
			raw:  `{"action":"add_product","data":{"name":"Laptop","price":1200},"message":"✅ product added"}`,
			want: Command{
				Action:         ActionAddProduct,
				Fields:         map[string]any{"name": "Laptop", "price": mustNumber("1200")},
				DisplayMessage: "✅ product added",
			},
		},
		{
			name: "identifier as number",
			raw:  `{"action":"delete_product","product_identifier":42,"message":"deleting"}`,
			want: Command{Action: ActionDeleteProduct, TargetIdentifier: "42", DisplayMessage: "deleting"},
		},
		{
			name: "identifier as string",
			raw:  `{"action":"view_product","product_identifier":"gaming laptop","message":"here"}`,
			want: Command{Action: ActionViewProduct, TargetIdentifier: "gaming laptop", DisplayMessage: "here"},
		},
		{
			name: "fenced payload",
			raw:  "```json\n{\"action\":\"list_products\",\"message\":\"📋\"}\n```",
			want: Command{Action: ActionListProducts, DisplayMessage: "📋"},
		},
		{
			name: "missing message gets the generic one",
			raw:  `{"action":"list_brands"}`,
			want: Command{Action: ActionListBrands, DisplayMessage: CouldNotUnderstand},
		},
		{
			name:    "missing action",
			raw:     `{"message":"hello"}`,
			wantErr: true,
		},
		{
			name:    "not json at all",
			raw:     "I cannot help with that.",
			wantErr: true,
		},
		{
			name:    "identifier as object",
			raw:     `{"action":"view_product","product_identifier":{"id":1}}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Parse(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Action != tt.want.Action {
				t.Fatalf("action = %q, want %q", got.Action, tt.want.Action)
			}
			if got.TargetIdentifier != tt.want.TargetIdentifier {
				t.Fatalf("target = %q, want %q", got.TargetIdentifier, tt.want.TargetIdentifier)
			}
			if got.DisplayMessage != tt.want.DisplayMessage {
				t.Fatalf("message = %q, want %q", got.DisplayMessage, tt.want.DisplayMessage)
			}
			if len(tt.want.Fields) > 0 {
				for key, want := range tt.want.Fields {
					if got.Fields[key] != want {
						t.Fatalf("field %q = %v, want %v", key, got.Fields[key], want)
					}
				}
			}
		})
	}
}

func TestCommandTargetID(t *testing.T) {
	t.Parallel()

	if id, ok := (Command{TargetIdentifier: " 17 "}).TargetID(); !ok || id != 17 {
		t.Fatalf("numeric identifier: got (%d, %v)", id, ok)
	}
	if _, ok := (Command{TargetIdentifier: "laptop"}).TargetID(); ok {
		t.Fatal("name identifier must not parse as numeric")
	}
	if _, ok := (Command{}).TargetID(); ok {
		t.Fatal("empty identifier must not parse as numeric")
	}
}

type fakeClient struct {
	response string
	err      error
}

func (f *fakeClient) Complete(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	return f.response, f.err
}

type fakeContextProvider struct {
	snapshot catalog.Context
	err      error
}

func (f *fakeContextProvider) QueryContext(ctx context.Context) (catalog.Context, error) {
	return f.snapshot, f.err
}

func TestInterpreterResolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		client     *fakeClient
		provider   *fakeContextProvider
		wantAction Action
		wantMsg    string
	}{
		{
			name:       "valid response",
			client:     &fakeClient{response: `{"action":"list_products","message":"📋 listing"}`},
			provider:   &fakeContextProvider{},
			wantAction: ActionListProducts,
			wantMsg:    "📋 listing",
		},
		{
			name:       "transport failure carries detail",
			client:     &fakeClient{err: errors.New("connection refused")},
			provider:   &fakeContextProvider{},
			wantAction: ActionError,
			wantMsg:    "something went wrong: connection refused",
		},
		{
			name:       "unparseable response stays generic",
			client:     &fakeClient{response: "I refuse."},
			provider:   &fakeContextProvider{},
			wantAction: ActionError,
			wantMsg:    CouldNotUnderstand,
		},
		{
			name:       "catalog context failure",
			client:     &fakeClient{response: `{"action":"list_products"}`},
			provider:   &fakeContextProvider{err: errors.New("db down")},
			wantAction: ActionError,
			wantMsg:    "something went wrong: db down",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			i := NewInterpreter(nil, tt.client, tt.provider, time.Second)
			cmd := i.Resolve(context.Background(), "do something")
			if cmd.Action != tt.wantAction {
				t.Fatalf("action = %q, want %q", cmd.Action, tt.wantAction)
			}
			if cmd.DisplayMessage != tt.wantMsg {
				t.Fatalf("message = %q, want %q", cmd.DisplayMessage, tt.wantMsg)
			}
		})
	}
}

func TestBuildSystemPromptListsCatalog(t *testing.T) {
	t.Parallel()

	snapshot := catalog.Context{
		Categories: []catalog.CategoryRef{{ID: 3, Title: "Electronics"}},
		Brands:     []catalog.BrandRef{{ID: 7, Name: "Acme"}},
	}
	prompt := BuildSystemPrompt(snapshot)
	for _, want := range []string{"Electronics", "Acme", "add_product", "search_product", "ID: 3", "ID: 7"} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q", want)
		}
	}

	empty := BuildSystemPrompt(catalog.Context{})
	if !strings.Contains(empty, "(none yet)") {
		t.Fatal("empty catalog must be labelled as such")
	}
}
