package binding

import (
	"strings"
	"testing"

	"github.com/example/hexmaker/internal/core/property"
)

func TestExtractEntityName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"CreateUser", "User"},
		{"ListInvoiceItems", "InvoiceItems"},
		{"Invoice", "Invoice"},
		{"SearchProducts", "Products"},
		{"GetBalance", "Balance"},
		{"FindOrder", "Order"},
		{"Create", "Create"},
		{"ShowOrder", "Order"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ExtractEntityName(tt.input); got != tt.want {
				t.Errorf("ExtractEntityName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDeriveRoute(t *testing.T) {
	if got := DeriveRoute("CreatePost", ""); got != "/create-post" {
		t.Errorf("DeriveRoute() = %q, want %q", got, "/create-post")
	}
	if got := DeriveRoute("CreatePost", "/posts/new"); got != "/posts/new" {
		t.Errorf("DeriveRoute() = %q, want explicit route", got)
	}
}

func TestDetectPattern(t *testing.T) {
	verbs := DefaultVerbs()
	tests := []struct {
		name string
		want Pattern
	}{
		{"CreateUser", PatternCreate},
		{"AddItem", PatternCreate},
		{"RegisterCustomer", PatternCreate},
		{"UpdateProfile", PatternUpdate},
		{"ChangePassword", PatternUpdate},
		{"DeleteOrder", PatternDelete},
		{"RemoveItem", PatternDelete},
		{"create", PatternCreate},
		{"Create_order", PatternCreate},
		{"Createorder", PatternCreate},
		{"create-order", PatternCreate},
		{"editProfile", PatternUpdate},
		{"ArchiveOrder", PatternNone},
		{"AddressBook", PatternNone},
		{"NewsletterSignup", PatternNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectPattern(tt.name, verbs); got != tt.want {
				t.Errorf("DetectPattern(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestDetectPatternCustomVerbs(t *testing.T) {
	verbs := Verbs{Create: []string{"open"}, Delete: []string{"close"}}
	if got := DetectPattern("OpenAccount", verbs); got != PatternCreate {
		t.Errorf("DetectPattern() = %q, want create", got)
	}
	if got := DetectPattern("CreateAccount", verbs); got != PatternNone {
		t.Errorf("DetectPattern() = %q, want none", got)
	}
}

func TestDeriveNamesPairsRepositoryWithEntity(t *testing.T) {
	req, err := NewRequest(KindCommand, "blog/post", "CreatePost", "App", nil, Options{})
	if err != nil {
		t.Fatalf("NewRequest() error = %v", err)
	}

	n := DeriveNames(req, DefaultVerbs())
	if n.Entity != "Post" {
		t.Errorf("Entity = %q, want Post", n.Entity)
	}
	if n.RepositoryInterface != "PostRepositoryInterface" {
		t.Errorf("RepositoryInterface = %q", n.RepositoryInterface)
	}
	if n.RepositoryAdapter != "DoctrinePostRepository" {
		t.Errorf("RepositoryAdapter = %q", n.RepositoryAdapter)
	}
	if n.Pattern != PatternCreate {
		t.Errorf("Pattern = %q", n.Pattern)
	}
}

func TestDeriveNamesEntityOverride(t *testing.T) {
	req, err := NewRequest(KindQuery, "blog/post", "ListRecent", "App", nil, Options{Entity: "post"})
	if err != nil {
		t.Fatalf("NewRequest() error = %v", err)
	}
	if n := DeriveNames(req, DefaultVerbs()); n.Entity != "Post" {
		t.Errorf("Entity = %q, want Post", n.Entity)
	}
}

func TestNewRequestNormalizes(t *testing.T) {
	req, err := NewRequest(KindEntity, "sales/order-line", "order-line", "App", nil, Options{})
	if err != nil {
		t.Fatalf("NewRequest() error = %v", err)
	}
	if req.Name != "OrderLine" {
		t.Errorf("Name = %q, want OrderLine", req.Name)
	}
	if req.Path.ToPath() != "Sales/OrderLine" {
		t.Errorf("Path = %q", req.Path.ToPath())
	}
	if req.Options.Layer != LayerApplication || req.Options.TestType != TestUnit {
		t.Errorf("defaults not applied: %+v", req.Options)
	}
}

func TestNewRequestReportsAllProblems(t *testing.T) {
	props := []property.Spec{{Name: "a", Kind: property.KindInt}, {Name: "a", Kind: property.KindInt}}
	_, err := NewRequest(KindEntity, "", "2Order", "App", props, Options{Route: "orders", Force: true, SkipExisting: true})
	if err == nil {
		t.Fatal("expected error")
	}

	msg := err.Error()
	for _, want := range []string{"path is required", "not a valid class name", "must start with /", "mutually exclusive", "duplicate property"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error %q does not mention %q", msg, want)
		}
	}
}

func TestNewRequestRejectsPropertiesForKind(t *testing.T) {
	props := []property.Spec{{Name: "a", Kind: property.KindInt}}
	if _, err := NewRequest(KindException, "sales", "Broken", "App", props, Options{}); err == nil {
		t.Error("expected error for properties on exception")
	}
}

func TestParseKind(t *testing.T) {
	for _, in := range []string{"entity", "Value-Object", "cli_command", "crud"} {
		if _, err := ParseKind(in); err != nil {
			t.Errorf("ParseKind(%q) error = %v", in, err)
		}
	}
	if _, err := ParseKind("widget"); err == nil {
		t.Error("expected error for unknown kind")
	}
}
