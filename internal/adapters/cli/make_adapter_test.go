package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/example/hexmaker/internal/ports/primary"
	"github.com/example/hexmaker/internal/ports/secondary"
)

func TestMakeAdapter_Make(t *testing.T) {
	mock := &mockMakerService{
		generateFn: func(ctx context.Context, req primary.GenerateRequest) (*primary.GenerateResponse, error) {
			return &primary.GenerateResponse{
				RunID: "run-42",
				Artifacts: []primary.ArtifactResult{
					{Path: "src/Sales/Order/Domain/Model/Order.php", Status: primary.ArtifactCreated},
					{Path: "src/Sales/Order/Domain/Model/OrderId.php", Status: primary.ArtifactSkipped},
					{Path: "src/Sales/Order/Infrastructure/Persistence/Doctrine/Mapping/Order.orm.xml", Status: primary.ArtifactOverwritten},
				},
				Config: []primary.ConfigResult{
					{File: "config/packages/doctrine.yaml", SectionKey: "SalesOrder", Applied: true},
					{File: "config/services.yaml", SectionKey: "OrderRepositoryInterface"},
				},
			}, nil
		},
	}
	var out bytes.Buffer
	adapter := NewMakeAdapter(mock, &out)

	req := primary.GenerateRequest{Kind: "entity", Path: "sales/order", Name: "Order"}
	if err := adapter.Make(context.Background(), req); err != nil {
		t.Fatalf("Make() error = %v", err)
	}

	if mock.lastReq.Name != "Order" {
		t.Errorf("request name = %q, want Order", mock.lastReq.Name)
	}

	got := out.String()
	for _, want := range []string{
		"CREATE     src/Sales/Order/Domain/Model/Order.php",
		"SKIP       src/Sales/Order/Domain/Model/OrderId.php",
		"OVERWRITE  src/Sales/Order/Infrastructure",
		"PATCH      config/packages/doctrine.yaml (SalesOrder)",
		"UNCHANGED  config/services.yaml (OrderRepositoryInterface)",
		"✓ Generated entity Order: 1 created, 1 overwritten, 1 skipped, 1 of 2 config sections patched",
		"Run: run-42",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q\n%s", want, got)
		}
	}
}

func TestMakeAdapter_DryRun(t *testing.T) {
	mock := &mockMakerService{
		generateFn: func(ctx context.Context, req primary.GenerateRequest) (*primary.GenerateResponse, error) {
			return &primary.GenerateResponse{
				DryRun: true,
				Artifacts: []primary.ArtifactResult{
					{Path: "src/New.php", Status: primary.ArtifactPreviewed},
					{Path: "src/Same.php", Status: primary.ArtifactPreviewed, Exists: true},
					{Path: "src/Changed.php", Status: primary.ArtifactPreviewed, Exists: true, Diff: "-old\n+new\n"},
				},
				Config: []primary.ConfigResult{
					{File: "config/routes.yaml", SectionKey: "sales_order_controllers", Applied: true},
				},
			}, nil
		},
	}
	var out bytes.Buffer

	err := NewMakeAdapter(mock, &out).Make(context.Background(), primary.GenerateRequest{Kind: "controller", Name: "ShowOrder"})
	if err != nil {
		t.Fatalf("Make() error = %v", err)
	}

	got := out.String()
	for _, want := range []string{
		"Dry run: nothing will be written",
		"CREATE     src/New.php",
		"UNCHANGED  src/Same.php",
		"OVERWRITE  src/Changed.php",
		"      -old\n      +new\n",
		"PATCH      config/routes.yaml",
		"✓ Previewed controller ShowOrder: 3 previewed",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q\n%s", want, got)
		}
	}
	if strings.Contains(got, "Run:") {
		t.Errorf("dry run printed a run id\n%s", got)
	}
}

func TestMakeAdapter_PartialFailure(t *testing.T) {
	cause := &secondary.DestinationExistsError{Path: "src/B.php"}
	mock := &mockMakerService{
		generateFn: func(ctx context.Context, req primary.GenerateRequest) (*primary.GenerateResponse, error) {
			resp := &primary.GenerateResponse{
				RunID:     "run-7",
				Artifacts: []primary.ArtifactResult{{Path: "src/A.php", Status: primary.ArtifactCreated}},
			}
			return resp, &primary.PartialGenerationError{Succeeded: 1, Total: 3, Failed: "src/B.php", Err: cause}
		},
	}
	var out bytes.Buffer

	err := NewMakeAdapter(mock, &out).Make(context.Background(), primary.GenerateRequest{Kind: "command", Name: "CreateOrder"})

	var exists *secondary.DestinationExistsError
	if !errors.As(err, &exists) {
		t.Fatalf("Make() error = %v, want *DestinationExistsError in chain", err)
	}
	got := out.String()
	if !strings.Contains(got, "CREATE     src/A.php") {
		t.Errorf("completed artifact not reported\n%s", got)
	}
	if !strings.Contains(got, "✗ Stopped after 1 of 3 steps at src/B.php") {
		t.Errorf("missing stop line\n%s", got)
	}
	if strings.Contains(got, "✓") {
		t.Errorf("partial run reported success\n%s", got)
	}
}

func TestMakeAdapter_InputError(t *testing.T) {
	mock := &mockMakerService{
		generateFn: func(ctx context.Context, req primary.GenerateRequest) (*primary.GenerateResponse, error) {
			return nil, errors.New(`unknown kind "widget"`)
		},
	}
	var out bytes.Buffer

	if err := NewMakeAdapter(mock, &out).Make(context.Background(), primary.GenerateRequest{Kind: "widget"}); err == nil {
		t.Fatal("expected error")
	}
	if out.Len() != 0 {
		t.Errorf("expected no output, got %q", out.String())
	}
}
