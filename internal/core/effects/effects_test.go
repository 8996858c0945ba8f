package effects

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestConfigChange_Path(t *testing.T) {
	tests := []struct {
		change ConfigChange
		want   []string
	}{
		{ORMMappingChange("SalesOrder", "dir", "prefix"), []string{"doctrine", "orm", "mappings", "SalesOrder"}},
		{BusChange("command.bus", nil), []string{"framework", "messenger", "buses", "command.bus"}},
		{ServiceBindingChange(`App\I`, `App\Impl`), []string{"services", `App\I`}},
		{RouteChange("sales_order_controllers", "../src", `App\Sales`), []string{"sales_order_controllers"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.change.Target), func(t *testing.T) {
			if diff := cmp.Diff(tt.want, tt.change.Path()); diff != "" {
				t.Errorf("Path() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBusChange_CopiesMiddleware(t *testing.T) {
	middleware := []string{"validation"}
	change := BusChange("command.bus", middleware)
	middleware[0] = "changed"

	if got := change.Payload["middleware"].([]string)[0]; got != "validation" {
		t.Errorf("middleware = %q, want validation", got)
	}
	if _, ok := BusChange("query.bus", nil).Payload["middleware"]; ok {
		t.Error("empty middleware should be omitted")
	}
}

func TestEventBusChange(t *testing.T) {
	change := EventBusChange("event.bus", nil)

	want := map[string]any{"enabled": true, "allow_no_handlers": true}
	if diff := cmp.Diff(want, change.Payload["default_middleware"]); diff != "" {
		t.Errorf("default_middleware mismatch (-want +got):\n%s", diff)
	}
}

func TestConfigChange_Identity(t *testing.T) {
	a := BusChange("command.bus", []string{"validation"})
	b := BusChange("command.bus", nil)
	if a.Identity() != b.Identity() {
		t.Errorf("same section, different identity: %q vs %q", a.Identity(), b.Identity())
	}
	if a.Identity() == ServiceBindingChange("command.bus", "x").Identity() {
		t.Error("different targets share an identity")
	}
}

func TestCompositeEffect_Flatten(t *testing.T) {
	plan := CompositeEffect{Effects: []Effect{
		CompositeEffect{Effects: []Effect{
			FileEffect{Destination: "a"},
			ORMMappingChange("A", "dir", "prefix"),
		}},
		CompositeEffect{Effects: []Effect{
			FileEffect{Destination: "b"},
			CompositeEffect{Effects: []Effect{FileEffect{Destination: "c"}}},
		}},
	}}

	if got := len(plan.Flatten()); got != 4 {
		t.Fatalf("Flatten() = %d effects, want 4", got)
	}

	var dests []string
	for _, f := range plan.Files() {
		dests = append(dests, f.Destination)
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, dests); diff != "" {
		t.Errorf("Files() mismatch (-want +got):\n%s", diff)
	}

	changes := plan.ConfigChanges()
	if len(changes) != 1 || changes[0].SectionKey != "A" {
		t.Errorf("ConfigChanges() = %+v", changes)
	}
}

func TestTargetFile_DefaultLocation(t *testing.T) {
	for _, target := range Targets {
		if target.DefaultLocation() == "" {
			t.Errorf("%s has no default location", target)
		}
	}
}
