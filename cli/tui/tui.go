package tui

import (
	"fmt"
	"io"
	"slices"

	"github.com/pithecene-io/clipfrag/cli/reader"
)

// Run starts the TUI for viewType.
func Run(viewType string, data any) error {
	if !IsTUISupported(viewType) {
		return fmt.Errorf("TUI mode is not supported for %s", viewType)
	}

	switch viewType {
	case "plan":
		plan, ok := data.(*reader.PlanResponse)
		if !ok {
			return fmt.Errorf("invalid data type for plan view: %T", data)
		}
		return RunPlanTUI(plan)
	default:
		return fmt.Errorf("unknown view type: %s", viewType)
	}
}

// RenderStatic writes a one-shot rendering of the viewType view to w, for
// output that is not a terminal.
func RenderStatic(w io.Writer, viewType string, data any) error {
	switch viewType {
	case "plan":
		plan, ok := data.(*reader.PlanResponse)
		if !ok {
			return fmt.Errorf("invalid data type for plan view: %T", data)
		}
		_, err := fmt.Fprintln(w, RenderPlanStatic(plan))
		return err
	default:
		return fmt.Errorf("TUI mode is not supported for %s", viewType)
	}
}

// IsTUISupported reports whether viewType has a TUI.
func IsTUISupported(viewType string) bool {
	return slices.Contains(SupportedTUIViews(), viewType)
}

// SupportedTUIViews returns the view types with a TUI.
func SupportedTUIViews() []string {
	return []string{"plan"}
}
