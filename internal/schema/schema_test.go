package schema

import (
	"testing"

	"github.com/spf13/cobra"
)

func TestBuildSchema(t *testing.T) {
	root := &cobra.Command{Use: "yield"}
	leaf := &cobra.Command{Use: "plan", Short: "plan a yield path"}
	leaf.Flags().String("pool", "", "pool slug")
	root.AddCommand(leaf)

	s, err := Build(root, "plan")
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if s.Path != "yield plan" {
		t.Fatalf("unexpected path: %s", s.Path)
	}
	if len(s.Flags) != 1 || s.Flags[0].Name != "pool" {
		t.Fatalf("unexpected flags: %+v", s.Flags)
	}
}

func TestBuildSchemaUnknownCommand(t *testing.T) {
	root := &cobra.Command{Use: "yield"}
	if _, err := Build(root, "nope"); err == nil {
		t.Fatal("expected error for unknown command path")
	}
}
