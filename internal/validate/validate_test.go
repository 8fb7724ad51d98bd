package validate

import (
	"testing"

	"github.com/boardlint/boardlint/internal/board"
	"github.com/boardlint/boardlint/internal/schema"
	"github.com/boardlint/boardlint/schemas"
)

// testRegistry loads the embedded default schema set; the tests below run
// against the same documents the CLI ships with.
func testRegistry(t *testing.T) *schema.Registry {
	t.Helper()
	reg, err := schema.LoadRegistry(schemas.FS)
	if err != nil {
		t.Fatalf("loading embedded schemas: %v", err)
	}
	return reg
}

func parseConfig(t *testing.T, src string) *board.Config {
	t.Helper()
	cfg, err := board.Parse([]byte(src))
	if err != nil {
		t.Fatalf("parsing config: %v", err)
	}
	return cfg
}

// findByCategory returns the findings with the given category, in order.
func findByCategory(rep *Report, category string) []Finding {
	var out []Finding
	for _, f := range rep.Findings {
		if f.Category == category {
			out = append(out, f)
		}
	}
	return out
}
