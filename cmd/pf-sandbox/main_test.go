package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/lixenwraith/pf-sandbox/catalog"
	"github.com/lixenwraith/pf-sandbox/config"
	"github.com/lixenwraith/pf-sandbox/physics"
	"github.com/lixenwraith/pf-sandbox/script"
	"github.com/lixenwraith/pf-sandbox/status"
)

func TestSplitNames(t *testing.T) {
	got := splitNames(" Heavy, ,Floaty ,")
	if len(got) != 2 || got[0] != "Heavy" || got[1] != "Floaty" {
		t.Errorf("splitNames = %q", got)
	}
}

func TestListPackage(t *testing.T) {
	var buf bytes.Buffer
	listPackage(&buf, catalog.Default())
	out := buf.String()
	for _, want := range []string{"fighters:", "Base Fighter", "stages:", "Battlefield", "Final Destination"} {
		if !strings.Contains(out, want) {
			t.Errorf("listing missing %q:\n%s", want, out)
		}
	}
}

func TestBuildRuleSet(t *testing.T) {
	cfg, err := config.Parse(nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	rs, closeRules, err := buildRuleSet(cfg, status.NewRegistry())
	if err != nil {
		t.Fatalf("buildRuleSet: %v", err)
	}
	closeRules()
	if _, ok := rs.(*physics.RuleSet); !ok {
		t.Errorf("default rule set = %T, want physics", rs)
	}

	cfg, err = config.Parse([]byte("[Script]\nEnabled = true\nParams = {\"jump_scale\": 1.5}"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	rs, closeRules, err = buildRuleSet(cfg, status.NewRegistry())
	if err != nil {
		t.Fatalf("buildRuleSet script: %v", err)
	}
	defer closeRules()
	if _, ok := rs.(*script.RuleSet); !ok {
		t.Errorf("scripted rule set = %T, want script", rs)
	}
}
