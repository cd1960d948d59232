package catalog

import (
	"fmt"
	"strings"

	"github.com/lixenwraith/pf-sandbox/constants"
)

// Package bundles rules with the shared fighter and stage catalogs
type Package struct {
	Name     string
	Rules    Rules
	Fighters *Shared[Fighter]
	Stages   *Shared[Stage]
}

// NewPackage creates a package, filling zero rule fields with defaults
func NewPackage(name string, rules Rules, fighters []Fighter, stages []Stage) *Package {
	if rules.StockCount == 0 {
		rules.StockCount = constants.DefaultStockCount
	}
	if rules.TimeLimit == 0 {
		rules.TimeLimit = constants.DefaultTimeLimit
	}
	if rules.TicksPerSecond == 0 {
		rules.TicksPerSecond = constants.TicksPerSecond
	}
	return &Package{
		Name:     name,
		Rules:    rules,
		Fighters: NewShared(fighters),
		Stages:   NewShared(stages),
	}
}

// FighterIndex resolves a fighter name (case-insensitive) to its catalog index
func (p *Package) FighterIndex(name string) (int, error) {
	fighters := p.Fighters.RLock()
	defer p.Fighters.RUnlock()
	for i, f := range fighters {
		if strings.EqualFold(f.Name, name) {
			return i, nil
		}
	}
	return -1, fmt.Errorf("fighter %q not found in package %q", name, p.Name)
}

// StageIndex resolves a stage name (case-insensitive) to its catalog index
func (p *Package) StageIndex(name string) (int, error) {
	stages := p.Stages.RLock()
	defer p.Stages.RUnlock()
	for i, s := range stages {
		if strings.EqualFold(s.Name, name) {
			return i, nil
		}
	}
	return -1, fmt.Errorf("stage %q not found in package %q", name, p.Name)
}

// Names lists fighter and stage names in catalog order
func (p *Package) Names() (fighters, stages []string) {
	fs := p.Fighters.RLock()
	for _, f := range fs {
		fighters = append(fighters, f.Name)
	}
	p.Fighters.RUnlock()

	ss := p.Stages.RLock()
	for _, s := range ss {
		stages = append(stages, s.Name)
	}
	p.Stages.RUnlock()
	return fighters, stages
}
