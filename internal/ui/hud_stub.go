//go:build !ebiten

package ui

import "sandflow/internal/core"

// HUD is a no-op placeholder in headless builds.
type HUD struct{}

// NewHUD returns the headless placeholder HUD.
func NewHUD(core.Sim, int, int) *HUD { return &HUD{} }

// Update is a no-op in headless builds.
func (h *HUD) Update() {}

// Draw is a no-op in headless builds.
func (h *HUD) Draw(any) {}
