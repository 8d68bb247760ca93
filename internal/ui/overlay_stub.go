//go:build !ebiten

package ui

import "sandflow/internal/core"

// Overlay is a no-op placeholder in headless builds.
type Overlay struct{}

// NewOverlay returns the headless placeholder overlay.
func NewOverlay(core.Sim, int) *Overlay { return &Overlay{} }

// Update is a no-op in headless builds.
func (o *Overlay) Update() {}

// Draw is a no-op in headless builds.
func (o *Overlay) Draw(any) {}
