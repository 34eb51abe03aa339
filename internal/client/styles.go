// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/MKhiriev/go-savings-jar/internal/utils"
)

const progressWidth = 30

var (
	titleStyle      = lipgloss.NewStyle().Bold(true)
	mutedStyle      = lipgloss.NewStyle().Faint(true)
	primaryStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	depositStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	withdrawalStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// progressBar renders pct (0-100) as a bar followed by the percentage.
// Goals past the threshold switch to the solid fill.
func progressBar(pct int) string {
	opts := []progress.Option{progress.WithWidth(progressWidth)}
	if pct >= utils.ProgressThreshold {
		opts = append(opts, progress.WithSolidFill("42"))
	} else {
		opts = append(opts, progress.WithDefaultGradient())
	}
	return progress.New(opts...).ViewAs(float64(pct) / utils.ProgressMax)
}
