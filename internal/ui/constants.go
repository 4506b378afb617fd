// Package ui provides shared UI constants and utilities.
package ui

const (
	// FooterHeight is the space for the section icon bar at the bottom.
	FooterHeight = 1

	// StatusHeight is the space for the hovered-glyph status line.
	StatusHeight = 1

	// WheelStep is the number of rows a wheel tick scrolls the panel.
	WheelStep = 3
)
