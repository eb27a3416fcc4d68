// Package ui contains the Fyne-based desktop window. It wires user input to
// the single-slot download service and renders progress and results. All
// strings come from i18n.Localization.
package ui
