// Package tui provides terminal user interface components for piratpkg.
//
// This package uses the Bubble Tea framework for the interactive package
// picker and the confirmation prompt shown before install and uninstall.
//
// # Package Picker
//
// The picker lists every manifest across the configured branches:
//
//	result, err := tui.RunPicker(entries)
//	switch result.Action {
//	case tui.ActionInstall:
//	    // Install result.Address()
//	case tui.ActionUninstall:
//	    // Uninstall result.Address()
//	case tui.ActionInspect:
//	    // Show the parsed manifest
//	case tui.ActionQuit:
//	    // Exit
//	}
//
// # Confirmation
//
// ConfirmPrompter satisfies the installer's Prompter interface:
//
//	inst := installer.New(installer.Options{Prompter: &tui.ConfirmPrompter{}})
//
// # Dependencies
//
// Uses the Charm libraries:
//   - github.com/charmbracelet/bubbletea - TUI framework
//   - github.com/charmbracelet/bubbles - UI components
//   - github.com/charmbracelet/lipgloss - Styling
package tui
