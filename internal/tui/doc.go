/*
Package tui implements the terminal user interface for redactcli.

# Architecture

The TUI follows the Bubble Tea framework's Model-Update-View pattern:
  - Model: holds widgets and the view.Controller
  - Update: processes messages and returns commands
  - View: renders the active view and any modal

# Key Components

  - model.go: Model struct, messages and the update loop
  - keys.go: keyboard handling per mode and focus
  - render.go: view rendering and styles
  - actions.go: commands that call the redaction service
  - bridge.go: credential prompts and notifications raised from commands

# Views

Two mutually exclusive views are driven by view.Controller:
  - Redacting: input text, category list, anonymized output
  - Restoring: entity mappings, anonymized text, text to restore

# Threading Model

The TUI runs in Bubble Tea's event loop. Service calls run in tea.Cmd
goroutines. When a call needs a credential or must show a blocking
notification, the Bridge sends a message into the program and waits on a
reply channel that the matching modal answers.
*/
package tui
