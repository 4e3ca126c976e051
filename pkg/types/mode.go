package types

// ModeState holds the persisted input-mode settings.
//
// In directory mode the file set is derived entirely from scanning one
// configured directory; manual add and drag-and-drop are disabled. In manual
// mode the set is built by explicit user actions.
type ModeState struct {
	DirectoryMode       bool
	DirectoryPath       string
	DontAskOnModeChange bool
}
