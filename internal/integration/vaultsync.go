// Package integration contains schedbot's external collaborators: the git
// vault synchroniser and the Telegram delivery wrapper.
package integration

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// VaultSyncManager refreshes the vault working tree from its git remote
// before a scan. Sync failures are reported, never fatal: a stale vault
// still produces a report.
type VaultSyncManager struct {
	vaultPath string
}

// NewVaultSyncManager creates a VaultSyncManager rooted at the vault path.
func NewVaultSyncManager(vaultPath string) *VaultSyncManager {
	return &VaultSyncManager{vaultPath: vaultPath}
}

// SyncResult captures the outcome of one vault pull.
type SyncResult struct {
	Synced  bool
	Message string // user-facing summary ("Synced" / "Sync failed")
	Err     error
}

// Pull fast-forwards the vault from origin. A vault that is not a git
// repository fails soft with a result, not an error return.
func (m *VaultSyncManager) Pull() SyncResult {
	if _, err := os.Stat(filepath.Join(m.vaultPath, ".git")); err != nil {
		return SyncResult{
			Message: "Sync failed",
			Err:     fmt.Errorf("vault %s is not a git repository", m.vaultPath),
		}
	}

	cmd := exec.Command("git", "-C", m.vaultPath, "pull", "--ff-only")
	output, err := cmd.CombinedOutput()
	if err != nil {
		return SyncResult{
			Message: "Sync failed",
			Err:     fmt.Errorf("git pull: %w: %s", err, strings.TrimSpace(string(output))),
		}
	}
	return SyncResult{Synced: true, Message: "Synced"}
}
