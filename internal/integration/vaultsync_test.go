package integration

import (
	"testing"
)

func TestPullNonGitVault(t *testing.T) {
	m := NewVaultSyncManager(t.TempDir())

	result := m.Pull()
	if result.Synced {
		t.Error("pull of a non-git vault must not report success")
	}
	if result.Message != "Sync failed" {
		t.Errorf("Message = %q, want %q", result.Message, "Sync failed")
	}
	if result.Err == nil {
		t.Error("expected an error for a non-git vault")
	}
}
