package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLedgerAddContains(t *testing.T) {
	t.Parallel()

	ledger := NewLedger()
	require.Equal(t, 0, ledger.Len())
	require.False(t, ledger.Contains("abc"))

	ledger.Add("abc")
	require.True(t, ledger.Contains("abc"))
	require.False(t, ledger.Contains("def"))
	require.Equal(t, 1, ledger.Len())

	// Re-adding the same ID is a no-op.
	ledger.Add("abc")
	require.Equal(t, 1, ledger.Len())
}

func TestLoadLedgerMissingFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "missing.jsonl")
	ledger, err := LoadLedger(path, zap.NewNop())
	require.NoError(t, err)
	require.Equal(t, 0, ledger.Len())
}

func TestLoadLedgerCollectsDocIDs(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "output.jsonl")
	lines := `{"doc_id":"aaa","url":"https://example.com/a","title":"A","body_text":"x"}
{"doc_id":"bbb","url":"https://example.com/b","title":"B","body_text":"y"}
`
	require.NoError(t, os.WriteFile(path, []byte(lines), 0o640))

	ledger, err := LoadLedger(path, zap.NewNop())
	require.NoError(t, err)
	require.Equal(t, 2, ledger.Len())
	require.True(t, ledger.Contains("aaa"))
	require.True(t, ledger.Contains("bbb"))
	require.False(t, ledger.Contains("ccc"))
}

func TestLoadLedgerSkipsMalformedLines(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "output.jsonl")
	lines := `{"doc_id":"aaa"}
not json at all

{"url":"https://example.com/no-id"}
{"doc_id":"bbb"}
`
	require.NoError(t, os.WriteFile(path, []byte(lines), 0o640))

	ledger, err := LoadLedger(path, zap.NewNop())
	require.NoError(t, err)
	require.Equal(t, 2, ledger.Len())
	require.True(t, ledger.Contains("aaa"))
	require.True(t, ledger.Contains("bbb"))
}
