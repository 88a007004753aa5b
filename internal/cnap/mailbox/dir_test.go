package mailbox

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeEML(t *testing.T, dir, uid, to, subject, body string) {
	t.Helper()
	raw := fmt.Sprintf("From: survey@forms.example\nTo: %s\nSubject: %s\nContent-Type: text/html\n\n%s\n", to, subject, body)
	require.NoError(t, os.WriteFile(filepath.Join(dir, uid+".eml"), crlf(raw), 0o600))
}

func TestDirMailbox(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	inbox := filepath.Join(root, "INBOX")
	require.NoError(t, os.Mkdir(inbox, 0o700))

	writeEML(t, inbox, "0002", "requests@cnap.example", "CNAP Account Request", "<p>EMAIL: b@lab.org</p>")
	writeEML(t, inbox, "0001", "requests@cnap.example", "CNAP Account Request", "<p>EMAIL: a@lab.org</p>")
	writeEML(t, inbox, "0003", "requests@cnap.example", "CNAP Pipeline Request", "<p>PIPELINE: x</p>")
	writeEML(t, inbox, "0004", "someone@else.example", "CNAP Account Request", "<p>ignored</p>")
	require.NoError(t, os.WriteFile(filepath.Join(inbox, "notes.txt"), []byte("skip"), 0o600))

	mb, err := NewDirMailbox(root, "INBOX")
	require.NoError(t, err)
	require.Equal(t, "INBOX", mb.Folder())
	require.Contains(t, mb.Server(), "dir://")

	uids, err := mb.Search(ctx, Query{To: "requests@cnap.example", Subject: "CNAP Account Request"})
	require.NoError(t, err)
	require.Equal(t, []string{"0001", "0002"}, uids)

	msgs, err := mb.Fetch(ctx, uids)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	require.Contains(t, msgs[0].Body, "a@lab.org")
	require.Contains(t, msgs[1].Body, "b@lab.org")

	_, err = mb.Fetch(ctx, []string{"missing"})
	require.ErrorIs(t, err, ErrMailQuery)
}

func TestDirMailboxMissingFolder(t *testing.T) {
	_, err := NewDirMailbox(t.TempDir(), "nope")
	require.ErrorIs(t, err, ErrMailQuery)
}
