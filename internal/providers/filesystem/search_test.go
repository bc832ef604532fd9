package filesystem

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindByName(t *testing.T) {
	root := buildTree(t)
	p := testProvider(t, nil)

	matches, err := p.Find(context.Background(), root, "*.txt")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		filepath.Join(root, "a.txt"),
		filepath.Join(root, "b.txt"),
		filepath.Join(root, "sub", "c.txt"),
		filepath.Join(root, "sub", "deep", "d.txt"),
	}, matches)
}

func TestFindNoMatches(t *testing.T) {
	root := buildTree(t)
	p := testProvider(t, nil)

	matches, err := p.Find(context.Background(), root, "*.conf")
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestFindCancelled(t *testing.T) {
	root := buildTree(t)
	p := testProvider(t, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Find(ctx, root, "*.txt")
	assert.Error(t, err)
}
