package sections_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/cybertec-postgresql/orawatch/internal/sections"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = context.Background()

func TestDefaultSections(t *testing.T) {
	r, err := sections.NewYAMLSectionsReader(ctx, "", "")
	require.NoError(t, err)
	ss, err := r.GetSections()
	require.NoError(t, err)
	require.NotEmpty(t, ss)
	assert.Equal(t, "instance", ss[0].Name)
	for _, s := range ss {
		assert.NotEmpty(t, s.SQLs, s.Name)
	}
	asm, err := ss.Select([]string{"asm_diskgroup"})
	require.NoError(t, err)
	assert.Equal(t, sections.AffinityASM, asm[0].Affinity)
}

func TestYAMLGetSections(t *testing.T) {
	a := assert.New(t)

	t.Run("folder with default affinity", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yaml"), []byte("- name: one\n  sqls:\n    0: SELECT 1 FROM dual\n"), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "b.yml"), []byte("- name: two\n  affinity: asm\n  sqls:\n    0: SELECT 2 FROM dual\n"), 0644))
		r, _ := sections.NewYAMLSectionsReader(ctx, dir, "")
		ss, err := r.GetSections()
		a.NoError(err)
		a.Len(ss, 2)
		a.Equal(sections.AffinityAll, ss[0].Affinity)
	})

	t.Run("duplicate", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "d.yaml")
		require.NoError(t, os.WriteFile(path, []byte("- name: one\n- name: one\n"), 0644))
		r, _ := sections.NewYAMLSectionsReader(ctx, path, "")
		ss, err := r.GetSections()
		a.ErrorContains(err, "duplicate section with name 'one' found")
		a.Nil(ss)
	})

	t.Run("nonexistent", func(*testing.T) {
		r, _ := sections.NewYAMLSectionsReader(ctx, "nonexistent.yaml", "")
		ss, err := r.GetSections()
		a.Error(err)
		a.Nil(ss)
	})

	t.Run("sql dir override", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "sessions.sql"), []byte("SELECT 42 FROM dual"), 0644))
		r, _ := sections.NewYAMLSectionsReader(ctx, "", dir)
		ss, err := r.GetSections()
		require.NoError(t, err)
		sel, err := ss.Select([]string{"sessions", "instance"})
		require.NoError(t, err)
		a.Equal("SELECT 42 FROM dual", sel[0].GetSQL(19))
		a.NotEqual("SELECT 42 FROM dual", sel[1].GetSQL(19))
	})
}
