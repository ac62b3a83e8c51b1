package targets_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/cybertec-postgresql/orawatch/internal/targets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// the number of entries in the sample.targets.yaml file
const sampleEntriesNumber = 4

const sampleFile = "sample.targets.yaml"

var ctx = context.Background()

func writeFile(t *testing.T, dir, name, content string) string {
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestYAMLGetTargets(t *testing.T) {
	a := assert.New(t)

	t.Run("single file", func(t *testing.T) {
		t.Setenv("OW_FREE_PASSWORD", "s3cret")
		r, err := targets.NewYAMLTargetsReader(ctx, sampleFile)
		a.NoError(err)
		cs, err := r.GetTargets()
		a.NoError(err)
		a.Len(cs, sampleEntriesNumber)
		a.Equal("s3cret", cs[0].Auth.Password)
		a.Equal("dev", cs[0].Group)
	})

	t.Run("env expansion of identity inputs", func(t *testing.T) {
		t.Setenv("OW_GROUP", "prod")
		t.Setenv("OW_SERVICE", "SALES")
		t.Setenv("OW_SERVICE_TYPE", "pooled")
		t.Setenv("OW_INSTANCE", "sales1")
		dir := t.TempDir()
		writeFile(t, dir, "env.yaml", "- name: env\n  group: $OW_GROUP\n  service_name: $OW_SERVICE\n"+
			"  service_type: $OW_SERVICE_TYPE\n  instance_name: $OW_INSTANCE\n")
		r, err := targets.NewYAMLTargetsReader(ctx, dir)
		a.NoError(err)
		cs, err := r.GetTargets()
		a.NoError(err)
		a.Len(cs, 1)
		a.Equal("prod", cs[0].Group)
		tgt := cs[0].Target()
		s, ok := tgt.ConnectionString("", targets.EasyConnect)
		a.True(ok)
		a.Equal("localhost:1521/SALES:pooled/SALES1", s)
	})

	t.Run("nonexistent file", func(*testing.T) {
		r, err := targets.NewYAMLTargetsReader(ctx, "nonexistent.yaml")
		a.NoError(err)
		cs, err := r.GetTargets()
		a.Error(err)
		a.Nil(cs)
	})

	t.Run("garbage file", func(*testing.T) {
		r, err := targets.NewYAMLTargetsReader(ctx, "yaml.go")
		a.NoError(err)
		cs, err := r.GetTargets()
		a.Error(err)
		a.Nil(cs)
	})

	t.Run("folder", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "a.yaml", "- name: one\n  sid: ONE\n")
		writeFile(t, dir, "b.yml", "- name: two\n  service_name: TWO\n")
		writeFile(t, dir, "readme.txt", "not yaml")
		r, err := targets.NewYAMLTargetsReader(ctx, dir)
		a.NoError(err)
		cs, err := r.GetTargets()
		a.NoError(err)
		a.Len(cs, 2)
	})

	t.Run("duplicates across files", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "a.yaml", "- name: one\n  sid: ONE\n")
		writeFile(t, dir, "b.yaml", "- name: one\n  sid: OTHER\n")
		r, err := targets.NewYAMLTargetsReader(ctx, dir)
		a.NoError(err)
		cs, err := r.GetTargets()
		a.ErrorContains(err, "duplicate target with name 'one' found")
		a.Nil(cs)
	})

	t.Run("unnamed targets use display name", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "t.yaml", "- sid: orcl\n- alias: prod\n")
		r, err := targets.NewYAMLTargetsReader(ctx, path)
		a.NoError(err)
		cs, err := r.GetTargets()
		a.NoError(err)
		a.Equal("ORCL", cs[0].Name)
		a.Equal("PROD", cs[1].Name)
	})
}
