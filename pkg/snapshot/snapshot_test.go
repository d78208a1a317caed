package snapshot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_nextFilename(t *testing.T) {
	a := assert.New(t)
	a.Equal(filepath.Join("testdata", "TestFoo_bar_baz-0.json"), nextFilename("TestFoo/bar baz"))
	a.Equal(filepath.Join("testdata", "TestFoo_bar_baz-1.json"), nextFilename("TestFoo/bar baz"))
	a.Equal(filepath.Join("testdata", "TestOther-0.json"), nextFilename("TestOther"))
}

func TestValidateSnapshot(t *testing.T) {
	ValidateSnapshot(t, map[string]interface{}{"round": 1, "players": []string{"a", "b"}})
}

func TestValidateSnapshot_WritesMissingFile(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	if !assert.NoError(t, err) {
		return
	}

	assert.NoError(t, os.Chdir(dir))
	defer func() {
		_ = os.Chdir(wd)
	}()

	ValidateSnapshot(t, []int{1, 2})

	b, err := os.ReadFile(filepath.Join("testdata", "TestValidateSnapshot_WritesMissingFile-0.json"))
	assert.NoError(t, err)
	assert.Equal(t, "[\n  1,\n  2\n]\n", string(b))
}
