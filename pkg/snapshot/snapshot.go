package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var lock sync.Mutex
var callCount = make(map[string]int)

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_.-]+`)

// ValidateSnapshot compares the indented JSON of obj against testdata/<test>-<n>.json
// n counts the snapshots taken by the test so far. A missing file is written instead of compared,
// and BJ_UPDATE_SNAPSHOTS=1 rewrites every file.
func ValidateSnapshot(t *testing.T, obj interface{}, msgAndArgs ...interface{}) {
	t.Helper()

	filename := nextFilename(t.Name())

	objJSON, err := json.MarshalIndent(obj, "", "  ")
	require.NoError(t, err)

	expects, err := os.ReadFile(filename)
	if os.IsNotExist(err) || os.Getenv("BJ_UPDATE_SNAPSHOTS") == "1" {
		require.NoError(t, write(filename, objJSON))
		return
	}
	require.NoError(t, err)

	if !assert.Equal(t, strings.TrimSpace(string(expects)), strings.TrimSpace(string(objJSON)), msgAndArgs...) {
		t.Logf("snapshot %s", filename)
	}
}

func nextFilename(testName string) string {
	lock.Lock()
	defer lock.Unlock()

	name := unsafeChars.ReplaceAllString(testName, "_")
	call := callCount[name]
	callCount[name] = call + 1

	return filepath.Join("testdata", fmt.Sprintf("%s-%d.json", name, call))
}

func write(filename string, b []byte) error {
	logrus.WithField("filename", filename).Info("writing snapshot file")
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return err
	}

	return os.WriteFile(filename, append(b, '\n'), 0o644)
}
