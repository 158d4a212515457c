package runner

import (
	"os"
	"path/filepath"

	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/spanx"
	fileutil "github.com/projectdiscovery/utils/file"
)

func getUserHomeDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		panic(err)
	}
	return homeDir
}

// defaultLibraryPath is the pattern library used when -library is not given
var defaultLibraryPath = filepath.Join(getUserHomeDir(), ".config", "spanx", "library.yaml")

// ensureDefaultLibrary writes the sample library to path if it does not
// exist yet
func ensureDefaultLibrary(path string) {
	if fileutil.FileExists(path) {
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		gologger.Error().Msgf("failed to create config dir for %v got: %v", path, err)
		return
	}
	if err := spanx.GenerateSample(path); err != nil {
		gologger.Error().Msgf("failed to save default library to %v got: %v", path, err)
	}
}

// loadLibrary reads the pattern library at path. A missing default
// library falls back to the built-in sample.
func loadLibrary(path string) (*spanx.Config, error) {
	if path == defaultLibraryPath && !fileutil.FileExists(path) {
		cfg := spanx.SampleConfig
		return &cfg, nil
	}
	return spanx.NewConfig(path)
}
