package cmd

import (
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"strconv"

	"github.com/etnz/screener/config"
)

// Environment of extensions. The names match the configuration variables, so an extension
// calling scr again works on the same dataset and selection.
const (
	EnvData          = config.EnvPrefix + "_DATA"
	EnvPath          = config.EnvPrefix + "_PATH"
	EnvKey           = config.EnvPrefix + "_KEY"
	EnvSelectionFile = config.EnvPrefix + "_SELECTION_FILE"
	EnvCacheDir      = config.EnvPrefix + "_CACHE_DIR"
	EnvVerbose       = config.EnvPrefix + "_VERBOSE"
)

// RunExtension runs scr-<name> from the PATH with args, if there is one.
// It returns whether the extension was found, and its exit code.
func RunExtension(name string, args []string) (found bool, code int) {
	bin := "scr-" + name
	path, err := exec.LookPath(bin)
	if err != nil {
		log.Printf("no extension %q: %v", bin, err)
		return false, 0
	}

	ext := exec.Command(path, args...)
	ext.Stdin, ext.Stdout, ext.Stderr = os.Stdin, stdout, os.Stderr
	ext.Env = append(os.Environ(), extensionEnv()...)

	err = ext.Run()
	var exit *exec.ExitError
	switch {
	case err == nil:
		return true, 0
	case errors.As(err, &exit):
		return true, exit.ExitCode()
	default:
		fmt.Fprintf(os.Stderr, "Error running extension %q: %v\n", bin, err)
		return true, 1
	}
}

// extensionEnv returns the effective settings as environment variables.
func extensionEnv() []string {
	env := []string{EnvVerbose + "=" + strconv.FormatBool(*Verbose)}
	cfg, err := settings()
	if err != nil {
		log.Printf("extensions run without settings: %v", err)
		return env
	}
	return append(env,
		EnvData+"="+cfg.Data,
		EnvPath+"="+cfg.Path,
		EnvKey+"="+cfg.Key,
		EnvSelectionFile+"="+cfg.SelectionFile,
		EnvCacheDir+"="+cfg.CacheDir,
	)
}
