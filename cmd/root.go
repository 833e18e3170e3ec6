// cmd/root.go
package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/alexDouze/git-site-clone/pkg/clipboard"
	"github.com/alexDouze/git-site-clone/pkg/config"
	"github.com/alexDouze/git-site-clone/pkg/git"
	"github.com/alexDouze/git-site-clone/pkg/logger"
)

// Build information, set with -ldflags at release time
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

const envPrefix = "GIT_SITE_CLONE"

var (
	verbose  bool
	settings = viper.New()
	log      = zap.NewNop().Sugar()

	// Collaborators, replaced in tests
	newStore                         = config.NewDefaultStore
	newOrchestrator                  = git.NewOrchestrator
	clipboardReader clipboard.Reader = clipboard.NewSystem()
)

var rootCmd = &cobra.Command{
	Use:   "git-site-clone [repository-url]",
	Short: "Clone git repositories into a directory derived from their host and path",
	Long: `Clone a git repository from a URL (or the clipboard if none is given)
into <base>/<host>/<path>, where <base> comes from the configuration or from
a per-host mapping. Useful for keeping many repositories organized by site.

Examples:
  # Clone into <base>/github.com/octocat/hello-world
  git-site-clone git@github.com:octocat/hello-world.git

  # Clone the URL currently in the clipboard
  git-site-clone

  # Clone below another root directory
  git-site-clone https://github.com/octocat/hello-world --base ~/scratch`,
	Args:              cobra.MaximumNArgs(1),
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
	RunE:              runClone,
}

// Execute runs the command line and returns the process exit code
func Execute() int {
	return exitCode(rootCmd, rootCmd.Execute())
}

func setupLogging(cmd *cobra.Command, args []string) error {
	log = logger.NewWithWriter(cmd.ErrOrStderr(), settings.GetBool("verbose"))
	return nil
}

// exitCode reports err and maps it to the exit status of the process.
// Failed clones and invalid URLs are only reported in verbose mode.
func exitCode(cmd *cobra.Command, err error) int {
	if err == nil {
		return 0
	}

	var cloneErr *git.CloneError
	if errors.As(err, &cloneErr) {
		log.Errorf("Failed to clone repository: %v", cloneErr.Err)
		return cloneErr.ExitCode
	}

	if errors.Is(err, git.ErrInvalidURL) {
		log.Errorf("%v", err)
		return 1
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
	return 1
}

// openStore opens the configuration store and reports its location
func openStore() (*config.Store, error) {
	store, err := newStore()
	if err != nil {
		return nil, fmt.Errorf("failed to locate configuration: %w", err)
	}
	log.Infof("Configuration path: %s", store.Path())
	return store, nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print diagnostic messages to stderr")
	addCloneFlags(rootCmd)

	settings.SetEnvPrefix(envPrefix)
	settings.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	settings.AutomaticEnv()
	_ = settings.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}
