// cmd/clone.go
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexDouze/git-site-clone/pkg/config"
	"github.com/alexDouze/git-site-clone/pkg/git"
)

var (
	baseDir string
	noCwd   bool
)

var cloneCmd = &cobra.Command{
	Use:   "clone [repository-url]",
	Short: "Clone a git repository",
	Long: `Clone a git repository into a structured directory hierarchy.
The repository is cloned into the first of:
  <--base>/<host>/<path>       when --base is given
  <mapping>/<path>             when a mapping exists for <host>
  <base>/<host>/<path>         otherwise
A trailing .git is removed from <path>. Without a URL argument, the URL is
read from the clipboard.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runClone,
}

func runClone(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}

	cfg, err := store.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	rawURL, err := repositoryURL(args)
	if err != nil {
		return err
	}

	repo, err := git.ParseURL(rawURL)
	if err != nil {
		return err
	}

	explicitBase := ""
	if baseDir != "" {
		explicitBase, err = config.ExpandPath(baseDir)
		if err != nil {
			return err
		}
	}

	target := git.Resolve(repo, explicitBase, cfg)
	log.Infof("Target: %s", target)
	log.Infof("Cloning with git %s to %s...", repo.Raw, target)

	orchestrator := newOrchestrator()
	if err := orchestrator.Clone(repo, target); err != nil {
		return err
	}

	if !noCwd {
		log.Infof("Changing directory to %s", target)
	}
	return orchestrator.ChangeDirectory(target, noCwd)
}

// repositoryURL returns the URL argument, falling back to the clipboard
func repositoryURL(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}

	url, err := clipboardReader.Read()
	if err != nil {
		return "", err
	}
	log.Infof("Read %s from clipboard", url)
	return url, nil
}

func addCloneFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&baseDir, "base", "", "Base directory for cloning repositories, overrides configuration")
	cmd.Flags().BoolVar(&noCwd, "no-cwd", false, "Do not change the current directory after cloning")
}

func init() {
	rootCmd.AddCommand(cloneCmd)
	addCloneFlags(cloneCmd)
}
