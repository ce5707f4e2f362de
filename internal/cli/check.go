package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	apperrors "github.com/matterframe/matterframe/pkg/errors"
	"github.com/matterframe/matterframe/pkg/snapshot"
)

// checkCommand creates the check command for validating scene integrity.
func (c *CLI) checkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check [file]",
		Short: "Validate hierarchy integrity without modifying the scene",
		Long: `Check loads a scene file and runs the full integrity sweep: dangling
parent links, leaf objects claiming children, cycles in the parent chain,
and asymmetric parent/child bookkeeping. Every violation is reported; the
scene is never repaired or written back.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			s, err := snapshot.ReadSceneFile(args[0])
			if err != nil {
				// Load already validates; a failure here is itself the report.
				printError("%s [%s]", err, apperrors.Classify(err))
				return err
			}
			logger.Debugf("Loaded scene: %d objects", s.Count())
			c.recordSession(cmd.Context(), args[0], s.Count())

			if err := s.Validate(); err != nil {
				for _, issue := range unwrapJoined(err) {
					printError("%s", issue)
				}
				return fmt.Errorf("scene failed validation")
			}

			printSuccess("Scene is valid")
			printStats(s.Count(), countContainers(s), false)
			return nil
		},
	}
}

// unwrapJoined flattens an errors.Join result into individual issues.
func unwrapJoined(err error) []error {
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		return joined.Unwrap()
	}
	return []error{err}
}
