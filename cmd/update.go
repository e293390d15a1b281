package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

// NewUpdateCommand creates the update command.
func NewUpdateCommand(currentVersion string) *cobra.Command {
	return &cobra.Command{
		Use:   "update",
		Short: "Check whether a newer Scribe release is published",
		Long: `Check the Scribe update feed for the latest published desktop release
and compare it against the version this CLI impersonates.

A newer published version means the identity headers may soon be rejected;
rebuild against a current release when that happens.

Examples:
  scribe update`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpdateCheck(cmd, currentVersion)
		},
	}
}

func runUpdateCheck(cmd *cobra.Command, currentVersion string) error {
	cfg, err := loadCLIConfig()
	if err != nil {
		return err
	}

	c := apiClient(cfg)
	info, err := c.CheckForUpdate(cmd.Context())
	if err != nil {
		return fmt.Errorf("checking update feed: %w", err)
	}

	result := struct {
		Current string `json:"current" yaml:"current"`
		Latest  string `json:"latest" yaml:"latest"`
		Newer   bool   `json:"update_available" yaml:"update_available"`
	}{
		Current: currentVersion,
		Latest:  info.Version,
		Newer:   isNewerVersion(currentVersion, info.Version),
	}

	return output(cmd.OutOrStdout(), cfg, result, func(w io.Writer) error {
		fmt.Fprintf(w, "Current version: %s\n", result.Current)
		fmt.Fprintf(w, "Latest release:  %s", result.Latest)
		if info.ReleaseDate != "" {
			fmt.Fprintf(w, " (%s)", info.ReleaseDate)
		}
		fmt.Fprintln(w)
		if result.Newer {
			fmt.Fprintln(w, "A newer release is published.")
		} else {
			fmt.Fprintln(w, "Up to date.")
		}
		return nil
	})
}

// isNewerVersion reports whether latest is strictly newer than current,
// comparing dotted numeric components. Non-numeric components compare
// lexically.
func isNewerVersion(current, latest string) bool {
	current = strings.TrimPrefix(current, "v")
	latest = strings.TrimPrefix(latest, "v")
	if current == "" || latest == "" {
		return false
	}

	cur := strings.Split(current, ".")
	lat := strings.Split(latest, ".")
	for i := 0; i < len(cur) || i < len(lat); i++ {
		cv, lv := "0", "0"
		if i < len(cur) {
			cv = cur[i]
		}
		if i < len(lat) {
			lv = lat[i]
		}
		cn, cErr := strconv.Atoi(cv)
		ln, lErr := strconv.Atoi(lv)
		if cErr != nil || lErr != nil {
			if cv != lv {
				return lv > cv
			}
			continue
		}
		if cn != ln {
			return ln > cn
		}
	}
	return false
}
