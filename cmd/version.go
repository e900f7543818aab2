package cmd

import (
	"fmt"
	"strings"

	"github.com/zachlandes/2ml-crm/internal/app"

	"github.com/spf13/cobra"
	"golang.org/x/mod/semver"
)

// canonicalVersion adds the "v" prefix semver expects
func canonicalVersion(v string) string {
	v = strings.TrimSpace(v)
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}

// compareVersion reports how the running build relates to other
func compareVersion(current, other string) (string, error) {
	a, b := canonicalVersion(current), canonicalVersion(other)
	if !semver.IsValid(b) {
		return "", fmt.Errorf("invalid version %q", other)
	}
	switch semver.Compare(a, b) {
	case -1:
		return fmt.Sprintf("%s is older than %s", a, b), nil
	case 1:
		return fmt.Sprintf("%s is newer than %s", a, b), nil
	}
	return fmt.Sprintf("%s is up to date", a), nil
}

func init() {
	var check string

	versionCmd := &cobra.Command{
		Use:   "version [--check version]",
		Short: "Print out version info and exit. // 打印版本信息并退出。",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("%s v%s ( Git:%s ) BuildTime:%s\n", app.Name, app.Version, app.GitTag, app.BuildTime)
			if check == "" {
				return nil
			}
			msg, err := compareVersion(app.Version, check)
			if err != nil {
				return err
			}
			fmt.Println(msg)
			return nil
		},
	}
	versionCmd.Flags().StringVar(&check, "check", "", "compare the build against a release version")

	rootCmd.AddCommand(versionCmd)
}
