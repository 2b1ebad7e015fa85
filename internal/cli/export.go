package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/ariel-frischer/historian/internal/changelog"
	clierrors "github.com/ariel-frischer/historian/internal/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// exportDocument is the structured form of a changelog.
type exportDocument struct {
	File        string              `yaml:"file" json:"file"`
	Current     changelog.Version   `yaml:"current" json:"current"`
	Next        changelog.Version   `yaml:"next" json:"next"`
	ReleaseName string              `yaml:"release_name,omitempty" json:"release_name,omitempty"`
	Pending     changelog.ChangeSet `yaml:"pending" json:"pending"`
	Releases    []changelog.Release `yaml:"releases" json:"releases"`
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Dump the changelog as YAML or JSON",
	Long: `Write the whole changelog as a structured document: current and next
version, pending changes and every release with its changes.`,
	Example: `  historian export
  historian export --format json | jq '.releases[0]'`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.GroupID = GroupInspect
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringP("format", "o", "yaml", "Output format: yaml or json")
}

func runExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	format = strings.ToLower(format)
	if format != "yaml" && format != "json" {
		return clierrors.NewArgumentError(fmt.Sprintf("unknown export format %q", format), "Use --format yaml or --format json")
	}

	s, err := openSession(cmd, false)
	if err != nil {
		return err
	}
	defer s.close()

	doc, err := buildExport(s)
	if err != nil {
		return s.wrap(err)
	}
	return writeExport(cmd.OutOrStdout(), format, doc)
}

func buildExport(s *session) (*exportDocument, error) {
	doc := &exportDocument{File: s.cfg.File}

	var err error
	if doc.Current, err = s.engine.CurrentVersion(); err != nil {
		return nil, err
	}
	if doc.Next, err = s.engine.NextVersion(); err != nil {
		return nil, err
	}
	if doc.ReleaseName, _, err = s.engine.CurrentReleaseName(); err != nil {
		return nil, err
	}
	if doc.Pending, err = s.engine.Changes(); err != nil {
		return nil, err
	}

	history, err := s.engine.History()
	if err != nil {
		return nil, err
	}
	doc.Releases = history.Releases
	if doc.Releases == nil {
		doc.Releases = []changelog.Release{}
	}
	return doc, nil
}

func writeExport(w io.Writer, format string, doc *exportDocument) error {
	if format == "json" {
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding JSON: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}
	return enc.Close()
}
