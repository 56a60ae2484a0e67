package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/piyushjha0409/DockAI/internal/config"
	"github.com/piyushjha0409/DockAI/internal/domain/docking"
)

func newParseCmd() *cobra.Command {
	var (
		scorePath     string
		structurePath string
		output        string
		bondMin       float64
		bondMax       float64
	)

	cmd := &cobra.Command{
		Use:   "parse",
		Short: "Parse a score report and structure file into a dataset",
		Long:  "Parse runs the docking pipeline offline: it reads the two files, merges\nscores with poses, and prints the resulting dataset without touching any\nbacking service.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if output != "json" && output != "summary" {
				return fmt.Errorf("invalid output format %q (must be json or summary)", output)
			}

			scoreText, err := os.ReadFile(scorePath)
			if err != nil {
				return fmt.Errorf("failed to read score file: %w", err)
			}
			structureText, err := os.ReadFile(structurePath)
			if err != nil {
				return fmt.Errorf("failed to read structure file: %w", err)
			}

			data, err := docking.Parse(string(scoreText), string(structureText), docking.StructureOptions{
				BondMinDistance: bondMin,
				BondMaxDistance: bondMax,
			})
			if err != nil {
				return err
			}

			dto := data.ToDTO()
			if output == "json" {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(dto)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "models: %d\n", dto.Summary.ModelCount)
			fmt.Fprintf(out, "best binding affinity: %.2f kcal/mol\n", dto.Summary.BestBindingAffinity)
			for _, m := range dto.Models {
				affinity := "unscored"
				if m.BindingAffinity != nil {
					affinity = fmt.Sprintf("%.2f", *m.BindingAffinity)
				}
				fmt.Fprintf(out, "  model %d: affinity %s, %d atoms, %d bonds\n",
					m.ModelID, affinity, len(m.Atoms), len(m.Bonds))
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&scorePath, "scores", "s", "", "path to the score report (required)")
	f.StringVarP(&structurePath, "structure", "p", "", "path to the PDBQT/PDB structure file (required)")
	f.StringVarP(&output, "output", "o", "summary", "output format (json, summary)")
	f.Float64Var(&bondMin, "bond-min", config.DefaultBondMinDistance, "minimum bond-inference distance in Angstrom")
	f.Float64Var(&bondMax, "bond-max", config.DefaultBondMaxDistance, "maximum bond-inference distance in Angstrom")
	_ = cmd.MarkFlagRequired("scores")
	_ = cmd.MarkFlagRequired("structure")

	return cmd
}
