package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/gedtools/gedserve/internal/familylink"
	"github.com/gedtools/gedserve/internal/gedcom"
	"github.com/gedtools/gedserve/internal/parser"
	"github.com/gedtools/gedserve/internal/stats"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// loadDocument parses the file honoring the --strict flag. In lenient
// mode warnings go to stderr.
func loadDocument(path string) (*gedcom.Document, error) {
	if flagStrict {
		return parser.StrictParse(path)
	}
	doc, warnings, err := parser.ParseFile(path)
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		fmt.Fprintln(os.Stderr, "warning:", w.Warning())
	}
	return doc, nil
}

func writeYAML(v any) error {
	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(v)
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats FILE",
		Short: "Print document statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadDocument(args[0])
			if err != nil {
				return err
			}
			snap := stats.Compute(doc)
			if flagFormat == "yaml" {
				return writeYAML(snap)
			}
			fmt.Printf("records:       %d\n", snap.Records)
			fmt.Printf("individuals:   %d\n", snap.Individuals)
			fmt.Printf("families:      %d\n", snap.Families)
			fmt.Printf("max depth:     %d\n", snap.MaxDepth)
			if snap.Individuals > 0 {
				fmt.Printf("lines / indi:  %.1f\n", snap.AvgLinesPerIndi)
			}
			if snap.EarliestBirth != 0 {
				fmt.Printf("births:        %d - %d\n", snap.EarliestBirth, snap.LatestBirth)
			}
			for i, sc := range snap.Surnames {
				if i == 10 {
					fmt.Printf("  ... %d more surnames\n", len(snap.Surnames)-i)
					break
				}
				fmt.Printf("  %-20s %d\n", sc.Surname, sc.Count)
			}
			return nil
		},
	}
}

func newRenderCmd() *cobra.Command {
	var xref string
	cmd := &cobra.Command{
		Use:   "render FILE",
		Short: "Re-render the parsed document as GEDCOM text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadDocument(args[0])
			if err != nil {
				return err
			}
			if xref != "" {
				rec := doc.Record(xref)
				if !rec.Exists() {
					return fmt.Errorf("record %s not found", xref)
				}
				return rec.WriteSource(os.Stdout)
			}
			return doc.WriteSource(os.Stdout)
		},
	}
	cmd.Flags().StringVar(&xref, "xref", "", "render a single record")
	return cmd
}

// personOut is one individual in relatives/degree output.
type personOut struct {
	XRef string `yaml:"xref"`
	Name string `yaml:"name,omitempty"`
	Birt string `yaml:"birth,omitempty"`
}

func printPersons(doc *gedcom.Document, refs []string) error {
	persons := make([]personOut, 0, len(refs))
	for _, ref := range refs {
		rec := doc.Record(ref)
		p := personOut{XRef: ref}
		if rec.Exists() {
			p.Name = gedcom.FormatName(rec.SubPayload("NAME"))
			p.Birt = gedcom.FormatDate(rec.Sub("BIRT").SubPayload("DATE"))
		}
		persons = append(persons, p)
	}
	if flagFormat == "yaml" {
		return writeYAML(persons)
	}
	for _, p := range persons {
		line := p.XRef
		if p.Name != "" {
			line += "  " + p.Name
		}
		if p.Birt != "" {
			line += "  (" + p.Birt + ")"
		}
		fmt.Println(line)
	}
	return nil
}

func newRelativesCmd() *cobra.Command {
	var generations, collateral int
	cmd := &cobra.Command{
		Use:   "relatives FILE XREF",
		Short: "List relatives at a generation/collateral offset",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadDocument(args[0])
			if err != nil {
				return err
			}
			if !doc.Record(args[1]).Exists() {
				return fmt.Errorf("record %s not found", args[1])
			}
			links := familylink.New(doc)
			return printPersons(doc, links.RelativeRefs(args[1], generations, collateral))
		},
	}
	cmd.Flags().IntVar(&generations, "generations", 0, "generation offset, positive toward ancestors")
	cmd.Flags().IntVar(&collateral, "collateral", 0, "collateral offset, 1 for siblings, 2 for cousins")
	return cmd
}

func newDegreeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "degree FILE XREF N",
		Short: "List every relative at exactly degree N of kinship",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			degree, err := strconv.Atoi(args[2])
			if err != nil || degree < 0 {
				return fmt.Errorf("degree must be a non-negative integer, got %q", args[2])
			}
			doc, err := loadDocument(args[0])
			if err != nil {
				return err
			}
			if !doc.Record(args[1]).Exists() {
				return fmt.Errorf("record %s not found", args[1])
			}
			links := familylink.New(doc)
			return printPersons(doc, links.ByDegreeRefs(args[1], degree))
		},
	}
}
