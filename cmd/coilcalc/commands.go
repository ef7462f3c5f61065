package main

import (
	"encoding/json"
	"fmt"
	"io"

	coil "Coil/internal/calc/coil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
)

var Version = "0.1.0"

func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "coilcalc",
		Short: "Retention coil sizing",
		Long: `coilcalc sizes a serpentine retention pipe for a target residence time
and reports its length, layout and Darcy-Weisbach pressure drop.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newCalcCommand(), newFluidsCommand())
	return root
}

type calcFlags struct {
	in     coil.Input
	fluid  string
	pipe   string
	noIO   bool
	output string
}

func newCalcCommand() *cobra.Command {
	var f calcFlags
	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Calculate one operating point",
		RunE: func(cmd *cobra.Command, _ []string) error {
			in := f.in
			if f.fluid != "" {
				fluid, ok := coil.LookupFluid(f.fluid)
				if !ok {
					return fmt.Errorf("unknown fluid %q (see `coilcalc fluids`)", f.fluid)
				}
				in = in.WithFluid(fluid)
				// explicit flags win over the preset
				if cmd.Flags().Changed("density") {
					in.DensityKgM3 = f.in.DensityKgM3
				}
				if cmd.Flags().Changed("viscosity") {
					in.ViscosityMPaS = f.in.ViscosityMPaS
				}
			}
			if f.pipe != "" {
				p, ok := coil.LookupPipe(f.pipe)
				if !ok {
					return fmt.Errorf("unknown pipe %q (see `coilcalc fluids`)", f.pipe)
				}
				if !cmd.Flags().Changed("roughness") {
					in = in.WithPipe(p)
				}
			}
			in.IncludeInletOutletLoss = !f.noIO

			res, err := coil.DefaultLimits.CalculateChecked(in)
			if err != nil {
				return err
			}
			if f.output == "json" {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}
			renderResult(cmd.OutOrStdout(), res)
			return nil
		},
	}

	fl := cmd.Flags()
	fl.Float64Var(&f.in.FlowM3H, "flow", 5.0, "flow Q [m³/h]")
	fl.Float64Var(&f.in.RetentionTimeS, "retention", 60.0, "target retention time t [s]")
	fl.Float64Var(&f.in.DiameterMM, "diameter", 25.0, "inner diameter D [mm]")
	fl.Float64Var(&f.in.RoughnessMM, "roughness", 0.0015, "wall roughness ε [mm]")
	fl.Float64Var(&f.in.DensityKgM3, "density", 998.0, "density ρ [kg/m³]")
	fl.Float64Var(&f.in.ViscosityMPaS, "viscosity", 1.0, "dynamic viscosity μ [mPa·s]")
	fl.Float64Var(&f.in.StraightSegmentM, "segment", 2.0, "straight segment length between U-turns [m]")
	fl.Float64Var(&f.in.ElbowKFactor, "elbow-k", 0.9, "local loss coefficient of one 90° elbow")
	fl.BoolVar(&f.noIO, "no-inlet-outlet", false, "exclude the inlet/outlet loss (K=1.5)")
	fl.StringVar(&f.fluid, "fluid", "", "fluid preset for density and viscosity")
	fl.StringVar(&f.pipe, "pipe", "", "pipe preset for roughness")
	fl.StringVarP(&f.output, "output", "o", "table", "output format (table|json)")

	_ = cmd.RegisterFlagCompletionFunc("fluid", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		var names []string
		for _, fluid := range coil.Fluids() {
			names = append(names, fluid.Name)
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

func newFluidsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "fluids",
		Short: "List fluid and pipe presets",
		Run: func(cmd *cobra.Command, _ []string) {
			w := cmd.OutOrStdout()
			t := newTable(w)
			t.AppendHeader(table.Row{"Fluid", "Description", "ρ [kg/m³]", "μ [mPa·s]"})
			for _, f := range coil.Fluids() {
				t.AppendRow(table.Row{f.Name, f.Label, f.DensityKgM3, fmt.Sprintf("%.2f", f.ViscosityMPaS)})
			}
			t.Render()

			t = newTable(w)
			t.AppendHeader(table.Row{"Pipe", "Description", "ε [mm]"})
			for _, p := range coil.Pipes() {
				t.AppendRow(table.Row{p.Name, p.Label, p.RoughnessMM})
			}
			t.Render()
		},
	}
}

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	return t
}

func renderResult(w io.Writer, r coil.Result) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Quantity", "Value", "Unit"})
	t.AppendRows([]table.Row{
		{"Pipe length L", fmt.Sprintf("%.2f", r.LengthM), "m"},
		{"Required volume V", fmt.Sprintf("%.5f", r.RequiredVolumeM3), "m³"},
		{"Straight segments", r.NStraights, ""},
		{"U-turns", r.NUturns, ""},
		{"90° elbows", r.Elbows90, ""},
		{"Total local coefficient ΣK", fmt.Sprintf("%.2f", r.KTotal), ""},
	})
	t.AppendSeparator()
	t.AppendRows([]table.Row{
		{"Velocity v", fmt.Sprintf("%.3f", r.Velocity), "m/s"},
		{"Reynolds Re", fmt.Sprintf("%.0f (%s)", r.Re, r.Regime), ""},
		{"Friction factor f", fmt.Sprintf("%.4f", r.F), ""},
	})
	t.AppendSeparator()
	t.AppendRows([]table.Row{
		{"Distributed pressure drop", fmt.Sprintf("%.2f", r.DpDistributedPa/1000.0), "kPa"},
		{"Local pressure drop", fmt.Sprintf("%.2f", r.DpLocalPa/1000.0), "kPa"},
		{"Total pressure drop", fmt.Sprintf("%.2f", r.DpTotalPa/1000.0), "kPa"},
	})
	t.SetColumnConfigs([]table.ColumnConfig{{Number: 2, Align: text.AlignRight}})
	t.Render()
}
