// Command girdump lowers built-in demo shaders and prints the resulting
// graphics IR.
//
// The demo shaders are hand-assembled hlir modules covering the engine's
// surface: stage I/O, resource binding, constant-buffer fetch, sampling,
// and control flow. girdump exists so the full lowering pipeline can be
// exercised without a bitcode reader.
//
//	girdump list
//	girdump dump sample-tex2d
package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	dxilspirv "github.com/pixelcluster/dxil-spirv"
	"github.com/pixelcluster/dxil-spirv/gir"
)

var rootCmd = &cobra.Command{
	Use:   "girdump",
	Short: "Lower demo shaders and dump the produced graphics IR",
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List built-in demo shaders",
	Run: func(cmd *cobra.Command, args []string) {
		bold := color.New(color.Bold)
		for _, s := range scenarios {
			bold.Printf("%-16s", s.name)
			fmt.Println(s.description)
		}
	},
}

var dumpCmd = &cobra.Command{
	Use:   "dump <scenario>",
	Short: "Lower one demo shader and print module and CFG streams",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s := findScenario(args[0])
		if s == nil {
			return fmt.Errorf("unknown scenario %q (try \"girdump list\")", args[0])
		}

		builder := gir.NewBuilder()
		result, err := dxilspirv.Convert(s.build(), builder)
		if err != nil {
			return err
		}

		header := color.New(color.FgCyan, color.Bold)
		warn := color.New(color.FgYellow)

		header.Println("; module")
		var buf bytes.Buffer
		gir.DumpModule(&buf, builder)
		os.Stdout.Write(buf.Bytes())

		header.Println("; function")
		buf.Reset()
		gir.DumpFunction(&buf, result.Function)
		os.Stdout.Write(buf.Bytes())

		for _, d := range result.Diagnostics {
			warn.Printf("; diagnostic: %s\n", d.Msg)
		}
		return nil
	},
}

func main() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(dumpCmd)
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	cobra.OnInitialize(func() {
		switch mode, _ := rootCmd.PersistentFlags().GetString("color"); mode {
		case "on":
			color.NoColor = false
		case "off":
			color.NoColor = true
		}
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
