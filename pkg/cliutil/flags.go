// Package cliutil provides the ambient CLI scaffolding used by
// cmd/coraline: an ArgSpec-style registry for
// documenting flags (grounded on the teacher's pkg/stdimg.CommandSpec and
// pkg/cli.MetaStore), .env config loading, version reporting and
// self-update wiring.
package cliutil

// ArgSpec describes one positional argument or flag for help/validation
// text, mirroring stdimg.ArgSpec.
type ArgSpec struct {
	Name        string
	Type        string // "int", "float", "string", "path"
	Required    bool
	Default     string
	Description string
}

// CommandSpec documents the coraline CLI's single command, mirroring
// stdimg.CommandSpec so help text and docs are generated the same way the
// teacher's image commands are.
type CommandSpec struct {
	Name        string
	Args        []ArgSpec
	Usage       string
	Description string
}

// RootCommand is the authoritative description of the coraline CLI
// invocation, per spec.md §6.
var RootCommand = CommandSpec{
	Name: "coraline",
	Args: []ArgSpec{
		{Name: "image", Type: "path", Required: true, Description: "input RGB image (PPM)"},
		{Name: "segm", Type: "path", Required: true, Description: "coarse segmentation mask (PPM)"},
		{Name: "label", Type: "path", Required: true, Description: "ground-truth label for diagnostics (PPM)"},
		{Name: "output", Type: "path", Required: true, Description: "input image with the refined contour drawn in white (PPM)"},
		{Name: "lambda", Type: "float", Required: false, Default: "0.1", Description: "color-model weight (-l)"},
		{Name: "conservative", Type: "float", Required: false, Default: "0.2", Description: "conservative pull-to-input strength (-c)"},
	},
	Usage:       "coraline <image.ppm> <segm.ppm> <label.ppm> <output.ppm> [-l lambda] [-c conservative]",
	Description: "Refine a coarse binary segmentation mask against image edges using a graph-cut or geodesic solver.",
}

// Usage renders a one-paragraph help string for spec, in the same
// plain-text style pkg/cli prints its command help.
func Usage(spec CommandSpec) string {
	out := spec.Usage + "\n\n" + spec.Description + "\n\nArguments:\n"
	for _, a := range spec.Args {
		req := "optional"
		if a.Required {
			req = "required"
		}
		out += "  " + a.Name + " (" + a.Type + ", " + req + ")"
		if a.Default != "" {
			out += " default=" + a.Default
		}
		out += ": " + a.Description + "\n"
	}
	return out
}
