package cmd

import (
	"github.com/Fontikcz12/quantizer/constants"
	"github.com/Fontikcz12/quantizer/model"
	"github.com/spf13/pflag"
)

type quantizeFlags struct {
	request  model.QuantizeRequest
	tieOrder string
}

func addQuantizeFlags(fs *pflag.FlagSet) *quantizeFlags {
	f := &quantizeFlags{request: constants.DefaultQuantizeRequest()}
	fs.Int64Var(&f.request.GridSize, "grid", f.request.GridSize, "grid size in ticks")
	fs.Int64Var(&f.request.StartTick, "start", f.request.StartTick, "tick the grid is anchored at")
	fs.StringVar(&f.request.Mode, "mode", f.request.Mode, "nearest, forward or backward")
	fs.Float64Var(&f.request.Strength, "strength", f.request.Strength, "quantize strength in percent")
	fs.Int64Var(&f.request.MinGap, "min-gap", f.request.MinGap, "minimum gap in ticks between notes, 0 disables overlap handling")
	fs.StringVar(&f.request.Overlap, "overlap", "adjacent", "overlap algorithm")
	fs.StringVar(&f.tieOrder, "tie-order", "stable", "ordering of same tick events: stable or off-before-on")
	return f
}
