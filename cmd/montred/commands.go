package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/KarpelesLab/montgomery"
	"github.com/KarpelesLab/montgomery/internal/sweep"
)

func parseInt(s string, bitSize int) (int64, error) {
	v, err := strconv.ParseInt(strings.ReplaceAll(s, "_", ""), 0, bitSize)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid %d-bit integer %q", bitSize, s)
	}
	return v, nil
}

// parseArgs parses every positional argument as a bitSize-bit integer.
// want is the exact number of arguments expected, or 0 for one or more.
func parseArgs(c *cli.Context, bitSize, want int) ([]int64, error) {
	args := c.Args().Slice()
	switch {
	case want == 0 && len(args) == 0:
		return nil, errors.Errorf("%s: at least one argument required", c.Command.Name)
	case want > 0 && len(args) != want:
		return nil, errors.Errorf("%s: expected %d arguments, got %d", c.Command.Name, want, len(args))
	}
	values := make([]int64, len(args))
	for i, s := range args {
		v, err := parseInt(s, bitSize)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}

func reduceCommand(c *cli.Context) error {
	log := createLogger(c)
	values, err := parseArgs(c, 32, 0)
	if err != nil {
		return err
	}
	for _, a := range values {
		if a <= -montgomery.MaxInput || a >= montgomery.MaxInput {
			log.Warn().Int64("a", a).Msg("input outside (-q*2^15, q*2^15), result may leave (-q, q)")
		}
		fmt.Fprintln(c.App.Writer, montgomery.Reduce(int32(a)))
	}
	return nil
}

func toMontCommand(c *cli.Context) error {
	values, err := parseArgs(c, 16, 0)
	if err != nil {
		return err
	}
	for _, a := range values {
		fmt.Fprintln(c.App.Writer, montgomery.ToMontgomery(int16(a)))
	}
	return nil
}

func fromMontCommand(c *cli.Context) error {
	values, err := parseArgs(c, 16, 0)
	if err != nil {
		return err
	}
	for _, x := range values {
		fmt.Fprintln(c.App.Writer, montgomery.FromMontgomery(int16(x)))
	}
	return nil
}

func mulCommand(c *cli.Context) error {
	values, err := parseArgs(c, 16, 2)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, montgomery.Mul(int16(values[0]), int16(values[1])))
	return nil
}

func fieldMulCommand(c *cli.Context) error {
	log := createLogger(c)
	values, err := parseArgs(c, 16, 2)
	if err != nil {
		return err
	}
	for _, x := range values {
		if x <= -montgomery.Q || x >= montgomery.Q {
			log.Warn().Int64("x", x).Msg("operand outside (-q, q), result may leave (-q, q)")
		}
	}
	fmt.Fprintln(c.App.Writer, montgomery.FieldMul(int16(values[0]), int16(values[1])))
	return nil
}

func traceCommand(c *cli.Context) error {
	values, err := parseArgs(c, 32, 1)
	if err != nil {
		return err
	}
	fmt.Fprint(c.App.Writer, montgomery.ReduceSteps(int32(values[0])))
	return nil
}

func paramsCommand(c *cli.Context) error {
	w := c.App.Writer
	fmt.Fprintf(w, "Q        = %d\n", montgomery.Q)
	fmt.Fprintf(w, "R        = %d (2^%d)\n", montgomery.R, montgomery.LogR)
	fmt.Fprintf(w, "QInv     = %d (Q*QInv = 1 mod R)\n", montgomery.QInv)
	fmt.Fprintf(w, "RSquared = %d (R^2 mod Q)\n", montgomery.RSquared)
	fmt.Fprintf(w, "Mont     = %d (R mod Q)\n", montgomery.Mont)
	fmt.Fprintf(w, "MaxInput = %d (Q*2^%d)\n", montgomery.MaxInput, montgomery.LogR-1)
	return nil
}

type sweepFunc func(context.Context, sweep.Config) (sweep.Report, error)

var sweeps = map[string]sweepFunc{
	sweep.OpReduce:    sweep.Reduce,
	sweep.OpMul:       sweep.Mul,
	sweep.OpRoundTrip: sweep.RoundTrip,
}

func verifyCommand(c *cli.Context) error {
	log := createLogger(c)

	ops := []string{sweep.OpReduce, sweep.OpMul, sweep.OpRoundTrip}
	if op := c.String(Op); op != "all" {
		if _, ok := sweeps[op]; !ok {
			return errors.Errorf("unknown --%s %q", Op, op)
		}
		ops = []string{op}
	}
	if len(ops) > 1 && (c.IsSet(Lo) || c.IsSet(Hi)) {
		return errors.Errorf("--%s and --%s require a single --%s", Lo, Hi, Op)
	}

	for _, op := range ops {
		lo, hi, err := sweep.DefaultRange(op)
		if err != nil {
			return err
		}
		if c.IsSet(Lo) {
			lo = c.Int64(Lo)
		}
		if c.IsSet(Hi) {
			hi = c.Int64(Hi)
		}

		log.Info().Str("op", op).Int64("lo", lo).Int64("hi", hi).Msg("starting sweep")
		report, err := sweeps[op](c.Context, sweep.Config{
			Lo:      lo,
			Hi:      hi,
			Workers: c.Int(Workers),
			Log:     log,
		})
		if err != nil {
			log.Error().Err(err).Str("op", op).Msg("sweep failed")
			return err
		}
		fmt.Fprintf(c.App.Writer, "%s ok: %d checks over [%d, %d) in %s\n",
			report.Op, report.Checked, report.Lo, report.Hi, report.Elapsed)
	}
	return nil
}
