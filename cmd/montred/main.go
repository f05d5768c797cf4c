// Command montred evaluates and verifies Montgomery arithmetic modulo 3329.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

var (
	Version   = "DEV"
	BuildTime = "unknown"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "montred:", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	app := &cli.App{}
	app.Name = "montred"
	app.Usage = "Montgomery reduction and multiplication modulo q = 3329, R = 2^16"
	app.UsageText = "montred [global options] command [arguments...]"
	app.Version = fmt.Sprintf("%s (built %s)", Version, BuildTime)
	app.Description = `Integer arguments accept a sign, the 0x, 0o and 0b prefixes and _ separators.
	Put -- before negative arguments so they are not read as flags:

	    montred reduce -- -65536 12345678

	Results are written to stdout, one per line; logs go to stderr.`
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    LogLevel,
			Value:   "info",
			Usage:   "Application logging level {debug, info, warn, error}",
			EnvVars: []string{"MONTRED_LOGLEVEL"},
		},
		&cli.StringFlag{
			Name:    LogFormat,
			Value:   LogFormatDefault,
			Usage:   "Log output format {default, json}",
			EnvVars: []string{"MONTRED_LOG_FORMAT"},
		},
	}
	app.Commands = commands()
	return app
}

func commands() []*cli.Command {
	return []*cli.Command{
		{
			Name:      "reduce",
			Action:    reduceCommand,
			Usage:     "Montgomery-reduce each 32-bit input to a*R^-1 mod q in (-q, q)",
			ArgsUsage: "A...",
		},
		{
			Name:      "tomont",
			Action:    toMontCommand,
			Usage:     "Convert each 16-bit input to Montgomery form a*R mod q",
			ArgsUsage: "A...",
		},
		{
			Name:      "frommont",
			Action:    fromMontCommand,
			Usage:     "Convert each Montgomery-form input back to [0, q)",
			ArgsUsage: "X...",
		},
		{
			Name:      "mul",
			Action:    mulCommand,
			Usage:     "Multiply two ordinary residues, result in [0, q)",
			ArgsUsage: "A B",
		},
		{
			Name:      "fieldmul",
			Action:    fieldMulCommand,
			Usage:     "Multiply two Montgomery-form residues, result in Montgomery form",
			ArgsUsage: "X Y",
		},
		{
			Name:      "trace",
			Action:    traceCommand,
			Usage:     "Print every intermediate value of one reduction",
			ArgsUsage: "A",
		},
		{
			Name:   "params",
			Action: paramsCommand,
			Usage:  "Print the modulus, radix and derived constants",
		},
		{
			Name:   "verify",
			Action: verifyCommand,
			Usage:  "Exhaustively check the arithmetic over a range of inputs",
			Description: `Runs one or all of the sweeps:
  reduce     (Reduce(a)*R) mod q == a mod q, and Reduce(a) in (-q, q) for |a| < q*2^15
  mul        Mul(a, b) == a*b mod q for every b in [0, q)
  roundtrip  FromMontgomery(ToMontgomery(a)) == a mod q
Without --lo/--hi each sweep covers its full supported domain.`,
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    Op,
					Value:   "all",
					Usage:   "Sweep to run {reduce, mul, roundtrip, all}",
					EnvVars: []string{"MONTRED_OP"},
				},
				&cli.Int64Flag{
					Name:  Lo,
					Usage: "First input of the range (inclusive)",
				},
				&cli.Int64Flag{
					Name:  Hi,
					Usage: "End of the range (exclusive)",
				},
				&cli.IntFlag{
					Name:    Workers,
					Usage:   "Number of goroutines, 0 for GOMAXPROCS",
					EnvVars: []string{"MONTRED_WORKERS"},
				},
			},
		},
	}
}
