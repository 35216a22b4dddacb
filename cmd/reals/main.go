// Command reals is a thin demonstration CLI over the real package, carried
// the way ivy.go is a thin driver over parse/exec/value. It never
// implements arithmetic itself — only argument parsing, formatting, and the
// top-level panic recovery boundary.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/worldsender/reals/config"
	"github.com/worldsender/reals/lft"
	"github.com/worldsender/reals/real"
)

var cfg config.Config

func main() {
	defer glog.Flush()

	app := cli.NewApp()
	app.Name = "reals"
	app.Usage = "exact real arithmetic over LFT digit streams"
	app.Flags = []cli.Flag{
		cli.IntFlag{
			Name:  "precision, p",
			Value: config.DefaultPrecision,
			Usage: "number of engine digits to consume before formatting",
		},
		cli.BoolFlag{
			Name:  "hex",
			Usage: "format in hexadecimal instead of decimal",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "const",
			Usage:     "print one of the named catalog constants: zero, one, pi, log2",
			ArgsUsage: "<name>",
			Action:    runConst,
		},
		{
			Name:      "fraction",
			Usage:     "print the real number p/q",
			ArgsUsage: "<p> <q>",
			Action:    runFraction,
		},
		{
			Name:      "square",
			Usage:     "print (p/q) * (p/q), demonstrating BinaryOp(Mul)",
			ArgsUsage: "<p> <q>",
			Action:    runSquare,
		},
	}

	if err := runGuarded(func() error { return app.Run(os.Args) }); err != nil {
		fmt.Fprintf(os.Stderr, "reals: %s\n", err)
		os.Exit(1)
	}
}

// runGuarded mirrors ivy's run.go recover-over-typed-error pattern
// (robpike-ivy/ivy.go's run function): *lft.InvariantViolation signals a
// bug in this program or in a hand-written operator, so it is recovered
// only long enough to print a diagnostic before exiting — never to
// continue execution. Any other panic is not ours to interpret and
// propagates.
func runGuarded(f func() error) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		iv, ok := r.(*lft.InvariantViolation)
		if !ok {
			panic(r)
		}
		err = errors.Wrap(iv, "invariant violation")
	}()
	return f()
}

func setPrecisionFromFlags(c *cli.Context) {
	cfg.SetPrecision(c.GlobalInt("precision"))
	glog.V(1).Infof("precision set to %d engine digits", cfg.Precision())
}

func render(c *cli.Context, r real.Real) (string, error) {
	if c.GlobalBool("hex") {
		glog.V(1).Infof("rendering in hexadecimal, %d hex digits", cfg.Precision()*config.Exponent/4)
		return real.FormatHex(r, cfg.Precision()*config.Exponent/4)
	}
	return real.Format(r, &cfg), nil
}

func runConst(c *cli.Context) error {
	setPrecisionFromFlags(c)
	if c.NArg() != 1 {
		return cli.NewExitError("const requires exactly one name: zero, one, pi, log2", 2)
	}
	var r real.Real
	switch name := c.Args().Get(0); name {
	case "zero":
		r = real.Zero
	case "one":
		r = real.One
	case "pi":
		r = real.PiMinus3
	case "log2":
		r = real.Log2
	default:
		return cli.NewExitError(fmt.Sprintf("unknown constant %q", name), 2)
	}
	s, err := render(c, r)
	if err != nil {
		return errors.Wrap(err, "reals const")
	}
	fmt.Println(s)
	return nil
}

func parseFractionArgs(c *cli.Context) (p, q int64, err error) {
	if c.NArg() != 2 {
		return 0, 0, cli.NewExitError("expected <p> <q>", 2)
	}
	p, err = strconv.ParseInt(c.Args().Get(0), 10, 64)
	if err != nil {
		return 0, 0, errors.Wrapf(err, "parsing numerator %q", c.Args().Get(0))
	}
	q, err = strconv.ParseInt(c.Args().Get(1), 10, 64)
	if err != nil {
		return 0, 0, errors.Wrapf(err, "parsing denominator %q", c.Args().Get(1))
	}
	return p, q, nil
}

func runFraction(c *cli.Context) error {
	setPrecisionFromFlags(c)
	p, q, err := parseFractionArgs(c)
	if err != nil {
		return err
	}
	r, err := real.FromFraction(p, q)
	if err != nil {
		return errors.Wrap(err, "reals fraction")
	}
	s, err := render(c, r)
	if err != nil {
		return errors.Wrap(err, "reals fraction")
	}
	fmt.Println(s)
	return nil
}

func runSquare(c *cli.Context) error {
	setPrecisionFromFlags(c)
	p, q, err := parseFractionArgs(c)
	if err != nil {
		return err
	}
	r, err := real.FromFraction(p, q)
	if err != nil {
		return errors.Wrap(err, "reals square")
	}
	squared := real.Mul.Apply(r, r)
	glog.V(1).Infof("applying BinaryOp(Mul) to %d/%d twice", p, q)
	s, err := render(c, squared)
	if err != nil {
		return errors.Wrap(err, "reals square")
	}
	fmt.Println(s)
	return nil
}
