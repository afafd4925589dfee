package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/joeydtaylor/steeze-dispatch/pkg/dispatchfx"
	"go.uber.org/fx"
)

func add(x, y int, out *int) { *out = x + y }

func inc(y *int) { *y += 1 }

func main() {
	var out error
	app := fx.New(
		fx.NopLogger,
		dispatchfx.Module(dispatchfx.WithService("dispatch-demo")),
		fx.Invoke(func(reg *dispatchfx.Registry) { out = run(reg, os.Stdout) }),
	)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := app.Start(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	_ = app.Stop(ctx)
	if out != nil {
		fmt.Fprintln(os.Stderr, out)
		os.Exit(1)
	}
}

// run registers the sample handlers and dispatches the sample calls.
func run(reg *dispatchfx.Registry, w io.Writer) error {
	if _, err := reg.Register("add", add); err != nil {
		return err
	}
	if _, err := reg.Register("inc", inc); err != nil {
		return err
	}

	z := 0
	for _, call := range []struct {
		key  string
		args []any
	}{
		{"add", []any{100, 200, &z}},
		{"inc", []any{&z}},
		{"missing", []any{&z}},
	} {
		res := reg.Dispatch(call.key, call.args...)
		fmt.Fprintf(w, "%s: %s\n", call.key, res)
	}
	fmt.Fprintf(w, "z=%d\n", z)
	return nil
}
