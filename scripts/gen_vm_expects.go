// Command gen_vm_expects generates composable expectation wrappers, like
// expectVMOutput, from the vmTestCase.expect* builder methods in a test file.
//
// Usage: go run scripts/gen_vm_expects.go -- [IN [OUT]]
package main

import (
	"bufio"
	"bytes"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"regexp"
	"time"

	"golang.org/x/net/context"
	"golang.org/x/sync/errgroup"
)

type namedReader interface {
	io.ReadCloser
	Name() string
}

var (
	in  namedReader    = os.Stdin
	out io.WriteCloser = os.Stdout
)

func parseFlags() {
	flag.Parse()

	args := flag.Args()
	if len(args) > 0 {
		f, err := os.Open(args[0])
		if err != nil {
			log.Fatalf("failed to open %v: %v", args[0], err)
		}
		in = f
		args = args[1:]
	}
	if len(args) > 0 {
		f, err := os.Create(args[0])
		if err != nil {
			log.Fatalf("failed to create %v: %v", args[0], err)
		}
		out = f
	}
}

func main() {
	parseFlags()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	eg, ctx := errgroup.WithContext(ctx)
	ready := make(chan struct{})

	// generated code is piped through gofmt on its way out
	eg.Go(func() error {
		gofmt := exec.CommandContext(ctx, "gofmt")
		fmtPipe, err := gofmt.StdinPipe()
		if err != nil {
			return err
		}
		defer out.Close()
		gofmt.Stdout = out
		gofmt.Stderr = os.Stderr
		out = fmtPipe
		close(ready)
		if err := gofmt.Run(); err != nil {
			return fmt.Errorf("gofmt failed: %w", err)
		}
		return nil
	})

	eg.Go(func() (rerr error) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ready:
		}
		defer func() {
			if cerr := in.Close(); rerr == nil {
				rerr = cerr
			}
			if cerr := out.Close(); rerr == nil {
				rerr = cerr
			}
		}()
		return generate(ctx, in, out)
	})

	if err := eg.Wait(); err != nil {
		log.Fatalln(err)
	}
}

var expectMethod = regexp.MustCompile(`^func \(vmt vmTestCase\) expect(\w+)\((.+)\) vmTestCase {$`)

func generate(ctx context.Context, in namedReader, out io.Writer) error {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "package main\n\n// @generated from %v\n\n", in.Name())
	if args := flag.Args(); len(args) >= 2 {
		fmt.Fprintf(&buf, "//go:generate go run scripts/gen_vm_expects.go --")
		for _, arg := range args {
			fmt.Fprintf(&buf, " %v", arg)
		}
		buf.WriteString("\n\n")
	}

	sc := bufio.NewScanner(in)
	for sc.Scan() {
		if match := expectMethod.FindSubmatch(sc.Bytes()); match != nil {
			what, params := match[1], match[2]
			fmt.Fprintf(&buf, "func expectVM%s(%s) func(vmTestCase) vmTestCase {\n", what, params)
			fmt.Fprintf(&buf, "return func(vmt vmTestCase) vmTestCase {\n")
			fmt.Fprintf(&buf, "return vmt.expect%s(%s)\n", what, callArgs(params))
			fmt.Fprintf(&buf, "}\n}\n\n")
		}
		if buf.Len() > 0 {
			if _, err := buf.WriteTo(out); err != nil {
				return err
			}
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	return sc.Err()
}

// callArgs turns a parameter list like "name string, values ...interface{}"
// into the matching argument list "name, values...".
func callArgs(params []byte) []byte {
	var args bytes.Buffer
	for i, param := range bytes.Split(params, []byte(",")) {
		if i > 0 {
			args.WriteString(", ")
		}
		fields := bytes.Fields(param)
		args.Write(fields[0])
		if len(fields) > 1 && bytes.HasPrefix(fields[1], []byte("...")) {
			args.WriteString("...")
		}
	}
	return args.Bytes()
}
