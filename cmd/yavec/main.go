// Command yavec loads a node graph fixture, parses and compiles it,
// and prints the resulting type or the diagnostics that blocked it.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mocabe-yave/yave/compiler"
	"github.com/mocabe-yave/yave/diagnostics"
	"github.com/mocabe-yave/yave/node"
	"github.com/mocabe-yave/yave/parser"
	"github.com/mocabe-yave/yave/uid"
)

var (
	verbose bool

	rootCmd = &cobra.Command{
		Use:   "yavec",
		Short: "Parse and compile a yave node graph fixture",
	}

	compileCmd = &cobra.Command{
		Use:   "compile [graph.json]",
		Short: "Parse and compile a graph fixture, printing its root type or diagnostics",
		Args:  cobra.ExactArgs(1),
		RunE:  runCompile,
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log at debug level")
	rootCmd.AddCommand(compileCmd)
}

func newLogger() zerolog.Logger {
	lvl := zerolog.InfoLevel
	if verbose {
		lvl = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(lvl).With().Timestamp().Logger()
}

// fixture is the on-disk JSON shape describing a graph of function
// calls to wire up, intended for small worked examples and tests, not
// as a serialization format for user-authored graphs (the editor owns
// that format; see spec §4 Non-goals).
type fixture struct {
	Functions []struct {
		Path    string   `json:"path"`
		Inputs  []string `json:"inputs"`
		Outputs []string `json:"outputs"`
	} `json:"functions"`
	Calls []struct {
		ID   string `json:"id"`
		Path string `json:"path"`
	} `json:"calls"`
	Connections []struct {
		SrcCall   string `json:"src_call"`
		SrcSocket string `json:"src_socket"`
		DstCall   string `json:"dst_call"`
		DstSocket string `json:"dst_socket"`
	} `json:"connections"`
	Root struct {
		Call   string `json:"call"`
		Socket string `json:"socket"`
	} `json:"root"`
}

func loadGraph(log zerolog.Logger, path string) (*node.Graph, uid.Handle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, uid.Zero, fmt.Errorf("reading fixture: %w", err)
	}
	var fx fixture
	if err := json.Unmarshal(data, &fx); err != nil {
		return nil, uid.Zero, fmt.Errorf("parsing fixture: %w", err)
	}

	g := node.New(log)
	reg := node.NewRegistry()
	for _, f := range fx.Functions {
		if err := reg.Declare(node.FunctionDecl{Path: f.Path, Inputs: f.Inputs, Outputs: f.Outputs}); err != nil {
			return nil, uid.Zero, err
		}
	}

	calls := map[string]uid.Handle{}
	for _, c := range fx.Calls {
		h, ok := g.CreateFunctionCall(g.Root(), reg, c.Path)
		if !ok {
			return nil, uid.Zero, fmt.Errorf("creating call %q: unknown path %q", c.ID, c.Path)
		}
		calls[c.ID] = h
	}

	socketByName := func(call uid.Handle, name string, inputs bool) (uid.Handle, bool) {
		var list []uid.Handle
		if inputs {
			list = g.InputSockets(call)
		} else {
			list = g.OutputSockets(call)
		}
		for _, s := range list {
			if n, _ := g.SocketName(s); n == name {
				return s, true
			}
		}
		return uid.Zero, false
	}

	for _, c := range fx.Connections {
		src, ok := calls[c.SrcCall]
		if !ok {
			return nil, uid.Zero, fmt.Errorf("connection references unknown call %q", c.SrcCall)
		}
		dst, ok := calls[c.DstCall]
		if !ok {
			return nil, uid.Zero, fmt.Errorf("connection references unknown call %q", c.DstCall)
		}
		srcSocket, ok := socketByName(src, c.SrcSocket, false)
		if !ok {
			return nil, uid.Zero, fmt.Errorf("call %q has no output socket %q", c.SrcCall, c.SrcSocket)
		}
		dstSocket, ok := socketByName(dst, c.DstSocket, true)
		if !ok {
			return nil, uid.Zero, fmt.Errorf("call %q has no input socket %q", c.DstCall, c.DstSocket)
		}
		if g.Connect(srcSocket, dstSocket).IsZero() {
			return nil, uid.Zero, fmt.Errorf("connecting %q.%s -> %q.%s failed", c.SrcCall, c.SrcSocket, c.DstCall, c.DstSocket)
		}
	}

	rootCall, ok := calls[fx.Root.Call]
	if !ok {
		return nil, uid.Zero, fmt.Errorf("root references unknown call %q", fx.Root.Call)
	}
	rootSocket, ok := socketByName(rootCall, fx.Root.Socket, false)
	if !ok {
		return nil, uid.Zero, fmt.Errorf("root call %q has no output socket %q", fx.Root.Call, fx.Root.Socket)
	}

	return g, rootSocket, nil
}

func runCompile(cmd *cobra.Command, args []string) error {
	log := newLogger()
	g, rootSocket, err := loadGraph(log, args[0])
	if err != nil {
		return err
	}

	res := parser.Parse(log, g, rootSocket)
	if !res.Success() {
		errs := res.Msgs.ByCategory(diagnostics.CategoryError)
		for _, m := range errs {
			fmt.Fprintln(cmd.OutOrStdout(), m.String())
		}
		return fmt.Errorf("parse failed with %d error(s)", len(errs))
	}

	exe, msgs := compiler.Compile(log, g, rootSocket, nil)
	if exe == nil {
		for _, m := range msgs.All() {
			fmt.Fprintln(cmd.OutOrStdout(), m.String())
		}
		return fmt.Errorf("compile failed")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s\n", exe.Type)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
