// Command mu is the interpreter's CLI front end, spec.md §6.2.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/mulang/mu"
)

// version is reported by -v. Set by hand until a release process
// wires it to a build tag.
const version = "0.1.0"

func main() {
	var (
		showHelp    = flag.Bool("h", false, "Print usage and exit")
		showVersion = flag.Bool("v", false, "Print version and exit")
		interactive = flag.Bool("i", false, "Start an interactive REPL after processing other flags")
		loadPath    = flag.String("l", "", "Load and evaluate a file before any other processing")
		evalExpr    = flag.String("e", "", "Evaluate an expression and print its result")
		quietExpr   = flag.String("q", "", "Evaluate an expression without printing its result")
	)
	flag.Parse()

	if *showHelp {
		flag.Usage()
		return
	}
	if *showVersion {
		fmt.Println("mu " + version)
		return
	}

	env, err := mu.NewEnvironment(mu.NewConfig())
	if err != nil {
		log.Fatalf("mu: can't initialize runtime: %s", err.Error())
	}
	defer env.Close()

	if *loadPath != "" {
		if err := loadFile(env, *loadPath); err != nil {
			log.Fatalf("mu: %s", err.Error())
		}
	}
	for _, path := range flag.Args() {
		if err := loadFile(env, path); err != nil {
			log.Fatalf("mu: %s", err.Error())
		}
	}

	if *quietExpr != "" {
		if _, err := evalString(env, *quietExpr); err != nil {
			log.Fatalf("mu: %s", err.Error())
		}
	}
	if *evalExpr != "" {
		result, err := evalString(env, *evalExpr)
		if err != nil {
			log.Fatalf("mu: %s", err.Error())
		}
		fmt.Println(env.PrintToString(result, true))
	}

	if *interactive || (*loadPath == "" && *evalExpr == "" && *quietExpr == "" && flag.NArg() == 0) {
		if err := env.REPL(os.Stdin, os.Stdout); err != nil {
			log.Fatalf("mu: %s", err.Error())
		}
	}
}

func evalString(env *mu.Environment, src string) (mu.Value, error) {
	form, err := env.ReadString(src)
	if err != nil {
		return mu.NIL, err
	}
	return env.EvalForm(form)
}

func loadFile(env *mu.Environment, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	stream := env.OpenInputString(string(data))
	defer env.Close(stream)
	for {
		form, err := env.ReadStream(stream)
		if err != nil {
			return err
		}
		if mu.Null(form) {
			break
		}
		if _, err := env.EvalForm(form); err != nil {
			return err
		}
	}
	return nil
}
