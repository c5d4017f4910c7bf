package main

import (
	"encoding/json"
	"fmt"
	"os"

	"dpfkit/dpf"
)

func main() {

	// go run main.go demo-point
	// (fixed n=16, alpha=1234, beta=0xCAFEBABE; no arguments are read)
	if len(os.Args) > 1 && os.Args[1] == "demo-point" {
		runDemoPoint()
		return
	}

	// ... other commands:
}

func runDemoPoint() {
	spec, err := dpf.NewSpec(16, false, dpf.Uint32(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	const alpha = 1234
	k0, k1, err := dpf.Gen(spec, alpha, []dpf.Value{dpf.Uint32(0xCAFEBABE)}, dpf.UniformRootSampler)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	y0, err := dpf.EvalPoint(k0, 0, alpha, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	y1, err := dpf.EvalPoint(k1, 0, alpha, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	enc, err := json.MarshalIndent(k0, "", "  ")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Printf("alpha=%d reconstructed beta=%v\n", alpha, y0.Add(y1))
	fmt.Printf("party 0 key:\n%s\n", enc)
}
