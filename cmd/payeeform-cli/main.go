package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/goliatone/go-payeeform/pkg/orchestrator"
	"github.com/goliatone/go-payeeform/pkg/render"
	"github.com/goliatone/go-payeeform/pkg/renderers/tui"
	"github.com/goliatone/go-payeeform/pkg/sections"
)

func main() {
	payloadPath := flag.String("payload", "", "settlement API payload JSON (empty form if omitted)")
	flow := flag.String("flow", sections.FlowRegister, "layout flow: register or edit")
	renderer := flag.String("renderer", "vanilla", "renderer to use (vanilla, tui)")
	output := flag.String("output", "", "output file (stdout if empty)")
	encode := flag.Bool("encode", false, "print the flattened submission fields instead of rendering")
	validate := flag.Bool("validate", false, "validate the submission against the settlement API contract")
	flag.Parse()

	ctx := context.Background()

	var payloadBytes []byte
	if *payloadPath != "" {
		data, err := os.ReadFile(*payloadPath)
		if err != nil {
			log.Fatalf("Failed to read payload: %v", err)
		}
		payloadBytes = data
	}

	var opts []orchestrator.Option
	if *validate {
		opts = append(opts, orchestrator.WithSubmissionValidation())
	}
	if *renderer == "tui" {
		interactive, err := tui.New()
		if err != nil {
			log.Fatalf("Failed to configure tui renderer: %v", err)
		}
		registry := render.NewRegistry()
		registry.MustRegister(interactive)
		opts = append(opts, orchestrator.WithRegistry(registry))
	}
	gen := orchestrator.New(opts...)

	req := orchestrator.Request{
		PayloadBytes: payloadBytes,
		Flow:         *flow,
		Renderer:     *renderer,
	}

	if *encode {
		state, err := gen.State(req)
		if err != nil {
			log.Fatalf("Failed to map payload: %v", err)
		}
		form, err := gen.EncodeSubmission(ctx, state)
		if err != nil {
			log.Fatalf("Failed to encode submission: %v", err)
		}
		for _, field := range form.Fields {
			fmt.Printf("%s=%s\n", field.Name, field.Value)
		}
		for _, file := range form.Files {
			fmt.Printf("%s=@%s (%d bytes)\n", file.Field, file.Filename, len(file.Data))
		}
		return
	}

	result, err := gen.Render(ctx, req)
	if err != nil {
		log.Fatalf("Failed to render form: %v", err)
	}

	if *output != "" {
		if err := os.WriteFile(*output, result.Output, 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Form written to %s\n", *output)
	} else {
		fmt.Println(string(result.Output))
	}
}
