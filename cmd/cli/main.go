package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/vhyza/elasticsearch/config"
	"github.com/vhyza/elasticsearch/fault"
	"github.com/vhyza/elasticsearch/querydsl"
)

func main() {
	configPath := flag.String("config", "", "path to a yaml config file")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		cfg = loaded
	}

	logger, matcher, err := cfg.Parse()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var source []byte
	if flag.NArg() > 0 {
		source, err = os.ReadFile(flag.Arg(0))
	} else {
		source, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		logger.Error("cannot read query document.", "error", err)
		os.Exit(1)
	}

	builder, err := querydsl.DefaultRegistry().ParseQuery(string(source), matcher)
	if err != nil {
		code := fault.UnknownCode
		args := []any{"error", err}
		var f fault.Fault
		if errors.As(err, &f) {
			code = f.Code()
			if md, ok := f.Metadata().(fault.ClauseMetadata); ok {
				if md.Clause != "" {
					args = append(args, "clause", md.Clause)
				}
				if md.Field != "" {
					args = append(args, "field", md.Field)
				}
			}
		}
		logger.Error("query did not parse.", append([]any{"code", code}, args...)...)
		os.Exit(1)
	}

	out, err := json.MarshalIndent(builder.Source(), "", "  ")
	if err != nil {
		logger.Error("cannot render canonical source.", "error", err)
		os.Exit(1)
	}

	fmt.Println(string(out))
}
