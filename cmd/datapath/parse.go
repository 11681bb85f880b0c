package main

import (
	"fmt"

	"github.com/revittco/datapath/internal/config"
)

// cmdParse decodes a concrete path against a named descriptor from the
// config file and prints its fields.
func cmdParse(args []string) error {
	cfg, rest := loadConfig(args)
	if len(rest) != 2 {
		return fmt.Errorf("usage: datapath parse [--config=PATH] NAME PATH")
	}
	name, path := rest[0], rest[1]

	fileCfg, err := config.LoadFile(cfg.ConfigFile)
	if err != nil {
		return err
	}
	descs, err := fileCfg.Descriptors()
	if err != nil {
		return err
	}
	desc, ok := descs[name]
	if !ok {
		return fmt.Errorf("unknown datapath %q", name)
	}

	rec, err := desc.Parse(path)
	if err != nil {
		return err
	}

	for _, field := range desc.Fields() {
		fmt.Printf("%s=%s\n", field, rec.Fields[field])
	}
	if rec.File != "" {
		fmt.Printf("file=%s\n", rec.File)
	}
	return nil
}
