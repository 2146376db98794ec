package commands

import (
	"fmt"

	"github.com/lucawellmeier/octoblog/internal/config"
	"github.com/lucawellmeier/octoblog/internal/scaffold"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force bool   `help:"Overwrite an existing configuration file and starter files"`
	Dir   string `short:"d" name:"dir" default:"." help:"Directory the starter site is written to"`
}

func (i *InitCmd) Run(_ *Global, root *CLI) error {
	fmt.Println("Initializing blog")
	fmt.Printf("Writing configuration to %s\n", root.Config)
	if err := config.Init(root.Config, i.Force); err != nil {
		fmt.Println("Initialization failed")
		return err
	}
	written, err := scaffold.Write(i.Dir, i.Force)
	if err != nil {
		return err
	}
	for _, f := range written {
		fmt.Printf("  created %s\n", f)
	}
	fmt.Println("initialized successfully")
	return nil
}
