package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/akeil/xform"
	"github.com/akeil/xform/pkg/server"
)

func doServe(s settings, addr, startPage string) error {
	start, err := xform.ParsePage(startPage)
	if err != nil {
		return err
	}

	cfg := server.DefaultConfig()
	cfg.Addr = addr
	cfg.StartPage = start
	cfg.Width = s.width
	cfg.Height = s.height

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("%v demo running at %v, press Ctrl+C to stop\n", ellipsis, addr)
	return server.New(cfg).ListenAndServe(ctx)
}
