package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"

	"zyapi/internal/api"

	"go.uber.org/zap"
)

var errCallArgs = errors.New("call expects METHOD ROUTE")

type callCommand struct {
	logs      *zap.SugaredLogger
	newClient func(*zap.SugaredLogger) (*api.Client, error)
	out       *printer
	stderr    io.Writer
}

// Execute handles `call [-p k=v]... [-q k=v]... [-d json] [-pick path] METHOD ROUTE`.
func (c *callCommand) Execute(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("call", flag.ContinueOnError)
	fs.SetOutput(c.stderr)

	params := keyValues{}
	query := keyValues{}
	fs.Var(params, "p", "route param `name=value`, repeatable")
	fs.Var(query, "q", "query `key=value`, repeatable")
	body := fs.String("d", "", "json request body")
	pick := fs.String("pick", "", "gjson `path` selecting part of the returned value")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return errCallArgs
	}
	method, route := fs.Arg(0), fs.Arg(1)

	init := api.Init{
		Params: params,
		Query:  make(map[string]any, len(query)),
	}
	for k, v := range query {
		init.Query[k] = v
	}
	if *body != "" {
		if !json.Valid([]byte(*body)) {
			return errors.New("request body is not valid json")
		}
		init.Body = json.RawMessage(*body)
	}

	client, err := c.newClient(c.logs)
	if err != nil {
		return err
	}

	value, err := client.Do(ctx, route, method, init)
	if err != nil {
		return err
	}

	return c.out.printValue(value, *pick)
}

type keyValues map[string]string

func (kv keyValues) String() string {
	pairs := make([]string, 0, len(kv))
	for k, v := range kv {
		pairs = append(pairs, k+"="+v)
	}
	sort.Strings(pairs)
	return strings.Join(pairs, ",")
}

func (kv keyValues) Set(raw string) error {
	key, value, ok := strings.Cut(raw, "=")
	if !ok || key == "" {
		return fmt.Errorf("expected key=value, got %q", raw)
	}
	kv[key] = value
	return nil
}
