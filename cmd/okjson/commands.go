package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/go-json-experiment/json"
	"github.com/invopop/jsonschema"

	"github.com/gregorym/ollamakit"
	"github.com/gregorym/ollamakit/api"
)

// absent is printed for coercions that have no result.
const absent = "-"

type InspectCmd struct {
	Input string   `help:"Path to input JSON file. If not specified, reads from stdin." short:"i" type:"path"`
	Bare  bool     `help:"Input is a bare metadata object rather than a show response."`
	Keys  []string `help:"Only show these keys." short:"k" name:"key"`
}

func (c *InspectCmd) Run(env *Env) error {
	b, err := readInput(c.Input, env.Stdin)
	if err != nil {
		return err
	}

	var md ollamakit.Metadata
	if c.Bare {
		if err := json.Unmarshal(b, &md); err != nil {
			return fmt.Errorf("failed to decode metadata: %w", err)
		}
	} else {
		resp, err := api.Decode[api.ShowResponse](b)
		if err != nil {
			return err
		}
		md = resp.ModelInfo
	}
	env.Logger.Debug("decoded metadata", "keys", len(md))

	keys := c.Keys
	if len(keys) == 0 {
		for k := range md {
			keys = append(keys, k)
		}
		sort.Strings(keys)
	}

	tw := tabwriter.NewWriter(env.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tKIND\tINT\tFLOAT\tSTRING\tBOOL")
	for _, k := range keys {
		v, ok := md[k]
		if !ok || v == nil {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", k, absent, absent, absent, absent, absent)
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", k, v.Kind(),
			show(v.AsInt()), show(v.AsFloat()), show(v.AsString()), show(v.AsBool()))
	}
	return tw.Flush()
}

// show renders the result of a coercion.
func show[T int64 | float64 | string | bool](v T, ok bool) string {
	if !ok {
		return absent
	}
	switch v := any(v).(type) {
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case string:
		return strconv.Quote(v)
	default:
		return fmt.Sprint(v)
	}
}

type OptionsCmd struct {
	Pairs []string `arg:"" name:"option" help:"Option as key=value. Values are decoded as JSON scalars; anything else is taken as a string."`
}

func (c *OptionsCmd) Run(env *Env) error {
	var opts ollamakit.Options
	for _, pair := range c.Pairs {
		key, raw, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return fmt.Errorf("option %q: expected key=value", pair)
		}
		v, err := ollamakit.Decode([]byte(raw))
		if err != nil {
			env.Logger.Debug("treating option as string", "key", key, "err", err)
			v = ollamakit.String(raw)
		}
		ov, ok := v.(ollamakit.OptionValue)
		if !ok {
			return fmt.Errorf("option %q: %s values are not allowed", key, v.Kind())
		}
		opts.Set(key, ov)
	}
	env.Logger.Debug("built options", "count", opts.Len())
	return env.writeJSON(opts)
}

type SchemaCmd struct {
	Record string `arg:"" enum:"show,embed-request,embed-response" help:"Record to describe: show, embed-request or embed-response."`
}

func (c *SchemaCmd) Run(env *Env) error {
	r := &jsonschema.Reflector{
		DoNotReference: true, // inline defs
		ExpandedStruct: true, // put struct at root
	}
	var s *jsonschema.Schema
	switch c.Record {
	case "show":
		s = r.Reflect(new(api.ShowResponse))
	case "embed-request":
		s = r.Reflect(new(api.EmbedRequest))
	case "embed-response":
		s = r.Reflect(new(api.EmbedResponse))
	default:
		return fmt.Errorf("unknown record %q", c.Record)
	}
	return env.writeJSON(s)
}
