package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"bordereau/internal/bsda"
	bsdamodels "bordereau/internal/bsda/models"
	"bordereau/internal/bsff"
	bsffmodels "bordereau/internal/bsff/models"
	"bordereau/internal/edition"
	"bordereau/pkg/requestcontext"
)

// result is what check and sealed print.
type result struct {
	Accepted bool     `yaml:"accepted"`
	Changed  []string `yaml:"changed,omitempty"`
	Sealed   []string `yaml:"sealed,omitempty"`
	Messages []string `yaml:"messages,omitempty"`
}

type kind struct {
	check  func(current, proposed string, editor requestcontext.Editor) (result, error)
	sealed func(current string, editor requestcontext.Editor) ([]string, error)
}

var kinds = map[string]kind{
	bsda.Kind: {
		check: func(current, proposed string, editor requestcontext.Editor) (result, error) {
			var doc bsdamodels.Bsda
			var in bsdamodels.Input
			if err := load(current, &doc); err != nil {
				return result{}, err
			}
			if err := load(proposed, &in); err != nil {
				return result{}, err
			}
			return outcome(bsda.Check(&doc, in, editor))
		},
		sealed: func(current string, editor requestcontext.Editor) ([]string, error) {
			var doc bsdamodels.Bsda
			if err := load(current, &doc); err != nil {
				return nil, err
			}
			return names(bsda.SealedFields(&doc, editor)), nil
		},
	},
	bsff.Kind: {
		check: func(current, proposed string, editor requestcontext.Editor) (result, error) {
			var doc bsffmodels.Bsff
			var in bsffmodels.Input
			if err := load(current, &doc); err != nil {
				return result{}, err
			}
			if err := load(proposed, &in); err != nil {
				return result{}, err
			}
			return outcome(bsff.Check(&doc, in, editor))
		},
		sealed: func(current string, editor requestcontext.Editor) ([]string, error) {
			var doc bsffmodels.Bsff
			if err := load(current, &doc); err != nil {
				return nil, err
			}
			return names(bsff.SealedFields(&doc, editor)), nil
		},
	},
}

func kindOf(name string) (kind, error) {
	k, ok := kinds[strings.ToLower(name)]
	if !ok {
		return kind{}, fmt.Errorf("unknown kind %q, want bsda or bsff", name)
	}
	return k, nil
}

func (o *options) editor() requestcontext.Editor {
	return requestcontext.Editor{UserID: o.user, Sirets: o.sirets}
}

func outcome(changes edition.Changes, err error) (result, error) {
	if sfe, ok := edition.AsSealedFields(err); ok {
		return result{Sealed: sfe.Fields(), Messages: sfe.Messages()}, nil
	}
	if err != nil {
		return result{}, err
	}
	return result{Accepted: true, Changed: changes.Fields}, nil
}

// load reads a YAML or JSON fixture into out. YAML is re-encoded as JSON
// first so fixtures follow the API field names.
func load(path string, out any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	var tree any
	if err := yaml.Unmarshal(raw, &tree); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	body, err := json.Marshal(tree)
	if err != nil {
		return fmt.Errorf("convert %s: %w", path, err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func names[F ~string](fields []F) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = string(f)
	}
	return out
}

func render(w io.Writer, format string, res result) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(res); err != nil {
			return err
		}
		return enc.Close()
	case "text", "":
		if len(res.Changed) > 0 {
			fmt.Fprintf(w, "changed: %s\n", strings.Join(res.Changed, ", "))
		} else if res.Accepted && res.Sealed == nil {
			fmt.Fprintln(w, "no change")
		}
		for _, f := range res.Sealed {
			fmt.Fprintln(w, f)
		}
		for _, m := range res.Messages {
			fmt.Fprintln(w, m)
		}
		return nil
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
