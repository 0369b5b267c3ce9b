package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"sort"

	"fooddesk/internal/config"
	"fooddesk/internal/resource"
)

type draftCmd struct{}

func (draftCmd) Name() string { return "draft" }
func (draftCmd) Description() string {
	return "Stage form values for a later create/update"
}
func (draftCmd) Usage() string {
	return "draft [--restaurant <id>] <resource> set <field> <value> | image <path> | edit <id> | show | clear"
}
func (draftCmd) Protected() bool { return true }

func (draftCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("draft", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	parentID := fs.String("restaurant", "", "parent restaurant id for nested resources")
	if err := fs.Parse(args); err != nil {
		return ErrUsage
	}
	rest := fs.Args()
	if len(rest) < 2 {
		return ErrUsage
	}
	spec, ok := resource.Lookup(rest[0])
	if !ok {
		return fmt.Errorf("unknown resource: %s", rest[0])
	}
	if spec.Nested && *parentID == "" {
		return fmt.Errorf("resource %s needs --restaurant <id>", spec.Name)
	}

	drafts, done, err := openDrafts(cfg)
	if err != nil {
		return err
	}
	defer done()

	switch rest[1] {
	case "set":
		if len(rest) != 4 {
			return ErrUsage
		}
		field, value := rest[2], rest[3]
		if !hasField(spec, field) {
			return fmt.Errorf("%s has no field %q", spec.Name, field)
		}
		if err := drafts.Set(spec.Name, *parentID, field, value); err != nil {
			return err
		}
		fmt.Fprintf(Out, "%s draft: %s = %s\n", spec.Name, field, value)
		return nil

	case "image":
		if len(rest) != 3 {
			return ErrUsage
		}
		if !spec.Multipart {
			return fmt.Errorf("%s does not take an image", spec.Name)
		}
		if err := drafts.SetImage(spec.Name, *parentID, rest[2]); err != nil {
			return err
		}
		fmt.Fprintf(Out, "%s draft: image = %s\n", spec.Name, rest[2])
		return nil

	case "edit":
		// pre-populate the draft from the record, as an update screen would
		if len(rest) != 3 {
			return ErrUsage
		}
		id := rest[2]
		rec, err := newOrchestrator(cfg).View(ctx, spec, id)
		if err != nil {
			return err
		}
		values := make(map[string]string, len(spec.Fields))
		for _, f := range spec.Fields {
			if f.Secret {
				continue
			}
			values[f.Name] = rec.Str(f.Name)
		}
		if err := drafts.SetTarget(spec.Name, *parentID, id, values); err != nil {
			return err
		}
		fmt.Fprintf(Out, "Editing %s %s; staged %d fields\n", spec.Name, id, len(values))
		return nil

	case "show":
		if len(rest) != 2 {
			return ErrUsage
		}
		d, err := drafts.Get(spec.Name, *parentID)
		if err != nil {
			return err
		}
		if d == nil {
			fmt.Fprintf(Out, "No %s draft.\n", spec.Name)
			return nil
		}
		if d.TargetID != "" {
			fmt.Fprintf(Out, "Updating %s %s\n", spec.Name, d.TargetID)
		}
		values, err := drafts.Values(spec.Name, *parentID)
		if err != nil {
			return err
		}
		names := make([]string, 0, len(values))
		for n := range values {
			names = append(names, n)
		}
		sort.Strings(names)
		for _, n := range names {
			fmt.Fprintf(Out, "  %s: %s\n", n, values[n])
		}
		if d.ImagePath != "" {
			fmt.Fprintf(Out, "  image: %s\n", d.ImagePath)
		}
		return nil

	case "clear":
		if len(rest) != 2 {
			return ErrUsage
		}
		if err := drafts.Clear(spec.Name, *parentID); err != nil {
			return err
		}
		fmt.Fprintf(Out, "%s draft cleared.\n", spec.Name)
		return nil
	}
	return ErrUsage
}

func hasField(spec *resource.Spec, name string) bool {
	for _, f := range spec.Fields {
		if f.Name == name {
			return true
		}
	}
	return false
}

func init() { RegisterCmd(draftCmd{}) }
